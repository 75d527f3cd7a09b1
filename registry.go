package serline

import (
	"sort"
	"sync"
)

// Owner is a display-only back-reference to the consumer that owns an open
// port, typically a multiplexer terminal line. The registry never calls it
// except to render status output; ownership of the port is not transferred.
type Owner interface {
	LineLabel() string
}

type openEntry struct {
	port  *Port
	owner Owner
	name  string
	desc  string
}

// openList is the process-wide table of ports this package has opened. All
// mutation funnels through Open and Close; a port appears here exactly while
// its underlying host resource is open.
type openList struct {
	mu      sync.Mutex
	entries []*openEntry
}

var openPorts openList

func (l *openList) add(p *Port, owner Owner, name, desc string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, &openEntry{
		port:  p,
		owner: owner,
		name:  clampName(name),
		desc:  clampDesc(desc),
	})
}

func (l *openList) remove(p *Port) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.port == p {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// snapshot returns a copy of the current entries for display.
func (l *openList) snapshot() []openEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]openEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = *e
	}
	return out
}

// mergeInto appends open ports whose names are missing from devs, respecting
// the max bound. Open ports may be devices the host no longer lists as
// available (held exclusively, for instance), yet they must stay resolvable
// and visible in status output.
func (l *openList) mergeInto(devs []DeviceDescriptor, max int) []DeviceDescriptor {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if len(devs) >= max {
			break
		}
		known := false
		for _, d := range devs {
			if d.Name == e.name {
				known = true
				break
			}
		}
		if !known {
			devs = append(devs, DeviceDescriptor{Name: e.name, Desc: e.desc})
		}
	}
	return devs
}

// enumerateOS is the platform device probe, indirected for tests.
var enumerateOS = osSerialDevices

// ListDevices returns the serial devices visible on this host, merged with
// any currently open ports the host probe missed, sorted lexicographically by
// name and truncated at max entries. Hosts without serial support return
// ErrNotSupported, which is distinct from an empty list.
func ListDevices(max int) ([]DeviceDescriptor, error) {
	devs, err := enumerateOS(max)
	if err != nil {
		return nil, err
	}
	devs = openPorts.mergeInto(devs, max)
	sort.Slice(devs, func(i, j int) bool { return devs[i].Name < devs[j].Name })
	return devs, nil
}
