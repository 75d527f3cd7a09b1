package serline

import (
	"fmt"
	"strings"
)

// ResolveName maps a user-supplied identifier to a canonical device name and
// optional description. Four strategies are tried in order against one
// enumeration snapshot:
//
//  1. a "serN" alias (case-insensitive, one or two digits) indexes the
//     sorted snapshot; an out-of-range index is an error, not a fallback
//  2. a case-insensitive match against a device description
//  3. a case-insensitive match against a device name; the snapshot's casing
//     becomes canonical
//  4. the identifier is used verbatim with no description, permitting
//     devices the enumerator cannot see
func ResolveName(id string) (name, desc string, err error) {
	if idx, ok := parseAlias(id); ok {
		devs, err := ListDevices(MaxDevices)
		if err != nil || idx >= len(devs) {
			return "", "", fmt.Errorf("%w: %s", ErrUnknownAlias, id)
		}
		return devs[idx].Name, devs[idx].Desc, nil
	}

	devs, err := ListDevices(MaxDevices)
	if err == nil {
		if d, ok := findByDesc(devs, id); ok {
			// the identifier the caller typed becomes the attached description
			return d.Name, id, nil
		}
		if d, ok := findByName(devs, id); ok {
			return d.Name, d.Desc, nil
		}
	}
	return id, "", nil
}

// parseAlias recognizes "ser" followed by one or two decimal digits, five
// characters at most. Longer identifiers intentionally fall through to
// description and name matching.
func parseAlias(id string) (int, bool) {
	if len(id) < 4 || len(id) > 5 {
		return 0, false
	}
	if !strings.EqualFold(id[:3], "ser") {
		return 0, false
	}
	n := 0
	for _, c := range id[3:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func findByDesc(devs []DeviceDescriptor, id string) (DeviceDescriptor, bool) {
	for _, d := range devs {
		if len(d.Desc) == len(id) && strings.EqualFold(d.Desc, id) {
			return d, true
		}
	}
	return DeviceDescriptor{}, false
}

func findByName(devs []DeviceDescriptor, id string) (DeviceDescriptor, bool) {
	for _, d := range devs {
		if len(d.Name) == len(id) && strings.EqualFold(d.Name, id) {
			return d, true
		}
	}
	return DeviceDescriptor{}, false
}
