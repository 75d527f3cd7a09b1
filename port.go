package serline

import "sync"

// Port is a handle to one open host serial device. A Port is either fully
// usable or closed; there are no intermediate states. All operations are
// synchronous and non-blocking: reads return immediately whether or not data
// is pending, and polling is the caller's responsibility.
type Port struct {
	mu     sync.RWMutex
	h      handle
	name   string
	desc   string
	closed bool
}

// Open resolves id (a serN alias, a device description, a device name, or a
// verbatim path) and opens the resulting device. The owner reference is kept
// only for status display and may be nil. On success the port is configured
// with the host's default communication parameters, DTR is deasserted so the
// consumer can assert it on logical connect, and reads are set up for
// immediate return.
//
// Expected host rejections (no such device, access denied, not a serial
// device) return ErrDeviceNotFound without diagnostics; unexpected host
// errors are logged before the failure is returned.
func Open(id string, owner Owner) (*Port, error) {
	name, desc, err := ResolveName(id)
	if err != nil {
		return nil, err
	}
	h, err := openOS(name)
	if err != nil {
		return nil, err
	}
	p := &Port{h: h, name: name, desc: desc}
	openPorts.add(p, owner, name, desc)
	return p, nil
}

// Name returns the canonical device name the port was opened with.
func (p *Port) Name() string { return p.name }

// Desc returns the device description resolved at open, if any.
func (p *Port) Desc() string { return p.desc }

// Configure applies a full line configuration atomically. Values outside the
// supported range of this host (including unsupported combinations rejected
// by the host itself) return an error wrapping ErrInvalidConfig or
// ErrInvalidBaudRate; transport-level failures return other errors.
func (p *Port) Configure(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPortClosed
	}
	return configureOS(p.h, cfg)
}

// SetDTR asserts or deasserts the DTR modem-control line. Hosts that reject
// the control primitive report an error the caller need not treat as fatal.
func (p *Port) SetDTR(assert bool) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPortClosed
	}
	return controlOS(p.h, assert)
}

// Read performs one non-blocking read into buf, decodes any line-condition
// information the host delivered, and returns the count of clean data bytes.
// A return of 0 with a nil error means no data was pending. brk must be
// zeroed by the caller and at least as long as buf; entries are set to 1 at
// positions where a BREAK occurred.
func (p *Port) Read(buf, brk []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return 0, ErrPortClosed
	}
	return readOS(p.h, buf, brk)
}

// Write writes buf to the port and returns the number of bytes accepted.
func (p *Port) Write(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return 0, ErrPortClosed
	}
	return writeOS(p.h, buf)
}

// Close releases the host resource and removes the port from the open-port
// registry. Errors from the host release primitive are ignored; close is a
// best-effort terminal action. Closing an already closed port returns
// ErrPortClosed without touching the host.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPortClosed
	}
	closeOS(p.h)
	p.closed = true
	openPorts.remove(p)
	return nil
}
