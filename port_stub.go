//go:build !linux && !windows

package serline

// Hosts with neither supported backend fail every operation deterministically
// and cheaply; no diagnostics are emitted per call.

type handle = int

const invalidHandle handle = -1

func openOS(name string) (handle, error) { return -1, ErrNotSupported }

func configureOS(h handle, cfg Config) error { return ErrNotSupported }

func controlOS(h handle, assert bool) error { return ErrNotSupported }

func readOS(h handle, buf, brk []byte) (int, error) { return 0, ErrNotSupported }

func writeOS(h handle, buf []byte) (int, error) { return 0, ErrNotSupported }

func closeOS(h handle) {}
