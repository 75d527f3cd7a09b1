package serline

// MaxDevices bounds device enumeration: at most 64 entries are probed per
// device namespace, and enumeration snapshots never exceed 64 entries total.
const MaxDevices = 64

// Bounds on device identity strings kept in the open-port registry.
const (
	maxNameLen = 256
	maxDescLen = 256
)

// DeviceDescriptor identifies one serial-capable host device. Name is the
// host-specific canonical identifier (a device path on Unix-like systems, a
// COM port symbol on Windows). Desc is an optional human-readable label.
type DeviceDescriptor struct {
	Name string
	Desc string
}

func clampName(s string) string {
	if len(s) > maxNameLen {
		return s[:maxNameLen]
	}
	return s
}

func clampDesc(s string) string {
	if len(s) > maxDescLen {
		return s[:maxDescLen]
	}
	return s
}
