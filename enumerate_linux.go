//go:build linux

package serline

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// osSerialDevices probes the two fixed device-node namespaces for serial
// devices: the legacy numbered ports (/dev/ttyS*) and USB serial adapters
// (/dev/ttyUSB*), 64 candidates each. A candidate is kept only if a
// non-blocking open succeeds and the descriptor is a genuine terminal
// device; the probe never leaves a descriptor open.
func osSerialDevices(max int) ([]DeviceDescriptor, error) {
	var devs []DeviceDescriptor
	for _, prefix := range []string{"/dev/ttyS", "/dev/ttyUSB"} {
		for i := 0; i < MaxDevices && len(devs) < max; i++ {
			name := fmt.Sprintf("%s%d", prefix, i)
			fd, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
			if err != nil {
				continue
			}
			if isTerminal(fd) {
				devs = append(devs, DeviceDescriptor{
					Name: name,
					Desc: portDescription(name),
				})
			}
			unix.Close(fd)
		}
	}
	return devs, nil
}

func isTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	return err == nil
}

// portDescription provides human-readable descriptions for different port types
func portDescription(path string) string {
	name := filepath.Base(path)
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}
