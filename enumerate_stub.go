//go:build !linux && !windows

package serline

func osSerialDevices(max int) ([]DeviceDescriptor, error) {
	return nil, ErrNotSupported
}
