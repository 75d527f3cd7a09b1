//go:build windows

package serline

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

// expectedRegistryError classifies enumeration-key failures that are normal
// outcomes: an absent SERIALCOMM key simply means no serial devices are
// present. Anything else is diagnosed before the empty result is returned.
func expectedRegistryError(err error) bool {
	return errors.Is(err, registry.ErrNotExist)
}

// osSerialDevices reads the serial device map the host maintains under
// HKLM\HARDWARE\DEVICEMAP\SERIALCOMM. Each string value is a device name
// (COMn); the value's own name is the OS-internal label and becomes the
// description.
func osSerialDevices(max int) ([]DeviceDescriptor, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`HARDWARE\DEVICEMAP\SERIALCOMM`, registry.QUERY_VALUE)
	if err != nil {
		if !expectedRegistryError(err) {
			diagErr("RegOpenKeyEx", err)
		}
		return nil, nil
	}
	defer key.Close()

	names, err := key.ReadValueNames(0)
	if err != nil {
		diagErr("RegEnumValue", err)
		return nil, nil
	}

	var devs []DeviceDescriptor
	for _, label := range names {
		if len(devs) >= max {
			break
		}
		name, _, err := key.GetStringValue(label)
		if err != nil || name == "" {
			continue
		}
		devs = append(devs, DeviceDescriptor{
			Name: clampName(name),
			Desc: clampDesc(label),
		})
	}
	return devs, nil
}
