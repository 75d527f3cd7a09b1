package serline

import (
	"errors"
	"sort"
	"testing"
)

// stubDevices replaces the platform probe with a fixed device set for the
// duration of one test.
func stubDevices(t *testing.T, devs []DeviceDescriptor) {
	t.Helper()
	prev := enumerateOS
	enumerateOS = func(max int) ([]DeviceDescriptor, error) {
		if len(devs) > max {
			return append([]DeviceDescriptor(nil), devs[:max]...), nil
		}
		return append([]DeviceDescriptor(nil), devs...), nil
	}
	t.Cleanup(func() { enumerateOS = prev })
}

// stubUnsupported simulates a host without serial support.
func stubUnsupported(t *testing.T) {
	t.Helper()
	prev := enumerateOS
	enumerateOS = func(max int) ([]DeviceDescriptor, error) {
		return nil, ErrNotSupported
	}
	t.Cleanup(func() { enumerateOS = prev })
}

// registerFakePort inserts a registry entry without touching the host.
func registerFakePort(t *testing.T, name, desc string, owner Owner) *Port {
	t.Helper()
	p := &Port{name: name, desc: desc}
	openPorts.add(p, owner, name, desc)
	t.Cleanup(func() { openPorts.remove(p) })
	return p
}

func TestListDevicesSorted(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyUSB0", Desc: "USB Serial Port"},
		{Name: "/dev/ttyS1", Desc: "Standard Serial Port"},
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
	})

	devs, err := ListDevices(MaxDevices)
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if len(devs) != 3 {
		t.Fatalf("got %d devices, want 3", len(devs))
	}
	if !sort.SliceIsSorted(devs, func(i, j int) bool { return devs[i].Name < devs[j].Name }) {
		t.Errorf("devices not sorted: %v", devs)
	}
}

func TestListDevicesBound(t *testing.T) {
	many := make([]DeviceDescriptor, 10)
	for i := range many {
		many[i] = DeviceDescriptor{Name: string(rune('a' + i))}
	}
	stubDevices(t, many)

	devs, err := ListDevices(4)
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if len(devs) > 4 {
		t.Errorf("got %d devices, bound was 4", len(devs))
	}
}

func TestListDevicesMergesOpenPorts(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
	})
	registerFakePort(t, "/dev/held0", "Held Device", nil)

	devs, err := ListDevices(MaxDevices)
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}

	count := 0
	for _, d := range devs {
		if d.Name == "/dev/held0" {
			count++
			if d.Desc != "Held Device" {
				t.Errorf("merged entry description = %q, want %q", d.Desc, "Held Device")
			}
		}
	}
	if count != 1 {
		t.Errorf("open port appears %d times in listing, want exactly 1", count)
	}
}

func TestListDevicesNoDuplicateForEnumeratedOpenPort(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
	})
	registerFakePort(t, "/dev/ttyS0", "Standard Serial Port", nil)

	devs, err := ListDevices(MaxDevices)
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	count := 0
	for _, d := range devs {
		if d.Name == "/dev/ttyS0" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("enumerated open port appears %d times, want 1", count)
	}
}

func TestListDevicesUnsupportedPropagates(t *testing.T) {
	stubUnsupported(t)
	registerFakePort(t, "/dev/held0", "", nil)

	_, err := ListDevices(MaxDevices)
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("err = %v, want ErrNotSupported (no merge on unsupported hosts)", err)
	}
}

func TestRegistryRemove(t *testing.T) {
	stubDevices(t, nil)

	p := &Port{name: "/dev/gone0"}
	openPorts.add(p, nil, "/dev/gone0", "")
	openPorts.remove(p)

	devs, err := ListDevices(MaxDevices)
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	for _, d := range devs {
		if d.Name == "/dev/gone0" {
			t.Errorf("removed port still listed")
		}
	}
}
