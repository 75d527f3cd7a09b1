//go:build windows

package serline

import (
	"testing"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

func TestExpectedRegistryError(t *testing.T) {
	if !expectedRegistryError(registry.ErrNotExist) {
		t.Error("a missing SERIALCOMM key should be an expected failure")
	}
	if expectedRegistryError(windows.ERROR_ACCESS_DENIED) {
		t.Error("access denied on the device map should be an unexpected failure")
	}
}

func TestEnumerateIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	devs, err := osSerialDevices(MaxDevices)
	if err != nil {
		t.Fatalf("osSerialDevices failed: %v", err)
	}
	if len(devs) > MaxDevices {
		t.Errorf("device map returned %d devices, bound is %d", len(devs), MaxDevices)
	}
	for _, d := range devs {
		if d.Name == "" {
			t.Error("device map returned a device with an empty name")
		}
	}
}
