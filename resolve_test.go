package serline

import (
	"errors"
	"testing"
)

func TestParseAlias(t *testing.T) {
	tests := []struct {
		id  string
		idx int
		ok  bool
	}{
		{"ser0", 0, true},
		{"ser7", 7, true},
		{"ser10", 10, true},
		{"ser99", 99, true},
		{"SER3", 3, true},
		{"Ser12", 12, true},
		{"ser", 0, false},
		{"ser100", 0, false}, // three digits exceed the five-character bound
		{"serx", 0, false},
		{"ser1x", 0, false},
		{"serial0", 0, false},
		{"COM3", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		idx, ok := parseAlias(tt.id)
		if ok != tt.ok || (ok && idx != tt.idx) {
			t.Errorf("parseAlias(%q) = (%d, %v), want (%d, %v)", tt.id, idx, ok, tt.idx, tt.ok)
		}
	}
}

func TestResolveAlias(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "A", Desc: "first"},
		{Name: "B", Desc: "second"},
		{Name: "C", Desc: "third"},
	})

	name, desc, err := ResolveName("ser1")
	if err != nil {
		t.Fatalf("ResolveName(ser1) failed: %v", err)
	}
	if name != "B" || desc != "second" {
		t.Errorf("ResolveName(ser1) = (%q, %q), want (B, second)", name, desc)
	}
}

func TestResolveAliasOutOfRange(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "A"}, {Name: "B"}, {Name: "C"},
	})

	// an out-of-range alias is a hard failure, never a verbatim fallback
	_, _, err := ResolveName("ser5")
	if !errors.Is(err, ErrUnknownAlias) {
		t.Errorf("ResolveName(ser5) err = %v, want ErrUnknownAlias", err)
	}
}

func TestResolveAliasUnsupportedHost(t *testing.T) {
	stubUnsupported(t)

	_, _, err := ResolveName("ser0")
	if !errors.Is(err, ErrUnknownAlias) {
		t.Errorf("ResolveName(ser0) err = %v, want ErrUnknownAlias", err)
	}
}

func TestResolveByDescription(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
		{Name: "/dev/ttyUSB0", Desc: "USB Serial Port"},
	})

	name, desc, err := ResolveName("usb serial port")
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if name != "/dev/ttyUSB0" {
		t.Errorf("name = %q, want /dev/ttyUSB0", name)
	}
	// the identifier the caller typed becomes the attached description
	if desc != "usb serial port" {
		t.Errorf("desc = %q, want the supplied identifier", desc)
	}
}

func TestResolveByNameCanonicalCasing(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "COM3", Desc: "\\Device\\Serial0"},
	})

	name, desc, err := ResolveName("com3")
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if name != "COM3" {
		t.Errorf("name = %q, want canonical COM3", name)
	}
	if desc != "\\Device\\Serial0" {
		t.Errorf("desc = %q, want snapshot description", desc)
	}
}

func TestResolveVerbatimFallback(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
	})

	name, desc, err := ResolveName("/dev/pts/7")
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if name != "/dev/pts/7" || desc != "" {
		t.Errorf("ResolveName = (%q, %q), want verbatim identifier with no description", name, desc)
	}
}

func TestResolveDescriptionRequiresEqualLength(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyUSB0", Desc: "USB Serial Port"},
	})

	// a prefix of a description must not match; it falls through verbatim
	name, _, err := ResolveName("USB Serial")
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if name != "USB Serial" {
		t.Errorf("name = %q, want verbatim fallback", name)
	}
}

func TestResolveDeterministicFirstMatch(t *testing.T) {
	// two devices share a description; the snapshot is sorted by name, so
	// the lexicographically first entry must win
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS1", Desc: "Standard Serial Port"},
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
	})

	name, _, err := ResolveName("Standard Serial Port")
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if name != "/dev/ttyS0" {
		t.Errorf("name = %q, want /dev/ttyS0 (first in sorted snapshot)", name)
	}
}
