package serline

import (
	"strings"
	"testing"
)

type testLine struct {
	label string
}

func (l testLine) LineLabel() string { return l.label }

func TestDescribeDevices(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
		{Name: "/dev/ttyUSB0", Desc: "USB Serial Port"},
	})

	var sb strings.Builder
	DescribeDevices(&sb)
	out := sb.String()

	if !strings.Contains(out, "Serial devices:") {
		t.Errorf("missing header in output:\n%s", out)
	}
	if !strings.Contains(out, "ser0") || !strings.Contains(out, "ser1") {
		t.Errorf("missing serN aliases in output:\n%s", out)
	}
	if !strings.Contains(out, "/dev/ttyS0") || !strings.Contains(out, "(USB Serial Port)") {
		t.Errorf("missing device name or description in output:\n%s", out)
	}
	if strings.Contains(out, "Open Serial Devices:") {
		t.Errorf("open-port section rendered with no open ports:\n%s", out)
	}
}

func TestDescribeDevicesEmpty(t *testing.T) {
	stubDevices(t, nil)

	var sb strings.Builder
	DescribeDevices(&sb)
	if !strings.Contains(sb.String(), "no serial devices are available") {
		t.Errorf("empty device set not reported:\n%s", sb.String())
	}
}

func TestDescribeDevicesUnsupported(t *testing.T) {
	stubUnsupported(t)

	var sb strings.Builder
	DescribeDevices(&sb)
	if !strings.Contains(sb.String(), "not available") {
		t.Errorf("unsupported host not reported distinctly:\n%s", sb.String())
	}
}

func TestDescribeDevicesOpenPorts(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS0", Desc: "Standard Serial Port"},
	})
	registerFakePort(t, "/dev/ttyS0", "Standard Serial Port", testLine{label: "MUX Ln03"})

	var sb strings.Builder
	DescribeDevices(&sb)
	out := sb.String()

	if !strings.Contains(out, "Open Serial Devices:") {
		t.Errorf("missing open-port section:\n%s", out)
	}
	if !strings.Contains(out, "MUX Ln03") {
		t.Errorf("missing owning line label:\n%s", out)
	}
}

func TestDescribeDevicesColumnAlignment(t *testing.T) {
	stubDevices(t, []DeviceDescriptor{
		{Name: "/dev/ttyS0", Desc: "short"},
		{Name: "/dev/ttyUSB10", Desc: "long name"},
	})

	var sb strings.Builder
	DescribeDevices(&sb)

	// descriptions open at the same column on every device line
	var cols []int
	for _, line := range strings.Split(sb.String(), "\n") {
		if i := strings.IndexByte(line, '('); i >= 0 {
			cols = append(cols, i)
		}
	}
	if len(cols) != 2 {
		t.Fatalf("expected 2 device lines with descriptions, got %d", len(cols))
	}
	if cols[0] != cols[1] {
		t.Errorf("description columns differ: %v", cols)
	}
}
