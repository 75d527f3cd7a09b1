package serline

import (
	"errors"
	"fmt"
	"io"
)

// DescribeDevices writes a report of every enumerable serial device and,
// separately, every currently open port with its owning line. The device
// section lists the serN alias, the column-aligned device name, and the
// description; this is a formatting convenience for status commands.
func DescribeDevices(w io.Writer) {
	devs, err := ListDevices(MaxDevices)

	fmt.Fprintf(w, "Serial devices:\n")
	switch {
	case errors.Is(err, ErrNotSupported):
		fmt.Fprintf(w, "  serial support not available on this host\n")
	case len(devs) == 0:
		fmt.Fprintf(w, "  no serial devices are available\n")
	default:
		width := 0
		for _, d := range devs {
			if len(d.Name) > width {
				width = len(d.Name)
			}
		}
		for i, d := range devs {
			fmt.Fprintf(w, " ser%d\t%-*s (%s)\n", i, width, d.Name, d.Desc)
		}
	}

	open := openPorts.snapshot()
	if len(open) == 0 {
		return
	}
	fmt.Fprintf(w, "Open Serial Devices:\n")
	for _, e := range open {
		label := ""
		if e.owner != nil {
			label = e.owner.LineLabel()
		}
		// prefer the enumeration's description; it may have changed since open
		desc := e.desc
		if d, ok := findByName(devs, e.name); ok && d.Desc != "" {
			desc = d.Desc
		}
		if desc != "" {
			fmt.Fprintf(w, " %s\t%s (%s)\n", label, e.name, desc)
		} else {
			fmt.Fprintf(w, " %s\t%s\n", label, e.name)
		}
	}
}
