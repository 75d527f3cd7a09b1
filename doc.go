// Package serline provides a host-independent abstraction over physical and
// virtual serial ports, designed to back simulated terminal lines with real
// host devices.
//
// The package hides per-operating-system mechanics (registry queries,
// device-node probing, termios/DCB configuration, line-status decoding)
// behind one small synchronous contract: enumerate, open, configure, control
// DTR, read, write, close. Reads never block; callers poll.
//
// # Device resolution
//
// Open accepts several identifier forms and resolves them against a merged,
// sorted enumeration snapshot:
//
//	port, err := serline.Open("ser0", nil)          // index alias
//	port, err := serline.Open("USB Serial Port", nil) // description
//	port, err := serline.Open("/dev/ttyUSB0", nil)  // device name
//	port, err := serline.Open("/dev/custom", nil)   // verbatim fallback
//
// Ports this package has opened stay visible in the enumeration even when
// the host no longer lists them, so aliases remain stable while devices are
// held open.
//
// # Reading and line conditions
//
// Read returns clean data bytes together with a parallel break vector. The
// caller supplies both buffers and zeroes the break vector; entries are set
// to 1 at positions where a line BREAK occurred:
//
//	buf := make([]byte, 256)
//	brk := make([]byte, 256)
//	n, err := port.Read(buf, brk)
//
// On termios hosts, BREAK and parity/framing conditions arrive in band as
// FF-escape sequences and are stripped before the buffer is returned. On
// Windows the accumulated comm-error flags are consulted instead, and the
// BREAK position is a documented best-effort guess (the first NUL byte in
// the buffer).
//
// # Configuration
//
// Configure applies a complete line configuration as a value:
//
//	err := port.Configure(serline.Config{
//	    BaudRate: 9600,
//	    CharSize: 8,
//	    Parity:   serline.ParityNone,
//	    StopBits: serline.StopBitsOne,
//	})
//
// Character sizes 5-8 are accepted everywhere; the supported baud-rate set,
// mark/space parity, and 1.5 stop bits vary per host and are rejected with
// errors wrapping ErrInvalidConfig or ErrInvalidBaudRate where unsupported.
//
// # Status output
//
// DescribeDevices renders the enumeration and the open-port table for status
// commands:
//
//	serline.DescribeDevices(os.Stdout)
//
// # Diagnostics
//
// Expected host rejections (device absent, access denied, not a serial
// device) fail quietly. Unexpected host errors are reported through an
// optional zap logger before the operation returns its failure value:
//
//	serline.SetLogger(logger)
//
// # Platform support
//
// Linux (device-node probing, termios) and Windows (SERIALCOMM registry,
// DCB) are supported. On other hosts every operation fails with
// ErrNotSupported, and enumeration reports unsupported distinctly from an
// empty device list.
package serline
