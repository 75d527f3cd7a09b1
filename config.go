package serline

import "fmt"

// Parity represents the parity mode. Mark and space parity are only
// supported on Windows hosts.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
	ParityMark
	ParitySpace
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	case ParityMark:
		return "mark"
	case ParitySpace:
		return "space"
	default:
		return fmt.Sprintf("parity(%d)", int(p))
	}
}

// StopBits represents the number of stop bits per character. The zero value
// means 1.5 stop bits, which is only supported on Windows hosts.
type StopBits int

const (
	StopBitsOneAndHalf StopBits = 0
	StopBitsOne        StopBits = 1
	StopBitsTwo        StopBits = 2
)

func (s StopBits) String() string {
	switch s {
	case StopBitsOneAndHalf:
		return "1.5"
	case StopBitsOne:
		return "1"
	case StopBitsTwo:
		return "2"
	default:
		return fmt.Sprintf("stopbits(%d)", int(s))
	}
}

// Config holds the line configuration applied by Port.Configure. It is a
// value type: the port itself retains the effective configuration, Config is
// not stored by this package.
type Config struct {
	BaudRate int
	CharSize int
	Parity   Parity
	StopBits StopBits
}

// DefaultConfig returns a configuration with conventional defaults (9600 8N1).
func DefaultConfig() Config {
	return Config{
		BaudRate: 9600,
		CharSize: 8,
		Parity:   ParityNone,
		StopBits: StopBitsOne,
	}
}

// validate checks the host-independent constraints. Platform-specific
// restrictions (supported baud rates, parity subset, 1.5 stop bits) are
// checked when the configuration is applied.
func (c Config) validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: baud rate %d", ErrInvalidBaudRate, c.BaudRate)
	}
	if c.CharSize < 5 || c.CharSize > 8 {
		return fmt.Errorf("%w: character size %d", ErrInvalidConfig, c.CharSize)
	}
	switch c.Parity {
	case ParityNone, ParityEven, ParityOdd, ParityMark, ParitySpace:
	default:
		return fmt.Errorf("%w: parity %d", ErrInvalidConfig, int(c.Parity))
	}
	switch c.StopBits {
	case StopBitsOne, StopBitsTwo, StopBitsOneAndHalf:
	default:
		return fmt.Errorf("%w: stop bits %d", ErrInvalidConfig, int(c.StopBits))
	}
	return nil
}
