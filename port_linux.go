//go:build linux

package serline

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// handle is the host port reference: a raw file descriptor.
type handle = int

const invalidHandle handle = -1

// expectedOpenErrno classifies open(2) failures that are normal outcomes
// (reported quietly as an invalid device) versus unexpected host errors
// (reported with a diagnostic first).
func expectedOpenErrno(err error) bool {
	return errors.Is(err, unix.ENOENT) || errors.Is(err, unix.EACCES)
}

// openOS opens the named device and configures the line for raw polling:
// no input or output processing, receiver enabled, modem status ignored, and
// PARMRK set so parity errors and BREAK conditions are marked in band with
// FF-escape sequences that the read path decodes.
func openOS(name string) (handle, error) {
	fd, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		if !expectedOpenErrno(err) {
			diagErr("open", err)
		}
		return -1, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		// not a terminal device; an expected outcome for stray paths
		unix.Close(fd)
		return -1, fmt.Errorf("%w: %s is not a serial device", ErrDeviceNotFound, name)
	}

	tio.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INPCK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF
	tio.Iflag |= unix.PARMRK | unix.IGNPAR
	tio.Oflag &^= unix.OPOST
	tio.Cflag &^= unix.HUPCL
	tio.Cflag |= unix.CREAD | unix.CLOCAL
	tio.Lflag &^= unix.ISIG | unix.ICANON | unix.ECHO | unix.ECHOE |
		unix.ECHOK | unix.ECHONL | unix.NOFLSH | unix.TOSTOP | unix.IEXTEN

	// VMIN=0, VTIME=0: reads return immediately to enable polling
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		diagErr("tcsetattr", err)
		unix.Close(fd)
		return -1, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	// leave DTR deasserted until the consumer logically connects; hosts
	// without modem-control support reject this harmlessly
	_ = controlOS(fd, false)

	return fd, nil
}

// baudCode converts an integer baud rate to the host speed constant
func baudCode(rate int) (uint32, error) {
	switch rate {
	case 50:
		return unix.B50, nil
	case 75:
		return unix.B75, nil
	case 110:
		return unix.B110, nil
	case 134:
		return unix.B134, nil
	case 150:
		return unix.B150, nil
	case 200:
		return unix.B200, nil
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 1800:
		return unix.B1800, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 921600:
		return unix.B921600, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidBaudRate, rate)
	}
}

var charSizeCodes = [4]uint32{unix.CS5, unix.CS6, unix.CS7, unix.CS8}

// hostConfigCheck rejects values the termios backend cannot express:
// mark/space parity, 1.5 stop bits, and baud rates outside the speed table.
func hostConfigCheck(cfg Config) error {
	if _, err := baudCode(cfg.BaudRate); err != nil {
		return err
	}
	switch cfg.Parity {
	case ParityNone, ParityEven, ParityOdd:
	default:
		return fmt.Errorf("%w: %s parity not supported on this host", ErrInvalidConfig, cfg.Parity)
	}
	switch cfg.StopBits {
	case StopBitsOne, StopBitsTwo:
	default:
		return fmt.Errorf("%w: %s stop bits not supported on this host", ErrInvalidConfig, cfg.StopBits)
	}
	return nil
}

// configureOS applies baud rate and framing.
func configureOS(fd handle, cfg Config) error {
	if err := hostConfigCheck(cfg); err != nil {
		return err
	}

	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		diagErr("tcgetattr", err)
		return fmt.Errorf("tcgetattr: %w", err)
	}

	code, _ := baudCode(cfg.BaudRate)
	tio.Cflag = (tio.Cflag &^ unix.CBAUD) | code
	tio.Ispeed = code
	tio.Ospeed = code

	tio.Cflag = (tio.Cflag &^ unix.CSIZE) | charSizeCodes[cfg.CharSize-5]

	switch cfg.Parity {
	case ParityNone:
		tio.Cflag &^= unix.PARENB
	case ParityEven:
		tio.Cflag = (tio.Cflag &^ unix.PARODD) | unix.PARENB
	case ParityOdd:
		tio.Cflag |= unix.PARENB | unix.PARODD
	}

	switch cfg.StopBits {
	case StopBitsOne:
		tio.Cflag &^= unix.CSTOPB
	case StopBitsTwo:
		tio.Cflag |= unix.CSTOPB
	}

	if err := unix.IoctlSetTermios(fd, unix.TCSETSF, tio); err != nil {
		diagErr("tcsetattr", err)
		return fmt.Errorf("tcsetattr: %w", err)
	}
	return nil
}

// controlOS sets or clears the DTR modem-control line.
func controlOS(fd handle, assert bool) error {
	req := uint(unix.TIOCMBIC)
	if assert {
		req = unix.TIOCMBIS
	}
	if err := unix.IoctlSetPointerInt(fd, req, unix.TIOCM_DTR); err != nil {
		if !errors.Is(err, unix.EINVAL) {
			diagErr("ioctl", err)
		}
		return fmt.Errorf("dtr control: %w", err)
	}
	return nil
}

// readOS issues one non-blocking read and strips in-band line-condition
// escapes from the result. No pending data is success with a zero count.
func readOS(fd handle, buf, brk []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		diagErr("read", err)
		return 0, fmt.Errorf("read: %w", err)
	}
	return unstuffLineConditions(buf, n, brk), nil
}

func writeOS(fd handle, buf []byte) (int, error) {
	n, err := unix.Write(fd, buf)
	if err != nil {
		diagErr("write", err)
		return 0, fmt.Errorf("write: %w", err)
	}
	return n, nil
}

// closeOS releases the descriptor; close is terminal, errors are dropped.
func closeOS(fd handle) {
	unix.Close(fd)
}
