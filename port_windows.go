//go:build windows

package serline

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// handle is the host port reference: a Win32 file handle.
type handle = windows.Handle

const invalidHandle = windows.InvalidHandle

var (
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procGetDefaultCommConfig = kernel32.NewProc("GetDefaultCommConfigW")
	procGetCommState         = kernel32.NewProc("GetCommState")
	procSetCommState         = kernel32.NewProc("SetCommState")
	procSetCommTimeouts      = kernel32.NewProc("SetCommTimeouts")
	procEscapeCommFunction   = kernel32.NewProc("EscapeCommFunction")
	procClearCommError       = kernel32.NewProc("ClearCommError")
)

// dcb is the Win32 DCB device-control block. The Flags field is a bitfield;
// only the bits this package touches are named below.
type dcb struct {
	DCBlength  uint32
	BaudRate   uint32
	Flags      uint32
	wReserved  uint16
	XonLim     uint16
	XoffLim    uint16
	ByteSize   byte
	Parity     byte
	StopBits   byte
	XonChar    byte
	XoffChar   byte
	ErrorChar  byte
	EOFChar    byte
	EvtChar    byte
	wReserved1 uint16
}

const (
	dcbDTRControlMask = uint32(0x00000030) // fDtrControl: 00 = disabled
	dcbOutX           = uint32(0x00000100)
	dcbInX            = uint32(0x00000200)
)

// commConfig is the Win32 COMMCONFIG structure returned by
// GetDefaultCommConfig; only the embedded DCB is of interest.
type commConfig struct {
	dwSize            uint32
	wVersion          uint16
	wReserved         uint16
	dcb               dcb
	dwProviderSubType uint32
	dwProviderOffset  uint32
	dwProviderSize    uint32
	wcProviderData    [1]uint16
}

type commTimeouts struct {
	ReadIntervalTimeout         uint32
	ReadTotalTimeoutMultiplier  uint32
	ReadTotalTimeoutConstant    uint32
	WriteTotalTimeoutMultiplier uint32
	WriteTotalTimeoutConstant   uint32
}

type comstat struct {
	Flags  uint32
	InQue  uint32
	OutQue uint32
}

const (
	ceBreak = uint32(0x0010)

	noParity    = 0
	oddParity   = 1
	evenParity  = 2
	markParity  = 3
	spaceParity = 4

	oneStopBit   = 0
	one5StopBits = 1
	twoStopBits  = 2

	setDTRFn = 5
	clrDTRFn = 6
)

func getCommState(h handle, d *dcb) error {
	d.DCBlength = uint32(unsafe.Sizeof(*d))
	r, _, err := procGetCommState.Call(uintptr(h), uintptr(unsafe.Pointer(d)))
	if r == 0 {
		return err
	}
	return nil
}

func setCommState(h handle, d *dcb) error {
	d.DCBlength = uint32(unsafe.Sizeof(*d))
	r, _, err := procSetCommState.Call(uintptr(h), uintptr(unsafe.Pointer(d)))
	if r == 0 {
		return err
	}
	return nil
}

// expectedOpenError classifies CreateFile failures that are normal outcomes:
// the device does not exist, or another process already owns it.
func expectedOpenError(err error) bool {
	return errors.Is(err, windows.ERROR_FILE_NOT_FOUND) ||
		errors.Is(err, windows.ERROR_ACCESS_DENIED)
}

// devicePath maps a port symbol to the namespace CreateFile requires; ports
// beyond COM9 are only reachable through the \\.\ prefix.
func devicePath(name string) string {
	if strings.HasPrefix(name, `\\.\`) {
		return name
	}
	return `\\.\` + name
}

// openOS opens the named port, applies the host's default communication
// parameters with DTR disabled, and sets the timeouts for immediate return
// on read so the caller can poll.
//
// GetDefaultCommConfig doubles as the "is this a communications port"
// check: it fails with ERROR_INVALID_PARAMETER for anything else, which is
// an expected outcome. GetCommState performs the same role after the open,
// since CreateFile itself cannot be limited to serial devices.
func openOS(name string) (handle, error) {
	var def commConfig
	def.dwSize = uint32(unsafe.Sizeof(def))
	size := def.dwSize

	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return windows.InvalidHandle, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}
	r, _, callErr := procGetDefaultCommConfig.Call(
		uintptr(unsafe.Pointer(namep)),
		uintptr(unsafe.Pointer(&def)),
		uintptr(unsafe.Pointer(&size)),
	)
	if r == 0 {
		if !errors.Is(callErr, windows.ERROR_INVALID_PARAMETER) {
			diagErr("GetDefaultCommConfig", callErr)
		}
		return windows.InvalidHandle, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	pathp, err := windows.UTF16PtrFromString(devicePath(name))
	if err != nil {
		return windows.InvalidHandle, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}
	h, err := windows.CreateFile(pathp,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0, nil, windows.OPEN_EXISTING, 0, 0)
	if err != nil {
		if !expectedOpenError(err) {
			diagErr("CreateFile", err)
		}
		return windows.InvalidHandle, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	var cur dcb
	if err := getCommState(h, &cur); err != nil {
		if !errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
			diagErr("GetCommState", err)
		}
		windows.CloseHandle(h)
		return windows.InvalidHandle, fmt.Errorf("%w: %s is not a serial device", ErrDeviceNotFound, name)
	}

	// carry over the default parameters of interest; the default COMMCONFIG
	// DCB cannot be applied wholesale because some of its fields are unset
	cur.BaudRate = def.dcb.BaudRate
	cur.Parity = def.dcb.Parity
	cur.ByteSize = def.dcb.ByteSize
	cur.StopBits = def.dcb.StopBits
	cur.Flags = (cur.Flags &^ (dcbOutX | dcbInX)) | (def.dcb.Flags & (dcbOutX | dcbInX))

	// disable DTR until the consumer logically connects
	cur.Flags &^= dcbDTRControlMask

	if err := setCommState(h, &cur); err != nil {
		diagErr("SetCommState", err)
		windows.CloseHandle(h)
		return windows.InvalidHandle, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	cto := commTimeouts{
		ReadIntervalTimeout: ^uint32(0), // MAXDWORD: return immediately on read
	}
	r, _, callErr = procSetCommTimeouts.Call(uintptr(h), uintptr(unsafe.Pointer(&cto)))
	if r == 0 {
		diagErr("SetCommTimeouts", callErr)
		windows.CloseHandle(h)
		return windows.InvalidHandle, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	return h, nil
}

// configureOS applies baud rate and framing through the DCB. The host
// validates the combination on SetCommState; an ERROR_INVALID_PARAMETER
// rejection is an argument error, anything else is a transport failure.
func configureOS(h handle, cfg Config) error {
	var d dcb
	if err := getCommState(h, &d); err != nil {
		diagErr("GetCommState", err)
		return fmt.Errorf("GetCommState: %w", err)
	}

	d.BaudRate = uint32(cfg.BaudRate)
	d.ByteSize = byte(cfg.CharSize)

	switch cfg.Parity {
	case ParityNone:
		d.Parity = noParity
	case ParityEven:
		d.Parity = evenParity
	case ParityOdd:
		d.Parity = oddParity
	case ParityMark:
		d.Parity = markParity
	case ParitySpace:
		d.Parity = spaceParity
	}

	switch cfg.StopBits {
	case StopBitsOne:
		d.StopBits = oneStopBit
	case StopBitsOneAndHalf:
		d.StopBits = one5StopBits
	case StopBitsTwo:
		d.StopBits = twoStopBits
	}

	if err := setCommState(h, &d); err != nil {
		if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
			return fmt.Errorf("%w: combination rejected by host", ErrInvalidConfig)
		}
		diagErr("SetCommState", err)
		return fmt.Errorf("SetCommState: %w", err)
	}
	return nil
}

// controlOS sets or clears the DTR modem-control line.
func controlOS(h handle, assert bool) error {
	fn := uintptr(clrDTRFn)
	if assert {
		fn = setDTRFn
	}
	r, _, err := procEscapeCommFunction.Call(uintptr(h), fn)
	if r == 0 {
		diagErr("EscapeCommFunction", err)
		return fmt.Errorf("dtr control: %w", err)
	}
	return nil
}

// readOS reads any pending bytes and consults the accumulated line-error
// flags. The host does not associate a BREAK with a byte position, so the
// position is inferred from the buffer contents.
func readOS(h handle, buf, brk []byte) (int, error) {
	var flags uint32
	var stat comstat
	r, _, err := procClearCommError.Call(uintptr(h),
		uintptr(unsafe.Pointer(&flags)), uintptr(unsafe.Pointer(&stat)))
	if r == 0 {
		diagErr("ClearCommError", err)
		return 0, fmt.Errorf("ClearCommError: %w", err)
	}

	var done uint32
	if err := windows.ReadFile(h, buf, &done, nil); err != nil {
		diagErr("ReadFile", err)
		return 0, fmt.Errorf("ReadFile: %w", err)
	}
	n := int(done)

	if flags&ceBreak != 0 {
		markBreakGuess(buf, n, brk)
	}
	return n, nil
}

func writeOS(h handle, buf []byte) (int, error) {
	var done uint32
	if err := windows.WriteFile(h, buf, &done, nil); err != nil {
		diagErr("WriteFile", err)
		return 0, fmt.Errorf("WriteFile: %w", err)
	}
	return int(done), nil
}

// closeOS releases the handle; close is terminal, errors are dropped.
func closeOS(h handle) {
	windows.CloseHandle(h)
}
