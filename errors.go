package serline

import "errors"

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound  = errors.New("serial device not found")
	ErrUnknownAlias    = errors.New("serial device alias out of range")
	ErrInvalidBaudRate = errors.New("invalid baud rate")
	ErrInvalidConfig   = errors.New("invalid serial configuration")
	ErrPortClosed      = errors.New("serial port is closed")
	ErrNotSupported    = errors.New("serial port support not available on this host")
)
