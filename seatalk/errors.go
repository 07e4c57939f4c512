package seatalk

import "errors"

var (
	// ErrBusRead is a framing error: 0xff followed by something other than
	// 0x00 or 0xff.
	ErrBusRead = errors.New("seatalk: bus read error")

	// ErrStreamEnded is returned when the transport stops delivering bytes.
	// A live bus never goes quiet, so this is never a normal condition.
	ErrStreamEnded = errors.New("seatalk: stream ended")

	ErrUnknownMessage = errors.New("seatalk: unknown message kind")
	ErrInvalidFrame   = errors.New("seatalk: invalid frame")
	ErrDuplicateKind  = errors.New("seatalk: message kind already registered")
	ErrUnencodable    = errors.New("seatalk: frame cannot be put on the wire")
)
