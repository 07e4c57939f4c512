package seatalk

import (
	"fmt"
	"math/bits"
)

const (
	// MaxFrameSize is command + attribute + at most 16 payload bytes.
	MaxFrameSize = 18

	escapeByte = 0xff

	remainingUnsynced  = 255
	remainingAttribute = 254
)

type Mode uint8

const (
	ModeRead Mode = iota
	ModeEscape
	ModeParity
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "READ"
	case ModeEscape:
		return "ESCAPE"
	case ModeParity:
		return "PARITY"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Parity reports whether the eight data bits of b hold an even number of ones.
// Outside of escape sequences such a byte is a command byte.
func Parity(b byte) bool {
	return bits.OnesCount8(b)%2 == 0
}

// State is the complete framing state of one bus. It is a plain value: Next
// computes the successor state without touching the receiver, so every
// transition can be exercised on its own.
type State struct {
	mode       Mode
	remaining  uint8
	collisions uint64
	index      int
	data       [MaxFrameSize]byte
}

// NewState returns the initial state, unsynchronized and reading.
func NewState() State {
	return State{mode: ModeRead, remaining: remainingUnsynced}
}

func (s State) Mode() Mode {
	return s.mode
}

// Remaining is 255 before the first command byte, 254 while waiting for the
// attribute byte, 0 once a frame is complete and otherwise the number of bytes
// still missing from the current frame.
func (s State) Remaining() uint8 {
	return s.remaining
}

func (s State) Collisions() uint64 {
	return s.collisions
}

// Synced reports whether a command byte has been seen since start or since the
// last framing error.
func (s State) Synced() bool {
	return s.remaining != remainingUnsynced
}

// Next consumes one byte. It returns the successor state and, when b closes a
// frame, the frame. The returned frame does not share memory with the state.
func (s State) Next(b byte) (State, Raw, error) {
	switch s.mode {
	case ModeRead:
		if b == escapeByte {
			s.mode = ModeEscape
			return s, nil, nil
		}

		if Parity(b) {
			return s.writeCmd(b), nil, nil
		}

		return s.writeData(b)

	case ModeEscape:
		switch b {
		case 0x00:
			s.mode = ModeParity
			return s, nil, nil

		case escapeByte:
			s.mode = ModeRead
			return s.writeData(b)

		default:
			// Drop everything until the next command byte resyncs us.
			s.mode = ModeRead
			s.remaining = remainingUnsynced
			s.index = 0
			return s, nil, fmt.Errorf("escape sequence 0xff 0x%02x: %w", b, ErrBusRead)
		}

	case ModeParity:
		// The byte arrived with a parity error, so its command/data meaning is
		// the opposite of what Parity says.
		s.mode = ModeRead
		if Parity(b) {
			return s.writeData(b)
		}

		return s.writeCmd(b), nil, nil

	default:
		return NewState(), nil, fmt.Errorf("framer in %v: %w", s.mode, ErrBusRead)
	}
}

func (s State) writeCmd(c byte) State {
	if s.remaining > 0 && s.remaining < remainingAttribute {
		s.collisions++
	}

	s.data[0] = c
	s.index = 1
	s.remaining = remainingAttribute

	return s
}

func (s State) writeData(c byte) (State, Raw, error) {
	if s.index >= len(s.data) || s.remaining == 0 || s.remaining == remainingUnsynced {
		return s, nil, nil
	}

	if s.remaining == remainingAttribute {
		// -1 because the attribute byte itself is consumed below
		s.remaining = 3 + (c & 0x0f) - 1
	}

	s.data[s.index] = c
	s.index++
	s.remaining--

	if s.remaining != 0 {
		return s, nil, nil
	}

	frame := make(Raw, s.index)
	copy(frame, s.data[:s.index])

	return s, frame, nil
}

// Framer reassembles SeaTalk frames from the byte stream of one bus. It is not
// safe for concurrent use; run one Framer per bus connection.
type Framer struct {
	state State
}

func NewFramer() *Framer {
	return &Framer{state: NewState()}
}

// Feed consumes exactly one byte and returns a frame when b completes one.
// After an error the Framer stays usable and resynchronizes on the next command
// byte.
func (f *Framer) Feed(b byte) (Raw, error) {
	var (
		frame Raw
		err   error
	)

	f.state, frame, err = f.state.Next(b)

	return frame, err
}

func (f *Framer) State() State {
	return f.state
}

func (f *Framer) Collisions() uint64 {
	return f.state.collisions
}
