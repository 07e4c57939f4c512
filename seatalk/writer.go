package seatalk

import (
	"fmt"
	"io"
)

// Escape renders a frame as the parity-marked byte stream a Framer reads back
// into the same frame. Bytes whose parity contradicts their role are quoted
// with 0xff 0x00 and a literal 0xff becomes 0xff 0xff.
func Escape(raw Raw) ([]byte, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, 3*len(raw))

	switch cmd := raw[0]; {
	case cmd == escapeByte:
		return nil, fmt.Errorf("command byte 0xff: %w", ErrUnencodable)
	case Parity(cmd):
		out = append(out, cmd)
	default:
		out = append(out, escapeByte, 0x00, cmd)
	}

	for _, b := range raw[1:] {
		switch {
		case b == escapeByte:
			out = append(out, escapeByte, escapeByte)
		case Parity(b):
			out = append(out, escapeByte, 0x00, b)
		default:
			out = append(out, b)
		}
	}

	return out, nil
}

func WriteFrame(w io.Writer, raw Raw) error {
	b, err := Escape(raw)
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}

// WriteMessage encodes and writes m. Messages with a Validate method are
// checked first, so values the frame layout cannot hold are refused instead
// of truncated.
func WriteMessage(w io.Writer, m Message) error {
	if v, ok := m.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return WriteFrame(w, Encode(m))
}
