package nmea

import (
	"fmt"

	"github.com/luma/marbus/field"
)

// Sentence is a decoded NMEA sentence.
type Sentence interface {
	// Talker is the two character source id, or "P" for proprietary sentences.
	Talker() string
	Tag() string
	// Fields renders the data fields in order, empty strings for absent values.
	Fields() []string
}

// DefaultTalker is used by the New* constructors when no talker is given.
const DefaultTalker = "GP"

type base struct {
	talker string
}

func newBase(talker string) base {
	if talker == "" {
		talker = DefaultTalker
	}

	return base{talker: talker}
}

func (b base) Talker() string { return b.talker }

func expectFields(tag string, fields []string, counts ...int) error {
	for _, n := range counts {
		if len(fields) == n {
			return nil
		}
	}

	return fmt.Errorf("%s: got %d fields, want %v: %w", tag, len(fields), counts, ErrFieldCount)
}

// fieldReader keeps the first field error so that sentence parsers can read
// all their fields in a row and check once.
type fieldReader struct {
	tag    string
	fields []string
	err    error
}

func newFieldReader(tag string, fields []string) *fieldReader {
	return &fieldReader{tag: tag, fields: fields}
}

func (r *fieldReader) text(i int) field.Optional[string] {
	return field.ParseText(r.fields[i])
}

func (r *fieldReader) fail(i int, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s field %d: %w: %w", r.tag, i+1, ErrMalformedField, err)
	}
}

func read[T any](r *fieldReader, i int, parse func(string) (field.Optional[T], error)) field.Optional[T] {
	v, err := parse(r.fields[i])
	if err != nil {
		r.fail(i, err)
	}

	return v
}

// readUnit reads a fixed unit or reference letter. An empty token is fine, any
// other letter than want is malformed.
func readUnit[T ~byte](r *fieldReader, i int, want T) field.Optional[T] {
	v, err := field.ParseChar(r.fields[i], want)
	if err != nil {
		r.fail(i, err)
	}

	return v
}
