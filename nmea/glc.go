package nmea

import (
	"fmt"

	"github.com/luma/marbus/field"
)

const TagGLC = "GLC"

// GLCSecondaries is the number of secondary stations in a GLC sentence.
const GLCSecondaries = 5

// TimeDifference is one Loran-C time difference and its signal status.
type TimeDifference struct {
	Diff   float64
	Status field.Status
}

// GLC is a Loran-C geographic position.
//
//	$--GLC,xxxx,x.x,a,x.x,a,x.x,a,x.x,a,x.x,a,x.x,a*hh
//	       |    |     |
//	       |    |     +- five secondaries, time difference and status
//	       |    +------- master, time difference and status
//	       +------------ group repetition interval, in tens of microseconds
type GLC struct {
	base

	GRI         field.Optional[int]
	Master      field.Optional[TimeDifference]
	Secondaries [GLCSecondaries]field.Optional[TimeDifference]
}

func NewGLC(talker string) *GLC {
	return &GLC{base: newBase(talker)}
}

func ParseGLC(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagGLC, fields, 3+2*GLCSecondaries); err != nil {
		return nil, err
	}

	r := newFieldReader(TagGLC, fields)
	s := NewGLC(talker)
	s.GRI = read(r, 0, field.ParseInt)
	s.Master = readTimeDifference(r, 1)
	for i := range s.Secondaries {
		s.Secondaries[i] = readTimeDifference(r, 3+2*i)
	}
	if r.err != nil {
		return nil, r.err
	}

	return s, nil
}

// readTimeDifference reads a value and status pair. Either both are present or
// both are empty.
func readTimeDifference(r *fieldReader, i int) field.Optional[TimeDifference] {
	diff := read(r, i, field.ParseFloat)
	status := read(r, i+1, field.ParseStatus)

	switch {
	case diff.IsSet() && status.IsSet():
		return field.Some(TimeDifference{Diff: diff.Value(), Status: status.Value()})
	case diff.IsSet() != status.IsSet():
		r.fail(i, fmt.Errorf("time difference without status: %w", field.ErrMalformed))
	}

	return field.None[TimeDifference]()
}

func (s *GLC) Tag() string { return TagGLC }

func (s *GLC) Fields() []string {
	fields := make([]string, 0, 3+2*GLCSecondaries)
	fields = append(fields, field.FormatInt(s.GRI, 4))
	fields = appendTimeDifference(fields, s.Master)
	for _, td := range s.Secondaries {
		fields = appendTimeDifference(fields, td)
	}

	return fields
}

func appendTimeDifference(fields []string, v field.Optional[TimeDifference]) []string {
	td, ok := v.Get()
	if !ok {
		return append(fields, "", "")
	}

	return append(fields,
		field.FormatFloat(field.Some(td.Diff), 1),
		field.FormatChar(field.Some(td.Status)),
	)
}
