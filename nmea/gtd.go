package nmea

import "github.com/luma/marbus/field"

const TagGTD = "GTD"

// GTDValues is the number of time differences in a GTD sentence.
const GTDValues = 5

// GTD carries raw Loran-C time differences.
//
//	$--GTD,x.x,x.x,x.x,x.x,x.x*hh
type GTD struct {
	base

	TimeDiffs [GTDValues]field.Optional[float64]
}

func NewGTD(talker string) *GTD {
	return &GTD{base: newBase(talker)}
}

func ParseGTD(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagGTD, fields, GTDValues); err != nil {
		return nil, err
	}

	r := newFieldReader(TagGTD, fields)
	s := NewGTD(talker)
	for i := range s.TimeDiffs {
		s.TimeDiffs[i] = read(r, i, field.ParseFloat)
	}
	if r.err != nil {
		return nil, r.err
	}

	return s, nil
}

func (s *GTD) Tag() string { return TagGTD }

func (s *GTD) Fields() []string {
	fields := make([]string, GTDValues)
	for i, v := range s.TimeDiffs {
		fields[i] = field.FormatFloat(v, 1)
	}

	return fields
}
