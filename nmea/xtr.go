package nmea

import "github.com/luma/marbus/field"

const TagXTR = "XTR"

// XTR is the cross track error computed by dead reckoning.
//
//	$--XTR,x.x,a,N*hh
//	       |   | |
//	       |   | +- units, nautical miles
//	       |   +--- direction to steer, L or R
//	       +------- magnitude
type XTR struct {
	base

	Magnitude field.Optional[float64]
	Direction field.Optional[field.Side]
	Unit      field.Optional[field.Unit]
}

func NewXTR(talker string) *XTR {
	return &XTR{base: newBase(talker)}
}

func ParseXTR(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagXTR, fields, 3); err != nil {
		return nil, err
	}

	r := newFieldReader(TagXTR, fields)
	s := NewXTR(talker)
	s.Magnitude = read(r, 0, field.ParseFloat)
	s.Direction = read(r, 1, field.ParseSide)
	s.Unit = read(r, 2, field.ParseUnit)
	if r.err != nil {
		return nil, r.err
	}

	return s, nil
}

func (s *XTR) Tag() string { return TagXTR }

func (s *XTR) Fields() []string {
	return []string{
		field.FormatFloat(s.Magnitude, 2),
		field.FormatChar(s.Direction),
		field.FormatChar(s.Unit),
	}
}
