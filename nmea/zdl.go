package nmea

import (
	"time"

	"github.com/luma/marbus/field"
)

const TagZDL = "ZDL"

// ZDL is time and distance to a variable point.
//
//	$--ZDL,hhhmmss.ss,x.x,a*hh
type ZDL struct {
	base

	TimeToPoint     field.Optional[time.Duration]
	DistanceToPoint field.Optional[float64]
	PointType       field.Optional[field.PointType]
}

func NewZDL(talker string) *ZDL {
	return &ZDL{base: newBase(talker)}
}

func ParseZDL(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagZDL, fields, 3); err != nil {
		return nil, err
	}

	r := newFieldReader(TagZDL, fields)
	s := NewZDL(talker)
	s.TimeToPoint = read(r, 0, field.ParseDuration)
	s.DistanceToPoint = read(r, 1, field.ParseFloat)
	s.PointType = read(r, 2, field.ParsePointType)
	if r.err != nil {
		return nil, r.err
	}

	return s, nil
}

func (s *ZDL) Tag() string { return TagZDL }

func (s *ZDL) Fields() []string {
	return []string{
		field.FormatDuration(s.TimeToPoint),
		field.FormatFloat(s.DistanceToPoint, 1),
		field.FormatChar(s.PointType),
	}
}
