package nmea

import "github.com/luma/marbus/field"

const TagR00 = "R00"

// R00Waypoints is the fixed number of waypoint slots in an R00 sentence.
const R00Waypoints = 14

// R00 lists the waypoints of the active route, unused slots are empty.
//
//	$--R00,c---c,c---c,....*hh
type R00 struct {
	base

	Waypoints [R00Waypoints]field.Optional[string]
}

func NewR00(talker string) *R00 {
	return &R00{base: newBase(talker)}
}

func ParseR00(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagR00, fields, R00Waypoints); err != nil {
		return nil, err
	}

	r := newFieldReader(TagR00, fields)
	s := NewR00(talker)
	for i := range s.Waypoints {
		s.Waypoints[i] = r.text(i)
	}

	return s, nil
}

func (s *R00) Tag() string { return TagR00 }

func (s *R00) Fields() []string {
	fields := make([]string, R00Waypoints)
	for i, v := range s.Waypoints {
		fields[i] = field.FormatText(v)
	}

	return fields
}
