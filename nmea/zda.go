package nmea

import (
	"fmt"

	"github.com/luma/marbus/field"
)

const TagZDA = "ZDA"

// ZDA is UTC time and date with the local zone offset.
//
//	$--ZDA,hhmmss.ss,xx,xx,xxxx,xx,xx*hh
type ZDA struct {
	base

	Time        field.Optional[field.Time]
	Day         field.Optional[int]
	Month       field.Optional[int]
	Year        field.Optional[int]
	ZoneHours   field.Optional[int]
	ZoneMinutes field.Optional[int]
}

func NewZDA(talker string) *ZDA {
	return &ZDA{base: newBase(talker)}
}

func ParseZDA(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagZDA, fields, 6); err != nil {
		return nil, err
	}

	r := newFieldReader(TagZDA, fields)
	s := NewZDA(talker)
	s.Time = read(r, 0, field.ParseTime)
	s.Day = read(r, 1, ranged(1, 31))
	s.Month = read(r, 2, ranged(1, 12))
	s.Year = read(r, 3, field.ParseInt)
	s.ZoneHours = read(r, 4, ranged(-13, 13))
	s.ZoneMinutes = read(r, 5, ranged(0, 59))
	if r.err != nil {
		return nil, r.err
	}

	return s, nil
}

func (s *ZDA) Tag() string { return TagZDA }

func (s *ZDA) Fields() []string {
	return []string{
		field.FormatTime(s.Time),
		field.FormatInt(s.Day, 2),
		field.FormatInt(s.Month, 2),
		field.FormatInt(s.Year, 4),
		field.FormatInt(s.ZoneHours, 2),
		field.FormatInt(s.ZoneMinutes, 2),
	}
}

// ranged returns an integer parser that rejects values outside [lo, hi].
func ranged(lo, hi int) func(string) (field.Optional[int], error) {
	return func(tok string) (field.Optional[int], error) {
		v, err := field.ParseInt(tok)
		if err != nil {
			return v, err
		}

		if i, ok := v.Get(); ok && (i < lo || i > hi) {
			return field.None[int](), fmt.Errorf("%d not in [%d, %d]: %w", i, lo, hi, field.ErrOutOfRange)
		}

		return v, nil
	}
}
