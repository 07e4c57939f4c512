package nmea

import (
	"github.com/luma/marbus/field"
	"github.com/luma/marbus/geo"
)

const TagBWC = "BWC"

// BWC is bearing and distance to a waypoint along the great circle.
//
//	$--BWC,hhmmss.ss,llll.ll,a,yyyyy.yy,a,x.x,T,x.x,M,x.x,N,c--c,m*hh
//
// The trailing mode indicator was added in NMEA 2.3; twelve field sentences
// from older talkers are accepted and written back without it.
type BWC struct {
	base

	Time               field.Optional[field.Time]
	Latitude           field.Optional[geo.Latitude]
	Longitude          field.Optional[geo.Longitude]
	BearingTrue        field.Optional[float64]
	BearingTrueRef     field.Optional[field.Reference]
	BearingMagnetic    field.Optional[float64]
	BearingMagneticRef field.Optional[field.Reference]
	Distance           field.Optional[float64]
	DistanceUnit       field.Optional[field.Unit]
	Waypoint           field.Optional[string]
	Mode               field.Optional[field.Mode]

	legacy bool
}

func NewBWC(talker string) *BWC {
	return &BWC{base: newBase(talker)}
}

func ParseBWC(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagBWC, fields, 12, 13); err != nil {
		return nil, err
	}

	r := newFieldReader(TagBWC, fields)
	s := NewBWC(talker)
	s.Time = read(r, 0, field.ParseTime)
	s.Latitude = field.CorrectLatitude(read(r, 1, field.ParseLatitude), read(r, 2, field.ParseNorthSouth))
	s.Longitude = field.CorrectLongitude(read(r, 3, field.ParseLongitude), read(r, 4, field.ParseEastWest))
	s.BearingTrue = read(r, 5, field.ParseFloat)
	s.BearingTrueRef = readUnit(r, 6, field.ReferenceTrue)
	s.BearingMagnetic = read(r, 7, field.ParseFloat)
	s.BearingMagneticRef = readUnit(r, 8, field.ReferenceMagnetic)
	s.Distance = read(r, 9, field.ParseFloat)
	s.DistanceUnit = readUnit(r, 10, field.UnitNauticalMiles)
	s.Waypoint = r.text(11)
	if len(fields) == 13 {
		s.Mode = read(r, 12, field.ParseMode)
	} else {
		s.legacy = true
	}
	if r.err != nil {
		return nil, r.err
	}

	return s, nil
}

// SetBearingTrue sets the bearing together with its T reference letter.
func (s *BWC) SetBearingTrue(deg float64) {
	s.BearingTrue = field.Some(deg)
	s.BearingTrueRef = field.Some(field.ReferenceTrue)
}

func (s *BWC) SetBearingMagnetic(deg float64) {
	s.BearingMagnetic = field.Some(deg)
	s.BearingMagneticRef = field.Some(field.ReferenceMagnetic)
}

func (s *BWC) SetDistance(nm float64) {
	s.Distance = field.Some(nm)
	s.DistanceUnit = field.Some(field.UnitNauticalMiles)
}

func (s *BWC) Tag() string { return TagBWC }

func (s *BWC) Fields() []string {
	fields := []string{
		field.FormatTime(s.Time),
		field.FormatLatitude(s.Latitude),
		field.FormatChar(field.LatitudeHemisphere(s.Latitude)),
		field.FormatLongitude(s.Longitude),
		field.FormatChar(field.LongitudeHemisphere(s.Longitude)),
		field.FormatFloat(s.BearingTrue, 1),
		field.FormatChar(s.BearingTrueRef),
		field.FormatFloat(s.BearingMagnetic, 1),
		field.FormatChar(s.BearingMagneticRef),
		field.FormatFloat(s.Distance, 1),
		field.FormatChar(s.DistanceUnit),
		field.FormatText(s.Waypoint),
	}

	if !s.legacy || s.Mode.IsSet() {
		fields = append(fields, field.FormatChar(s.Mode))
	}

	return fields
}
