package nmea

import "github.com/luma/marbus/field"

const TagVTG = "VTG"

// VTG is track made good and ground speed.
//
//	$--VTG,x.x,T,x.x,M,x.x,N,x.x,K,m*hh
//
// Like BWC the mode indicator is optional for pre 2.3 talkers. The reference
// and unit letters are kept as sent, receivers often send them without a
// value; the Set methods fill in both.
type VTG struct {
	base

	TrackTrue        field.Optional[float64]
	TrackTrueRef     field.Optional[field.Reference]
	TrackMagnetic    field.Optional[float64]
	TrackMagneticRef field.Optional[field.Reference]
	SpeedKnots       field.Optional[float64]
	SpeedKnotsUnit   field.Optional[field.Unit]
	SpeedKmh         field.Optional[float64]
	SpeedKmhUnit     field.Optional[field.Unit]
	Mode             field.Optional[field.Mode]

	legacy bool
}

func NewVTG(talker string) *VTG {
	return &VTG{base: newBase(talker)}
}

func ParseVTG(talker string, fields []string) (Sentence, error) {
	if err := expectFields(TagVTG, fields, 8, 9); err != nil {
		return nil, err
	}

	r := newFieldReader(TagVTG, fields)
	s := NewVTG(talker)
	s.TrackTrue = read(r, 0, field.ParseFloat)
	s.TrackTrueRef = readUnit(r, 1, field.ReferenceTrue)
	s.TrackMagnetic = read(r, 2, field.ParseFloat)
	s.TrackMagneticRef = readUnit(r, 3, field.ReferenceMagnetic)
	s.SpeedKnots = read(r, 4, field.ParseFloat)
	s.SpeedKnotsUnit = readUnit(r, 5, field.UnitNauticalMiles)
	s.SpeedKmh = read(r, 6, field.ParseFloat)
	s.SpeedKmhUnit = readUnit(r, 7, field.UnitKilometers)
	if len(fields) == 9 {
		s.Mode = read(r, 8, field.ParseMode)
	} else {
		s.legacy = true
	}
	if r.err != nil {
		return nil, r.err
	}

	return s, nil
}

func (s *VTG) SetTrackTrue(deg float64) {
	s.TrackTrue = field.Some(deg)
	s.TrackTrueRef = field.Some(field.ReferenceTrue)
}

func (s *VTG) SetTrackMagnetic(deg float64) {
	s.TrackMagnetic = field.Some(deg)
	s.TrackMagneticRef = field.Some(field.ReferenceMagnetic)
}

func (s *VTG) SetSpeedKnots(kn float64) {
	s.SpeedKnots = field.Some(kn)
	s.SpeedKnotsUnit = field.Some(field.UnitNauticalMiles)
}

func (s *VTG) SetSpeedKmh(kmh float64) {
	s.SpeedKmh = field.Some(kmh)
	s.SpeedKmhUnit = field.Some(field.UnitKilometers)
}

func (s *VTG) Tag() string { return TagVTG }

func (s *VTG) Fields() []string {
	fields := []string{
		field.FormatFloat(s.TrackTrue, 1),
		field.FormatChar(s.TrackTrueRef),
		field.FormatFloat(s.TrackMagnetic, 1),
		field.FormatChar(s.TrackMagneticRef),
		field.FormatFloat(s.SpeedKnots, 1),
		field.FormatChar(s.SpeedKnotsUnit),
		field.FormatFloat(s.SpeedKmh, 1),
		field.FormatChar(s.SpeedKmhUnit),
	}

	if !s.legacy || s.Mode.IsSet() {
		fields = append(fields, field.FormatChar(s.Mode))
	}

	return fields
}
