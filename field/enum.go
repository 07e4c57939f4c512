package field

import "fmt"

// ParseChar parses a single character token restricted to the given set.
func ParseChar[T ~byte](tok string, valid ...T) (Optional[T], error) {
	if tok == "" {
		return None[T](), nil
	}

	if len(tok) != 1 {
		return None[T](), fmt.Errorf("%q is not a single character: %w", tok, ErrMalformed)
	}

	for _, v := range valid {
		if T(tok[0]) == v {
			return Some(v), nil
		}
	}

	return None[T](), fmt.Errorf("%q is not one of %q: %w", tok, string(toBytes(valid)), ErrMalformed)
}

func FormatChar[T ~byte](v Optional[T]) string {
	c, ok := v.Get()
	if !ok {
		return ""
	}

	return string([]byte{byte(c)})
}

func toBytes[T ~byte](vs []T) []byte {
	b := make([]byte, len(vs))
	for i, v := range vs {
		b[i] = byte(v)
	}

	return b
}

// Status is the A/V data validity flag.
type Status byte

const (
	StatusOK      Status = 'A'
	StatusWarning Status = 'V'
)

func ParseStatus(tok string) (Optional[Status], error) {
	return ParseChar(tok, StatusOK, StatusWarning)
}

func (s Status) MarshalText() ([]byte, error) { return []byte{byte(s)}, nil }

// Reference tells which north a bearing is relative to.
type Reference byte

const (
	ReferenceTrue     Reference = 'T'
	ReferenceMagnetic Reference = 'M'
	ReferenceRelative Reference = 'R'
)

func ParseReference(tok string) (Optional[Reference], error) {
	return ParseChar(tok, ReferenceTrue, ReferenceMagnetic, ReferenceRelative)
}

func (r Reference) MarshalText() ([]byte, error) { return []byte{byte(r)}, nil }

// Side is the direction to steer.
type Side byte

const (
	SideLeft  Side = 'L'
	SideRight Side = 'R'
)

func ParseSide(tok string) (Optional[Side], error) {
	return ParseChar(tok, SideLeft, SideRight)
}

func (s Side) MarshalText() ([]byte, error) { return []byte{byte(s)}, nil }

// Unit covers the distance and speed unit letters.
type Unit byte

const (
	UnitNauticalMiles Unit = 'N'
	UnitKilometers    Unit = 'K'
	UnitMeters        Unit = 'M'
	UnitFeet          Unit = 'f'
	UnitFathoms       Unit = 'F'
	UnitStatuteMiles  Unit = 'S'
)

func ParseUnit(tok string) (Optional[Unit], error) {
	return ParseChar(tok, UnitNauticalMiles, UnitKilometers, UnitMeters, UnitFeet, UnitFathoms, UnitStatuteMiles)
}

func (u Unit) MarshalText() ([]byte, error) { return []byte{byte(u)}, nil }

type Hemisphere byte

const (
	North Hemisphere = 'N'
	South Hemisphere = 'S'
	East  Hemisphere = 'E'
	West  Hemisphere = 'W'
)

func ParseNorthSouth(tok string) (Optional[Hemisphere], error) {
	return ParseChar(tok, North, South)
}

func ParseEastWest(tok string) (Optional[Hemisphere], error) {
	return ParseChar(tok, East, West)
}

func (h Hemisphere) MarshalText() ([]byte, error) { return []byte{byte(h)}, nil }

// Mode is the positioning system mode indicator added in NMEA 2.3.
type Mode byte

const (
	ModeAutonomous   Mode = 'A'
	ModeDifferential Mode = 'D'
	ModeEstimated    Mode = 'E'
	ModeFloatRTK     Mode = 'F'
	ModeManual       Mode = 'M'
	ModeNotValid     Mode = 'N'
	ModePrecise      Mode = 'P'
	ModeRTK          Mode = 'R'
	ModeSimulated    Mode = 'S'
)

func ParseMode(tok string) (Optional[Mode], error) {
	return ParseChar(tok, ModeAutonomous, ModeDifferential, ModeEstimated, ModeFloatRTK,
		ModeManual, ModeNotValid, ModePrecise, ModeRTK, ModeSimulated)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte{byte(m)}, nil }

// PointType classifies the point a ZDL sentence refers to.
type PointType byte

const (
	PointCollision PointType = 'C'
	PointTurning   PointType = 'T'
	PointReference PointType = 'R'
	PointWheelover PointType = 'W'
)

func ParsePointType(tok string) (Optional[PointType], error) {
	return ParseChar(tok, PointCollision, PointTurning, PointReference, PointWheelover)
}

func (p PointType) MarshalText() ([]byte, error) { return []byte{byte(p)}, nil }
