package seatalk

// WindAngle is message 0x10, apparent wind angle.
//
//	10 01 XX YY   angle XXYY/2 degrees right of bow
type WindAngle struct {
	HalfDegrees uint16
}

func parseWindAngle(raw Raw) (Message, error) {
	if err := expect(raw, IDApparentWindAngle, 4); err != nil {
		return nil, err
	}

	return WindAngle{HalfDegrees: uint16(raw[2])<<8 | uint16(raw[3])}, nil
}

func (m WindAngle) ID() ID { return IDApparentWindAngle }

func (m WindAngle) Raw() Raw {
	raw := frame(IDApparentWindAngle, 4, 0)
	raw[2] = byte(m.HalfDegrees >> 8)
	raw[3] = byte(m.HalfDegrees)

	return raw
}

func (m WindAngle) Degrees() float64 {
	return float64(m.HalfDegrees) / 2
}

// WindSpeed is message 0x11, apparent wind speed.
//
//	11 01 XX 0Y   speed (XX&0x7f) + Y/10, XX&0x80 set means m/s instead of knots
type WindSpeed struct {
	Units           uint8
	Tenths          uint8
	MetersPerSecond bool
}

func parseWindSpeed(raw Raw) (Message, error) {
	if err := expect(raw, IDApparentWindSpeed, 4); err != nil {
		return nil, err
	}

	return WindSpeed{
		Units:           raw[2] & 0x7f,
		Tenths:          raw[3] & 0x0f,
		MetersPerSecond: raw[2]&0x80 != 0,
	}, nil
}

func (m WindSpeed) ID() ID { return IDApparentWindSpeed }

func (m WindSpeed) Raw() Raw {
	raw := frame(IDApparentWindSpeed, 4, 0)
	raw[2] = m.Units & 0x7f
	if m.MetersPerSecond {
		raw[2] |= 0x80
	}
	raw[3] = m.Tenths & 0x0f

	return raw
}

func (m WindSpeed) Speed() float64 {
	return float64(m.Units) + float64(m.Tenths)/10
}
