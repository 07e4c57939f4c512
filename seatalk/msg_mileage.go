package seatalk

import (
	"fmt"

	"github.com/luma/marbus/field"
)

// MaxLogDistance is the largest 20 bit log value 0x21 and 0x25 can carry. Raw
// keeps only the low 20 bits of larger values; WriteMessage refuses them.
const MaxLogDistance = 1<<20 - 1

func checkLogDistance(id ID, name string, v uint32) error {
	if v > MaxLogDistance {
		return fmt.Errorf("%v %s %d exceeds %d: %w", id, name, v, MaxLogDistance, ErrUnencodable)
	}

	return nil
}

// TripMileage is message 0x21.
//
//	21 02 XX XX 0X   trip mileage XXXXX/100 nautical miles
type TripMileage struct {
	Distance uint32 // 1/100 nautical miles, at most MaxLogDistance
}

func parseTripMileage(raw Raw) (Message, error) {
	if err := expect(raw, IDTripMileage, 5); err != nil {
		return nil, err
	}

	d := uint32(raw[4]&0x0f)<<16 | uint32(field.Uint16(raw[2:4]))

	return TripMileage{Distance: d}, nil
}

func (m TripMileage) ID() ID { return IDTripMileage }

func (m TripMileage) Raw() Raw {
	raw := frame(IDTripMileage, 5, 0)
	field.PutUint16(raw[2:4], uint16(m.Distance))
	raw[4] = byte(m.Distance>>16) & 0x0f

	return raw
}

func (m TripMileage) Validate() error {
	return checkLogDistance(IDTripMileage, "distance", m.Distance)
}

func (m TripMileage) NauticalMiles() float64 {
	return field.Scaled(m.Distance, 100)
}

// TotalMileage is message 0x22.
//
//	22 02 XX XX 00   total mileage XXXX/10 nautical miles
type TotalMileage struct {
	Distance uint16 // 1/10 nautical miles
}

func parseTotalMileage(raw Raw) (Message, error) {
	if err := expect(raw, IDTotalMileage, 5); err != nil {
		return nil, err
	}

	return TotalMileage{Distance: field.Uint16(raw[2:4])}, nil
}

func (m TotalMileage) ID() ID { return IDTotalMileage }

func (m TotalMileage) Raw() Raw {
	raw := frame(IDTotalMileage, 5, 0)
	field.PutUint16(raw[2:4], m.Distance)

	return raw
}

func (m TotalMileage) NauticalMiles() float64 {
	return field.Scaled(uint32(m.Distance), 10)
}

// TotalAndTripLog is message 0x25, total and trip log in one frame.
//
//	25 Z4 XX YY UU VV AW   total (XX + YY*256 + Z*65536)/10 nm
//	                       trip  (UU + VV*256 + W*65536)/100 nm
//
// The A nibble carries no known meaning and is sent as zero.
type TotalAndTripLog struct {
	Total uint32 // 1/10 nautical miles, at most MaxLogDistance
	Trip  uint32 // 1/100 nautical miles, at most MaxLogDistance
}

func parseTotalAndTripLog(raw Raw) (Message, error) {
	if err := expect(raw, IDTotalAndTripLog, 7); err != nil {
		return nil, err
	}

	z, _ := field.Nibbles(raw[1])
	_, w := field.Nibbles(raw[6])

	return TotalAndTripLog{
		Total: uint32(z)<<16 | uint32(field.Uint16(raw[2:4])),
		Trip:  uint32(w)<<16 | uint32(field.Uint16(raw[4:6])),
	}, nil
}

func (m TotalAndTripLog) ID() ID { return IDTotalAndTripLog }

func (m TotalAndTripLog) Raw() Raw {
	raw := frame(IDTotalAndTripLog, 7, byte(m.Total>>16)&0x0f)
	field.PutUint16(raw[2:4], uint16(m.Total))
	field.PutUint16(raw[4:6], uint16(m.Trip))
	raw[6] = byte(m.Trip>>16) & 0x0f

	return raw
}

func (m TotalAndTripLog) Validate() error {
	if err := checkLogDistance(IDTotalAndTripLog, "total", m.Total); err != nil {
		return err
	}

	return checkLogDistance(IDTotalAndTripLog, "trip", m.Trip)
}

func (m TotalAndTripLog) TotalNauticalMiles() float64 {
	return field.Scaled(m.Total, 10)
}

func (m TotalAndTripLog) TripNauticalMiles() float64 {
	return field.Scaled(m.Trip, 100)
}
