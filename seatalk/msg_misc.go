package seatalk

import (
	"fmt"

	"github.com/luma/marbus/field"
)

// WaterTemperature is message 0x23.
//
//	23 Z1 XX YY   XX degrees Celsius, YY degrees Fahrenheit, Z&4 sensor defective
type WaterTemperature struct {
	Celsius    int8
	Fahrenheit int8
	Defective  bool
}

func parseWaterTemperature(raw Raw) (Message, error) {
	if err := expect(raw, IDWaterTemperature, 4); err != nil {
		return nil, err
	}

	z, _ := field.Nibbles(raw[1])

	return WaterTemperature{
		Celsius:    int8(raw[2]),
		Fahrenheit: int8(raw[3]),
		Defective:  z&0x4 != 0,
	}, nil
}

func (m WaterTemperature) ID() ID { return IDWaterTemperature }

func (m WaterTemperature) Raw() Raw {
	var z byte
	if m.Defective {
		z = 0x4
	}

	raw := frame(IDWaterTemperature, 4, z)
	raw[2] = byte(m.Celsius)
	raw[3] = byte(m.Fahrenheit)

	return raw
}

// LampIntensity is message 0x30, instrument backlight level.
//
//	30 00 0X   X in {0, 4, 8, C} for level 0 (off) to 3
type LampIntensity struct {
	Level uint8
}

func parseLampIntensity(raw Raw) (Message, error) {
	if err := expect(raw, IDLampIntensity, 3); err != nil {
		return nil, err
	}

	if raw[2]&^0x0c != 0 {
		return nil, fmt.Errorf("lamp intensity 0x%02x: %w", raw[2], ErrInvalidFrame)
	}

	return LampIntensity{Level: raw[2] >> 2}, nil
}

func (m LampIntensity) ID() ID { return IDLampIntensity }

func (m LampIntensity) Raw() Raw {
	raw := frame(IDLampIntensity, 3, 0)
	raw[2] = (m.Level & 0x03) << 2

	return raw
}

// GMTTime is message 0x54, UTC time of day from the GPS.
//
//	54 T1 RS HH   hours HH, minutes RS>>2, seconds (RS&3)<<4 | T
type GMTTime struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

func parseTime(raw Raw) (Message, error) {
	if err := expect(raw, IDGMTTime, 4); err != nil {
		return nil, err
	}

	t, _ := field.Nibbles(raw[1])
	m := GMTTime{
		Hour:   raw[3],
		Minute: raw[2] >> 2,
		Second: (raw[2]&0x03)<<4 | t,
	}

	if m.Hour > 23 || m.Minute > 59 || m.Second > 59 {
		return nil, fmt.Errorf("time %02d:%02d:%02d: %w", m.Hour, m.Minute, m.Second, ErrInvalidFrame)
	}

	return m, nil
}

func (m GMTTime) ID() ID { return IDGMTTime }

func (m GMTTime) Raw() Raw {
	raw := frame(IDGMTTime, 4, m.Second&0x0f)
	raw[2] = (m.Minute&0x3f)<<2 | (m.Second>>4)&0x03
	raw[3] = m.Hour

	return raw
}

// Date is message 0x56.
//
//	56 M1 DD YY   month M, day DD, year 2000+YY
type Date struct {
	Year  uint8 // years since 2000
	Month uint8
	Day   uint8
}

func parseDate(raw Raw) (Message, error) {
	if err := expect(raw, IDDate, 4); err != nil {
		return nil, err
	}

	month, _ := field.Nibbles(raw[1])
	m := Date{Year: raw[3], Month: month, Day: raw[2]}

	if m.Month < 1 || m.Month > 12 || m.Day < 1 || m.Day > 31 {
		return nil, fmt.Errorf("date %02d-%02d: %w", m.Month, m.Day, ErrInvalidFrame)
	}

	return m, nil
}

func (m Date) ID() ID { return IDDate }

func (m Date) Raw() Raw {
	raw := frame(IDDate, 4, m.Month)
	raw[2] = m.Day
	raw[3] = m.Year

	return raw
}
