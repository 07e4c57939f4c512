package seatalk

import (
	"fmt"
)

// Raw is one complete frame: command byte, attribute byte and payload.
type Raw []byte

// ID returns the command byte, or 0 for an empty frame.
func (r Raw) ID() ID {
	if len(r) == 0 {
		return 0
	}

	return ID(r[0])
}

// Validate checks that the frame length matches its attribute byte.
func (r Raw) Validate() error {
	if len(r) < 3 || len(r) > MaxFrameSize {
		return fmt.Errorf("frame of %d bytes: %w", len(r), ErrInvalidFrame)
	}

	if want := 3 + int(r[1]&0x0f); len(r) != want {
		return fmt.Errorf("attribute 0x%02x announces %d bytes, got %d: %w", r[1], want, len(r), ErrInvalidFrame)
	}

	return nil
}

func (r Raw) String() string {
	return fmt.Sprintf("% x", []byte(r))
}

// ID is the command byte identifying a message kind.
type ID byte

const (
	IDDepthBelowTransducer ID = 0x00
	IDApparentWindAngle    ID = 0x10
	IDApparentWindSpeed    ID = 0x11
	IDSpeedThroughWater    ID = 0x20
	IDTripMileage          ID = 0x21
	IDTotalMileage         ID = 0x22
	IDWaterTemperature     ID = 0x23
	IDTotalAndTripLog      ID = 0x25
	IDLampIntensity        ID = 0x30
	IDSpeedOverGround      ID = 0x52
	IDGMTTime              ID = 0x54
	IDDate                 ID = 0x56
)

var idNames = map[ID]string{
	IDDepthBelowTransducer: "depth_below_transducer",
	IDApparentWindAngle:    "apparent_wind_angle",
	IDApparentWindSpeed:    "apparent_wind_speed",
	IDSpeedThroughWater:    "speed_through_water",
	IDTripMileage:          "trip_mileage",
	IDTotalMileage:         "total_mileage",
	IDWaterTemperature:     "water_temperature",
	IDTotalAndTripLog:      "total_and_trip_log",
	IDLampIntensity:        "lamp_intensity",
	IDSpeedOverGround:      "speed_over_ground",
	IDGMTTime:              "gmt_time",
	IDDate:                 "date",
}

func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}

	return fmt.Sprintf("0x%02x", byte(id))
}

// Message is one decoded SeaTalk message.
type Message interface {
	ID() ID

	// Raw serializes the message into exactly the frame layout of its kind.
	Raw() Raw
}

// expect checks the command byte and exact length of a frame for one kind.
func expect(raw Raw, id ID, size int) error {
	if len(raw) != size {
		return fmt.Errorf("%v needs %d bytes, got %d: %w", id, size, len(raw), ErrInvalidFrame)
	}

	if raw.ID() != id {
		return fmt.Errorf("%v frame starts with 0x%02x: %w", id, raw[0], ErrInvalidFrame)
	}

	if want := byte(size - 3); raw[1]&0x0f != want {
		return fmt.Errorf("%v attribute 0x%02x: %w", id, raw[1], ErrInvalidFrame)
	}

	return nil
}

// frame allocates a frame of the given size with command and attribute set.
// attrHigh fills the high nibble of the attribute byte.
func frame(id ID, size int, attrHigh byte) Raw {
	raw := make(Raw, size)
	raw[0] = byte(id)
	raw[1] = attrHigh<<4 | byte(size-3)

	return raw
}
