package seatalk

import "github.com/luma/marbus/field"

// WaterSpeed is message 0x20, speed through water.
//
//	20 01 XX XX   speed XXXX/10 knots
type WaterSpeed struct {
	Speed uint16 // 1/10 knots
}

func parseSpeedThroughWater(raw Raw) (Message, error) {
	if err := expect(raw, IDSpeedThroughWater, 4); err != nil {
		return nil, err
	}

	return WaterSpeed{Speed: field.Uint16(raw[2:4])}, nil
}

func (m WaterSpeed) ID() ID { return IDSpeedThroughWater }

func (m WaterSpeed) Raw() Raw {
	raw := frame(IDSpeedThroughWater, 4, 0)
	field.PutUint16(raw[2:4], m.Speed)

	return raw
}

func (m WaterSpeed) Knots() float64 {
	return field.Scaled(uint32(m.Speed), 10)
}

// GroundSpeed is message 0x52, speed over ground.
//
//	52 01 XX XX   speed XXXX/10 knots
type GroundSpeed struct {
	Speed uint16 // 1/10 knots
}

func parseSpeedOverGround(raw Raw) (Message, error) {
	if err := expect(raw, IDSpeedOverGround, 4); err != nil {
		return nil, err
	}

	return GroundSpeed{Speed: field.Uint16(raw[2:4])}, nil
}

func (m GroundSpeed) ID() ID { return IDSpeedOverGround }

func (m GroundSpeed) Raw() Raw {
	raw := frame(IDSpeedOverGround, 4, 0)
	field.PutUint16(raw[2:4], m.Speed)

	return raw
}

func (m GroundSpeed) Knots() float64 {
	return field.Scaled(uint32(m.Speed), 10)
}
