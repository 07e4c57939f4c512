package seatalk

import "github.com/luma/marbus/field"

// Depth is message 0x00, depth below transducer.
//
//	00 02 YZ XX XX   depth XXXX/10 feet
//
// Y&8 anchor alarm, Y&4 metric display units, Z&4 transducer defective,
// Z&2 deep water alarm, Z&1 shallow water alarm.
type Depth struct {
	Flags byte
	Depth uint16 // 1/10 feet
}

func parseDepth(raw Raw) (Message, error) {
	if err := expect(raw, IDDepthBelowTransducer, 5); err != nil {
		return nil, err
	}

	return Depth{Flags: raw[2], Depth: field.Uint16(raw[3:5])}, nil
}

func (m Depth) ID() ID { return IDDepthBelowTransducer }

func (m Depth) Raw() Raw {
	raw := frame(IDDepthBelowTransducer, 5, 0)
	raw[2] = m.Flags
	field.PutUint16(raw[3:5], m.Depth)

	return raw
}

func (m Depth) Feet() float64 {
	return field.Scaled(uint32(m.Depth), 10)
}

func (m Depth) Meters() float64 {
	return m.Feet() * 0.3048
}

func (m Depth) AnchorAlarm() bool         { return m.Flags&0x80 != 0 }
func (m Depth) MetricDisplay() bool       { return m.Flags&0x40 != 0 }
func (m Depth) TransducerDefective() bool { return m.Flags&0x04 != 0 }
func (m Depth) DeepAlarm() bool           { return m.Flags&0x02 != 0 }
func (m Depth) ShallowAlarm() bool        { return m.Flags&0x01 != 0 }
