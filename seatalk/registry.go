package seatalk

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// ParseFunc builds a message from a frame. It must reject every frame length
// other than the one its kind defines.
type ParseFunc func(raw Raw) (Message, error)

// Kind registers one message kind with a Registry.
type Kind struct {
	ID    ID
	Parse ParseFunc
}

// Registry maps command bytes to message constructors. Lookups are safe for
// concurrent use once registration is done.
type Registry struct {
	parsers map[ID]ParseFunc
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[ID]ParseFunc)}
}

// Register adds a kind. Registering the same command byte twice is an error.
func (r *Registry) Register(id ID, parse ParseFunc) error {
	if _, ok := r.parsers[id]; ok {
		return fmt.Errorf("%v: %w", id, ErrDuplicateKind)
	}

	r.parsers[id] = parse
	return nil
}

// RegisterAll registers every kind and reports all failures together.
func (r *Registry) RegisterAll(kinds ...Kind) (err error) {
	for _, k := range kinds {
		err = multierr.Append(err, r.Register(k.ID, k.Parse))
	}

	return err
}

// Decode turns a frame into its typed message. The command byte is looked up
// first; an unregistered command is ErrUnknownMessage whatever its length.
func (r *Registry) Decode(raw Raw) (Message, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty frame: %w", ErrInvalidFrame)
	}

	parse, ok := r.parsers[raw.ID()]
	if !ok {
		return nil, fmt.Errorf("command 0x%02x: %w", byte(raw.ID()), ErrUnknownMessage)
	}

	if err := raw.Validate(); err != nil {
		return nil, err
	}

	return parse(raw)
}

// Encode serializes a message. It is the inverse of Decode.
func (r *Registry) Encode(m Message) Raw {
	return m.Raw()
}

// Kinds lists the registered command bytes in ascending order.
func (r *Registry) Kinds() []ID {
	ids := make([]ID, 0, len(r.parsers))
	for id := range r.parsers {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DefaultRegistry knows every message kind implemented by this package.
var DefaultRegistry = NewRegistry()

func init() {
	err := DefaultRegistry.RegisterAll(
		Kind{IDDepthBelowTransducer, parseDepth},
		Kind{IDApparentWindAngle, parseWindAngle},
		Kind{IDApparentWindSpeed, parseWindSpeed},
		Kind{IDSpeedThroughWater, parseSpeedThroughWater},
		Kind{IDTripMileage, parseTripMileage},
		Kind{IDTotalMileage, parseTotalMileage},
		Kind{IDWaterTemperature, parseWaterTemperature},
		Kind{IDTotalAndTripLog, parseTotalAndTripLog},
		Kind{IDLampIntensity, parseLampIntensity},
		Kind{IDSpeedOverGround, parseSpeedOverGround},
		Kind{IDGMTTime, parseTime},
		Kind{IDDate, parseDate},
	)
	if err != nil {
		panic(err)
	}
}

// Decode decodes a frame with the DefaultRegistry.
func Decode(raw Raw) (Message, error) {
	return DefaultRegistry.Decode(raw)
}

// Encode encodes a message with the DefaultRegistry.
func Encode(m Message) Raw {
	return DefaultRegistry.Encode(m)
}
