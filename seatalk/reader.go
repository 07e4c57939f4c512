package seatalk

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

type Options struct {
	// Registry decodes frames, DefaultRegistry when nil
	Registry *Registry

	Log *zap.Logger
}

// Handler receives decoded messages from Process.
type Handler interface {
	HandleMessage(Message)
}

type HandlerFunc func(Message)

func (f HandlerFunc) HandleMessage(m Message) {
	f(m)
}

// Reader reads one SeaTalk bus from a parity-marked byte stream. A Reader owns
// its Framer and must not be shared between goroutines.
type Reader struct {
	r        io.ByteReader
	framer   *Framer
	registry *Registry

	collisions uint64

	log *zap.Logger
}

func NewReader(r io.Reader, options Options) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	registry := options.Registry
	if registry == nil {
		registry = DefaultRegistry
	}

	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Reader{
		r:        br,
		framer:   NewFramer(),
		registry: registry,
		log:      log,
	}
}

// ReadFrame reads bytes until a frame completes. The context is checked between
// bytes; a blocked read is only interrupted by the transport itself.
func (r *Reader) ReadFrame(ctx context.Context) (Raw, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, err := r.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStreamEnded, err)
		}

		frame, err := r.framer.Feed(b)
		if err != nil {
			r.log.Warn("Framing error, resynchronizing", zap.Error(err))
			return nil, err
		}

		if n := r.framer.Collisions(); n != r.collisions {
			r.log.Debug("Bus collision", zap.Uint64("collisions", n))
			r.collisions = n
		}

		if frame != nil {
			return frame, nil
		}
	}
}

// ReadMessage reads and decodes the next frame. Decode errors carry the frame
// in their message and leave the stream usable.
func (r *Reader) ReadMessage(ctx context.Context) (Message, error) {
	frame, err := r.ReadFrame(ctx)
	if err != nil {
		return nil, err
	}

	m, err := r.registry.Decode(frame)
	if err != nil {
		return nil, fmt.Errorf("frame %v: %w", frame, err)
	}

	return m, nil
}

// Process hands every decoded message to h until the stream ends, ctx is done
// or onErr returns an error. onErr sees framing and decode errors; returning
// nil skips the offending input. A nil onErr stops on the first error.
// Stream errors always stop processing.
func (r *Reader) Process(ctx context.Context, h Handler, onErr func(Raw, error) error) error {
	if onErr == nil {
		onErr = func(_ Raw, err error) error { return err }
	}

	for {
		frame, err := r.ReadFrame(ctx)
		if err != nil {
			if errors.Is(err, ErrStreamEnded) || ctx.Err() != nil {
				return err
			}

			if err := onErr(nil, err); err != nil {
				return err
			}
			continue
		}

		m, err := r.registry.Decode(frame)
		if err != nil {
			if err := onErr(frame, err); err != nil {
				return err
			}
			continue
		}

		h.HandleMessage(m)
	}
}

// Collisions is the number of collisions seen on the bus so far.
func (r *Reader) Collisions() uint64 {
	return r.framer.Collisions()
}
