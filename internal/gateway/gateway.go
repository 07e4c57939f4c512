package gateway

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/luma/marbus/nmea"
	"github.com/luma/marbus/seatalk"
	"github.com/luma/marbus/storage"
)

const (
	ProtocolNMEA    = "nmea"
	ProtocolSeaTalk = "seatalk"
)

var ErrUnknownProtocol = errors.New("gateway: unknown protocol")

// Broadcaster sends sentences to network clients, see transport.TCP.
type Broadcaster interface {
	Broadcast(nmea.Sentence) error
}

// Recorder keeps raw traffic, see storage.Recorder.
type Recorder interface {
	Append(ctx context.Context, rec storage.Record) (int64, error)
}

type Options struct {
	Store storage.Store

	// Broadcaster and Recorder are optional
	Broadcaster Broadcaster
	Recorder    Recorder

	Log *zap.Logger
}

// Gateway takes decoded traffic from one bus and publishes it: the latest value
// of every kind goes to the store, NMEA sentences are broadcast and raw
// traffic is recorded.
type Gateway struct {
	store       storage.Store
	broadcaster Broadcaster
	recorder    Recorder

	log *zap.Logger
}

func New(options Options) *Gateway {
	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Gateway{
		store:       options.Store,
		broadcaster: options.Broadcaster,
		recorder:    options.Recorder,
		log:         log,
	}
}

// SentenceKey is the store key of a sentence, e.g. nmea.GP.XTR.
func SentenceKey(s nmea.Sentence) string {
	return ProtocolNMEA + "." + s.Talker() + "." + s.Tag()
}

// MessageKey is the store key of a SeaTalk message, e.g. seatalk.trip_mileage.
func MessageKey(m seatalk.Message) string {
	return ProtocolSeaTalk + "." + m.ID().String()
}

// Run reads the bus until the stream ends or ctx is done.
func (g *Gateway) Run(ctx context.Context, protocol string, r io.Reader) error {
	switch protocol {
	case ProtocolNMEA:
		return g.RunNMEA(ctx, r)
	case ProtocolSeaTalk:
		return g.RunSeaTalk(ctx, r)
	default:
		return fmt.Errorf("%q: %w", protocol, ErrUnknownProtocol)
	}
}

func (g *Gateway) RunNMEA(ctx context.Context, r io.Reader) error {
	reader := nmea.NewReader(r, nmea.Options{Log: g.log.Named("nmea")})

	for {
		line, err := reader.ReadLine(ctx)
		if errors.Is(err, nmea.ErrMalformedSentence) {
			g.record(ctx, ProtocolNMEA, line, err)
			continue
		}
		if err != nil {
			return err
		}

		s, err := nmea.Parse(line)
		g.record(ctx, ProtocolNMEA, line, err)
		if err != nil {
			g.log.Debug("Dropped sentence", zap.String("line", line), zap.Error(err))
			continue
		}

		g.publishSentence(ctx, s)
	}
}

func (g *Gateway) RunSeaTalk(ctx context.Context, r io.Reader) error {
	reader := seatalk.NewReader(r, seatalk.Options{Log: g.log.Named("seatalk")})

	for {
		frame, err := reader.ReadFrame(ctx)
		if err != nil {
			if errors.Is(err, seatalk.ErrStreamEnded) || ctx.Err() != nil {
				return err
			}

			g.record(ctx, ProtocolSeaTalk, "", err)
			continue
		}

		m, err := seatalk.Decode(frame)
		g.record(ctx, ProtocolSeaTalk, hex.EncodeToString(frame), err)
		if err != nil {
			g.log.Debug("Dropped frame", zap.Stringer("frame", frame), zap.Error(err))
			continue
		}

		g.publishMessage(ctx, m)
	}
}

// HandleSentence publishes a sentence that did not come from the bus, such as
// one sent by a TCP client.
func (g *Gateway) HandleSentence(s nmea.Sentence) {
	g.publishSentence(context.Background(), s)
}

func (g *Gateway) HandleMessage(m seatalk.Message) {
	g.publishMessage(context.Background(), m)
}

func (g *Gateway) publishSentence(ctx context.Context, s nmea.Sentence) {
	key := SentenceKey(s)
	if err := g.store.Set(ctx, []byte(key), s); err != nil {
		g.log.Warn("Failed to store sentence", zap.String("key", key), zap.Error(err))
	}

	if g.broadcaster == nil {
		return
	}

	if err := g.broadcaster.Broadcast(s); err != nil {
		g.log.Debug("Broadcast incomplete", zap.String("key", key), zap.Error(err))
	}
}

func (g *Gateway) publishMessage(ctx context.Context, m seatalk.Message) {
	key := MessageKey(m)
	if err := g.store.Set(ctx, []byte(key), m); err != nil {
		g.log.Warn("Failed to store message", zap.String("key", key), zap.Error(err))
	}
}

func (g *Gateway) record(ctx context.Context, protocol, data string, decodeErr error) {
	if g.recorder == nil {
		return
	}

	rec := storage.Record{Protocol: protocol, Data: data}
	if decodeErr != nil {
		rec.Err = decodeErr.Error()
	}

	if _, err := g.recorder.Append(ctx, rec); err != nil {
		g.log.Warn("Failed to record traffic", zap.Error(err))
	}
}

var (
	_ nmea.Handler    = (*Gateway)(nil)
	_ seatalk.Handler = (*Gateway)(nil)
)
