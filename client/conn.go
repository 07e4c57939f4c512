package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/luma/marbus/nmea"
)

// SentenceBufferSize is the capacity of the channel returned by Sentences.
const SentenceBufferSize = 255

var ErrNotConnected = errors.New("client: not connected")

// Conn is a client of an NMEA 0183 over TCP server such as marbus serve, a
// multiplexer or a chart plotter.
type Conn struct {
	ctx    context.Context
	cancel context.CancelFunc

	conn     net.Conn
	registry *nmea.Registry

	sentences chan nmea.Sentence
	readDone  chan struct{}

	writeMu sync.Mutex

	log *zap.Logger
}

func New(log *zap.Logger) *Conn {
	if log == nil {
		log = zap.NewNop()
	}

	return &Conn{
		log:       log,
		registry:  nmea.DefaultRegistry,
		sentences: make(chan nmea.Sentence, SentenceBufferSize),
		readDone:  make(chan struct{}),
	}
}

// Connect dials addr and starts reading sentences in the background.
func (c *Conn) Connect(ctx context.Context, addr string) error {
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.conn = conn

	go c.readLoop()

	return nil
}

// Disconnect closes the connection and waits for the read loop to exit.
func (c *Conn) Disconnect() error {
	if c.conn == nil {
		return ErrNotConnected
	}

	c.cancel()
	err := c.conn.Close()
	<-c.readDone

	return err
}

// Sentences delivers every valid sentence the server sends. It is closed
// when the connection ends.
func (c *Conn) Sentences() <-chan nmea.Sentence {
	return c.sentences
}

// Send writes s as one line. The write is bounded by the deadline of ctx.
func (c *Conn) Send(ctx context.Context, s nmea.Sentence) error {
	if c.conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return nmea.WriteSentence(c.conn, s)
}

func (c *Conn) readLoop() {
	log := c.log.Named("readLoop")

	defer close(c.readDone)
	defer close(c.sentences)

	r := nmea.NewReader(c.conn, nmea.Options{Registry: c.registry, Log: log})
	err := r.Process(c.ctx,
		nmea.HandlerFunc(func(s nmea.Sentence) {
			select {
			case c.sentences <- s:
			case <-c.ctx.Done():
			}
		}),
		func(line string, err error) error {
			log.Warn("Failed to read server sentence", zap.String("line", line), zap.Error(err))
			return nil
		})

	log.Info("Read loop exiting", zap.Error(err))
}
