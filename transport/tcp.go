package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	reuseport "github.com/kavu/go_reuseport"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/luma/marbus/nmea"
)

const (
	// WriteQueueSize is the number of lines buffered per client.
	WriteQueueSize = 127

	WriteTimeout = 5 * time.Second
)

var ErrWriteQueueFull = errors.New("transport: client write queue is full")

// TCP serves NMEA 0183 over TCP, the way chart plotters and multiplexers
// expect it: every broadcast sentence goes to every client as one line, and
// clients may send sentences back.
type TCP struct {
	cancel     context.CancelFunc
	stopWaiter sync.WaitGroup

	addr      string
	reuseport bool

	numListeners int
	listeners    []*TCPListener

	registry *nmea.Registry
	handler  nmea.Handler

	log *zap.Logger
}

func NewTCP(options Options) *TCP {
	numListeners := options.NumListeners
	if numListeners < 1 {
		numListeners = runtime.NumCPU()
	}

	if !options.Reuseport {
		numListeners = 1
	}

	registry := options.Registry
	if registry == nil {
		registry = nmea.DefaultRegistry
	}

	handler := options.Handler
	if handler == nil {
		handler = nmea.HandlerFunc(func(nmea.Sentence) {})
	}

	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &TCP{
		addr:         net.JoinHostPort(options.Host, strconv.Itoa(options.Port)),
		reuseport:    options.Reuseport,
		numListeners: numListeners,
		listeners:    make([]*TCPListener, 0, numListeners),
		registry:     registry,
		handler:      handler,
		log:          log,
	}
}

// Start binds every listener before returning, so clients can connect as soon
// as it succeeds.
func (t *TCP) Start(parentCtx context.Context) error {
	ctx, cancel := context.WithCancel(parentCtx)
	t.cancel = cancel

	t.log.Info("Starting tcp listeners", zap.Int("count", t.numListeners))

	addr := t.addr
	for i := 0; i < t.numListeners; i++ {
		if err := t.startListener(ctx, addr, i); err != nil {
			return multierr.Append(err, t.Close())
		}

		// With port 0 the remaining listeners share the port the first one got.
		addr = t.listeners[0].Addr().String()
	}

	return nil
}

func (t *TCP) listen(addr string) (net.Listener, error) {
	if t.reuseport {
		return reuseport.Listen("tcp", addr)
	}

	return net.Listen("tcp", addr)
}

func (t *TCP) startListener(ctx context.Context, addr string, n int) error {
	ln, err := t.listen(addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	listener := NewTCPListener(ctx, ln, t.registry, t.handler,
		t.log.Named("listener").With(zap.Int("listener", n)))
	t.listeners = append(t.listeners, listener)

	t.stopWaiter.Add(1)
	go func() {
		defer t.stopWaiter.Done()

		if err := listener.Serve(); err != nil {
			t.log.Error("Listener failed", zap.Error(err))
		}
	}()

	return nil
}

// Addr is the bound address, nil before Start.
func (t *TCP) Addr() net.Addr {
	if len(t.listeners) == 0 {
		return nil
	}

	return t.listeners[0].Addr()
}

// Broadcast queues s for every connected client.
func (t *TCP) Broadcast(s nmea.Sentence) error {
	return t.WriteLine(t.registry.Format(s))
}

// WriteLine queues one line, without line ending, for every connected client.
// Clients that cannot keep up are reported in the returned error and skipped.
func (t *TCP) WriteLine(line string) (err error) {
	data := []byte(line + "\r\n")

	for _, listener := range t.listeners {
		err = multierr.Append(err, listener.WriteAll(data))
	}

	return err
}

// Clients is the number of connected clients.
func (t *TCP) Clients() (n int) {
	for _, listener := range t.listeners {
		n += listener.Clients()
	}

	return n
}

// Close stops accepting, disconnects every client and waits for all of their
// loops to exit.
func (t *TCP) Close() (err error) {
	t.log.Info("Stopping TCP server")
	if t.cancel != nil {
		t.cancel()
	}

	for _, listener := range t.listeners {
		err = multierr.Append(err, listener.Close())
	}

	t.stopWaiter.Wait()
	t.log.Info("TCP server stopped")

	return err
}

type TCPListener struct {
	ctx      context.Context
	listener net.Listener

	registry *nmea.Registry
	handler  nmea.Handler

	mu          sync.Mutex
	activeConns map[*TCPConn]struct{}
	connWaiter  sync.WaitGroup

	closeOnce sync.Once
	closeErr  error

	log *zap.Logger
}

func NewTCPListener(
	ctx context.Context,
	listener net.Listener,
	registry *nmea.Registry,
	handler nmea.Handler,
	log *zap.Logger,
) *TCPListener {
	return &TCPListener{
		ctx:         ctx,
		listener:    listener,
		registry:    registry,
		handler:     handler,
		activeConns: make(map[*TCPConn]struct{}),
		log:         log,
	}
}

func (t *TCPListener) Addr() net.Addr {
	return t.listener.Addr()
}

// Close stops accepting and closes every client connection.
func (t *TCPListener) Close() error {
	t.closeOnce.Do(func() {
		if err := t.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			t.closeErr = err
		}

		for _, conn := range t.conns() {
			t.closeErr = multierr.Append(t.closeErr, conn.Close())
		}
	})

	return t.closeErr
}

// Serve accepts clients until the listener is closed or its context is done.
func (t *TCPListener) Serve() error {
	go func() {
		<-t.ctx.Done()

		if err := t.Close(); err != nil {
			t.log.Warn("TCP Listener did not close cleanly", zap.Error(err))
		}
	}()

	defer func() {
		t.log.Info("Waiting for client connections to stop")
		t.connWaiter.Wait()
		t.log.Info("Listener stopped")
	}()

	for {
		conn, err := t.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				// Closed while we were waiting for new connections, that's fine.
				return nil
			}

			return err
		}

		tcpConn := NewTCPConn(t.ctx, conn, t.registry, t.handler, t.log.Named("conn"))
		t.addConn(tcpConn)

		t.connWaiter.Add(1)
		go func() {
			defer t.connWaiter.Done()
			defer t.removeConn(tcpConn)

			tcpConn.Run()
		}()
	}
}

// WriteAll queues data for every client of this listener.
func (t *TCPListener) WriteAll(data []byte) (err error) {
	for _, conn := range t.conns() {
		if _, werr := conn.Write(data); werr != nil {
			err = multierr.Append(err, werr)
		}
	}

	return err
}

func (t *TCPListener) Clients() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.activeConns)
}

func (t *TCPListener) conns() []*TCPConn {
	t.mu.Lock()
	defer t.mu.Unlock()

	conns := make([]*TCPConn, 0, len(t.activeConns))
	for conn := range t.activeConns {
		conns = append(conns, conn)
	}

	return conns
}

func (t *TCPListener) addConn(conn *TCPConn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeConns[conn] = struct{}{}
}

func (t *TCPListener) removeConn(conn *TCPConn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.activeConns, conn)
}

// TCPConn is one connected client. Its read loop decodes sentences from the
// client, its write loop drains the write queue.
type TCPConn struct {
	id string

	ctx        context.Context
	cancel     context.CancelFunc
	loopWaiter sync.WaitGroup

	conn     net.Conn
	registry *nmea.Registry
	handler  nmea.Handler

	writeQueue chan []byte

	closeOnce sync.Once
	closeErr  error

	log *zap.Logger
}

func NewTCPConn(
	parentCtx context.Context,
	conn net.Conn,
	registry *nmea.Registry,
	handler nmea.Handler,
	log *zap.Logger,
) *TCPConn {
	ctx, cancel := context.WithCancel(parentCtx)
	id := uuid.New().String()

	return &TCPConn{
		id:         id,
		ctx:        ctx,
		cancel:     cancel,
		conn:       conn,
		registry:   registry,
		handler:    handler,
		writeQueue: make(chan []byte, WriteQueueSize),
		log:        log.With(zap.String("conn", id), zap.Stringer("remote", conn.RemoteAddr())),
	}
}

func (t *TCPConn) ID() string {
	return t.id
}

// Close disconnects the client. Run returns once both loops have exited.
func (t *TCPConn) Close() error {
	t.cancel()

	t.closeOnce.Do(func() {
		if err := t.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			t.closeErr = err
		}
	})

	return t.closeErr
}

// Run blocks until the client disconnects or the connection is closed.
func (t *TCPConn) Run() {
	t.log.Info("Client connected")

	t.loopWaiter.Add(2)

	go func() {
		defer t.loopWaiter.Done()
		defer t.cancel()
		t.ReadLoop()
	}()

	go func() {
		defer t.loopWaiter.Done()
		t.WriteLoop()
	}()

	<-t.ctx.Done()
	if err := t.Close(); err != nil {
		t.log.Warn("Failed to close client connection cleanly", zap.Error(err))
	}

	t.loopWaiter.Wait()
	t.log.Info("Client disconnected")
}

func (t *TCPConn) ReadLoop() {
	log := t.log.Named("readLoop")

	r := nmea.NewReader(t.conn, nmea.Options{Registry: t.registry, Log: log})
	err := r.Process(t.ctx, t.handler, func(line string, err error) error {
		log.Warn("Dropped client sentence", zap.String("line", line), zap.Error(err))
		return nil
	})

	if t.ctx.Err() != nil || nmea.IsStreamEnded(err) {
		log.Debug("Read loop exited", zap.Error(err))
		return
	}

	log.Warn("Read loop failed", zap.Error(err))
}

func (t *TCPConn) WriteLoop() {
	log := t.log.Named("writeLoop")

	for {
		select {
		case <-t.ctx.Done():
			return

		case data := <-t.writeQueue:
			if err := t.conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
				log.Warn("Failed to set write deadline", zap.Error(err))
			}

			if _, err := t.conn.Write(data); err != nil {
				log.Warn("Failed to write, disconnecting", zap.Error(err))
				t.cancel()
				return
			}
		}
	}
}

// Write queues data for the write loop without blocking.
func (t *TCPConn) Write(data []byte) (int, error) {
	if !t.isRunning() {
		return 0, fmt.Errorf("client %s: %w", t.id, net.ErrClosed)
	}

	select {
	case t.writeQueue <- data:
		return len(data), nil

	default:
		return 0, fmt.Errorf("client %s: %w", t.id, ErrWriteQueueFull)
	}
}

// WriteSentence queues s as one line.
func (t *TCPConn) WriteSentence(s nmea.Sentence) error {
	_, err := t.Write([]byte(t.registry.Format(s) + "\r\n"))
	return err
}

// isRunning returns true if Close has not been called
func (t *TCPConn) isRunning() bool {
	select {
	case <-t.ctx.Done():
		return false

	default:
		return true
	}
}
