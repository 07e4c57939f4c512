package nmea

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

type Options struct {
	// Registry decodes sentences, DefaultRegistry when nil
	Registry *Registry

	Log *zap.Logger
}

// Handler receives decoded sentences from Process.
type Handler interface {
	HandleSentence(Sentence)
}

type HandlerFunc func(Sentence)

func (f HandlerFunc) HandleSentence(s Sentence) {
	f(s)
}

// Reader reads sentences from a line oriented stream. It is not safe for
// concurrent use.
type Reader struct {
	r        *bufio.Reader
	registry *Registry

	log *zap.Logger
}

func NewReader(r io.Reader, options Options) *Reader {
	registry := options.Registry
	if registry == nil {
		registry = DefaultRegistry
	}

	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Reader{
		r:        bufio.NewReaderSize(r, lineBufferSize),
		registry: registry,
		log:      log,
	}
}

// lineBufferSize bounds the memory a single line can take. Longer lines are
// skipped up to their \n.
const lineBufferSize = 256

// ReadLine returns the next non-empty line without its line ending. A final
// line without \n is still returned. A line that does not fit the line buffer
// fails with ErrMalformedSentence, the returned string holding its first
// MaxSentenceLength bytes; the next call continues after it.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		b, err := r.r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			head := string(b[:MaxSentenceLength])
			n := len(b) + r.skipLine()
			return head, fmt.Errorf("line of %d bytes or more: %w", n, ErrMalformedSentence)
		}

		line := strings.TrimRight(string(b), "\r\n")
		if line != "" {
			return line, nil
		}

		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrStreamEnded, err)
		}
	}
}

// skipLine drops input up to and including the next \n and returns the
// number of bytes dropped.
func (r *Reader) skipLine() int {
	n := 0
	for {
		b, err := r.r.ReadSlice('\n')
		n += len(b)
		if !errors.Is(err, bufio.ErrBufferFull) {
			return n
		}
	}
}

// Read reads and decodes the next sentence. A bad line fails alone, the next
// call continues with the following line.
func (r *Reader) Read(ctx context.Context) (Sentence, error) {
	line, err := r.ReadLine(ctx)
	if err != nil {
		return nil, err
	}

	s, err := r.registry.Parse(line)
	if err != nil {
		r.log.Debug("Rejected sentence", zap.String("line", line), zap.Error(err))
		return nil, err
	}

	return s, nil
}

// Process hands every decoded sentence to h until the stream ends, ctx is done
// or onErr returns an error. Returning nil from onErr skips the line; a nil
// onErr stops on the first bad line.
func (r *Reader) Process(ctx context.Context, h Handler, onErr func(line string, err error) error) error {
	if onErr == nil {
		onErr = func(_ string, err error) error { return err }
	}

	for {
		line, err := r.ReadLine(ctx)
		if errors.Is(err, ErrMalformedSentence) {
			if err := onErr(line, err); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		s, err := r.registry.Parse(line)
		if err != nil {
			if err := onErr(line, err); err != nil {
				return err
			}
			continue
		}

		h.HandleSentence(s)
	}
}

// IsStreamEnded reports whether err means the transport is exhausted rather
// than a bad sentence.
func IsStreamEnded(err error) bool {
	return errors.Is(err, ErrStreamEnded)
}
