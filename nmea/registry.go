package nmea

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// ParseFunc builds a sentence from its talker and data fields. It checks the
// field count itself.
type ParseFunc func(talker string, fields []string) (Sentence, error)

// Kind registers one sentence tag with a Registry.
type Kind struct {
	Tag   string
	Parse ParseFunc
}

// Registry maps sentence tags to constructors. Lookups are safe for
// concurrent use once registration is done.
type Registry struct {
	parsers map[string]ParseFunc
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]ParseFunc)}
}

func (r *Registry) Register(tag string, parse ParseFunc) error {
	if _, ok := r.parsers[tag]; ok {
		return fmt.Errorf("%s: %w", tag, ErrDuplicateSentence)
	}

	r.parsers[tag] = parse
	return nil
}

// RegisterAll registers every kind and reports all failures together.
func (r *Registry) RegisterAll(kinds ...Kind) (err error) {
	for _, k := range kinds {
		err = multierr.Append(err, r.Register(k.Tag, k.Parse))
	}

	return err
}

// Decode builds the sentence registered for tag.
func (r *Registry) Decode(talker, tag string, fields []string) (Sentence, error) {
	parse, ok := r.parsers[tag]
	if !ok {
		return nil, fmt.Errorf("%s%s: %w", talker, tag, ErrUnknownSentence)
	}

	return parse(talker, fields)
}

// Encode is the inverse of Decode.
func (r *Registry) Encode(s Sentence) (tag string, fields []string) {
	return s.Tag(), s.Fields()
}

// Parse tokenizes and decodes one line.
func (r *Registry) Parse(line string) (Sentence, error) {
	t, err := Tokenize(line)
	if err != nil {
		return nil, err
	}

	return r.Decode(t.Talker, t.Tag, t.Fields)
}

// Encapsulated is implemented by sentence kinds that go on the wire with the
// ! sentinel, AIS VDM for example.
type Encapsulated interface {
	Sentence
	Encapsulated() bool
}

// Format renders s as a complete line with checksum, without \r\n. The
// sentinel is ! for Encapsulated sentences and $ otherwise.
func (r *Registry) Format(s Sentence) string {
	sentinel := byte(SentinelSentence)
	if e, ok := s.(Encapsulated); ok && e.Encapsulated() {
		sentinel = SentinelEncapsulation
	}

	tag, fields := r.Encode(s)
	return Compose(sentinel, s.Talker(), tag, fields)
}

// Tags lists the registered tags in order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.parsers))
	for tag := range r.parsers {
		tags = append(tags, tag)
	}

	sort.Strings(tags)
	return tags
}

// DefaultRegistry knows every sentence implemented by this package.
var DefaultRegistry = NewRegistry()

func init() {
	err := DefaultRegistry.RegisterAll(
		Kind{Tag: TagBWC, Parse: ParseBWC},
		Kind{Tag: TagGLC, Parse: ParseGLC},
		Kind{Tag: TagGTD, Parse: ParseGTD},
		Kind{Tag: TagR00, Parse: ParseR00},
		Kind{Tag: TagVTG, Parse: ParseVTG},
		Kind{Tag: TagXTR, Parse: ParseXTR},
		Kind{Tag: TagZDA, Parse: ParseZDA},
		Kind{Tag: TagZDL, Parse: ParseZDL},
	)
	if err != nil {
		panic(err)
	}
}

// Parse decodes one line with the DefaultRegistry.
func Parse(line string) (Sentence, error) {
	return DefaultRegistry.Parse(line)
}

// Format renders s with the DefaultRegistry.
func Format(s Sentence) string {
	return DefaultRegistry.Format(s)
}
