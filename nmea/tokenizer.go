package nmea

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxSentenceLength includes the sentinel and the trailing \r\n.
	MaxSentenceLength = 82

	SentinelSentence      = '$'
	SentinelEncapsulation = '!'

	proprietaryTalker = "P"
)

// Tokens is a tokenized sentence.
type Tokens struct {
	Sentinel byte
	Talker   string
	Tag      string
	Fields   []string
}

// String composes the sentence with a freshly computed checksum, without the
// trailing \r\n.
func (t Tokens) String() string {
	return Compose(t.Sentinel, t.Talker, t.Tag, t.Fields)
}

// Tokenize validates one line and splits it into talker, tag and fields. A
// trailing \r\n is ignored. Empty fields are kept as empty strings.
func Tokenize(line string) (Tokens, error) {
	line = strings.TrimRight(line, "\r\n")

	if len(line) > MaxSentenceLength-2 {
		return Tokens{}, fmt.Errorf("%d characters: %w", len(line), ErrMalformedSentence)
	}

	if len(line) < 4 {
		return Tokens{}, fmt.Errorf("%q is too short: %w", line, ErrMalformedSentence)
	}

	sentinel := line[0]
	if sentinel != SentinelSentence && sentinel != SentinelEncapsulation {
		return Tokens{}, fmt.Errorf("%q does not start with $ or !: %w", line, ErrMalformedSentence)
	}

	if line[len(line)-3] != '*' {
		return Tokens{}, fmt.Errorf("%q has no checksum: %w", line, ErrMalformedSentence)
	}

	expected, err := strconv.ParseUint(line[len(line)-2:], 16, 8)
	if err != nil {
		return Tokens{}, fmt.Errorf("%q has a bad checksum: %w", line, ErrMalformedSentence)
	}

	body := line[1 : len(line)-3]
	if cs := Checksum(body); cs != byte(expected) {
		return Tokens{}, fmt.Errorf("%q: computed %s: %w", line, FormatChecksum(cs), ErrChecksum)
	}

	parts := strings.Split(body, ",")
	talker, tag, err := splitAddress(parts[0])
	if err != nil {
		return Tokens{}, fmt.Errorf("%q: %w", line, err)
	}

	return Tokens{
		Sentinel: sentinel,
		Talker:   talker,
		Tag:      tag,
		Fields:   parts[1:],
	}, nil
}

func splitAddress(addr string) (talker, tag string, err error) {
	for i := 0; i < len(addr); i++ {
		c := addr[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", "", fmt.Errorf("address %q: %w", addr, ErrMalformedSentence)
		}
	}

	if strings.HasPrefix(addr, proprietaryTalker) && len(addr) > 1 {
		return proprietaryTalker, addr[1:], nil
	}

	if len(addr) < 3 {
		return "", "", fmt.Errorf("address %q: %w", addr, ErrMalformedSentence)
	}

	return addr[:2], addr[2:], nil
}

// Compose builds a sentence line from its parts and appends the checksum.
func Compose(sentinel byte, talker, tag string, fields []string) string {
	var b strings.Builder

	b.WriteString(talker)
	b.WriteString(tag)
	for _, f := range fields {
		b.WriteByte(',')
		b.WriteString(f)
	}

	body := b.String()

	return string(sentinel) + body + "*" + FormatChecksum(Checksum(body))
}
