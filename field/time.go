package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time is a UTC time of day.
type Time struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

func (t Time) String() string {
	return FormatTime(Some(t))
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTime parses HHMMSS with an optional fraction of up to three digits.
func ParseTime(tok string) (Optional[Time], error) {
	if tok == "" {
		return None[Time](), nil
	}

	h, m, s, ms, err := splitClock(tok, true)
	if err != nil {
		return None[Time](), err
	}

	if h > 23 || m > 59 || s > 60 {
		return None[Time](), fmt.Errorf("time %q: %w", tok, ErrOutOfRange)
	}

	return Some(Time{Hour: h, Minute: m, Second: s, Millisecond: ms}), nil
}

func FormatTime(v Optional[Time]) string {
	t, ok := v.Get()
	if !ok {
		return ""
	}

	return formatClock(t.Hour, t.Minute, t.Second, t.Millisecond)
}

// ParseDuration parses the HHMMSS.ss form used for time-to-go fields. Hours are
// not bounded by a day.
func ParseDuration(tok string) (Optional[time.Duration], error) {
	if tok == "" {
		return None[time.Duration](), nil
	}

	h, m, s, ms, err := splitClock(tok, false)
	if err != nil {
		return None[time.Duration](), err
	}

	if m > 59 || s > 59 {
		return None[time.Duration](), fmt.Errorf("duration %q: %w", tok, ErrOutOfRange)
	}

	d := time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond

	return Some(d), nil
}

func FormatDuration(v Optional[time.Duration]) string {
	d, ok := v.Get()
	if !ok {
		return ""
	}

	d = d.Truncate(time.Millisecond)
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second

	return formatClock(h, m, s, int(d/time.Millisecond))
}

// splitClock splits [H]HHMMSS[.fff]. With exact set the hour part is exactly
// two digits.
func splitClock(tok string, exact bool) (h, m, s, ms int, err error) {
	whole, frac, hasFrac := strings.Cut(tok, ".")
	if len(whole) < 6 || (exact && len(whole) != 6) || !isDigits(whole) {
		return 0, 0, 0, 0, fmt.Errorf("%q is not HHMMSS: %w", tok, ErrMalformed)
	}

	hours := whole[:len(whole)-4]
	h, _ = strconv.Atoi(hours)
	m, _ = strconv.Atoi(whole[len(whole)-4 : len(whole)-2])
	s, _ = strconv.Atoi(whole[len(whole)-2:])

	if hasFrac {
		if len(frac) == 0 || len(frac) > 3 || !isDigits(frac) {
			return 0, 0, 0, 0, fmt.Errorf("%q has a bad fraction: %w", tok, ErrMalformed)
		}

		ms, _ = strconv.Atoi((frac + "00")[:3])
	}

	return h, m, s, ms, nil
}

func formatClock(h, m, s, ms int) string {
	switch {
	case ms == 0:
		return fmt.Sprintf("%02d%02d%02d", h, m, s)
	case ms%10 == 0:
		return fmt.Sprintf("%02d%02d%02d.%02d", h, m, s, ms/10)
	default:
		return fmt.Sprintf("%02d%02d%02d.%03d", h, m, s, ms)
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
