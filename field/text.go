package field

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFloat accepts plain decimals only: an optional sign, digits and an
// optional fraction. Exponents, hex floats, NaN and Inf are malformed.
func ParseFloat(tok string) (Optional[float64], error) {
	if tok == "" {
		return None[float64](), nil
	}

	if !isDecimal(tok) {
		return None[float64](), fmt.Errorf("%q is not a decimal: %w", tok, ErrMalformed)
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return None[float64](), fmt.Errorf("%q is not a decimal: %w", tok, ErrMalformed)
	}

	return Some(v), nil
}

func isDecimal(tok string) bool {
	if tok[0] == '+' || tok[0] == '-' {
		tok = tok[1:]
	}

	whole, frac, _ := strings.Cut(tok, ".")

	return whole+frac != "" && isDigits(whole) && isDigits(frac)
}

// FormatFloat renders v with exactly decimals digits after the point.
func FormatFloat(v Optional[float64], decimals int) string {
	f, ok := v.Get()
	if !ok {
		return ""
	}

	return strconv.FormatFloat(f, 'f', decimals, 64)
}

func ParseInt(tok string) (Optional[int], error) {
	if tok == "" {
		return None[int](), nil
	}

	v, err := strconv.Atoi(tok)
	if err != nil {
		return None[int](), fmt.Errorf("%q is not an integer: %w", tok, ErrMalformed)
	}

	return Some(v), nil
}

// FormatInt renders v zero padded to width digits. A width of zero means no
// padding.
func FormatInt(v Optional[int], width int) string {
	i, ok := v.Get()
	if !ok {
		return ""
	}

	if i < 0 {
		return fmt.Sprintf("-%0*d", width, -i)
	}

	return fmt.Sprintf("%0*d", width, i)
}

// ParseText never fails, every token is valid text.
func ParseText(tok string) Optional[string] {
	if tok == "" {
		return None[string]()
	}

	return Some(tok)
}

func FormatText(v Optional[string]) string {
	return v.Value()
}
