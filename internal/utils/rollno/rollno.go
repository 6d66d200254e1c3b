// Package rollno validates and expands 12-digit hall ticket numbers.
package rollno

import (
	"fmt"
	"strconv"
)

// Length is the fixed width of a roll number
const Length = 12

// maxValue is the largest number that still renders in Length digits
const maxValue uint64 = 999999999999

// Validate checks that s is exactly Length ASCII digits
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("roll number %q must be exactly %d digits", s, Length)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("roll number %q must contain only digits", s)
		}
	}
	return nil
}

// Parse validates s and returns its numeric value
func Parse(s string) (uint64, error) {
	if err := Validate(s); err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("roll number %q: %w", s, err)
	}
	return n, nil
}

// Format renders n zero-padded to Length digits
func Format(n uint64) string {
	return fmt.Sprintf("%0*d", Length, n)
}

// Count returns the number of roll numbers in [start, end]
func Count(start, end string) (uint64, error) {
	lo, err := Parse(start)
	if err != nil {
		return 0, err
	}
	hi, err := Parse(end)
	if err != nil {
		return 0, err
	}
	if lo > hi {
		return 0, fmt.Errorf("start roll number %s is greater than end roll number %s", start, end)
	}
	return hi - lo + 1, nil
}

// Expand returns every roll number in [start, end] in ascending order.
// max bounds the size of the range; zero means unbounded.
func Expand(start, end string, max uint64) ([]string, error) {
	n, err := Count(start, end)
	if err != nil {
		return nil, err
	}
	if max > 0 && n > max {
		return nil, fmt.Errorf("range %s-%s spans %d roll numbers, limit is %d", start, end, n, max)
	}

	lo, _ := Parse(start)
	out := make([]string, 0, n)
	for v := lo; ; v++ {
		out = append(out, Format(v))
		if v == lo+n-1 || v == maxValue {
			break
		}
	}
	return out, nil
}
