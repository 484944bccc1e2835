// Package core holds the domain model: trips, expenses, settings, money and
// the pure budget-aggregation functions.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in integer cents. All stored amounts use cents so that
// aggregation never goes through floating point.
type Money struct {
	Cents int64
}

// MarshalJSON serializes Money as a bare cents number.
func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, m.Cents, 10), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(strings.Trim(string(b), `"`), 10, 64)
	if err != nil {
		return err
	}
	m.Cents = v
	return nil
}

// Float returns the major-unit value for display purposes only.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount as "1234.56" with two decimals.
func (m Money) Format() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// ParseDecimalToCents converts a decimal string to cents with half-up rounding
// on the third decimal place. Both dot and comma separators are accepted.
// Negative values are rejected; zero is allowed only when allowZero is set
// (trip budgets may be zero, expense amounts may not).
func ParseDecimalToCents(s string, allowZero bool) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid("amount", "must be a number")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, invalid("amount", "must be positive")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, invalid("amount", "must be a number")
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, invalid("amount", "must be a number")
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, invalid("amount", "must be a number")
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, invalid("amount", "is too large")
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents == 0 && !allowZero {
		return 0, invalid("amount", "must be greater than 0")
	}
	return cents, nil
}
