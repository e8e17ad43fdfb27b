package factor

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// DefaultPrecision is the number of fractional digits kept by FromDecimal
// when no other precision is configured (hundredths).
const DefaultPrecision = 2

// MaxPrecision bounds the digits accepted by FromDecimal.
const MaxPrecision = 18

var (
	// ErrInvalidFactor is returned for malformed or missing factors.
	ErrInvalidFactor = errors.New("factor: invalid factor")

	// ErrNotFinite is returned by FromDecimal for NaN and infinite inputs.
	ErrNotFinite = errors.New("factor: value is NaN or infinite")

	// ErrInvalidPrecision is returned for digits outside 0..MaxPrecision.
	ErrInvalidPrecision = errors.New("factor: invalid precision")
)

// FromDecimal turns a decimal approximation into an exact rational by
// rounding x*10^digits to an integer in float64 arithmetic, ties to even.
// Scaling in floating point keeps 1.115 at 112/100 although its binary
// value is slightly below the tie.
//
// FromDecimal(0.0833, 2) == 8/100, FromDecimal(25.4, 2) == 2540/100.
func FromDecimal(x float64, digits int) (*big.Rat, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNotFinite, x)
	}

	if digits < 0 || digits > MaxPrecision {
		return nil, fmt.Errorf("%w: %d digits (want 0..%d)", ErrInvalidPrecision, digits, MaxPrecision)
	}

	scaled := math.RoundToEven(x * math.Pow10(digits))
	if math.IsInf(scaled, 0) {
		return nil, fmt.Errorf("%w: %v scaled by 10^%d", ErrNotFinite, x, digits)
	}

	num, _ := big.NewFloat(scaled).Int(nil)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	return new(big.Rat).SetFrac(num, scale), nil
}

// ParseRat parses an exact rational literal: "72", "25.4", "1/96", "-3/4".
func ParseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a rational literal", ErrInvalidFactor, s)
	}

	return r, nil
}

// FormatRat renders r as a literal ParseRat accepts: "72" or "1/96".
func FormatRat(r *big.Rat) string {
	return r.RatString()
}
