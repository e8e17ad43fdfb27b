package ruler

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"screenruler/factor"
	"screenruler/unit"
)

var (
	// ErrNoSteps is returned by Ticks when no step is given.
	ErrNoSteps = errors.New("ruler: no tick steps")

	// ErrInvalidStep is returned for nil, zero or negative steps.
	ErrInvalidStep = errors.New("ruler: tick step must be positive")

	// ErrNegativeSpan is returned for spans below zero pixels.
	ErrNegativeSpan = errors.New("ruler: negative span")
)

// Converter converts exact values between units.
type Converter interface {
	Convert(v *big.Rat, from, to unit.Unit) (*big.Rat, error)
}

// Tick is one mark on the ruler.
type Tick struct {
	// Level is the index of the step that produced the tick; 0 is the
	// coarsest and the only labelled level.
	Level int
	// Value is the tick position in the ruler unit.
	Value *big.Rat
	// Px is the tick position in whole pixels, truncated.
	Px int64
	// Label is the text drawn next to level 0 ticks.
	Label string
}

var builtinSteps = factor.Default()

// DefaultSteps returns the tick steps of a built-in unit, coarsest first.
// Other units get a single step of 1.
func DefaultSteps(u unit.Unit) []*big.Rat {
	if d, ok := builtinSteps.Lookup(u); ok && len(d.Ticks) > 0 {
		return d.Ticks
	}

	return []*big.Rat{big.NewRat(1, 1)}
}

// Ticks lays out the ticks of a ruler measuring in u over spanPx pixels.
//
// For each step, every multiple of the step from 0 up to the span is a
// tick at that level, unless a coarser level already placed a tick at the
// same value. Ticks are returned in increasing value order.
func Ticks(c Converter, u unit.Unit, spanPx int64, steps []*big.Rat) ([]Tick, error) {
	if spanPx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSpan, spanPx)
	}

	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	span, err := c.Convert(big.NewRat(spanPx, 1), unit.Pixel, u)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var res []Tick

	for level, step := range steps {
		if step == nil || step.Sign() <= 0 {
			return nil, fmt.Errorf("%w: level %d", ErrInvalidStep, level)
		}

		for k := int64(0); ; k++ {
			v := new(big.Rat).Mul(step, big.NewRat(k, 1))
			if v.Cmp(span) > 0 {
				break
			}

			key := v.RatString()
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}

			px, err := c.Convert(v, u, unit.Pixel)
			if err != nil {
				return nil, err
			}

			tick := Tick{Level: level, Value: v, Px: truncate(px)}
			if level == 0 {
				tick.Label = FormatValue(v)
			}

			res = append(res, tick)
		}
	}

	slices.SortStableFunc(res, func(a, b Tick) int {
		return a.Value.Cmp(b.Value)
	})

	return res, nil
}

// FormatValue renders v as an integer or a terminating decimal when
// possible ("5", "0.5", "2.54"), and as a fraction otherwise ("1/3").
func FormatValue(v *big.Rat) string {
	if v.IsInt() {
		return v.Num().String()
	}

	scaled := new(big.Rat)
	ten := big.NewRat(10, 1)
	scaled.Set(v)

	for digits := 1; digits <= maxLabelDigits; digits++ {
		scaled.Mul(scaled, ten)
		if scaled.IsInt() {
			return v.FloatString(digits)
		}
	}

	return v.RatString()
}

const maxLabelDigits = 9

func truncate(r *big.Rat) int64 {
	return new(big.Int).Quo(r.Num(), r.Denom()).Int64()
}
