// Package unit defines the tokens naming length units.
//
// A Unit is a stable identifier: derived conversions are keyed on it, so a
// token must never be reused for a different unit once in use.
package unit

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is a short token naming a measurement unit, e.g. "px" or "mm".
type Unit string

const (
	Pixel      Unit = "px"
	Point      Unit = "pt"
	Em         Unit = "em"
	Inch       Unit = "in"
	Millimeter Unit = "mm"
	Pica       Unit = "pi"
)

// Builtin lists the built-in units in their canonical order.
var Builtin = []Unit{Pixel, Point, Em, Inch, Millimeter, Pica}

var labels = map[Unit]string{
	Pixel:      "Pixels",
	Point:      "Points",
	Em:         "Em",
	Inch:       "Inches",
	Millimeter: "Millimeters",
	Pica:       "Picas",
}

// ErrInvalid is returned by Parse for malformed tokens.
var ErrInvalid = errors.New("unit: invalid token")

// Parse trims s and checks that it is a usable token.
// Tokens consist of ASCII letters, digits and underscores.
func Parse(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if !isToken(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	return Unit(s), nil
}

// IsValid reports whether u is a well-formed token.
func (u Unit) IsValid() bool {
	return isToken(string(u))
}

// IsBuiltin reports whether u is one of the built-in units.
func (u Unit) IsBuiltin() bool {
	_, ok := labels[u]
	return ok
}

// Label returns the human-readable name of a built-in unit,
// or the token itself for any other unit.
func (u Unit) Label() string {
	if l, ok := labels[u]; ok {
		return l
	}

	return string(u)
}

func (u Unit) String() string {
	return string(u)
}

func isToken(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}

	return true
}
