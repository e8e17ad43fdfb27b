package conversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"screenruler/internal/match"
	"screenruler/unit"
)

var (
	// ErrConfiguration marks a factor table that cannot produce a complete
	// conversion table. Build never returns a partial table.
	ErrConfiguration = errors.New("conversion: invalid factor table")

	// ErrUnknownUnit is returned when a caller passes a unit the table does
	// not know.
	ErrUnknownUnit = errors.New("conversion: unknown unit")

	// ErrNotFinite is returned by ConvertFloat for NaN and infinite inputs.
	ErrNotFinite = errors.New("conversion: value is NaN or infinite")

	// ErrNilValue is returned by Convert for a nil value.
	ErrNilValue = errors.New("conversion: nil value")
)

// ConfigurationError describes why closure construction failed. From and
// To are set when a specific pair could not be connected.
type ConfigurationError struct {
	From unit.Unit
	To   unit.Unit
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.From != "" || e.To != "" {
		return fmt.Sprintf("%v: cannot convert %s to %s: %v", ErrConfiguration, e.From, e.To, e.Err)
	}

	return fmt.Sprintf("%v: %v", ErrConfiguration, e.Err)
}

// Unwrap exposes both ErrConfiguration and the underlying cause.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

// maxSuggestions bounds the "did you mean" list of unknown unit errors.
const maxSuggestions = 3

func unknownUnit(u unit.Unit, known []match.Name) error {
	hints := match.Suggest(string(u), known, maxSuggestions)
	if len(hints) == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}

	quoted := make([]string, len(hints))
	for i, h := range hints {
		quoted[i] = strconv.Quote(string(h))
	}

	return fmt.Errorf("%w: %q (did you mean %s?)", ErrUnknownUnit, string(u), strings.Join(quoted, " or "))
}
