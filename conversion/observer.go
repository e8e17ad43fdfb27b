package conversion

import "screenruler/unit"

// Observer receives events from a Table. Implementations must be safe for
// concurrent use: conversions may be observed from many goroutines.
type Observer interface {
	// ObserveDerived is called once per pair derived during Build, with
	// the number of steps of the path it was derived from.
	ObserveDerived(from, to unit.Unit, steps int)
	// ObserveConversion is called for every successful conversion.
	ObserveConversion(from, to unit.Unit)
}

// Option configures Build.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver attaches o to the table being built.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

type nopObserver struct{}

func (nopObserver) ObserveDerived(unit.Unit, unit.Unit, int) {}
func (nopObserver) ObserveConversion(unit.Unit, unit.Unit)   {}
