// Package metrics exports closure construction and conversion counters to
// Prometheus.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"screenruler/unit"
)

const namespace = "screenruler"

// Recorder implements conversion.Observer on top of Prometheus collectors.
type Recorder struct {
	units       prometheus.Gauge
	derived     prometheus.Counter
	pathSteps   prometheus.Histogram
	conversions *prometheus.CounterVec
}

// NewRecorder creates a recorder and registers its collectors on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "units",
			Help:      "Number of units known to the conversion table.",
		}),
		derived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "closure",
			Name:      "derived_pairs_total",
			Help:      "Unit pairs whose factor was derived by path search.",
		}),
		pathSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "closure",
			Name:      "path_steps",
			Help:      "Length of the paths derived factors were composed from.",
			Buckets:   prometheus.LinearBuckets(1, 1, 6),
		}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions served, by source and target unit.",
		}, []string{"from", "to"}),
	}

	for _, c := range []prometheus.Collector{r.units, r.derived, r.pathSteps, r.conversions} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return r, nil
}

// SetUnits records the size of the conversion table.
func (r *Recorder) SetUnits(n int) {
	r.units.Set(float64(n))
}

// ObserveDerived counts a derived pair and the length of its path.
func (r *Recorder) ObserveDerived(_, _ unit.Unit, steps int) {
	r.derived.Inc()
	r.pathSteps.Observe(float64(steps))
}

// ObserveConversion counts one conversion.
func (r *Recorder) ObserveConversion(from, to unit.Unit) {
	r.conversions.WithLabelValues(string(from), string(to)).Inc()
}

// WriteText writes everything g gathers in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
