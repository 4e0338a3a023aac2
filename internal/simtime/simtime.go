// Package simtime provides the two time representations accepted by the
// rotational models: plain float64 seconds since epoch, and an extended
// split representation that keeps sub-microsecond resolution over
// multi-year propagation spans.
package simtime

import "math"

// SecondsPerPeriod is the span of one whole period in the extended
// representation. One hour keeps the fractional part small enough that
// float64 resolution stays below a nanosecond for any realistic offset.
const SecondsPerPeriod = 3600.0

// Extended is a high-precision instant: whole hours since epoch plus
// seconds into the current hour. The offset is normalized to
// [0, SecondsPerPeriod) after every operation.
type Extended struct {
	period int64
	offset float64
}

// NewExtended builds a normalized extended instant.
func NewExtended(period int64, offset float64) Extended {
	t := Extended{period: period, offset: offset}
	t.normalize()
	return t
}

// FromSeconds converts plain seconds since epoch. Resolution is whatever
// the float64 input carried; use NewExtended to retain full precision.
func FromSeconds(seconds float64) Extended {
	return NewExtended(0, seconds)
}

func (t *Extended) normalize() {
	if math.IsNaN(t.offset) || math.IsInf(t.offset, 0) {
		return
	}
	carry := int64(math.Floor(t.offset / SecondsPerPeriod))
	t.period += carry
	t.offset -= float64(carry) * SecondsPerPeriod
	if t.offset < 0 { // guard against -0.0 rounding
		t.offset += SecondsPerPeriod
		t.period--
	}
}

// Period returns the whole-period count.
func (t Extended) Period() int64 { return t.period }

// Offset returns seconds into the current period, in [0, SecondsPerPeriod).
func (t Extended) Offset() float64 { return t.offset }

// Seconds collapses the instant to plain float64 seconds since epoch,
// losing the extra precision for large period counts.
func (t Extended) Seconds() float64 {
	return float64(t.period)*SecondsPerPeriod + t.offset
}

// Add returns the instant shifted by dt seconds.
func (t Extended) Add(dt float64) Extended {
	return NewExtended(t.period, t.offset+dt)
}

// Sub returns the difference t - u in seconds.
func (t Extended) Sub(u Extended) float64 {
	return float64(t.period-u.period)*SecondsPerPeriod + (t.offset - u.offset)
}

// Equal reports exact equality of the normalized representations.
func (t Extended) Equal(u Extended) bool {
	return t.period == u.period && t.offset == u.offset
}
