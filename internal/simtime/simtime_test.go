package simtime

import (
	"math"
	"testing"
)

func TestNormalization(t *testing.T) {
	tests := []struct {
		name   string
		period int64
		offset float64
		wantP  int64
		wantO  float64
	}{
		{"in range", 2, 100.0, 2, 100.0},
		{"overflow", 0, 3600.0, 1, 0.0},
		{"multiple overflow", 0, 7300.0, 2, 100.0},
		{"negative offset", 1, -100.0, 0, 3500.0},
		{"zero", 0, 0.0, 0, 0.0},
	}
	for _, tt := range tests {
		got := NewExtended(tt.period, tt.offset)
		if got.Period() != tt.wantP || math.Abs(got.Offset()-tt.wantO) > 1e-9 {
			t.Errorf("%s: got (%d, %g), want (%d, %g)",
				tt.name, got.Period(), got.Offset(), tt.wantP, tt.wantO)
		}
	}
}

func TestAddSub(t *testing.T) {
	a := NewExtended(10, 3000.0)
	b := a.Add(1200.0)
	if b.Period() != 11 || math.Abs(b.Offset()-600.0) > 1e-9 {
		t.Errorf("Add: got (%d, %g)", b.Period(), b.Offset())
	}
	if d := b.Sub(a); math.Abs(d-1200.0) > 1e-9 {
		t.Errorf("Sub: got %g, want 1200", d)
	}
}

func TestPrecisionOverLongSpans(t *testing.T) {
	// A decade out, adding a microsecond must still change the instant.
	decade := int64(10 * 365 * 24)
	a := NewExtended(decade, 1800.0)
	b := a.Add(1e-6)
	if a.Equal(b) {
		t.Fatal("microsecond step lost a decade from epoch")
	}
	if d := b.Sub(a); math.Abs(d-1e-6) > 1e-12 {
		t.Errorf("difference: got %g, want 1e-6", d)
	}
}

func TestFromSecondsRoundTrip(t *testing.T) {
	for _, s := range []float64{0, 1.5, 3599.999, 7200.25, -100.0} {
		if got := FromSeconds(s).Seconds(); math.Abs(got-s) > 1e-9 {
			t.Errorf("round trip %g: got %g", s, got)
		}
	}
}
