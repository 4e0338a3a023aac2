package ephemerides

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/KevinDehulsters/tudat/internal/frames"
)

func identityCalc() *frames.AngleCalculator {
	return frames.NewAngleCalculator(func(float64) *mat.Dense {
		return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	})
}

type countingSource struct {
	calls  int
	resets int
	angles frames.AeroAngles
	err    error
}

func (s *countingSource) AnglesAt(t float64) (frames.AeroAngles, error) {
	s.calls++
	return s.angles, s.err
}

func (s *countingSource) ResetCurrentTime() { s.resets++ }

func TestQueryBeforeClosureFails(t *testing.T) {
	e := NewAeroAngleEphemeris(identityCalc(), "J2000", "VehicleFixed")
	if _, err := e.RotationToBase(0); !errors.Is(err, ErrClosureNotReady) {
		t.Fatalf("got %v, want ErrClosureNotReady", err)
	}
	if err := e.Update(1.0); !errors.Is(err, ErrClosureNotReady) {
		t.Fatalf("Update: got %v, want ErrClosureNotReady", err)
	}

	e.SetAngleSource(&countingSource{})
	if _, err := e.RotationToBase(0); err != nil {
		t.Fatalf("query after registration failed: %v", err)
	}
}

func TestMemoizationSingleSourceCall(t *testing.T) {
	src := &countingSource{angles: frames.AeroAngles{AngleOfAttack: 0.1}}
	e := NewAeroAngleEphemeris(identityCalc(), "J2000", "VehicleFixed")
	e.SetAngleSource(src)

	if err := e.Update(2.5); err != nil {
		t.Fatal(err)
	}
	if err := e.Update(2.5); err != nil {
		t.Fatal(err)
	}
	if src.calls != 1 {
		t.Errorf("angle source invoked %d times for one instant, want 1", src.calls)
	}

	if err := e.Update(3.0); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("angle source invoked %d times after time change, want 2", src.calls)
	}
}

func TestResetForcesRecomputation(t *testing.T) {
	src := &countingSource{}
	e := NewAeroAngleEphemeris(identityCalc(), "J2000", "VehicleFixed")
	e.SetAngleSource(src)

	if err := e.Update(1.0); err != nil {
		t.Fatal(err)
	}
	e.ResetCurrentTime()
	if src.resets != 1 {
		t.Errorf("reset not forwarded to source (%d forwards)", src.resets)
	}
	if err := e.Update(1.0); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("same-time query after reset hit the cache (%d calls)", src.calls)
	}
}

func TestReplaceAngleSourceWins(t *testing.T) {
	first := &countingSource{angles: frames.AeroAngles{AngleOfAttack: 0.1}}
	second := &countingSource{angles: frames.AeroAngles{AngleOfAttack: 0.2}}
	e := NewAeroAngleEphemeris(identityCalc(), "J2000", "VehicleFixed")

	e.SetAngleSource(first)
	if _, err := e.RotationToBase(5.0); err != nil {
		t.Fatal(err)
	}
	e.SetAngleSource(second)
	angles, err := e.Angles(5.0)
	if err != nil {
		t.Fatal(err)
	}
	if angles.AngleOfAttack != 0.2 {
		t.Errorf("angle of attack %g after replacement, want 0.2", angles.AngleOfAttack)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("source calls first=%d second=%d, want 1 and 1", first.calls, second.calls)
	}
}

func TestInverseIdentity(t *testing.T) {
	src := AngleFunc(func(t float64) (frames.AeroAngles, error) {
		return frames.AeroAngles{AngleOfAttack: 0.05 * t, Sideslip: 0.01, Bank: -0.3}, nil
	})
	e := NewAeroAngleEphemeris(frames.NewAngleCalculator(func(t float64) *mat.Dense {
		return frames.R3(0.1 * t)
	}), "J2000", "VehicleFixed")
	e.SetAngleSource(src)

	for _, tm := range []float64{0, 1.5, 10, 250} {
		toBase, err := e.RotationToBase(tm)
		if err != nil {
			t.Fatal(err)
		}
		toTarget, err := e.RotationToTarget(tm)
		if err != nil {
			t.Fatal(err)
		}
		// conj(toTarget) must be toBase up to quaternion sign.
		inv := toTarget
		inv.Imag, inv.Jmag, inv.Kmag = -inv.Imag, -inv.Jmag, -inv.Kmag
		if !frames.QuatEqual(inv, toBase, 1e-12) {
			t.Errorf("t=%g: RotationToTarget is not the inverse of RotationToBase", tm)
		}
	}
}

func TestDerivativesUnsupported(t *testing.T) {
	e := NewAeroAngleEphemeris(identityCalc(), "J2000", "VehicleFixed")
	e.SetAngleSource(&countingSource{})

	if _, err := e.DerivativeToBase(0); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("DerivativeToBase: got %v", err)
	}
	if _, err := e.DerivativeToTarget(0); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("DerivativeToTarget: got %v", err)
	}
	if _, err := e.Kinematics(0); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Kinematics: got %v", err)
	}
}

func TestFailedSourceLeavesCacheUntouched(t *testing.T) {
	src := &countingSource{angles: frames.AeroAngles{AngleOfAttack: 0.1}}
	e := NewAeroAngleEphemeris(identityCalc(), "J2000", "VehicleFixed")
	e.SetAngleSource(src)
	if err := e.Update(1.0); err != nil {
		t.Fatal(err)
	}

	src.err = errors.New("guidance offline")
	if err := e.Update(2.0); err == nil {
		t.Fatal("expected propagated source error")
	}
	// The failed update must not have advanced the cached time.
	if e.lastTime != 1.0 || math.IsNaN(e.lastTime) {
		t.Errorf("cache mutated on failure: lastTime=%g", e.lastTime)
	}
}
