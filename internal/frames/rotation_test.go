package frames

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func matClose(t *testing.T, a, b *mat.Dense, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > tol {
				t.Fatalf("matrices differ at (%d,%d): %g vs %g", i, j, a.At(i, j), b.At(i, j))
			}
		}
	}
}

func TestSkewIsCrossProduct(t *testing.T) {
	v := r3.Vec{X: 0.3, Y: -1.2, Z: 2.5}
	w := r3.Vec{X: 1.0, Y: 0.5, Z: -0.7}
	want := r3.Cross(v, w)
	got := MulVec(Skew(v), w)
	if math.Abs(got.X-want.X) > 1e-14 || math.Abs(got.Y-want.Y) > 1e-14 || math.Abs(got.Z-want.Z) > 1e-14 {
		t.Errorf("Skew(v)·w = %v, want %v", got, want)
	}
}

func TestAngularVelocityRoundTrip(t *testing.T) {
	// Ṙ from ω, ω back from Ṙ, Ṙ again: the derivative must reproduce
	// within 1e-12 for any orthonormal R.
	rotations := []*mat.Dense{
		R1(0.4),
		R3(1.2),
		func() *mat.Dense {
			var m, n mat.Dense
			m.Mul(R3(0.7), R1(-0.3))
			n.Mul(&m, R2(2.1))
			return &n
		}(),
	}
	omega := r3.Vec{X: 0.01, Y: -0.03, Z: 0.07}

	for i, rot := range rotations {
		deriv := DerivativeFromAngularVelocity(rot, omega)
		// The recovery identity works on the derivative of the rotation to
		// the base frame, the transpose of the derivative to the target.
		var derivToBase mat.Dense
		derivToBase.CloneFrom(deriv.T())
		back := AngularVelocityFromDerivative(rot, &derivToBase)
		if math.Abs(back.X-omega.X) > 1e-12 ||
			math.Abs(back.Y-omega.Y) > 1e-12 ||
			math.Abs(back.Z-omega.Z) > 1e-12 {
			t.Errorf("case %d: angular velocity round trip gave %v, want %v", i, back, omega)
		}
		again := DerivativeFromAngularVelocity(rot, back)
		matClose(t, again, deriv, 1e-12)
	}
}

func TestQuatMatRoundTrip(t *testing.T) {
	var m mat.Dense
	m.Mul(R3(0.9), R2(-1.4))
	q := MatToQuat(&m)
	matClose(t, QuatToMat(q), &m, 1e-12)

	// Rotating a vector through the quaternion must match the matrix.
	v := r3.Vec{X: 1, Y: -2, Z: 0.5}
	got := Rotate(q, v)
	want := MulVec(&m, v)
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
		t.Errorf("quaternion rotation %v, matrix rotation %v", got, want)
	}
}

func TestQuatEqualSignAmbiguity(t *testing.T) {
	q := MatToQuat(R1(0.6))
	neg := q
	neg.Real, neg.Imag, neg.Jmag, neg.Kmag = -q.Real, -q.Imag, -q.Jmag, -q.Kmag
	if !QuatEqual(q, neg, 1e-12) {
		t.Error("q and -q must compare equal as rotations")
	}
	if QuatEqual(q, MatToQuat(R1(0.7)), 1e-6) {
		t.Error("distinct rotations compared equal")
	}
}

func TestAngleCalculatorZeroAngles(t *testing.T) {
	// With zero aerodynamic angles the body frame coincides with the
	// trajectory frame.
	traj := R3(0.5)
	calc := NewAngleCalculator(func(float64) *mat.Dense { return traj })
	got, err := calc.BodyToInertial(0, AeroAngles{})
	if err != nil {
		t.Fatalf("BodyToInertial: %v", err)
	}
	matClose(t, got, traj, 1e-14)
}

func TestAngleCalculatorPureAlpha(t *testing.T) {
	calc := NewAngleCalculator(func(float64) *mat.Dense {
		return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	})
	alpha := 0.25
	got, err := calc.BodyToInertial(0, AeroAngles{AngleOfAttack: alpha})
	if err != nil {
		t.Fatalf("BodyToInertial: %v", err)
	}
	var want mat.Dense
	want.CloneFrom(R2(alpha).T())
	matClose(t, got, &want, 1e-14)
}

func TestAngleCalculatorMissingSupplier(t *testing.T) {
	calc := NewAngleCalculator(nil)
	if _, err := calc.BodyToInertial(0, AeroAngles{}); err != ErrNoTrajectoryRotation {
		t.Errorf("got %v, want ErrNoTrajectoryRotation", err)
	}
}
