// Package frames holds the kinematic identities relating rotation matrices,
// their time derivatives and angular velocity vectors, plus the aerodynamic
// angle chain from trajectory to body axes.
package frames

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// Skew returns the cross-product matrix of v, so that Skew(v)·w == v × w.
func Skew(v r3.Vec) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	})
}

// AngularVelocityFromDerivative recovers the angular velocity of the target
// frame w.r.t. the base frame, expressed in the base frame, from the rotation
// to the target frame and the time derivative of the rotation to the base
// frame. The product derivToBase·rotToTarget is antisymmetric whenever
// rotToTarget is orthonormal and derivToBase is its true derivative; the
// three independent entries are the angular velocity components. Neither
// precondition is checked.
func AngularVelocityFromDerivative(rotToTarget, derivToBase *mat.Dense) r3.Vec {
	var cross mat.Dense
	cross.Mul(derivToBase, rotToTarget)
	return r3.Vec{X: cross.At(2, 1), Y: cross.At(0, 2), Z: cross.At(1, 0)}
}

// DerivativeFromAngularVelocity is the inverse identity: the time derivative
// of the rotation to the target frame from that rotation and the angular
// velocity in the base frame, Ṙ = skew(−R·ω)·R.
func DerivativeFromAngularVelocity(rotToTarget *mat.Dense, omega r3.Vec) *mat.Dense {
	rotated := MulVec(rotToTarget, omega)
	var deriv mat.Dense
	deriv.Mul(Skew(r3.Scale(-1, rotated)), rotToTarget)
	return &deriv
}

// MulVec multiplies a 3×3 matrix with a 3-vector.
func MulVec(m *mat.Dense, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// QuatToMat converts a unit quaternion to its rotation matrix.
func QuatToMat(q quat.Number) *mat.Dense {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}

// MatToQuat converts an orthonormal rotation matrix to a unit quaternion
// using Shepperd's method, picking the numerically largest component first.
func MatToQuat(m *mat.Dense) quat.Number {
	tr := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
	var q quat.Number
	switch {
	case tr > 0:
		s := 2 * math.Sqrt(1+tr)
		q.Real = s / 4
		q.Imag = (m.At(2, 1) - m.At(1, 2)) / s
		q.Jmag = (m.At(0, 2) - m.At(2, 0)) / s
		q.Kmag = (m.At(1, 0) - m.At(0, 1)) / s
	case m.At(0, 0) > m.At(1, 1) && m.At(0, 0) > m.At(2, 2):
		s := 2 * math.Sqrt(1+m.At(0, 0)-m.At(1, 1)-m.At(2, 2))
		q.Real = (m.At(2, 1) - m.At(1, 2)) / s
		q.Imag = s / 4
		q.Jmag = (m.At(0, 1) + m.At(1, 0)) / s
		q.Kmag = (m.At(0, 2) + m.At(2, 0)) / s
	case m.At(1, 1) > m.At(2, 2):
		s := 2 * math.Sqrt(1+m.At(1, 1)-m.At(0, 0)-m.At(2, 2))
		q.Real = (m.At(0, 2) - m.At(2, 0)) / s
		q.Imag = (m.At(0, 1) + m.At(1, 0)) / s
		q.Jmag = s / 4
		q.Kmag = (m.At(1, 2) + m.At(2, 1)) / s
	default:
		s := 2 * math.Sqrt(1+m.At(2, 2)-m.At(0, 0)-m.At(1, 1))
		q.Real = (m.At(1, 0) - m.At(0, 1)) / s
		q.Imag = (m.At(0, 2) + m.At(2, 0)) / s
		q.Jmag = (m.At(1, 2) + m.At(2, 1)) / s
		q.Kmag = s / 4
	}
	return q
}

// Rotate applies the rotation q to v.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

// QuatEqual reports whether two unit quaternions represent the same rotation,
// treating q and -q as equivalent.
func QuatEqual(a, b quat.Number, tol float64) bool {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	return math.Abs(math.Abs(dot)-1) < tol
}
