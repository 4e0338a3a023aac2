package aero

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Supported independent-variable counts for tabulated coefficients.
const (
	MinDimensions = 1
	MaxDimensions = 6
)

// ScalarTable is one scalar coefficient component on an N-dimensional grid:
// per-dimension breakpoint lists plus values in row-major order over the
// grid they span. It is the in-memory shape the external file reader must
// produce; the textual encoding is the reader's concern.
type ScalarTable struct {
	breakpoints [][]float64
	values      []float64
}

// NewScalarTable validates and builds a scalar component table. Breakpoint
// lists must be non-empty and strictly increasing, and the value count must
// equal the grid size.
func NewScalarTable(breakpoints [][]float64, values []float64) (*ScalarTable, error) {
	n := len(breakpoints)
	if n < MinDimensions || n > MaxDimensions {
		return nil, fmt.Errorf("%w: %d independent variables", ErrUnsupportedDimensionality, n)
	}
	size := 1
	for d, bp := range breakpoints {
		if len(bp) == 0 {
			return nil, fmt.Errorf("aero: empty breakpoint list for dimension %d", d)
		}
		for i := 1; i < len(bp); i++ {
			if bp[i] <= bp[i-1] {
				return nil, fmt.Errorf("aero: breakpoints for dimension %d not strictly increasing", d)
			}
		}
		size *= len(bp)
	}
	if len(values) != size {
		return nil, fmt.Errorf("aero: got %d values for a grid of %d points", len(values), size)
	}
	return &ScalarTable{breakpoints: breakpoints, values: values}, nil
}

// Dimension returns the number of independent variables.
func (t *ScalarTable) Dimension() int { return len(t.breakpoints) }

// Shape returns the per-dimension grid sizes.
func (t *ScalarTable) Shape() []int {
	shape := make([]int, len(t.breakpoints))
	for d, bp := range t.breakpoints {
		shape[d] = len(bp)
	}
	return shape
}

func sameBreakpoints(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if len(a[d]) != len(b[d]) {
			return false
		}
		for i := range a[d] {
			if a[d][i] != b[d][i] {
				return false
			}
		}
	}
	return true
}

// VectorTable is an N-dimensional grid of 3-vector coefficients over shared
// breakpoint lists, produced by merging three per-axis scalar tables.
type VectorTable struct {
	breakpoints [][]float64
	shape       []int
	strides     []int
	values      []r3.Vec
}

// MergeTables merges the x, y and z component tables element-wise into one
// table of 3-vectors. A nil component stands for an all-zero table on the
// shared grid. All non-nil components must agree exactly on shape and
// breakpoints.
func MergeTables(x, y, z *ScalarTable) (*VectorTable, error) {
	var ref *ScalarTable
	for _, t := range []*ScalarTable{x, y, z} {
		if t != nil {
			ref = t
			break
		}
	}
	if ref == nil {
		return nil, fmt.Errorf("aero: merge needs at least one component table")
	}
	for axis, t := range []*ScalarTable{x, y, z} {
		if t == nil || t == ref {
			continue
		}
		if !sameBreakpoints(ref.breakpoints, t.breakpoints) {
			return nil, fmt.Errorf("%w: axis %d table disagrees with axis grid", ErrInconsistentIndependentVariables, axis)
		}
	}

	shape := ref.Shape()
	strides := make([]int, len(shape))
	size := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = size
		size *= shape[d]
	}
	component := func(t *ScalarTable, i int) float64 {
		if t == nil {
			return 0
		}
		return t.values[i]
	}
	values := make([]r3.Vec, size)
	for i := range values {
		values[i] = r3.Vec{X: component(x, i), Y: component(y, i), Z: component(z, i)}
	}
	return &VectorTable{
		breakpoints: ref.breakpoints,
		shape:       shape,
		strides:     strides,
		values:      values,
	}, nil
}

// zeroLike returns an all-zero table on the same grid as t.
func zeroLike(t *VectorTable) *VectorTable {
	return &VectorTable{
		breakpoints: t.breakpoints,
		shape:       t.shape,
		strides:     t.strides,
		values:      make([]r3.Vec, len(t.values)),
	}
}

// Dimension returns the number of independent variables.
func (t *VectorTable) Dimension() int { return len(t.breakpoints) }

// Breakpoints returns the per-dimension independent variable lists.
func (t *VectorTable) Breakpoints() [][]float64 { return t.breakpoints }

// At returns the grid value at the given multi-index. Panics on a malformed
// index; it is an internal accessor for tests and interpolation.
func (t *VectorTable) At(idx ...int) r3.Vec {
	flat := 0
	for d, i := range idx {
		flat += i * t.strides[d]
	}
	return t.values[flat]
}

// bracket locates the interpolation cell and weight for value v on one
// breakpoint list, clamping outside the grid.
func bracket(bp []float64, v float64) (lo int, w float64) {
	if len(bp) == 1 || v <= bp[0] {
		return 0, 0
	}
	last := len(bp) - 1
	if v >= bp[last] {
		return last - 1, 1
	}
	hi := sort.SearchFloat64s(bp, v)
	lo = hi - 1
	return lo, (v - bp[lo]) / (bp[hi] - bp[lo])
}

// Interpolate evaluates the table at the given independent variable values
// by N-dimensional multilinear interpolation, clamped at the grid edges.
func (t *VectorTable) Interpolate(vars []float64) (r3.Vec, error) {
	n := t.Dimension()
	if len(vars) != n {
		return r3.Vec{}, fmt.Errorf("%w: got %d values, table has %d dimensions",
			ErrDimensionalityMismatch, len(vars), n)
	}
	lows := make([]int, n)
	weights := make([]float64, n)
	for d := 0; d < n; d++ {
		lows[d], weights[d] = bracket(t.breakpoints[d], vars[d])
	}

	var out r3.Vec
	for corner := 0; corner < 1<<n; corner++ {
		w := 1.0
		flat := 0
		for d := 0; d < n; d++ {
			if corner&(1<<d) != 0 {
				w *= weights[d]
				flat += (lows[d] + 1) * t.strides[d]
			} else {
				w *= 1 - weights[d]
				flat += lows[d] * t.strides[d]
			}
		}
		if w == 0 {
			continue
		}
		out = r3.Add(out, r3.Scale(w, t.values[flat]))
	}
	return out, nil
}
