package ndarray

import (
	"fmt"
	"math"
)

// Slice1D extracts the line along axis, with every other axis pinned to the
// index given in fixed. fixed must have one entry per axis; the entry at the
// free axis is ignored, so callers may mark it with Free.
func (a *NDArray) Slice1D(axis int, fixed []int) ([]complex128, error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, fmt.Errorf("axis %d out of range for rank %d", axis, len(a.shape))
	}
	if len(fixed) != len(a.shape) {
		return nil, fmt.Errorf("fixed index rank %d does not match array rank %d", len(fixed), len(a.shape))
	}

	idx := append([]int(nil), fixed...)
	idx[axis] = 0
	base, err := a.offset(idx)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, a.shape[axis])
	stride := a.strides[axis]
	for i := range out {
		out[i] = a.data[base+i*stride]
	}
	return out, nil
}

// Slice2D extracts the plane spanned by ax0 (rows) and ax1 (columns), with
// every other axis pinned. The result is always indexed row-major as
// [ax0][ax1] regardless of the axes' order in the array.
func (a *NDArray) Slice2D(ax0, ax1 int, fixed []int) (*NDArray, error) {
	if ax0 == ax1 {
		return nil, fmt.Errorf("plane axes must be different (both are %d)", ax0)
	}
	for _, ax := range []int{ax0, ax1} {
		if ax < 0 || ax >= len(a.shape) {
			return nil, fmt.Errorf("axis %d out of range for rank %d", ax, len(a.shape))
		}
	}
	if len(fixed) != len(a.shape) {
		return nil, fmt.Errorf("fixed index rank %d does not match array rank %d", len(fixed), len(a.shape))
	}

	idx := append([]int(nil), fixed...)
	idx[ax0] = 0
	idx[ax1] = 0
	base, err := a.offset(idx)
	if err != nil {
		return nil, err
	}

	rows, cols := a.shape[ax0], a.shape[ax1]
	out := make([]complex128, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i*cols+j] = a.data[base+i*a.strides[ax0]+j*a.strides[ax1]]
		}
	}

	plane := &NDArray{
		shape:   []int{rows, cols},
		strides: computeStrides([]int{rows, cols}),
		data:    out,
		complex: a.complex,
	}
	return plane, nil
}

// Transpose2D swaps the axes of a rank-2 array.
func (a *NDArray) Transpose2D() (*NDArray, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("transpose needs rank 2, got rank %d", len(a.shape))
	}
	return a.Slice2D(1, 0, []int{Free, Free})
}

// Component selects a scalar view of the (possibly complex) values.
type Component int

const (
	CompReal Component = iota
	CompImag
	CompMagnitude
	CompPhase
)

func (c Component) String() string {
	switch c {
	case CompReal:
		return "real"
	case CompImag:
		return "imag"
	case CompMagnitude:
		return "magnitude"
	case CompPhase:
		return "phase"
	}
	return "unknown"
}

// Apply extracts the component from a single value. Phase follows the
// original tool's convention of atan2(real, imag).
func (c Component) Apply(v complex128) float64 {
	switch c {
	case CompReal:
		return real(v)
	case CompImag:
		return imag(v)
	case CompMagnitude:
		return Magnitude(v)
	case CompPhase:
		return math.Atan2(real(v), imag(v))
	}
	return math.NaN()
}

// ComponentOf maps the whole data slice through a component.
func ComponentOf(data []complex128, c Component) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = c.Apply(v)
	}
	return out
}

// MinMax scans a component over all elements. Returns (0, 0) for empty data;
// NaN values are skipped.
func MinMax(data []complex128, c Component) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	seen := false
	for _, v := range data {
		f := c.Apply(v)
		if math.IsNaN(f) {
			continue
		}
		seen = true
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	if !seen {
		return 0, 0
	}
	return lo, hi
}
