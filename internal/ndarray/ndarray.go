// Package ndarray implements the dense n-dimensional array the explorer
// operates on. Data is held as complex128 in C (row-major) order; real
// arrays carry a flag so loaders and renderers can avoid the imaginary
// component entirely.
package ndarray

import (
	"fmt"
	"math/cmplx"
)

// Free marks an axis that stays free when slicing; every other axis is
// pinned to a fixed index.
const Free = -1

// NDArray is a dense n-dimensional numerical array.
type NDArray struct {
	shape   []int
	strides []int
	data    []complex128
	complex bool
}

// New returns a zero-filled real array with the given shape.
func New(shape ...int) (*NDArray, error) {
	return newArray(shape, false)
}

// NewComplex returns a zero-filled complex array with the given shape.
func NewComplex(shape ...int) (*NDArray, error) {
	return newArray(shape, true)
}

func newArray(shape []int, complexData bool) (*NDArray, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	return &NDArray{
		shape:   append([]int(nil), shape...),
		strides: computeStrides(shape),
		data:    make([]complex128, n),
		complex: complexData,
	}, nil
}

// FromReal wraps a real data slice. The data is used directly, not copied,
// and must have exactly prod(shape) elements.
func FromReal(data []float64, shape ...int) (*NDArray, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("data length %d does not match shape %v (want %d)", len(data), shape, n)
	}
	cdata := make([]complex128, n)
	for i, v := range data {
		cdata[i] = complex(v, 0)
	}
	return &NDArray{
		shape:   append([]int(nil), shape...),
		strides: computeStrides(shape),
		data:    cdata,
		complex: false,
	}, nil
}

// FromComplex wraps a complex data slice of exactly prod(shape) elements.
func FromComplex(data []complex128, shape ...int) (*NDArray, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("data length %d does not match shape %v (want %d)", len(data), shape, n)
	}
	return &NDArray{
		shape:   append([]int(nil), shape...),
		strides: computeStrides(shape),
		data:    data,
		complex: true,
	}, nil
}

func checkShape(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("array must have at least one dimension")
	}
	n := 1
	for i, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("dimension %d has non-positive size %d", i, d)
		}
		n *= d
	}
	return n, nil
}

func computeStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

// Shape returns a copy of the array's dimensions.
func (a *NDArray) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Rank returns the number of dimensions.
func (a *NDArray) Rank() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *NDArray) Len() int { return len(a.data) }

// Dim returns the size of one axis.
func (a *NDArray) Dim(axis int) (int, error) {
	if axis < 0 || axis >= len(a.shape) {
		return 0, fmt.Errorf("axis %d out of range for rank %d", axis, len(a.shape))
	}
	return a.shape[axis], nil
}

// IsComplex reports whether the array was created as complex. This is a
// property of the storage, not of the values: a complex array whose
// imaginary parts are all zero is still complex.
func (a *NDArray) IsComplex() bool { return a.complex }

// Data exposes the backing slice in C order. Callers must not resize it.
func (a *NDArray) Data() []complex128 { return a.data }

func (a *NDArray) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("index rank %d does not match array rank %d", len(idx), len(a.shape))
	}
	off := 0
	for i, j := range idx {
		if j < 0 || j >= a.shape[i] {
			return 0, fmt.Errorf("index %d out of range for axis %d (size %d)", j, i, a.shape[i])
		}
		off += j * a.strides[i]
	}
	return off, nil
}

// At returns the element at a multi-index.
func (a *NDArray) At(idx ...int) (complex128, error) {
	off, err := a.offset(idx)
	if err != nil {
		return 0, err
	}
	return a.data[off], nil
}

// Set stores an element at a multi-index.
func (a *NDArray) Set(v complex128, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// DType returns a short human-readable element type name.
func (a *NDArray) DType() string {
	if a.complex {
		return "complex128"
	}
	return "float64"
}

// String summarizes the array for logs and status bars.
func (a *NDArray) String() string {
	return fmt.Sprintf("NDArray(shape=%v, dtype=%s)", a.shape, a.DType())
}

// Magnitude of a complex value; plain absolute value for real arrays.
func Magnitude(v complex128) float64 { return cmplx.Abs(v) }
