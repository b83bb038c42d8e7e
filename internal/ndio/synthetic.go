package ndio

import (
	"math/rand"

	"github.com/numex-dev/numex/internal/ndarray"
)

// Synthetic generates a uniformly random array for demos and tests.
// The same seed always yields the same array.
func Synthetic(shape []int, complexData bool, seed int64) (*ndarray.NDArray, error) {
	n, err := shapeLen(shape)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	if complexData {
		data := make([]complex128, n)
		for i := range data {
			data[i] = complex(rng.Float64(), rng.Float64())
		}
		return ndarray.FromComplex(data, shape...)
	}

	data := make([]float64, n)
	for i := range data {
		data[i] = rng.Float64()
	}
	return ndarray.FromReal(data, shape...)
}

func shapeLen(shape []int) (int, error) {
	n := 1
	valid := len(shape) > 0
	for _, d := range shape {
		if d <= 0 {
			valid = false
			break
		}
		n *= d
	}
	if !valid {
		// Let the array constructor produce the canonical error message.
		_, err := ndarray.New(shape...)
		return 0, err
	}
	return n, nil
}
