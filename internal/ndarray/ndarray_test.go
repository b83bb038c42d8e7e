package ndarray

import (
	"math"
	"testing"
)

func TestNew_ShapeValidation(t *testing.T) {
	cases := []struct {
		name    string
		shape   []int
		wantErr bool
	}{
		{"scalar rejected", nil, true},
		{"zero dim rejected", []int{3, 0}, true},
		{"negative dim rejected", []int{-1}, true},
		{"vector", []int{5}, false},
		{"volume", []int{2, 3, 4}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := New(tc.shape...)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("New(%v) expected error, got none", tc.shape)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%v) failed: %v", tc.shape, err)
			}
			want := 1
			for _, d := range tc.shape {
				want *= d
			}
			if a.Len() != want {
				t.Errorf("Len = %d, want %d", a.Len(), want)
			}
		})
	}
}

func TestAtSet_RowMajorLayout(t *testing.T) {
	a, err := New(2, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	v := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if err := a.Set(complex(v, 0), i, j); err != nil {
				t.Fatalf("Set(%d,%d) failed: %v", i, j, err)
			}
			v++
		}
	}

	// Row-major: element (1,0) sits at flat offset 3.
	if got := real(a.Data()[3]); got != 3 {
		t.Errorf("flat[3] = %v, want 3", got)
	}

	got, err := a.At(1, 2)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if real(got) != 5 {
		t.Errorf("At(1,2) = %v, want 5", got)
	}

	if _, err := a.At(2, 0); err == nil {
		t.Error("At(2,0) expected out-of-range error")
	}
	if _, err := a.At(0); err == nil {
		t.Error("At with wrong rank expected error")
	}
}

func TestFromReal_LengthMismatch(t *testing.T) {
	if _, err := FromReal([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestIsComplex_DTypeBased(t *testing.T) {
	// Complex is a dtype property, so zero imaginary parts do not
	// demote the array.
	pure, _ := FromComplex([]complex128{1, 2, 3, 4}, 4)
	if !pure.IsComplex() {
		t.Error("complex array with zero imaginary parts must stay complex")
	}

	mixed, _ := FromComplex([]complex128{1, complex(0, 2)}, 2)
	if !mixed.IsComplex() {
		t.Error("array with nonzero imaginary part should be complex")
	}

	realArr, _ := FromReal([]float64{1, 2}, 2)
	if realArr.IsComplex() {
		t.Error("real array should never be complex")
	}
}

func TestSlice1D(t *testing.T) {
	// shape (2,3,4), values are the flat index.
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	a, err := FromReal(data, 2, 3, 4)
	if err != nil {
		t.Fatalf("FromReal failed: %v", err)
	}

	// Line along the last axis at (1, 2, *): flat 20..23.
	line, err := a.Slice1D(2, []int{1, 2, 0})
	if err != nil {
		t.Fatalf("Slice1D failed: %v", err)
	}
	want := []float64{20, 21, 22, 23}
	for i, w := range want {
		if real(line[i]) != w {
			t.Errorf("line[%d] = %v, want %v", i, line[i], w)
		}
	}

	// Line along the first axis at (*, 1, 3): flat 7 and 19.
	line, err = a.Slice1D(0, []int{0, 1, 3})
	if err != nil {
		t.Fatalf("Slice1D failed: %v", err)
	}
	if real(line[0]) != 7 || real(line[1]) != 19 {
		t.Errorf("line = %v, want [7 19]", line)
	}

	if _, err := a.Slice1D(3, []int{0, 0, 0}); err == nil {
		t.Error("expected axis out-of-range error")
	}
}

func TestSlice2D(t *testing.T) {
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	a, _ := FromReal(data, 2, 3, 4)

	plane, err := a.Slice2D(1, 2, []int{1, 0, 0})
	if err != nil {
		t.Fatalf("Slice2D failed: %v", err)
	}
	shape := plane.Shape()
	if shape[0] != 3 || shape[1] != 4 {
		t.Fatalf("plane shape = %v, want [3 4]", shape)
	}
	// (1, 0, 0) is flat 12; (1, 2, 3) is flat 23.
	if v, _ := plane.At(0, 0); real(v) != 12 {
		t.Errorf("plane[0,0] = %v, want 12", v)
	}
	if v, _ := plane.At(2, 3); real(v) != 23 {
		t.Errorf("plane[2,3] = %v, want 23", v)
	}

	// Swapped axes transpose the plane.
	swapped, err := a.Slice2D(2, 1, []int{1, 0, 0})
	if err != nil {
		t.Fatalf("Slice2D swapped failed: %v", err)
	}
	shape = swapped.Shape()
	if shape[0] != 4 || shape[1] != 3 {
		t.Fatalf("swapped shape = %v, want [4 3]", shape)
	}
	if v, _ := swapped.At(3, 2); real(v) != 23 {
		t.Errorf("swapped[3,2] = %v, want 23", v)
	}

	if _, err := a.Slice2D(1, 1, []int{0, 0, 0}); err == nil {
		t.Error("expected equal-axes error")
	}
}

func TestTranspose2D(t *testing.T) {
	a, _ := FromReal([]float64{0, 1, 2, 3, 4, 5}, 2, 3)

	tr, err := a.Transpose2D()
	if err != nil {
		t.Fatalf("Transpose2D failed: %v", err)
	}
	shape := tr.Shape()
	if shape[0] != 3 || shape[1] != 2 {
		t.Fatalf("shape = %v, want [3 2]", shape)
	}
	if v, _ := tr.At(2, 1); real(v) != 5 {
		t.Errorf("tr[2,1] = %v, want 5", v)
	}

	vec, _ := FromReal([]float64{1, 2, 3}, 3)
	if _, err := vec.Transpose2D(); err == nil {
		t.Error("expected rank error for vector")
	}
}

func TestComponent(t *testing.T) {
	v := complex(3, 4)

	if got := CompReal.Apply(v); got != 3 {
		t.Errorf("real = %v, want 3", got)
	}
	if got := CompImag.Apply(v); got != 4 {
		t.Errorf("imag = %v, want 4", got)
	}
	if got := CompMagnitude.Apply(v); got != 5 {
		t.Errorf("magnitude = %v, want 5", got)
	}
	// Phase follows the original convention atan2(real, imag).
	if got, want := CompPhase.Apply(v), math.Atan2(3, 4); got != want {
		t.Errorf("phase = %v, want %v", got, want)
	}
}

func TestMinMax(t *testing.T) {
	data := []complex128{complex(2, 0), complex(-7, 0), complex(4, 0)}
	lo, hi := MinMax(data, CompReal)
	if lo != -7 || hi != 4 {
		t.Errorf("MinMax = (%v, %v), want (-7, 4)", lo, hi)
	}

	lo, hi = MinMax(nil, CompReal)
	if lo != 0 || hi != 0 {
		t.Errorf("MinMax(empty) = (%v, %v), want (0, 0)", lo, hi)
	}
}
