package ndio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/numex-dev/numex/internal/ndarray"
)

func TestCFL_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "kspace")

	src, err := ndarray.FromComplex([]complex128{
		1, complex(2, 1), 3,
		complex(4, -2), 5, complex(6, 0.5),
	}, 2, 3)
	if err != nil {
		t.Fatalf("FromComplex failed: %v", err)
	}

	if err := SaveCFL(base, src); err != nil {
		t.Fatalf("SaveCFL failed: %v", err)
	}

	// Loader accepts .hdr, .cfl and the bare base path.
	for _, path := range []string{base + ".hdr", base + ".cfl", base} {
		arr, err := LoadCFL(path)
		if err != nil {
			t.Fatalf("LoadCFL(%s) failed: %v", path, err)
		}
		shape := arr.Shape()
		if shape[0] != 2 || shape[1] != 3 {
			t.Fatalf("shape = %v, want [2 3]", shape)
		}
		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				want, _ := src.At(i, j)
				got, _ := arr.At(i, j)
				if got != want {
					t.Errorf("arr[%d,%d] = %v, want %v", i, j, got, want)
				}
			}
		}
	}
}

func TestCFL_TrailingSingletonsTrimmed(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "padded")

	// BART-style header padded to five dimensions.
	header := "# Dimensions\n4 2 1 1 1\n"
	if err := os.WriteFile(base+".hdr", []byte(header), 0o644); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := os.WriteFile(base+".cfl", make([]byte, 4*2*8), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}

	arr, err := LoadCFL(base)
	if err != nil {
		t.Fatalf("LoadCFL failed: %v", err)
	}
	shape := arr.Shape()
	if len(shape) != 2 || shape[0] != 4 || shape[1] != 2 {
		t.Errorf("shape = %v, want [4 2]", shape)
	}
}

func TestCFL_FortranOrderOnDisk(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "order")

	src, _ := ndarray.FromComplex([]complex128{1, 2, 3, 4, 5, 6}, 2, 3)
	if err := SaveCFL(base, src); err != nil {
		t.Fatalf("SaveCFL failed: %v", err)
	}

	raw, err := os.ReadFile(base + ".cfl")
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	// Column-major: the second stored value is row 1 of column 0, i.e. 4.
	second := float64frombytes(raw[8:12])
	if second != 4 {
		t.Errorf("second on-disk value = %v, want 4 (column-major)", second)
	}
}

func float64frombytes(b []byte) float64 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return float64(math.Float32frombits(bits))
}

func TestCFL_HeaderErrors(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty file", "", "missing comment line"},
		{"no dims line", "# Dimensions\n", "missing dimensions line"},
		{"garbage dims", "# Dimensions\n4 x 2\n", "bad dimension"},
		{"zero dim", "# Dimensions\n4 0\n", "non-positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_"))
			if err := os.WriteFile(base+".hdr", []byte(tc.header), 0o644); err != nil {
				t.Fatalf("write header: %v", err)
			}
			_, err := LoadCFL(base)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
