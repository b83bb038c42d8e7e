package ndio

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/numex-dev/numex/internal/ndarray"
)

// buildNPY assembles a raw .npy byte stream with a version 1.0 header.
func buildNPY(t *testing.T, dict string, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.Write([]byte{1, 0})
	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(dict))); err != nil {
		t.Fatalf("write header length: %v", err)
	}
	buf.WriteString(dict)
	buf.Write(payload)
	return buf.Bytes()
}

func TestReadNPY_Float64(t *testing.T) {
	payload := new(bytes.Buffer)
	for _, v := range []float64{1.5, -2, 3, 4, 5, 6} {
		binary.Write(payload, binary.LittleEndian, v)
	}
	raw := buildNPY(t, "{'descr': '<f8', 'fortran_order': False, 'shape': (2, 3), }\n", payload.Bytes())

	arr, err := ReadNPY(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadNPY failed: %v", err)
	}
	shape := arr.Shape()
	if shape[0] != 2 || shape[1] != 3 {
		t.Fatalf("shape = %v, want [2 3]", shape)
	}
	if arr.IsComplex() {
		t.Error("float64 array should not be complex")
	}
	if v, _ := arr.At(0, 0); real(v) != 1.5 {
		t.Errorf("arr[0,0] = %v, want 1.5", v)
	}
	if v, _ := arr.At(1, 2); real(v) != 6 {
		t.Errorf("arr[1,2] = %v, want 6", v)
	}
}

func TestReadNPY_FortranOrder(t *testing.T) {
	// Column-major (2,3): columns stored contiguously.
	payload := new(bytes.Buffer)
	for _, v := range []float64{1, 4, 2, 5, 3, 6} {
		binary.Write(payload, binary.LittleEndian, v)
	}
	raw := buildNPY(t, "{'descr': '<f8', 'fortran_order': True, 'shape': (2, 3), }\n", payload.Bytes())

	arr, err := ReadNPY(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadNPY failed: %v", err)
	}
	want := [][]float64{{1, 2, 3}, {4, 5, 6}}
	for i := range want {
		for j := range want[i] {
			v, _ := arr.At(i, j)
			if real(v) != want[i][j] {
				t.Errorf("arr[%d,%d] = %v, want %v", i, j, v, want[i][j])
			}
		}
	}
}

func TestReadNPY_Uint8Vector(t *testing.T) {
	raw := buildNPY(t, "{'descr': '|u1', 'fortran_order': False, 'shape': (4,), }\n", []byte{0, 128, 200, 255})

	arr, err := ReadNPY(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadNPY failed: %v", err)
	}
	if arr.Rank() != 1 || arr.Len() != 4 {
		t.Fatalf("shape = %v, want [4]", arr.Shape())
	}
	if v, _ := arr.At(2); real(v) != 200 {
		t.Errorf("arr[2] = %v, want 200", v)
	}
}

func TestReadNPY_Complex64(t *testing.T) {
	payload := new(bytes.Buffer)
	for _, v := range []float32{1, 2, 3, -4} {
		binary.Write(payload, binary.LittleEndian, v)
	}
	raw := buildNPY(t, "{'descr': '<c8', 'fortran_order': False, 'shape': (2,), }\n", payload.Bytes())

	arr, err := ReadNPY(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadNPY failed: %v", err)
	}
	if !arr.IsComplex() {
		t.Fatal("expected complex array")
	}
	if v, _ := arr.At(1); real(v) != 3 || imag(v) != -4 {
		t.Errorf("arr[1] = %v, want (3-4i)", v)
	}
}

func TestReadNPY_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want string
	}{
		{"bad magic", append([]byte("NOTNUMPY"), 0, 0), "bad magic"},
		{"big endian", buildNPY(t, "{'descr': '>f8', 'fortran_order': False, 'shape': (1,), }\n", make([]byte, 8)), "big-endian"},
		{"object dtype", buildNPY(t, "{'descr': '|O', 'fortran_order': False, 'shape': (1,), }\n", nil), "unsupported dtype"},
		{"scalar shape", buildNPY(t, "{'descr': '<f8', 'fortran_order': False, 'shape': (), }\n", nil), "zero-dimensional"},
		{"truncated after shape key", buildNPY(t, "{'descr': '<f8', 'fortran_order': False, 'shape':", nil), "expected tuple"},
		{"shape not a tuple", buildNPY(t, "{'descr': '<f8', 'fortran_order': False, 'shape': 4, }\n", nil), "expected tuple"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadNPY(bytes.NewReader(tc.raw))
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestNPY_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.npy")

	src, err := ndarray.FromComplex([]complex128{1, complex(2, -1), 3, complex(0, 4), 5, 6}, 2, 3)
	if err != nil {
		t.Fatalf("FromComplex failed: %v", err)
	}
	if err := SaveNPY(path, src); err != nil {
		t.Fatalf("SaveNPY failed: %v", err)
	}

	// Preamble must be aligned so numpy can memory-map the data section.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	dataStart := len(raw) - src.Len()*16
	if dataStart%npyAlign != 0 {
		t.Errorf("data section starts at %d, not %d-byte aligned", dataStart, npyAlign)
	}

	arr, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, want := arr.String(), src.String(); got != want {
		t.Fatalf("loaded %s, want %s", got, want)
	}
	v, _ := arr.At(0, 1)
	if v != complex(2, -1) {
		t.Errorf("arr[0,1] = %v, want (2-1i)", v)
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load("data.xyz")
	if err == nil {
		t.Fatal("expected error for unknown extension")
	}
	if !strings.Contains(err.Error(), "npy") {
		t.Errorf("error %q should list known extensions", err)
	}
}

func TestSynthetic_Deterministic(t *testing.T) {
	a, err := Synthetic([]int{4, 5}, true, 42)
	if err != nil {
		t.Fatalf("Synthetic failed: %v", err)
	}
	b, err := Synthetic([]int{4, 5}, true, 42)
	if err != nil {
		t.Fatalf("Synthetic failed: %v", err)
	}
	for i, v := range a.Data() {
		if b.Data()[i] != v {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, v, b.Data()[i])
		}
	}

	if _, err := Synthetic([]int{0}, false, 1); err == nil {
		t.Error("expected error for zero dimension")
	}

	r, err := Synthetic([]int{8}, false, 7)
	if err != nil {
		t.Fatalf("Synthetic failed: %v", err)
	}
	for _, v := range r.Data() {
		f := real(v)
		if math.IsNaN(f) || f < 0 || f >= 1 {
			t.Fatalf("value %v outside [0, 1)", f)
		}
	}
}
