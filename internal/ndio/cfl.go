package ndio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/numex-dev/numex/internal/ndarray"
)

// BART CFL format: a text .hdr with the dimensions and a .cfl of raw
// little-endian complex64 values in Fortran (column-major) order.
// Trailing singleton dimensions are trimmed on load.

func init() {
	Register("cfl", LoadCFL)
	Register("hdr", LoadCFL)
}

// LoadCFL reads a CFL header+data pair. path may point at the .hdr, the
// .cfl, or the shared base path.
func LoadCFL(path string) (*ndarray.NDArray, error) {
	base := cflBase(path)

	shape, err := readCFLHeader(base + ".hdr")
	if err != nil {
		return nil, err
	}

	n := 1
	for _, d := range shape {
		n *= d
	}

	f, err := os.Open(base + ".cfl")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw := make([]byte, n*8)
	if _, err := io.ReadFull(bufio.NewReader(f), raw); err != nil {
		return nil, fmt.Errorf("read %d complex64 values: %w", n, err)
	}

	le := binary.LittleEndian
	data := make([]complex128, n)
	for i := range data {
		re := math.Float32frombits(le.Uint32(raw[i*8:]))
		im := math.Float32frombits(le.Uint32(raw[i*8+4:]))
		data[i] = complex(float64(re), float64(im))
	}

	return ndarray.FromComplex(fortranToC(data, shape), shape...)
}

func cflBase(path string) string {
	for _, ext := range []string{".hdr", ".cfl"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

func readCFLHeader(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: missing comment line", path)
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: missing dimensions line", path)
	}

	var shape []int
	for _, field := range strings.Fields(scanner.Text()) {
		d, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%s: bad dimension %q: %w", path, field, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%s: non-positive dimension %d", path, d)
		}
		shape = append(shape, d)
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%s: empty dimensions line", path)
	}

	// BART pads with trailing ones; keep at least one dimension.
	for len(shape) > 1 && shape[len(shape)-1] == 1 {
		shape = shape[:len(shape)-1]
	}
	return shape, nil
}

// SaveCFL writes the array as a CFL pair at base (without extension).
// Values are narrowed to complex64 on disk.
func SaveCFL(base string, arr *ndarray.NDArray) error {
	base = cflBase(base)
	shape := arr.Shape()

	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	header := "# Dimensions\n" + strings.Join(dims, " ") + "\n"
	if err := os.WriteFile(base+".hdr", []byte(header), 0o644); err != nil {
		return err
	}

	f, err := os.Create(base + ".cfl")
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	le := binary.LittleEndian
	buf := make([]byte, 8)
	for _, v := range cToFortran(arr.Data(), shape) {
		le.PutUint32(buf, math.Float32bits(float32(real(v))))
		le.PutUint32(buf[4:], math.Float32bits(float32(imag(v))))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return w.Flush()
}

// cToFortran reorders row-major data into column-major layout.
func cToFortran(data []complex128, shape []int) []complex128 {
	rank := len(shape)
	fstrides := make([]int, rank)
	stride := 1
	for i := 0; i < rank; i++ {
		fstrides[i] = stride
		stride *= shape[i]
	}

	out := make([]complex128, len(data))
	idx := make([]int, rank)
	for c := range data {
		foff := 0
		for i := 0; i < rank; i++ {
			foff += idx[i] * fstrides[i]
		}
		out[foff] = data[c]

		for i := rank - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < shape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out
}
