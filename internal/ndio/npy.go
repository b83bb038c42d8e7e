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

// NumPy .npy format. The reader accepts format versions 1.0 and 2.0 with
// little-endian numeric dtypes; the writer always emits version 1.0 with
// <f8 (real) or <c16 (complex) data.

var npyMagic = []byte("\x93NUMPY")

const npyAlign = 64

func init() {
	Register("npy", LoadNPY)
}

// LoadNPY reads a .npy file.
func LoadNPY(path string) (*ndarray.NDArray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadNPY(bufio.NewReader(f))
}

// ReadNPY reads a .npy stream.
func ReadNPY(r io.Reader) (*ndarray.NDArray, error) {
	header, err := readNPYHeader(r)
	if err != nil {
		return nil, err
	}

	n := 1
	for _, d := range header.shape {
		n *= d
	}

	raw := make([]byte, n*header.itemSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("read %d data bytes: %w", len(raw), err)
	}

	data := make([]complex128, n)
	for i := 0; i < n; i++ {
		data[i] = header.decode(raw[i*header.itemSize:])
	}
	if header.fortran {
		data = fortranToC(data, header.shape)
	}

	if header.complexData {
		return ndarray.FromComplex(data, header.shape...)
	}
	reals := make([]float64, n)
	for i, v := range data {
		reals[i] = real(v)
	}
	return ndarray.FromReal(reals, header.shape...)
}

type npyHeader struct {
	shape       []int
	fortran     bool
	complexData bool
	itemSize    int
	decode      func([]byte) complex128
}

func readNPYHeader(r io.Reader) (*npyHeader, error) {
	pre := make([]byte, 8)
	if _, err := io.ReadFull(r, pre); err != nil {
		return nil, fmt.Errorf("read preamble: %w", err)
	}
	if string(pre[:6]) != string(npyMagic) {
		return nil, fmt.Errorf("bad magic %q: not a .npy file", pre[:6])
	}
	major, minor := pre[6], pre[7]

	var headerLen int
	switch major {
	case 1:
		var l uint16
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(l)
	case 2:
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(l)
	default:
		return nil, fmt.Errorf("unsupported .npy version %d.%d", major, minor)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	dict := string(raw)

	descr, err := dictString(dict, "descr")
	if err != nil {
		return nil, err
	}
	fortran, err := dictBool(dict, "fortran_order")
	if err != nil {
		return nil, err
	}
	shape, err := dictShape(dict)
	if err != nil {
		return nil, err
	}

	h := &npyHeader{shape: shape, fortran: fortran}
	if err := h.bindDType(descr); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *npyHeader) bindDType(descr string) error {
	if strings.HasPrefix(descr, ">") {
		return fmt.Errorf("big-endian dtype %q not supported", descr)
	}

	le := binary.LittleEndian
	switch descr {
	case "<f4":
		h.itemSize = 4
		h.decode = func(b []byte) complex128 {
			return complex(float64(math.Float32frombits(le.Uint32(b))), 0)
		}
	case "<f8":
		h.itemSize = 8
		h.decode = func(b []byte) complex128 {
			return complex(math.Float64frombits(le.Uint64(b)), 0)
		}
	case "<c8":
		h.itemSize = 8
		h.complexData = true
		h.decode = func(b []byte) complex128 {
			return complex(
				float64(math.Float32frombits(le.Uint32(b))),
				float64(math.Float32frombits(le.Uint32(b[4:]))))
		}
	case "<c16":
		h.itemSize = 16
		h.complexData = true
		h.decode = func(b []byte) complex128 {
			return complex(
				math.Float64frombits(le.Uint64(b)),
				math.Float64frombits(le.Uint64(b[8:])))
		}
	case "|i1", "<i1":
		h.itemSize = 1
		h.decode = func(b []byte) complex128 { return complex(float64(int8(b[0])), 0) }
	case "<i2":
		h.itemSize = 2
		h.decode = func(b []byte) complex128 { return complex(float64(int16(le.Uint16(b))), 0) }
	case "<i4":
		h.itemSize = 4
		h.decode = func(b []byte) complex128 { return complex(float64(int32(le.Uint32(b))), 0) }
	case "<i8":
		h.itemSize = 8
		h.decode = func(b []byte) complex128 { return complex(float64(int64(le.Uint64(b))), 0) }
	case "|u1", "<u1":
		h.itemSize = 1
		h.decode = func(b []byte) complex128 { return complex(float64(b[0]), 0) }
	case "<u2":
		h.itemSize = 2
		h.decode = func(b []byte) complex128 { return complex(float64(le.Uint16(b)), 0) }
	case "<u4":
		h.itemSize = 4
		h.decode = func(b []byte) complex128 { return complex(float64(le.Uint32(b)), 0) }
	case "<u8":
		h.itemSize = 8
		h.decode = func(b []byte) complex128 { return complex(float64(le.Uint64(b)), 0) }
	default:
		return fmt.Errorf("unsupported dtype %q", descr)
	}
	return nil
}

// dictString extracts a quoted value ('...' or "...") for a key from the
// header's Python dict literal.
func dictString(dict, key string) (string, error) {
	rest, err := dictValue(dict, key)
	if err != nil {
		return "", err
	}
	if len(rest) < 2 || (rest[0] != '\'' && rest[0] != '"') {
		return "", fmt.Errorf("header key %q: expected quoted value", key)
	}
	quote := rest[0]
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return "", fmt.Errorf("header key %q: unterminated string", key)
	}
	return rest[1 : 1+end], nil
}

func dictBool(dict, key string) (bool, error) {
	rest, err := dictValue(dict, key)
	if err != nil {
		return false, err
	}
	switch {
	case strings.HasPrefix(rest, "True"):
		return true, nil
	case strings.HasPrefix(rest, "False"):
		return false, nil
	}
	return false, fmt.Errorf("header key %q: expected True or False", key)
}

func dictShape(dict string) ([]int, error) {
	rest, err := dictValue(dict, "shape")
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 || rest[0] != '(' {
		return nil, fmt.Errorf("header key \"shape\": expected tuple")
	}
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return nil, fmt.Errorf("header key \"shape\": unterminated tuple")
	}

	var shape []int
	for _, part := range strings.Split(rest[1:end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("header shape entry %q: %w", part, err)
		}
		shape = append(shape, d)
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("zero-dimensional arrays are not supported")
	}
	return shape, nil
}

func dictValue(dict, key string) (string, error) {
	for _, quoted := range []string{"'" + key + "'", "\"" + key + "\""} {
		i := strings.Index(dict, quoted)
		if i < 0 {
			continue
		}
		rest := dict[i+len(quoted):]
		colon := strings.IndexByte(rest, ':')
		if colon < 0 {
			break
		}
		return strings.TrimLeft(rest[colon+1:], " \t"), nil
	}
	return "", fmt.Errorf("header key %q missing", key)
}

// fortranToC reorders column-major data into row-major layout.
func fortranToC(data []complex128, shape []int) []complex128 {
	rank := len(shape)
	fstrides := make([]int, rank)
	stride := 1
	for i := 0; i < rank; i++ {
		fstrides[i] = stride
		stride *= shape[i]
	}

	out := make([]complex128, len(data))
	idx := make([]int, rank)
	for c := range out {
		foff := 0
		for i := 0; i < rank; i++ {
			foff += idx[i] * fstrides[i]
		}
		out[c] = data[foff]

		// Advance the C-order multi-index (last axis fastest).
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

// SaveNPY writes the array to a version 1.0 .npy file.
func SaveNPY(path string, arr *ndarray.NDArray) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteNPY(w, arr); err != nil {
		return err
	}
	return w.Flush()
}

// WriteNPY writes the array to a .npy stream.
func WriteNPY(w io.Writer, arr *ndarray.NDArray) error {
	descr := "<f8"
	if arr.IsComplex() {
		descr = "<c16"
	}

	dims := make([]string, arr.Rank())
	for i, d := range arr.Shape() {
		dims[i] = strconv.Itoa(d)
	}
	shape := strings.Join(dims, ", ")
	if arr.Rank() == 1 {
		shape += ","
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }", descr, shape)

	// Pad the full preamble to the alignment boundary, newline-terminated.
	total := len(npyMagic) + 2 + 2 + len(dict) + 1
	pad := (npyAlign - total%npyAlign) % npyAlign
	dict += strings.Repeat(" ", pad) + "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(dict))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, dict); err != nil {
		return err
	}

	buf := make([]byte, 16)
	le := binary.LittleEndian
	for _, v := range arr.Data() {
		le.PutUint64(buf, math.Float64bits(real(v)))
		n := 8
		if arr.IsComplex() {
			le.PutUint64(buf[8:], math.Float64bits(imag(v)))
			n = 16
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
	return nil
}
