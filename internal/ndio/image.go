package ndio

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/numex-dev/numex/internal/ndarray"
)

// Image files open through OpenCV so the explorer can treat pictures as
// plain arrays: grayscale becomes rank 2 (H, W), color becomes rank 3
// (H, W, C) in RGB channel order. Values are scaled to [0, 1].

func init() {
	for _, ext := range []string{"png", "jpg", "jpeg", "bmp", "tif", "tiff"} {
		Register(ext, LoadImage)
	}
}

// LoadImage reads an image file into a real array.
func LoadImage(path string) (*ndarray.NDArray, error) {
	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	if mat.Empty() {
		return nil, fmt.Errorf("imread failed for %q", path)
	}
	defer mat.Close()

	// 16-bit and float images decode with wider elements; bring them to
	// 8 bits per channel before sampling. convertTo keeps the channel
	// count, only the depth changes.
	if depth := mat.ElemSize() / mat.Channels(); depth != 1 {
		alpha := float32(255.0)
		if depth == 2 {
			alpha = 255.0 / 65535.0
		}
		converted := gocv.NewMat()
		defer converted.Close()
		mat.ConvertToWithParams(&converted, gocv.MatTypeCV8U, alpha, 0)
		return matToArray(&converted)
	}

	return matToArray(&mat)
}

func matToArray(mat *gocv.Mat) (*ndarray.NDArray, error) {
	rows := mat.Rows()
	cols := mat.Cols()
	channels := mat.Channels()

	switch channels {
	case 1:
		data := make([]float64, rows*cols)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				data[y*cols+x] = float64(mat.GetUCharAt(y, x)) / 255.0
			}
		}
		return ndarray.FromReal(data, rows, cols)
	case 3, 4:
		// OpenCV stores BGR(A); emit RGB and drop alpha.
		data := make([]float64, rows*cols*3)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				b := mat.GetUCharAt3(y, x, 0)
				g := mat.GetUCharAt3(y, x, 1)
				r := mat.GetUCharAt3(y, x, 2)
				off := (y*cols + x) * 3
				data[off] = float64(r) / 255.0
				data[off+1] = float64(g) / 255.0
				data[off+2] = float64(b) / 255.0
			}
		}
		return ndarray.FromReal(data, rows, cols, 3)
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}
}
