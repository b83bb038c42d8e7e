package ndio

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestLoadImage_Gray8(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.SetGray(0, 0, color.Gray{Y: 0})
	src.SetGray(1, 0, color.Gray{Y: 128})
	src.SetGray(2, 1, color.Gray{Y: 255})
	path := writePNG(t, "gray8.png", src)

	arr, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	shape := arr.Shape()
	if arr.Rank() != 2 || shape[0] != 2 || shape[1] != 3 {
		t.Fatalf("shape = %v, want [2 3]", shape)
	}
	cases := []struct {
		y, x int
		want float64
	}{
		{0, 0, 0},
		{0, 1, 128.0 / 255.0},
		{1, 2, 1},
	}
	for _, tc := range cases {
		v, _ := arr.At(tc.y, tc.x)
		if math.Abs(real(v)-tc.want) > 1e-9 {
			t.Errorf("arr[%d,%d] = %v, want %v", tc.y, tc.x, real(v), tc.want)
		}
	}
}

func TestLoadImage_Gray16(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 2))
	src.SetGray16(0, 0, color.Gray16{Y: 0})
	src.SetGray16(1, 0, color.Gray16{Y: 0x8000})
	src.SetGray16(0, 1, color.Gray16{Y: 0xffff})
	path := writePNG(t, "gray16.png", src)

	arr, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if arr.Rank() != 2 {
		t.Fatalf("rank = %d, want 2", arr.Rank())
	}
	// Depth conversion rescales, so the midpoint must survive instead of
	// wrapping through the low byte.
	cases := []struct {
		y, x int
		want float64
	}{
		{0, 0, 0},
		{0, 1, 0.5},
		{1, 0, 1},
	}
	for _, tc := range cases {
		v, _ := arr.At(tc.y, tc.x)
		if math.Abs(real(v)-tc.want) > 0.01 {
			t.Errorf("arr[%d,%d] = %v, want %v", tc.y, tc.x, real(v), tc.want)
		}
	}
}

func TestLoadImage_ColorRGB(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 255, A: 255})
	path := writePNG(t, "color.png", src)

	arr, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	shape := arr.Shape()
	if arr.Rank() != 3 || shape[2] != 3 {
		t.Fatalf("shape = %v, want [1 2 3]", shape)
	}
	r, _ := arr.At(0, 0, 0)
	b, _ := arr.At(0, 0, 2)
	if real(r) != 1 || real(b) != 0 {
		t.Errorf("pixel (0,0) = R %v B %v, want R 1 B 0 in RGB order", real(r), real(b))
	}
	r, _ = arr.At(0, 1, 0)
	b, _ = arr.At(0, 1, 2)
	if real(r) != 0 || real(b) != 1 {
		t.Errorf("pixel (0,1) = R %v B %v, want R 0 B 1 in RGB order", real(r), real(b))
	}
}
