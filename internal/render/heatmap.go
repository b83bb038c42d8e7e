package render

import (
	"image"
	"image/draw"
)

// Heatmap rasterizes a rows x cols value grid through a colormap. Rows map
// to the vertical axis with row 0 at the bottom, matching the original
// viewer's origin convention. The grid is scaled to the target size with
// nearest-neighbor sampling.
func Heatmap(vals []float64, rows, cols int, cmap Colormap, lim Limits, width, height int) *image.RGBA {
	img, rect := plotFrame(width, height)
	if rows <= 0 || cols <= 0 || len(vals) != rows*cols {
		return img
	}

	span := lim.Hi - lim.Lo
	w, h := rect.Dx(), rect.Dy()
	for y := 0; y < h; y++ {
		// Bottom screen row shows grid row 0.
		row := (h - 1 - y) * rows / h
		for x := 0; x < w; x++ {
			col := x * cols / w
			v := vals[row*cols+col]
			t := 0.5
			if span > 0 {
				t = (v - lim.Lo) / span
			}
			img.SetRGBA(rect.Min.X+x, rect.Min.Y+y, cmap.At(t))
		}
	}
	return img
}

// Placeholder returns a flat neutral image shown when rendering fails.
func Placeholder(width, height int) *image.RGBA {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{plotBorder}, image.Point{}, draw.Src)
	return img
}
