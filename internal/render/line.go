package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// LineOptions carries the styling controls for 1D and x/y plots.
type LineOptions struct {
	Color      color.RGBA
	Width      float64
	Style      string
	Marker     string
	MarkerSize float64
}

// Limits pins the value range of an axis; nil means fit to the data.
type Limits struct {
	Lo, Hi float64
}

const plotMargin = 10

var (
	plotBackground = color.RGBA{255, 255, 255, 255}
	plotBorder     = color.RGBA{160, 160, 160, 255}
)

// Line plots a series against its index.
func Line(series []float64, opts LineOptions, width, height int, ylim *Limits) *image.RGBA {
	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	return XY(xs, series, opts, width, height, nil, ylim)
}

// XY plots two equally long series against each other.
func XY(xs, ys []float64, opts LineOptions, width, height int, xlim, ylim *Limits) *image.RGBA {
	img, rect := plotFrame(width, height)
	if len(xs) == 0 || len(xs) != len(ys) {
		return img
	}

	xLo, xHi := rangeOf(xs, xlim)
	yLo, yHi := rangeOf(ys, ylim)

	px := make([]int, len(xs))
	py := make([]int, len(ys))
	for i := range xs {
		px[i] = rect.Min.X + scale(xs[i], xLo, xHi, rect.Dx()-1)
		// Value axis grows upward.
		py[i] = rect.Max.Y - 1 - scale(ys[i], yLo, yHi, rect.Dy()-1)
	}

	lineWidth := int(opts.Width + 0.5)
	dashOn, dashOff := dashPattern(opts.Style)
	phase := 0
	if lineWidth > 0 {
		for i := 1; i < len(px); i++ {
			drawSegment(img, px[i-1], py[i-1], px[i], py[i], opts.Color, lineWidth, dashOn, dashOff, &phase)
		}
	}

	if opts.Marker != "" && opts.MarkerSize > 0 {
		size := int(opts.MarkerSize + 0.5)
		for i := range px {
			drawMarker(img, px[i], py[i], opts.Marker, size, opts.Color)
		}
	}

	return img
}

// plotFrame prepares a white canvas with a border box and returns the inner
// plotting area.
func plotFrame(width, height int) (*image.RGBA, image.Rectangle) {
	if width < 2*plotMargin+2 {
		width = 2*plotMargin + 2
	}
	if height < 2*plotMargin+2 {
		height = 2*plotMargin + 2
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{plotBackground}, image.Point{}, draw.Src)

	rect := image.Rect(plotMargin, plotMargin, width-plotMargin, height-plotMargin)
	for x := rect.Min.X - 1; x <= rect.Max.X; x++ {
		img.SetRGBA(x, rect.Min.Y-1, plotBorder)
		img.SetRGBA(x, rect.Max.Y, plotBorder)
	}
	for y := rect.Min.Y - 1; y <= rect.Max.Y; y++ {
		img.SetRGBA(rect.Min.X-1, y, plotBorder)
		img.SetRGBA(rect.Max.X, y, plotBorder)
	}
	return img, rect
}

func rangeOf(vals []float64, lim *Limits) (float64, float64) {
	if lim != nil {
		return lim.Lo, lim.Hi
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

func scale(v, lo, hi float64, span int) int {
	if hi <= lo {
		return span / 2
	}
	p := int(math.Round((v - lo) / (hi - lo) * float64(span)))
	if p < 0 {
		p = 0
	}
	if p > span {
		p = span
	}
	return p
}

// drawSegment draws a thick, optionally dashed line with integer Bresenham
// stepping. phase carries the dash position across segments.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA, width, dashOn, dashOff int, phase *int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	period := dashOn + dashOff
	for {
		on := period == 0 || dashOff == 0 || (*phase)%period < dashOn
		if on {
			drawDot(img, x0, y0, width, c)
		}
		*phase++

		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawDot(img *image.RGBA, x, y, width int, c color.RGBA) {
	r := width / 2
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			setClipped(img, x+ox, y+oy, c)
		}
	}
}

func drawMarker(img *image.RGBA, x, y int, marker string, size int, c color.RGBA) {
	r := size / 2
	if r < 1 {
		r = 1
	}
	switch marker {
	case ".", "o":
		for oy := -r; oy <= r; oy++ {
			for ox := -r; ox <= r; ox++ {
				if ox*ox+oy*oy <= r*r {
					setClipped(img, x+ox, y+oy, c)
				}
			}
		}
	case "s":
		for oy := -r; oy <= r; oy++ {
			for ox := -r; ox <= r; ox++ {
				setClipped(img, x+ox, y+oy, c)
			}
		}
	case "x":
		for o := -r; o <= r; o++ {
			setClipped(img, x+o, y+o, c)
			setClipped(img, x+o, y-o, c)
		}
	case "+":
		for o := -r; o <= r; o++ {
			setClipped(img, x+o, y, c)
			setClipped(img, x, y+o, c)
		}
	case "^":
		for oy := -r; oy <= r; oy++ {
			half := (oy + r) / 2
			for ox := -half; ox <= half; ox++ {
				setClipped(img, x+ox, y+oy, c)
			}
		}
	case "v":
		for oy := -r; oy <= r; oy++ {
			half := (r - oy) / 2
			for ox := -half; ox <= half; ox++ {
				setClipped(img, x+ox, y+oy, c)
			}
		}
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{x, y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
