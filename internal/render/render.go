package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/numex-dev/numex/internal/ndarray"
)

// Display modes. These mirror the explorer's mode names.
const (
	Mode1D  = "1d"
	ModeXY  = "2d_plot_xy"
	ModeMap = "2d_map"
)

// Complex handling control values.
const (
	CxRealImag = "real-imag"
	CxMagPhase = "mag-phase"

	CxStackAuto       = "auto"
	CxStackHorizontal = "horizontal"
	CxStackVertical   = "vertical"
)

// Frame renders one frame of the explorer for the given mode and parameter
// values. It never panics; on failure it returns a placeholder image
// alongside the error so the GUI always has something to show.
func Frame(arr *ndarray.NDArray, mode string, params map[string]interface{}, width, height int) (image.Image, error) {
	if arr == nil {
		return Placeholder(width, height), fmt.Errorf("no array loaded")
	}

	var (
		img image.Image
		err error
	)
	switch mode {
	case Mode1D:
		img, err = frame1D(arr, params, width, height)
	case ModeXY:
		img, err = frameXY(arr, params, width, height)
	case ModeMap:
		img, err = frameMap(arr, params, width, height)
	default:
		err = fmt.Errorf("unknown display mode %q", mode)
	}
	if err != nil {
		return Placeholder(width, height), err
	}
	return img, nil
}

func frame1D(arr *ndarray.NDArray, params map[string]interface{}, width, height int) (image.Image, error) {
	axis := getInt(params, "axis", 0)
	fixed, err := fixedIndices(arr, params, "index-%d")
	if err != nil {
		return nil, err
	}

	line, err := arr.Slice1D(axis, fixed)
	if err != nil {
		return nil, err
	}
	opts := lineOptions(params)

	if !arr.IsComplex() {
		return Line(ndarray.ComponentOf(line, ndarray.CompReal), opts, width, height, nil), nil
	}

	var series [2][]float64
	var lims [2]*Limits
	if getString(params, "cx_mode", CxRealImag) == CxMagPhase {
		series[0] = ndarray.ComponentOf(line, ndarray.CompMagnitude)
		series[1] = ndarray.ComponentOf(line, ndarray.CompPhase)
		lims[1] = &Limits{Lo: -math.Pi * 1.1, Hi: math.Pi * 1.1}
	} else {
		series[0] = ndarray.ComponentOf(line, ndarray.CompReal)
		series[1] = ndarray.ComponentOf(line, ndarray.CompImag)
		shared := jointLimits(series[0], series[1])
		lims[0], lims[1] = shared, shared
	}

	horizontal := getString(params, "cx_display_mode", CxStackAuto) == CxStackHorizontal
	pw, ph := paneSize(width, height, horizontal)
	panes := []*image.RGBA{
		Line(series[0], opts, pw, ph, lims[0]),
		Line(series[1], opts, pw, ph, lims[1]),
	}
	return compose(panes, horizontal, width, height), nil
}

func frameXY(arr *ndarray.NDArray, params map[string]interface{}, width, height int) (image.Image, error) {
	axis := getInt(params, "axis", 0)

	xFixed, err := fixedIndices(arr, params, "x-index-%d")
	if err != nil {
		return nil, err
	}
	yFixed, err := fixedIndices(arr, params, "y-index-%d")
	if err != nil {
		return nil, err
	}

	xLine, err := arr.Slice1D(axis, xFixed)
	if err != nil {
		return nil, err
	}
	yLine, err := arr.Slice1D(axis, yFixed)
	if err != nil {
		return nil, err
	}
	opts := lineOptions(params)

	if !arr.IsComplex() {
		xs := ndarray.ComponentOf(xLine, ndarray.CompReal)
		ys := ndarray.ComponentOf(yLine, ndarray.CompReal)
		return XY(xs, ys, opts, width, height, nil, nil), nil
	}

	var xSeries, ySeries [2][]float64
	var lims [2]*Limits
	if getString(params, "cx_mode", CxRealImag) == CxMagPhase {
		xSeries[0] = ndarray.ComponentOf(xLine, ndarray.CompMagnitude)
		ySeries[0] = ndarray.ComponentOf(yLine, ndarray.CompMagnitude)
		xSeries[1] = ndarray.ComponentOf(xLine, ndarray.CompPhase)
		ySeries[1] = ndarray.ComponentOf(yLine, ndarray.CompPhase)
		lims[1] = &Limits{Lo: -math.Pi * 1.1, Hi: math.Pi * 1.1}
	} else {
		xSeries[0] = ndarray.ComponentOf(xLine, ndarray.CompReal)
		ySeries[0] = ndarray.ComponentOf(yLine, ndarray.CompReal)
		xSeries[1] = ndarray.ComponentOf(xLine, ndarray.CompImag)
		ySeries[1] = ndarray.ComponentOf(yLine, ndarray.CompImag)
		shared := jointLimits(xSeries[0], ySeries[0], xSeries[1], ySeries[1])
		lims[0], lims[1] = shared, shared
	}

	horizontal := getString(params, "cx_display_mode", CxStackAuto) == CxStackHorizontal
	pw, ph := paneSize(width, height, horizontal)
	panes := []*image.RGBA{
		XY(xSeries[0], ySeries[0], opts, pw, ph, lims[0], lims[0]),
		XY(xSeries[1], ySeries[1], opts, pw, ph, lims[1], lims[1]),
	}
	return compose(panes, horizontal, width, height), nil
}

func frameMap(arr *ndarray.NDArray, params map[string]interface{}, width, height int) (image.Image, error) {
	ax0 := getInt(params, "axis-0", 0)
	ax1 := getInt(params, "axis-1", 1)
	if ax0 == ax1 {
		return nil, fmt.Errorf("x axis and y axis must be different")
	}

	fixed, err := fixedIndices(arr, params, "index-%d")
	if err != nil {
		return nil, err
	}

	// axis-1 spans the vertical axis, axis-0 the horizontal one.
	plane, err := arr.Slice2D(ax1, ax0, fixed)
	if err != nil {
		return nil, err
	}
	shape := plane.Shape()
	rows, cols := shape[0], shape[1]

	cmapA := LookupColormap(getString(params, "cmap-0", "gray"))
	cmapB := LookupColormap(getString(params, "cmap-1", "gray"))

	if !arr.IsComplex() {
		vals := ndarray.ComponentOf(plane.Data(), ndarray.CompReal)
		lo, hi := ndarray.MinMax(plane.Data(), ndarray.CompReal)
		return Heatmap(vals, rows, cols, cmapA, Limits{Lo: lo, Hi: hi}, width, height), nil
	}

	var grids [2][]float64
	var lims [2]Limits
	if getString(params, "cx_mode", CxRealImag) == CxMagPhase {
		grids[0] = ndarray.ComponentOf(plane.Data(), ndarray.CompMagnitude)
		grids[1] = ndarray.ComponentOf(plane.Data(), ndarray.CompPhase)
		_, magHi := ndarray.MinMax(plane.Data(), ndarray.CompMagnitude)
		lims[0] = Limits{Lo: 0, Hi: magHi}
		lims[1] = Limits{Lo: -math.Pi, Hi: math.Pi}
	} else {
		grids[0] = ndarray.ComponentOf(plane.Data(), ndarray.CompReal)
		grids[1] = ndarray.ComponentOf(plane.Data(), ndarray.CompImag)
		reLo, reHi := ndarray.MinMax(plane.Data(), ndarray.CompReal)
		imLo, imHi := ndarray.MinMax(plane.Data(), ndarray.CompImag)
		shared := Limits{Lo: math.Min(reLo, imLo), Hi: math.Max(reHi, imHi)}
		lims[0], lims[1] = shared, shared
	}

	horizontal := false
	switch getString(params, "cx_display_mode", CxStackAuto) {
	case CxStackHorizontal:
		horizontal = true
	case CxStackVertical:
		horizontal = false
	default:
		// Wide panes stack vertically, tall panes side by side.
		horizontal = rows >= cols
	}

	pw, ph := paneSize(width, height, horizontal)
	panes := []*image.RGBA{
		Heatmap(grids[0], rows, cols, cmapA, lims[0], pw, ph),
		Heatmap(grids[1], rows, cols, cmapB, lims[1], pw, ph),
	}
	return compose(panes, horizontal, width, height), nil
}

// fixedIndices collects the per-axis pinned indices from the parameter map
// and validates them against the array's shape.
func fixedIndices(arr *ndarray.NDArray, params map[string]interface{}, keyFormat string) ([]int, error) {
	fixed := make([]int, arr.Rank())
	for i := range fixed {
		idx := getInt(params, fmt.Sprintf(keyFormat, i), 0)
		dim, err := arr.Dim(i)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("index %d out of range for axis %d (size %d)", idx, i, dim)
		}
		fixed[i] = idx
	}
	return fixed, nil
}

func lineOptions(params map[string]interface{}) LineOptions {
	return LineOptions{
		Color:      LookupLineColor(getString(params, "line-color", "black")),
		Width:      getFloat(params, "line-width", 1),
		Style:      getString(params, "line-style", "-"),
		Marker:     getString(params, "line-marker", "."),
		MarkerSize: getFloat(params, "marker-size", 5),
	}
}

func jointLimits(series ...[]float64) *Limits {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		sLo, sHi := rangeOf(s, nil)
		lo = math.Min(lo, sLo)
		hi = math.Max(hi, sHi)
	}
	if lo > hi {
		return nil
	}
	return &Limits{Lo: lo, Hi: hi}
}

func paneSize(width, height int, horizontal bool) (int, int) {
	if horizontal {
		return width / 2, height
	}
	return width, height / 2
}

func compose(panes []*image.RGBA, horizontal bool, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), &image.Uniform{plotBackground}, image.Point{}, draw.Src)

	for i, pane := range panes {
		var offset image.Point
		if horizontal {
			offset = image.Point{X: i * width / 2}
		} else {
			offset = image.Point{Y: i * height / 2}
		}
		draw.Draw(out, pane.Bounds().Add(offset), pane, image.Point{}, draw.Src)
	}
	return out
}

func getInt(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func getFloat(params map[string]interface{}, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func getString(params map[string]interface{}, key string, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}
