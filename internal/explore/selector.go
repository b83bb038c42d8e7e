package explore

import (
	"fmt"

	"github.com/numex-dev/numex/internal/ndarray"
	"github.com/numex-dev/numex/internal/render"
)

// Mode names a display strategy for an array.
type Mode string

const (
	Mode1D  Mode = render.Mode1D
	ModeXY  Mode = render.ModeXY
	ModeMap Mode = render.ModeMap
)

// Title returns the human-readable name shown in the window title.
func (m Mode) Title() string {
	switch m {
	case Mode1D:
		return "1D"
	case ModeXY:
		return "2D Plot(x,y)"
	case ModeMap:
		return "2D Map"
	}
	return string(m)
}

// Modes lists every display mode.
func Modes() []Mode { return []Mode{Mode1D, ModeXY, ModeMap} }

// Detect picks the natural display mode for an array: vectors plot as
// lines, arrays with a length-2 axis as x/y curves, everything else as a
// map.
func Detect(arr *ndarray.NDArray) Mode {
	if arr.Rank() == 1 {
		return Mode1D
	}
	for _, d := range arr.Shape() {
		if d == 2 {
			return ModeXY
		}
	}
	return ModeMap
}

// Select resolves a requested mode (falling back to Detect for empty or
// unknown names) and builds the control set for it.
func Select(arr *ndarray.NDArray, requested string) (Mode, *ControlSet, error) {
	if arr == nil {
		return "", nil, fmt.Errorf("no array to explore")
	}

	mode := Mode(requested)
	switch mode {
	case Mode1D, ModeXY, ModeMap:
	default:
		mode = Detect(arr)
	}

	var cs *ControlSet
	switch mode {
	case Mode1D:
		cs = controls1D(arr)
	case ModeXY:
		cs = controlsXY(arr)
	case ModeMap:
		cs = controlsMap(arr)
	}
	if err := cs.Validate(); err != nil {
		return "", nil, fmt.Errorf("build controls for %s: %w", mode, err)
	}
	return mode, cs, nil
}

// baseControls are shared by every mode and only matter for complex data.
func baseControls() []Control {
	return []Control{
		{
			Name: "cx_mode", Label: "Complex Mode", Kind: Choice,
			Default: render.CxRealImag,
			Options: []string{render.CxRealImag, render.CxMagPhase},
		},
		{
			Name: "cx_display_mode", Label: "Complex Display Mode", Kind: Choice,
			Default: render.CxStackAuto,
			Options: []string{render.CxStackAuto, render.CxStackHorizontal, render.CxStackVertical},
		},
	}
}

func lineStyleControls() []Control {
	return []Control{
		{
			Name: "line-color", Label: "Line Color", Kind: Choice,
			Default: "black", Options: render.LineColorNames(),
		},
		{
			Name: "line-width", Label: "Line Width", Kind: Number,
			Default: 1.0, Min: 0, Max: 9.5, Step: 0.5,
		},
		{
			Name: "line-style", Label: "Line Style", Kind: Choice,
			Default: "-", Options: render.LineStyleNames(),
		},
		{
			Name: "line-marker", Label: "Line Marker", Kind: Choice,
			Default: ".", Options: render.LineMarkerNames(),
		},
		{
			Name: "marker-size", Label: "Marker Size", Kind: Number,
			Default: 5.0, Min: 0, Max: 49.5, Step: 1,
		},
	}
}

func axisControl(name, label string, rank int, def float64) Control {
	return Control{
		Name: name, Label: label, Kind: Number,
		Default: def, Min: 0, Max: float64(rank - 1), Step: 1,
	}
}

func indexControls(arr *ndarray.NDArray, nameFormat, labelPrefix string, def float64) []Control {
	shape := arr.Shape()
	digits := indexDigits(len(shape))
	controls := make([]Control, len(shape))
	for i, d := range shape {
		maxIdx := float64(d - 1)
		v := def
		if v > maxIdx {
			v = maxIdx
		}
		controls[i] = Control{
			Name:  fmt.Sprintf(nameFormat, i),
			Label: fmt.Sprintf("%sIndex[%0*d]", labelPrefix, digits, i),
			Kind:  Number, Default: v, Min: 0, Max: maxIdx, Step: 1,
		}
	}
	return controls
}

func indexDigits(rank int) int {
	digits := 1
	for rank > 10 {
		digits++
		rank = (rank + 9) / 10
	}
	return digits
}

func controls1D(arr *ndarray.NDArray) *ControlSet {
	cs := NewControlSet(baseControls()...)
	cs.Add(axisControl("axis", "Axis", arr.Rank(), 0))
	for _, c := range indexControls(arr, "index-%d", "", 0) {
		cs.Add(c)
	}
	for _, c := range lineStyleControls() {
		cs.Add(c)
	}
	return cs
}

func controlsXY(arr *ndarray.NDArray) *ControlSet {
	cs := NewControlSet(baseControls()...)
	cs.Add(axisControl("axis", "Axis", arr.Rank(), 0))
	// The x curve defaults to the first index, the y curve to the second.
	for _, c := range indexControls(arr, "x-index-%d", "x ", 0) {
		cs.Add(c)
	}
	for _, c := range indexControls(arr, "y-index-%d", "y ", 1) {
		cs.Add(c)
	}
	for _, c := range lineStyleControls() {
		cs.Add(c)
	}
	return cs
}

func controlsMap(arr *ndarray.NDArray) *ControlSet {
	cs := NewControlSet(baseControls()...)
	cs.Add(axisControl("axis-0", "x axis", arr.Rank(), 0))
	ax1 := 1.0
	if arr.Rank() < 2 {
		ax1 = 0
	}
	cs.Add(axisControl("axis-1", "y axis", arr.Rank(), ax1))
	for _, c := range indexControls(arr, "index-%d", "", 0) {
		cs.Add(c)
	}
	cs.Add(Control{
		Name: "cmap-0", Label: "Color Map A", Kind: Choice,
		Default: "gray", Options: render.ColormapNames(),
	})
	cs.Add(Control{
		Name: "cmap-1", Label: "Color Map B", Kind: Choice,
		Default: "gray", Options: render.ColormapNames(),
	})
	return cs
}
