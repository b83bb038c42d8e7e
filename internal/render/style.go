package render

import (
	"image/color"
	"sort"
)

// Line styling tables backing the Choice controls, after the matplotlib
// names the original tool exposed.

var lineColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"brown":   {165, 42, 42, 255},
	"pink":    {255, 192, 203, 255},
	"gray":    {128, 128, 128, 255},
	"olive":   {128, 128, 0, 255},
	"navy":    {0, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
}

// LineColorNames returns the known color names, sorted.
func LineColorNames() []string {
	names := make([]string, 0, len(lineColors))
	for name := range lineColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupLineColor resolves a color name, falling back to black.
func LookupLineColor(name string) color.RGBA {
	if c, ok := lineColors[name]; ok {
		return c
	}
	return lineColors["black"]
}

// LineStyleNames lists the supported dash patterns: solid, dashed, dotted,
// dash-dot.
func LineStyleNames() []string { return []string{"-", "--", "-.", ":"} }

// dashPattern returns (on, off) pixel counts for a style; (0, 0) means no
// line segments at all.
func dashPattern(style string) (int, int) {
	switch style {
	case "-":
		return 1, 0
	case "--":
		return 6, 4
	case "-.":
		return 6, 2
	case ":":
		return 1, 3
	}
	return 1, 0
}

// LineMarkerNames lists the supported point markers. The empty name draws
// no markers.
func LineMarkerNames() []string { return []string{"", ".", "o", "s", "x", "+", "^", "v"} }
