// Package render rasterizes array slices into images the GUI can display:
// 1D line plots, x/y plots and 2D heatmaps, with complex data split into
// component panes.
package render

import (
	"image/color"
	"sort"
)

// Colormap maps a normalized value in [0, 1] to a color by linear
// interpolation between anchor stops.
type Colormap struct {
	name  string
	stops []rgb
}

type rgb struct{ r, g, b float64 }

var colormaps = map[string]Colormap{
	"gray": {name: "gray", stops: []rgb{
		{0, 0, 0}, {1, 1, 1},
	}},
	"bone": {name: "bone", stops: []rgb{
		{0, 0, 0}, {0.32, 0.30, 0.42}, {0.65, 0.74, 0.77}, {1, 1, 1},
	}},
	"hot": {name: "hot", stops: []rgb{
		{0.04, 0, 0}, {0.90, 0, 0}, {1, 0.90, 0}, {1, 1, 1},
	}},
	"cool": {name: "cool", stops: []rgb{
		{0, 1, 1}, {1, 0, 1},
	}},
	"jet": {name: "jet", stops: []rgb{
		{0, 0, 0.5}, {0, 0, 1}, {0, 1, 1}, {1, 1, 0}, {1, 0, 0}, {0.5, 0, 0},
	}},
	"viridis": {name: "viridis", stops: []rgb{
		{0.267, 0.005, 0.329}, {0.283, 0.141, 0.458}, {0.254, 0.265, 0.530},
		{0.207, 0.372, 0.553}, {0.164, 0.471, 0.558}, {0.128, 0.567, 0.551},
		{0.135, 0.659, 0.518}, {0.267, 0.749, 0.441}, {0.478, 0.821, 0.318},
		{0.741, 0.873, 0.150}, {0.993, 0.906, 0.144},
	}},
	"plasma": {name: "plasma", stops: []rgb{
		{0.050, 0.030, 0.528}, {0.294, 0.012, 0.631}, {0.492, 0.012, 0.658},
		{0.665, 0.138, 0.586}, {0.798, 0.280, 0.470}, {0.902, 0.425, 0.360},
		{0.973, 0.586, 0.252}, {0.993, 0.771, 0.155}, {0.940, 0.975, 0.131},
	}},
	"magma": {name: "magma", stops: []rgb{
		{0.001, 0.000, 0.014}, {0.113, 0.065, 0.277}, {0.317, 0.071, 0.485},
		{0.513, 0.148, 0.508}, {0.716, 0.215, 0.475}, {0.904, 0.320, 0.388},
		{0.987, 0.536, 0.382}, {0.997, 0.770, 0.535}, {0.987, 0.991, 0.750},
	}},
	"inferno": {name: "inferno", stops: []rgb{
		{0.001, 0.000, 0.014}, {0.133, 0.047, 0.294}, {0.341, 0.062, 0.429},
		{0.550, 0.161, 0.506}, {0.729, 0.212, 0.333}, {0.889, 0.349, 0.200},
		{0.978, 0.557, 0.034}, {0.988, 0.809, 0.145}, {0.988, 1.000, 0.644},
	}},
}

// ColormapNames returns the available colormap names, sorted.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupColormap returns the named colormap, falling back to gray.
func LookupColormap(name string) Colormap {
	if cm, ok := colormaps[name]; ok {
		return cm
	}
	return colormaps["gray"]
}

// Name returns the colormap's registered name.
func (cm Colormap) Name() string { return cm.name }

// At maps t in [0, 1] to a color. Out-of-range values clamp.
func (cm Colormap) At(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	n := len(cm.stops)
	if n == 1 {
		return toRGBA(cm.stops[0])
	}

	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return toRGBA(cm.stops[n-1])
	}
	frac := pos - float64(i)
	a, b := cm.stops[i], cm.stops[i+1]
	return toRGBA(rgb{
		r: a.r + (b.r-a.r)*frac,
		g: a.g + (b.g-a.g)*frac,
		b: a.b + (b.b-a.b)*frac,
	})
}

func toRGBA(c rgb) color.RGBA {
	return color.RGBA{
		R: uint8(c.r*255 + 0.5),
		G: uint8(c.g*255 + 0.5),
		B: uint8(c.b*255 + 0.5),
		A: 255,
	}
}
