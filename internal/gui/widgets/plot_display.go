package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	PlotAreaWidth  = 640
	PlotAreaHeight = 480
)

// PlotDisplay is the canvas the rendered frame lands on.
type PlotDisplay struct {
	plot *canvas.Image
}

func NewPlotDisplay(width, height int) *PlotDisplay {
	if width <= 0 {
		width = PlotAreaWidth
	}
	if height <= 0 {
		height = PlotAreaHeight
	}

	plot := canvas.NewImageFromImage(nil)
	plot.FillMode = canvas.ImageFillContain
	plot.ScaleMode = canvas.ImageScaleSmooth
	plot.SetMinSize(fyne.NewSize(float32(width), float32(height)))

	return &PlotDisplay{plot: plot}
}

func (pd *PlotDisplay) GetContainer() fyne.CanvasObject {
	return pd.plot
}

func (pd *PlotDisplay) SetImage(img image.Image) {
	pd.plot.Image = img
	pd.plot.Refresh()
}
