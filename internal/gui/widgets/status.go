package widgets

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the open dataset and the state of the last render.
type StatusBar struct {
	container   *fyne.Container
	sourceLabel *widget.Label
	shapeLabel  *widget.Label
	stateLabel  *widget.Label
}

func NewStatusBar() *StatusBar {
	sourceLabel := widget.NewLabel("No data")
	shapeLabel := widget.NewLabel("")
	stateLabel := widget.NewLabel("Ready")

	mainContainer := container.NewBorder(
		nil, nil,
		container.NewHBox(sourceLabel, widget.NewSeparator(), shapeLabel),
		stateLabel,
	)

	return &StatusBar{
		container:   mainContainer,
		sourceLabel: sourceLabel,
		shapeLabel:  shapeLabel,
		stateLabel:  stateLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetSource(name string) {
	sb.sourceLabel.SetText(name)
}

func (sb *StatusBar) SetShape(shape string) {
	sb.shapeLabel.SetText(shape)
}

func (sb *StatusBar) SetState(state string) {
	sb.stateLabel.SetText(state)
}

func (sb *StatusBar) SetRenderTime(d time.Duration) {
	sb.stateLabel.SetText(fmt.Sprintf("Rendered in %s", d.Round(time.Millisecond)))
}
