package widgets

import (
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/numex-dev/numex/internal/explore"
)

// ControlPanel renders a control set as live widgets: toggles become
// checks, numbers become sliders, choices become selects.
type ControlPanel struct {
	container     *fyne.Container
	content       *fyne.Container
	modeSelect    *widget.Select
	changeHandler func(string, interface{})
	modeHandler   func(string)
}

func NewControlPanel() *ControlPanel {
	panel := &ControlPanel{}
	panel.setupPanel()
	return panel
}

func (cp *ControlPanel) setupPanel() {
	cp.modeSelect = widget.NewSelect(nil, func(value string) {
		if cp.modeHandler != nil {
			cp.modeHandler(value)
		}
	})
	cp.content = container.NewVBox()
	cp.container = container.NewVBox(
		widget.NewLabel("Display Mode"),
		cp.modeSelect,
		widget.NewSeparator(),
		cp.content,
	)
}

func (cp *ControlPanel) GetContainer() *fyne.Container {
	return cp.container
}

func (cp *ControlPanel) SetChangeHandler(handler func(string, interface{})) {
	cp.changeHandler = handler
}

func (cp *ControlPanel) SetModeHandler(handler func(string)) {
	cp.modeHandler = handler
}

// SetModes replaces the display-mode options without firing the handler.
func (cp *ControlPanel) SetModes(options []string, selected string) {
	handler := cp.modeHandler
	cp.modeHandler = nil
	cp.modeSelect.Options = options
	cp.modeSelect.SetSelected(selected)
	cp.modeHandler = handler
}

// UpdateControls rebuilds the widget list from a control set and the
// current values behind it.
func (cp *ControlPanel) UpdateControls(cs *explore.ControlSet, values map[string]interface{}) {
	cp.content.RemoveAll()
	if cs == nil {
		cp.container.Refresh()
		return
	}

	for _, control := range cs.Controls() {
		switch control.Kind {
		case explore.Toggle:
			cp.content.Add(cp.buildToggle(control, values))
		case explore.Number:
			cp.content.Add(cp.buildNumber(control, values))
		case explore.Choice:
			cp.content.Add(cp.buildChoice(control, values))
		}
	}
	cp.container.Refresh()
}

func (cp *ControlPanel) buildToggle(control explore.Control, values map[string]interface{}) fyne.CanvasObject {
	name := control.Name
	check := widget.NewCheck(control.Label, func(checked bool) {
		if cp.changeHandler != nil {
			cp.changeHandler(name, checked)
		}
	})
	check.SetChecked(boolValue(values, name, control.Default))
	return check
}

func (cp *ControlPanel) buildNumber(control explore.Control, values map[string]interface{}) fyne.CanvasObject {
	name := control.Name
	value := floatValue(values, name, control.Default)

	label := widget.NewLabel(control.Label + ": " + formatValue(value, control.Step))
	slider := widget.NewSlider(control.Min, control.Max)
	slider.Step = control.Step
	slider.SetValue(value)

	slider.OnChanged = func(v float64) {
		label.SetText(control.Label + ": " + formatValue(v, control.Step))
		if cp.changeHandler != nil {
			cp.changeHandler(name, v)
		}
	}
	return container.NewVBox(label, slider)
}

func (cp *ControlPanel) buildChoice(control explore.Control, values map[string]interface{}) fyne.CanvasObject {
	name := control.Name
	sel := widget.NewSelect(control.Options, nil)
	sel.SetSelected(stringValue(values, name, control.Default))
	sel.OnChanged = func(value string) {
		if cp.changeHandler != nil {
			cp.changeHandler(name, value)
		}
	}
	return container.NewVBox(widget.NewLabel(control.Label), sel)
}

func formatValue(v, step float64) string {
	if step >= 1 && v == math.Trunc(v) {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func boolValue(values map[string]interface{}, key string, def interface{}) bool {
	if v, ok := values[key].(bool); ok {
		return v
	}
	b, _ := def.(bool)
	return b
}

func floatValue(values map[string]interface{}, key string, def interface{}) float64 {
	if v, ok := values[key].(float64); ok {
		return v
	}
	f, _ := def.(float64)
	return f
}

func stringValue(values map[string]interface{}, key string, def interface{}) string {
	if v, ok := values[key].(string); ok {
		return v
	}
	s, _ := def.(string)
	return s
}
