// Package explore decides how an array is displayed and derives the
// interactive control surface for it. Each display mode yields an ordered
// set of control descriptors; the GUI turns those into widgets and the
// renderer consumes their values.
package explore

import "fmt"

// Kind discriminates the widget a control maps to.
type Kind int

const (
	Toggle Kind = iota
	Number
	Choice
)

func (k Kind) String() string {
	switch k {
	case Toggle:
		return "toggle"
	case Number:
		return "number"
	case Choice:
		return "choice"
	}
	return "unknown"
}

// Control describes one interactive parameter: its identity, its widget
// kind and the constraints the widget enforces.
type Control struct {
	Name    string
	Label   string
	Kind    Kind
	Default interface{} // bool, float64 or string depending on Kind

	// Number controls only.
	Min, Max, Step float64

	// Choice controls only.
	Options []string
}

// ControlSet is an ordered collection of controls with name lookup.
type ControlSet struct {
	controls []Control
	index    map[string]int
}

// NewControlSet builds a set from controls in order. Duplicate names
// replace the earlier definition but keep its position.
func NewControlSet(controls ...Control) *ControlSet {
	cs := &ControlSet{index: make(map[string]int)}
	for _, c := range controls {
		cs.Add(c)
	}
	return cs
}

// Add appends a control, replacing any control of the same name in place.
func (cs *ControlSet) Add(c Control) {
	if i, ok := cs.index[c.Name]; ok {
		cs.controls[i] = c
		return
	}
	cs.index[c.Name] = len(cs.controls)
	cs.controls = append(cs.controls, c)
}

// Get looks a control up by name.
func (cs *ControlSet) Get(name string) (Control, bool) {
	i, ok := cs.index[name]
	if !ok {
		return Control{}, false
	}
	return cs.controls[i], true
}

// Controls returns the controls in declaration order.
func (cs *ControlSet) Controls() []Control {
	return append([]Control(nil), cs.controls...)
}

// Len returns the number of controls.
func (cs *ControlSet) Len() int { return len(cs.controls) }

// Validate checks internal consistency of every control. It catches
// generator mistakes early rather than at widget-build time.
func (cs *ControlSet) Validate() error {
	for _, c := range cs.controls {
		switch c.Kind {
		case Toggle:
			if _, ok := c.Default.(bool); !ok {
				return fmt.Errorf("control %q: toggle default must be bool, got %T", c.Name, c.Default)
			}
		case Number:
			d, ok := c.Default.(float64)
			if !ok {
				return fmt.Errorf("control %q: number default must be float64, got %T", c.Name, c.Default)
			}
			if c.Min > c.Max {
				return fmt.Errorf("control %q: min %v exceeds max %v", c.Name, c.Min, c.Max)
			}
			if d < c.Min || d > c.Max {
				return fmt.Errorf("control %q: default %v outside [%v, %v]", c.Name, d, c.Min, c.Max)
			}
		case Choice:
			d, ok := c.Default.(string)
			if !ok {
				return fmt.Errorf("control %q: choice default must be string, got %T", c.Name, c.Default)
			}
			if len(c.Options) == 0 {
				return fmt.Errorf("control %q: choice without options", c.Name)
			}
			found := false
			for _, opt := range c.Options {
				if opt == d {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("control %q: default %q not among options", c.Name, d)
			}
		default:
			return fmt.Errorf("control %q: unknown kind %d", c.Name, c.Kind)
		}
	}
	return nil
}
