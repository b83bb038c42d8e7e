// Package params holds the live values behind a control set: reading with
// type coercion, resetting to defaults, and moving whole parameter sets
// through JSON files.
package params

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/numex-dev/numex/internal/explore"
)

// Set binds live values to the controls that describe them.
type Set struct {
	mu       sync.RWMutex
	controls *explore.ControlSet
	values   map[string]interface{}
}

// New returns a set initialized to every control's default.
func New(controls *explore.ControlSet) *Set {
	s := &Set{controls: controls}
	s.Reset()
	return s
}

// Reset restores every value to its control default.
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]interface{}, s.controls.Len())
	for _, c := range s.controls.Controls() {
		s.values[c.Name] = c.Default
	}
}

// Put stores a value for a named control, coercing it to the control's
// type. Values that cannot be coerced fall back to the default rather than
// erroring, so a stray widget event can never corrupt the set. Unknown
// names are rejected.
func (s *Set) Put(name string, value interface{}) error {
	control, ok := s.controls.Get(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = coerce(control, value)
	return nil
}

// Get returns the current value for a control name.
func (s *Set) Get(name string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Float returns a numeric value, or the control default when absent.
func (s *Set) Float(name string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name].(float64); ok {
		return v
	}
	if c, ok := s.controls.Get(name); ok {
		if d, ok := c.Default.(float64); ok {
			return d
		}
	}
	return 0
}

// Int returns a numeric value truncated to int.
func (s *Set) Int(name string) int { return int(s.Float(name)) }

// String returns a choice value, or the control default when absent.
func (s *Set) String(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name].(string); ok {
		return v
	}
	if c, ok := s.controls.Get(name); ok {
		if d, ok := c.Default.(string); ok {
			return d
		}
	}
	return ""
}

// Bool returns a toggle value, or the control default when absent.
func (s *Set) Bool(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name].(bool); ok {
		return v
	}
	if c, ok := s.controls.Get(name); ok {
		if d, ok := c.Default.(bool); ok {
			return d
		}
	}
	return false
}

// Values returns a snapshot of the current values.
func (s *Set) Values() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Export writes the values as indented JSON with stable key order.
func (s *Set) Export(w io.Writer) error {
	data, err := json.MarshalIndent(s.Values(), "", "    ")
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write parameters: %w", err)
	}
	return nil
}

// Import applies values from a JSON document. Keys with no matching
// control are ignored so files exported from a different view still apply
// what they can. Malformed JSON is an error.
func (s *Set) Import(r io.Reader) error {
	var incoming map[string]interface{}
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return fmt.Errorf("decode parameters: %w", err)
	}
	for name, value := range incoming {
		if _, ok := s.controls.Get(name); !ok {
			continue
		}
		if err := s.Put(name, value); err != nil {
			return err
		}
	}
	return nil
}

// coerce converts an incoming value to the control's canonical type,
// falling back to the control default when conversion fails.
func coerce(control explore.Control, value interface{}) interface{} {
	switch control.Kind {
	case explore.Toggle:
		switch v := value.(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	case explore.Number:
		switch v := value.(type) {
		case float64:
			return clamp(v, control)
		case int:
			return clamp(float64(v), control)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return clamp(f, control)
			}
		}
	case explore.Choice:
		if v, ok := value.(string); ok {
			for _, opt := range control.Options {
				if opt == v {
					return v
				}
			}
		}
	}
	return control.Default
}

func clamp(v float64, control explore.Control) float64 {
	if v < control.Min {
		return control.Min
	}
	if v > control.Max {
		return control.Max
	}
	return v
}
