package params

import (
	"bytes"
	"strings"
	"testing"

	"github.com/numex-dev/numex/internal/explore"
)

func testControls() *explore.ControlSet {
	return explore.NewControlSet(
		explore.Control{
			Name: "axis", Label: "Axis", Kind: explore.Number,
			Default: 0.0, Min: 0, Max: 3, Step: 1,
		},
		explore.Control{
			Name: "line-color", Label: "Line Color", Kind: explore.Choice,
			Default: "black", Options: []string{"black", "red", "blue"},
		},
		explore.Control{
			Name: "grid", Label: "Grid", Kind: explore.Toggle, Default: false,
		},
	)
}

func TestNew_StartsAtDefaults(t *testing.T) {
	s := New(testControls())

	if got := s.Int("axis"); got != 0 {
		t.Errorf("axis = %d, want 0", got)
	}
	if got := s.String("line-color"); got != "black" {
		t.Errorf("line-color = %q, want black", got)
	}
	if s.Bool("grid") {
		t.Error("grid should default to false")
	}
}

func TestPut_Coercion(t *testing.T) {
	s := New(testControls())

	cases := []struct {
		name  string
		key   string
		value interface{}
		check func(t *testing.T)
	}{
		{"int into number", "axis", 2, func(t *testing.T) {
			if s.Int("axis") != 2 {
				t.Errorf("axis = %d, want 2", s.Int("axis"))
			}
		}},
		{"string into number", "axis", "3", func(t *testing.T) {
			if s.Int("axis") != 3 {
				t.Errorf("axis = %d, want 3", s.Int("axis"))
			}
		}},
		{"garbage falls back to default", "axis", "wide", func(t *testing.T) {
			if s.Int("axis") != 0 {
				t.Errorf("axis = %d, want default 0", s.Int("axis"))
			}
		}},
		{"number clamps to range", "axis", 99, func(t *testing.T) {
			if s.Int("axis") != 3 {
				t.Errorf("axis = %d, want clamped 3", s.Int("axis"))
			}
		}},
		{"valid choice", "line-color", "red", func(t *testing.T) {
			if s.String("line-color") != "red" {
				t.Errorf("line-color = %q, want red", s.String("line-color"))
			}
		}},
		{"unlisted choice falls back", "line-color", "chartreuse", func(t *testing.T) {
			if s.String("line-color") != "black" {
				t.Errorf("line-color = %q, want default black", s.String("line-color"))
			}
		}},
		{"toggle from string", "grid", "true", func(t *testing.T) {
			if !s.Bool("grid") {
				t.Error("grid should be true")
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Put(tc.key, tc.value); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestPut_UnknownName(t *testing.T) {
	s := New(testControls())
	if err := s.Put("no-such-control", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestReset(t *testing.T) {
	s := New(testControls())
	s.Put("axis", 2)
	s.Put("grid", true)

	s.Reset()

	if s.Int("axis") != 0 || s.Bool("grid") {
		t.Error("Reset should restore defaults")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := New(testControls())
	s.Put("axis", 2)
	s.Put("line-color", "blue")
	s.Put("grid", true)

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	restored := New(testControls())
	if err := restored.Import(&buf); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if restored.Int("axis") != 2 {
		t.Errorf("axis = %d, want 2", restored.Int("axis"))
	}
	if restored.String("line-color") != "blue" {
		t.Errorf("line-color = %q, want blue", restored.String("line-color"))
	}
	if !restored.Bool("grid") {
		t.Error("grid should be true after import")
	}
}

func TestImport_UnknownKeysIgnored(t *testing.T) {
	s := New(testControls())
	doc := `{"axis": 1, "window_size": 7, "smoothing": 0.5}`

	if err := s.Import(strings.NewReader(doc)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if s.Int("axis") != 1 {
		t.Errorf("axis = %d, want 1", s.Int("axis"))
	}
	if _, ok := s.Get("window_size"); ok {
		t.Error("unknown key should not be stored")
	}
}

func TestImport_MalformedJSON(t *testing.T) {
	s := New(testControls())
	if err := s.Import(strings.NewReader(`{"axis": `)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
