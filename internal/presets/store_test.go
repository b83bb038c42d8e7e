package presets

import (
	"errors"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if err := s.Open(t.TempDir()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := NewStore()
	dir := t.TempDir()

	if err := s.Open(dir); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Open(dir); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("second Open = %v, want ErrAlreadyOpen", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("double Close = %v, want nil", err)
	}
	if _, err := s.ListPresets(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("ListPresets after Close = %v, want ErrStoreClosed", err)
	}
}

func TestSaveGetPreset(t *testing.T) {
	s := openStore(t)

	values := map[string]interface{}{
		"axis":       2.0,
		"line-color": "red",
		"grid":       true,
	}
	saved, err := s.SavePreset("phantom", "1d", values)
	if err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved preset has no id")
	}

	got, err := s.GetPreset("phantom")
	if err != nil {
		t.Fatalf("GetPreset failed: %v", err)
	}
	if got.Mode != "1d" {
		t.Errorf("mode = %q, want 1d", got.Mode)
	}
	if got.Params["axis"] != 2.0 || got.Params["line-color"] != "red" || got.Params["grid"] != true {
		t.Errorf("params = %v, want original values", got.Params)
	}
}

func TestSavePreset_UpsertByName(t *testing.T) {
	s := openStore(t)

	first, err := s.SavePreset("view", "1d", map[string]interface{}{"axis": 0.0})
	if err != nil {
		t.Fatalf("first SavePreset failed: %v", err)
	}
	second, err := s.SavePreset("view", "2d_map", map[string]interface{}{"axis-0": 1.0})
	if err != nil {
		t.Fatalf("second SavePreset failed: %v", err)
	}
	// Replacing by name keeps the row's identity.
	if second.ID != first.ID {
		t.Errorf("id changed on upsert: %q -> %q", first.ID, second.ID)
	}

	all, err := s.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1 after upsert", len(all))
	}
	if all[0].Mode != "2d_map" {
		t.Errorf("mode = %q, want 2d_map", all[0].Mode)
	}
	if all[0].ID != first.ID {
		t.Errorf("stored id = %q, want %q", all[0].ID, first.ID)
	}
}

func TestSavePreset_EmptyName(t *testing.T) {
	s := openStore(t)
	if _, err := s.SavePreset("", "1d", nil); err == nil {
		t.Error("expected error for empty preset name")
	}
}

func TestListPresets_OrderedByName(t *testing.T) {
	s := openStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := s.SavePreset(name, "1d", map[string]interface{}{}); err != nil {
			t.Fatalf("SavePreset(%q) failed: %v", name, err)
		}
	}

	all, err := s.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(all) != len(want) {
		t.Fatalf("len = %d, want %d", len(all), len(want))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("presets[%d] = %q, want %q", i, all[i].Name, name)
		}
	}
}

func TestDeletePreset(t *testing.T) {
	s := openStore(t)

	if _, err := s.SavePreset("doomed", "1d", map[string]interface{}{}); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	if err := s.DeletePreset("doomed"); err != nil {
		t.Fatalf("DeletePreset failed: %v", err)
	}
	if _, err := s.GetPreset("doomed"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("GetPreset after delete = %v, want ErrPresetNotFound", err)
	}
	if err := s.DeletePreset("doomed"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("second DeletePreset = %v, want ErrPresetNotFound", err)
	}
}

func TestRecentFiles(t *testing.T) {
	s := openStore(t)

	for _, path := range []string{"/data/a.npy", "/data/b.cfl", "/data/a.npy"} {
		if err := s.TouchRecent(path); err != nil {
			t.Fatalf("TouchRecent(%q) failed: %v", path, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := s.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Path != "/data/a.npy" {
		t.Errorf("most recent = %q, want /data/a.npy", recent[0].Path)
	}
	if recent[0].Opens != 2 {
		t.Errorf("opens = %d, want 2", recent[0].Opens)
	}

	limited, err := s.ListRecent(1)
	if err != nil {
		t.Fatalf("ListRecent(1) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("len = %d, want 1 with limit", len(limited))
	}
}
