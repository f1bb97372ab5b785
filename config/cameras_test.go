package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.yaml")
	data := `cameras:
  - id: cam-1
    name: Tray Return
    location: Main Hall
  - id: cam-2
    name: Dish Pit
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(r.Cameras) != 2 {
		t.Fatalf("expected 2 cameras, got %d", len(r.Cameras))
	}
	if cam, ok := r.Camera("cam-2"); !ok || cam.Name != "Dish Pit" {
		t.Fatalf("lookup failed: %+v ok=%v", cam, ok)
	}
	names := r.Names()
	if names[0] != "Tray Return (Main Hall)" || names[1] != "Dish Pit" {
		t.Fatalf("unexpected labels %v", names)
	}
}

func TestLoadRoster_MissingFileIsEmpty(t *testing.T) {
	r, err := LoadRoster(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing roster must not error, got %v", err)
	}
	if len(r.Cameras) != 0 {
		t.Fatalf("expected empty roster, got %d", len(r.Cameras))
	}
}

func TestLoadRoster_RejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cameras.yaml")
	os.WriteFile(path, []byte("cameras:\n  - name: Nameless\n"), 0644)
	if _, err := LoadRoster(path); err == nil {
		t.Fatal("expected error for entry without id")
	}
}
