package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EditorConfigPath is the path to the editor config file, relative to the process working directory.
const EditorConfigPath = "config/editor.json"

// EditorPrefs holds editor-only preferences (debug overlays, grid, drag constraints). Persisted across runs.
// Model data is separate and handled elsewhere.
type EditorPrefs struct {
	ShowFPS      bool `json:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc"`
	GridVisible  bool `json:"grid_visible"`
	// UseUpLimit enables the twist constraint during surface drags; UpLimit is
	// the |normal.z| threshold above which the reference up switches from
	// world Z to world Y.
	UseUpLimit bool    `json:"use_up_limit"`
	UpLimit    float64 `json:"up_limit,omitempty"`
}

// Default returns default editor preferences (debug overlays off, grid on, twist constraint on).
func Default() EditorPrefs {
	return EditorPrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  true,
		UseUpLimit:   true,
		UpLimit:      0.9,
	}
}

// Load reads editor preferences from config/editor.json. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load() (EditorPrefs, error) {
	data, err := os.ReadFile(EditorConfigPath)
	if err != nil {
		return Default(), nil
	}
	var p EditorPrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes editor preferences to config/editor.json, creating the config directory if needed.
func Save(p EditorPrefs) error {
	dir := filepath.Dir(EditorConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(EditorConfigPath, data, 0644)
}
