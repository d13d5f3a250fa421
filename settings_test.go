package sketchpoint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := DefaultSettings()

	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("Canvas size expected to be %vx%v. Got %vx%v",
			DefaultWidth, DefaultHeight, s.Width, s.Height)
	}
	if s.Level != int(Level1) {
		t.Errorf("Level expected to be %v. Got %v", int(Level1), s.Level)
	}
	if s.PenRadius != DefaultPenRadius {
		t.Errorf("Pen radius expected to be %v. Got %v", DefaultPenRadius, s.PenRadius)
	}
	if s.Format != "png" || s.Ext() != ".png" {
		t.Errorf("Format expected to default to png. Got %q with extension %q", s.Format, s.Ext())
	}
	if filepath.Base(s.OutDir) != "sketchpoint" {
		t.Errorf("Output folder expected to be named sketchpoint. Got %q", s.OutDir)
	}
}

func TestSettings_OutputFolders(t *testing.T) {
	s := Settings{OutDir: filepath.Join("some", "root"), Format: "jpg"}

	if got := s.DrawingsDir(); got != filepath.Join("some", "root", "drawings") {
		t.Errorf("Drawings folder expected under the output root. Got %q", got)
	}
	if got := s.PointsDir(); got != filepath.Join("some", "root", "points") {
		t.Errorf("Points folder expected under the output root. Got %q", got)
	}
	if got := s.Ext(); got != ".jpg" {
		t.Errorf("Extension expected to be .jpg. Got %q", got)
	}
	if got := (Settings{}).Ext(); got != ".png" {
		t.Errorf("Empty format extension expected to be .png. Got %q", got)
	}
}

func TestSettings_MissingFileFallsBackToDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("A missing settings file should not fail: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("Settings expected to fall back to the defaults. Got %+v", s)
	}

	s, err = LoadSettings("")
	if err != nil || s != DefaultSettings() {
		t.Errorf("An empty path expected to return the defaults. Got %+v, %v", s, err)
	}
}

func TestSettings_LoadFromFile(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "sketchpoint.toml")
	data := `
width = 800
height = 600
level = 3
pen_radius = 5.0
format = "bmp"
flip_y = true
overlay = true
blend_mode = "multiply"
save_plot = true
out_dir = "/tmp/sketches"
`
	if err := os.WriteFile(conf, []byte(data), 0644); err != nil {
		t.Fatalf("could not create the settings file: %v", err)
	}

	s, err := LoadSettings(conf)
	if err != nil {
		t.Fatalf("could not load the settings file: %v", err)
	}

	if s.Width != 800 || s.Height != 600 {
		t.Errorf("Canvas size expected to be 800x600. Got %vx%v", s.Width, s.Height)
	}
	if s.Level != 3 || s.PenRadius != 5.0 {
		t.Errorf("Sampling options got corrupted: level %v, radius %v", s.Level, s.PenRadius)
	}
	if s.Format != "bmp" || !s.FlipY || !s.Overlay || s.BlendMode != "multiply" || !s.SavePlot {
		t.Errorf("Plot options got corrupted: %+v", s)
	}
	if s.OutDir != "/tmp/sketches" {
		t.Errorf("Output folder expected to be overridden. Got %q", s.OutDir)
	}
}

func TestSettings_MalformedFileIsRejected(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(conf, []byte("width = }"), 0644); err != nil {
		t.Fatalf("could not create the settings file: %v", err)
	}

	_, err := LoadSettings(conf)
	if err == nil {
		t.Fatal("Expected an error for the malformed settings file")
	}
	if !strings.Contains(err.Error(), "could not parse the settings file") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestSettings_ProcessorMapping(t *testing.T) {
	s := Settings{
		Width:     640,
		Height:    480,
		Level:     2,
		Points:    250,
		PenRadius: 4,
		FlipY:     true,
		Overlay:   true,
		BlendMode: "screen",
	}

	proc := NewProcessor(s)
	if proc.Width != 640 || proc.Height != 480 {
		t.Errorf("Processor size expected to be 640x480. Got %vx%v", proc.Width, proc.Height)
	}
	if proc.Level != Level2 || proc.Points != 250 || proc.PenRadius != 4 {
		t.Errorf("Sampling options got corrupted: %+v", proc)
	}
	if !proc.FlipY || !proc.Overlay || proc.BlendMode != "screen" {
		t.Errorf("Plot options got corrupted: %+v", proc)
	}
	if proc.Budget() != 250 {
		t.Errorf("Budget expected to be 250. Got %v", proc.Budget())
	}
}
