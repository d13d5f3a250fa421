package sketchpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

// Settings groups the options shared by the command line tool and the
// drawing window. Zero values mean "use the default".
type Settings struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Level     int     `toml:"level"`
	Points    int     `toml:"points"`
	PenRadius float64 `toml:"pen_radius"`
	Format    string  `toml:"format"`
	FlipY     bool    `toml:"flip_y"`
	Overlay   bool    `toml:"overlay"`
	BlendMode string  `toml:"blend_mode"`
	SavePlot  bool    `toml:"save_plot"`
	OutDir    string  `toml:"out_dir"`
}

// DefaultSettings returns the settings used when neither a configuration
// file nor a command line flag overrides them. The output folders are
// anchored under the user's home directory.
func DefaultSettings() Settings {
	root, err := homedir.Dir()
	if err != nil {
		root = "."
	}
	return Settings{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Level:     int(Level1),
		PenRadius: DefaultPenRadius,
		Format:    "png",
		OutDir:    filepath.Join(root, "sketchpoint"),
	}
}

// LoadSettings reads a TOML settings file on top of the defaults. An
// empty path or a missing file is not an error: the defaults are simply
// returned untouched.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return s, err
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("could not parse the settings file: %w", err)
	}
	return s, nil
}

// DrawingsDir returns the folder the rasterized drawings are saved into.
func (s Settings) DrawingsDir() string {
	return filepath.Join(s.OutDir, "drawings")
}

// PointsDir returns the folder the sampled point files are saved into.
func (s Settings) PointsDir() string {
	return filepath.Join(s.OutDir, "points")
}

// Ext returns the image file extension matching the configured format.
func (s Settings) Ext() string {
	if s.Format == "" {
		return ".png"
	}
	return "." + s.Format
}

// NewProcessor builds a Processor out of the settings.
func NewProcessor(s Settings) *Processor {
	return &Processor{
		Width:     s.Width,
		Height:    s.Height,
		Level:     Level(s.Level),
		Points:    s.Points,
		PenRadius: s.PenRadius,
		FlipY:     s.FlipY,
		Overlay:   s.Overlay,
		BlendMode: s.BlendMode,
	}
}
