package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"gioui.org/app"
	"github.com/esimov/sketchpoint"
	"github.com/esimov/sketchpoint/utils"
)

const HelpBanner = `
┌─┐┬┌─┌─┐┌┬┐┌─┐┬ ┬┌─┐┌─┐┬┌┐┌┌┬┐
└─┐├┴┐├┤  │ │  ├─┤├─┘│ │││││ │
└─┘┴ ┴└─┘ ┴ └─┘┴ ┴┴  └─┘┴┘└┘ ┴

Freehand sketch to evenly spaced points.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", "", "Source strokes file, folder or URL (opens the drawing window when empty)")
	destination = flag.String("out", "", "Destination folder, or `-` to pipe the points to stdout")
	confFile    = flag.String("conf", "", "Settings file")
	width       = flag.Int("width", 0, "Canvas width")
	height      = flag.Int("height", 0, "Canvas height")
	level       = flag.Int("level", 0, "Sampling level (1-3)")
	points      = flag.Int("points", 0, "Number of sampled points, overrides the level")
	penRadius   = flag.Float64("radius", 0, "Pen radius")
	format      = flag.String("format", "", "Image format of the saved drawing")
	flipY       = flag.Bool("flip", false, "Mirror the points panel vertically")
	overlay     = flag.Bool("overlay", false, "Draw the sampled points over the faded drawing")
	blendMode   = flag.String("blend", "", "Blend mode of the overlay")
	savePlot    = flag.Bool("plot", false, "Save the comparison plot")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, fmt.Sprintf(HelpBanner, Version))
		flag.PrintDefaults()
	}
	flag.Parse()

	settings, err := sketchpoint.LoadSettings(*confFile)
	if err != nil {
		log.Fatalf(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	applyFlags(&settings)

	// Supported image formats of the saved drawing.
	validFormats := []string{"png", "jpg", "jpeg", "bmp"}
	if !utils.Contains(validFormats, settings.Format) {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("%v file format not supported", settings.Format), utils.ErrorMessage))
	}

	// A destination folder relocates the saved artifacts.
	if *destination != "" && *destination != pipeName {
		settings.OutDir = *destination
	}

	// Without a source the tool opens the drawing window, otherwise it
	// runs the sampling pipeline headless over the given strokes source.
	if *source == "" {
		runGUI(settings)
		return
	}

	proc := sketchpoint.NewProcessor(settings)
	proc.Execute(&sketchpoint.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
		Settings: settings,
	})
}

// applyFlags overrides the file based settings with the flags explicitly
// set on the command line.
func applyFlags(s *sketchpoint.Settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			s.Width = *width
		case "height":
			s.Height = *height
		case "level":
			s.Level = *level
		case "points":
			s.Points = *points
		case "radius":
			s.PenRadius = *penRadius
		case "format":
			s.Format = *format
		case "flip":
			s.FlipY = *flipY
		case "overlay":
			s.Overlay = *overlay
		case "blend":
			s.BlendMode = *blendMode
		case "plot":
			s.SavePlot = *savePlot
		}
	})
}

// runGUI opens the drawing window. The Gio event loop has to own the main
// thread, so the window logic runs on a separate goroutine and app.Main
// takes over the current one.
func runGUI(s sketchpoint.Settings) {
	go func() {
		g := sketchpoint.NewGUI(s)
		if err := g.Run(); err != nil {
			log.Fatalf(utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
		os.Exit(0)
	}()
	app.Main()
}
