/*
Package sketchpoint captures freehand sketches and converts them into evenly spaced points,
resampled along the arc length of each stroke so that longer strokes receive proportionally
more points than shorter ones.

The package provides a drawing window for capturing the sketches interactively and a command
line interface for processing saved strokes files in headless mode. To check the supported
commands type:

	$ sketchpoint --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/sketchpoint"
	)

	func main() {
		p := &sketchpoint.Processor{
			// Initialize struct variables
		}

		res, err := p.Process(drawing)
		if err != nil {
			fmt.Printf("Error sampling the drawing: %s", err.Error())
		}
		fmt.Printf("Sampled %d points", len(res.Points))
	}
*/
package sketchpoint
