package sketchpoint

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// The file name prefixes of the saved artifacts. A monotonically growing
// sequence number and the format extension complete the file names.
const (
	ImagePrefix  = "sketch_image"
	PointsPrefix = "sketch_points"
	PlotPrefix   = "sketch_plot"
)

// WritePoints writes the sampled points in the plain text interchange
// format: one "(x, y)" line per point, both coordinates formatted with
// exactly two decimals. The points are written in the order they were
// sampled in, without any header or footer around them.
func WritePoints(w io.Writer, pts []Point) error {
	bw := bufio.NewWriter(w)
	for _, pt := range pts {
		if _, err := fmt.Fprintf(bw, "(%.2f, %.2f)\n", pt.X, pt.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeImage encodes img into the writer using the encoder matching the
// file extension. An empty extension defaults to PNG, the format the
// drawings are saved in when nothing else got requested explicitly.
func EncodeImage(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case "", ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format: %q", ext)
}

// EncodeDrawing writes the drawing in its JSON interchange form, the
// format the headless mode reads its input from.
func EncodeDrawing(w io.Writer, d Drawing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// DecodeDrawing reads a drawing back from its JSON interchange form.
// Missing or invalid canvas dimensions fall back to the default canvas
// size, so hand written stroke files can leave them out.
func DecodeDrawing(r io.Reader) (Drawing, error) {
	var d Drawing
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Drawing{}, fmt.Errorf("could not decode the strokes file: %w", err)
	}
	if d.Width <= 0 {
		d.Width = DefaultWidth
	}
	if d.Height <= 0 {
		d.Height = DefaultHeight
	}
	return d, nil
}

// NextSeq returns the next sequence number for the artifacts saved into
// dir: one past the number of files already matching the prefix and
// extension. A missing or unreadable directory yields 1.
func NextSeq(dir, prefix, ext string) int {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"+ext))
	if err != nil {
		return 1
	}
	return len(matches) + 1
}
