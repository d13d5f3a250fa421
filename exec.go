package sketchpoint

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/sketchpoint/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops groups the source and destination locations of one headless run
// together with the active settings.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
	Settings           Settings
}

// result holds the relevant information about one processed strokes file.
type result struct {
	path string
	err  error
}

// Execute runs the sampling pipeline outside of the drawing window. The
// source can be a strokes file, a URL, a directory holding strokes files
// or the pipe name for stdin. A directory gets processed concurrently,
// saving the artifacts into the destination folder under the name of
// each source file; a single source uses the sequence numbered artifact
// names inside the configured output folders. When the destination is
// the pipe name, only the sampled points are written to stdout.
func (p *Processor) Execute(op *Ops) {
	var err error
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("✎ SKETCHPOINT", utils.StatusMessage),
		utils.DecorateText("⇢ sampling the drawing...", utils.DefaultMessage),
	)
	p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)

	// Restore the cursor visibility on CTRL-C.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		p.Spinner.RestoreCursor()
		os.Exit(1)
	}()

	var (
		fs  os.FileInfo
		tmp *os.File
	)
	if utils.IsValidUrl(op.Src) {
		tmp, err = utils.DownloadFile(op.Src)
		if tmp != nil {
			defer os.Remove(tmp.Name())
			defer tmp.Close()
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source strokes file: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		fs, err = tmp.Stat()
	} else if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the source strokes file: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if _, err := os.Stat(op.Dst); err != nil {
			if err := os.MkdirAll(op.Dst, 0755); err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to create the destination directory: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		p.Spinner.Start()
		err = op.processDir(p)
		p.Spinner.Stop()

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		src, err := op.openSource(tmp)
		if err != nil {
			op.printOpStatus(nil, err)
		}
		paths, err := op.process(p, src)
		op.printOpStatus(paths, err)
	}

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// processDir walks the source directory and feeds every strokes file it
// finds to a pool of concurrently running workers.
func (op *Ops) processDir(p *Processor) error {
	var (
		wg  sync.WaitGroup
		err error
	)

	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, op.Src, []string{".json"})

	wg.Add(op.Workers)
	for i := 0; i < op.Workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	for res := range ch {
		if res.err != nil {
			err = res.err
			fmt.Fprintf(os.Stderr, "\n%s\n", utils.DecorateText(
				fmt.Sprintf("could not process %s: %v", filepath.Base(res.path), res.err),
				utils.ErrorMessage))
			continue
		}
		fmt.Fprintf(os.Stderr, "\nProcessed: %s %s\n",
			utils.DecorateText(filepath.Base(res.path), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}

	if werr := <-errc; werr != nil {
		fmt.Fprint(os.Stderr, utils.DecorateText(werr.Error(), utils.ErrorMessage))
		err = werr
	}
	return err
}

// consumer reads the path names from the paths channel and runs the
// sampling processor against each strokes file.
func (op *Ops) consumer(
	p *Processor,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		err := op.processFile(p, src)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// processFile converts one strokes file into its artifacts inside the
// destination folder, naming them after the source file.
func (op *Ops) processFile(p *Processor, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open the source file: %w", err)
	}
	defer f.Close()

	d, err := DecodeDrawing(f)
	if err != nil {
		return err
	}
	res, err := p.Process(d)
	if err != nil {
		return err
	}

	s := op.Settings
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	if err := writeImageFile(filepath.Join(op.Dst, base+s.Ext()), res.Raster, s.Ext()); err != nil {
		return err
	}
	if err := writePointsFile(filepath.Join(op.Dst, base+"_points.txt"), res.Points); err != nil {
		return err
	}
	if s.SavePlot {
		if err := writeImageFile(filepath.Join(op.Dst, base+"_plot"+s.Ext()), res.Plot, s.Ext()); err != nil {
			return err
		}
	}
	return nil
}

// process samples a single strokes source and either saves the artifacts
// under the configured output folders or pipes the points to stdout.
// It returns the paths of the written files.
func (op *Ops) process(p *Processor, src io.ReadCloser) ([]string, error) {
	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("✎ SKETCHPOINT", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the drawing has been sampled successfully ✔", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("✎ SKETCHPOINT", utils.StatusMessage),
		utils.DecorateText("sampling the drawing failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	p.Spinner.Start()
	defer src.Close()

	d, err := DecodeDrawing(src)
	if err != nil {
		p.Spinner.StopMsg = errorMsg
		p.Spinner.Stop()
		return nil, err
	}

	res, err := p.Process(d)
	if errors.Is(err, ErrEmptyDrawing) {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("✎ SKETCHPOINT", utils.StatusMessage),
			utils.DecorateText("⇢ No drawing detected.", utils.DefaultMessage),
		)
		p.Spinner.Stop()
		return nil, nil
	}
	if err != nil {
		p.Spinner.StopMsg = errorMsg
		p.Spinner.Stop()
		return nil, err
	}

	if op.Dst == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			p.Spinner.StopMsg = errorMsg
			p.Spinner.Stop()
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		p.Spinner.Stop()
		return nil, WritePoints(os.Stdout, res.Points)
	}

	paths, err := SaveResult(res, op.Settings, NextArtifactSeq(op.Settings))
	if err != nil {
		p.Spinner.StopMsg = errorMsg
	} else {
		p.Spinner.StopMsg = successMsg
	}
	p.Spinner.Stop()

	return paths, err
}

// openSource resolves the strokes source into a readable stream: the
// temporary file of a download, stdin for the pipe name or a local file.
func (op *Ops) openSource(tmp *os.File) (io.ReadCloser, error) {
	if tmp != nil {
		return tmp, nil
	}
	if op.Src == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(op.Src)
	if err != nil {
		return nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, nil
}

// printOpStatus displays the relevant information about the sampling process.
func (op *Ops) printOpStatus(paths []string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError sampling the drawing: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}
	for _, fname := range paths {
		fmt.Fprintf(os.Stderr, "\nThe file has been saved as: %s %s\n",
			utils.DecorateText(fname, utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// NextArtifactSeq returns the sequence number the next saved artifacts
// should receive, scanning both output folders and taking the bigger of
// the two, which keeps the image and points files paired up even when
// one of the folders got emptied by hand.
func NextArtifactSeq(s Settings) int {
	return utils.Max(
		NextSeq(s.DrawingsDir(), ImagePrefix, s.Ext()),
		NextSeq(s.PointsDir(), PointsPrefix, ".txt"),
	)
}

// SaveResult persists the artifacts of one processed drawing under the
// configured output folders using the given sequence number. It returns
// the paths of the written files: the rasterized drawing, the points
// file and, when enabled, the comparison plot.
func SaveResult(res *Result, s Settings, seq int) ([]string, error) {
	if err := os.MkdirAll(s.DrawingsDir(), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.PointsDir(), 0755); err != nil {
		return nil, err
	}

	var paths []string

	imgPath := filepath.Join(s.DrawingsDir(), fmt.Sprintf("%s%d%s", ImagePrefix, seq, s.Ext()))
	if err := writeImageFile(imgPath, res.Raster, s.Ext()); err != nil {
		return nil, err
	}
	paths = append(paths, imgPath)

	ptsPath := filepath.Join(s.PointsDir(), fmt.Sprintf("%s%d.txt", PointsPrefix, seq))
	if err := writePointsFile(ptsPath, res.Points); err != nil {
		return paths, err
	}
	paths = append(paths, ptsPath)

	if s.SavePlot {
		plotPath := filepath.Join(s.DrawingsDir(), fmt.Sprintf("%s%d%s", PlotPrefix, seq, s.Ext()))
		if err := writeImageFile(plotPath, res.Plot, s.Ext()); err != nil {
			return paths, err
		}
		paths = append(paths, plotPath)
	}
	return paths, nil
}

// writeImageFile encodes the image into a freshly created file, removing
// the file again when the encoding fails halfway through.
func writeImageFile(path string, img image.Image, ext string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := EncodeImage(f, img, ext); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// writePointsFile writes the sampled points into a freshly created file.
func writePointsFile(path string, pts []Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := WritePoints(f, pts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each strokes file to a new
// channel. It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if utils.Contains(srcExts, filepath.Ext(f.Name())) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}
