package sketchpoint

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// controlsHeight is the height of the band holding the sampling controls,
// laid out below the capture canvas.
const controlsHeight = 110

var (
	defaultBkgColor = color.White
	defaultInkColor = color.Black
)

// Gui is the basic struct containing all of the information needed for the UI operation.
// It holds the capture session fed by the pointer events, the processor turning the
// captured strokes into the saved artifacts and the widget states of the control band.
type Gui struct {
	cfg struct {
		window struct {
			w     float64
			h     float64
			title string
		}
		color struct {
			background color.Color
			ink        color.Color
		}
	}
	controls struct {
		theme    *material.Theme
		level    widget.Enum
		saveBtn  widget.Clickable
		clearBtn widget.Clickable
	}
	session  *Session
	settings Settings
	preview  image.Image
	status   string

	cp  *Processor
	ctx layout.Context
}

// NewGUI initializes the Gio interface of the drawing window.
func NewGUI(s Settings) *Gui {
	gui := &Gui{
		settings: s,
		session:  NewSession(s.Width, s.Height, NextArtifactSeq(s)),
		cp:       NewProcessor(s),
		ctx: layout.Context{
			Ops: new(op.Ops),
			Constraints: layout.Constraints{
				Max: image.Pt(s.Width, s.Height+controlsHeight),
			},
		},
	}
	gui.initWindow()

	return gui
}

// initWindow initializes the window options and the control widgets.
func (g *Gui) initWindow() {
	g.cfg.window.w = float64(g.settings.Width)
	g.cfg.window.h = float64(g.settings.Height + controlsHeight)
	g.cfg.window.title = "Sketchpoint"

	g.cfg.color.background = defaultBkgColor
	g.cfg.color.ink = defaultInkColor

	g.controls.theme = material.NewTheme(gofont.Collection())
	g.controls.level.Value = levelKey(g.cp.Level)
	g.status = "Draw with the left mouse button, then save to sample the points."
}

// levelKey returns the radio group key of a sampling level.
func levelKey(l Level) string {
	switch l {
	case Level2:
		return "2"
	case Level3:
		return "3"
	}
	return "1"
}

// Run is the core method of the Gio GUI application. It opens the drawing
// window and drives its event loop until the window gets closed or the
// ESC key is pressed.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title(g.cfg.window.title),
		app.Size(
			unit.Px(float32(g.cfg.window.w)),
			unit.Px(float32(g.cfg.window.h)),
		),
		app.MinSize(
			unit.Px(float32(g.cfg.window.w)),
			unit.Px(float32(g.cfg.window.h)),
		),
		app.MaxSize(
			unit.Px(float32(g.cfg.window.w)),
			unit.Px(float32(g.cfg.window.h)),
		),
	)

	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			g.draw(w, e)
		case key.Event:
			switch e.Name {
			case key.NameEscape:
				w.Close()
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

// draw lays out one frame of the window: the capture canvas on top with
// the control band below it.
func (g *Gui) draw(win *app.Window, e system.FrameEvent) {
	g.ctx = layout.NewContext(g.ctx.Ops, e)
	win.Invalidate()

	if g.controls.saveBtn.Clicked() {
		g.persist()
	}
	if g.controls.clearBtn.Clicked() {
		g.session.Clear()
		g.preview = nil
		g.status = "Canvas cleared."
	}

	paint.Fill(g.ctx.Ops, g.setColor(g.cfg.color.background))

	layout.Flex{
		Axis: layout.Vertical,
	}.Layout(g.ctx,
		layout.Flexed(1, func(gtx C) D {
			return g.layoutCanvas(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			return g.layoutControls(gtx)
		}),
	)

	e.Frame(g.ctx.Ops)
}

// layoutCanvas draws the capture area: the strokes of the session while
// a drawing is in progress, or the comparison plot of the drawing saved
// last. The pointer events arriving over the canvas drive the capture
// state machine.
func (g *Gui) layoutCanvas(gtx C) D {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, g.setColor(g.cfg.color.background))

	for _, ev := range gtx.Events(g) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		pt := Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}
		switch e.Type {
		case pointer.Press:
			if !e.Buttons.Contain(pointer.ButtonPrimary) {
				break
			}
			// Starting a new drawing replaces the plot of the last one.
			g.preview = nil
			g.status = ""
			g.session.PenDown(pt)
		case pointer.Drag:
			g.session.PenMove(pt)
		case pointer.Release, pointer.Cancel:
			g.session.PenUp()
		}
	}
	pointer.InputOp{
		Tag:   g,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
	}.Add(gtx.Ops)

	if g.preview != nil {
		src := paint.NewImageOp(g.preview)
		src.Add(gtx.Ops)

		widget.Image{
			Src:   src,
			Scale: 1 / float32(gtx.Px(unit.Dp(1))),
			Fit:   widget.Contain,
		}.Layout(gtx)
	} else {
		for _, s := range g.session.Strokes() {
			g.drawStroke(gtx, s.Points)
		}
		g.drawStroke(gtx, g.session.Current())
	}

	return D{Size: size}
}

// layoutControls draws the band below the canvas: the sampling level
// selector, the save and clear buttons and the status line.
func (g *Gui) layoutControls(gtx C) D {
	th := g.controls.theme

	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
		return layout.Flex{
			Axis: layout.Vertical,
		}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return layout.Flex{
					Axis:      layout.Horizontal,
					Alignment: layout.Middle,
				}.Layout(gtx,
					layout.Rigid(material.RadioButton(th, &g.controls.level, "1", Level1.String()).Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(material.RadioButton(th, &g.controls.level, "2", Level2.String()).Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(material.RadioButton(th, &g.controls.level, "3", Level3.String()).Layout),
					layout.Flexed(1, func(gtx C) D {
						return D{Size: gtx.Constraints.Min}
					}),
					layout.Rigid(material.Button(th, &g.controls.saveBtn, "Save points").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(material.Button(th, &g.controls.clearBtn, "Clear").Layout),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(material.Label(th, unit.Sp(14), g.status).Layout),
		)
	})
}

// persist samples the captured drawing and saves the artifacts, showing
// the comparison plot in place of the canvas when it succeeds.
func (g *Gui) persist() {
	switch g.controls.level.Value {
	case "2":
		g.cp.Level = Level2
	case "3":
		g.cp.Level = Level3
	default:
		g.cp.Level = Level1
	}

	res, err := g.cp.Process(g.session.Drawing())
	if errors.Is(err, ErrEmptyDrawing) {
		g.status = "No drawing detected."
		return
	}
	if err != nil {
		g.status = err.Error()
		return
	}

	if _, err := SaveResult(res, g.settings, g.session.Seq()); err != nil {
		g.status = err.Error()
		return
	}

	g.preview = res.Plot
	g.status = fmt.Sprintf("Saved drawing #%d with %d sampled points.",
		g.session.Seq(), len(res.Points))
	g.session.Clear()
	g.session.Advance()
}

// drawStroke renders the points of a stroke as a continuous polyline of
// the pen width. A single point has no drawable segment yet, matching
// the ink the rasterizer lays down for it.
func (g *Gui) drawStroke(gtx C, pts []Point) {
	if len(pts) < 2 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(g.point(pts[0]))
	for _, pt := range pts[1:] {
		path.LineTo(g.point(pt))
	}

	defer clip.Stroke{Path: path.End(), Width: float32(2 * g.cp.penRadius())}.Op().Push(gtx.Ops).Pop()
	paint.ColorOp{Color: g.setColor(g.cfg.color.ink)}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// point converts a captured point to its Gio f32.Point form.
func (g *Gui) point(pt Point) f32.Point {
	return f32.Point{
		X: float32(pt.X),
		Y: float32(pt.Y),
	}
}

// setColor converts a generic color to the NRGBA form the paint operations expect.
func (g *Gui) setColor(c color.Color) color.NRGBA {
	rc, gc, bc, ac := c.RGBA()
	return color.NRGBA{
		R: uint8(rc >> 8),
		G: uint8(gc >> 8),
		B: uint8(bc >> 8),
		A: uint8(ac >> 8),
	}
}
