package sketchpoint

// SessionState enumerates the states of the capture state machine.
type SessionState int

const (
	// Idle means no pointer button is being held down: every captured
	// stroke is complete.
	Idle SessionState = iota
	// StrokeInProgress means the pen is down and the cursor positions
	// are accumulating into the current stroke.
	StrokeInProgress
)

// Session tracks one capture cycle of the drawing window: the strokes
// drawn since the last clearing, the stroke currently in progress and
// the sequence number the next saved artifacts will get. A session is
// driven from a single event loop, so it needs no locking.
type Session struct {
	width   int
	height  int
	state   SessionState
	strokes []Stroke
	current []Point
	seq     int
}

// NewSession returns a capture session for a canvas of the given size.
// The seq argument seeds the artifact sequence number, normally derived
// from the output folder contents; values below one start at one.
func NewSession(width, height, seq int) *Session {
	if seq < 1 {
		seq = 1
	}
	return &Session{
		width:  width,
		height: height,
		seq:    seq,
	}
}

// State returns the current state of the capture state machine.
func (s *Session) State() SessionState {
	return s.state
}

// PenDown starts a new stroke at pt. A press arriving while a stroke is
// already in progress keeps accumulating into it instead of opening a
// second one.
func (s *Session) PenDown(pt Point) {
	if s.state == StrokeInProgress {
		s.current = append(s.current, pt)
		return
	}
	s.state = StrokeInProgress
	s.current = []Point{pt}
}

// PenMove appends pt to the stroke in progress. Moves arriving while the
// pen is up are hover motions and carry no ink, so they are dropped.
func (s *Session) PenMove(pt Point) {
	if s.state != StrokeInProgress {
		return
	}
	s.current = append(s.current, pt)
}

// PenUp closes the stroke in progress and appends it to the captured
// strokes. Single point strokes are kept: they hold no drawable segment
// but still record that the canvas was clicked. Releasing while idle is
// a no-op.
func (s *Session) PenUp() {
	if s.state != StrokeInProgress {
		return
	}
	if len(s.current) > 0 {
		s.strokes = append(s.strokes, Stroke{Points: s.current})
	}
	s.current = nil
	s.state = Idle
}

// Strokes returns the closed strokes captured so far. The returned slice
// is a read-only view valid until the next pen event.
func (s *Session) Strokes() []Stroke {
	return s.strokes
}

// Current returns the points of the stroke in progress, or nil while the
// pen is up. The returned slice is a read-only view valid until the next
// pen event.
func (s *Session) Current() []Point {
	return s.current
}

// Drawing returns a deep snapshot of the closed strokes, safe to hold
// onto across further pen events. The stroke in progress is left out:
// it only becomes part of the drawing once the pen gets lifted.
func (s *Session) Drawing() Drawing {
	d := Drawing{
		Width:   s.width,
		Height:  s.height,
		Strokes: s.strokes,
	}
	return d.Clone()
}

// Empty reports whether no stroke has been closed yet.
func (s *Session) Empty() bool {
	return len(s.strokes) == 0
}

// Seq returns the sequence number the next saved artifacts will get.
func (s *Session) Seq() int {
	return s.seq
}

// Clear drops the captured strokes and the stroke in progress, returning
// the session into its idle state. The sequence number is left alone.
func (s *Session) Clear() {
	s.strokes = nil
	s.current = nil
	s.state = Idle
}

// Advance increments the artifact sequence number, called after the
// current drawing got saved successfully.
func (s *Session) Advance() {
	s.seq++
}
