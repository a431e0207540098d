// Package app holds the state shared by the interactive hosts: the engine, its tick
// queue, the renderer and the key and mouse bindings.
package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"fortio.org/log"
	"github.com/taigrr/twisty/internal/config"
	"github.com/taigrr/twisty/pkg/cube"
	"github.com/taigrr/twisty/pkg/render"
	"github.com/taigrr/twisty/pkg/tick"
)

// DragSensitivity is the camera rotation per pixel of mouse drag, in radians.
const DragSensitivity = 0.01

// ErrBusy is returned when a move sequence is requested while another one animates.
var ErrBusy = errors.New("still animating")

// Session is one interactive puzzle. It is not safe for concurrent use; hosts call it
// from their frame loop.
type Session struct {
	Engine   *cube.Engine
	Renderer *render.Renderer
	Canvas   *render.Framebuffer
	Orbit    *Orbit

	LastMove string // last accepted move or action, for the status line
	Moves    int    // moves accepted since the last reset

	cfg         config.Config
	queue       *tick.Queue
	armedDouble bool
	drag        struct {
		active bool
		x, y   int
		dx, dy float64 // last motion, becomes the fling velocity
	}
	dirty bool
}

// New creates a session drawing into a width x height framebuffer. A nil rng seeds
// one from the clock; a nil now uses time.Now.
func New(cfg config.Config, width, height int, rng *rand.Rand, now func() time.Time) (*Session, error) {
	s := &Session{
		cfg:   cfg,
		queue: &tick.Queue{Now: now},
		Orbit: NewOrbit(cfg.FPS),
	}
	opts := cfg.EngineOptions()
	opts.Scheduler = s.queue
	opts.Rand = rng
	s.Engine = cube.New(opts)
	s.Engine.OnFrame = func() { s.dirty = true }

	s.Canvas = render.NewFramebuffer(width, height)
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize refits the renderer and framebuffer to a new target size.
func (s *Session) Resize(width, height int) error {
	r, err := s.cfg.NewRenderer(width, height)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	s.Renderer = r
	s.Canvas.Resize(width, height)
	s.Canvas.BG = r.Palette.Background
	s.dirty = true
	return nil
}

// Apply plays one move in standard notation. It returns false when the notation is
// malformed or a move is still animating.
func (s *Session) Apply(notation string) bool {
	if !s.Engine.Move(notation) {
		return false
	}
	s.LastMove = notation
	s.Moves++
	log.LogVf("move %s", notation)
	return true
}

// ApplyAlgorithm plays a whitespace separated move sequence as one animation.
func (s *Session) ApplyAlgorithm(alg string) error {
	moves, err := cube.ParseAlgorithm(alg)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return nil
	}
	if !s.Engine.Sequence(moves...) {
		return ErrBusy
	}
	s.LastMove = moves[len(moves)-1].String()
	s.Moves += len(moves)
	return nil
}

// Scramble plays DefaultScrambleLength random moves and returns them, or nil while a
// move is animating.
func (s *Session) Scramble() []cube.Move {
	moves := s.Engine.Scramble(cube.DefaultScrambleLength)
	if moves == nil {
		return nil
	}
	s.LastMove = "scramble"
	s.Moves += len(moves)
	log.Infof("scramble: %s", cube.FormatAlgorithm(moves))
	return moves
}

// Reset restores the solved puzzle and the default camera and drops pending ticks.
func (s *Session) Reset() {
	s.queue.Clear()
	s.Engine.Reset()
	s.Orbit.Stop()
	s.armedDouble = false
	s.LastMove = "reset"
	s.Moves = 0
}

// HandleKey maps a key press to an action and reports whether the key was bound.
//
//	u d f b l r   clockwise face turn
//	U D F B L R   counter-clockwise (prime) turn
//	2             the next face key turns twice
//	space         scramble
//	0             reset
func (s *Session) HandleKey(k rune) bool {
	switch k {
	case 'u', 'd', 'f', 'b', 'l', 'r':
		m := string(k - 'a' + 'A')
		if s.armedDouble {
			m += "2"
		}
		s.armedDouble = false
		s.Apply(m)
	case 'U', 'D', 'F', 'B', 'L', 'R':
		m := string(k) + "'"
		if s.armedDouble {
			m = string(k) + "2"
		}
		s.armedDouble = false
		s.Apply(m)
	case '2':
		s.armedDouble = true
	case ' ':
		s.Scramble()
	case '0':
		s.Reset()
	default:
		return false
	}
	return true
}

// DoubleArmed reports whether the next face key will turn twice.
func (s *Session) DoubleArmed() bool {
	return s.armedDouble
}

// DragStart begins a camera drag at pixel (x, y) and stops any inertia.
func (s *Session) DragStart(x, y int) {
	s.drag.active = true
	s.drag.x, s.drag.y = x, y
	s.drag.dx, s.drag.dy = 0, 0
	s.Orbit.Stop()
}

// DragTo rotates the camera by the motion since the previous drag position.
func (s *Session) DragTo(x, y int) {
	if !s.drag.active {
		s.DragStart(x, y)
		return
	}
	s.drag.dx = float64(x-s.drag.x) * DragSensitivity
	s.drag.dy = float64(y-s.drag.y) * DragSensitivity
	s.drag.x, s.drag.y = x, y
	if s.drag.dx != 0 || s.drag.dy != 0 {
		s.Engine.SetCameraAngles(s.drag.dx, s.drag.dy)
	}
}

// DragEnd releases the drag. With fling set the camera keeps turning at the last
// drag speed and slows down.
func (s *Session) DragEnd(fling bool) {
	if !s.drag.active {
		return
	}
	s.drag.active = false
	if fling {
		s.Orbit.Fling(s.drag.dx, s.drag.dy)
	}
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	return s.drag.active
}

// Update runs the animation ticks due at now and advances the camera inertia by one
// frame.
func (s *Session) Update(now time.Time) {
	s.queue.RunDue(now)
	if !s.drag.active && s.Orbit.Moving() {
		if dy, dp := s.Orbit.Step(); dy != 0 || dp != 0 {
			s.Engine.SetCameraAngles(dy, dp)
		}
	}
}

// Finish plays every pending animation tick immediately.
func (s *Session) Finish() {
	s.queue.Drain()
}

// Render redraws the framebuffer if anything changed since the last call and reports
// whether it did.
func (s *Session) Render() bool {
	if !s.dirty {
		return false
	}
	s.Renderer.Draw(s.Canvas, s.Engine)
	s.dirty = false
	return true
}

// Invalidate forces the next Render to redraw.
func (s *Session) Invalidate() {
	s.dirty = true
}

// Status describes the puzzle state for a one line HUD.
func (s *Session) Status() string {
	state := "scrambled"
	switch {
	case s.Engine.Animating():
		state = fmt.Sprintf("turning (%d left)", s.Engine.Pending())
	case s.Engine.Solved():
		state = "solved"
	}
	last := s.LastMove
	if last == "" {
		last = "-"
	}
	armed := ""
	if s.armedDouble {
		armed = "  [2]"
	}
	return fmt.Sprintf("last: %s  moves: %d  %s%s", last, s.Moves, state, armed)
}
