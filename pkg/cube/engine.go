package cube

import (
	"math"
	"math/rand/v2"
	"time"

	"fortio.org/log"
	"github.com/taigrr/twisty/pkg/math3d"
)

// Animation and camera defaults.
const (
	DefaultSteps          = 12
	DefaultFrameDelay     = 20 * time.Millisecond
	DefaultScrambleLength = 20
)

// Default camera angles in radians: looking slightly down onto the U, F and R faces.
var (
	DefaultYaw   = -30 * math.Pi / 180
	DefaultPitch = 25 * math.Pi / 180
)

// Scheduler runs fn once after delay. Callbacks must run on the goroutine that owns
// the Engine; hosts usually back this with their frame loop.
type Scheduler interface {
	After(delay time.Duration, fn func())
}

// Options configures an Engine.
type Options struct {
	Steps       int           // animation ticks per quarter turn (default 12)
	FrameDelay  time.Duration // delay between ticks (default 20ms)
	CubeletSize float64       // cubelet edge length (default 0.88)
	Yaw, Pitch  float64       // camera angles restored by Reset; zero looks down -z
	Rand        *rand.Rand    // scramble source (default: time seeded)
	Scheduler   Scheduler     // tick driver (default: SyncScheduler)
}

// DefaultOptions returns the options of the classic three-face view.
func DefaultOptions() Options {
	return Options{
		Steps:       DefaultSteps,
		FrameDelay:  DefaultFrameDelay,
		CubeletSize: DefaultCubeletSize,
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
	}
}

// Engine owns the 27 cubelets, the camera and the move animation.
//
// An Engine is not safe for concurrent use: every method and every Scheduler callback
// must run on the same goroutine.
type Engine struct {
	// OnFrame, when set, is called after every animation tick, camera change and reset
	// so the host can redraw.
	OnFrame func()

	opts     Options
	cubelets []*Cubelet

	yaw, pitch, roll float64
	view             math3d.Mat3

	run *run // nil when idle
}

// run is the in-flight animation: the quarter turns still to play, the first of which
// is currently turning.
type run struct {
	turns   []layerTurn
	layer   []*Cubelet
	stepRot math3d.Mat3
	step    int
}

// New creates a solved puzzle. Zero Steps, FrameDelay and CubeletSize, a nil Rand and
// a nil Scheduler select the defaults.
func New(opts Options) *Engine {
	if opts.Steps <= 0 {
		opts.Steps = DefaultSteps
	}
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = DefaultFrameDelay
	}
	if opts.CubeletSize <= 0 {
		opts.CubeletSize = DefaultCubeletSize
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec // scrambles need no crypto
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if opts.Scheduler == nil {
		opts.Scheduler = &SyncScheduler{}
	}
	e := &Engine{opts: opts}
	e.rebuild()
	return e
}

func (e *Engine) rebuild() {
	e.cubelets = make([]*Cubelet, 0, 27)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				e.cubelets = append(e.cubelets, NewCubelet(x, y, z, e.opts.CubeletSize))
			}
		}
	}
	e.yaw, e.pitch, e.roll = e.opts.Yaw, e.opts.Pitch, 0
	e.updateView()
	e.run = nil
}

func (e *Engine) updateView() {
	e.view = math3d.RotateZ(e.roll).Mul(math3d.RotateY(e.yaw)).Mul(math3d.RotateX(e.pitch))
}

func (e *Engine) frame() {
	if e.OnFrame != nil {
		e.OnFrame()
	}
}

// Animating reports whether a move sequence is in flight.
func (e *Engine) Animating() bool {
	return e.run != nil
}

// Pending returns the number of quarter turns not yet finished.
func (e *Engine) Pending() int {
	if e.run == nil {
		return 0
	}
	return len(e.run.turns)
}

// Move parses notation and animates it. It returns false, doing nothing, when the
// notation is malformed or another move is still animating.
func (e *Engine) Move(notation string) bool {
	m, err := ParseMove(notation)
	if err != nil {
		log.Debugf("move ignored: %v", err)
		return false
	}
	return e.Sequence(m)
}

// Sequence animates moves back to back as one uninterruptible run. It returns false,
// doing nothing, when moves is empty or another run is in flight.
func (e *Engine) Sequence(moves ...Move) bool {
	if e.run != nil {
		log.Debugf("moves %s ignored: still animating", FormatAlgorithm(moves))
		return false
	}
	if len(moves) == 0 {
		return false
	}
	r := &run{}
	for _, m := range moves {
		for range m.QuarterTurns() {
			r.turns = append(r.turns, faceTurns[m.Face])
		}
	}
	log.LogVf("animating %s (%d quarter turns)", FormatAlgorithm(moves), len(r.turns))
	e.run = r
	e.tick(r)
	return true
}

// Scramble animates n moves drawn uniformly from AllMoves and returns them. It does
// nothing and returns nil while animating or when n <= 0.
func (e *Engine) Scramble(n int) []Move {
	if e.run != nil || n <= 0 {
		return nil
	}
	moves := make([]Move, n)
	for i := range moves {
		moves[i] = AllMoves[e.opts.Rand.IntN(len(AllMoves))]
	}
	e.Sequence(moves...)
	return moves
}

// Reset discards every cubelet and the camera state and rebuilds the solved puzzle
// at the default camera angles. An animation in flight is abandoned.
func (e *Engine) Reset() {
	e.rebuild()
	e.frame()
}

// SetCameraAngles adds the deltas (radians) to the camera yaw and pitch. Angles are
// periodic and never clamped.
func (e *Engine) SetCameraAngles(deltaYaw, deltaPitch float64) {
	e.yaw += deltaYaw
	e.pitch += deltaPitch
	e.updateView()
	e.frame()
}

// Angles returns the camera yaw, pitch and roll in radians.
func (e *Engine) Angles() (yaw, pitch, roll float64) {
	return e.yaw, e.pitch, e.roll
}

// View returns the current view rotation, Rz(roll)·Ry(yaw)·Rx(pitch).
func (e *Engine) View() math3d.Mat3 {
	return e.view
}

// Cubelets returns a snapshot of all 27 cubelets.
func (e *Engine) Cubelets() []Cubelet {
	out := make([]Cubelet, len(e.cubelets))
	for i, c := range e.cubelets {
		out[i] = *c
	}
	return out
}

// Solved reports whether every side of the puzzle shows a single color.
func (e *Engine) Solved() bool {
	var seen [6]Sticker
	for _, c := range e.cubelets {
		for lf, s := range c.stickers {
			if s == Blank {
				continue
			}
			side := LocalFaceOf(c.WorldNormal(LocalFace(lf)))
			switch seen[side] {
			case Blank:
				seen[side] = s
			case s:
			default:
				return false
			}
		}
	}
	return true
}

// selectLayer returns the cubelets whose center rounds to value on axis.
func (e *Engine) selectLayer(axis Axis, value float64) []*Cubelet {
	layer := make([]*Cubelet, 0, 9)
	for _, c := range e.cubelets {
		if math.Round(c.Center.Axis(int(axis))) == value {
			layer = append(layer, c)
		}
	}
	return layer
}

// tick advances r by one animation step. A tick for a run that is no longer current
// (Reset happened) is dropped.
func (e *Engine) tick(r *run) {
	if e.run != r {
		return
	}
	t := r.turns[0]
	axis := int(t.axis)
	if r.step == 0 {
		r.layer = e.selectLayer(t.axis, t.layer)
		r.stepRot = math3d.RotateAxis(axis, t.angle/float64(e.opts.Steps))
	}

	for _, c := range r.layer {
		rel := c.Center.WithAxis(axis, c.Center.Axis(axis)-t.layer)
		rel = r.stepRot.MulVec3(rel)
		c.Center = rel.WithAxis(axis, rel.Axis(axis)+t.layer)
		c.Orientation = r.stepRot.Mul(c.Orientation)
	}
	r.step++

	if r.step == e.opts.Steps {
		for _, c := range r.layer {
			c.snap()
		}
		r.turns = r.turns[1:]
		r.layer = nil
		r.step = 0
		if len(r.turns) == 0 {
			e.run = nil
			log.LogVf("animation finished, solved=%v", e.Solved())
		}
	}

	e.frame()
	if e.run == r {
		e.opts.Scheduler.After(e.opts.FrameDelay, func() { e.tick(r) })
	}
}

// SyncScheduler runs callbacks immediately, ignoring the delay, so a move completes
// before Move returns. Nested calls are queued and run in order instead of recursing.
type SyncScheduler struct {
	queue   []func()
	running bool
}

// After implements Scheduler.
func (s *SyncScheduler) After(_ time.Duration, fn func()) {
	s.queue = append(s.queue, fn)
	if s.running {
		return
	}
	s.running = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		next()
	}
	s.running = false
}
