package app

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/taigrr/twisty/internal/config"
	"github.com/taigrr/twisty/pkg/cube"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Unix(0, 0)}
	s, err := New(config.Default(), 90, 70, rand.New(rand.NewPCG(1, 2)), clk.now)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, clk
}

func TestHandleKeyMoves(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"r", "R"},
		{"U", "U'"},
		{"2f", "F2"},
		{"2B", "B2"},
	}
	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			s, _ := newTestSession(t)
			for _, k := range tc.keys {
				if !s.HandleKey(k) {
					t.Fatalf("key %q not bound", k)
				}
			}
			if s.LastMove != tc.want {
				t.Errorf("LastMove = %q, want %q", s.LastMove, tc.want)
			}
			if s.DoubleArmed() {
				t.Error("double still armed after a face key")
			}
			if !s.Engine.Animating() {
				t.Error("move did not start animating")
			}
		})
	}
}

func TestHandleKeyUnbound(t *testing.T) {
	s, _ := newTestSession(t)
	for _, k := range "xq?\x1b" {
		if s.HandleKey(k) {
			t.Errorf("key %q should not be bound", k)
		}
	}
}

func TestMovesWhileAnimatingAreDropped(t *testing.T) {
	s, clk := newTestSession(t)
	s.HandleKey('r')
	s.HandleKey('u')
	if s.LastMove != "R" || s.Moves != 1 {
		t.Errorf("LastMove = %q, Moves = %d; want R, 1", s.LastMove, s.Moves)
	}
	if err := s.ApplyAlgorithm("F B"); !errors.Is(err, ErrBusy) {
		t.Errorf("ApplyAlgorithm while animating = %v, want ErrBusy", err)
	}

	// Let the frame loop run the animation to the end.
	for range cube.DefaultSteps * 2 {
		clk.t = clk.t.Add(cube.DefaultFrameDelay)
		s.Update(clk.t)
	}
	if s.Engine.Animating() {
		t.Fatal("animation did not finish")
	}
	if !s.HandleKey('u') || s.LastMove != "U" {
		t.Errorf("move after animation: LastMove = %q", s.LastMove)
	}
}

func TestUpdateRunsOnlyDueTicks(t *testing.T) {
	s, clk := newTestSession(t)
	s.Apply("F")
	s.Update(clk.t) // nothing due yet: the first tick ran synchronously
	if got := s.Engine.Pending(); got != 1 {
		t.Fatalf("Pending = %d, want 1", got)
	}
	// Each tick schedules the next one a frame later, so a late Update catches up by
	// one tick only.
	clk.t = clk.t.Add(time.Hour)
	s.Update(clk.t)
	s.Update(clk.t)
	if got := s.Engine.Animating(); !got {
		t.Fatal("animation finished early")
	}
	for range cube.DefaultSteps - 2 {
		clk.t = clk.t.Add(cube.DefaultFrameDelay)
		s.Update(clk.t)
	}
	if s.Engine.Animating() {
		t.Error("still animating after all ticks were due")
	}
}

func TestScrambleAndReset(t *testing.T) {
	s, _ := newTestSession(t)
	s.HandleKey(' ')
	if s.LastMove != "scramble" || s.Moves != cube.DefaultScrambleLength {
		t.Errorf("after scramble: LastMove = %q, Moves = %d", s.LastMove, s.Moves)
	}
	s.Finish()
	if s.Engine.Animating() {
		t.Fatal("Finish left the animation running")
	}

	s.HandleKey('2')
	s.HandleKey('0')
	if !s.Engine.Solved() || s.Moves != 0 || s.DoubleArmed() {
		t.Errorf("reset: solved = %v, moves = %d, armed = %v", s.Engine.Solved(), s.Moves, s.DoubleArmed())
	}
}

func TestResetDuringAnimation(t *testing.T) {
	s, clk := newTestSession(t)
	s.Apply("L2")
	s.Reset()
	clk.t = clk.t.Add(time.Hour)
	for range 50 {
		s.Update(clk.t)
	}
	if !s.Engine.Solved() || s.Engine.Animating() {
		t.Error("puzzle changed after reset")
	}
}

func TestApplyAlgorithm(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.ApplyAlgorithm("R U R' U'"); err != nil {
		t.Fatalf("ApplyAlgorithm: %v", err)
	}
	s.Finish()
	if s.LastMove != "U'" || s.Moves != 4 {
		t.Errorf("LastMove = %q, Moves = %d", s.LastMove, s.Moves)
	}
	if err := s.ApplyAlgorithm("R Q"); !errors.Is(err, cube.ErrInvalidMove) {
		t.Errorf("bad algorithm error = %v", err)
	}
	if err := s.ApplyAlgorithm("   "); err != nil {
		t.Errorf("empty algorithm error = %v", err)
	}
}

func TestDrag(t *testing.T) {
	s, _ := newTestSession(t)
	yaw0, pitch0, _ := s.Engine.Angles()

	s.DragStart(10, 10)
	s.DragTo(30, 5)
	yaw, pitch, _ := s.Engine.Angles()
	if math.Abs(yaw-yaw0-0.2) > 1e-12 || math.Abs(pitch-pitch0+0.05) > 1e-12 {
		t.Errorf("drag moved angles by %v, %v; want 0.2, -0.05", yaw-yaw0, pitch-pitch0)
	}

	// Without fling the camera stops with the mouse.
	s.DragEnd(false)
	if s.Orbit.Moving() {
		t.Error("orbit moving without fling")
	}

	// With fling it keeps turning in the drag direction and slows down.
	s.DragStart(0, 0)
	s.DragTo(10, 0)
	s.DragEnd(true)
	before, _, _ := s.Engine.Angles()
	s.Update(time.Unix(0, 0))
	after, _, _ := s.Engine.Angles()
	if after <= before {
		t.Errorf("fling did not keep turning: %v -> %v", before, after)
	}
	for range 600 {
		s.Update(time.Unix(0, 0))
	}
	if s.Orbit.Moving() {
		t.Error("orbit never came to rest")
	}
}

func TestRenderOnlyWhenDirty(t *testing.T) {
	s, _ := newTestSession(t)
	if !s.Render() {
		t.Fatal("first Render should draw")
	}
	if s.Render() {
		t.Error("Render drew without changes")
	}
	s.Engine.SetCameraAngles(0.1, 0)
	if !s.Render() {
		t.Error("Render skipped a camera change")
	}
	if got := s.Canvas.GetPixel(0, 0); got != s.Renderer.Palette.Background {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestStatus(t *testing.T) {
	s, _ := newTestSession(t)
	if got := s.Status(); !strings.Contains(got, "solved") || !strings.Contains(got, "last: -") {
		t.Errorf("Status() = %q", got)
	}
	s.HandleKey('2')
	if got := s.Status(); !strings.Contains(got, "[2]") {
		t.Errorf("armed Status() = %q", got)
	}
	s.HandleKey('r')
	if got := s.Status(); !strings.Contains(got, "turning (2 left)") || !strings.Contains(got, "last: R2") {
		t.Errorf("animating Status() = %q", got)
	}
	s.Finish()
	if got := s.Status(); !strings.Contains(got, "scrambled") {
		t.Errorf("after R2 Status() = %q", got)
	}
}
