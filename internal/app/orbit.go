package app

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring parameters for camera inertia: moderate frequency, critically damped so the
// spin never reverses.
const (
	orbitFrequency = 4.0
	orbitDamping   = 1.0
	orbitRest      = 1e-4 // velocities below this (radians per frame) stop the orbit
)

// OrbitAxis is one camera angle's velocity, decayed toward zero by a spring.
type OrbitAxis struct {
	Velocity float64 // radians per frame

	spring harmonica.Spring
	accel  float64 // the spring's own velocity while it animates Velocity toward 0
}

// NewOrbitAxis creates an axis whose decay is tuned for fps frames per second.
func NewOrbitAxis(fps float64) OrbitAxis {
	return OrbitAxis{
		spring: harmonica.NewSpring(harmonica.FPS(max(1, int(math.Round(fps)))), orbitFrequency, orbitDamping),
	}
}

// Step returns this frame's angle delta and decays the velocity.
func (a *OrbitAxis) Step() float64 {
	d := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	if math.Abs(a.Velocity) < orbitRest {
		a.Velocity, a.accel = 0, 0
	}
	return d
}

// Orbit keeps the camera turning after a drag is released.
type Orbit struct {
	Yaw, Pitch OrbitAxis
	fps        float64
}

// NewOrbit creates a resting orbit.
func NewOrbit(fps float64) *Orbit {
	return &Orbit{Yaw: NewOrbitAxis(fps), Pitch: NewOrbitAxis(fps), fps: fps}
}

// Fling sets the angular velocity in radians per frame.
func (o *Orbit) Fling(yaw, pitch float64) {
	o.Yaw.Velocity = yaw
	o.Pitch.Velocity = pitch
}

// Moving reports whether the orbit still has velocity.
func (o *Orbit) Moving() bool {
	return o.Yaw.Velocity != 0 || o.Pitch.Velocity != 0
}

// Step advances one frame and returns the angle deltas to apply.
func (o *Orbit) Step() (yaw, pitch float64) {
	return o.Yaw.Step(), o.Pitch.Step()
}

// Stop drops all velocity.
func (o *Orbit) Stop() {
	o.Yaw = NewOrbitAxis(o.fps)
	o.Pitch = NewOrbitAxis(o.fps)
}
