// Package motion drives the scripted path of the animated scene object.
//
// The path is a closed loop made of straight walks and arcs, advanced one
// discrete step per rendered frame. Positions handed to the target are
// expressed in the object's rotated local frame: the object composes its
// model matrix as R·S·T(p), so rotXZ(current, a) under a rotation of a about
// +Y lands the object at S·current in world space.
package motion

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/config"
	"github.com/Faultbox/castleview/internal/logger"
)

// Target is the object moved by the animator.
type Target interface {
	SetPosition(p mgl32.Vec3)
	SetRotation(q mgl32.Quat)
}

// Phase identifies one leg of the path.
type Phase int

const (
	PhaseWalkOut    Phase = iota // straight along +Z
	PhaseTurnIn                  // quarter arc around the center
	PhaseCross                   // straight along +X
	PhaseSpin                    // pause, then half turn in place
	PhaseReturn                  // straight along -X
	PhaseTurnBack                // quarter arc back around the center
	PhaseWalkHome                // straight along -Z
	PhaseTurnAround              // half turn in place back to the start heading
	phaseCount
)

var phaseNames = [phaseCount]string{
	"walk-out", "turn-in", "cross", "spin", "return", "turn-back", "walk-home", "turn-around",
}

func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Params shapes the path. All distances are in the object's local frame.
type Params struct {
	CenterOffset mgl32.Vec3 // arc center relative to the initial position
	Radius       float32
	Step         int    // distance covered per frame on straight legs
	Limits       [4]int // cumulative walked distance closing each straight leg
	ArcSteps     float32
	Pause        int // frames to wait before the spin
}

// DefaultParams returns the stock dinosaur path.
func DefaultParams() Params {
	return Params{
		CenterOffset: mgl32.Vec3{200, 0, 500},
		Radius:       200,
		Step:         2,
		Limits:       [4]int{500, 800, 1100, 1600},
		ArcSteps:     100,
		Pause:        50,
	}
}

// ParamsFrom converts the configured path.
func ParamsFrom(c config.PathConfig) Params {
	return Params{
		CenterOffset: c.CenterOffset,
		Radius:       c.Radius,
		Step:         c.Step,
		Limits:       c.Limits,
		ArcSteps:     c.ArcSteps,
		Pause:        c.Pause,
	}
}

// CycleFrames returns how many Advance calls one loop takes. A leg whose
// limit is not a multiple of Step overshoots it, and the next leg starts
// from the overshoot.
func (p Params) CycleFrames() int {
	frames, walked := 0, 0
	for _, limit := range p.Limits {
		if walked >= limit {
			continue
		}
		n := (limit - walked + p.Step - 1) / p.Step
		frames += n
		walked += n * p.Step
	}
	arcs := 4 * int(math32.Ceil(p.ArcSteps))
	return frames + arcs + p.Pause
}

// arc is one (progress, total) pair.
type arc struct {
	progress float32
	total    float32
}

func (a *arc) pending() bool { return a.progress < a.total }

func (a *arc) next() float32 {
	a.progress++
	return a.progress / a.total
}

// Animator is the path state machine.
type Animator struct {
	target  Target
	params  Params
	initial mgl32.Vec3
	center  mgl32.Vec3

	phase     Phase
	walked    int
	stoneWait int
	arcs      [4]arc
	current   mgl32.Vec3
	cycles    int
}

// NewAnimator creates an animator starting at initial, which must be the
// target's current position.
func NewAnimator(target Target, initial mgl32.Vec3, params Params) *Animator {
	a := &Animator{
		target:  target,
		params:  params,
		initial: initial,
		center:  initial.Add(params.CenterOffset),
	}
	a.rewind()
	return a
}

type transition struct {
	guard func(a *Animator) bool
	step  func(a *Animator)
}

var transitions = [phaseCount]transition{
	PhaseWalkOut:    {guard: walkedBelow(0), step: (*Animator).walkOut},
	PhaseTurnIn:     {guard: arcPending(0), step: (*Animator).turnIn},
	PhaseCross:      {guard: walkedBelow(1), step: (*Animator).cross},
	PhaseSpin:       {guard: arcPending(1), step: (*Animator).spin},
	PhaseReturn:     {guard: walkedBelow(2), step: (*Animator).back},
	PhaseTurnBack:   {guard: arcPending(2), step: (*Animator).turnBack},
	PhaseWalkHome:   {guard: walkedBelow(3), step: (*Animator).walkHome},
	PhaseTurnAround: {guard: arcPending(3), step: (*Animator).turnAround},
}

func walkedBelow(leg int) func(*Animator) bool {
	return func(a *Animator) bool { return a.walked < a.params.Limits[leg] }
}

func arcPending(i int) func(*Animator) bool {
	return func(a *Animator) bool { return a.arcs[i].pending() }
}

// Advance moves the target by one frame. When the last phase is exhausted
// the machine resets and the first phase runs within the same call.
func (a *Animator) Advance() {
	if a.stepFrom(a.phase) {
		return
	}
	a.rewind()
	a.cycles++
	logger.Debug("path cycle complete", zap.Int("cycles", a.cycles))
	a.stepFrom(PhaseWalkOut)
}

func (a *Animator) stepFrom(p Phase) bool {
	for ; p < phaseCount; p++ {
		t := transitions[p]
		if t.guard(a) {
			a.phase = p
			t.step(a)
			return true
		}
	}
	return false
}

// rewind puts the target back at the start of the path.
func (a *Animator) rewind() {
	a.phase = PhaseWalkOut
	a.walked = 0
	a.stoneWait = 0
	for i := range a.arcs {
		a.arcs[i] = arc{total: a.params.ArcSteps}
	}
	a.current = a.initial
	a.target.SetRotation(mgl32.QuatIdent())
	a.target.SetPosition(a.initial)
}

func (a *Animator) stride() float32 {
	a.walked += a.params.Step
	return float32(a.params.Step)
}

// onCircle returns the point at deg on the arc circle.
func (a *Animator) onCircle(deg float32) mgl32.Vec3 {
	r := mgl32.DegToRad(deg)
	return a.center.Add(mgl32.Vec3{-a.params.Radius * math32.Cos(r), 0, a.params.Radius * math32.Sin(r)})
}

// face places the target so that it heads deg degrees about +Y.
func (a *Animator) face(p mgl32.Vec3, deg float32) {
	a.target.SetPosition(RotXZ(p, deg))
	a.target.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(deg), mgl32.Vec3{0, 1, 0}))
}

func (a *Animator) walkOut() {
	a.current = a.current.Add(mgl32.Vec3{0, 0, a.stride()})
	a.target.SetPosition(a.current)
}

func (a *Animator) turnIn() {
	deg := 90 * a.arcs[0].next()
	a.current = a.onCircle(deg)
	a.face(a.current, deg)
}

func (a *Animator) cross() {
	a.current = a.current.Add(mgl32.Vec3{a.stride(), 0, 0})
	a.face(a.current, 90)
}

func (a *Animator) spin() {
	if a.stoneWait < a.params.Pause {
		a.stoneWait++
		return
	}
	a.face(a.current, 90+180*a.arcs[1].next())
}

func (a *Animator) back() {
	a.current = a.current.Sub(mgl32.Vec3{a.stride(), 0, 0})
	a.face(a.current, 270)
}

func (a *Animator) turnBack() {
	t := a.arcs[2].next()
	a.current = a.onCircle(90 - 90*t)
	a.face(a.current, 270-90*t)
}

func (a *Animator) walkHome() {
	a.current = a.current.Sub(mgl32.Vec3{0, 0, a.stride()})
	a.face(a.current, 180)
}

func (a *Animator) turnAround() {
	a.face(a.current, 180+180*a.arcs[3].next())
}

// Phase returns the phase that ran on the last Advance.
func (a *Animator) Phase() Phase { return a.phase }

// Walked returns the distance covered on straight legs this cycle.
func (a *Animator) Walked() int { return a.walked }

// Current returns the unrotated path point.
func (a *Animator) Current() mgl32.Vec3 { return a.current }

// Cycles returns how many full loops have completed.
func (a *Animator) Cycles() int { return a.cycles }

// Waiting reports whether the target is pausing before the spin.
func (a *Animator) Waiting() bool {
	return a.phase == PhaseSpin && a.arcs[1].progress == 0
}

// RotXZ rotates p by deg degrees in the XZ plane:
// x' = x·cos a − z·sin a, z' = z·cos a + x·sin a.
func RotXZ(p mgl32.Vec3, deg float32) mgl32.Vec3 {
	s, c := math32.Sincos(mgl32.DegToRad(deg))
	return mgl32.Vec3{
		-p.Z()*s + p.X()*c,
		p.Y(),
		p.Z()*c + p.X()*s,
	}
}
