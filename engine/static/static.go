// Package static is a deliberately minimal skeleton engine: skeleton
// poses are the setup pose (no keyframe interpolation) while completion
// and timeline events are driven by animation duration and event-time
// metadata. It lets the playback layer run end to end without a full
// keyframe engine, for previewing and integration tests.
package static

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chung-nguyen/devkit-spine/common"
	"github.com/chung-nguyen/devkit-spine/engine"
	"github.com/chung-nguyen/devkit-spine/skeletondata"
)

// Engine implements engine.Engine over skeletondata metadata.
type Engine struct{}

// New creates a static engine.
func New() *Engine { return &Engine{} }

// Load parses skeleton JSON metadata.
func (*Engine) Load(source []byte, scale float64) (engine.SkeletonData, error) {
	return skeletondata.Parse(source, scale)
}

// NewInstance builds a setup-pose skeleton and a clock-driven animation
// state.
func (*Engine) NewInstance(data engine.SkeletonData, mix float64) (engine.Skeleton, engine.AnimationState, error) {
	d, ok := data.(*skeletondata.Data)
	if !ok {
		return nil, nil, fmt.Errorf("static: unsupported skeleton data %T", data)
	}
	// mix is accepted for interface parity; a setup-pose engine has
	// nothing to cross-fade.
	_ = mix
	return newSkeleton(d), newState(d), nil
}

type skeleton struct {
	data  *skeletondata.Data
	bones map[string]engine.BoneTransform
	order []engine.DrawEntry
}

func newSkeleton(d *skeletondata.Data) *skeleton {
	return &skeleton{data: d}
}

// UpdateWorldTransform composes each bone's setup-pose local transform
// with its parent's world transform, parents first, then rebuilds the
// draw order from the slots.
func (s *skeleton) UpdateWorldTransform() {
	s.bones = make(map[string]engine.BoneTransform, len(s.data.Bones()))
	for _, b := range s.data.Bones() {
		world := engine.BoneTransform{
			WorldX:        b.X,
			WorldY:        b.Y,
			WorldRotation: b.Rotation,
			WorldScaleX:   b.ScaleX,
			WorldScaleY:   b.ScaleY,
		}
		if parent, ok := s.bones[b.Parent]; ok {
			local := parent.Matrix.Mul2x1(mgl64.Vec2{b.X, b.Y})
			world.WorldX = parent.WorldX + local.X()
			world.WorldY = parent.WorldY + local.Y()
			world.WorldRotation = parent.WorldRotation + b.Rotation
			world.WorldScaleX = parent.WorldScaleX * b.ScaleX
			world.WorldScaleY = parent.WorldScaleY * b.ScaleY
		}
		world.Matrix = rotationScale(world.WorldRotation, world.WorldScaleX, world.WorldScaleY)
		s.bones[b.Name] = world
	}

	s.order = s.order[:0]
	for _, slot := range s.data.Slots() {
		if slot.Attachment == "" {
			continue
		}
		att, ok := s.data.Attachment(slot.Name, slot.Attachment)
		if !ok {
			continue
		}
		bone, ok := s.bones[slot.Bone]
		if !ok {
			continue
		}
		s.order = append(s.order, engine.DrawEntry{Attachment: att, Bone: bone})
	}
}

func (s *skeleton) DrawOrder() []engine.DrawEntry { return s.order }

// rotationScale builds the 2x2 world matrix for a rotation in degrees
// followed by a non-uniform scale.
func rotationScale(deg, sx, sy float64) mgl64.Mat2 {
	rad := common.DegToRad(deg)
	cos, sin := math.Cos(rad), math.Sin(rad)
	// Column-major: [a c; b d] with a=cos*sx, b=-sin*sy, c=sin*sx, d=cos*sy.
	return mgl64.Mat2{cos * sx, sin * sx, -sin * sy, cos * sy}
}

type state struct {
	data     *skeletondata.Data
	listener engine.Listener

	active   bool
	name     string
	loop     bool
	duration float64
	events   []skeletondata.TimedEvent

	clock      float64
	eventIdx   int
	completed  bool
	generation int
}

func newState(d *skeletondata.Data) *state {
	return &state{data: d}
}

// SetAnimation arms an animation on a track and resets the clock. Only
// track 0 is supported.
func (s *state) SetAnimation(track int, name string, loop bool) error {
	if track != 0 {
		return fmt.Errorf("static: track %d not supported", track)
	}
	duration, ok := s.data.Duration(name)
	if !ok {
		return fmt.Errorf("static: set animation %q: animation not found", name)
	}
	if duration <= 0 {
		// A keyless animation still occupies one engine frame.
		duration = 1.0 / 30.0
	}
	s.active = true
	s.name = name
	s.loop = loop
	s.duration = duration
	s.events = s.data.Events(name)
	s.clock = 0
	s.eventIdx = 0
	s.completed = false
	s.generation++
	return nil
}

func (s *state) ClearTrack(track int) {
	if track != 0 {
		return
	}
	s.active = false
}

// AdvanceTime accumulates the clock, firing timeline events as their
// timestamps are crossed and the completion callback at each duration
// boundary (once for a non-looping arm).
func (s *state) AdvanceTime(dt float64) {
	if !s.active || dt <= 0 {
		return
	}
	s.clock += dt
	s.fireEvents()

	loops := 0
	for s.active && s.clock >= s.duration {
		gen := s.generation
		if s.loop {
			s.clock -= s.duration
			s.eventIdx = 0
			loops++
			s.notifyComplete(loops)
			if s.generation != gen {
				return // re-armed by the listener
			}
			s.fireEvents()
			continue
		}
		if s.completed {
			s.clock = s.duration
			return
		}
		s.completed = true
		s.notifyComplete(1)
		if s.generation != gen {
			return
		}
		s.clock = s.duration
		return
	}
}

func (s *state) fireEvents() {
	for s.eventIdx < len(s.events) && s.events[s.eventIdx].Time <= math.Min(s.clock, s.duration) {
		ev := s.events[s.eventIdx]
		s.eventIdx++
		if s.listener != nil {
			s.listener.OnEvent(0, ev.Event)
		}
	}
}

func (s *state) notifyComplete(loopCount int) {
	if s.listener != nil {
		s.listener.OnComplete(0, loopCount)
	}
}

// Apply is a no-op: the pose is always the setup pose.
func (s *state) Apply(engine.Skeleton) {}

func (s *state) SetListener(l engine.Listener) { s.listener = l }
