package spine

import (
	"fmt"
	"math"

	"github.com/chung-nguyen/devkit-spine/engine"
	"github.com/chung-nguyen/devkit-spine/logging"
)

// The engine advances animation time in units of seconds at a 30 ticks
// per second base rate; deltas from hosts running at another rate are
// rescaled by engineBaseRate/frameRate.
const (
	engineBaseRate   = 30.0
	defaultFrameRate = 30.0
)

// mode is the playback state. Exactly one of stopped / default-looping /
// transient holds at any time.
type mode int

const (
	modeStopped mode = iota
	modeDefault
	modeTransient
)

func (m mode) String() string {
	switch m {
	case modeDefault:
		return "default"
	case modeTransient:
		return "transient"
	default:
		return "stopped"
	}
}

// Controller owns the playback state machine for one view: which
// animation is armed, remaining iterations, pause state and pending
// callbacks. It is the engine's Listener for completion and timeline
// events.
type Controller struct {
	data  engine.SkeletonData
	state engine.AnimationState

	mode    mode
	request *AnimationRequest // non-nil iff mode == modeTransient

	playing   bool
	visible   bool
	frameRate float64

	defaultName string
	defaultLoop bool
}

func newController(data engine.SkeletonData, state engine.AnimationState, defaultName string, defaultLoop bool, frameRate float64) *Controller {
	c := &Controller{
		data:        data,
		state:       state,
		defaultName: defaultName,
		defaultLoop: defaultLoop,
	}
	c.SetFramerate(frameRate)
	return c
}

// Start arms a transient animation, replacing any request in flight.
// The replaced request's callbacks never fire.
func (c *Controller) Start(name string, opts Options) error {
	if !c.data.HasAnimation(name) {
		return fmt.Errorf("spine: start %q: %w", name, ErrAnimationNotFound)
	}
	req := newRequest(name, opts)
	if err := c.state.SetAnimation(0, name, req.Loop); err != nil {
		return fmt.Errorf("spine: start %q: %w", name, err)
	}
	c.mode = modeTransient
	c.request = req
	c.visible = true
	c.playing = true
	logging.Debug("start %q iterations=%d loop=%v", name, req.Iterations, req.Loop)
	return nil
}

// Stop halts playback and hides the view. Any transient request is
// discarded without firing its callbacks.
func (c *Controller) Stop() {
	c.mode = modeStopped
	c.request = nil
	c.playing = false
	c.visible = false
	c.state.ClearTrack(0)
}

// Reset returns to the default animation if one is configured,
// otherwise stops. This is the common return-to-idle operation invoked
// on completion.
func (c *Controller) Reset() {
	c.request = nil
	if c.defaultName == "" {
		c.Stop()
		return
	}
	// Default name is validated at initialization.
	_ = c.state.SetAnimation(0, c.defaultName, c.defaultLoop)
	c.mode = modeDefault
	c.visible = true
	c.playing = true
}

// Pause stops time from advancing without altering which animation is
// armed. Pending iterations and callbacks survive a pause.
func (c *Controller) Pause() {
	c.playing = false
}

// Resume continues playback exactly where it left off.
func (c *Controller) Resume() {
	if c.mode == modeStopped {
		return
	}
	c.playing = true
}

// SetFramerate sets the host tick rate used to rescale deltas. Values
// <= 0 fall back to 30.
func (c *Controller) SetFramerate(fps float64) {
	if fps <= 0 {
		fps = defaultFrameRate
	}
	c.frameRate = fps
}

// Duration returns an animation's length in whole milliseconds,
// adjusted for the configured frame rate.
func (c *Controller) Duration(name string) (int64, error) {
	seconds, ok := c.data.Duration(name)
	if !ok {
		return 0, fmt.Errorf("spine: duration %q: %w", name, ErrAnimationNotFound)
	}
	return int64(math.Round(seconds * 1000 * engineBaseRate / c.frameRate)), nil
}

// Playing reports whether time advances on tick.
func (c *Controller) Playing() bool { return c.playing }

// Visible reports whether the view should be drawn.
func (c *Controller) Visible() bool { return c.visible }

// OnDefault reports whether the default animation is the active one.
func (c *Controller) OnDefault() bool { return c.mode == modeDefault }

// Request returns the transient request in flight, or nil.
func (c *Controller) Request() *AnimationRequest { return c.request }

// timeScale converts a host-seconds delta into engine time units.
func (c *Controller) timeScale() float64 {
	return engineBaseRate / c.frameRate
}

// OnComplete handles the engine's track loop boundary callback.
func (c *Controller) OnComplete(track, loopCount int) {
	if track != 0 {
		return
	}
	switch c.mode {
	case modeDefault:
		// A non-looping default re-arms itself; a looping one is handled
		// natively by the engine.
		if !c.defaultLoop {
			c.Reset()
		}
	case modeTransient:
		req := c.request
		if req == nil || req.Loop {
			return
		}
		req.Iterations--
		if req.Iterations > 0 {
			// One more non-looping cycle of the same animation.
			_ = c.state.SetAnimation(0, req.Name, false)
			return
		}
		if req.onComplete != nil {
			req.onComplete()
		}
		// The callback may have started a new request; only reset if
		// this one is still current.
		if c.request == req {
			c.Reset()
		}
	}
}

// OnEvent forwards timeline events to the active transient request.
// Default-animation events have no consumer and are swallowed.
func (c *Controller) OnEvent(track int, ev engine.Event) {
	if track != 0 || c.mode != modeTransient {
		return
	}
	if c.request != nil && c.request.onEvent != nil {
		c.request.onEvent(ev)
	}
}
