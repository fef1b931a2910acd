package spine

import "github.com/chung-nguyen/devkit-spine/engine"

// Options configure a transient playback request.
type Options struct {
	// Iterations is how many full cycles to play (defaults to 1).
	// Ignored when Loop is set.
	Iterations int
	// Loop plays continuously until the request is stopped, reset or
	// replaced. OnComplete never fires for a looping request.
	Loop bool
	// OnComplete fires once, after the full iteration count is
	// exhausted.
	OnComplete func()
	// OnEvent fires once per timeline event while this request is
	// active.
	OnEvent func(ev engine.Event)
}

// AnimationRequest is one transient playback request. Starting a new
// request abandons the previous one without firing its callbacks.
type AnimationRequest struct {
	Name       string
	Iterations int
	Loop       bool

	onComplete func()
	onEvent    func(ev engine.Event)
}

func newRequest(name string, opts Options) *AnimationRequest {
	iterations := opts.Iterations
	if iterations < 1 {
		iterations = 1
	}
	return &AnimationRequest{
		Name:       name,
		Iterations: iterations,
		Loop:       opts.Loop,
		onComplete: opts.OnComplete,
		onEvent:    opts.OnEvent,
	}
}
