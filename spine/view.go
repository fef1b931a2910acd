// Package spine is the orchestration layer between a black-box skeletal
// animation engine and a flat 2D sprite renderer: a playback state
// machine (Controller) and a per-frame skeleton-to-sprite mapping
// (Presenter), owned together by a View.
package spine

import (
	"fmt"

	"github.com/chung-nguyen/devkit-spine/engine"
	"github.com/chung-nguyen/devkit-spine/logging"
	"github.com/chung-nguyen/devkit-spine/render"
)

// Config is the resolved configuration for one animation view.
type Config struct {
	// Source is the raw skeleton data; empty means ErrConfiguration.
	Source []byte
	// Scale multiplies skeleton units at load time (<= 0 means 1).
	Scale float64
	// DefaultAnimation is armed after initialization and re-armed when
	// a transient request completes. Empty means no idle animation.
	DefaultAnimation string
	// DefaultMix is the engine's cross-fade duration between animations.
	DefaultMix float64
	// DefaultLoop is tri-state: nil defaults to true, an explicit false
	// yields a non-looping default animation.
	DefaultLoop *bool
	// FrameRate is the host tick rate (<= 0 means 30).
	FrameRate float64
	// AutoStart begins playback immediately after initialization.
	AutoStart bool
}

// View couples a Controller and Presenter over one skeleton instance.
// One view owns its engine objects and sprite pool exclusively; all
// mutation happens synchronously inside Tick or a control call.
type View struct {
	eng     engine.Engine
	factory render.Factory

	data     engine.SkeletonData
	skeleton engine.Skeleton
	state    engine.AnimationState

	controller *Controller
	presenter  *Presenter
}

// NewView loads cfg and builds a fully initialized view.
func NewView(eng engine.Engine, factory render.Factory, cfg Config) (*View, error) {
	v := &View{eng: eng, factory: factory}
	if err := v.ResetAll(cfg); err != nil {
		return nil, err
	}
	return v, nil
}

// ResetAll discards the skeleton instance and sprite pool and rebuilds
// everything from cfg. This is the only operation that recreates
// sprites; hosts owning a concrete sprite backend should clear it
// first (e.g. render.Stage.Reset). Must not be called from inside a
// Tick.
func (v *View) ResetAll(cfg Config) error {
	if len(cfg.Source) == 0 {
		return fmt.Errorf("spine: reset: %w", ErrConfiguration)
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}

	data, err := v.eng.Load(cfg.Source, scale)
	if err != nil {
		return fmt.Errorf("spine: load skeleton: %w", err)
	}
	if cfg.DefaultAnimation != "" && !data.HasAnimation(cfg.DefaultAnimation) {
		return fmt.Errorf("spine: default animation %q: %w", cfg.DefaultAnimation, ErrAnimationNotFound)
	}

	skeleton, state, err := v.eng.NewInstance(data, cfg.DefaultMix)
	if err != nil {
		return fmt.Errorf("spine: new skeleton instance: %w", err)
	}

	// Eager slot pool: one sprite per region attachment, never created
	// during playback.
	slots := make(map[string]*SpriteSlot)
	for _, att := range data.RegionAttachments() {
		sprite, err := v.factory.NewSprite(att)
		if err != nil {
			return fmt.Errorf("spine: sprite for %s: %w", att.Key(), err)
		}
		sprite.SetVisible(false)
		slots[att.Key()] = &SpriteSlot{Attachment: att, Sprite: sprite}
	}

	defaultLoop := cfg.DefaultLoop == nil || *cfg.DefaultLoop
	controller := newController(data, state, cfg.DefaultAnimation, defaultLoop, cfg.FrameRate)
	state.SetListener(controller)

	if cfg.DefaultAnimation != "" {
		if err := state.SetAnimation(0, cfg.DefaultAnimation, defaultLoop); err != nil {
			return fmt.Errorf("spine: arm default %q: %w", cfg.DefaultAnimation, err)
		}
	}
	if cfg.AutoStart {
		controller.Reset()
	}

	v.data = data
	v.skeleton = skeleton
	v.state = state
	v.controller = controller
	v.presenter = newPresenter(skeleton, state, slots)

	logging.Info("skeleton initialized: %d animations, %d sprite slots, default=%q autostart=%v",
		len(data.Animations()), len(slots), cfg.DefaultAnimation, cfg.AutoStart)
	return nil
}

// Tick advances playback by deltaMs milliseconds. While paused or
// hidden no time advances; the last computed pose stays on the sprites.
func (v *View) Tick(deltaMs float64) {
	if !v.controller.Playing() || !v.controller.Visible() {
		return
	}
	v.presenter.Frame(deltaMs * 0.001 * v.controller.timeScale())
}

// StartAnimation plays a transient animation, replacing any in flight.
func (v *View) StartAnimation(name string, opts Options) error {
	return v.controller.Start(name, opts)
}

// StopAnimation halts playback and hides the view.
func (v *View) StopAnimation() { v.controller.Stop() }

// ResetAnimation returns to the default animation, or stops if none is
// configured.
func (v *View) ResetAnimation() { v.controller.Reset() }

// Pause freezes time without disarming the active animation.
func (v *View) Pause() { v.controller.Pause() }

// Resume continues playback where it left off.
func (v *View) Resume() { v.controller.Resume() }

// SetFramerate adjusts the host tick rate used for delta rescaling.
func (v *View) SetFramerate(fps float64) { v.controller.SetFramerate(fps) }

// GetDuration returns an animation's frame-rate-adjusted length in
// whole milliseconds.
func (v *View) GetDuration(name string) (int64, error) {
	return v.controller.Duration(name)
}

// Animations lists the animation names in the loaded data.
func (v *View) Animations() []string { return v.data.Animations() }

// Playing reports whether time advances on tick.
func (v *View) Playing() bool { return v.controller.Playing() }

// Visible reports whether the host should draw the view's sprites.
func (v *View) Visible() bool { return v.controller.Visible() }

// OnDefault reports whether the default animation is active.
func (v *View) OnDefault() bool { return v.controller.OnDefault() }

// Slots exposes the sprite slot pool keyed by attachment identity.
func (v *View) Slots() map[string]*SpriteSlot { return v.presenter.Slots() }
