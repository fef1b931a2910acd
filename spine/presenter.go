package spine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chung-nguyen/devkit-spine/common"
	"github.com/chung-nguyen/devkit-spine/engine"
	"github.com/chung-nguyen/devkit-spine/render"
)

// SpriteSlot pairs a region attachment with the sprite pre-created for
// it. Slots are built once at (re)initialization; per-frame mutation is
// limited to sprite placement and visibility.
type SpriteSlot struct {
	Attachment engine.Attachment
	Sprite     render.Sprite
}

// Presenter maps the skeleton engine's per-frame output onto the sprite
// slot pool.
type Presenter struct {
	skeleton engine.Skeleton
	state    engine.AnimationState
	slots    map[string]*SpriteSlot
}

func newPresenter(skeleton engine.Skeleton, state engine.AnimationState, slots map[string]*SpriteSlot) *Presenter {
	return &Presenter{skeleton: skeleton, state: state, slots: slots}
}

// Slots exposes the slot pool keyed by attachment identity.
func (p *Presenter) Slots() map[string]*SpriteSlot { return p.slots }

// Frame advances the engine by dt engine seconds and rewrites the
// sprite pool from the resulting pose. Draw order can change every
// frame, so every slot is hidden first and only slots reached through
// the draw order become visible again.
func (p *Presenter) Frame(dt float64) {
	p.state.AdvanceTime(dt)
	p.state.Apply(p.skeleton)
	p.skeleton.UpdateWorldTransform()

	for _, slot := range p.slots {
		slot.Sprite.SetVisible(false)
	}

	for i, entry := range p.skeleton.DrawOrder() {
		att := entry.Attachment
		if att.Kind != engine.KindRegion {
			continue
		}
		slot := p.slots[att.Key()]
		if slot == nil {
			// Slots are pre-allocated for every region attachment at
			// setup; a miss is a configuration error.
			panic("spine: no sprite slot for attachment " + att.Key())
		}
		bone := entry.Bone

		world := bone.Matrix.Mul2x1(mgl64.Vec2{att.X, att.Y}).
			Add(mgl64.Vec2{bone.WorldX, bone.WorldY})
		w := att.Width * bone.WorldScaleX
		h := att.Height * bone.WorldScaleY
		// Sign flip: the renderer winds rotation the opposite way.
		rotation := -common.DegToRad(bone.WorldRotation + att.Rotation)

		sp := slot.Sprite
		sp.SetSize(w, h)
		sp.SetAnchor(w/2, h/2)
		sp.SetPosition(world.X()-w/2, world.Y()-h/2)
		sp.SetRotation(rotation)
		sp.SetZ(i)
		sp.SetVisible(true)
	}
}
