// Package render defines the sprite surface the presenter writes to and
// provides an ebiten-backed implementation of it.
package render

import "github.com/chung-nguyen/devkit-spine/engine"

// Sprite is one pre-created 2D image primitive. The presenter rewrites
// placement every frame; visibility is the only field it toggles for
// sprites that are not in the current draw order.
type Sprite interface {
	SetAnchor(x, y float64)
	SetPosition(x, y float64)
	SetRotation(radians float64)
	SetSize(w, h float64)
	SetZ(z int)
	SetVisible(visible bool)
	Visible() bool
	// NaturalSize is the source image size, cached at creation.
	NaturalSize() (w, h float64)
}

// Factory creates sprites for region attachments at setup time. The
// playback layer never creates sprites during a frame.
type Factory interface {
	NewSprite(att engine.Attachment) (Sprite, error)
}
