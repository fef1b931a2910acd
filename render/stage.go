package render

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/chung-nguyen/devkit-spine/engine"
)

// Stage owns an ebiten-backed sprite pool and draws it sorted by
// z-index. It implements Factory so a view can pre-allocate its slots
// directly against the stage.
type Stage struct {
	imagesPath string
	sprites    []*stageSprite
}

// NewStage creates a stage that resolves attachment images relative to
// imagesPath.
func NewStage(imagesPath string) *Stage {
	return &Stage{imagesPath: imagesPath}
}

// NewSprite creates one sprite for a region attachment, loading its
// image by the attachment's path (falling back to its name).
func (s *Stage) NewSprite(att engine.Attachment) (Sprite, error) {
	name := att.Path
	if name == "" {
		name = att.Name
	}
	img, err := LoadImage(filepath.Join(s.imagesPath, name))
	if err != nil {
		return nil, fmt.Errorf("render: sprite %s: %w", att.Key(), err)
	}
	sp := &stageSprite{img: img}
	sp.naturalW = float64(img.Bounds().Dx())
	sp.naturalH = float64(img.Bounds().Dy())
	s.sprites = append(s.sprites, sp)
	return sp, nil
}

// Reset discards the sprite pool. Call before rebuilding a view so the
// stage does not keep drawing orphaned sprites.
func (s *Stage) Reset() {
	s.sprites = nil
}

// Draw renders all visible sprites back-to-front, offset by (dx, dy).
func (s *Stage) Draw(screen *ebiten.Image, dx, dy float64) {
	if screen == nil {
		return
	}
	visible := make([]*stageSprite, 0, len(s.sprites))
	for _, sp := range s.sprites {
		if sp.visible {
			visible = append(visible, sp)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].z < visible[j].z })

	for _, sp := range visible {
		sp.draw(screen, dx, dy)
	}
}

type stageSprite struct {
	img      *ebiten.Image
	naturalW float64
	naturalH float64

	anchorX  float64
	anchorY  float64
	x        float64
	y        float64
	rotation float64
	w        float64
	h        float64
	z        int
	visible  bool
}

func (sp *stageSprite) SetAnchor(x, y float64)      { sp.anchorX, sp.anchorY = x, y }
func (sp *stageSprite) SetPosition(x, y float64)    { sp.x, sp.y = x, y }
func (sp *stageSprite) SetRotation(radians float64) { sp.rotation = radians }
func (sp *stageSprite) SetSize(w, h float64)        { sp.w, sp.h = w, h }
func (sp *stageSprite) SetZ(z int)                  { sp.z = z }
func (sp *stageSprite) SetVisible(visible bool)     { sp.visible = visible }
func (sp *stageSprite) Visible() bool               { return sp.visible }

func (sp *stageSprite) NaturalSize() (float64, float64) {
	return sp.naturalW, sp.naturalH
}

func (sp *stageSprite) draw(screen *ebiten.Image, dx, dy float64) {
	if sp.img == nil || sp.naturalW <= 0 || sp.naturalH <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sp.w/sp.naturalW, sp.h/sp.naturalH)
	// Rotate about the anchor, then place the anchor at position+anchor.
	op.GeoM.Translate(-sp.anchorX, -sp.anchorY)
	op.GeoM.Rotate(sp.rotation)
	op.GeoM.Translate(sp.x+sp.anchorX+dx, sp.y+sp.anchorY+dy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sp.img, op)
}
