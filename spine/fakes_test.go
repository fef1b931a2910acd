package spine

import (
	"fmt"
	"sort"

	"github.com/chung-nguyen/devkit-spine/engine"
	"github.com/chung-nguyen/devkit-spine/render"
)

type setCall struct {
	name string
	loop bool
}

type fakeData struct {
	durations   map[string]float64
	attachments []engine.Attachment
}

func (d *fakeData) HasAnimation(name string) bool {
	_, ok := d.durations[name]
	return ok
}

func (d *fakeData) Duration(name string) (float64, bool) {
	dur, ok := d.durations[name]
	return dur, ok
}

func (d *fakeData) Animations() []string {
	names := make([]string, 0, len(d.durations))
	for name := range d.durations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *fakeData) RegionAttachments() []engine.Attachment {
	out := make([]engine.Attachment, 0, len(d.attachments))
	for _, a := range d.attachments {
		if a.Kind == engine.KindRegion {
			out = append(out, a)
		}
	}
	return out
}

type fakeState struct {
	listener engine.Listener
	sets     []setCall
	advanced []float64
	applied  int
	cleared  int
}

func (s *fakeState) SetAnimation(track int, name string, loop bool) error {
	if track != 0 {
		return fmt.Errorf("unexpected track %d", track)
	}
	s.sets = append(s.sets, setCall{name: name, loop: loop})
	return nil
}

func (s *fakeState) ClearTrack(track int)          { s.cleared++ }
func (s *fakeState) AdvanceTime(dt float64)        { s.advanced = append(s.advanced, dt) }
func (s *fakeState) Apply(engine.Skeleton)         { s.applied++ }
func (s *fakeState) SetListener(l engine.Listener) { s.listener = l }

type fakeSkeleton struct {
	order   []engine.DrawEntry
	updated int
}

func (s *fakeSkeleton) UpdateWorldTransform()         { s.updated++ }
func (s *fakeSkeleton) DrawOrder() []engine.DrawEntry { return s.order }

type fakeSprite struct {
	anchorX, anchorY float64
	x, y             float64
	rotation         float64
	w, h             float64
	z                int
	visible          bool
}

func (sp *fakeSprite) SetAnchor(x, y float64)          { sp.anchorX, sp.anchorY = x, y }
func (sp *fakeSprite) SetPosition(x, y float64)        { sp.x, sp.y = x, y }
func (sp *fakeSprite) SetRotation(radians float64)     { sp.rotation = radians }
func (sp *fakeSprite) SetSize(w, h float64)            { sp.w, sp.h = w, h }
func (sp *fakeSprite) SetZ(z int)                      { sp.z = z }
func (sp *fakeSprite) SetVisible(visible bool)         { sp.visible = visible }
func (sp *fakeSprite) Visible() bool                   { return sp.visible }
func (sp *fakeSprite) NaturalSize() (float64, float64) { return sp.w, sp.h }

type fakeFactory struct {
	sprites map[string]*fakeSprite
	fail    bool
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{sprites: map[string]*fakeSprite{}}
}

func (f *fakeFactory) NewSprite(att engine.Attachment) (render.Sprite, error) {
	if f.fail {
		return nil, fmt.Errorf("sprite creation failed")
	}
	sp := &fakeSprite{}
	f.sprites[att.Key()] = sp
	return sp, nil
}

type fakeEngine struct {
	data     *fakeData
	skeleton *fakeSkeleton
	state    *fakeState
}

func (e *fakeEngine) Load(source []byte, scale float64) (engine.SkeletonData, error) {
	return e.data, nil
}

func (e *fakeEngine) NewInstance(data engine.SkeletonData, mix float64) (engine.Skeleton, engine.AnimationState, error) {
	return e.skeleton, e.state, nil
}
