// Package engine defines the narrow seam between the playback layer and
// the skeletal animation engine. The engine itself (bone hierarchy
// solving, keyframe interpolation) lives behind these interfaces; the
// playback layer only consumes its per-frame output.
package engine

import "github.com/go-gl/mathgl/mgl64"

// AttachmentKind classifies what a skeleton attachment renders as.
type AttachmentKind int

const (
	// KindRegion is a textured quad; the only kind the presenter draws.
	KindRegion AttachmentKind = iota
	// KindBoundingBox is a non-renderable collision shape.
	KindBoundingBox
	// KindOther covers attachment types this layer ignores.
	KindOther
)

// Attachment is a skeleton attachment's immutable setup data. Positions
// and sizes are in skeleton units, already multiplied by the load scale.
type Attachment struct {
	Skin string
	Slot string
	Name string
	Path string

	X        float64
	Y        float64
	Rotation float64 // degrees
	Width    float64
	Height   float64

	Kind AttachmentKind
}

// Key is the stable identity used to address the sprite slot pool.
func (a Attachment) Key() string {
	return a.Skin + "/" + a.Slot + "/" + a.Name
}

// BoneTransform is one bone's resolved world transform for the current
// frame. Matrix is the combined 2x2 rotation/scale matrix; WorldRotation
// is kept in degrees because that is what the engine reports.
type BoneTransform struct {
	WorldX        float64
	WorldY        float64
	WorldRotation float64
	WorldScaleX   float64
	WorldScaleY   float64
	Matrix        mgl64.Mat2
}

// DrawEntry is one element of the engine's draw order, back-to-front.
type DrawEntry struct {
	Attachment Attachment
	Bone       BoneTransform
}

// Event is an engine timeline event's payload.
type Event struct {
	Name   string
	Int    int
	Float  float64
	String string
}

// Listener receives engine callbacks. OnComplete fires once per track
// loop boundary, OnEvent once per timeline event crossed.
type Listener interface {
	OnComplete(track, loopCount int)
	OnEvent(track int, ev Event)
}

// SkeletonData is parsed, immutable skeleton source data shared by all
// instances built from it.
type SkeletonData interface {
	HasAnimation(name string) bool
	// Duration reports an animation's length in engine seconds.
	Duration(name string) (float64, bool)
	// Animations lists animation names in a stable order.
	Animations() []string
	// RegionAttachments enumerates every region attachment in the data,
	// for eager sprite slot pre-allocation.
	RegionAttachments() []Attachment
}

// Skeleton is a mutable skeleton instance.
type Skeleton interface {
	// UpdateWorldTransform resolves the bone hierarchy root-to-leaf.
	UpdateWorldTransform()
	// DrawOrder returns the currently visible attachments, back-to-front.
	// Valid until the next UpdateWorldTransform.
	DrawOrder() []DrawEntry
}

// AnimationState drives playback on a skeleton. This layer uses only
// track 0.
type AnimationState interface {
	SetAnimation(track int, name string, loop bool) error
	ClearTrack(track int)
	// AdvanceTime moves the state clock forward by dt engine seconds.
	AdvanceTime(dt float64)
	Apply(sk Skeleton)
	SetListener(l Listener)
}

// Engine loads skeleton data and builds instances from it.
type Engine interface {
	Load(source []byte, scale float64) (SkeletonData, error)
	NewInstance(data SkeletonData, mix float64) (Skeleton, AnimationState, error)
}
