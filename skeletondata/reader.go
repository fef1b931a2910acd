// Package skeletondata reads the metadata this layer needs out of
// skeleton JSON: animation durations and timeline events, setup-pose
// bones and slots, and the region attachments the sprite pool is
// pre-allocated from. Keyframe curves are left to the skeleton engine.
package skeletondata

import (
	"fmt"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/chung-nguyen/devkit-spine/engine"
)

// Bone is a bone's setup-pose local transform.
type Bone struct {
	Name     string
	Parent   string
	X        float64
	Y        float64
	Rotation float64 // degrees
	ScaleX   float64
	ScaleY   float64
}

// Slot binds a bone to its setup-pose attachment.
type Slot struct {
	Name       string
	Bone       string
	Attachment string
}

// TimedEvent is a timeline event with its trigger time in seconds.
type TimedEvent struct {
	Time  float64
	Event engine.Event
}

// Animation is the per-animation metadata kept after parsing.
type Animation struct {
	Name     string
	Duration float64 // seconds
	Events   []TimedEvent
}

// Data is parsed skeleton metadata. It implements engine.SkeletonData.
type Data struct {
	bones       []Bone
	slots       []Slot
	attachments []engine.Attachment
	// byslot indexes attachments by slot name + attachment name, with
	// the default skin taking priority over other skins.
	bySlot     map[string]int
	animations map[string]*Animation
	names      []string
}

// Parse reads skeleton JSON. Positions and sizes are multiplied by
// scale at load time, matching how the engine applies its load scale.
func Parse(source []byte, scale float64) (*Data, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("skeletondata: empty source")
	}
	if !gjson.ValidBytes(source) {
		return nil, fmt.Errorf("skeletondata: invalid skeleton json")
	}
	if scale <= 0 {
		scale = 1
	}

	d := &Data{
		bySlot:     map[string]int{},
		animations: map[string]*Animation{},
	}

	gjson.GetBytes(source, "bones").ForEach(func(_, b gjson.Result) bool {
		bone := Bone{
			Name:     b.Get("name").String(),
			Parent:   b.Get("parent").String(),
			X:        b.Get("x").Float() * scale,
			Y:        b.Get("y").Float() * scale,
			Rotation: b.Get("rotation").Float(),
			ScaleX:   floatOr(b.Get("scaleX"), 1),
			ScaleY:   floatOr(b.Get("scaleY"), 1),
		}
		d.bones = append(d.bones, bone)
		return true
	})

	gjson.GetBytes(source, "slots").ForEach(func(_, s gjson.Result) bool {
		d.slots = append(d.slots, Slot{
			Name:       s.Get("name").String(),
			Bone:       s.Get("bone").String(),
			Attachment: s.Get("attachment").String(),
		})
		return true
	})

	d.parseSkins(gjson.GetBytes(source, "skins"), scale)

	gjson.GetBytes(source, "animations").ForEach(func(name, anim gjson.Result) bool {
		a := &Animation{
			Name:     name.String(),
			Duration: maxTime(anim),
		}
		anim.Get("events").ForEach(func(_, ev gjson.Result) bool {
			a.Events = append(a.Events, TimedEvent{
				Time: ev.Get("time").Float(),
				Event: engine.Event{
					Name:   ev.Get("name").String(),
					Int:    int(ev.Get("int").Int()),
					Float:  ev.Get("float").Float(),
					String: ev.Get("string").String(),
				},
			})
			return true
		})
		sort.SliceStable(a.Events, func(i, j int) bool { return a.Events[i].Time < a.Events[j].Time })
		d.animations[a.Name] = a
		d.names = append(d.names, a.Name)
		return true
	})
	sort.Strings(d.names)

	return d, nil
}

// parseSkins handles both skin layouts: an object keyed by skin name
// and the newer array of {name, attachments} entries.
func (d *Data) parseSkins(skins gjson.Result, scale float64) {
	addSkin := func(skinName string, atts gjson.Result) {
		atts.ForEach(func(slotName, slotAtts gjson.Result) bool {
			slotAtts.ForEach(func(attName, att gjson.Result) bool {
				d.addAttachment(skinName, slotName.String(), attName.String(), att, scale)
				return true
			})
			return true
		})
	}

	if skins.IsArray() {
		skins.ForEach(func(_, skin gjson.Result) bool {
			addSkin(skin.Get("name").String(), skin.Get("attachments"))
			return true
		})
		return
	}
	skins.ForEach(func(skinName, atts gjson.Result) bool {
		addSkin(skinName.String(), atts)
		return true
	})
}

func (d *Data) addAttachment(skin, slot, name string, att gjson.Result, scale float64) {
	a := engine.Attachment{
		Skin:     skin,
		Slot:     slot,
		Name:     name,
		Path:     att.Get("path").String(),
		X:        att.Get("x").Float() * scale,
		Y:        att.Get("y").Float() * scale,
		Rotation: att.Get("rotation").Float(),
		Width:    att.Get("width").Float() * floatOr(att.Get("scaleX"), 1) * scale,
		Height:   att.Get("height").Float() * floatOr(att.Get("scaleY"), 1) * scale,
		Kind:     kindOf(att.Get("type").String()),
	}
	d.attachments = append(d.attachments, a)

	key := slot + "\x00" + name
	if prev, ok := d.bySlot[key]; !ok || d.attachments[prev].Skin != "default" {
		d.bySlot[key] = len(d.attachments) - 1
	}
}

func kindOf(typ string) engine.AttachmentKind {
	switch typ {
	case "", "region":
		return engine.KindRegion
	case "boundingbox":
		return engine.KindBoundingBox
	default:
		return engine.KindOther
	}
}

func floatOr(r gjson.Result, def float64) float64 {
	if !r.Exists() {
		return def
	}
	return r.Float()
}

// maxTime walks an animation's timelines and returns the largest keyed
// time, which is the animation's duration. Keys without an explicit
// time are at 0.
func maxTime(res gjson.Result) float64 {
	max := 0.0
	var walk func(r gjson.Result)
	walk = func(r gjson.Result) {
		if !r.IsObject() && !r.IsArray() {
			return
		}
		r.ForEach(func(key, val gjson.Result) bool {
			if key.String() == "time" && val.Type == gjson.Number {
				if t := val.Float(); t > max {
					max = t
				}
				return true
			}
			walk(val)
			return true
		})
	}
	walk(res)
	return max
}

// HasAnimation reports whether an animation exists in the data.
func (d *Data) HasAnimation(name string) bool {
	_, ok := d.animations[name]
	return ok
}

// Duration reports an animation's length in seconds.
func (d *Data) Duration(name string) (float64, bool) {
	a, ok := d.animations[name]
	if !ok {
		return 0, false
	}
	return a.Duration, true
}

// Animations lists animation names, sorted.
func (d *Data) Animations() []string {
	return append([]string(nil), d.names...)
}

// Events returns an animation's timeline events ordered by time.
func (d *Data) Events(name string) []TimedEvent {
	a, ok := d.animations[name]
	if !ok {
		return nil
	}
	return a.Events
}

// RegionAttachments enumerates every region attachment in the data.
func (d *Data) RegionAttachments() []engine.Attachment {
	out := make([]engine.Attachment, 0, len(d.attachments))
	for _, a := range d.attachments {
		if a.Kind == engine.KindRegion {
			out = append(out, a)
		}
	}
	return out
}

// Bones returns the setup-pose bones in source order (parents first).
func (d *Data) Bones() []Bone { return d.bones }

// Slots returns the slots in draw order (back-to-front).
func (d *Data) Slots() []Slot { return d.slots }

// Attachment looks up a slot's attachment by name, preferring the
// default skin.
func (d *Data) Attachment(slot, name string) (engine.Attachment, bool) {
	i, ok := d.bySlot[slot+"\x00"+name]
	if !ok {
		return engine.Attachment{}, false
	}
	return d.attachments[i], true
}
