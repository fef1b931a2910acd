package spine

import (
	"errors"
	"testing"

	"github.com/chung-nguyen/devkit-spine/engine"
)

func testView(t *testing.T, cfg Config) (*View, *fakeEngine, *fakeFactory) {
	t.Helper()
	eng := &fakeEngine{
		data: &fakeData{
			durations: map[string]float64{"idle": 1.5, "jump": 0.5},
			attachments: []engine.Attachment{
				regionAttachment("body", "torso", 40, 60),
				regionAttachment("head", "head", 20, 20),
				{Slot: "hit", Name: "hitbox", Kind: engine.KindBoundingBox},
			},
		},
		skeleton: &fakeSkeleton{},
		state:    &fakeState{},
	}
	factory := newFakeFactory()
	if cfg.Source == nil {
		cfg.Source = []byte("{}")
	}
	view, err := NewView(eng, factory, cfg)
	if err != nil {
		t.Fatalf("NewView failed: %v", err)
	}
	return view, eng, factory
}

func TestNewViewWithoutSource(t *testing.T) {
	eng := &fakeEngine{data: &fakeData{}, skeleton: &fakeSkeleton{}, state: &fakeState{}}
	_, err := NewView(eng, newFakeFactory(), Config{})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewViewUnknownDefaultAnimation(t *testing.T) {
	eng := &fakeEngine{
		data:     &fakeData{durations: map[string]float64{"idle": 1}},
		skeleton: &fakeSkeleton{},
		state:    &fakeState{},
	}
	_, err := NewView(eng, newFakeFactory(), Config{
		Source:           []byte("{}"),
		DefaultAnimation: "missing",
	})
	if !errors.Is(err, ErrAnimationNotFound) {
		t.Fatalf("expected ErrAnimationNotFound, got %v", err)
	}
}

func TestNewViewPreallocatesSlots(t *testing.T) {
	view, _, factory := testView(t, Config{})

	// One sprite per region attachment; the bounding box gets none.
	if len(factory.sprites) != 2 {
		t.Fatalf("expected 2 sprites created, got %d", len(factory.sprites))
	}
	if len(view.Slots()) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(view.Slots()))
	}
	for key, sp := range factory.sprites {
		if sp.visible {
			t.Fatalf("expected slot %s hidden at setup", key)
		}
	}
}

func TestAutoStartWithDefault(t *testing.T) {
	cases := []struct {
		name        string
		cfg         Config
		wantDefault bool
		wantPlaying bool
		wantVisible bool
	}{
		{
			name:        "autostart_default_loop",
			cfg:         Config{DefaultAnimation: "idle", AutoStart: true},
			wantDefault: true, wantPlaying: true, wantVisible: true,
		},
		{
			name: "no_autostart",
			cfg:  Config{DefaultAnimation: "idle"},
		},
		{
			name: "autostart_without_default",
			cfg:  Config{AutoStart: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, _, _ := testView(t, tc.cfg)
			if view.OnDefault() != tc.wantDefault {
				t.Fatalf("expected OnDefault=%v, got %v", tc.wantDefault, view.OnDefault())
			}
			if view.Playing() != tc.wantPlaying {
				t.Fatalf("expected Playing=%v, got %v", tc.wantPlaying, view.Playing())
			}
			if view.Visible() != tc.wantVisible {
				t.Fatalf("expected Visible=%v, got %v", tc.wantVisible, view.Visible())
			}
		})
	}
}

func TestExplicitNonLoopingDefault(t *testing.T) {
	loop := false
	_, eng, _ := testView(t, Config{DefaultAnimation: "idle", DefaultLoop: &loop, AutoStart: true})

	for _, set := range eng.state.sets {
		if set.name == "idle" && set.loop {
			t.Fatalf("explicit loop=false must be honored, got looping arm")
		}
	}
}

func TestTickDeltaScaling(t *testing.T) {
	cases := []struct {
		name      string
		frameRate float64
		deltaMs   float64
		want      float64
	}{
		{"base_rate", 30, 100, 0.1},
		{"double_rate", 60, 100, 0.05},
		{"default_rate", 0, 1000, 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, eng, _ := testView(t, Config{
				DefaultAnimation: "idle",
				AutoStart:        true,
				FrameRate:        tc.frameRate,
			})
			view.Tick(tc.deltaMs)
			if len(eng.state.advanced) != 1 {
				t.Fatalf("expected one advance, got %d", len(eng.state.advanced))
			}
			if got := eng.state.advanced[0]; !almostEqual(got, tc.want) {
				t.Fatalf("expected dt %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTickWhilePausedOrHidden(t *testing.T) {
	view, eng, _ := testView(t, Config{DefaultAnimation: "idle", AutoStart: true})

	view.Pause()
	view.Tick(100)
	if len(eng.state.advanced) != 0 {
		t.Fatalf("paused tick must not advance engine time")
	}

	view.Resume()
	view.StopAnimation()
	view.Tick(100)
	if len(eng.state.advanced) != 0 {
		t.Fatalf("stopped tick must not advance engine time")
	}
}

func TestResetAllRebuildsSlots(t *testing.T) {
	view, _, _ := testView(t, Config{DefaultAnimation: "idle", AutoStart: true})

	before := view.Slots()
	if err := view.ResetAll(Config{Source: []byte("{}"), DefaultAnimation: "idle"}); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}
	after := view.Slots()

	for key := range before {
		if before[key] == after[key] {
			t.Fatalf("expected slot %s to be recreated", key)
		}
	}
	if view.Playing() {
		t.Fatalf("reset without autostart must leave playback stopped")
	}
}

func TestViewDurationPassthrough(t *testing.T) {
	view, _, _ := testView(t, Config{DefaultAnimation: "idle"})
	got, err := view.GetDuration("idle")
	if err != nil {
		t.Fatalf("GetDuration failed: %v", err)
	}
	if got != 1500 {
		t.Fatalf("expected 1500ms, got %d", got)
	}
	if _, err := view.GetDuration("missing"); !errors.Is(err, ErrAnimationNotFound) {
		t.Fatalf("expected ErrAnimationNotFound, got %v", err)
	}
}
