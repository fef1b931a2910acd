package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chung-nguyen/devkit-spine/resource"
	"github.com/chung-nguyen/devkit-spine/spine"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSpec(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.yaml", `
name: hero
source:
  text: '{"bones": []}'
images: ./images
scale: 2.0
default_animation: idle
default_mix: 0.2
loop: false
frame_rate: 60
auto_start: true
`)

	spec, err := LoadSpec[ViewSpec](path)
	if err != nil {
		t.Fatalf("LoadSpec failed: %v", err)
	}
	if spec.Name != "hero" || spec.DefaultAnimation != "idle" || spec.FrameRate != 60 || !spec.AutoStart {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	if spec.Loop == nil || *spec.Loop {
		t.Fatalf("explicit loop=false must unmarshal as non-nil false")
	}

	cfg, err := spec.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(cfg.Source) != `{"bones": []}` {
		t.Fatalf("unexpected source: %s", cfg.Source)
	}
	if cfg.DefaultLoop == nil || *cfg.DefaultLoop {
		t.Fatalf("loop flag lost in resolve")
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[ViewSpec](filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing spec file")
	}
}

func TestLoopDefaultsToNil(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.yaml", "name: hero\nsource:\n  text: '{}'\n")

	spec, err := LoadSpec[ViewSpec](path)
	if err != nil {
		t.Fatalf("LoadSpec failed: %v", err)
	}
	if spec.Loop != nil {
		t.Fatalf("unset loop must stay nil (defaults to looping)")
	}
}

func TestResolveSources(t *testing.T) {
	dir := t.TempDir()
	skeletonPath := writeFile(t, dir, "hero.json", `{"bones": []}`)

	dbPath := filepath.Join(dir, "res.db")
	store, err := resource.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if err := store.Put("hero", []byte(`{"slots": []}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	cases := []struct {
		name    string
		source  SourceSpec
		store   *resource.Store
		want    string
		wantErr error
	}{
		{"inline_text", SourceSpec{Text: `{"x":1}`}, nil, `{"x":1}`, nil},
		{"file", SourceSpec{File: skeletonPath}, nil, `{"bones": []}`, nil},
		{"resource", SourceSpec{Resource: "hero"}, store, `{"slots": []}`, nil},
		{"resource_without_store", SourceSpec{Resource: "hero"}, nil, "", spine.ErrConfiguration},
		{"nothing", SourceSpec{}, nil, "", spine.ErrConfiguration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := ViewSpec{Source: tc.source}
			cfg, err := spec.Resolve(tc.store)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if string(cfg.Source) != tc.want {
				t.Fatalf("expected source %q, got %q", tc.want, cfg.Source)
			}
		})
	}
}

func TestResolveMissingSourceFile(t *testing.T) {
	spec := ViewSpec{Source: SourceSpec{File: filepath.Join(t.TempDir(), "nope.json")}}
	if _, err := spec.Resolve(nil); err == nil {
		t.Fatalf("expected error for missing source file")
	}
}
