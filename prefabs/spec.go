// Package prefabs defines the YAML specs animation views are built
// from and a watcher for hot-reloading them.
package prefabs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chung-nguyen/devkit-spine/resource"
	"github.com/chung-nguyen/devkit-spine/spine"
)

// ViewSpec configures one animation view.
type ViewSpec struct {
	Name             string     `yaml:"name"`
	Source           SourceSpec `yaml:"source"`
	Images           string     `yaml:"images"`
	Scale            float64    `yaml:"scale"`
	DefaultAnimation string     `yaml:"default_animation"`
	DefaultMix       float64    `yaml:"default_mix"`
	Loop             *bool      `yaml:"loop"`
	FrameRate        float64    `yaml:"frame_rate"`
	AutoStart        bool       `yaml:"auto_start"`
}

// SourceSpec names where the skeleton data comes from. Exactly one
// field is consulted, in order: inline text, a file path, a named
// resource.
type SourceSpec struct {
	Text     string `yaml:"text"`
	File     string `yaml:"file"`
	Resource string `yaml:"resource"`
}

// LoadSpec reads and unmarshals a YAML spec file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := os.ReadFile(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Resolve turns the spec into a view config, reading the skeleton
// source from whichever location the spec names. store may be nil when
// the spec does not use a named resource.
func (s ViewSpec) Resolve(store *resource.Store) (spine.Config, error) {
	source, err := s.Source.resolve(store)
	if err != nil {
		return spine.Config{}, err
	}
	return spine.Config{
		Source:           source,
		Scale:            s.Scale,
		DefaultAnimation: s.DefaultAnimation,
		DefaultMix:       s.DefaultMix,
		DefaultLoop:      s.Loop,
		FrameRate:        s.FrameRate,
		AutoStart:        s.AutoStart,
	}, nil
}

func (s SourceSpec) resolve(store *resource.Store) ([]byte, error) {
	switch {
	case s.Text != "":
		return []byte(s.Text), nil
	case s.File != "":
		data, err := os.ReadFile(s.File)
		if err != nil {
			return nil, fmt.Errorf("prefabs: source file %s: %w", s.File, err)
		}
		return data, nil
	case s.Resource != "":
		if store == nil {
			return nil, fmt.Errorf("prefabs: source resource %q without a store: %w", s.Resource, spine.ErrConfiguration)
		}
		data, err := store.Get(s.Resource)
		if err != nil {
			return nil, fmt.Errorf("prefabs: source resource %q: %w", s.Resource, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("prefabs: %w", spine.ErrConfiguration)
	}
}
