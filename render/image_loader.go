package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadImage loads an image from the filesystem and caches it by key.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := loadImageFromFS(key)
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

func loadImageFromFS(path string) (*ebiten.Image, error) {
	tried := []string{path, path + ".png"}
	if filepath.Ext(path) == "" {
		tried = append(tried, filepath.Base(path)+".png")
	}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return ebiten.NewImageFromImage(im), nil
			}
		}
	}
	return nil, fmt.Errorf("render: failed to load image %s", path)
}
