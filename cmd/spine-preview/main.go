// spine-preview renders an animation view spec in a window using the
// setup-pose engine. Digits start transient animations, space returns
// to the default animation, S stops, P pauses. With -watch, edits to
// the spec file rebuild the view live.
package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/chung-nguyen/devkit-spine/engine"
	"github.com/chung-nguyen/devkit-spine/engine/static"
	"github.com/chung-nguyen/devkit-spine/logging"
	"github.com/chung-nguyen/devkit-spine/prefabs"
	"github.com/chung-nguyen/devkit-spine/render"
	"github.com/chung-nguyen/devkit-spine/resource"
	"github.com/chung-nguyen/devkit-spine/spine"
)

const (
	baseWidth  = 960
	baseHeight = 540
)

func main() {
	specPath := flag.String("spec", "view.yaml", "view spec yaml")
	dbPath := flag.String("db", "", "optional bbolt resource file for named sources")
	watch := flag.Bool("watch", false, "rebuild the view when the spec changes")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		logging.SetDebug()
	}

	var store *resource.Store
	if *dbPath != "" {
		s, err := resource.Open(*dbPath)
		if err != nil {
			logging.Error("open resource store: %v", err)
			return
		}
		defer s.Close()
		store = s
	}

	spec, err := prefabs.LoadSpec[prefabs.ViewSpec](*specPath)
	if err != nil {
		logging.Error("load spec: %v", err)
		return
	}
	cfg, err := spec.Resolve(store)
	if err != nil {
		logging.Error("resolve spec: %v", err)
		return
	}

	stage := render.NewStage(spec.Images)
	view, err := spine.NewView(static.New(), stage, cfg)
	if err != nil {
		logging.Error("build view: %v", err)
		return
	}

	g := &Game{
		view:     view,
		stage:    stage,
		names:    view.Animations(),
		store:    store,
		specPath: *specPath,
	}

	if *watch {
		w, err := prefabs.NewWatcher(filepath.Dir(*specPath))
		if err != nil {
			logging.Error("watch spec: %v", err)
			return
		}
		defer w.Close()
		g.watcher = w
	}

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("spine-preview")
	if err := ebiten.RunGame(g); err != nil {
		logging.Error("run: %v", err)
	}
}

type Game struct {
	view     *spine.View
	stage    *render.Stage
	names    []string
	watcher  *prefabs.Watcher
	store    *resource.Store
	specPath string

	paused bool
	status string
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.handleKeys()

	// Fixed 60 ticks/second host clock; the view rescales internally.
	g.view.Tick(1000.0 / 60.0)
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			return
		}
		if filepath.Clean(path) != filepath.Clean(g.specPath) {
			return
		}
		g.reload()
	case err := <-g.watcher.Errors:
		if err != nil {
			logging.Warn("watcher: %v", err)
		}
	default:
	}
}

func (g *Game) reload() {
	spec, err := prefabs.LoadSpec[prefabs.ViewSpec](g.specPath)
	if err != nil {
		logging.Warn("reload spec: %v", err)
		return
	}
	cfg, err := spec.Resolve(g.store)
	if err != nil {
		logging.Warn("resolve spec: %v", err)
		return
	}
	g.stage.Reset()
	if err := g.view.ResetAll(cfg); err != nil {
		logging.Warn("rebuild view: %v", err)
		return
	}
	g.names = g.view.Animations()
	g.paused = false
	g.status = "reloaded"
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.view.ResetAnimation()
		g.status = "reset"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.view.StopAnimation()
		g.status = "stopped"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.paused {
			g.view.Resume()
		} else {
			g.view.Pause()
		}
		g.paused = !g.paused
	}
	for i, key := range digitKeys {
		if i >= len(g.names) {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			name := g.names[i]
			err := g.view.StartAnimation(name, spine.Options{
				Iterations: 2,
				OnComplete: func() { g.status = name + " done" },
				OnEvent: func(ev engine.Event) {
					logging.Debug("event %s", ev.Name)
				},
			})
			if err != nil {
				logging.Warn("start %s: %v", name, err)
				continue
			}
			g.status = "playing " + name
		}
	}
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.view.Visible() {
		// Skeleton origin at the lower middle of the window.
		g.stage.Draw(screen, baseWidth/2, baseHeight*3/4)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.1f  playing=%v default=%v  %s\nspace=reset s=stop p=pause 1-%d=animations",
		ebiten.ActualFPS(), g.view.Playing(), g.view.OnDefault(), g.status, min(len(g.names), 9)))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
