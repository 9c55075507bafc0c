// Stress runs a configurable number of sprites, each driven by a looping
// behavior, to profile scheduler and draw-traversal throughput. Settings are
// read from stress.toml next to the binary; all have defaults, so the file is
// optional.
//
// With profile = true, a CPU profile is written to the working directory on
// exit (view with go tool pprof).
package main

import (
	"errors"
	"image/color"
	"io/fs"
	"log"
	"math/rand/v2"

	"github.com/BurntSushi/toml"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/phanxgames/grove"
	"github.com/phanxgames/grove/behavior"
)

const configPath = "stress.toml"

type config struct {
	Sprites int  `toml:"sprites"`
	Width   int  `toml:"width"`
	Height  int  `toml:"height"`
	Profile bool `toml:"profile"`
}

func defaultConfig() config {
	return config{
		Sprites: 10000,
		Width:   1280,
		Height:  720,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	return cfg, nil
}

type game struct {
	scene *grove.Scene
}

func (g *game) Update() error {
	g.scene.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(grove.Identity(), screen)
}

func (g *game) Layout(w, h int) (int, int) {
	return ebiten.WindowSize()
}

func main() {
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("load %s: %v", configPath, err)
	}

	if cfg.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	scene := grove.NewScene()
	scene.SetLogger(logger)

	tex := ebiten.NewImage(8, 8)
	tex.Fill(color.RGBA{255, 255, 255, 255})

	w := float64(cfg.Width)
	h := float64(cfg.Height)
	for i := 0; i < cfg.Sprites; i++ {
		s := grove.NewSprite(tex)
		s.SetPosition(rand.Float64()*w, rand.Float64()*h)
		id := scene.AddChild(s)

		// Each sprite wanders between random points and spins forever.
		scene.RunAction(id, behavior.While(
			behavior.WaitForever[grove.Action](),
			behavior.Action(grove.MoveTo(1+rand.Float64()*3, rand.Float64()*w, rand.Float64()*h)),
			behavior.Wait[grove.Action](rand.Float64()),
		))
		scene.RunAction(id, behavior.While(
			behavior.WaitForever[grove.Action](),
			behavior.Action(grove.RotateBy(2+rand.Float64()*4, 360)),
		))
	}

	logger.Info("stress scene ready",
		zap.Int("sprites", cfg.Sprites),
		zap.Bool("profile", cfg.Profile))

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Grove — Stress Demo")
	if err := ebiten.RunGame(&game{scene: scene}); err != nil {
		log.Fatal(err)
	}
}
