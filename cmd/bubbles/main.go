// cmd/bubbles/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"bubble-flutter/internal/config"
	"bubble-flutter/internal/state"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	return a.stateMachine.Update(deltaTime)
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configPath := flag.String("config", "", "YAML file with a single effect config")
	presetsPath := flag.String("presets", "", "YAML file with presets (built-in presets when empty)")
	presetName := flag.String("preset", "", "preset to start with")
	seed := flag.Int64("seed", 0, "random seed, 0 means time based")
	pprofAddr := flag.String("pprof", "", "listen address for net/http/pprof, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	presets, err := loadPresets(*configPath, *presetsPath)
	if err != nil {
		log.Fatal(err)
	}
	_, index, err := config.FindPreset(presets, *presetName)
	if err != nil {
		log.Fatal(err)
	}

	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	showcase, err := state.NewShowcaseState(sm, presets, index, state.ShowcaseOptions{
		PixelRatio: ratio,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatal(err)
	}
	sm.SetState(showcase)

	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Bubble Flutter")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}

// loadPresets: одиночный конфиг превращается в пресет "custom"
func loadPresets(configPath, presetsPath string) ([]config.Preset, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return []config.Preset{{Name: "custom", Config: *cfg}}, nil
	}
	return config.LoadPresets(presetsPath)
}
