// internal/state/showcase_state.go
package state

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"bubble-flutter/internal/bubbles"
	"bubble-flutter/internal/config"
	"bubble-flutter/internal/event"
	"bubble-flutter/internal/schedule"
	"bubble-flutter/internal/ui"
	"bubble-flutter/internal/utils"
	"bubble-flutter/pkg/render"
)

// Убеждаемся, что ShowcaseState соответствует интерфейсам
var (
	_ State          = (*ShowcaseState)(nil)
	_ event.Listener = (*ShowcaseState)(nil)
)

// ShowcaseOptions — общие параметры для всех пресетов
type ShowcaseOptions struct {
	PixelRatio float64
	Seed       int64
	Logger     *log.Logger
}

// ShowcaseState показывает один пресет. Tab переключает на следующий.
type ShowcaseState struct {
	sm      *StateMachine
	presets []config.Preset
	index   int
	opts    ShowcaseOptions

	engine    *bubbles.Engine
	surface   *render.EbitenSurface
	frames    *schedule.Queue
	events    *event.Dispatcher
	indicator *ui.PlaybackIndicator
	status    *ui.StatusPanel

	paused bool
	err    error
}

func NewShowcaseState(sm *StateMachine, presets []config.Preset, index int, opts ShowcaseOptions) (*ShowcaseState, error) {
	if len(presets) == 0 {
		return nil, fmt.Errorf("showcase: %w", config.ErrPresetNotFound)
	}
	index %= len(presets)
	preset := presets[index]
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	surface := render.NewEbitenSurface()
	frames := schedule.NewQueue()
	events := event.NewDispatcher()
	cfg := preset.Config

	engine, err := bubbles.New(bubbles.Options{
		Container:  bubbles.FixedSize{Width: config.ScreenWidth, Height: config.ScreenHeight},
		Surface:    surface,
		Scheduler:  frames,
		Colors:     render.NewColorResolver(),
		Config:     &cfg,
		PixelRatio: opts.PixelRatio,
		Seed:       opts.Seed,
		Events:     events,
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", preset.Name, err)
	}

	return &ShowcaseState{
		sm:      sm,
		presets: presets,
		index:   index,
		opts:    opts,
		engine:  engine,
		surface: surface,
		frames:  frames,
		events:  events,
		indicator: ui.NewPlaybackIndicator(
			float32(config.ScreenWidth-config.IndicatorOffsetX),
			float32(config.IndicatorOffsetX),
			float32(config.IndicatorRadius),
		),
		status: ui.NewStatusPanel(config.TextOffsetX, config.TextOffsetY),
	}, nil
}

func (s *ShowcaseState) Enter() {
	s.events.Subscribe(s, event.Started, event.Paused)
	s.events.Subscribe(s.status, event.Started, event.Paused, event.Reconfigured, event.FieldRebuilt, event.HeightRatioReached)
	s.opts.Logger.Printf("showcase: preset %s", s.presets[s.index].Name)
	s.err = s.engine.Start()
}

func (s *ShowcaseState) Exit() {
	s.engine.Pause()
	s.events.Unsubscribe(s)
	s.events.Unsubscribe(s.status)
}

// OnEvent держит индикатор в согласии с движком
func (s *ShowcaseState) OnEvent(ev event.Event) {
	switch ev.Type {
	case event.Started:
		s.indicator.SetPlaying(true)
	case event.Paused:
		s.indicator.SetPlaying(false)
	}
}

func (s *ShowcaseState) Update(deltaTime float64) error {
	if s.err != nil {
		return s.err
	}

	toggle := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		toggle = toggle || s.indicator.Contains(x, y)
	}
	if toggle {
		if err := s.togglePlayback(); err != nil {
			return err
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		s.shiftHeightRatio(config.HeightRatioStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		s.shiftHeightRatio(-config.HeightRatioStep)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next, err := NewShowcaseState(s.sm, s.presets, s.index+1, s.opts)
		if err != nil {
			return err
		}
		s.sm.SetState(next)
		return nil
	}

	return s.frames.Step()
}

func (s *ShowcaseState) togglePlayback() error {
	if s.paused {
		s.paused = false
		return s.engine.Start()
	}
	s.paused = true
	s.engine.Pause()
	return nil
}

// shiftHeightRatio запускает плавный переход уровня волны
func (s *ShowcaseState) shiftHeightRatio(delta float64) {
	target := utils.Clamp(s.engine.HeightRatio()+delta, 0, 1)
	patch := config.Patch{Wave: config.WavePatch{HeightRatio: config.Float(target)}}
	if err := s.engine.Reconfigure(patch); err != nil {
		s.opts.Logger.Printf("showcase: reconfigure failed: %v", err)
	}
}

func (s *ShowcaseState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	screen.DrawImage(s.surface.Image(), nil)

	cfg := s.engine.Config()
	s.indicator.Draw(screen)
	s.status.Draw(screen, ui.StatusSnapshot{
		Preset:      s.presets[s.index].Name,
		Playing:     s.engine.IsPlaying(),
		Particles:   s.engine.ParticleCount(),
		HeightRatio: cfg.Wave.HeightRatio,
		Direction:   cfg.Bubble.Direction,
	})
}
