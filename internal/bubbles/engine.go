// internal/bubbles/engine.go
package bubbles

import (
	"fmt"
	"log"
	"sync"

	"bubble-flutter/internal/config"
	"bubble-flutter/internal/event"
	"bubble-flutter/internal/utils"
	"bubble-flutter/pkg/render"
)

// Options — всё, что нужно движку при создании
type Options struct {
	Container Container
	Surface   Surface
	Scheduler Scheduler
	// Colors по умолчанию — render.NewColorResolver()
	Colors ColorResolver
	// Config по умолчанию — config.Default()
	Config *config.Config
	// PixelRatio — физических пикселей на логический, 0 означает 1
	PixelRatio float64
	Seed       int64
	Events     *event.Dispatcher
	Logger     *log.Logger
}

// Engine управляет конфигурацией, полем и циклом воспроизведения.
// Методы можно вызывать из любой горутины; кадр выполняется под тем же
// мьютексом, поэтому изменения применяются целиком к следующему кадру.
type Engine struct {
	mu sync.Mutex

	cfg       config.Config
	field     *Field
	rebuild   bool
	surface   Surface
	scheduler Scheduler
	colors    ColorResolver
	rng       *utils.PRNGService
	events    *event.Dispatcher
	logger    *log.Logger

	width, height float64
	ratio         float64

	running bool   // Start вызван, Pause ещё нет
	playing bool   // первый запланированный кадр выполнен
	frameID uint64 // ожидающий колбэк, 0 — нет
	token   uint64 // меняется при каждом Start/Pause

	pending []event.Event
}

// New проверяет окружение и конфигурацию и строит поле
func New(opts Options) (*Engine, error) {
	if opts.Container == nil {
		return nil, ErrNoContainer
	}
	w, h := opts.Container.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNoContainerSize, w, h)
	}
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		surface:   opts.Surface,
		scheduler: opts.Scheduler,
		colors:    opts.Colors,
		rng:       utils.NewPRNGService(opts.Seed),
		events:    opts.Events,
		logger:    opts.Logger,
		width:     float64(w),
		height:    float64(h),
		ratio:     opts.PixelRatio,
	}
	if e.colors == nil {
		e.colors = render.NewColorResolver()
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.ratio <= 0 {
		e.ratio = 1
	}

	field, err := NewField(&e.cfg, e.width, e.height, e.ratio, e.rng, e.colors)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	e.field = field
	e.surface.SetSize(w, h)
	e.logger.Printf("bubbles: %dx%d, direction %s, %d particles", w, h, cfg.Bubble.Direction, len(field.particles))
	return e, nil
}

// Start запускает цикл: сразу рисует кадр и планирует следующий.
// Повторный вызов без Pause ничего не делает.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.token++
	if err := e.frameLocked(); err != nil {
		e.stopLocked()
		e.mu.Unlock()
		e.flush()
		return err
	}
	e.frameID = e.scheduler.RequestFrame(e.loop(e.token))
	e.mu.Unlock()
	e.flush()
	return nil
}

// loop возвращает колбэк кадра, привязанный к токену запуска.
// Колбэк от предыдущего запуска ничего не делает.
func (e *Engine) loop(token uint64) func() error {
	return func() error {
		e.mu.Lock()
		if !e.running || token != e.token {
			e.mu.Unlock()
			return nil
		}
		e.frameID = 0
		if !e.playing {
			e.playing = true
			e.logger.Println("bubbles: playing")
			e.emit(event.Started, nil)
		}
		if err := e.frameLocked(); err != nil {
			e.logger.Printf("bubbles: frame failed: %v", err)
			e.stopLocked()
			e.mu.Unlock()
			e.flush()
			return err
		}
		e.frameID = e.scheduler.RequestFrame(e.loop(token))
		e.mu.Unlock()
		e.flush()
		return nil
	}
}

// frameLocked — один кадр: пересборка поля при необходимости, advance, draw
func (e *Engine) frameLocked() error {
	if e.rebuild {
		field, err := NewField(&e.cfg, e.width, e.height, e.ratio, e.rng, e.colors)
		if err != nil {
			return fmt.Errorf("rebuild field: %w", err)
		}
		field.carry(e.field)
		e.field = field
		e.rebuild = false
		e.logger.Printf("bubbles: field rebuilt, %d particles", len(field.particles))
		e.emit(event.FieldRebuilt, event.RebuiltData{Particles: len(field.particles)})
	}

	target := e.field.trans.to
	if e.field.Advance() {
		e.emit(event.HeightRatioReached, event.HeightRatioData{Ratio: e.cfg.Wave.HeightRatio, Target: target})
	}
	return e.field.Draw(e.surface)
}

// Pause отменяет ожидающий кадр. Состояние поля сохраняется.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	e.logger.Println("bubbles: paused")
	e.emit(event.Paused, nil)
	e.mu.Unlock()
	e.flush()
}

func (e *Engine) stopLocked() {
	if e.frameID != 0 {
		e.scheduler.CancelFrame(e.frameID)
		e.frameID = 0
	}
	e.token++
	e.running = false
	e.playing = false
}

// Reconfigure сливает patch с текущей конфигурацией. Изменения видны
// со следующего кадра. HeightRatio не сливается, а запускает переход.
// Некорректный patch отклоняется целиком.
func (e *Engine) Reconfigure(p config.Patch) error {
	target := p.Wave.HeightRatio
	p.Wave.HeightRatio = nil

	e.mu.Lock()
	next := e.cfg
	p.Apply(&next)

	check := next
	check.Wave.HeightRatio = utils.Clamp(check.Wave.HeightRatio, 0, 1)
	if target != nil {
		check.Wave.HeightRatio = *target
	}
	if err := check.Validate(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("reconfigure: %w", err)
	}
	if err := checkColors(&check, e.colors); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("reconfigure: %w", err)
	}

	if config.Structural(e.cfg, next) {
		e.rebuild = true
	}
	e.cfg = next
	if target != nil {
		e.field.SeedTransition(*target)
	}
	e.emit(event.Reconfigured, nil)
	e.mu.Unlock()
	e.flush()
	return nil
}

// IsPlaying сообщает, выполняется ли цикл кадров
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Config возвращает копию текущей конфигурации
func (e *Engine) Config() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// HeightRatio возвращает текущий уровень волны
func (e *Engine) HeightRatio() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Wave.HeightRatio
}

// ParticleCount возвращает число пузырей в текущем поле
func (e *Engine) ParticleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.field.particles)
}

// Particles возвращает копии пузырей текущего поля
func (e *Engine) Particles() []Particle {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Particle, len(e.field.particles))
	for i, p := range e.field.particles {
		out[i] = *p
	}
	return out
}

// emit откладывает событие до выхода из-под мьютекса
func (e *Engine) emit(t event.EventType, data any) {
	if e.events == nil {
		return
	}
	e.pending = append(e.pending, event.Event{Type: t, Data: data})
}

// flush рассылает отложенные события. Вызывается без мьютекса, чтобы
// слушатели могли обращаться к движку.
func (e *Engine) flush() {
	e.mu.Lock()
	evs := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, ev := range evs {
		e.events.Dispatch(ev)
	}
}
