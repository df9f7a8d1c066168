package bubbles

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bubble-flutter/internal/config"
	"bubble-flutter/internal/event"
	"bubble-flutter/internal/schedule"
	"bubble-flutter/pkg/render"
)

type engineFixture struct {
	engine  *Engine
	surface *recorder
	frames  *schedule.Queue
	events  *event.Dispatcher
	colors  *flakyColors
}

func newFixture(t *testing.T, cfg *config.Config) *engineFixture {
	t.Helper()
	fx := &engineFixture{
		surface: &recorder{},
		frames:  schedule.NewQueue(),
		events:  event.NewDispatcher(),
		colors:  &flakyColors{inner: render.NewColorResolver()},
	}
	e, err := New(Options{
		Container: FixedSize{Width: 300, Height: 200},
		Surface:   fx.surface,
		Scheduler: fx.frames,
		Colors:    fx.colors,
		Config:    cfg,
		Seed:      1,
		Events:    fx.events,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	fx.engine = e
	return fx
}

// drawn — число отрисованных кадров
func (fx *engineFixture) drawn() int {
	return fx.surface.count("ClearRect")
}

type eventLog struct {
	mu    sync.Mutex
	types []event.EventType
	data  []any
	onEv  func(event.Event)
}

func (l *eventLog) OnEvent(ev event.Event) {
	l.mu.Lock()
	l.types = append(l.types, ev.Type)
	l.data = append(l.data, ev.Data)
	l.mu.Unlock()
	if l.onEv != nil {
		l.onEv(ev)
	}
}

// lazyScheduler игнорирует CancelFrame, чтобы проверить защиту токеном
type lazyScheduler struct {
	fns []func() error
}

func (s *lazyScheduler) RequestFrame(fn func() error) uint64 {
	s.fns = append(s.fns, fn)
	return uint64(len(s.fns))
}

func (s *lazyScheduler) CancelFrame(uint64) {}

func (s *lazyScheduler) runAll() error {
	fns := s.fns
	s.fns = nil
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func TestNewValidatesCollaborators(t *testing.T) {
	base := func() Options {
		return Options{
			Container: FixedSize{Width: 100, Height: 100},
			Surface:   &recorder{},
			Scheduler: schedule.NewQueue(),
			Logger:    quietLogger(),
		}
	}

	opts := base()
	opts.Container = nil
	_, err := New(opts)
	require.ErrorIs(t, err, ErrNoContainer)

	opts = base()
	opts.Container = FixedSize{Width: 100}
	_, err = New(opts)
	require.ErrorIs(t, err, ErrNoContainerSize)

	opts = base()
	opts.Surface = nil
	_, err = New(opts)
	require.ErrorIs(t, err, ErrNoSurface)

	opts = base()
	opts.Scheduler = nil
	_, err = New(opts)
	require.ErrorIs(t, err, ErrNoScheduler)

	cfg := config.Default()
	cfg.Bubble.Direction = "up"
	opts = base()
	opts.Config = &cfg
	_, err = New(opts)
	require.ErrorIs(t, err, config.ErrUnknownDirection)

	cfg = config.Default()
	cfg.Wave.Color = "mud"
	opts = base()
	opts.Config = &cfg
	_, err = New(opts)
	require.ErrorIs(t, err, ErrInvalidColor)
}

func TestNewSizesSurfaceAndBuildsField(t *testing.T) {
	fx := newFixture(t, nil)
	assert.Equal(t, 300, fx.surface.width)
	assert.Equal(t, 200, fx.surface.height)
	assert.Equal(t, 20, fx.engine.ParticleCount())
	assert.False(t, fx.engine.IsPlaying())
	assert.Zero(t, fx.drawn())
}

func TestStartDrawsAndSchedules(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.engine.Start())

	assert.Equal(t, 1, fx.drawn())
	assert.Equal(t, 1, fx.frames.Pending())
	assert.False(t, fx.engine.IsPlaying(), "до первого запланированного кадра")

	require.NoError(t, fx.frames.Step())
	assert.True(t, fx.engine.IsPlaying())
	assert.Equal(t, 2, fx.drawn())
	assert.Equal(t, 1, fx.frames.Pending())
}

func TestStartIsIdempotent(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.engine.Start())
	require.NoError(t, fx.engine.Start())
	assert.Equal(t, 1, fx.frames.Pending())
	assert.Equal(t, 1, fx.drawn())

	require.NoError(t, fx.frames.Step())
	require.NoError(t, fx.engine.Start())
	assert.Equal(t, 1, fx.frames.Pending())

	for i := 0; i < 5; i++ {
		require.NoError(t, fx.frames.Step())
		require.Equal(t, 1, fx.frames.Pending())
	}
	assert.Equal(t, 7, fx.drawn())
}

func TestPauseKeepsState(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.engine.Start())
	require.NoError(t, fx.frames.Step())

	before := fx.engine.Particles()
	fx.engine.Pause()
	assert.False(t, fx.engine.IsPlaying())
	assert.Zero(t, fx.frames.Pending())

	require.NoError(t, fx.frames.Step())
	after := fx.engine.Particles()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].X, after[i].X)
		assert.Equal(t, before[i].Y, after[i].Y)
	}
	assert.Equal(t, 2, fx.drawn())
}

func TestPauseThenStartResumes(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.engine.Start())
	require.NoError(t, fx.frames.Step())
	require.True(t, fx.engine.IsPlaying())

	fx.engine.Pause()
	require.NoError(t, fx.engine.Start())
	assert.False(t, fx.engine.IsPlaying())
	assert.Equal(t, 1, fx.frames.Pending())
	assert.Equal(t, 20, fx.engine.ParticleCount())

	require.NoError(t, fx.frames.Step())
	assert.True(t, fx.engine.IsPlaying())
	assert.Equal(t, 4, fx.drawn())
}

func TestStaleCallbackDoesNothing(t *testing.T) {
	sched := &lazyScheduler{}
	surface := &recorder{}
	e, err := New(Options{
		Container: FixedSize{Width: 300, Height: 200},
		Surface:   surface,
		Scheduler: sched,
		Seed:      3,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	require.NoError(t, e.Start())
	e.Pause()
	require.NoError(t, e.Start())
	require.Len(t, sched.fns, 2)
	require.Equal(t, 2, surface.count("ClearRect"))

	// первый колбэк принадлежит прошлому запуску и должен промолчать
	require.NoError(t, sched.runAll())
	assert.Equal(t, 3, surface.count("ClearRect"))
	assert.True(t, e.IsPlaying())
	assert.Len(t, sched.fns, 1)
}

func TestReconfigureRejectsNonFiniteValues(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.engine.Start())
	before := fx.engine.Config()

	err := fx.engine.Reconfigure(config.Patch{Wave: config.WavePatch{HeightRatio: config.Float(math.NaN())}})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	err = fx.engine.Reconfigure(config.Patch{Bubble: config.BubblePatch{ScaleMin: config.Float(math.NaN())}})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	err = fx.engine.Reconfigure(config.Patch{Wave: config.WavePatch{HeightRatioChangeSpeed: config.Float(math.Inf(1))}})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	for i := 0; i < 5; i++ {
		require.NoError(t, fx.frames.Step())
	}
	assert.Equal(t, before, fx.engine.Config())
	assert.Equal(t, before.Wave.HeightRatio, fx.engine.HeightRatio())
}

func TestReconfigureHeightRatioTransitions(t *testing.T) {
	cfg := config.Default()
	cfg.Wave.HeightRatio = 0.5
	cfg.Wave.HeightRatioChangeSpeed = 0.02
	fx := newFixture(t, &cfg)
	require.NoError(t, fx.engine.Start())

	require.NoError(t, fx.engine.Reconfigure(config.Patch{Wave: config.WavePatch{HeightRatio: config.Float(0.8)}}))
	assert.Equal(t, 0.5, fx.engine.HeightRatio(), "уровень не прыгает сразу")

	prev := fx.engine.HeightRatio()
	for i := 0; i < 40; i++ {
		require.NoError(t, fx.frames.Step())
		cur := fx.engine.HeightRatio()
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.GreaterOrEqual(t, prev, 0.8)
	assert.Less(t, prev, 0.8+0.02+1e-9)
}

func TestReconfigureRejectsInvalidPatch(t *testing.T) {
	fx := newFixture(t, nil)
	before := fx.engine.Config()

	err := fx.engine.Reconfigure(config.Patch{Bubble: config.BubblePatch{
		SpeedMin: config.Float(5),
		AlphaMax: config.Float(2),
	}})
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, before, fx.engine.Config())

	err = fx.engine.Reconfigure(config.Patch{Bubble: config.BubblePatch{Direction: config.Dir("sideways")}})
	require.ErrorIs(t, err, config.ErrUnknownDirection)

	err = fx.engine.Reconfigure(config.Patch{Wave: config.WavePatch{HeightRatio: config.Float(1.5)}})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	err = fx.engine.Reconfigure(config.Patch{Bubble: config.BubblePatch{Color: config.String("nope")}})
	require.ErrorIs(t, err, ErrInvalidColor)
	assert.Equal(t, before, fx.engine.Config())
}

func TestReconfigureMergesShallowly(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.engine.Reconfigure(config.Patch{
		Bubble: config.BubblePatch{SpeedMax: config.Float(4)},
		Wave:   config.WavePatch{PhaseSpeed: config.Float(0.2)},
	}))

	got := fx.engine.Config()
	assert.Equal(t, 4.0, got.Bubble.SpeedMax)
	assert.Equal(t, 0.2, got.Wave.PhaseSpeed)
	assert.Equal(t, config.Default().Bubble.SpeedMin, got.Bubble.SpeedMin)
	assert.Equal(t, 20, fx.engine.ParticleCount())
}

func TestReconfigureDirectionRebuildsOnNextFrame(t *testing.T) {
	fx := newFixture(t, nil)
	log := &eventLog{}
	fx.events.Subscribe(log, event.FieldRebuilt)
	require.NoError(t, fx.engine.Start())

	require.NoError(t, fx.engine.Reconfigure(config.Patch{Bubble: config.BubblePatch{Direction: config.Dir(config.Top)}}))
	assert.Equal(t, 20, fx.engine.ParticleCount(), "пересборка только на следующем кадре")

	require.NoError(t, fx.frames.Step())
	assert.Equal(t, 30, fx.engine.ParticleCount())
	require.Equal(t, []event.EventType{event.FieldRebuilt}, log.types)
	assert.Equal(t, event.RebuiltData{Particles: 30}, log.data[0])
	assert.Equal(t, config.Top, fx.engine.Config().Bubble.Direction)
}

func TestLifecycleEvents(t *testing.T) {
	fx := newFixture(t, nil)
	log := &eventLog{}
	fx.events.Subscribe(log, event.Started, event.Paused, event.Reconfigured, event.HeightRatioReached)

	require.NoError(t, fx.engine.Start())
	assert.Empty(t, log.types)
	require.NoError(t, fx.frames.Step())
	require.NoError(t, fx.engine.Reconfigure(config.Patch{Wave: config.WavePatch{
		HeightRatio:            config.Float(0.9),
		HeightRatioChangeSpeed: config.Float(0),
	}}))
	require.NoError(t, fx.frames.Step())
	fx.engine.Pause()
	fx.engine.Pause()

	assert.Equal(t, []event.EventType{
		event.Started,
		event.Reconfigured,
		event.HeightRatioReached,
		event.Paused,
	}, log.types)
	assert.Equal(t, event.HeightRatioData{Ratio: 0.9, Target: 0.9}, log.data[2])
}

func TestListenerMayCallEngine(t *testing.T) {
	fx := newFixture(t, nil)
	var seen []bool
	log := &eventLog{onEv: func(event.Event) {
		seen = append(seen, fx.engine.IsPlaying())
	}}
	fx.events.Subscribe(log, event.Started, event.Paused)

	require.NoError(t, fx.engine.Start())
	require.NoError(t, fx.frames.Step())
	fx.engine.Pause()
	assert.Equal(t, []bool{true, false}, seen)
}

func TestFrameErrorPropagates(t *testing.T) {
	fx := newFixture(t, nil)
	require.NoError(t, fx.engine.Start())
	require.NoError(t, fx.frames.Step())

	fx.colors.fail = true
	err := fx.frames.Step()
	require.ErrorIs(t, err, ErrInvalidColor)
	require.ErrorIs(t, err, errResolve)
	assert.False(t, fx.engine.IsPlaying())
	assert.Zero(t, fx.frames.Pending())

	fx.colors.fail = false
	require.NoError(t, fx.engine.Start())
	assert.Equal(t, 1, fx.frames.Pending())
}

func TestStartReturnsFirstFrameError(t *testing.T) {
	fx := newFixture(t, nil)
	fx.colors.fail = true
	require.ErrorIs(t, fx.engine.Start(), errResolve)
	assert.Zero(t, fx.frames.Pending())

	fx.colors.fail = false
	require.NoError(t, fx.engine.Start())
}
