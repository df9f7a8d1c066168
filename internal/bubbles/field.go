// internal/bubbles/field.go
package bubbles

import (
	"fmt"
	"math"

	"bubble-flutter/internal/config"
	"bubble-flutter/internal/utils"
	"bubble-flutter/pkg/render"
)

// backPhaseShift — сдвиг фазы заднего слоя волны
const backPhaseShift = 0.7 * math.Pi

// transition — анимированное изменение уровня волны
type transition struct {
	from, to float64
	active   bool
}

// Field владеет пузырями, фазой волны и переходом уровня волны.
// Живое значение уровня хранится в cfg.Wave.HeightRatio.
type Field struct {
	cfg       *config.Config
	colors    ColorResolver
	env       *particleEnv
	particles []*Particle
	wave      WaveCurve
	phase     float64
	trans     transition
	width     float64
	height    float64
}

// NewField создаёт поле размером width x height. cfg остаётся общим
// с владельцем и читается на каждом кадре.
func NewField(cfg *config.Config, width, height, ratio float64, rng *utils.PRNGService, colors ColorResolver) (*Field, error) {
	m, ok := motions[cfg.Bubble.Direction]
	if !ok {
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDirection, cfg.Bubble.Direction)
	}
	if err := checkColors(cfg, colors); err != nil {
		return nil, err
	}
	if ratio <= 0 {
		ratio = 1
	}

	f := &Field{
		cfg:    cfg,
		colors: colors,
		env: &particleEnv{
			cfg:    &cfg.Bubble,
			rng:    rng,
			motion: m,
			width:  width,
			height: height,
			ratio:  ratio,
		},
		phase:  cfg.Wave.PhaseOffset,
		width:  width,
		height: height,
	}

	edge := width
	if m.horizontal {
		edge = height
	}
	n := int(math.Floor(edge * cfg.Bubble.Density))
	if n < 0 {
		n = 0
	}
	f.particles = make([]*Particle, 0, n)
	for i := 0; i < n; i++ {
		spec := cfg.Bubble.Color
		if cfg.Bubble.RandomColor {
			spec = render.RandomSpec(rng.Float64(), rng.Float64(), rng.Float64())
		}
		f.particles = append(f.particles, newParticle(f.env, spec, cfg.Bubble.StartScattered))
	}
	return f, nil
}

// checkColors убеждается, что все цвета конфигурации разбираются
func checkColors(cfg *config.Config, colors ColorResolver) error {
	var specs []string
	if !cfg.Bubble.RandomColor {
		specs = append(specs, cfg.Bubble.Color)
	}
	if cfg.Wave.Enabled {
		specs = append(specs, cfg.Wave.FrontSpec(), cfg.Wave.BackSpec())
	}
	for _, spec := range specs {
		if _, err := colors.Resolve(spec, 1); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidColor, err)
		}
	}
	return nil
}

// carry переносит фазу волны и незавершённый переход из старого поля
func (f *Field) carry(prev *Field) {
	f.phase = prev.phase
	f.trans = prev.trans
}

// Particles возвращает пузыри в порядке создания
func (f *Field) Particles() []*Particle {
	return f.particles
}

// Phase возвращает текущую фазу волны
func (f *Field) Phase() float64 {
	return f.phase
}

// Transitioning сообщает, идёт ли переход уровня волны
func (f *Field) Transitioning() bool {
	return f.trans.active
}

// SeedTransition запускает переход уровня волны от текущего значения к to
func (f *Field) SeedTransition(to float64) {
	from := f.cfg.Wave.HeightRatio
	if to == from {
		f.trans = transition{}
		return
	}
	f.trans = transition{from: from, to: to, active: true}
}

// Advance продвигает поле на кадр и сообщает, завершился ли на этом
// кадре переход уровня волны
func (f *Field) Advance() bool {
	for _, p := range f.particles {
		p.Advance()
	}
	f.phase = utils.NormalizeAngle(f.phase + f.cfg.Wave.PhaseSpeed)
	return f.stepTransition()
}

// stepTransition двигает уровень на один шаг. Направление фиксируется
// при старте перехода; перелёт за цель не исправляется, переход просто
// завершается. Уровень при этом не выходит за [0, 1].
func (f *Field) stepTransition() bool {
	t := &f.trans
	if !t.active {
		return false
	}
	w := &f.cfg.Wave
	speed := w.HeightRatioChangeSpeed
	if speed <= 0 {
		w.HeightRatio = t.to
		t.active = false
		return true
	}
	if t.to > t.from {
		w.HeightRatio += speed
		if w.HeightRatio >= t.to {
			t.active = false
		}
	} else {
		w.HeightRatio -= speed
		if w.HeightRatio <= t.to {
			t.active = false
		}
	}
	if !t.active {
		w.HeightRatio = utils.Clamp(w.HeightRatio, 0, 1)
	}
	return !t.active
}

// Draw рисует кадр: очистка, задний и передний слои волны, затем пузыри
func (f *Field) Draw(s Surface) error {
	s.ClearRect(0, 0, f.width, f.height)

	w := f.cfg.Wave
	if w.Enabled {
		back, err := f.colors.Resolve(w.BackSpec(), w.BackAlpha)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidColor, err)
		}
		front, err := f.colors.Resolve(w.FrontSpec(), w.FrontAlpha)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidColor, err)
		}
		f.syncWave()
		f.wave.Draw(s, f.phase+backPhaseShift, back)
		f.wave.Draw(s, f.phase, front)
	}

	for _, p := range f.particles {
		if err := p.Draw(s, f.colors); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidColor, err)
		}
	}
	return nil
}

// syncWave переносит параметры волны из конфигурации
func (f *Field) syncWave() {
	w := f.cfg.Wave
	f.wave.StartX = w.StartX
	f.wave.AxisLength = w.AxisLength
	if f.wave.AxisLength <= 0 {
		f.wave.AxisLength = f.width
	}
	f.wave.WaveWidth = w.WaveWidth
	f.wave.WaveHeight = w.WaveHeight
	f.wave.HeightRatio = w.HeightRatio
	f.wave.Height = f.height
}
