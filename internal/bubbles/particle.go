// internal/bubbles/particle.go
package bubbles

import (
	"math"

	"bubble-flutter/internal/config"
	"bubble-flutter/internal/utils"
)

// swingPeriod — делитель координаты по оси движения в косинусе покачивания
const swingPeriod = 80.0

// motion описывает движение для одного направления
type motion struct {
	horizontal bool    // движение вдоль X
	sign       float64 // знак приращения за кадр
	// exited — пузырь покинул видимую область
	exited func(p *Particle, w, h float64) bool
	// entry — координата по оси движения при возрождении
	entry func(p *Particle, w, h float64) float64
}

// motions — таблица направлений:
//
//	left   x += speed, x > w      -> x = -r
//	bottom y -= speed, y + r < 0  -> y = h + r
//	right  x -= speed, x + r < 0  -> x = w + r
//	top    y += speed, y > h      -> y = -r
var motions = map[config.Direction]motion{
	config.Left: {
		horizontal: true,
		sign:       1,
		exited:     func(p *Particle, w, h float64) bool { return p.X > w },
		entry:      func(p *Particle, w, h float64) float64 { return -p.Radius },
	},
	config.Bottom: {
		horizontal: false,
		sign:       -1,
		exited:     func(p *Particle, w, h float64) bool { return p.Y+p.Radius < 0 },
		entry:      func(p *Particle, w, h float64) float64 { return h + p.Radius },
	},
	config.Right: {
		horizontal: true,
		sign:       -1,
		exited:     func(p *Particle, w, h float64) bool { return p.X+p.Radius < 0 },
		entry:      func(p *Particle, w, h float64) float64 { return w + p.Radius },
	},
	config.Top: {
		horizontal: false,
		sign:       1,
		exited:     func(p *Particle, w, h float64) bool { return p.Y > h },
		entry:      func(p *Particle, w, h float64) float64 { return -p.Radius },
	},
}

// particleEnv — общее окружение пузырей одного поля. Поле — единственный
// владелец; конфигурация меняется только между кадрами.
type particleEnv struct {
	cfg    *config.BubbleConfig
	rng    *utils.PRNGService
	motion motion
	width  float64
	height float64
	ratio  float64 // физических пикселей на логический
}

// Particle — один пузырь
type Particle struct {
	X, Y   float64
	Speed  float64
	Radius float64
	Swing  float64 // амплитуда покачивания
	Alpha  float64
	Anchor float64 // координата по поперечной оси, вокруг которой идёт покачивание
	Color  string

	env *particleEnv
}

func newParticle(env *particleEnv, colorSpec string, scattered bool) *Particle {
	p := &Particle{env: env, Color: colorSpec}
	p.sample()
	if scattered {
		p.X = env.rng.Range(0, env.width)
		p.Y = env.rng.Range(0, env.height)
		if env.motion.horizontal {
			p.Anchor = p.Y
		} else {
			p.Anchor = p.X
		}
		return p
	}
	p.place()
	return p
}

// sample заново выбирает скорость, радиус, амплитуду и прозрачность
func (p *Particle) sample() {
	cfg, rng, ratio := p.env.cfg, p.env.rng, p.env.ratio
	p.Speed = rng.Range(cfg.SpeedMin, cfg.SpeedMax) * ratio
	p.Radius = rng.Range(cfg.ScaleMin, cfg.ScaleMax) * ratio
	p.Swing = rng.Range(cfg.SwingMin, cfg.SwingMax) * ratio
	p.Alpha = rng.Range(cfg.AlphaMin, cfg.AlphaMax)
}

// place ставит пузырь на стартовую сторону со случайной поперечной координатой
func (p *Particle) place() {
	e := p.env
	along := e.motion.entry(p, e.width, e.height)
	if e.motion.horizontal {
		p.X = along
		p.Y = e.rng.Range(0, e.height)
		p.Anchor = p.Y
	} else {
		p.Y = along
		p.X = e.rng.Range(0, e.width)
		p.Anchor = p.X
	}
}

func (p *Particle) respawn() {
	p.sample()
	p.place()
}

// Advance продвигает пузырь на один кадр. Покачивание считается от позиции
// прошлого кадра, до сдвига по оси движения.
func (p *Particle) Advance() {
	e := p.env
	m := e.motion
	if e.cfg.Swing {
		if m.horizontal {
			p.Y = p.Anchor + math.Cos(p.X/(swingPeriod*e.ratio))*p.Swing
		} else {
			p.X = p.Anchor + math.Cos(p.Y/(swingPeriod*e.ratio))*p.Swing
		}
	}
	if m.horizontal {
		p.X += m.sign * p.Speed
	} else {
		p.Y += m.sign * p.Speed
	}
	if m.exited(p, e.width, e.height) {
		p.respawn()
	}
}

// Draw рисует пузырь залитым кругом
func (p *Particle) Draw(s Surface, colors ColorResolver) error {
	c, err := colors.Resolve(p.Color, p.Alpha)
	if err != nil {
		return err
	}
	s.BeginPath()
	s.SetFillStyle(c)
	s.Arc(p.X, p.Y, p.Radius, 0, 2*math.Pi)
	s.Fill()
	return nil
}
