// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

const (
	ScreenWidth  = 960
	ScreenHeight = 540
	MaxDeltaTime = 0.06

	IndicatorOffsetX = 30
	IndicatorRadius  = 10.0

	TextOffsetX = 12
	TextOffsetY = 18
	TextLineGap = 16

	// HeightRatioStep — шаг изменения уровня волны по клавишам Up/Down
	HeightRatioStep = 0.1

	// MaxHeightRatioChangeSpeed — за один кадр уровень волны меняется не больше чем на всю высоту
	MaxHeightRatioChangeSpeed = 1.0
)

var (
	BackgroundColor    = color.RGBA{14, 40, 66, 255}
	TextLightColor     = color.RGBA{240, 240, 240, 255}
	IndicatorPlayColor = color.RGBA{50, 205, 50, 220}
	IndicatorStopColor = color.RGBA{220, 60, 60, 220}
	IndicatorStroke    = color.RGBA{240, 240, 240, 255}
)

var (
	// ErrInvalidConfig — общая ошибка валидации конфигурации
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownDirection — направление не из набора left/right/top/bottom
	ErrUnknownDirection = errors.New("unknown direction")
)

// Direction — сторона, с которой появляются пузыри
type Direction string

const (
	Left   Direction = "left"
	Right  Direction = "right"
	Top    Direction = "top"
	Bottom Direction = "bottom"
)

// Horizontal сообщает, движутся ли пузыри по оси X
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Valid проверяет, что направление известно
func (d Direction) Valid() bool {
	switch d {
	case Left, Right, Top, Bottom:
		return true
	}
	return false
}

// BubbleConfig — параметры пузырей
type BubbleConfig struct {
	AlphaMin       float64   `yaml:"alphaMin"`
	AlphaMax       float64   `yaml:"alphaMax"`
	ScaleMin       float64   `yaml:"scaleMin"` // радиус в пикселях
	ScaleMax       float64   `yaml:"scaleMax"`
	Density        float64   `yaml:"density"` // пузырей на пиксель стартовой стороны
	SpeedMin       float64   `yaml:"speedMin"`
	SpeedMax       float64   `yaml:"speedMax"`
	Swing          bool      `yaml:"swing"`
	SwingMin       float64   `yaml:"swingMin"`
	SwingMax       float64   `yaml:"swingMax"`
	Color          string    `yaml:"color"`
	Direction      Direction `yaml:"direction"`
	StartScattered bool      `yaml:"startScattered"`
	RandomColor    bool      `yaml:"randomColor"`
}

// WaveConfig — параметры волны под пузырями.
// FrontColor/BackColor, если заданы, заменяют Color для своего слоя.
type WaveConfig struct {
	Enabled                bool    `yaml:"enabled"`
	StartX                 float64 `yaml:"startX"`
	AxisLength             float64 `yaml:"axisLength"` // 0 — ширина поверхности
	WaveWidth              float64 `yaml:"waveWidth"`
	WaveHeight             float64 `yaml:"waveHeight"`
	PhaseSpeed             float64 `yaml:"phaseSpeed"`
	PhaseOffset            float64 `yaml:"phaseOffset"`
	HeightRatio            float64 `yaml:"heightRatio"`
	HeightRatioChangeSpeed float64 `yaml:"heightRatioChangeSpeed"`
	Color                  string  `yaml:"color"`
	FrontColor             string  `yaml:"frontColor"`
	BackColor              string  `yaml:"backColor"`
	FrontAlpha             float64 `yaml:"frontAlpha"`
	BackAlpha              float64 `yaml:"backAlpha"`
}

// Config — полная конфигурация эффекта
type Config struct {
	Bubble BubbleConfig `yaml:"bubble"`
	Wave   WaveConfig   `yaml:"wave"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	return Config{
		Bubble: BubbleConfig{
			AlphaMin:  0.1,
			AlphaMax:  0.3,
			ScaleMin:  10,
			ScaleMax:  30,
			Density:   0.1,
			SpeedMin:  0.5,
			SpeedMax:  2,
			Swing:     true,
			SwingMin:  -40,
			SwingMax:  40,
			Color:     "#fff",
			Direction: Left,
		},
		Wave: WaveConfig{
			Enabled:                true,
			WaveWidth:              0.008,
			WaveHeight:             18,
			PhaseSpeed:             0.09,
			HeightRatio:            0.4,
			HeightRatioChangeSpeed: 0.01,
			Color:                  "#1c86d1",
			FrontAlpha:             0.6,
			BackAlpha:              0.3,
		},
	}
}

// Validate проверяет диапазоны значений. Цвета здесь не разбираются,
// это делает движок через ColorResolver.
func (c *Config) Validate() error {
	if err := c.checkFinite(); err != nil {
		return err
	}
	b := c.Bubble
	if !b.Direction.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDirection, b.Direction)
	}
	if err := checkRange("alpha", b.AlphaMin, b.AlphaMax, 0, 1); err != nil {
		return err
	}
	if b.ScaleMin <= 0 || b.ScaleMin > b.ScaleMax {
		return fmt.Errorf("%w: scale range [%.2f, %.2f]", ErrInvalidConfig, b.ScaleMin, b.ScaleMax)
	}
	if b.Density < 0 || b.Density > 1 {
		return fmt.Errorf("%w: density %.3f outside [0, 1]", ErrInvalidConfig, b.Density)
	}
	if b.SpeedMin <= 0 || b.SpeedMin > b.SpeedMax {
		return fmt.Errorf("%w: speed range [%.2f, %.2f]", ErrInvalidConfig, b.SpeedMin, b.SpeedMax)
	}
	if b.SwingMin > 0 || b.SwingMax < 0 {
		return fmt.Errorf("%w: swing range [%.2f, %.2f] must contain 0", ErrInvalidConfig, b.SwingMin, b.SwingMax)
	}
	if !b.RandomColor && b.Color == "" {
		return fmt.Errorf("%w: bubble color is empty", ErrInvalidConfig)
	}

	w := c.Wave
	if w.AxisLength < 0 {
		return fmt.Errorf("%w: axisLength %.2f is negative", ErrInvalidConfig, w.AxisLength)
	}
	if w.WaveWidth <= 0 {
		return fmt.Errorf("%w: waveWidth must be positive", ErrInvalidConfig)
	}
	if w.WaveHeight < 0 {
		return fmt.Errorf("%w: waveHeight must not be negative", ErrInvalidConfig)
	}
	if w.HeightRatio < 0 || w.HeightRatio > 1 {
		return fmt.Errorf("%w: heightRatio %.3f outside [0, 1]", ErrInvalidConfig, w.HeightRatio)
	}
	if w.HeightRatioChangeSpeed < 0 || w.HeightRatioChangeSpeed > MaxHeightRatioChangeSpeed {
		return fmt.Errorf("%w: heightRatioChangeSpeed %.3f outside [0, %.0f]", ErrInvalidConfig, w.HeightRatioChangeSpeed, MaxHeightRatioChangeSpeed)
	}
	if w.FrontAlpha < 0 || w.FrontAlpha > 1 || w.BackAlpha < 0 || w.BackAlpha > 1 {
		return fmt.Errorf("%w: wave alpha outside [0, 1]", ErrInvalidConfig)
	}
	if w.Enabled && w.Color == "" && (w.FrontColor == "" || w.BackColor == "") {
		return fmt.Errorf("%w: wave color is empty", ErrInvalidConfig)
	}
	return nil
}

// checkFinite отклоняет NaN и бесконечности: сравнения диапазонов их не ловят
func (c *Config) checkFinite() error {
	b, w := c.Bubble, c.Wave
	fields := []struct {
		name string
		v    float64
	}{
		{"alphaMin", b.AlphaMin}, {"alphaMax", b.AlphaMax},
		{"scaleMin", b.ScaleMin}, {"scaleMax", b.ScaleMax},
		{"density", b.Density},
		{"speedMin", b.SpeedMin}, {"speedMax", b.SpeedMax},
		{"swingMin", b.SwingMin}, {"swingMax", b.SwingMax},
		{"startX", w.StartX}, {"axisLength", w.AxisLength},
		{"waveWidth", w.WaveWidth}, {"waveHeight", w.WaveHeight},
		{"phaseSpeed", w.PhaseSpeed}, {"phaseOffset", w.PhaseOffset},
		{"heightRatio", w.HeightRatio}, {"heightRatioChangeSpeed", w.HeightRatioChangeSpeed},
		{"frontAlpha", w.FrontAlpha}, {"backAlpha", w.BackAlpha},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidConfig, f.name)
		}
	}
	return nil
}

func checkRange(name string, lo, hi, min, max float64) error {
	if lo < min || hi > max || lo > hi {
		return fmt.Errorf("%w: %s range [%.2f, %.2f] outside [%.2f, %.2f]", ErrInvalidConfig, name, lo, hi, min, max)
	}
	return nil
}

// FrontSpec возвращает цвет переднего слоя волны
func (w WaveConfig) FrontSpec() string {
	if w.FrontColor != "" {
		return w.FrontColor
	}
	return w.Color
}

// BackSpec возвращает цвет заднего слоя волны
func (w WaveConfig) BackSpec() string {
	if w.BackColor != "" {
		return w.BackColor
	}
	return w.Color
}
