// internal/config/patch.go
package config

// Patch — частичное изменение конфигурации. nil-поля не трогаются.
type Patch struct {
	Bubble BubblePatch `yaml:"bubble"`
	Wave   WavePatch   `yaml:"wave"`
}

type BubblePatch struct {
	AlphaMin       *float64   `yaml:"alphaMin,omitempty"`
	AlphaMax       *float64   `yaml:"alphaMax,omitempty"`
	ScaleMin       *float64   `yaml:"scaleMin,omitempty"`
	ScaleMax       *float64   `yaml:"scaleMax,omitempty"`
	Density        *float64   `yaml:"density,omitempty"`
	SpeedMin       *float64   `yaml:"speedMin,omitempty"`
	SpeedMax       *float64   `yaml:"speedMax,omitempty"`
	Swing          *bool      `yaml:"swing,omitempty"`
	SwingMin       *float64   `yaml:"swingMin,omitempty"`
	SwingMax       *float64   `yaml:"swingMax,omitempty"`
	Color          *string    `yaml:"color,omitempty"`
	Direction      *Direction `yaml:"direction,omitempty"`
	StartScattered *bool      `yaml:"startScattered,omitempty"`
	RandomColor    *bool      `yaml:"randomColor,omitempty"`
}

type WavePatch struct {
	Enabled                *bool    `yaml:"enabled,omitempty"`
	StartX                 *float64 `yaml:"startX,omitempty"`
	AxisLength             *float64 `yaml:"axisLength,omitempty"`
	WaveWidth              *float64 `yaml:"waveWidth,omitempty"`
	WaveHeight             *float64 `yaml:"waveHeight,omitempty"`
	PhaseSpeed             *float64 `yaml:"phaseSpeed,omitempty"`
	PhaseOffset            *float64 `yaml:"phaseOffset,omitempty"`
	HeightRatio            *float64 `yaml:"heightRatio,omitempty"`
	HeightRatioChangeSpeed *float64 `yaml:"heightRatioChangeSpeed,omitempty"`
	Color                  *string  `yaml:"color,omitempty"`
	FrontColor             *string  `yaml:"frontColor,omitempty"`
	BackColor              *string  `yaml:"backColor,omitempty"`
	FrontAlpha             *float64 `yaml:"frontAlpha,omitempty"`
	BackAlpha              *float64 `yaml:"backAlpha,omitempty"`
}

// Float, Bool, String и Dir — помощники для заполнения Patch
func Float(v float64) *float64 { return &v }
func Bool(v bool) *bool        { return &v }
func String(v string) *string  { return &v }
func Dir(v Direction) *Direction {
	return &v
}

// Apply накладывает изменения на c (неглубокое слияние)
func (p Patch) Apply(c *Config) {
	b, w := &c.Bubble, &c.Wave
	setFloat(&b.AlphaMin, p.Bubble.AlphaMin)
	setFloat(&b.AlphaMax, p.Bubble.AlphaMax)
	setFloat(&b.ScaleMin, p.Bubble.ScaleMin)
	setFloat(&b.ScaleMax, p.Bubble.ScaleMax)
	setFloat(&b.Density, p.Bubble.Density)
	setFloat(&b.SpeedMin, p.Bubble.SpeedMin)
	setFloat(&b.SpeedMax, p.Bubble.SpeedMax)
	setBool(&b.Swing, p.Bubble.Swing)
	setFloat(&b.SwingMin, p.Bubble.SwingMin)
	setFloat(&b.SwingMax, p.Bubble.SwingMax)
	setString(&b.Color, p.Bubble.Color)
	if p.Bubble.Direction != nil {
		b.Direction = *p.Bubble.Direction
	}
	setBool(&b.StartScattered, p.Bubble.StartScattered)
	setBool(&b.RandomColor, p.Bubble.RandomColor)

	setBool(&w.Enabled, p.Wave.Enabled)
	setFloat(&w.StartX, p.Wave.StartX)
	setFloat(&w.AxisLength, p.Wave.AxisLength)
	setFloat(&w.WaveWidth, p.Wave.WaveWidth)
	setFloat(&w.WaveHeight, p.Wave.WaveHeight)
	setFloat(&w.PhaseSpeed, p.Wave.PhaseSpeed)
	setFloat(&w.PhaseOffset, p.Wave.PhaseOffset)
	setFloat(&w.HeightRatio, p.Wave.HeightRatio)
	setFloat(&w.HeightRatioChangeSpeed, p.Wave.HeightRatioChangeSpeed)
	setString(&w.Color, p.Wave.Color)
	setString(&w.FrontColor, p.Wave.FrontColor)
	setString(&w.BackColor, p.Wave.BackColor)
	setFloat(&w.FrontAlpha, p.Wave.FrontAlpha)
	setFloat(&w.BackAlpha, p.Wave.BackAlpha)
}

// Structural сообщает, меняет ли переход from -> to то, что фиксируется
// при создании поля: направление, число пузырей, их цвета и раскладку.
func Structural(from, to Config) bool {
	a, b := from.Bubble, to.Bubble
	return a.Direction != b.Direction ||
		a.Density != b.Density ||
		a.Color != b.Color ||
		a.RandomColor != b.RandomColor ||
		a.StartScattered != b.StartScattered
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
