// internal/bubbles/wave.go
package bubbles

import (
	"image/color"
	"math"
)

// waveSpan — числитель шага выборки: шаг = waveSpan / axisLength
const waveSpan = 20.0

// Point — вершина контура волны
type Point struct {
	X, Y float64
}

// WaveCurve — синусоида, залитая до нижнего края поверхности
type WaveCurve struct {
	StartX      float64
	AxisLength  float64 // должна быть > 0, поле подставляет ширину поверхности
	WaveWidth   float64
	WaveHeight  float64
	HeightRatio float64
	Height      float64 // высота поверхности

	buf []Point
}

// Baseline — уровень, вокруг которого колеблется волна
func (w *WaveCurve) Baseline() float64 {
	return w.Height * (1 - w.HeightRatio)
}

// Samples возвращает точки кривой для фазы phase. Срез переиспользуется
// между вызовами и действителен до следующего вызова.
func (w *WaveCurve) Samples(phase float64) []Point {
	w.buf = w.buf[:0]
	if w.AxisLength <= 0 {
		return w.buf
	}
	step := waveSpan / w.AxisLength
	base := w.Baseline()
	for i := 0; ; i++ {
		off := float64(i) * step
		if off >= w.AxisLength {
			break
		}
		x := w.StartX + off
		y := math.Sin(-(w.StartX+x)*w.WaveWidth+phase)*0.8 + 0.1
		w.buf = append(w.buf, Point{X: x, Y: base + y*w.WaveHeight})
	}
	return w.buf
}

// Draw заливает волну цветом fill
func (w *WaveCurve) Draw(s Surface, phase float64, fill color.Color) {
	pts := w.Samples(phase)
	if len(pts) == 0 {
		return
	}
	s.Save()
	s.BeginPath()
	for _, p := range pts {
		s.LineTo(p.X, p.Y)
	}
	s.LineTo(w.StartX+w.AxisLength, w.Height)
	s.LineTo(w.StartX, w.Height)
	s.LineTo(pts[0].X, pts[0].Y)
	s.ClosePath()
	s.SetFillStyle(fill)
	s.Fill()
	s.Restore()
}
