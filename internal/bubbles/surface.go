// internal/bubbles/surface.go
package bubbles

import "image/color"

// Surface — холст, на котором рисуется эффект. Первый LineTo после
// BeginPath начинает новый контур (как в canvas 2D).
type Surface interface {
	SetSize(width, height int)
	ClearRect(x, y, w, h float64)
	BeginPath()
	ClosePath()
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Fill()
	Save()
	Restore()
	SetFillStyle(c color.Color)
}

// Container — внешний блок, задающий размер холста
type Container interface {
	Size() (width, height int)
}

// FixedSize — контейнер постоянного размера
type FixedSize struct {
	Width, Height int
}

func (s FixedSize) Size() (int, int) {
	return s.Width, s.Height
}

// Scheduler — источник кадровых колбэков (аналог requestAnimationFrame).
// RequestFrame не должен вызывать колбэк синхронно.
type Scheduler interface {
	RequestFrame(fn func() error) uint64
	CancelFrame(id uint64)
}

// ColorResolver превращает описание цвета и прозрачность в цвет для отрисовки
type ColorResolver interface {
	Resolve(spec string, alpha float64) (color.Color, error)
}
