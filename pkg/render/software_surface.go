// pkg/render/software_surface.go
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// SoftwareSurface is a headless drawing surface rendered on the CPU by the
// canvas software backend. It needs no window or GPU and is used for
// offline rendering and tests.
type SoftwareSurface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	line    polyline
}

func NewSoftwareSurface() *SoftwareSurface {
	s := &SoftwareSurface{}
	s.SetSize(1, 1)
	return s
}

// Image returns the backing RGBA image (premultiplied alpha).
func (s *SoftwareSurface) Image() *image.RGBA {
	return s.backend.Image
}

func (s *SoftwareSurface) SetSize(width, height int) {
	if s.backend != nil {
		b := s.backend.Image.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
	}
	s.backend = softwarebackend.New(width, height)
	s.cv = canvas.New(s.backend)
}

func (s *SoftwareSurface) ClearRect(x, y, w, h float64) {
	s.cv.ClearRect(x, y, w, h)
}

func (s *SoftwareSurface) BeginPath() {
	s.cv.BeginPath()
	s.line.reset()
}

func (s *SoftwareSurface) ClosePath() {
	s.line.flush(s.emit)
	s.cv.ClosePath()
}

func (s *SoftwareSurface) LineTo(x, y float64) {
	s.line.lineTo(x, y, s.emit)
}

func (s *SoftwareSurface) Arc(x, y, radius, startAngle, endAngle float64) {
	s.line.flush(s.emit)
	s.cv.Arc(x, y, radius, startAngle, endAngle, false)
	s.line.moved(x+radius*math.Cos(endAngle), y+radius*math.Sin(endAngle))
}

func (s *SoftwareSurface) Fill() {
	s.line.flush(s.emit)
	s.cv.Fill()
}

func (s *SoftwareSurface) Save() {
	s.cv.Save()
}

func (s *SoftwareSurface) Restore() {
	s.cv.Restore()
}

func (s *SoftwareSurface) SetFillStyle(c color.Color) {
	s.cv.SetFillStyle(c)
}

func (s *SoftwareSurface) emit(x, y float64, move bool) {
	if move {
		s.cv.MoveTo(x, y)
		return
	}
	s.cv.LineTo(x, y)
}
