// pkg/render/ebiten_surface.go
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a canvas-style drawing surface backed by an offscreen
// ebiten image. Paths are filled with the non-zero rule so concave shapes
// such as the wave polygon render correctly.
type EbitenSurface struct {
	img     *ebiten.Image
	fillImg *ebiten.Image
	path    vector.Path
	line    polyline
	fill    color.Color
	stack   []color.Color
	fillVs  []ebiten.Vertex
	fillIs  []uint16
}

func NewEbitenSurface() *EbitenSurface {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	return &EbitenSurface{
		img:     ebiten.NewImage(1, 1),
		fillImg: fillImg,
		fill:    color.Black,
		fillVs:  make([]ebiten.Vertex, 0, 256),
		fillIs:  make([]uint16, 0, 768),
	}
}

// Image returns the offscreen image to be composited onto the screen.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

func (s *EbitenSurface) SetSize(width, height int) {
	b := s.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(width, height)
}

func (s *EbitenSurface) ClearRect(x, y, w, h float64) {
	b := s.img.Bounds()
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h))).Intersect(b)
	if r.Empty() {
		return
	}
	if r == b {
		s.img.Clear()
		return
	}
	s.img.SubImage(r).(*ebiten.Image).Clear()
}

func (s *EbitenSurface) BeginPath() {
	s.path = vector.Path{}
	s.line.reset()
}

func (s *EbitenSurface) ClosePath() {
	s.line.flush(s.emit)
	s.path.Close()
}

func (s *EbitenSurface) LineTo(x, y float64) {
	s.line.lineTo(x, y, s.emit)
}

func (s *EbitenSurface) Arc(x, y, radius, startAngle, endAngle float64) {
	s.line.flush(s.emit)
	sx := x + radius*math.Cos(startAngle)
	sy := y + radius*math.Sin(startAngle)
	if !s.line.started {
		s.path.MoveTo(float32(sx), float32(sy))
	}
	s.path.Arc(float32(x), float32(y), float32(radius), float32(startAngle), float32(endAngle), vector.Clockwise)
	s.line.moved(x+radius*math.Cos(endAngle), y+radius*math.Sin(endAngle))
}

func (s *EbitenSurface) Fill() {
	s.line.flush(s.emit)

	c := color.NRGBAModel.Convert(s.fill).(color.NRGBA)
	s.fillVs, s.fillIs = s.path.AppendVerticesAndIndicesForFilling(s.fillVs[:0], s.fillIs[:0])
	for i := range s.fillVs {
		s.fillVs[i].SrcX = 0
		s.fillVs[i].SrcY = 0
		s.fillVs[i].ColorR = float32(c.R) / 255
		s.fillVs[i].ColorG = float32(c.G) / 255
		s.fillVs[i].ColorB = float32(c.B) / 255
		s.fillVs[i].ColorA = float32(c.A) / 255
	}
	s.img.DrawTriangles(s.fillVs, s.fillIs, s.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.NonZero,
	})
}

func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.fill)
}

func (s *EbitenSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.fill = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *EbitenSurface) SetFillStyle(c color.Color) {
	s.fill = c
}

func (s *EbitenSurface) emit(x, y float64, move bool) {
	if move {
		s.path.MoveTo(float32(x), float32(y))
		return
	}
	s.path.LineTo(float32(x), float32(y))
}
