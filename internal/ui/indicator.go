// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bubble-flutter/internal/config"
	"bubble-flutter/pkg/render"
)

var whitePixel *ebiten.Image

func whiteImage() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
	}
	return whitePixel
}

// PlaybackIndicator — круглый индикатор воспроизведения.
// Внутри рисуется значок действия: две полосы во время игры, треугольник на паузе.
type PlaybackIndicator struct {
	X, Y           float32
	Radius         float32
	Playing        bool
	LastToggleTime time.Time
}

func NewPlaybackIndicator(x, y, radius float32) *PlaybackIndicator {
	return &PlaybackIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// SetPlaying меняет состояние; смена запускает пульсацию
func (i *PlaybackIndicator) SetPlaying(playing bool) {
	if i.Playing == playing {
		return
	}
	i.Playing = playing
	i.LastToggleTime = time.Now()
}

// Contains проверяет, попала ли точка в индикатор
func (i *PlaybackIndicator) Contains(x, y int) bool {
	dx := float32(x) - i.X
	dy := float32(y) - i.Y
	return dx*dx+dy*dy <= i.Radius*i.Radius
}

// Draw отрисовывает индикатор
func (i *PlaybackIndicator) Draw(screen *ebiten.Image) {
	elapsed := time.Since(i.LastToggleTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	r := i.Radius * float32(scale)

	stateColor := config.IndicatorStopColor
	if i.Playing {
		stateColor = config.IndicatorPlayColor
	}
	vector.DrawFilledCircle(screen, i.X, i.Y, r, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1.5, config.IndicatorStroke, true)

	icon := render.Darken(stateColor, 0.35)
	if i.Playing {
		// Две полосы (pause)
		w, h, gap := r*0.3, r*0.9, r*0.2
		vector.DrawFilledRect(screen, i.X-w-gap/2, i.Y-h/2, w, h, icon, true)
		vector.DrawFilledRect(screen, i.X+gap/2, i.Y-h/2, w, h, icon, true)
		return
	}
	// Треугольник (play)
	s := r * 0.5
	var path vector.Path
	path.MoveTo(i.X-s*0.8, i.Y-s)
	path.LineTo(i.X-s*0.8, i.Y+s)
	path.LineTo(i.X+s, i.Y)
	path.Close()
	fillPath(screen, &path, icon)
}

// fillPath заливает контур сплошным цветом
func fillPath(dst *ebiten.Image, path *vector.Path, c color.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := c.RGBA()
	for k := range vs {
		vs[k].SrcX, vs[k].SrcY = 1, 1
		vs[k].ColorR = float32(cr) / 0xffff
		vs[k].ColorG = float32(cg) / 0xffff
		vs[k].ColorB = float32(cb) / 0xffff
		vs[k].ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteImage(), op)
}
