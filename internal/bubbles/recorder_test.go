package bubbles

import (
	"errors"
	"image/color"
	"io"
	"log"

	"bubble-flutter/internal/config"
	"bubble-flutter/internal/utils"
	"bubble-flutter/pkg/render"
)

// op — одна записанная операция поверхности
type op struct {
	name string
	args []float64
	fill color.Color
}

// recorder — поверхность, которая только записывает вызовы
type recorder struct {
	ops           []op
	width, height int
	fill          color.Color
	stack         []color.Color
}

func (r *recorder) add(name string, args ...float64) {
	r.ops = append(r.ops, op{name: name, args: args, fill: r.fill})
}

func (r *recorder) SetSize(w, h int) {
	r.width, r.height = w, h
	r.add("SetSize", float64(w), float64(h))
}
func (r *recorder) ClearRect(x, y, w, h float64) { r.add("ClearRect", x, y, w, h) }
func (r *recorder) BeginPath()                   { r.add("BeginPath") }
func (r *recorder) ClosePath()                   { r.add("ClosePath") }
func (r *recorder) LineTo(x, y float64)          { r.add("LineTo", x, y) }
func (r *recorder) Arc(x, y, radius, start, end float64) {
	r.add("Arc", x, y, radius, start, end)
}
func (r *recorder) Fill() { r.add("Fill") }
func (r *recorder) Save() {
	r.stack = append(r.stack, r.fill)
	r.add("Save")
}
func (r *recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.fill = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.add("Restore")
}
func (r *recorder) SetFillStyle(c color.Color) {
	r.fill = c
	r.add("SetFillStyle")
}

func (r *recorder) count(name string) int {
	n := 0
	for _, o := range r.ops {
		if o.name == name {
			n++
		}
	}
	return n
}

func (r *recorder) filter(name string) []op {
	var out []op
	for _, o := range r.ops {
		if o.name == name {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.ops = nil
}

var errResolve = errors.New("resolver broken")

// flakyColors — ColorResolver, который начинает падать по флагу
type flakyColors struct {
	inner *render.ColorResolver
	fail  bool
}

func (c *flakyColors) Resolve(spec string, alpha float64) (color.Color, error) {
	if c.fail {
		return nil, errResolve
	}
	return c.inner.Resolve(spec, alpha)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestField(cfg *config.Config, w, h float64) (*Field, error) {
	return NewField(cfg, w, h, 1, utils.NewPRNGService(42), render.NewColorResolver())
}

func newResolver() *render.ColorResolver {
	return render.NewColorResolver()
}
