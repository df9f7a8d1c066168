// pkg/render/color.go
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned for colour specs that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor understands "#rgb", "#rrggbb", "r,g,b", "rgb(r,g,b)",
// "rgba(r,g,b,a)" and CSS colour names.
func ParseColor(spec string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	switch {
	case s == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty spec", ErrInvalidColor)
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, spec, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseComponents(spec, s[len("rgba("):len(s)-1])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseComponents(spec, s[len("rgb("):len(s)-1])
	case strings.Contains(s, ","):
		return parseComponents(spec, s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, spec)
}

func parseComponents(spec, body string) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q: want 3 or 4 components", ErrInvalidColor, spec)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: %q: bad channel %q", ErrInvalidColor, spec, parts[i])
		}
		rgb[i] = uint8(math.Round(v))
	}
	a := uint8(255)
	if len(parts) == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || v < 0 || v > 1 {
			return color.NRGBA{}, fmt.Errorf("%w: %q: bad alpha %q", ErrInvalidColor, spec, parts[3])
		}
		a = alpha8(v)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: a}, nil
}

// WithAlpha replaces the alpha of c; alpha is clamped to [0, 1].
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = alpha8(alpha)
	return c
}

func alpha8(a float64) uint8 {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return uint8(math.Round(a * 255))
}

// Darken reduces the brightness of a colour by factor k in [0, 1].
func Darken(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}

// RandomSpec builds a "#rrggbb" spec from three unit-interval samples.
func RandomSpec(r, g, b float64) string {
	return colorful.Color{R: r, G: g, B: b}.Clamped().Hex()
}

// MaxCachedColors bounds the resolver cache. Random bubble colours produce a
// fresh spec on every rebuild, so the cache is dropped once it fills up.
const MaxCachedColors = 512

// ColorResolver turns colour specs into renderable colours at a given alpha.
// Parsed specs are cached; it is safe for concurrent use.
type ColorResolver struct {
	mu    sync.Mutex
	cache map[string]color.NRGBA
}

func NewColorResolver() *ColorResolver {
	return &ColorResolver{cache: make(map[string]color.NRGBA)}
}

// Resolve parses spec (cached) and applies alpha.
func (r *ColorResolver) Resolve(spec string, alpha float64) (color.Color, error) {
	r.mu.Lock()
	base, ok := r.cache[spec]
	r.mu.Unlock()
	if !ok {
		parsed, err := ParseColor(spec)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		if len(r.cache) >= MaxCachedColors {
			clear(r.cache)
		}
		r.cache[spec] = parsed
		r.mu.Unlock()
		base = parsed
	}
	return WithAlpha(base, alpha), nil
}

// Len reports how many parsed specs are cached.
func (r *ColorResolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}
