// pkg/render/polyline.go
package render

import "math"

// minSegment is the smallest step, in pixels, a polyline vertex is kept for.
const minSegment = 0.5

// polyline thins consecutive LineTo points that are closer than minSegment
// and turns the first LineTo after BeginPath into a MoveTo.
// The last skipped point is held and emitted on flush so the path end is exact.
type polyline struct {
	started      bool
	lastX, lastY float64
	held         bool
	heldX, heldY float64
}

type emitFunc func(x, y float64, move bool)

func (p *polyline) reset() {
	*p = polyline{}
}

func (p *polyline) lineTo(x, y float64, emit emitFunc) {
	if !p.started {
		p.started = true
		p.lastX, p.lastY = x, y
		p.held = false
		emit(x, y, true)
		return
	}
	if math.Abs(x-p.lastX) < minSegment && math.Abs(y-p.lastY) < minSegment {
		p.held = true
		p.heldX, p.heldY = x, y
		return
	}
	p.held = false
	p.lastX, p.lastY = x, y
	emit(x, y, false)
}

func (p *polyline) flush(emit emitFunc) {
	if !p.held {
		return
	}
	p.held = false
	p.lastX, p.lastY = p.heldX, p.heldY
	emit(p.heldX, p.heldY, false)
}

// moved records a current point set by something other than lineTo (an arc).
func (p *polyline) moved(x, y float64) {
	p.started = true
	p.held = false
	p.lastX, p.lastY = x, y
}
