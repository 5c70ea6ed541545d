package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/gravsim/internal/geom"
)

const (
	viewMargin  = 0.15
	minViewSpan = 1e-6
)

// Viewport maps world coordinates onto the canvas. Its centre and span
// chase the bounding box of whatever it follows on a critically damped
// spring, so the frame glides instead of jumping when bodies swing out.
type Viewport struct {
	spring harmonica.Spring

	cx, cy, span    float64
	vcx, vcy, vspan float64
	primed          bool
}

func NewViewport(fps int) *Viewport {
	if fps < 1 {
		fps = 60
	}
	return &Viewport{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Follow moves the viewport one frame towards the box around pts. The first
// call snaps straight onto it.
func (v *Viewport) Follow(pts []geom.Vec2) {
	if len(pts) == 0 {
		return
	}
	cx, cy, span := frame(pts)
	if !v.primed {
		v.cx, v.cy, v.span = cx, cy, span
		v.primed = true
		return
	}
	v.cx, v.vcx = v.spring.Update(v.cx, v.vcx, cx)
	v.cy, v.vcy = v.spring.Update(v.cy, v.vcy, cy)
	v.span, v.vspan = v.spring.Update(v.span, v.vspan, span)
	v.span = math.Max(v.span, minViewSpan)
}

// Snap discards any motion and re-frames on the next Follow.
func (v *Viewport) Snap() {
	v.primed = false
	v.vcx, v.vcy, v.vspan = 0, 0, 0
}

func (v *Viewport) Center() geom.Vec2 { return geom.Vec2{X: v.cx, Y: v.cy} }
func (v *Viewport) Span() float64     { return v.span }

// Project returns the dot coordinates of p on a w x h dot canvas. The y
// axis points up in the world and down on screen.
func (v *Viewport) Project(p geom.Vec2, w, h int) (int, int) {
	span := math.Max(v.span, minViewSpan)
	scale := float64(min(w, h)) / span
	x := float64(w)/2 + (p.X-v.cx)*scale
	y := float64(h)/2 - (p.Y-v.cy)*scale
	return clampInt(x), clampInt(y)
}

func frame(pts []geom.Vec2) (cx, cy, span float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	span = math.Max(maxX-minX, maxY-minY) * (1 + 2*viewMargin)
	if span < minViewSpan {
		span = 1
	}
	return (minX + maxX) / 2, (minY + maxY) / 2, span
}

// keeps far-off points representable; the canvas drops them anyway
func clampInt(f float64) int {
	const limit = 1 << 20
	switch {
	case math.IsNaN(f):
		return -limit
	case f > limit:
		return limit
	case f < -limit:
		return -limit
	}
	return int(math.Round(f))
}
