package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateVector is returned when a zero-length vector is normalised.
var ErrDegenerateVector = errors.New("geom: cannot normalize zero-length vector")

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product, x1*y2 - y1*x2.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) NormSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Normalized() (Vec2, error) {
	n := v.Norm()
	if n == 0 {
		return Vec2{}, ErrDegenerateVector
	}
	return Vec2{v.X / n, v.Y / n}, nil
}

// IsFinite reports whether neither component is NaN or Inf.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Clamp limits both components to [-bound, bound].
func (v Vec2) Clamp(bound float64) Vec2 {
	return Vec2{clamp(v.X, bound), clamp(v.Y, bound)}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

func clamp(x, bound float64) float64 {
	if x > bound {
		return bound
	}
	if x < -bound {
		return -bound
	}
	return x
}
