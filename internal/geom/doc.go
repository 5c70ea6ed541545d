// Package geom provides the 2D vector value type shared by the simulation
// packages.
//
// [Vec2] has value semantics: every operation returns a new vector and never
// mutates its receiver. Normalising a zero vector reports
// [ErrDegenerateVector] instead of producing NaN components.
package geom
