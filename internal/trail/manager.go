// Package trail keeps a bounded position history for each body.
//
// Each trail is a strict FIFO: points are kept in insertion order and the
// oldest are evicted first once a trail grows past the configured maximum
// length. No deduplication is performed.
package trail

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/geom"
)

// DefaultMaxLength matches the trail length the orbit demo started with.
const DefaultMaxLength = 1000

type Manager struct {
	maxLength int
	order     []string
	trails    map[string][]geom.Vec2
}

func New(maxLength int) (*Manager, error) {
	if maxLength < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, maxLength)
	}
	return &Manager{
		maxLength: maxLength,
		order:     make([]string, 0, 2),
		trails:    make(map[string][]geom.Vec2),
	}, nil
}

// AddBody registers id with a trail seeded by pos.
func (m *Manager) AddBody(id string, pos geom.Vec2) error {
	if _, ok := m.trails[id]; ok {
		return &BodyError{ID: id, Wrapped: ErrDuplicateBody}
	}
	pts := make([]geom.Vec2, 1, min(m.maxLength, 64))
	pts[0] = pos
	m.trails[id] = pts
	m.order = append(m.order, id)
	return nil
}

// Update appends pos to the trail of id, evicting the oldest points so the
// trail never exceeds MaxLength.
func (m *Manager) Update(id string, pos geom.Vec2) error {
	pts, ok := m.trails[id]
	if !ok {
		return &BodyError{ID: id, Wrapped: ErrUnknownBody}
	}
	pts = append(pts, pos)
	m.trails[id] = m.trim(pts)
	return nil
}

// Trail returns a copy of the points for id, oldest first.
func (m *Manager) Trail(id string) ([]geom.Vec2, error) {
	pts, ok := m.trails[id]
	if !ok {
		return nil, &BodyError{ID: id, Wrapped: ErrUnknownBody}
	}
	out := make([]geom.Vec2, len(pts))
	copy(out, pts)
	return out, nil
}

// Trails returns copies of every trail keyed by id.
func (m *Manager) Trails() map[string][]geom.Vec2 {
	out := make(map[string][]geom.Vec2, len(m.trails))
	for id, pts := range m.trails {
		c := make([]geom.Vec2, len(pts))
		copy(c, pts)
		out[id] = c
	}
	return out
}

func (m *Manager) MaxLength() int { return m.maxLength }

// IDs returns registered ids in registration order.
func (m *Manager) IDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// SetMaxLength changes the capacity and truncates every trail to its most
// recent n points.
func (m *Manager) SetMaxLength(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, n)
	}
	m.maxLength = n
	for id, pts := range m.trails {
		m.trails[id] = m.trim(pts)
	}
	return nil
}

// Clear empties the trail of id but keeps it registered.
func (m *Manager) Clear(id string) error {
	pts, ok := m.trails[id]
	if !ok {
		return &BodyError{ID: id, Wrapped: ErrUnknownBody}
	}
	m.trails[id] = pts[:0]
	return nil
}

func (m *Manager) ClearAll() {
	for id, pts := range m.trails {
		m.trails[id] = pts[:0]
	}
}

// Reseed empties the trail of id and seeds it with pos.
func (m *Manager) Reseed(id string, pos geom.Vec2) error {
	if err := m.Clear(id); err != nil {
		return err
	}
	m.trails[id] = append(m.trails[id], pos)
	return nil
}

func (m *Manager) trim(pts []geom.Vec2) []geom.Vec2 {
	if excess := len(pts) - m.maxLength; excess > 0 {
		// shift in place so the backing array does not grow without bound
		n := copy(pts, pts[excess:])
		pts = pts[:n]
	}
	return pts
}
