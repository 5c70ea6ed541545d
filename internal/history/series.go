// Package history records bounded time series sampled once per tick.
package history

import "fmt"

// DefaultCapacity matches the 100-point velocity plot of the orbit demo.
const DefaultCapacity = 100

type Sample struct {
	T     float64
	Value float64
}

// Series is a fixed-capacity ring of samples that drops the oldest entry
// when full.
type Series struct {
	buf   []Sample
	start int
	size  int
}

func NewSeries(capacity int) (*Series, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("history: capacity must be at least 1, got %d", capacity)
	}
	return &Series{buf: make([]Sample, capacity)}, nil
}

func (s *Series) Add(t, value float64) {
	idx := (s.start + s.size) % len(s.buf)
	s.buf[idx] = Sample{T: t, Value: value}
	if s.size < len(s.buf) {
		s.size++
	} else {
		s.start = (s.start + 1) % len(s.buf)
	}
}

// Samples returns the retained samples, oldest first.
func (s *Series) Samples() []Sample {
	out := make([]Sample, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.buf[(s.start+i)%len(s.buf)]
	}
	return out
}

// Values returns only the sample values, oldest first.
func (s *Series) Values() []float64 {
	out := make([]float64, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.buf[(s.start+i)%len(s.buf)].Value
	}
	return out
}

func (s *Series) Len() int      { return s.size }
func (s *Series) Capacity() int { return len(s.buf) }

func (s *Series) Reset() {
	s.start = 0
	s.size = 0
}
