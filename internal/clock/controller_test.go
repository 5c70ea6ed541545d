package clock

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(seconds float64) time.Time {
	return epoch.Add(time.Duration(seconds * float64(time.Second)))
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, Running, c.State())
	assert.True(t, c.Running())
	assert.Equal(t, 1.0, c.Speed())
	assert.Zero(t, c.SimTime())
}

func TestTick_FirstCallIsZero(t *testing.T) {
	c := New()
	assert.Zero(t, c.Tick(at(100)))
	assert.Zero(t, c.SimTime())
}

func TestTick_SpeedMultiplier(t *testing.T) {
	c := New()
	require.NoError(t, c.SetSpeed(2.0))

	c.Tick(at(0))
	delta := c.Tick(at(1))

	assert.InDelta(t, 2.0, delta, 1e-9)
	assert.InDelta(t, 2.0, c.SimTime(), 1e-9)
}

func TestTick_PausedDoesNotAdvance(t *testing.T) {
	c := New()
	c.Tick(at(0))
	c.Pause()

	for i := 1; i <= 5; i++ {
		assert.Zero(t, c.Tick(at(float64(i)*10)))
	}
	assert.Zero(t, c.SimTime())
}

func TestResume_NoStaleDelta(t *testing.T) {
	c := New()
	c.Tick(at(0))
	c.Tick(at(1))
	c.Pause()
	c.Resume()

	// long gap between resume and the next frame is not attributed
	assert.Zero(t, c.Tick(at(60)))
	assert.InDelta(t, 0.5, c.Tick(at(60.5)), 1e-9)
	assert.InDelta(t, 1.5, c.SimTime(), 1e-9)
}

func TestPauseResume_Idempotent(t *testing.T) {
	c := New()
	c.Tick(at(0))

	c.Resume()
	assert.InDelta(t, 1.0, c.Tick(at(1)), 1e-9, "resume while running must keep the reference")

	c.Pause()
	c.Pause()
	assert.Equal(t, Paused, c.State())
	c.Resume()
	c.Resume()
	assert.Equal(t, Running, c.State())
}

func TestTick_WhilePausedUpdatesReference(t *testing.T) {
	c := New()
	c.Tick(at(0))
	c.Pause()
	c.Tick(at(30))
	c.state = Running // bypass Resume to observe the reference alone
	assert.InDelta(t, 1.0, c.Tick(at(31)), 1e-9)
}

func TestTick_BackwardsClock(t *testing.T) {
	c := New()
	c.Tick(at(10))
	assert.Zero(t, c.Tick(at(5)))
	assert.InDelta(t, 1.0, c.Tick(at(6)), 1e-9)
}

func TestSetSpeed_Invalid(t *testing.T) {
	c := New()
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), MaxSpeed * 2, MinSpeed / 2, math.MaxFloat64} {
		assert.ErrorIs(t, c.SetSpeed(v), ErrInvalidSpeed, "speed %v", v)
	}
	assert.Equal(t, 1.0, c.Speed())
}

func TestSetSpeed_AffectsSubsequentTicksOnly(t *testing.T) {
	c := New()
	c.Tick(at(0))
	c.Tick(at(1))
	require.NoError(t, c.SetSpeed(4))
	c.Tick(at(2))
	assert.InDelta(t, 5.0, c.SimTime(), 1e-9)
}

func TestFasterSlower(t *testing.T) {
	c := New()
	assert.Equal(t, 2.0, c.Faster())
	assert.Equal(t, 1.0, c.Slower())
	assert.Equal(t, 0.5, c.Slower())

	for i := 0; i < 40; i++ {
		c.Slower()
	}
	assert.Equal(t, MinSpeed, c.Speed())

	for i := 0; i < 40; i++ {
		c.Faster()
	}
	assert.Equal(t, MaxSpeed, c.Speed())
}

func TestToggle(t *testing.T) {
	c := New()
	assert.Equal(t, Paused, c.Toggle())
	assert.Equal(t, Running, c.Toggle())
	assert.Equal(t, "running", c.State().String())
}

func TestResetTime(t *testing.T) {
	c := New()
	require.NoError(t, c.SetSpeed(3))
	c.Tick(at(0))
	c.Tick(at(1))
	c.Pause()

	c.ResetTime()
	assert.Zero(t, c.SimTime())
	assert.Equal(t, 3.0, c.Speed())
	assert.Equal(t, Paused, c.State())
}

func TestSync(t *testing.T) {
	c := New()
	c.Tick(at(0))
	c.Sync(at(50))
	assert.Zero(t, c.SimTime())
	assert.InDelta(t, 1.0, c.Tick(at(51)), 1e-9)
}

func TestRewind(t *testing.T) {
	c := New()
	c.Tick(at(0))
	d := c.Tick(at(2))
	c.Rewind(d)
	assert.Zero(t, c.SimTime())

	c.Rewind(-1)
	assert.Zero(t, c.SimTime())
}

func TestSetSpeed_Bounds(t *testing.T) {
	c := New()
	require.NoError(t, c.SetSpeed(MaxSpeed))
	assert.Equal(t, MaxSpeed, c.Speed())
	require.NoError(t, c.SetSpeed(MinSpeed))
	assert.Equal(t, MinSpeed, c.Speed())
}

func TestTick_HugeWallGapStaysFinite(t *testing.T) {
	c := New()
	require.NoError(t, c.SetSpeed(MaxSpeed))
	c.Tick(time.Time{})
	d := c.Tick(time.Unix(1<<40, 0))
	assert.False(t, math.IsInf(d, 0) || math.IsNaN(d), "delta %v", d)
	assert.False(t, math.IsInf(c.SimTime(), 0) || math.IsNaN(c.SimTime()), "sim time %v", c.SimTime())
}

func TestRewind_NonFinite(t *testing.T) {
	c := New()
	c.Tick(at(0))
	c.Tick(at(3))

	c.Rewind(math.Inf(1))
	c.Rewind(math.NaN())
	assert.InDelta(t, 3.0, c.SimTime(), 1e-9)
}
