package bench

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestHeavyWork(t *testing.T) {
	assert.Equal(t, 0.0, HeavyWork(0))
	// i=0 contributes nothing, i=1 contributes the three terms
	s := math.Sin(1)
	want := s*math.Cos(1) + math.Sqrt(math.Abs(math.Tan(1)))*math.Log(2) + math.Pow(s, 3)*math.Exp(s)
	assert.InDelta(t, want, HeavyWork(2), 1e-12)
	assert.False(t, math.IsNaN(HeavyWork(5000)))
}

func TestFrameCounterSamplesEverySecond(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	fc := NewFrameCounter(clk.now)
	for i := 0; i < 59; i++ {
		clk.advance(16 * time.Millisecond)
		_, ok := fc.Frame()
		require.False(t, ok)
	}
	clk.advance(time.Second)
	fps, ok := fc.Frame()
	require.True(t, ok)
	assert.Equal(t, 60, fps)

	clk.advance(999 * time.Millisecond)
	_, ok = fc.Frame()
	assert.False(t, ok)
	clk.advance(time.Millisecond)
	fps, ok = fc.Frame()
	assert.True(t, ok)
	assert.Equal(t, 2, fps)
}

func TestHistoryClampsAndCaps(t *testing.T) {
	h := NewHistory(150)
	h.Push(400)
	assert.Equal(t, []int{150}, h.Samples())
	for i := 0; i < 120; i++ {
		h.Push(i)
	}
	assert.Equal(t, HISTORY_LEN, h.Len())
	assert.Equal(t, 20, h.Samples()[0])
	assert.Equal(t, 119, h.Samples()[HISTORY_LEN-1])

	pts := h.Points(200)
	assert.Equal(t, [2]float64{0, 130}, pts[0])
	assert.Equal(t, [2]float64{100, 150 - 70}, pts[50])
}

func TestAdjust(t *testing.T) {
	assert.Equal(t, 0, Adjust(5, -10, 0, 100))
	assert.Equal(t, 100, Adjust(95, 10, 0, 100))
	assert.Equal(t, 60, Adjust(50, 10, 0, 100))
}

func TestCPUTestToggleClearsGraph(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	ct := NewCPUTest(0, 150, clk.now)
	_, ok := ct.Frame()
	assert.False(t, ok)

	ct.Toggle()
	clk.advance(time.Second)
	fps, ok := ct.Frame()
	require.True(t, ok)
	assert.Equal(t, 1, fps)
	assert.Equal(t, 1, ct.History.Len())

	ct.Toggle()
	ct.Toggle()
	assert.Zero(t, ct.History.Len())

	ct.Adjust(-5)
	assert.Equal(t, 0, ct.Intensity)
	ct.Adjust(CPU_MAX * 2)
	assert.Equal(t, CPU_MAX, ct.Intensity)
}

func TestCubeField(t *testing.T) {
	f, err := NewCubeField(context.Background(), 3, 10000)
	require.NoError(t, err)
	require.Equal(t, 10000, f.Len())
	for _, o := range f.Offsets {
		assert.True(t, o.X() >= -1 && o.X() <= 1)
		assert.True(t, o.Y() >= -1 && o.Y() <= 1)
		assert.True(t, o.Z() >= -2 && o.Z() <= 0)
	}
	assert.Equal(t, 500, f.DrawCount(500))
	assert.Equal(t, 10000, f.DrawCount(40000000))
	assert.Equal(t, 0, f.DrawCount(-1))

	g, err := NewCubeField(context.Background(), 3, 10000)
	require.NoError(t, err)
	assert.Equal(t, f.Offsets, g.Offsets)

	empty, err := NewCubeField(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}

func TestCubeFieldCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCubeField(ctx, 1, 10000)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGPUTestAngle(t *testing.T) {
	f, err := NewCubeField(context.Background(), 1, 100)
	require.NoError(t, err)
	clk := &fakeClock{t: time.Unix(0, 0)}
	g := NewGPUTest(f, 1000, clk.now)
	assert.Equal(t, 100, g.Count())

	g.Frame()
	assert.Zero(t, g.Angle)
	g.Toggle()
	g.Frame()
	g.Frame()
	assert.InDelta(t, 0.02, g.Angle, 1e-6)

	g.Adjust(-GPU_STEP)
	assert.Equal(t, 0, g.Intensity)
}

func TestProcessLoad(t *testing.T) {
	l, err := NewProcessLoad()
	require.NoError(t, err)
	HeavyWork(100000)
	proc, _, err := l.Sample()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, proc, 0.0)
}
