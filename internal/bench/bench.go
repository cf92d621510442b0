package bench

import (
	"math"
	"time"
)

// HeavyWork burns CPU with a trigonometric loop. The result is returned so the
// compiler cannot drop the work.
func HeavyWork(iterations int) float64 {
	x := 0.0
	for i := 0; i < iterations; i++ {
		f := float64(i)
		s := math.Sin(f)
		x += s * math.Cos(f)
		x += math.Sqrt(math.Abs(math.Tan(float64(i%100)))) * math.Log(f+1)
		x += math.Pow(s, 3) * math.Exp(s)
	}
	return x
}

// FrameCounter counts frames and yields a frames-per-second sample once at
// least a second has passed since the previous one.
type FrameCounter struct {
	now    func() time.Time
	last   time.Time
	frames int
	FPS    int
}

func NewFrameCounter(now func() time.Time) *FrameCounter {
	if now == nil {
		now = time.Now
	}
	return &FrameCounter{now: now, last: now()}
}

func (f *FrameCounter) Reset() {
	f.frames = 0
	f.FPS = 0
	f.last = f.now()
}

// Frame records one frame and reports a new sample when one is due.
func (f *FrameCounter) Frame() (int, bool) {
	f.frames++
	now := f.now()
	if now.Sub(f.last) < time.Second {
		return 0, false
	}
	f.FPS = f.frames
	f.frames = 0
	f.last = now
	return f.FPS, true
}

const HISTORY_LEN = 100

// History keeps the latest FPS samples clamped to the graph height.
type History struct {
	Height  int
	samples []int
}

func NewHistory(height int) *History {
	return &History{Height: height}
}

func (h *History) Push(fps int) {
	if fps > h.Height {
		fps = h.Height
	}
	h.samples = append(h.samples, fps)
	if len(h.samples) > HISTORY_LEN {
		h.samples = h.samples[1:]
	}
}

func (h *History) Len() int {
	return len(h.samples)
}

func (h *History) Samples() []int {
	return h.samples
}

func (h *History) Clear() {
	h.samples = nil
}

// Points maps the samples onto a width x Height graph with y growing down.
func (h *History) Points(width float64) [][2]float64 {
	n := len(h.samples)
	pts := make([][2]float64, n)
	for i, v := range h.samples {
		pts[i] = [2]float64{float64(i) / float64(n) * width, float64(h.Height - v)}
	}
	return pts
}

// Adjust moves v by delta and keeps it in [lo, hi].
func Adjust(v, delta, lo, hi int) int {
	v += delta
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
