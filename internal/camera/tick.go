package camera

// TICK_RATE is the fixed simulation step in seconds.
const TICK_RATE = 1.0 / 60.0

// MAX_CATCHUP bounds the ticks run for one frame after a stall.
const MAX_CATCHUP = 10

// Ticker accumulates frame time and hands out whole simulation ticks, keeping
// the remainder as an interpolation factor for rendering.
type Ticker struct {
	Rate        float64
	accumulator float64
}

func NewTicker() *Ticker {
	return &Ticker{Rate: TICK_RATE}
}

// Advance adds dt seconds and returns how many ticks to run plus the blend
// factor in [0,1] between the previous and current tick.
func (t *Ticker) Advance(dt float64) (int, float32) {
	t.accumulator += dt
	n := 0
	for t.accumulator >= t.Rate {
		t.accumulator -= t.Rate
		n++
		if n == MAX_CATCHUP {
			t.accumulator = 0
			break
		}
	}
	alpha := float32(t.accumulator / t.Rate)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return n, alpha
}
