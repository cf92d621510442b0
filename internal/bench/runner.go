package bench

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"arcadelab/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"
)

const (
	CPU_STEP       = 10
	CPU_MAX        = 1000
	GPU_STEP       = 1000
	WORK_PER_LEVEL = 1000
	ANGLE_STEP     = 0.01
)

// CPUTest runs HeavyWork every frame while enabled and graphs the frame rate.
type CPUTest struct {
	Running   bool
	Intensity int
	Counter   *FrameCounter
	History   *History
	sink      float64
}

func NewCPUTest(intensity, graphHeight int, now func() time.Time) *CPUTest {
	return &CPUTest{
		Intensity: intensity,
		Counter:   NewFrameCounter(now),
		History:   NewHistory(graphHeight),
	}
}

// Toggle starts or stops the test. Starting clears the graph.
func (t *CPUTest) Toggle() bool {
	t.Running = !t.Running
	t.Counter.Reset()
	if t.Running {
		t.History.Clear()
	}
	logging.LogInfo("CPU test running=%v intensity=%d", t.Running, t.Intensity)
	return t.Running
}

func (t *CPUTest) Adjust(delta int) {
	t.Intensity = Adjust(t.Intensity, delta, 0, CPU_MAX)
}

// Frame does one frame of work and returns a new FPS sample when one is due.
func (t *CPUTest) Frame() (int, bool) {
	if !t.Running {
		return 0, false
	}
	t.sink += HeavyWork(t.Intensity * WORK_PER_LEVEL)
	fps, ok := t.Counter.Frame()
	if ok {
		t.History.Push(fps)
	}
	return fps, ok
}

// CubeField holds the random cube offsets drawn by the GPU test.
type CubeField struct {
	Offsets []mgl32.Vec3
}

// NewCubeField fills n offsets in [-1,1]x[-1,1]x[-2,0]. The work is split
// across CPUs, each part with its own generator derived from seed.
func NewCubeField(ctx context.Context, seed int64, n int) (*CubeField, error) {
	f := &CubeField{Offsets: make([]mgl32.Vec3, n)}
	parts := runtime.NumCPU()
	if parts > n {
		parts = 1
	}
	size := (n + parts - 1) / parts

	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < parts; p++ {
		lo, hi := p*size, (p+1)*size
		if hi > n {
			hi = n
		}
		rng := rand.New(rand.NewSource(seed + int64(p)))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				f.Offsets[i] = mgl32.Vec3{
					rng.Float32()*2 - 1,
					rng.Float32()*2 - 1,
					rng.Float32() * -2,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fill cube field: %w", err)
	}
	return f, nil
}

func (f *CubeField) Len() int {
	return len(f.Offsets)
}

func (f *CubeField) DrawCount(intensity int) int {
	if intensity < 0 {
		return 0
	}
	if intensity > len(f.Offsets) {
		return len(f.Offsets)
	}
	return intensity
}

// GPUTest tracks the draw-call flood state; the renderer reads Count and Angle.
type GPUTest struct {
	Running   bool
	Intensity int
	Angle     float32
	Field     *CubeField
	Counter   *FrameCounter
}

func NewGPUTest(field *CubeField, intensity int, now func() time.Time) *GPUTest {
	return &GPUTest{Field: field, Intensity: intensity, Counter: NewFrameCounter(now)}
}

func (t *GPUTest) Toggle() bool {
	t.Running = !t.Running
	t.Counter.Reset()
	logging.LogInfo("GPU test running=%v cubes=%d", t.Running, t.Count())
	return t.Running
}

func (t *GPUTest) Adjust(delta int) {
	t.Intensity = Adjust(t.Intensity, delta, 0, t.Field.Len())
}

func (t *GPUTest) Count() int {
	return t.Field.DrawCount(t.Intensity)
}

// Frame advances the rotation and counts the frame. The caller draws Count
// cubes at Angle between calls.
func (t *GPUTest) Frame() (int, bool) {
	if !t.Running {
		return 0, false
	}
	t.Angle += ANGLE_STEP
	return t.Counter.Frame()
}

// ProcessLoad samples CPU usage of this process and of the whole machine.
type ProcessLoad struct {
	proc *process.Process
}

func NewProcessLoad() (*ProcessLoad, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process: %w", err)
	}
	return &ProcessLoad{proc: p}, nil
}

// Sample returns CPU percent used since the previous call. System load is
// best effort and reported as -1 when unavailable.
func (l *ProcessLoad) Sample() (proc, system float64, err error) {
	proc, err = l.proc.Percent(0)
	if err != nil {
		return 0, -1, fmt.Errorf("process cpu: %w", err)
	}
	system = -1
	if all, err := cpu.Percent(0, false); err == nil && len(all) > 0 {
		system = all[0]
	}
	return proc, system, nil
}
