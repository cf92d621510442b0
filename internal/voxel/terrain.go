package voxel

import (
	"context"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
	"golang.org/x/sync/errgroup"
)

// Terrain returns the surface height of a column.
type Terrain interface {
	Height(x, z int) int
}

// SineTerrain is the deterministic rolling-hills height field.
type SineTerrain struct {
	Base      int
	Amplitude float64
	Frequency float64
}

func NewSineTerrain(base int) SineTerrain {
	return SineTerrain{Base: base, Amplitude: 3, Frequency: 0.08}
}

func (t SineTerrain) Height(x, z int) int {
	return int(math.Floor(math.Sin(float64(x)*t.Frequency)*t.Amplitude + math.Cos(float64(z)*t.Frequency)*t.Amplitude + float64(t.Base)))
}

// SimplexTerrain sums octaves of OpenSimplex noise around Base.
type SimplexTerrain struct {
	Base  int
	noise opensimplex.Noise32

	amplitude   float32
	octaves     int
	lacunarity  float32
	persistence float32
	scale       float32
}

func NewSimplexTerrain(base int, seed int64) *SimplexTerrain {
	return &SimplexTerrain{
		Base:        base,
		noise:       opensimplex.New32(seed),
		amplitude:   8,
		octaves:     4,
		lacunarity:  1.5,
		persistence: 0.5,
		scale:       60,
	}
}

func (t *SimplexTerrain) Height(x, z int) int {
	val := float32(0)
	x1, z1 := float32(x), float32(z)
	amplitude := t.amplitude
	for i := 0; i < t.octaves; i++ {
		val += t.noise.Eval2(x1/t.scale, z1/t.scale) * amplitude
		x1 *= t.lacunarity
		z1 *= t.lacunarity
		amplitude *= t.persistence
	}
	return clampHeight(t.Base + int(math.Floor(float64(val))))
}

// PerlinTerrain uses classic Perlin noise.
type PerlinTerrain struct {
	Base      int
	Amplitude float64
	Scale     float64
	noise     *perlin.Perlin
}

func NewPerlinTerrain(base int, seed int64) *PerlinTerrain {
	return &PerlinTerrain{
		Base:      base,
		Amplitude: 8,
		Scale:     40,
		noise:     perlin.NewPerlin(2, 2, 3, seed),
	}
}

func (t *PerlinTerrain) Height(x, z int) int {
	n := t.noise.Noise2D(float64(x)/t.Scale, float64(z)/t.Scale)
	return clampHeight(t.Base + int(math.Floor(n*t.Amplitude)))
}

// columns are filled from y=0, so the surface never goes below 1
func clampHeight(h int) int {
	if h < 1 {
		return 1
	}
	return h
}

// NewTerrain builds the height field named in config.
func NewTerrain(kind string, base int, seed int64) (Terrain, error) {
	switch kind {
	case "", "sine":
		return NewSineTerrain(base), nil
	case "simplex":
		return NewSimplexTerrain(base, seed), nil
	case "perlin":
		return NewPerlinTerrain(base, seed), nil
	}
	return nil, fmt.Errorf("unknown terrain %q", kind)
}

// FillColumn writes grass at h and dirt over stone below it down to y=0.
func FillColumn(w *World, x, z, h int) {
	w.Set(BlockPos{x, h, z}, Grass)
	for y := h - 1; y >= 0; y-- {
		if y < h-4 {
			w.Set(BlockPos{x, y, z}, Stone)
		} else {
			w.Set(BlockPos{x, y, z}, Dirt)
		}
	}
}

// Generator fills chunks from a Terrain and remembers which ones it has done.
type Generator struct {
	World     *World
	Terrain   Terrain
	generated map[ChunkCoord]struct{}
}

func NewGenerator(w *World, t Terrain) *Generator {
	return &Generator{World: w, Terrain: t, generated: make(map[ChunkCoord]struct{})}
}

func (g *Generator) Generated(c ChunkCoord) bool {
	_, ok := g.generated[c]
	return ok
}

// GenerateChunk fills every column of c. It returns false when c was already
// generated.
func (g *Generator) GenerateChunk(c ChunkCoord) bool {
	if g.Generated(c) {
		return false
	}
	heights := g.columnHeights(c)
	g.fill(c, heights)
	return true
}

func (g *Generator) columnHeights(c ChunkCoord) [CHUNK_SIZE][CHUNK_SIZE]int {
	var heights [CHUNK_SIZE][CHUNK_SIZE]int
	ox, oz := c.Origin()
	for x := 0; x < CHUNK_SIZE; x++ {
		for z := 0; z < CHUNK_SIZE; z++ {
			heights[x][z] = g.Terrain.Height(ox+x, oz+z)
		}
	}
	return heights
}

func (g *Generator) fill(c ChunkCoord, heights [CHUNK_SIZE][CHUNK_SIZE]int) {
	ox, oz := c.Origin()
	for x := 0; x < CHUNK_SIZE; x++ {
		for z := 0; z < CHUNK_SIZE; z++ {
			FillColumn(g.World, ox+x, oz+z, heights[x][z])
		}
	}
	g.generated[c] = struct{}{}
}

// GenerateRadius fills every chunk within r (square) of center and returns the
// chunks it created. Height sampling runs on a worker per chunk; the world
// itself is only written from the calling goroutine.
func (g *Generator) GenerateRadius(ctx context.Context, center ChunkCoord, r int) ([]ChunkCoord, error) {
	var todo []ChunkCoord
	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			c := ChunkCoord{center.X + x, center.Z + z}
			if !g.Generated(c) {
				todo = append(todo, c)
			}
		}
	}

	heights := make([][CHUNK_SIZE][CHUNK_SIZE]int, len(todo))
	eg, ctx := errgroup.WithContext(ctx)
	for i, c := range todo {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			heights[i] = g.columnHeights(c)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generate terrain around %v: %w", center, err)
	}

	for i, c := range todo {
		g.fill(c, heights[i])
	}
	return todo, nil
}
