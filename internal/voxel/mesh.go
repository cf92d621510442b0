package voxel

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkMesh holds one instance list per material for a chunk. Each entry is
// the centre of a visible cube.
type ChunkMesh struct {
	Coord     ChunkCoord
	Instances map[BlockType][]mgl32.Vec3
	Version   uint64
}

func (m *ChunkMesh) Count() int {
	n := 0
	for _, inst := range m.Instances {
		n += len(inst)
	}
	return n
}

// BuildChunkMesh scans the blocks of c and keeps those with at least one face
// open to air. Neighbours across the chunk border are read from the world.
func BuildChunkMesh(w *World, c ChunkCoord) *ChunkMesh {
	m := &ChunkMesh{Coord: c, Instances: make(map[BlockType][]mgl32.Vec3, len(Materials))}
	w.Blocks(c, func(p BlockPos, t BlockType) {
		if !w.Exposed(p) {
			return
		}
		m.Instances[t] = append(m.Instances[t], mgl32.Vec3{float32(p.X) + 0.5, float32(p.Y) + 0.5, float32(p.Z) + 0.5})
	})
	// map iteration order is random, keep buffers stable between rebuilds
	for _, inst := range m.Instances {
		sort.Slice(inst, func(i, j int) bool {
			a, b := inst[i], inst[j]
			if a[1] != b[1] {
				return a[1] < b[1]
			}
			if a[0] != b[0] {
				return a[0] < b[0]
			}
			return a[2] < b[2]
		})
	}
	return m
}

// Registry owns the current mesh of every built chunk. Rebuilds replace the
// mesh wholesale and bump its version; the renderer polls Dirty to upload.
type Registry struct {
	world   *World
	meshes  map[ChunkCoord]*ChunkMesh
	dirty   map[ChunkCoord]struct{}
	version uint64
}

func NewRegistry(w *World) *Registry {
	return &Registry{
		world:  w,
		meshes: make(map[ChunkCoord]*ChunkMesh),
		dirty:  make(map[ChunkCoord]struct{}),
	}
}

func (r *Registry) Len() int {
	return len(r.meshes)
}

func (r *Registry) Mesh(c ChunkCoord) (*ChunkMesh, bool) {
	m, ok := r.meshes[c]
	return m, ok
}

func (r *Registry) Rebuild(c ChunkCoord) *ChunkMesh {
	r.version++
	m := BuildChunkMesh(r.world, c)
	m.Version = r.version
	r.meshes[c] = m
	r.dirty[c] = struct{}{}
	return m
}

// RebuildAround rebuilds the chunk holding p and any built neighbour whose
// border cells touch p, since their exposure may have changed.
func (r *Registry) RebuildAround(p BlockPos) []ChunkCoord {
	c := p.Chunk()
	touched := []ChunkCoord{c}
	for _, d := range [4]BlockPos{{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1}} {
		n := p.Add(d).Chunk()
		if n == c {
			continue
		}
		if _, ok := r.meshes[n]; ok {
			touched = append(touched, n)
		}
	}
	for _, t := range touched {
		r.Rebuild(t)
	}
	return touched
}

// Dirty returns chunks rebuilt since the last call and clears the set.
func (r *Registry) Dirty() []ChunkCoord {
	if len(r.dirty) == 0 {
		return nil
	}
	out := make([]ChunkCoord, 0, len(r.dirty))
	for c := range r.dirty {
		out = append(out, c)
	}
	r.dirty = make(map[ChunkCoord]struct{})
	return out
}
