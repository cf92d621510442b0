package voxel

import "math"

// World is the sparse block store. Absent keys are air. Besides the flat map
// it keeps an index of keys per chunk column so a chunk rebuild does not scan
// the whole world.
type World struct {
	blocks  map[Key]BlockType
	columns map[ChunkCoord]map[Key]struct{}
}

func NewWorld() *World {
	return &World{
		blocks:  make(map[Key]BlockType),
		columns: make(map[ChunkCoord]map[Key]struct{}),
	}
}

func (w *World) Len() int {
	return len(w.blocks)
}

func (w *World) Get(p BlockPos) BlockType {
	return w.blocks[Pack(p)]
}

func (w *World) Has(p BlockPos) bool {
	_, ok := w.blocks[Pack(p)]
	return ok
}

// Set stores t at p. Setting Air removes the block.
func (w *World) Set(p BlockPos, t BlockType) {
	if t == Air {
		w.Remove(p)
		return
	}
	k := Pack(p)
	w.blocks[k] = t
	c := p.Chunk()
	col, ok := w.columns[c]
	if !ok {
		col = make(map[Key]struct{}, CHUNK_SIZE*CHUNK_SIZE)
		w.columns[c] = col
	}
	col[k] = struct{}{}
}

// Remove deletes the block at p and reports whether one was there.
func (w *World) Remove(p BlockPos) bool {
	k := Pack(p)
	if _, ok := w.blocks[k]; !ok {
		return false
	}
	delete(w.blocks, k)
	if col, ok := w.columns[p.Chunk()]; ok {
		delete(col, k)
	}
	return true
}

// Solid reports whether the cell containing the point holds a block.
func (w *World) Solid(x, y, z float64) bool {
	return w.Has(CellAt(x, y, z))
}

func CellAt(x, y, z float64) BlockPos {
	return BlockPos{int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))}
}

// Blocks calls fn for every block in the chunk column.
func (w *World) Blocks(c ChunkCoord, fn func(p BlockPos, t BlockType)) {
	for k := range w.columns[c] {
		fn(k.Unpack(), w.blocks[k])
	}
}

func (w *World) ChunkLen(c ChunkCoord) int {
	return len(w.columns[c])
}

// Exposed reports whether at least one face of the block at p touches air.
func (w *World) Exposed(p BlockPos) bool {
	for _, d := range CardinalDirections {
		if !w.Has(p.Add(d)) {
			return true
		}
	}
	return false
}
