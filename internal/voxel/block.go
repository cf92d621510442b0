package voxel

import "fmt"

const CHUNK_SIZE = 16

type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone
)

// Materials lists the drawable block types in draw order.
var Materials = []BlockType{Grass, Dirt, Stone}

func (b BlockType) String() string {
	switch b {
	case Grass:
		return "grass"
	case Dirt:
		return "dirt"
	case Stone:
		return "stone"
	}
	return "air"
}

type BlockPos struct {
	X, Y, Z int
}

func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

func (p BlockPos) Chunk() ChunkCoord {
	return ChunkOf(p.X, p.Z)
}

// face neighbours: up, down, +x, -x, +z, -z
var CardinalDirections = [6]BlockPos{
	{0, 1, 0}, {0, -1, 0},
	{1, 0, 0}, {-1, 0, 0},
	{0, 0, 1}, {0, 0, -1},
}

type ChunkCoord struct {
	X, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Z)
}

// Origin is the world position of the chunk's (0, 0) column.
func (c ChunkCoord) Origin() (x, z int) {
	return c.X * CHUNK_SIZE, c.Z * CHUNK_SIZE
}

func ChunkOf(x, z int) ChunkCoord {
	return ChunkCoord{floorDiv(x, CHUNK_SIZE), floorDiv(z, CHUNK_SIZE)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Key packs a block position into one integer so the world map can be keyed
// without allocating. Each axis is offset by keyOffset and kept in keyBits bits.
type Key uint64

const (
	keyBits   = 21
	keyMask   = 1<<keyBits - 1
	keyOffset = 1 << (keyBits - 1)
)

func Pack(p BlockPos) Key {
	ux := uint64(p.X+keyOffset) & keyMask
	uy := uint64(p.Y+keyOffset) & keyMask
	uz := uint64(p.Z+keyOffset) & keyMask
	return Key(ux<<(2*keyBits) | uy<<keyBits | uz)
}

func (k Key) Unpack() BlockPos {
	return BlockPos{
		X: int(uint64(k)>>(2*keyBits)&keyMask) - keyOffset,
		Y: int(uint64(k)>>keyBits&keyMask) - keyOffset,
		Z: int(uint64(k)&keyMask) - keyOffset,
	}
}
