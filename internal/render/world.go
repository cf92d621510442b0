package render

import (
	"arcadelab/internal/assets"
	"arcadelab/internal/voxel"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Environment is the lighting and fog shared by every lit draw.
type Environment struct {
	Sky     mgl32.Vec3
	FogNear float32
	FogFar  float32
	Ambient float32
	SunDir  mgl32.Vec3
	Zenith  mgl32.Vec3
}

func DefaultEnvironment() Environment {
	return Environment{
		Sky:     Hex(0x7ec0ff),
		Zenith:  Hex(0x3d7fd9),
		FogNear: 40,
		FogFar:  160,
		Ambient: 0.45,
		SunDir:  mgl32.Vec3{1, 2, 1},
	}
}

var blockNames = map[voxel.BlockType]string{
	voxel.Grass: "grass",
	voxel.Dirt:  "dirt",
	voxel.Stone: "stone",
}

// WorldRenderer keeps one instanced batch per material per chunk and mirrors
// the registry through Sync.
type WorldRenderer struct {
	program  *Program
	cube     uint32
	textures map[voxel.BlockType][3]uint32
	chunks   map[voxel.ChunkCoord]map[voxel.BlockType]*instanceBatch
	mobs     *instanceBatch
	mobTint  mgl32.Vec4
}

func NewWorldRenderer(tex assets.BlockTextures) (*WorldRenderer, error) {
	prog, err := NewProgram("block.vert", "block.frag")
	if err != nil {
		return nil, err
	}
	r := &WorldRenderer{
		program:  prog,
		cube:     newCubeVBO(),
		textures: map[voxel.BlockType][3]uint32{},
		chunks:   map[voxel.ChunkCoord]map[voxel.BlockType]*instanceBatch{},
		mobTint:  RGBA(assets.MobColor),
	}
	for bt, name := range blockNames {
		faces, ok := tex[name]
		if !ok {
			continue
		}
		var ids [3]uint32
		for i, img := range faces {
			ids[i] = UploadTexture(img, gl.REPEAT)
		}
		r.textures[bt] = ids
	}
	r.mobs = newInstanceBatch(r.cube)

	prog.Use()
	prog.SetInt("texSide", 0)
	prog.SetInt("texTop", 1)
	prog.SetInt("texBottom", 2)
	return r, nil
}

// Sync uploads every chunk the registry rebuilt since the last call and frees
// the buffers the rebuild replaced. It returns how many chunks changed.
func (r *WorldRenderer) Sync(reg *voxel.Registry) int {
	dirty := reg.Dirty()
	for _, c := range dirty {
		if old, ok := r.chunks[c]; ok {
			for _, b := range old {
				b.delete()
			}
			delete(r.chunks, c)
		}
		mesh, ok := reg.Mesh(c)
		if !ok {
			continue
		}
		batches := map[voxel.BlockType]*instanceBatch{}
		for bt, offsets := range mesh.Instances {
			if len(offsets) == 0 {
				continue
			}
			b := newInstanceBatch(r.cube)
			b.upload(offsets)
			batches[bt] = b
		}
		r.chunks[c] = batches
	}
	return len(dirty)
}

func (r *WorldRenderer) begin(proj, view mgl32.Mat4, env Environment) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	p := r.program
	p.Use()
	p.SetMat4("projection", proj)
	p.SetMat4("view", view)
	p.SetVec3("sunDir", env.SunDir)
	p.SetFloat("ambient", env.Ambient)
	p.SetVec3("fogColor", env.Sky)
	p.SetFloat("fogNear", env.FogNear)
	p.SetFloat("fogFar", env.FogFar)
}

// Draw renders every chunk, one draw call per material.
func (r *WorldRenderer) Draw(proj, view mgl32.Mat4, env Environment) {
	r.begin(proj, view, env)
	p := r.program
	p.SetVec3("scale", mgl32.Vec3{1, 1, 1})

	for bt, name := range blockNames {
		ids, textured := r.textures[bt]
		p.SetBool("useTexture", textured)
		if textured {
			for i, id := range ids {
				gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
				gl.BindTexture(gl.TEXTURE_2D, id)
			}
		} else {
			p.SetVec4("tint", fallbackTint(name))
		}
		for _, batches := range r.chunks {
			if b, ok := batches[bt]; ok {
				b.draw()
			}
		}
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

// DrawBoxes renders untextured boxes of one size centred on each position.
func (r *WorldRenderer) DrawBoxes(proj, view mgl32.Mat4, env Environment, size mgl32.Vec3, centres []mgl32.Vec3) {
	if len(centres) == 0 {
		return
	}
	r.begin(proj, view, env)
	p := r.program
	p.SetVec3("scale", size)
	p.SetBool("useTexture", false)
	p.SetVec4("tint", r.mobTint)
	r.mobs.upload(centres)
	r.mobs.draw()
}

func fallbackTint(name string) mgl32.Vec4 {
	switch name {
	case "grass":
		return RGBA(assets.GrassColor)
	case "dirt":
		return RGBA(assets.DirtColor)
	}
	return RGBA(assets.StoneColor)
}

func (r *WorldRenderer) ChunkCount() int {
	return len(r.chunks)
}

func (r *WorldRenderer) Delete() {
	for _, batches := range r.chunks {
		for _, b := range batches {
			b.delete()
		}
	}
	r.mobs.delete()
	for _, ids := range r.textures {
		gl.DeleteTextures(3, &ids[0])
	}
	gl.DeleteBuffers(1, &r.cube)
	r.program.Delete()
}
