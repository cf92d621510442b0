package assets

import (
	"image"
	"image/color"
	"path/filepath"

	"arcadelab/internal/logging"
)

// Face slots of a block texture set.
const (
	FaceSide = iota
	FaceTop
	FaceBottom
)

var (
	GrassColor = color.RGBA{R: 0x5d, G: 0x9b, B: 0x3a, A: 0xff}
	DirtColor  = color.RGBA{R: 0x86, G: 0x5d, B: 0x3a, A: 0xff}
	StoneColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	MobColor   = color.RGBA{R: 0x88, G: 0x44, B: 0x44, A: 0xff}
)

// BlockTextures holds side/top/bottom images per block name.
type BlockTextures map[string][3]*image.RGBA

type textureFile struct {
	block string
	face  int
	file  string
	solid color.RGBA
}

var blockTextureFiles = []textureFile{
	{"grass", FaceSide, "Grass.webp", GrassColor},
	{"grass", FaceTop, "Grass-top.png", GrassColor},
	{"grass", FaceBottom, "dirt.webp", DirtColor},
	{"dirt", FaceSide, "dirt.webp", DirtColor},
	{"stone", FaceSide, "Stone.jpg", StoneColor},
}

// LoadBlockTextures reads every block texture under dir. A missing or broken
// file is replaced by a flat colour and logged, never fatal. Blocks that only
// define a side texture reuse it on top and bottom.
func LoadBlockTextures(dir string) (BlockTextures, int) {
	cache := map[string]*image.RGBA{}
	out := BlockTextures{}
	missing := 0
	for _, tf := range blockTextureFiles {
		img, ok := cache[tf.file]
		if !ok {
			var err error
			img, err = LoadImage(filepath.Join(dir, tf.file))
			if err != nil {
				logging.LogWarn("Texture %s unavailable, using flat colour: %v", tf.file, err)
				img = Solid(tf.solid, 16)
				missing++
			}
			cache[tf.file] = img
		}
		faces := out[tf.block]
		faces[tf.face] = img
		out[tf.block] = faces
	}
	for name, faces := range out {
		for i := range faces {
			if faces[i] == nil {
				faces[i] = faces[FaceSide]
			}
		}
		out[name] = faces
	}
	return out, missing
}
