package assets

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
	"neilpa.me/go-stbi"
)

// LoadImage decodes a texture or sprite into RGBA. WebP goes through
// x/image; everything else is handed to stb_image.
func LoadImage(path string) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return loadWebP(path)
	}
	img, err := stbi.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

func loadWebP(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	src, err := webp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode webp %s: %w", path, err)
	}
	return ToRGBA(src), nil
}

func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst
}

// Solid is a single-colour square used when a texture file is missing.
func Solid(c color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
