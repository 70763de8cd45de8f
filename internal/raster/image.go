// Package raster holds decoded raster tiles and marker images as straight-alpha
// RGBA pixel buffers.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrEmptyImage = errors.New("image has no pixels")

// Image is an immutable RGBA8 image with straight (non-premultiplied) alpha.
// Pix holds Width*Height*4 bytes in row-major order.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Decode decodes png, jpeg, gif, webp, bmp and tiff payloads.
func Decode(data []byte) (*Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode raster: %w", err)
	}

	img := FromImage(src)
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, format)
	}

	return img, nil
}

func FromImage(src image.Image) *Image {
	b := src.Bounds()

	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*b.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	return &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    nrgba.Pix,
	}
}

// Resize returns a copy scaled to w x h with bilinear filtering.
func (i *Image) Resize(w, h int) *Image {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), i.NRGBA(), image.Rect(0, 0, i.Width, i.Height), draw.Src, nil)
	return &Image{Width: w, Height: h, Pix: dst.Pix}
}

// NRGBA returns a view of the pixels as a standard library image.
func (i *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    i.Pix,
		Stride: 4 * i.Width,
		Rect:   image.Rect(0, 0, i.Width, i.Height),
	}
}

func (i *Image) Size() image.Point {
	return image.Pt(i.Width, i.Height)
}

func (i *Image) ByteSize() int {
	return len(i.Pix)
}
