// Package assets decodes image files into pixel data ready for upload.
package assets

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/mandykoh/prism"
)

type ImageLoadOptions struct {
	// FlipY puts the first row of the file at the bottom, which is where OpenGL expects it
	FlipY bool

	// Parallelism is passed to the pixel conversion. Zero means one goroutine.
	Parallelism int
}

// DecodePNG decodes a png of any pixel format into non-premultiplied 8-bit RGBA
func DecodePNG(r io.Reader, opts *ImageLoadOptions) (*image.NRGBA, error) {

	if opts == nil {
		opts = &ImageLoadOptions{}
	}

	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}

	nrgba := prism.ConvertImageToNRGBA(img, max(1, opts.Parallelism))
	if opts.FlipY {
		FlipVertical(nrgba)
	}

	return nrgba, nil
}

func LoadPNG(path string, opts *ImageLoadOptions) (*image.NRGBA, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodePNG(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode png '%s'. Err: %w", path, err)
	}

	return img, nil
}

// FlipVertical swaps rows in place
func FlipVertical(img *image.NRGBA) {

	b := img.Bounds()
	rowLen := b.Dx() * 4
	tmp := make([]byte, rowLen)

	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {

		topRow := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		bottomRow := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]

		copy(tmp, topRow)
		copy(topRow, bottomRow)
		copy(bottomRow, tmp)
	}
}
