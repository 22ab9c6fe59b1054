package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

var ErrUnsupportedChannels = errors.New("only 1, 3 and 4 channel buffers can be converted to an image")

// ToImage copies an 8-bit buffer into an RGBA image. Single channel buffers become gray,
// 3 channel buffers get an opaque alpha.
func ToImage(buf *Buffer[uint8]) (*image.RGBA, error) {

	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))

	switch buf.Channels {
	case 4:
		copy(img.Pix, buf.Data)
	case 3, 1:
		for i, j := 0, 0; i < len(buf.Data); i, j = i+buf.Channels, j+4 {
			if buf.Channels == 1 {
				img.Pix[j], img.Pix[j+1], img.Pix[j+2] = buf.Data[i], buf.Data[i], buf.Data[i]
			} else {
				img.Pix[j], img.Pix[j+1], img.Pix[j+2] = buf.Data[i], buf.Data[i+1], buf.Data[i+2]
			}
			img.Pix[j+3] = 255
		}
	default:
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedChannels, buf.Channels)
	}

	return img, nil
}

func WritePNG(w io.Writer, buf *Buffer[uint8]) error {

	img, err := ToImage(buf)
	if err != nil {
		return err
	}

	return png.Encode(w, img)
}

// SavePNG writes a screenshot of buf to path
func SavePNG(path string, buf *Buffer[uint8]) error {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot file '%s'. Err: %w", path, err)
	}

	if err := WritePNG(f, buf); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode screenshot '%s'. Err: %w", path, err)
	}

	return f.Close()
}
