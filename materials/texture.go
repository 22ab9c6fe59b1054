package materials

import (
	"image"

	"github.com/bloeys/nrast/assets"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type TextureLoadOptions struct {
	GenMipMaps bool
	// NoSrgba stores the texels as plain rgba instead of srgb, for data that is not colour
	NoSrgba bool
}

type Texture struct {
	TexID  uint32
	Width  int32
	Height int32
}

func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.TexID)
	t.TexID = 0
}

func LoadTexturePNG(file string, loadOptions *TextureLoadOptions) (Texture, error) {

	img, err := assets.LoadPNG(file, &assets.ImageLoadOptions{FlipY: true, Parallelism: 2})
	if err != nil {
		return Texture{}, err
	}

	return NewTextureFromImage(img, loadOptions), nil
}

func NewTextureFromImage(img *image.NRGBA, loadOptions *TextureLoadOptions) Texture {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	tex := Texture{
		Width:  int32(img.Bounds().Dx()),
		Height: int32(img.Bounds().Dy()),
	}

	gl.GenTextures(1, &tex.TexID)
	gl.BindTexture(gl.TEXTURE_2D, tex.TexID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	internalFormat := int32(gl.SRGB_ALPHA)
	if loadOptions.NoSrgba {
		internalFormat = gl.RGBA8
	}

	// Rows are tightly packed only when the stride matches the width
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, tex.Width, tex.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	if loadOptions.GenMipMaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	return tex
}
