package opengl

import (
	"image"
	"image/draw"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type TextureOptions struct {
	// Keep the image top row first instead of flipping to GL's bottom-left origin.
	NoFlip    bool
	Wrap      int32
	MinFilter int32
	MagFilter int32
	NoMipmaps bool
}

func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		Wrap:      gl.REPEAT,
		MinFilter: gl.LINEAR_MIPMAP_LINEAR,
		MagFilter: gl.LINEAR,
	}
}

type Texture struct {
	api     API
	id      uint32
	width   int32
	height  int32
	slot    uint32
	deleted bool
}

// NewTextureFromImage uploads img as an RGBA8 2D texture.
func NewTextureFromImage(api API, img image.Image, opts TextureOptions) (*Texture, error) {
	rgba := ToRGBA(img, !opts.NoFlip)
	return NewTextureFromRGBA(api, rgba, opts)
}

// NewTextureFromRGBA uploads already converted pixels as is.
func NewTextureFromRGBA(api API, rgba *image.RGBA, opts TextureOptions) (*Texture, error) {
	if opts.Wrap == 0 {
		opts.Wrap = gl.REPEAT
	}
	if opts.MagFilter == 0 {
		opts.MagFilter = gl.LINEAR
	}
	if opts.MinFilter == 0 {
		if opts.NoMipmaps {
			opts.MinFilter = gl.LINEAR
		} else {
			opts.MinFilter = gl.LINEAR_MIPMAP_LINEAR
		}
	}

	size := rgba.Rect.Size()
	t := &Texture{
		api:    api,
		id:     api.GenTexture(),
		width:  int32(size.X),
		height: int32(size.Y),
	}
	err := Call(api, "glTexImage2D", func() {
		api.BindTexture(gl.TEXTURE_2D, t.id)
		api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, opts.Wrap)
		api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, opts.Wrap)
		api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, opts.MinFilter)
		api.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, opts.MagFilter)
		api.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		api.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, t.width, t.height, gl.RGBA, gl.UNSIGNED_BYTE, rgba.Pix)
		if !opts.NoMipmaps {
			api.GenerateMipmap(gl.TEXTURE_2D)
		}
		api.BindTexture(gl.TEXTURE_2D, 0)
	})
	if err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

// ToRGBA converts img into a tightly packed RGBA image with its origin at 0,0,
// optionally flipping rows so the first row is the bottom of the picture.
func ToRGBA(img image.Image, flip bool) *image.RGBA {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	} else if flip {
		// do not flip the caller's pixels in place
		cp := image.NewRGBA(rgba.Rect)
		copy(cp.Pix, rgba.Pix)
		rgba = cp
	}
	if flip {
		flipRows(rgba)
	}
	return rgba
}

func flipRows(rgba *image.RGBA) {
	h := rgba.Rect.Dy()
	stride := rgba.Stride
	tmp := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := rgba.Pix[y*stride : (y+1)*stride]
		bottom := rgba.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

func (t *Texture) ID() uint32    { return t.id }
func (t *Texture) Width() int32  { return t.width }
func (t *Texture) Height() int32 { return t.height }

// Bind binds the texture to texture unit slot.
func (t *Texture) Bind(slot uint32) {
	t.slot = slot
	t.api.ActiveTexture(gl.TEXTURE0 + slot)
	t.api.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) Unbind() {
	t.api.ActiveTexture(gl.TEXTURE0 + t.slot)
	t.api.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) Delete() {
	if t.deleted {
		return
	}
	t.api.DeleteTexture(t.id)
	t.deleted = true
}

// NewTextureFromPixels uploads tightly packed RGBA8 pixels.
func NewTextureFromPixels(api API, width, height int32, pixels []byte, opts TextureOptions) (*Texture, error) {
	rgba := &image.RGBA{
		Pix:    pixels,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	if !opts.NoFlip {
		rgba = ToRGBA(rgba, true)
	}
	return NewTextureFromRGBA(api, rgba, opts)
}
