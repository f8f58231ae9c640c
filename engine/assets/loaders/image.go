package loaders

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lizual/lizual/engine/resources"
)

type ImageLoader struct{}

// Load decodes the image. The pixels stay top row first; flipping for GL
// happens at upload time, and FlipY only records the caller's request.
func (il *ImageLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	flip := true
	if p, ok := params.(*resources.ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}

	size := img.Bounds().Size()
	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     resources.ResourceTypeImage,
		DataSize: uint64(size.X * size.Y * 4),
		Data: &ImageResourceData{
			Image:  img,
			Format: format,
			FlipY:  flip,
		},
	}, nil
}

func (il *ImageLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

type ImageResourceData struct {
	Image  image.Image
	Format string
	FlipY  bool
}
