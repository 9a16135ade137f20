package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Open loads and decodes an image file. Format is sniffed from the
// content, and EXIF orientation is applied for camera photos.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("render: open image %s: %w", path, err)
	}
	return img, nil
}
