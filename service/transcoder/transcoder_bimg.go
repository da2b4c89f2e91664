//go:build bimg
// +build bimg

package transcoder

import (
	"github.com/Legend-Systems/service-media/service/types"
	"gopkg.in/h2non/bimg.v1"
)

const jpegQuality = 85

// Resize scales the source image to fit within box preserving aspect
// ratio and re-encodes it as JPEG through libvips. Sources smaller
// than the box are re-encoded at their own size, never upscaled.
func Resize(src []byte, box types.BoundingBox) (*Result, error) {
	size, err := bimg.NewImage(src).Size()
	if err != nil {
		return nil, err
	}

	outW, outH := fitWithin(size.Width, size.Height, box)

	data, err := bimg.NewImage(src).Process(bimg.Options{
		Width:   outW,
		Height:  outH,
		Quality: jpegQuality,
		Type:    bimg.JPEG,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:   data,
		Width:  outW,
		Height: outH,
	}, nil
}
