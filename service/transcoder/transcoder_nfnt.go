//go:build !bimg
// +build !bimg

package transcoder

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/Legend-Systems/service-media/service/types"
	"github.com/nfnt/resize"
)

const jpegQuality = 85

// Resize scales the source image to fit within box preserving aspect
// ratio and re-encodes it as JPEG. Sources smaller than the box are
// re-encoded at their own size, never upscaled.
func Resize(src []byte, box types.BoundingBox) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	out := resize.Thumbnail(uint(box.Width), uint(box.Height), img, resize.Lanczos3)

	var buf bytes.Buffer
	err = jpeg.Encode(&buf, out, &jpeg.Options{
		Quality: jpegQuality,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:   buf.Bytes(),
		Width:  out.Bounds().Dx(),
		Height: out.Bounds().Dy(),
	}, nil
}
