// Package transcoder derives resized representations from source
// images. It is purely bytes in, bytes out, it knows nothing about
// storage or metadata.
package transcoder

import (
	"bytes"
	"image"

	// Imported for gif codec
	_ "image/gif"
	// Imported for png codec
	_ "image/png"
	// Imported for webp codec
	_ "golang.org/x/image/webp"

	"github.com/Legend-Systems/service-media/service/types"
)

// Result is a resized, re-encoded image and its actual dimensions.
// Output is always JPEG.
type Result struct {
	Data   []byte
	Width  int
	Height int
}

// Dimensions extracts the pixel size of an encoded image without
// decoding the full frame.
func Dimensions(src []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// fitWithin scales (w, h) down to fit box preserving aspect ratio.
// A source already inside the box keeps its size, never upscaled.
func fitWithin(w, h int, box types.BoundingBox) (int, int) {
	if w <= box.Width && h <= box.Height {
		return w, h
	}

	scaleW := float64(box.Width) / float64(w)
	scaleH := float64(box.Height) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	outW := int(float64(w) * scale)
	outH := int(float64(h) * scale)
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}
