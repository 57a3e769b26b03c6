package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth = 1600
	jpegQuality     = 80
	maxSourceSize   = 20 << 20 // 20MB
)

// Image is a decoded, resized and re-encoded gallery image.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// ContentType is always JPEG; every image is re-encoded.
func (Image) ContentType() string { return "image/jpeg" }

// processImage decodes src, scales it down to maxWidth when wider, and
// encodes it as JPEG.
func processImage(src io.Reader, maxWidth int) (Image, error) {
	img, _, err := image.Decode(io.LimitReader(src, maxSourceSize))
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Image{Data: buf.Bytes(), Width: w, Height: h}, nil
}
