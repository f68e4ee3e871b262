package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Decode decodes image bytes. TGA is selected by file extension since the
// format has no magic number; everything else goes through image.Decode.
func Decode(path string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with origin (0,0).
// When flipY is set rows are reversed so the first row is the bottom of
// the image, matching OpenGL texture coordinates.
func ImageToRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if flipY {
		row := make([]byte, rgba.Stride)
		h := rgba.Bounds().Dy()
		for y := 0; y < h/2; y++ {
			top := rgba.Pix[y*rgba.Stride : (y+1)*rgba.Stride]
			bot := rgba.Pix[(h-1-y)*rgba.Stride : (h-y)*rgba.Stride]
			copy(row, top)
			copy(top, bot)
			copy(bot, row)
		}
	}
	return rgba
}
