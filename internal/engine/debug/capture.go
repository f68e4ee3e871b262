// Package debug saves frames and depth buffers as PNG files.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture writes timestamped PNG files into a directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewCapture creates a capture writing <dir>/<prefix>_<timestamp>.png.
func NewCapture(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next Save would write.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format("2006-01-02_15-04-05.000"))
	if c.dir != "" {
		name = filepath.Join(c.dir, name)
	}
	return name
}

// Save encodes img and returns the written path.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := c.Filename()
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, nil
}

// FromPixels converts bottom-up RGBA rows, as glReadPixels returns
// them, into a top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// DepthImage maps normalized depths to gray levels, near is black.
// Values outside [0,1] are clamped.
func DepthImage(depth []float32, size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i, d := range depth {
		if i >= size*size {
			break
		}
		img.Pix[i] = Gray(d).Y
	}
	return img
}

// Gray returns the gray level of a depth.
func Gray(d float32) color.Gray {
	d = min(max(d, 0), 1)
	return color.Gray{Y: uint8(d*255 + 0.5)}
}
