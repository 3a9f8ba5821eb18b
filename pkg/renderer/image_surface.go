package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for image formats the surface cannot encode
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// FormatFromPath picks the output format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ImageSurface is an in-memory Display backed by an RGBA image
type ImageSurface struct {
	mu      sync.Mutex
	img     *image.RGBA
	flushes int
}

// NewImageSurface creates a black surface of the given size
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) Width() int  { return s.img.Bounds().Dx() }
func (s *ImageSurface) Height() int { return s.img.Bounds().Dy() }

// DrawTile copies the tile's pixels onto the surface; pixels outside the
// surface are ignored
func (s *ImageSurface) DrawTile(tile *Tile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ly := 0; ly < tile.Height; ly++ {
		for lx := 0; lx < tile.Width; lx++ {
			s.img.Set(tile.X+lx, tile.Y+ly, tile.At(lx, ly))
		}
	}
}

// Flush records that the surface was presented
func (s *ImageSurface) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

// Flushes returns how many times Flush has been called
func (s *ImageSurface) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Image returns the backing image. It must not be read while a render is
// drawing into the surface.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Scaled returns a copy of the surface enlarged by an integer factor using
// nearest-neighbour sampling, so each rendered pixel becomes a sharp block
func (s *ImageSurface) Scaled(factor int) image.Image {
	if factor <= 1 {
		return s.img
	}
	return resize.Resize(uint(s.Width()*factor), uint(s.Height()*factor), s.img, resize.NearestNeighbor)
}

// Encode writes the surface in the requested format
func (s *ImageSurface) Encode(w io.Writer, format Format) error {
	return EncodeImage(w, s.img, format)
}

// EncodeImage writes img in the requested format
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}
