package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"termview/viewer"
)

// maxImageDim bounds decoded stills so the per-tick nearest-neighbor
// sampling stays cheap on large photos.
const maxImageDim = 1024

// ImageSource serves a still image as a single cached frame, over and over.
// A still never ends on its own; the user navigates away.
type ImageSource struct {
	path  string
	frame *viewer.Frame
}

// OpenImage decodes the image and converts it to a packed RGB frame.
func OpenImage(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDim || bounds.Dy() > maxImageDim {
		img = resize.Thumbnail(maxImageDim, maxImageDim, img, resize.NearestNeighbor)
		bounds = img.Bounds()
	}

	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
			i += 3
		}
	}

	return &ImageSource{
		path:  path,
		frame: &viewer.Frame{Pix: pix, Width: w, Height: h, Order: viewer.OrderRGB},
	}, nil
}

// Kind returns viewer.KindImage.
func (s *ImageSource) Kind() viewer.Kind { return viewer.KindImage }

// Path returns the media file path.
func (s *ImageSource) Path() string { return s.path }

// NextFrame returns the cached frame; an image has only one.
func (s *ImageSource) NextFrame() (*viewer.Frame, error) { return s.frame, nil }

// Close is a no-op; the decoded frame is plain memory.
func (s *ImageSource) Close() error { return nil }
