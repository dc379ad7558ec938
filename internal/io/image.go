package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"

	"golang.org/x/image/draw"
)

// ImageOptions controls post-processing of downloaded images.
//
// The zero value disables all processing.
type ImageOptions struct {
	// Resize scales images down to fit within MaxSize x MaxSize.
	Resize bool

	// MaxSize is the maximum width and height in pixels when Resize is set.
	MaxSize int

	// ConvertToJPEG re-encodes images as JPEG, so that files named *.jpg
	// really contain JPEG data.
	ConvertToJPEG bool
}

// Enabled reports whether any processing is requested.
func (o ImageOptions) Enabled() bool {
	return (o.Resize && o.MaxSize > 0) || o.ConvertToJPEG
}

// ImageService provides image processing operations for downloaded images.
//
// ImageService is used to:
//   - Resize images to fit maximum dimensions
//   - Convert images to JPEG format
//
// Example usage:
//
//	svc := NewImageService()
//	err := svc.ProcessFile(ctx, "/images/5901234123457-1.jpg", ImageOptions{
//	    Resize:        true,
//	    MaxSize:       1000,
//	    ConvertToJPEG: true,
//	})
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ProcessFile applies opts to the image stored at path, rewriting it in place.
//
// The file is only rewritten when processing succeeds; on error the original
// bytes stay on disk.
func (s *ImageService) ProcessFile(ctx context.Context, path string, opts ImageOptions) error {
	if !opts.Enabled() {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if opts.Resize && opts.MaxSize > 0 {
		data, err = s.ResizeImage(ctx, data, opts.MaxSize, opts.MaxSize)
	} else {
		data, err = s.ConvertToJPEG(ctx, data)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. Images already within bounds keep their size
// but are still re-encoded as JPEG.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x667
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(dst)
}

// ConvertToJPEG re-encodes an image (JPEG, PNG or GIF) as JPEG with 90% quality.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
