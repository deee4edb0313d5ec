package lithology

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ReadImage decodes a raster file fully into memory. PNG, JPEG, GIF,
// BMP and TIFF inputs are recognized.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrFormat, path, err)
	}
	return img, nil
}

// WriteImage encodes an image to a file, picking the codec from the
// file extension; unknown extensions get PNG. The file is removed on
// encoding failure so no partial artifact survives.
func WriteImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = encodeImage(f, img, strings.ToLower(filepath.Ext(path)))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func encodeImage(f *os.File, img image.Image, ext string) error {
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, nil)
	case ".gif":
		return gif.Encode(f, img, nil)
	case ".bmp":
		return bmp.Encode(f, img)
	case ".tif", ".tiff":
		return tiff.Encode(f, img, nil)
	default:
		return png.Encode(f, img)
	}
}
