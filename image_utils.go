package dsprep

import (
	"image"
	_ "image/jpeg" // Register the decoder.
	_ "image/png"  // Register the decoder.
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const jpegQuality = 95

// targetSize returns the size an image of width w and height h is scaled to. Exactly one of size
// (height, width) and factor must be set. Fractional sizes are truncated.
func targetSize(w, h int, size [2]int, factor int) (tw, th int) {
	if factor > 0 {
		return w / factor, h / factor
	}
	return size[1], size[0]
}

// resizeColor resamples img to width w and height h, selecting the filter based on the direction
// of the rescaling operation.
func resizeColor(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	filter := imaging.Linear
	if w*h < b.Dx()*b.Dy() {
		filter = imaging.Box
	}
	return imaging.Resize(img, w, h, filter)
}

// resizeNearest resamples img without interpolating pixel values, which keeps depth values and
// label ids intact. Paletted images keep their palette.
func resizeNearest(img image.Image, w, h int) image.Image {
	src, ok := img.(*image.Paletted)
	if !ok {
		return resize.Resize(uint(w), uint(h), img, resize.NearestNeighbor)
	}

	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, w, h), src.Palette)
	for y := 0; y < h; y++ {
		sy := b.Min.Y + y*b.Dy()/h
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			dst.SetColorIndex(x, y, src.ColorIndexAt(sx, sy))
		}
	}
	return dst
}

// decodeImageConfig opens the file at path and returns the results of image.DecodeConfig.
func decodeImageConfig(fs afero.Fs, path string) (config image.Config, format string, err error) {
	file, err := fs.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer logClose(file, path)

	config, format, err = image.DecodeConfig(file)
	if err != nil {
		return image.Config{}, "", errors.Wrapf(err, "cannot decode image header of %q", path)
	}
	return config, format, nil
}

// loadImage reads and decodes the image at path and returns the results of image.Decode.
func loadImage(fs afero.Fs, path string) (img image.Image, format string, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer logClose(f, path)

	img, format, err = image.Decode(f)
	if err != nil {
		return nil, "", errors.Wrapf(err, "cannot decode image %q", path)
	}
	return img, format, nil
}

// saveImage saves the image to path, encoding it as PNG or JPG, depending on the file extension
// of path. Missing parent directories are created.
func saveImage(fs afero.Fs, path string, img image.Image) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return errors.Wrapf(err, "cannot save image %q", path)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer closeWithErrCheck(f, &err)

	return imaging.Encode(f, img, format, imaging.JPEGQuality(jpegQuality))
}
