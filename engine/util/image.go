package util

import (
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// LoadImageRGBA decodes a PNG, BMP or TIFF file into a tightly packed RGBA8 image.
// With flipY the rows are stored bottom-to-top, the way OpenGL expects texture data.
func LoadImageRGBA(filePath string, flipY bool) (*image.NRGBA, error) {
	file, err := os.Open(filePath)
	if err != nil {
		LogIOError(fmt.Sprintf("could not open image: %s", filePath))
		return nil, errors.Wrapf(err, "open image %s", filePath)
	}
	defer file.Close()
	img, err := DecodeImageRGBA(file, flipY)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %s", filePath)
	}
	LogTextureDebug(fmt.Sprintf("loaded %s (%dx%d)", filePath, img.Rect.Dx(), img.Rect.Dy()))
	return img, nil
}

func DecodeImageRGBA(r io.Reader, flipY bool) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	if flipY {
		FlipRowsInPlace(nrgba)
	}
	return nrgba, nil
}

// FlipRowsInPlace reverses the row order of img.
func FlipRowsInPlace(img *image.NRGBA) {
	height := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]uint8, rowLen)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		topRow := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		bottomRow := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, topRow)
		copy(topRow, bottomRow)
		copy(bottomRow, tmp)
	}
}
