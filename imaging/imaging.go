// Package imaging adapts Go images to and from the intensity and colour
// buffers consumed by the cubehelix mapper.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/cubehelix/cubehelix"
	"github.com/lixenwraith/cubehelix/render"
)

// IsMonochrome reports whether the image stores a single gray channel.
// Paletted images qualify when every palette entry is gray, as grayscale GIFs are.
func IsMonochrome(img image.Image) bool {
	switch src := img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	case *image.Paletted:
		return grayPalette(src.Palette)
	}
	m := img.ColorModel()
	return m == color.GrayModel || m == color.Gray16Model
}

func grayPalette(p color.Palette) bool {
	if len(p) == 0 {
		return false
	}
	for _, c := range p {
		r, g, b, _ := c.RGBA()
		if r != g || g != b {
			return false
		}
	}
	return true
}

// FromImage normalizes a monochrome image into an intensity buffer.
// Color images are rejected with a DomainError; convert them with ToGray first.
func FromImage(img image.Image) (*cubehelix.IntensityBuffer, error) {
	if !IsMonochrome(img) {
		return nil, &cubehelix.DomainError{
			Op:  "from image",
			Err: fmt.Errorf("%w: color model %T", cubehelix.ErrNotMonochrome, img.ColorModel()),
		}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := cubehelix.NewIntensityBuffer(w, h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			for x, v := range row {
				buf.Pix[y*w+x] = float64(v) / 0xff
			}
		}
	case *image.Gray16:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+2*w]
			for x := 0; x < w; x++ {
				v := uint16(row[2*x])<<8 | uint16(row[2*x+1])
				buf.Pix[y*w+x] = float64(v) / 0xffff
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
				buf.Pix[y*w+x] = float64(g.Y) / 0xffff
			}
		}
	}

	return buf, nil
}

// ToGray converts any image to 16-bit luminance
func ToGray(img image.Image) *image.Gray16 {
	bounds := img.Bounds()
	gray := image.NewGray16(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// ToImage quantizes a colour buffer into an 8-bit RGB image
func ToImage(cb *cubehelix.ColorBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cb.Width, cb.Height))
	for y := 0; y < cb.Height; y++ {
		off := y * img.Stride
		for x := 0; x < cb.Width; x++ {
			c := render.Quantize(cb.At(x, y))
			img.Pix[off+4*x] = c.R
			img.Pix[off+4*x+1] = c.G
			img.Pix[off+4*x+2] = c.B
			img.Pix[off+4*x+3] = 0xff
		}
	}
	return img
}

// Fit scales img down to fit within maxW x maxH, preserving aspect ratio.
// Images already within bounds are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 || maxW <= 0 || maxH <= 0 {
		return img
	}
	if srcW <= maxW && srcH <= maxH {
		return img
	}

	w, h := maxW, srcH*maxW/srcW
	if h > maxH {
		w, h = srcW*maxH/srcH, maxH
	}
	w = max(w, 1)
	h = max(h, 1)

	var dst draw.Image
	if IsMonochrome(img) {
		dst = image.NewGray16(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewNRGBA64(image.Rect(0, 0, w, h))
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// Load decodes PNG, JPEG, GIF, TIFF, BMP or WebP from path
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SavePNG encodes img to path
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
