package viewer

import (
	"image"
	"log"

	"github.com/lixenwraith/cubehelix/cubehelix"
	"github.com/lixenwraith/cubehelix/imaging"
	"github.com/lixenwraith/cubehelix/preview"
)

// MapImage maps a monochrome image at full resolution for export
func MapImage(src image.Image, p cubehelix.Params, workers int, logger *log.Logger) (*image.NRGBA, error) {
	in, err := imaging.FromImage(src)
	if err != nil {
		return nil, err
	}
	m := &cubehelix.Mapper{Workers: workers, Logger: logger}
	out, err := m.Apply(in, p)
	if err != nil {
		return nil, err
	}
	return imaging.ToImage(out), nil
}

// StripImage renders the preview strip as an image
func StripImage(p cubehelix.Params, width, height int) *image.NRGBA {
	return imaging.ToImage(preview.RenderStrip(p, width, height).ColorBuffer())
}
