package lithology

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// RenderOptions controls the inverse conversion from layers to image.
type RenderOptions struct {
	Width, Height int
	// NullColor fills rows covered by no layer.
	NullColor Color
	// TopShift and BottomShift are added to each layer's top and bottom
	// before the depth lookup.
	TopShift    float64
	BottomShift float64
}

// Render paints a Width x Height image from a layer list: each output
// row maps to a depth (or to its own index when the mapper is identity)
// and takes the color of the layer containing it, or NullColor when no
// layer does. This resamples the depth axis; fidelity to an extracted
// image depends on the output resolution matching the layer boundaries.
//
// Open-ended boundaries (NaN) resolve to the image's first and last row.
// Every layer code must have a palette color; a missing code fails with
// ErrColorLookup before any pixel is painted.
func Render(ll LayerList, p Palette, mapper DepthMapper, opt RenderOptions) (*image.RGBA, error) {
	if opt.Width < 1 || opt.Height < 1 {
		return nil, fmt.Errorf("%w: output size %dx%d", ErrConfig, opt.Width, opt.Height)
	}
	if p.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	if mapper.Rows != opt.Height {
		return nil, fmt.Errorf("%w: depth mapper spans %d rows, output height is %d", ErrConfig, mapper.Rows, opt.Height)
	}

	// Resolve colors and shifted bounds up front so lookup failures
	// abort before the output file is touched.
	colors := make([]color.RGBA, len(ll))
	bounds := make(LayerList, len(ll))
	for i, l := range ll {
		c, err := p.ColorOf(l.Code)
		if err != nil {
			return nil, err
		}
		colors[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		top, bottom := l.Top, l.Bottom
		if math.IsNaN(top) && i == 0 {
			top = mapper.RowToDepth(0)
		}
		if math.IsNaN(bottom) && i == len(ll)-1 {
			bottom = mapper.RowToDepth(float64(mapper.Rows - 1))
		}
		bounds[i] = Layer{Code: l.Code, Top: top + opt.TopShift, Bottom: bottom + opt.BottomShift}
	}

	nullColor := color.RGBA{R: opt.NullColor.R, G: opt.NullColor.G, B: opt.NullColor.B, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	for y := 0; y < opt.Height; y++ {
		d := mapper.RowToDepth(float64(y))
		rowColor := nullColor
		if i, ok := bounds.Find(d); ok {
			rowColor = colors[i]
		}
		for x := 0; x < opt.Width; x++ {
			img.SetRGBA(x, y, rowColor)
		}
	}
	return img, nil
}
