// Package lithology converts between three representations of a well's
// lithologic sequence: a raster image whose colors encode lithology, a
// tabular layer list (code, top depth, bottom depth) and a depth-indexed
// well-log curve.
package lithology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is the canonical 3-component color, one byte per channel.
type Color struct {
	R, G, B uint8
}

// Int packs the color into a single integer, equal to the #RRGGBB hex
// value interpreted as base 16.
func (c Color) Int() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// ColorFromInt unpacks a 0-16777215 integer into a Color.
func ColorFromInt(v int) (Color, error) {
	if v < 0 || v > 0xffffff {
		return Color{}, fmt.Errorf("%w: color integer %d out of range", ErrFormat, v)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ColorFormat selects the textual encoding of a color.
type ColorFormat int

const (
	// FormatHTML is an HTML hex triplet, "#RRGGBB".
	FormatHTML ColorFormat = iota
	// FormatRGB is three space-separated 0-255 integers.
	FormatRGB
	// FormatInt is a single 0-16777215 integer.
	FormatInt
)

func (f ColorFormat) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatInt:
		return "int"
	default:
		return "html"
	}
}

// ParseColorFormat resolves a format name from the CLI or a config file.
func ParseColorFormat(name string) (ColorFormat, error) {
	switch name {
	case "html":
		return FormatHTML, nil
	case "rgb":
		return FormatRGB, nil
	case "int":
		return FormatInt, nil
	}
	return 0, fmt.Errorf("%w: unknown color format %q", ErrConfig, name)
}

// ParseColor decodes text in the given format into a Color.
func ParseColor(text string, format ColorFormat) (Color, error) {
	switch format {
	case FormatHTML:
		if len(text) != 7 {
			return Color{}, fmt.Errorf("%w: color %q is not #RRGGBB", ErrFormat, text)
		}
		c, err := colorful.Hex(text)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color %q: %v", ErrFormat, text, err)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b}, nil
	case FormatRGB:
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return Color{}, fmt.Errorf("%w: color %q is not three integers", ErrFormat, text)
		}
		var comps [3]uint8
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 || v > 255 {
				return Color{}, fmt.Errorf("%w: color component %q out of range", ErrFormat, f)
			}
			comps[i] = uint8(v)
		}
		return Color{R: comps[0], G: comps[1], B: comps[2]}, nil
	case FormatInt:
		v, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return Color{}, fmt.Errorf("%w: color %q is not an integer", ErrFormat, text)
		}
		return ColorFromInt(v)
	}
	return Color{}, fmt.Errorf("%w: unknown color format %d", ErrConfig, format)
}

// FormatColor encodes a Color as text in the given format. The encoding
// round-trips through ParseColor for every format.
func FormatColor(c Color, format ColorFormat) string {
	switch format {
	case FormatRGB:
		return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
	case FormatInt:
		return strconv.Itoa(c.Int())
	default:
		return colorful.Color{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
		}.Hex()
	}
}
