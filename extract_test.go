package lithology

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

var (
	red   = Color{255, 0, 0}
	green = Color{0, 255, 0}
	blue  = Color{0, 0, 255}
	white = Color{255, 255, 255}
)

var rgbPalette = Palette{Entries: []PaletteEntry{
	{Code: "21", Color: red},
	{Code: "57", Color: green},
	{Code: "48", Color: blue},
}}

// rowImage builds an image whose rows are filled with the given colors.
func rowImage(rows []Color, width int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, len(rows)))
	for y, c := range rows {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

func identityMapper(t *testing.T, rows int) DepthMapper {
	t.Helper()
	m, err := NewDepthMapper(rows, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestExtractGapAbsorption(t *testing.T) {
	// white rows are unclassifiable under a tight cutoff
	rows := []Color{red, red, white, white, red, red}
	img := rowImage(rows, 3)
	opt := DefaultExtractOptions()
	opt.MaxDistance = 0.02

	layers, err := NewExtractor(img, rgbPalette, identityMapper(t, 6)).Extract(opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 1 {
		t.Fatalf("fill gaps: got %d layers, want 1: %v", len(layers), layers)
	}
	if l := layers[0]; l.Code != "21" || l.Top != 0 || l.Bottom != 5 {
		t.Errorf("fill gaps: got %+v, want {21 0 5}", l)
	}

	opt.FillGaps = false
	layers, err = NewExtractor(img, rgbPalette, identityMapper(t, 6)).Extract(opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 2 {
		t.Fatalf("no fill: got %d layers, want 2: %v", len(layers), layers)
	}
	if layers[0] != (Layer{Code: "21", Top: 0, Bottom: 1}) ||
		layers[1] != (Layer{Code: "21", Top: 4, Bottom: 5}) {
		t.Errorf("no fill: got %v", layers)
	}
}

func TestExtractGapBetweenDifferentCodes(t *testing.T) {
	// A gap between different codes stays uncovered even with FillGaps.
	rows := []Color{red, red, white, green, green}
	layers, err := NewExtractor(rowImage(rows, 2), rgbPalette, identityMapper(t, 5)).
		Extract(DefaultExtractOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := LayerList{
		{Code: "21", Top: 0, Bottom: 1},
		{Code: "57", Top: 3, Bottom: 4},
	}
	if len(layers) != 2 || layers[0] != want[0] || layers[1] != want[1] {
		t.Errorf("got %v, want %v", layers, want)
	}
}

func TestExtractEdgeGapsStayUncovered(t *testing.T) {
	rows := []Color{white, red, red, red, white}
	layers, err := NewExtractor(rowImage(rows, 2), rgbPalette, identityMapper(t, 5)).
		Extract(DefaultExtractOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 1 || layers[0] != (Layer{Code: "21", Top: 1, Bottom: 3}) {
		t.Errorf("got %v, want one layer {21 1 3}", layers)
	}
}

func TestExtractRowModeTieBreak(t *testing.T) {
	// Two codes tie at two pixels each; the first seen scanning left to
	// right wins the row.
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x, c := range []Color{green, red, red, green} {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	layers, err := NewExtractor(img, rgbPalette, identityMapper(t, 2)).
		Extract(DefaultExtractOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 1 || layers[0].Code != "57" {
		t.Errorf("got %v, want one 57 layer", layers)
	}
}

func TestExtractRowModeExcludesUnclassified(t *testing.T) {
	// A single classified pixel carries the row even when every other
	// pixel is unclassifiable.
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x, c := range []Color{white, white, blue, white} {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	layers, err := NewExtractor(img, rgbPalette, identityMapper(t, 2)).
		Extract(DefaultExtractOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 1 || layers[0].Code != "48" {
		t.Errorf("got %v, want one 48 layer", layers)
	}
}

func TestExtractScenario(t *testing.T) {
	// 10-row single-column image: rows 0-3 red, 4-6 green, 7-9 blue,
	// mapped onto depths 100..109.
	rows := []Color{red, red, red, red, green, green, green, blue, blue, blue}
	mapper, err := NewDepthMapper(10, 100, 109, true)
	if err != nil {
		t.Fatal(err)
	}
	layers, err := NewExtractor(rowImage(rows, 1), rgbPalette, mapper).
		Extract(DefaultExtractOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		code        string
		top, bottom float64
	}{
		{"21", 100, 103},
		{"57", 104, 106},
		{"48", 107, 109},
	}
	if len(layers) != len(want) {
		t.Fatalf("got %d layers %v, want %d", len(layers), layers, len(want))
	}
	for i, w := range want {
		l := layers[i]
		if l.Code != w.code || math.Abs(l.Top-w.top) > 1e-9 || math.Abs(l.Bottom-w.bottom) > 1e-9 {
			t.Errorf("layer %d = %+v, want {%s %g %g}", i, l, w.code, w.top, w.bottom)
		}
	}
}

func TestExtractShifts(t *testing.T) {
	rows := []Color{red, red, red, red}
	opt := DefaultExtractOptions()
	opt.TopShift = 0.5
	opt.BottomShift = -0.5
	layers, err := NewExtractor(rowImage(rows, 1), rgbPalette, identityMapper(t, 4)).Extract(opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 1 || layers[0].Top != 0.5 || layers[0].Bottom != 2.5 {
		t.Errorf("got %v, want one layer {21 0.5 2.5}", layers)
	}
}

func TestExtractDropsDegenerateLayers(t *testing.T) {
	// A single-row run has zero thickness under the identity mapper.
	rows := []Color{red, green, green, green}
	layers, err := NewExtractor(rowImage(rows, 1), rgbPalette, identityMapper(t, 4)).
		Extract(DefaultExtractOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 1 || layers[0].Code != "57" {
		t.Errorf("got %v, want only the 57 layer", layers)
	}
}

func TestExtractAllUnclassified(t *testing.T) {
	rows := []Color{white, white, white}
	layers, err := NewExtractor(rowImage(rows, 2), rgbPalette, identityMapper(t, 3)).
		Extract(DefaultExtractOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 0 {
		t.Errorf("got %v, want no layers", layers)
	}
}

func TestExtractEmptyPalette(t *testing.T) {
	_, err := NewExtractor(rowImage([]Color{red}, 1), Palette{}, identityMapper(t, 1)).
		Extract(DefaultExtractOptions())
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("got %v, want ErrEmptyPalette", err)
	}
}
