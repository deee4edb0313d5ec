package lithology

import (
	"errors"
	"image/color"
	"testing"
)

func TestRenderInverseOfExtract(t *testing.T) {
	// Extract the scenario image, then render it back at the original
	// sampling: the per-row colors must reproduce exactly.
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

	img, err := Render(layers, rgbPalette, mapper, RenderOptions{
		Width:  1,
		Height: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	for y, want := range rows {
		got := img.RGBAAt(0, y)
		if got.R != want.R || got.G != want.G || got.B != want.B {
			t.Errorf("row %d = %v, want %v", y, got, want)
		}
	}
}

func TestRenderNullColorForGaps(t *testing.T) {
	layers := LayerList{
		{Code: "21", Top: 0, Bottom: 2},
		{Code: "57", Top: 5, Bottom: 7},
	}
	nullColor := Color{1, 2, 3}
	img, err := Render(layers, rgbPalette, identityMapper(t, 8), RenderOptions{
		Width:     2,
		Height:    8,
		NullColor: nullColor,
	})
	if err != nil {
		t.Fatal(err)
	}
	for y, want := range []Color{red, red, red, nullColor, nullColor, green, green, green} {
		got := img.RGBAAt(1, y)
		if got.R != want.R || got.G != want.G || got.B != want.B {
			t.Errorf("row %d = %v, want %v", y, got, want)
		}
	}
}

func TestRenderOpenBoundaries(t *testing.T) {
	// NaN boundaries resolve to the first and last output row.
	layers, _, err := ReadLayersCSV(
		csvReader("CODE,TOP,BOTTOM\n21,,3\n57,6,\n"),
		DefaultLayerCSVOptions(),
	)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(layers, rgbPalette, identityMapper(t, 10), RenderOptions{
		Width:     1,
		Height:    10,
		NullColor: Color{0, 0, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	top := img.RGBAAt(0, 0)
	if top.R != red.R || top.G != red.G || top.B != red.B {
		t.Errorf("row 0 = %v, want red", top)
	}
	bottom := img.RGBAAt(0, 9)
	if bottom.R != green.R || bottom.G != green.G || bottom.B != green.B {
		t.Errorf("row 9 = %v, want green", bottom)
	}
	gap := img.RGBAAt(0, 4)
	if gap != (color.RGBA{A: 255}) {
		t.Errorf("row 4 = %v, want null color", gap)
	}
}

func TestRenderUnknownCode(t *testing.T) {
	layers := LayerList{{Code: "99", Top: 0, Bottom: 3}}
	_, err := Render(layers, rgbPalette, identityMapper(t, 4), RenderOptions{Width: 1, Height: 4})
	if !errors.Is(err, ErrColorLookup) {
		t.Errorf("got %v, want ErrColorLookup", err)
	}
}

func TestRenderValidation(t *testing.T) {
	if _, err := Render(nil, rgbPalette, identityMapper(t, 4), RenderOptions{Width: 0, Height: 4}); !errors.Is(err, ErrConfig) {
		t.Errorf("zero width: got %v, want ErrConfig", err)
	}
	if _, err := Render(nil, Palette{}, identityMapper(t, 4), RenderOptions{Width: 1, Height: 4}); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("empty palette: got %v, want ErrEmptyPalette", err)
	}
	if _, err := Render(nil, rgbPalette, identityMapper(t, 5), RenderOptions{Width: 1, Height: 4}); !errors.Is(err, ErrConfig) {
		t.Errorf("mapper mismatch: got %v, want ErrConfig", err)
	}
}
