package lithology

import (
	"errors"
	"strings"
	"testing"
)

func csvReader(s string) *strings.Reader { return strings.NewReader(s) }

func TestReadPaletteCSV(t *testing.T) {
	src := "CODE,COLOR\n21,#ff0000\n57,#00ff00\n48,#0000ff\n"
	p, err := ReadPaletteCSV(csvReader(src), DefaultPaletteCSVOptions())
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 3 {
		t.Fatalf("got %d entries, want 3", p.Len())
	}
	if p.Entries[0] != (PaletteEntry{Code: "21", Color: Color{255, 0, 0}}) {
		t.Errorf("entry 0 = %+v", p.Entries[0])
	}
	c, err := p.ColorOf("48")
	if err != nil || c != (Color{0, 0, 255}) {
		t.Errorf("ColorOf(48) = %v, %v", c, err)
	}
	if _, err := p.ColorOf("99"); !errors.Is(err, ErrColorLookup) {
		t.Errorf("ColorOf(99): got %v, want ErrColorLookup", err)
	}
}

func TestReadPaletteCSVLayouts(t *testing.T) {
	opt := PaletteCSVOptions{
		Separator:   ';',
		SkipLines:   2,
		CodeColumn:  3,
		ColorColumn: 1,
		ColorFormat: FormatRGB,
	}
	src := "a;b;c\nd;e;f\n255 0 0;x;21\n0 255 0;y;57\n"
	p, err := ReadPaletteCSV(csvReader(src), opt)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 2 || p.Entries[1].Code != "57" || p.Entries[1].Color != (Color{0, 255, 0}) {
		t.Errorf("got %+v", p.Entries)
	}
}

func TestReadPaletteCSVDuplicateCodeKeepsFirst(t *testing.T) {
	src := "CODE,COLOR\n21,#ff0000\n21,#00ff00\n"
	p, err := ReadPaletteCSV(csvReader(src), DefaultPaletteCSVOptions())
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := p.ColorOf("21"); c != (Color{255, 0, 0}) {
		t.Errorf("ColorOf(21) = %v, want first occurrence", c)
	}
}

func TestReadPaletteCSVErrors(t *testing.T) {
	if _, err := ReadPaletteCSV(csvReader("CODE,COLOR\n"), DefaultPaletteCSVOptions()); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("no data rows: got %v, want ErrEmptyPalette", err)
	}
	opt := DefaultPaletteCSVOptions()
	opt.ColorColumn = 5
	if _, err := ReadPaletteCSV(csvReader("CODE,COLOR\n21,#ff0000\n"), opt); !errors.Is(err, ErrConfig) {
		t.Errorf("column out of range: got %v, want ErrConfig", err)
	}
	if _, err := ReadPaletteCSV(csvReader("CODE,COLOR\n21,notacolor\n"), DefaultPaletteCSVOptions()); !errors.Is(err, ErrFormat) {
		t.Errorf("bad color: got %v, want ErrFormat", err)
	}
}

func TestWritePaletteCSVRoundTrip(t *testing.T) {
	p := Palette{Entries: []PaletteEntry{
		{Code: "1", Color: Color{10, 20, 30}},
		{Code: "2", Color: Color{200, 100, 0}},
	}}
	var sb strings.Builder
	if err := WritePaletteCSV(&sb, p, ',', FormatHTML); err != nil {
		t.Fatal(err)
	}
	back, err := ReadPaletteCSV(csvReader(sb.String()), DefaultPaletteCSVOptions())
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != 2 || back.Entries[0] != p.Entries[0] || back.Entries[1] != p.Entries[1] {
		t.Errorf("round trip: got %+v", back.Entries)
	}
}
