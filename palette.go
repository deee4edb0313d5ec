package lithology

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// PaletteEntry binds an opaque lithology code to its reference color.
type PaletteEntry struct {
	Code  string
	Color Color
}

// Palette is the ordered code-to-color reference mapping. Order matters
// only when two entries share a color: classification then reports the
// first entry's code. A Palette is loaded once and shared read-only.
type Palette struct {
	Entries []PaletteEntry
}

// Len returns the number of entries.
func (p Palette) Len() int { return len(p.Entries) }

// ColorOf returns the color of the first entry with the given code.
func (p Palette) ColorOf(code string) (Color, error) {
	for _, e := range p.Entries {
		if e.Code == code {
			return e.Color, nil
		}
	}
	return Color{}, fmt.Errorf("%w: %q", ErrColorLookup, code)
}

// PaletteCSVOptions describes the layout of a palette CSV file.
// Column indices are 1-based, matching how the columns are counted in
// the source spreadsheets.
type PaletteCSVOptions struct {
	Separator   rune        // column separator, default ','
	SkipLines   int         // header lines to skip, default 1
	CodeColumn  int         // 1-based code column, default 1
	ColorColumn int         // 1-based color column, default 2
	ColorFormat ColorFormat // textual color encoding, default FormatHTML
}

// DefaultPaletteCSVOptions mirrors the historical defaults of the tool.
func DefaultPaletteCSVOptions() PaletteCSVOptions {
	return PaletteCSVOptions{
		Separator:   ',',
		SkipLines:   1,
		CodeColumn:  1,
		ColorColumn: 2,
		ColorFormat: FormatHTML,
	}
}

// ReadPaletteCSV parses a palette from delimited text. Duplicate codes
// are kept: lookups resolve to the first occurrence.
func ReadPaletteCSV(r io.Reader, opt PaletteCSVOptions) (Palette, error) {
	records, err := readCSV(r, opt.Separator, opt.SkipLines)
	if err != nil {
		return Palette{}, err
	}
	var p Palette
	for _, rec := range records {
		code, err := field(rec, opt.CodeColumn)
		if err != nil {
			return Palette{}, err
		}
		colorText, err := field(rec, opt.ColorColumn)
		if err != nil {
			return Palette{}, err
		}
		c, err := ParseColor(colorText, opt.ColorFormat)
		if err != nil {
			return Palette{}, err
		}
		p.Entries = append(p.Entries, PaletteEntry{Code: code, Color: c})
	}
	if p.Len() == 0 {
		return Palette{}, ErrEmptyPalette
	}
	return p, nil
}

// LoadPaletteCSV reads a palette from a file.
func LoadPaletteCSV(path string, opt PaletteCSVOptions) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, err
	}
	defer f.Close()
	return ReadPaletteCSV(f, opt)
}

// WritePaletteCSV writes a palette as delimited text with a CODE,COLOR
// header line.
func WritePaletteCSV(w io.Writer, p Palette, separator rune, format ColorFormat) error {
	cw := csv.NewWriter(w)
	cw.Comma = separator
	if err := cw.Write([]string{"CODE", "COLOR"}); err != nil {
		return err
	}
	for _, e := range p.Entries {
		if err := cw.Write([]string{e.Code, FormatColor(e.Color, format)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readCSV reads all records, returning header records separately from
// data records. Short rows are allowed; column checks happen per field.
func readCSV(r io.Reader, separator rune, skip int) ([][]string, error) {
	if separator == 0 {
		separator = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = separator
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if skip < 0 {
		return nil, fmt.Errorf("%w: negative header line count %d", ErrConfig, skip)
	}
	if skip > len(all) {
		skip = len(all)
	}
	return all[skip:], nil
}

// readCSVHeader is like readCSV but also returns the first skipped
// record, used for fallback column titles.
func readCSVHeader(r io.Reader, separator rune, skip int) (records [][]string, header []string, err error) {
	if separator == 0 {
		separator = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = separator
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if skip < 0 {
		return nil, nil, fmt.Errorf("%w: negative header line count %d", ErrConfig, skip)
	}
	if skip > len(all) {
		skip = len(all)
	}
	if skip > 0 && len(all) > 0 {
		header = all[0]
	}
	return all[skip:], header, nil
}

// field extracts a 1-based column from a record.
func field(rec []string, column int) (string, error) {
	if column < 1 {
		return "", fmt.Errorf("%w: column index %d", ErrConfig, column)
	}
	if column > len(rec) {
		return "", fmt.Errorf("%w: column %d beyond record of %d fields", ErrConfig, column, len(rec))
	}
	return strings.TrimSpace(rec[column-1]), nil
}
