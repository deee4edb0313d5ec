package lithology

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Layer is a contiguous depth (or row) interval carrying one lithology
// code. Top and Bottom are closed bounds; an extracted layer's bottom is
// the depth of the run's last row. An open-ended boundary (only allowed
// for the first layer's top or the last layer's bottom) is NaN until the
// consumer resolves it against the image span or the depth curve.
type Layer struct {
	Code        string
	Top, Bottom float64
}

// Contains reports whether the closed interval [Top, Bottom] covers d.
func (l Layer) Contains(d float64) bool {
	return l.Top <= d && d <= l.Bottom
}

// LayerList is an ordered, non-overlapping sequence of layers with
// non-decreasing tops. It is produced once and never mutated by its
// consumers.
type LayerList []Layer

// Find returns the index of the first layer containing d. With
// non-overlapping layers the match is unique; if the invariant is
// violated the first containing layer wins.
func (ll LayerList) Find(d float64) (int, bool) {
	for i, l := range ll {
		if l.Contains(d) {
			return i, true
		}
	}
	return 0, false
}

// Span returns the full depth extent covered by the list.
func (ll LayerList) Span() (top, bottom float64, ok bool) {
	if len(ll) == 0 {
		return 0, 0, false
	}
	top = math.Inf(1)
	bottom = math.Inf(-1)
	for _, l := range ll {
		top = math.Min(top, l.Top)
		bottom = math.Max(bottom, l.Bottom)
	}
	return top, bottom, true
}

// LayerCSVOptions describes the layout of a layer CSV file. Column
// indices are 1-based.
type LayerCSVOptions struct {
	Separator    rune   // column separator, default ','
	SkipLines    int    // header lines to skip, default 1
	CodeColumn   int    // default 1
	TopColumn    int    // default 2
	BottomColumn int    // default 3
	EmptyCell    string // sentinel for an open-ended boundary, default ""
}

// DefaultLayerCSVOptions mirrors the historical defaults of the tool.
func DefaultLayerCSVOptions() LayerCSVOptions {
	return LayerCSVOptions{
		Separator:    ',',
		SkipLines:    1,
		CodeColumn:   1,
		TopColumn:    2,
		BottomColumn: 3,
	}
}

// ReadLayersCSV parses a layer list from delimited text. Only the first
// layer's top and the last layer's bottom may hold the empty-cell
// sentinel; they come back as NaN. The returned header is the first
// skipped line, if any, for callers that derive column titles from it.
func ReadLayersCSV(r io.Reader, opt LayerCSVOptions) (LayerList, []string, error) {
	records, header, err := readCSVHeader(r, opt.Separator, opt.SkipLines)
	if err != nil {
		return nil, nil, err
	}
	var ll LayerList
	for i, rec := range records {
		code, err := field(rec, opt.CodeColumn)
		if err != nil {
			return nil, nil, err
		}
		topText, err := field(rec, opt.TopColumn)
		if err != nil {
			return nil, nil, err
		}
		bottomText, err := field(rec, opt.BottomColumn)
		if err != nil {
			return nil, nil, err
		}
		top, err := parseBoundary(topText, opt.EmptyCell, i == 0)
		if err != nil {
			return nil, nil, err
		}
		bottom, err := parseBoundary(bottomText, opt.EmptyCell, i == len(records)-1)
		if err != nil {
			return nil, nil, err
		}
		ll = append(ll, Layer{Code: code, Top: top, Bottom: bottom})
	}
	return ll, header, nil
}

func parseBoundary(text, emptyCell string, openAllowed bool) (float64, error) {
	if text == emptyCell {
		if !openAllowed {
			return 0, fmt.Errorf("%w: empty boundary cell only allowed on the first top or last bottom", ErrFormat)
		}
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: boundary %q is not a number", ErrFormat, text)
	}
	return v, nil
}

// LoadLayersCSV reads a layer list from a file.
func LoadLayersCSV(path string, opt LayerCSVOptions) (LayerList, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadLayersCSV(f, opt)
}

// WriteLayersCSV writes a layer list as delimited text under the given
// column titles (code, top, bottom).
func WriteLayersCSV(w io.Writer, ll LayerList, titles [3]string, separator rune) error {
	if separator == 0 {
		separator = ','
	}
	cw := csv.NewWriter(w)
	cw.Comma = separator
	if err := cw.Write(titles[:]); err != nil {
		return err
	}
	for _, l := range ll {
		rec := []string{
			l.Code,
			strconv.FormatFloat(l.Top, 'g', -1, 64),
			strconv.FormatFloat(l.Bottom, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
