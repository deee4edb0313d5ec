package lithology

import "image"

// ExtractOptions controls classification and layer folding.
type ExtractOptions struct {
	// Metric is the color-distance function used per pixel.
	Metric Metric
	// MaxDistance is the classification cutoff. Pixels farther than this
	// from every palette color stay unclassified.
	// Keep it below half the minimum pairwise palette distance; larger
	// values still classify deterministically (first palette entry wins
	// ties) but neighboring palette colors start competing.
	MaxDistance float64
	// FillGaps absorbs an unclassified run strictly between two layers
	// of the same code into one spanning layer.
	FillGaps bool
	// TopShift and BottomShift are added to each layer's converted top
	// and bottom.
	TopShift    float64
	BottomShift float64
}

// DefaultExtractOptions mirrors the historical defaults of the tool.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Metric:      MetricHuman,
		MaxDistance: 0.02,
		FillGaps:    true,
	}
}

// Extractor scans an image top to bottom and folds rows of equal
// lithology into layers. The palette is shared read-only and never
// mutated.
type Extractor struct {
	Image   image.Image
	Palette Palette
	Mapper  DepthMapper

	// Classification results per distinct pixel color. Lithology rasters
	// have few distinct colors, so this collapses most Match calls.
	cache map[Color]rowMatch
}

type rowMatch struct {
	code string
	ok   bool
}

// rowRun is one vertical run of rows sharing a resolved code; rows
// start..end inclusive. code == "" marks an unclassified (gap) run.
type rowRun struct {
	code       string
	start, end int
}

// NewExtractor builds an extractor over an image and palette.
func NewExtractor(img image.Image, p Palette, mapper DepthMapper) *Extractor {
	return &Extractor{
		Image:   img,
		Palette: p,
		Mapper:  mapper,
		cache:   make(map[Color]rowMatch),
	}
}

// Extract classifies every row, folds same-code runs into layers,
// applies the gap-fill policy and converts rows to depths. An image with
// no classifiable rows yields an empty list.
func (e *Extractor) Extract(opt ExtractOptions) (LayerList, error) {
	if e.Palette.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	codes := e.classifyRows(opt.Metric, opt.MaxDistance)
	runs := foldRuns(codes)
	if opt.FillGaps {
		runs = absorbGaps(runs)
	}
	return e.toLayers(runs, opt), nil
}

// classifyRows resolves one code (or "") per image row: every pixel is
// classified independently, then the row takes the most frequent code.
// Unclassified pixels are excluded from the vote, so a row is
// unclassified only when every pixel in it is. Frequency ties go to the
// code seen first scanning columns left to right.
func (e *Extractor) classifyRows(metric Metric, maxDistance float64) []string {
	bounds := e.Image.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	codes := make([]string, h)
	counts := make(map[string]int)
	for y := 0; y < h; y++ {
		clear(counts)
		var order []string
		for x := 0; x < w; x++ {
			r, g, b, _ := e.Image.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			c := Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			m, seen := e.cache[c]
			if !seen {
				m.code, m.ok = Match(c, e.Palette, metric, maxDistance)
				e.cache[c] = m
			}
			if !m.ok {
				continue
			}
			if counts[m.code] == 0 {
				order = append(order, m.code)
			}
			counts[m.code]++
		}
		best := ""
		bestCount := 0
		for _, code := range order {
			if counts[code] > bestCount {
				best = code
				bestCount = counts[code]
			}
		}
		codes[y] = best
	}
	return codes
}

// foldRuns is the run state machine: state is (current code, run start),
// a transition on a row's resolved code closes the open run.
func foldRuns(codes []string) []rowRun {
	var runs []rowRun
	for y, code := range codes {
		if y > 0 && code == runs[len(runs)-1].code {
			runs[len(runs)-1].end = y
			continue
		}
		runs = append(runs, rowRun{code: code, start: y, end: y})
	}
	return runs
}

// absorbGaps merges [A, gap, A] triples into a single A run. Gaps
// between different codes or touching the image edge stay uncovered.
func absorbGaps(runs []rowRun) []rowRun {
	var out []rowRun
	for _, r := range runs {
		n := len(out)
		if r.code != "" && n >= 2 && out[n-1].code == "" && out[n-2].code == r.code {
			out[n-2].end = r.end
			out = out[:n-1]
			continue
		}
		out = append(out, r)
	}
	return out
}

// toLayers converts classified runs to depth layers, dropping gaps and
// degenerate zero-thickness results.
func (e *Extractor) toLayers(runs []rowRun, opt ExtractOptions) LayerList {
	ll := LayerList{}
	for _, r := range runs {
		if r.code == "" {
			continue
		}
		top := e.Mapper.RowToDepth(float64(r.start)) + opt.TopShift
		bottom := e.Mapper.RowToDepth(float64(r.end)) + opt.BottomShift
		if !(top < bottom) {
			continue
		}
		ll = append(ll, Layer{Code: r.code, Top: top, Bottom: bottom})
	}
	return ll
}
