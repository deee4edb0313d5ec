package lithology

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/interp"
)

// MergeOptions controls the alignment of a layer list against an
// existing depth curve.
type MergeOptions struct {
	// Translation maps layer codes to output codes. When Translate is
	// set, every layer code must have an entry.
	Translation map[string]string
	Translate   bool
	// NullCode is emitted for samples covered by no layer.
	NullCode float64
	// Interpolate linearly blends the numeric codes of the bounding
	// layers for samples falling in a gap between layers. Samples
	// outside the full span of all layers emit NullCode regardless.
	Interpolate bool
	// TopShift and BottomShift are added to every layer top and bottom
	// before alignment.
	TopShift    float64
	BottomShift float64
}

// MergeCurve resolves one output value per sample depth, in the exact
// order given, so the result aligns sample-for-sample with the existing
// curve. Open-ended boundaries (NaN) resolve to the curve's depth
// extremes.
func MergeCurve(ll LayerList, depths []float64, opt MergeOptions) ([]float64, error) {
	adjusted, err := alignLayers(ll, depths, opt)
	if err != nil {
		return nil, err
	}
	values, err := layerValues(adjusted, opt)
	if err != nil {
		return nil, err
	}

	var gapFill *interp.PiecewiseLinear
	if opt.Interpolate && len(adjusted) > 0 {
		gapFill, err = gapInterpolator(adjusted, values)
		if err != nil {
			return nil, err
		}
	}

	top, bottom, covered := adjusted.Span()
	out := make([]float64, len(depths))
	for i, d := range depths {
		if !covered || math.IsNaN(d) || d < top || d > bottom {
			out[i] = opt.NullCode
			continue
		}
		if j, ok := adjusted.Find(d); ok {
			out[i] = values[j]
			continue
		}
		if gapFill != nil {
			out[i] = gapFill.Predict(d)
			continue
		}
		out[i] = opt.NullCode
	}
	return out, nil
}

// alignLayers applies shifts, resolves open boundaries against the
// curve extent and sorts by top without mutating the input list.
func alignLayers(ll LayerList, depths []float64, opt MergeOptions) (LayerList, error) {
	adjusted := make(LayerList, len(ll))
	copy(adjusted, ll)
	for i := range adjusted {
		if math.IsNaN(adjusted[i].Top) {
			if i != 0 {
				return nil, fmt.Errorf("%w: open top on layer %d", ErrFormat, i+1)
			}
			adjusted[i].Top = minFinite(depths)
		}
		if math.IsNaN(adjusted[i].Bottom) {
			if i != len(adjusted)-1 {
				return nil, fmt.Errorf("%w: open bottom on layer %d", ErrFormat, i+1)
			}
			adjusted[i].Bottom = maxFinite(depths)
		}
		adjusted[i].Top += opt.TopShift
		adjusted[i].Bottom += opt.BottomShift
	}
	sort.SliceStable(adjusted, func(a, b int) bool { return adjusted[a].Top < adjusted[b].Top })
	return adjusted, nil
}

// layerValues translates and parses every layer code up front, so
// translation and type failures abort before any sample is emitted.
func layerValues(ll LayerList, opt MergeOptions) ([]float64, error) {
	values := make([]float64, len(ll))
	for i, l := range ll {
		code := l.Code
		if opt.Translate {
			translated, ok := opt.Translation[code]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUntranslatableCode, code)
			}
			code = translated
		}
		v, err := strconv.ParseFloat(code, 64)
		if err != nil {
			if opt.Interpolate {
				return nil, fmt.Errorf("%w: code %q", ErrInterpolationType, code)
			}
			return nil, fmt.Errorf("%w: code %q is not numeric", ErrFormat, code)
		}
		values[i] = v
	}
	return values, nil
}

// gapInterpolator fits a piecewise-linear predictor over the layer
// boundary knots: constant inside each layer, linear across gaps.
// Coincident knots at touching boundaries are nudged apart, the same
// epsilon trick the nearest-sample variant of this tool always used.
func gapInterpolator(ll LayerList, values []float64) (*interp.PiecewiseLinear, error) {
	const epsilon = 1e-6
	xs := make([]float64, 0, 2*len(ll))
	ys := make([]float64, 0, 2*len(ll))
	for i, l := range ll {
		xs = append(xs, l.Top, l.Bottom)
		ys = append(ys, values[i], values[i])
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			xs[i] = xs[i-1] + epsilon
		}
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: layer boundaries are not separable: %v", ErrFormat, err)
	}
	return &pl, nil
}

func minFinite(xs []float64) float64 {
	v := math.Inf(1)
	for _, x := range xs {
		if !math.IsNaN(x) && x < v {
			v = x
		}
	}
	return v
}

func maxFinite(xs []float64) float64 {
	v := math.Inf(-1)
	for _, x := range xs {
		if !math.IsNaN(x) && x > v {
			v = x
		}
	}
	return v
}
