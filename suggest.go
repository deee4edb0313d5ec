package lithology

import (
	"fmt"
	"image"
	"math"
	"slices"
	"strconv"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// SuggestMethod selects how candidate palette colors are extracted from
// an image.
type SuggestMethod int

const (
	// SuggestDominant uses dominant-color histogram candidates.
	SuggestDominant SuggestMethod = iota
	// SuggestKMeans clusters subsampled pixels in RGB space.
	SuggestKMeans
)

func (m SuggestMethod) String() string {
	if m == SuggestKMeans {
		return "kmeans"
	}
	return "dominant"
}

// ParseSuggestMethod resolves a method name from the CLI.
func ParseSuggestMethod(name string) (SuggestMethod, error) {
	switch name {
	case "dominant":
		return SuggestDominant, nil
	case "kmeans":
		return SuggestKMeans, nil
	}
	return 0, fmt.Errorf("%w: unknown palette method %q", ErrConfig, name)
}

// SuggestPalette extracts k reference colors from an image as a starting
// point for a hand-curated palette CSV. Colors are ordered darkest to
// brightest and assigned sequential codes starting at 1; the codes are
// placeholders for real lithology identifiers.
func SuggestPalette(img image.Image, k int, method SuggestMethod) (Palette, error) {
	if k < 1 {
		return Palette{}, fmt.Errorf("%w: palette size %d", ErrConfig, k)
	}
	var picked []colorful.Color
	var err error
	if method == SuggestKMeans {
		picked, err = kmeansColors(img, k)
	} else {
		picked, err = dominantColors(img, k)
	}
	if err != nil {
		return Palette{}, err
	}
	sortByLuminance(picked)

	var p Palette
	for i, c := range picked {
		r, g, b := c.Clamped().RGB255()
		p.Entries = append(p.Entries, PaletteEntry{
			Code:  strconv.Itoa(i + 1),
			Color: Color{R: r, G: g, B: b},
		})
	}
	return p, nil
}

// dominantColors takes a generous candidate set and greedily keeps the
// k candidates most spread out in Lab space, seeded with the strongest.
func dominantColors(img image.Image, k int) ([]colorful.Color, error) {
	candidates := dominantcolor.FindWeight(img, max(24, k*4))
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidate colors in image", ErrFormat)
	}

	type item struct {
		col     colorful.Color
		l, a, b float64
		weight  float64
	}
	items := make([]item, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		col = col.Clamped()
		l, a, b := col.Lab()
		items = append(items, item{col: col, l: l, a: a, b: b, weight: c.Weight})
	}
	if k > len(items) {
		k = len(items)
	}

	seed := 0
	for i := range items {
		if items[i].weight > items[seed].weight {
			seed = i
		}
	}
	chosen := []int{seed}
	taken := make([]bool, len(items))
	taken[seed] = true
	for len(chosen) < k {
		best, bestScore := -1, -1.0
		for i := range items {
			if taken[i] {
				continue
			}
			minD := math.Inf(1)
			for _, j := range chosen {
				dl := items[i].l - items[j].l
				da := items[i].a - items[j].a
				db := items[i].b - items[j].b
				minD = math.Min(minD, dl*dl+da*da+db*db)
			}
			if minD > bestScore {
				bestScore = minD
				best = i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		chosen = append(chosen, best)
	}

	out := make([]colorful.Color, 0, len(chosen))
	for _, i := range chosen {
		out = append(out, items[i].col)
	}
	return out, nil
}

// kmeansColors clusters subsampled opaque pixels in normalized RGB and
// returns the k cluster centers, most populous first.
func kmeansColors(img image.Image, k int) ([]colorful.Color, error) {
	const maxSamples = 12000
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrFormat)
	}
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(w*h, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, fmt.Errorf("%w: no opaque pixels in image", ErrFormat)
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil, fmt.Errorf("%w: kmeans clustering failed: %v", ErrFormat, err)
	}
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return out, nil
}

// sortByLuminance orders colors darkest to brightest.
func sortByLuminance(cols []colorful.Color) {
	slices.SortFunc(cols, func(a, b colorful.Color) int {
		ra, ga, ba := a.LinearRgb()
		rb, gb, bb := b.LinearRgb()
		ya := 0.2126*ra + 0.7152*ga + 0.0722*ba
		yb := 0.2126*rb + 0.7152*gb + 0.0722*bb
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}
