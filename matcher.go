package lithology

import "math"

// Match classifies a color against the palette: it returns the code of
// the entry with the smallest distance under the metric, or ok=false
// when the smallest distance exceeds maxDistance.
//
// Ties resolve to the first entry in palette order; the strict "<" on
// the scan guarantees that. For well-defined classification maxDistance
// should stay below half the minimum pairwise distance between palette
// colors, except under MetricHuman where no such guarantee exists.
func Match(c Color, p Palette, metric Metric, maxDistance float64) (code string, ok bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range p.Entries {
		d := metric.Distance(c, e.Color)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 || bestDist > maxDistance {
		return "", false
	}
	return p.Entries[best].Code, true
}
