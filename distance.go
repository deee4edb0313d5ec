package lithology

import (
	"fmt"
	"math"
)

// Metric selects the color-distance function used when classifying
// pixels against the palette. All metrics are normalized so that the
// distance between pure white and pure black is exactly 1.0.
type Metric int

const (
	// MetricHuman is a perceptually weighted distance after
	// https://www.compuphase.com/cmetric.htm. It weights green more
	// heavily and shifts weight between red and blue with brightness.
	// It does not satisfy the triangle inequality.
	MetricHuman Metric = iota
	// MetricL1 is the sum of absolute component differences.
	MetricL1
	// MetricL2 is the Euclidean distance between components.
	MetricL2
	// MetricMax is the maximum absolute component difference.
	MetricMax
)

func (m Metric) String() string {
	switch m {
	case MetricL1:
		return "l1"
	case MetricL2:
		return "l2"
	case MetricMax:
		return "max"
	default:
		return "human"
	}
}

// ParseMetric resolves a metric name from the CLI or a config file.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "human":
		return MetricHuman, nil
	case "l1":
		return MetricL1, nil
	case "l2":
		return MetricL2, nil
	case "max":
		return MetricMax, nil
	}
	return 0, fmt.Errorf("%w: unknown distance metric %q", ErrConfig, name)
}

// sqrt(3) * 255, the L2 norm of (255, 255, 255).
var l2Norm = math.Sqrt(3) * 255.0

// Distance returns the normalized distance between two colors in [0, 1]
// for the exact metrics; MetricHuman can slightly exceed 1 for saturated
// opposite corners of the cube but still maps white to black to 1.0.
func (m Metric) Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	switch m {
	case MetricL1:
		return (math.Abs(dr) + math.Abs(dg) + math.Abs(db)) / 765.0
	case MetricL2:
		return math.Sqrt(dr*dr+dg*dg+db*db) / l2Norm
	case MetricMax:
		return math.Max(math.Abs(dr), math.Max(math.Abs(dg), math.Abs(db))) / 255.0
	default:
		rmean := (float64(a.R) + float64(b.R)) / 510.0
		wr := 2.0 + rmean
		wg := 4.0
		wb := 3.0 - rmean
		return math.Sqrt(wr*dr*dr+wg*dg*dg+wb*db*db) / 765.0
	}
}
