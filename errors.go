package lithology

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion pipeline. Everything is fatal: the
// callers abort the run instead of substituting values, since a silently
// wrong lithology curve is worse than no curve.
var (
	// ErrFormat marks malformed input text: color strings, CSV cells,
	// LAS-bound numeric codes.
	ErrFormat = errors.New("malformed input")

	// ErrConfig marks inconsistent or out-of-range configuration,
	// detected before processing starts where possible.
	ErrConfig = errors.New("invalid configuration")

	// ErrEmptyPalette is reported when a palette with zero entries
	// reaches a component that needs at least one reference color.
	ErrEmptyPalette = fmt.Errorf("%w: empty palette", ErrConfig)

	// ErrColorLookup is reported when a layer code has no color in the
	// palette.
	ErrColorLookup = errors.New("code has no palette color")

	// ErrUntranslatableCode is reported when code translation is enabled
	// and a layer code has no entry in the translation table.
	ErrUntranslatableCode = errors.New("code has no translation")

	// ErrRange is reported when a depth lies outside the mapped span and
	// the caller requires a bounded result.
	ErrRange = errors.New("depth out of range")

	// ErrInterpolationType is reported when gap interpolation is
	// requested over codes that are not numeric.
	ErrInterpolationType = errors.New("cannot interpolate non-numeric codes")
)
