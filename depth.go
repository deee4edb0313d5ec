package lithology

import "fmt"

// DepthMapper converts between pixel-row indices and physical depth by
// linear interpolation: row 0 maps to TopDepth and row Rows-1 to
// BottomDepth. An unconfigured mapper (Mapped == false) is the identity,
// leaving row indices in place of depths.
type DepthMapper struct {
	Rows        int
	TopDepth    float64
	BottomDepth float64
	Mapped      bool
}

// NewDepthMapper builds a mapper over an image of rows rows.
func NewDepthMapper(rows int, topDepth, bottomDepth float64, mapped bool) (DepthMapper, error) {
	if rows < 1 {
		return DepthMapper{}, fmt.Errorf("%w: mapper over %d rows", ErrConfig, rows)
	}
	if mapped && topDepth == bottomDepth {
		return DepthMapper{}, fmt.Errorf("%w: top and bottom depth are both %g", ErrConfig, topDepth)
	}
	return DepthMapper{Rows: rows, TopDepth: topDepth, BottomDepth: bottomDepth, Mapped: mapped}, nil
}

// RowToDepth converts a (possibly fractional) row index to depth.
func (m DepthMapper) RowToDepth(row float64) float64 {
	if !m.Mapped || m.Rows < 2 {
		if !m.Mapped {
			return row
		}
		return m.TopDepth
	}
	return m.TopDepth + row/float64(m.Rows-1)*(m.BottomDepth-m.TopDepth)
}

// DepthToRow is the exact inverse of RowToDepth. It fails with ErrRange
// when the depth lies outside the mapped span (or the row range, for an
// identity mapper); callers that prefer clamping must do so themselves.
func (m DepthMapper) DepthToRow(depth float64) (float64, error) {
	if !m.Mapped {
		if depth < 0 || depth > float64(m.Rows-1) {
			return 0, fmt.Errorf("%w: row %g outside [0, %d]", ErrRange, depth, m.Rows-1)
		}
		return depth, nil
	}
	lo, hi := m.TopDepth, m.BottomDepth
	if lo > hi {
		lo, hi = hi, lo
	}
	if depth < lo || depth > hi {
		return 0, fmt.Errorf("%w: depth %g outside [%g, %g]", ErrRange, depth, lo, hi)
	}
	return (depth - m.TopDepth) / (m.BottomDepth - m.TopDepth) * float64(m.Rows-1), nil
}
