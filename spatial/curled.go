package spatial

import "github.com/gogpu/toolpath"

// CurledLine is a previous-layer segment that lifted while printing.
type CurledLine struct {
	toolpath.Linef
	// CurledHeight is the estimated lift in mm.
	CurledHeight float64
}

// CurledLines indexes curled segments for radius queries.
type CurledLines struct {
	grid  *grid
	lines []CurledLine
}

// NewCurledLines indexes lines.
func NewCurledLines(lines []CurledLine) *CurledLines {
	segs := make([]toolpath.Linef, len(lines))
	for i, l := range lines {
		segs[i] = l.Linef
	}
	return &CurledLines{grid: newGrid(segs), lines: lines}
}

// Len returns the number of indexed lines.
func (c *CurledLines) Len() int { return len(c.lines) }

// LinesInRadius returns the lines whose distance to p is at most radius.
func (c *CurledLines) LinesInRadius(p toolpath.Vec2, radius float64) []CurledLine {
	idx := c.grid.inRadius(p, radius)
	if len(idx) == 0 {
		return nil
	}
	out := make([]CurledLine, len(idx))
	for i, j := range idx {
		out[i] = c.lines[j]
	}
	return out
}
