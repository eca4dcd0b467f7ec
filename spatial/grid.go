package spatial

import (
	"math"
	"slices"

	"github.com/gogpu/toolpath"
)

// maxCells bounds the number of cells along one axis.
const maxCells = 512

// grid bins segments into the square cells their bounding boxes touch.
type grid struct {
	lines  []toolpath.Linef
	origin toolpath.Vec2
	cell   float64
	cols   int
	rows   int
	cells  [][]int32
}

func newGrid(lines []toolpath.Linef) *grid {
	g := &grid{lines: lines}
	if len(lines) == 0 {
		return g
	}
	minP := toolpath.V2(math.Inf(1), math.Inf(1))
	maxP := toolpath.V2(math.Inf(-1), math.Inf(-1))
	var total float64
	for _, l := range lines {
		for _, p := range [2]toolpath.Vec2{l.A, l.B} {
			minP.X, minP.Y = math.Min(minP.X, p.X), math.Min(minP.Y, p.Y)
			maxP.X, maxP.Y = math.Max(maxP.X, p.X), math.Max(maxP.Y, p.Y)
		}
		total += l.Length()
	}
	extent := math.Max(maxP.X-minP.X, maxP.Y-minP.Y)
	g.cell = math.Max(total/float64(len(lines)), extent/maxCells)
	if g.cell <= 0 {
		g.cell = 1
	}
	g.origin = minP
	g.cols = int((maxP.X-minP.X)/g.cell) + 1
	g.rows = int((maxP.Y-minP.Y)/g.cell) + 1
	g.cells = make([][]int32, g.cols*g.rows)
	for i, l := range lines {
		c0, r0 := g.cellOf(toolpath.V2(math.Min(l.A.X, l.B.X), math.Min(l.A.Y, l.B.Y)))
		c1, r1 := g.cellOf(toolpath.V2(math.Max(l.A.X, l.B.X), math.Max(l.A.Y, l.B.Y)))
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				//nolint:gosec // line count fits in int32
				g.cells[r*g.cols+c] = append(g.cells[r*g.cols+c], int32(i))
			}
		}
	}
	return g
}

// rawCell returns the unclamped cell of p.
func (g *grid) rawCell(p toolpath.Vec2) (int, int) {
	return int(math.Floor((p.X - g.origin.X) / g.cell)), int(math.Floor((p.Y - g.origin.Y) / g.cell))
}

// cellOf returns the cell of p clamped to the grid.
func (g *grid) cellOf(p toolpath.Vec2) (int, int) {
	c, r := g.rawCell(p)
	return min(max(c, 0), g.cols-1), min(max(r, 0), g.rows-1)
}

func (g *grid) empty() bool { return len(g.lines) == 0 }

// nearest returns the index of the segment closest to p and its distance.
// It searches rings of cells around p until no closer segment can exist.
func (g *grid) nearest(p toolpath.Vec2) (int, float64) {
	if g.empty() {
		return -1, math.Inf(1)
	}
	pc, pr := g.rawCell(p)
	rMax := max(abs(pc), abs(pc-g.cols+1), abs(pr), abs(pr-g.rows+1))
	best, bestDist := -1, math.Inf(1)
	for ring := 0; ring <= rMax; ring++ {
		for r := pr - ring; r <= pr+ring; r++ {
			if r < 0 || r >= g.rows {
				continue
			}
			edge := r == pr-ring || r == pr+ring
			for c := pc - ring; c <= pc+ring; c++ {
				if c < 0 || c >= g.cols {
					continue
				}
				if !edge && c != pc-ring && c != pc+ring {
					continue
				}
				for _, idx := range g.cells[r*g.cols+c] {
					if d := g.lines[idx].DistanceTo(p); d < bestDist {
						best, bestDist = int(idx), d
					}
				}
			}
		}
		// Every cell beyond this ring is at least ring*cell away from p
		// when p lies inside the grid.
		if best >= 0 && bestDist <= g.ringDistance(p, ring) {
			break
		}
	}
	return best, bestDist
}

// ringDistance returns a lower bound of the distance from p to any cell
// outside the given ring.
func (g *grid) ringDistance(p toolpath.Vec2, ring int) float64 {
	pc, pr := g.rawCell(p)
	fx := (p.X-g.origin.X)/g.cell - float64(pc)
	fy := (p.Y-g.origin.Y)/g.cell - float64(pr)
	margin := math.Min(math.Min(fx, 1-fx), math.Min(fy, 1-fy))
	return (float64(ring) + margin) * g.cell
}

// candidates returns the sorted unique indices of segments whose cells
// touch the box [lo, hi].
func (g *grid) candidates(lo, hi toolpath.Vec2) []int32 {
	if g.empty() {
		return nil
	}
	c0, r0 := g.rawCell(lo)
	c1, r1 := g.rawCell(hi)
	if c1 < 0 || r1 < 0 || c0 >= g.cols || r0 >= g.rows {
		return nil
	}
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, g.cols-1), min(r1, g.rows-1)
	var out []int32
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			out = append(out, g.cells[r*g.cols+c]...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// inRadius returns the indices of segments within radius of p.
func (g *grid) inRadius(p toolpath.Vec2, radius float64) []int {
	var out []int
	for _, idx := range g.candidates(p.Sub(toolpath.V2(radius, radius)), p.Add(toolpath.V2(radius, radius))) {
		if g.lines[idx].DistanceTo(p) <= radius {
			out = append(out, int(idx))
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
