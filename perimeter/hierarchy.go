package perimeter

import "github.com/gogpu/toolpath"

// NodeID addresses a node in a Hierarchy.
type NodeID int32

// None is the parent of root nodes.
const None NodeID = -1

// Node is one perimeter loop.
type Node struct {
	Polygon toolpath.Polygon
	// IsContour is false for loops running around a hole.
	IsContour bool
	// Depth 0 is the external perimeter.
	Depth         int
	SteepOverhang bool
	Fuzzify       bool
	Parent        NodeID
	Children      []NodeID
}

// IsExternal reports whether the loop is an external perimeter.
func (n *Node) IsExternal() bool { return n.Depth == 0 }

// IsInternalContour reports whether the loop is an inner contour.
func (n *Node) IsInternalContour() bool { return n.IsContour && n.Depth > 0 }

// Hierarchy is a forest of perimeter loops stored in an arena. A node's
// children lie strictly inside its polygon.
type Hierarchy struct {
	nodes []Node
}

// Add stores a detached node and returns its id.
func (h *Hierarchy) Add(n Node) NodeID {
	n.Parent = None
	n.Children = nil
	h.nodes = append(h.nodes, n)
	//nolint:gosec // node count fits in int32
	return NodeID(len(h.nodes) - 1)
}

// Node returns the node with the given id. The pointer is invalidated by Add.
func (h *Hierarchy) Node(id NodeID) *Node { return &h.nodes[id] }

// Len returns the number of nodes.
func (h *Hierarchy) Len() int { return len(h.nodes) }

// Attach makes child a child of parent, detaching it from its previous
// parent.
func (h *Hierarchy) Attach(parent, child NodeID) {
	h.Detach(child)
	h.nodes[child].Parent = parent
	h.nodes[parent].Children = append(h.nodes[parent].Children, child)
}

// Detach makes id a root node.
func (h *Hierarchy) Detach(id NodeID) {
	p := h.nodes[id].Parent
	if p == None {
		return
	}
	kids := h.nodes[p].Children
	for i, k := range kids {
		if k == id {
			h.nodes[p].Children = append(kids[:i:i], kids[i+1:]...)
			break
		}
	}
	h.nodes[id].Parent = None
}

// Roots returns the nodes without a parent, in insertion order.
func (h *Hierarchy) Roots() []NodeID {
	var out []NodeID
	for i := range h.nodes {
		if h.nodes[i].Parent == None {
			out = append(out, NodeID(i)) //nolint:gosec // bounded by Len
		}
	}
	return out
}

// Walk visits id and its descendants depth first.
func (h *Hierarchy) Walk(id NodeID, fn func(NodeID)) {
	fn(id)
	for _, c := range h.nodes[id].Children {
		h.Walk(c, fn)
	}
}

// nest links loops bucketed by depth. Holes go into the smallest deeper hole
// that contains them, otherwise into the deepest containing contour.
// Contours go into the deepest shallower contour that contains them.
func (h *Hierarchy) nest(contours, holes [][]NodeID) {
	levels := len(contours)
	contains := func(outer, inner NodeID) bool {
		return h.nodes[outer].Polygon.Contains(h.nodes[inner].Polygon.FirstPoint())
	}
	for d := range levels {
	holeLoop:
		for _, hole := range holes[d] {
			for t := d + 1; t < levels; t++ {
				for _, cand := range holes[t] {
					if contains(cand, hole) {
						h.Attach(cand, hole)
						continue holeLoop
					}
				}
			}
			for t := levels - 1; t >= 0; t-- {
				for _, cand := range contours[t] {
					if contains(cand, hole) {
						h.Attach(cand, hole)
						continue holeLoop
					}
				}
			}
		}
	}
	for d := levels - 1; d >= 1; d-- {
	contourLoop:
		for _, c := range contours[d] {
			for t := d - 1; t >= 0; t-- {
				for _, cand := range contours[t] {
					if contains(cand, c) {
						h.Attach(cand, c)
						continue contourLoop
					}
				}
			}
		}
	}
}
