package motionplan

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"
)

// Vertex is a single configuration in a planning tree.
type Vertex struct {
	Position r3.Vector
	// Cost from the root along tree edges. NaN for trees that do not track cost.
	Cost float64
	// Index of the parent vertex, -1 for the root
	Parent int
	// Indices of the child vertices, in attachment order
	Children []int
}

// Edge is a parent to child link of a planning tree.
type Edge struct {
	From, To r3.Vector
}

// vertexTree is an arena of vertices addressed by stable indices. The root is always index 0 and vertices are
// never removed, so indices stay valid for the life of the tree.
type vertexTree struct {
	vertices []Vertex
}

func newVertexTree(root r3.Vector, cost float64) *vertexTree {
	return &vertexTree{vertices: []Vertex{{Position: root, Cost: cost, Parent: -1}}}
}

// Special case constructor for trees without costs.
func newCostlessVertexTree(root r3.Vector) *vertexTree {
	return newVertexTree(root, math.NaN())
}

func (t *vertexTree) addVertex(p r3.Vector, parent int, cost float64) int {
	idx := len(t.vertices)
	t.vertices = append(t.vertices, Vertex{Position: p, Cost: cost, Parent: parent})
	t.vertices[parent].Children = append(t.vertices[parent].Children, idx)
	return idx
}

// reparent moves child from its current parent to newParent, updating both sides.
func (t *vertexTree) reparent(child, newParent int) {
	old := t.vertices[child].Parent
	if old >= 0 {
		siblings := t.vertices[old].Children
		if i := slices.Index(siblings, child); i >= 0 {
			t.vertices[old].Children = slices.Delete(siblings, i, i+1)
		}
	}
	t.vertices[child].Parent = newParent
	t.vertices[newParent].Children = append(t.vertices[newParent].Children, child)
}

// isAncestor returns whether a is b or lies on the path from b to the root.
func (t *vertexTree) isAncestor(a, b int) bool {
	for i := b; i >= 0; i = t.vertices[i].Parent {
		if i == a {
			return true
		}
	}
	return false
}

// propagateCost recomputes the cost of every descendant of idx from its parent's cost and edge length.
func (t *vertexTree) propagateCost(idx int) {
	stack := slices.Clone(t.vertices[idx].Children)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := &t.vertices[i]
		parent := t.vertices[v.Parent]
		v.Cost = parent.Cost + parent.Position.Distance(v.Position)
		stack = append(stack, v.Children...)
	}
}

// find returns the index of the first vertex, in depth first order, whose position is exactly p.
func (t *vertexTree) find(p r3.Vector) (int, bool) {
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.vertices[i].Position == p {
			return i, true
		}
		stack = append(stack, t.vertices[i].Children...)
	}
	return -1, false
}

// pathTo returns the positions from the root to idx.
func (t *vertexTree) pathTo(idx int) Path {
	var path Path
	for i := idx; i >= 0; i = t.vertices[i].Parent {
		path = append(path, t.vertices[i].Position)
	}
	return lo.Reverse(path)
}

// Len returns the number of vertices in the tree.
func (t *vertexTree) Len() int {
	return len(t.vertices)
}

// Root returns the index of the root vertex.
func (t *vertexTree) Root() int {
	return 0
}

// Vertex returns a copy of the vertex at idx.
func (t *vertexTree) Vertex(idx int) Vertex {
	v := t.vertices[idx]
	v.Children = slices.Clone(v.Children)
	return v
}

// Edges returns every parent to child edge of the tree.
func (t *vertexTree) Edges() []Edge {
	edges := make([]Edge, 0, len(t.vertices)-1)
	for _, v := range t.vertices[1:] {
		edges = append(edges, Edge{From: t.vertices[v.Parent].Position, To: v.Position})
	}
	return edges
}
