package collision

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"

	"go.viam.com/planningsim/logging"
	"go.viam.com/planningsim/spatialmath"
)

// Default value for BSH construction.
const (
	// Closest pair scans stop at the first pair of spheres whose centers are closer than this.
	defaultCompressionSlack = 100.

	// Relative growth applied to synthetic spheres so rounding never leaves a child poking out of its parent.
	enclosingPadding = 1e-9
)

// BSHOptions controls the construction of a BoundingSphereHierarchy.
type BSHOptions struct {
	// CompressionSlack ends the closest pair search early once a pair closer than this is found. Larger values
	// build faster but pair spheres less tightly. Zero disables the heuristic.
	CompressionSlack float64 `json:"compression_slack"`
}

// NewBSHOptions returns the default construction options.
func NewBSHOptions() *BSHOptions {
	return &BSHOptions{CompressionSlack: defaultCompressionSlack}
}

// BSHStats describes the shape of a built hierarchy.
type BSHStats struct {
	Obstacles        int
	SyntheticSpheres int
	BiggestGroup     int
	Depth            int
}

type boundingSphere struct {
	sphere   spatialmath.Sphere
	children []int
	// index into the input obstacles for leaves, -1 for synthetic spheres
	obstacle int
}

// BoundingSphereHierarchy is a ConfigurationSpace that groups obstacles into a tree of enclosing spheres, so
// that a query missing a group's sphere skips every obstacle in it.
//
// Nodes live in a single slice and refer to their children by index. Leaves are the input obstacles, in input
// order, at indices [0, len(obstacles)).
type BoundingSphereHierarchy struct {
	nodes       []boundingSphere
	root        int
	agentRadius float64
	stats       BSHStats
}

// NewBoundingSphereHierarchy builds a hierarchy over the given obstacles by repeatedly merging the closest two
// spheres into the smallest sphere enclosing both. Fails with ErrInvalidObstacleSet if there are no obstacles
// or if any obstacle lies inside another.
func NewBoundingSphereHierarchy(
	obstacles []Obstacle,
	agentRadius float64,
	opts *BSHOptions,
	logger logging.Logger,
) (*BoundingSphereHierarchy, error) {
	if err := validateObstacles(obstacles, agentRadius); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = NewBSHOptions()
	}

	bsh := &BoundingSphereHierarchy{
		nodes:       make([]boundingSphere, 0, 2*len(obstacles)),
		agentRadius: agentRadius,
	}
	working := make([]int, 0, len(obstacles))
	for i, o := range obstacles {
		bsh.nodes = append(bsh.nodes, boundingSphere{sphere: o.Sphere(), obstacle: i})
		working = append(working, i)
	}

	for len(working) > 1 {
		// loop invariant: no sphere in working encloses another
		x, y := bsh.closestPair(working, opts.CompressionSlack)

		child1, child2 := working[x], working[y]
		enclosing := spatialmath.EnclosingSphere(bsh.nodes[child1].sphere, bsh.nodes[child2].sphere)
		enclosing.Radius += enclosingPadding * math.Max(1, enclosing.Radius)
		parent := boundingSphere{
			sphere:   enclosing,
			children: []int{child1, child2},
			obstacle: -1,
		}
		// y > x, so removing y first leaves x in place
		working = slices.Delete(working, y, y+1)
		working = slices.Delete(working, x, x+1)

		// absorb whatever the new sphere already encloses, iterating backwards as elements are removed
		for i := len(working) - 1; i >= 0; i-- {
			if parent.sphere.Encloses(bsh.nodes[working[i]].sphere) {
				parent.children = append(parent.children, working[i])
				working = slices.Delete(working, i, i+1)
			}
		}

		bsh.nodes = append(bsh.nodes, parent)
		working = append(working, len(bsh.nodes)-1)

		bsh.stats.SyntheticSpheres++
		if len(parent.children) > bsh.stats.BiggestGroup {
			bsh.stats.BiggestGroup = len(parent.children)
		}
	}

	bsh.root = working[0]
	bsh.stats.Obstacles = len(obstacles)
	bsh.stats.Depth = bsh.depth()
	logger.Debugw("bounding sphere hierarchy built",
		"obstacles", bsh.stats.Obstacles,
		"synthetic_spheres", bsh.stats.SyntheticSpheres,
		"biggest_group", bsh.stats.BiggestGroup,
		"depth", bsh.stats.Depth,
	)
	return bsh, nil
}

// closestPair returns positions x < y in working of the two spheres with the closest centers, stopping at the
// first pair closer than slack.
func (bsh *BoundingSphereHierarchy) closestPair(working []int, slack float64) (int, int) {
	x, y := 0, 1
	leastDistance := bsh.centerDistance(working[x], working[y])
	for i := 0; i < len(working)-1; i++ {
		for j := i + 1; j < len(working); j++ {
			distance := bsh.centerDistance(working[i], working[j])
			if distance < leastDistance {
				x, y = i, j
				leastDistance = distance
			}
			if distance < slack {
				return x, y
			}
		}
	}
	return x, y
}

func (bsh *BoundingSphereHierarchy) centerDistance(a, b int) float64 {
	return bsh.nodes[a].sphere.Center.Distance(bsh.nodes[b].sphere.Center)
}

func (bsh *BoundingSphereHierarchy) depth() int {
	type entry struct{ idx, depth int }
	deepest := 0
	stack := []entry{{bsh.root, 1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.depth > deepest {
			deepest = e.depth
		}
		for _, child := range bsh.nodes[e.idx].children {
			stack = append(stack, entry{child, e.depth + 1})
		}
	}
	return deepest
}

// collides walks the hierarchy from the root, pruning every subtree whose sphere fails hit. Returns true as soon
// as hit succeeds on a leaf.
func (bsh *BoundingSphereHierarchy) collides(hit func(spatialmath.Sphere) bool) bool {
	stack := []int{bsh.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &bsh.nodes[idx]
		if !hit(node.sphere) {
			continue
		}
		if len(node.children) == 0 {
			return true
		}
		stack = append(stack, node.children...)
	}
	return false
}

// CollidesAtPoint returns true if the agent centered at p overlaps any obstacle.
func (bsh *BoundingSphereHierarchy) CollidesAtPoint(p r3.Vector) bool {
	return bsh.collides(func(s spatialmath.Sphere) bool {
		return s.ContainsPoint(p, bsh.agentRadius)
	})
}

// CollidesOnSegment returns true if the agent swept from p1 to p2 overlaps any obstacle.
func (bsh *BoundingSphereHierarchy) CollidesOnSegment(p1, p2 r3.Vector) bool {
	return bsh.collides(func(s spatialmath.Sphere) bool {
		return s.IntersectsSegment(p1, p2, bsh.agentRadius)
	})
}

// CollidingObstacles returns the indices of every obstacle the agent centered at p overlaps, in no particular
// order.
func (bsh *BoundingSphereHierarchy) CollidingObstacles(p r3.Vector) []int {
	var hits []int
	stack := []int{bsh.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &bsh.nodes[idx]
		if !node.sphere.ContainsPoint(p, bsh.agentRadius) {
			continue
		}
		if len(node.children) == 0 {
			hits = append(hits, node.obstacle)
			continue
		}
		stack = append(stack, node.children...)
	}
	return hits
}

// Root returns the index of the root sphere.
func (bsh *BoundingSphereHierarchy) Root() int {
	return bsh.root
}

// Len returns the number of spheres in the hierarchy, leaves included.
func (bsh *BoundingSphereHierarchy) Len() int {
	return len(bsh.nodes)
}

// Sphere returns the sphere at index idx.
func (bsh *BoundingSphereHierarchy) Sphere(idx int) spatialmath.Sphere {
	return bsh.nodes[idx].sphere
}

// Children returns a copy of the child indices of the sphere at idx.
func (bsh *BoundingSphereHierarchy) Children(idx int) []int {
	return slices.Clone(bsh.nodes[idx].children)
}

// IsLeaf returns whether the sphere at idx is an input obstacle.
func (bsh *BoundingSphereHierarchy) IsLeaf(idx int) bool {
	return len(bsh.nodes[idx].children) == 0
}

// Obstacle returns the input obstacle index of the leaf at idx, or -1 for a synthetic sphere.
func (bsh *BoundingSphereHierarchy) Obstacle(idx int) int {
	return bsh.nodes[idx].obstacle
}

// Stats returns construction statistics.
func (bsh *BoundingSphereHierarchy) Stats() BSHStats {
	return bsh.stats
}
