package collision

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r3"
)

const (
	indexDims       = 3
	indexMinEntries = 25
	indexMaxEntries = 50

	// rtreego rejects boxes with a zero side and treats touching boxes as disjoint, so every box is grown by
	// this much on each side.
	boxPadding = 1e-6
)

type obstacleEntry struct {
	index    int
	obstacle Obstacle
	bbox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface.
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// IndexedConfigurationSpace keeps the agent-inflated bounding box of every obstacle in an R-tree. Queries fetch
// the obstacles whose boxes overlap the query's box and run the exact sphere tests on those alone.
type IndexedConfigurationSpace struct {
	tree        *rtreego.Rtree
	agentRadius float64
}

// NewIndexedConfigurationSpace returns a ConfigurationSpace backed by an R-tree over the given obstacles.
func NewIndexedConfigurationSpace(obstacles []Obstacle, agentRadius float64) (*IndexedConfigurationSpace, error) {
	if err := validateObstacles(obstacles, agentRadius); err != nil {
		return nil, err
	}
	tree := rtreego.NewTree(indexDims, indexMinEntries, indexMaxEntries)
	for i, o := range obstacles {
		r := o.Radius + agentRadius
		bbox, err := boundingBox(o.Center.Sub(r3.Vector{X: r, Y: r, Z: r}), o.Center.Add(r3.Vector{X: r, Y: r, Z: r}))
		if err != nil {
			return nil, newBadObstacleError(i, err)
		}
		tree.Insert(&obstacleEntry{index: i, obstacle: o, bbox: bbox})
	}
	return &IndexedConfigurationSpace{tree: tree, agentRadius: agentRadius}, nil
}

// boundingBox returns the padded box spanned by two opposite corners.
func boundingBox(a, b r3.Vector) (rtreego.Rect, error) {
	pad := r3.Vector{X: boxPadding, Y: boxPadding, Z: boxPadding}
	lo := r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}.Sub(pad)
	hi := r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}.Add(pad)
	return rtreego.NewRect(
		rtreego.Point{lo.X, lo.Y, lo.Z},
		[]float64{hi.X - lo.X, hi.Y - lo.Y, hi.Z - lo.Z},
	)
}

func (cs *IndexedConfigurationSpace) candidates(a, b r3.Vector) []Obstacle {
	bbox, err := boundingBox(a, b)
	if err != nil {
		// only reachable for non-finite query points, which cannot be tested exactly either
		return nil
	}
	results := cs.tree.SearchIntersect(bbox)
	obstacles := make([]Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*obstacleEntry).obstacle)
	}
	return obstacles
}

// CollidesAtPoint returns true if the agent centered at p overlaps any obstacle.
func (cs *IndexedConfigurationSpace) CollidesAtPoint(p r3.Vector) bool {
	for _, o := range cs.candidates(p, p) {
		if o.Sphere().ContainsPoint(p, cs.agentRadius) {
			return true
		}
	}
	return false
}

// CollidesOnSegment returns true if the agent swept from p1 to p2 overlaps any obstacle.
func (cs *IndexedConfigurationSpace) CollidesOnSegment(p1, p2 r3.Vector) bool {
	for _, o := range cs.candidates(p1, p2) {
		if o.Sphere().IntersectsSegment(p1, p2, cs.agentRadius) {
			return true
		}
	}
	return false
}

// Size returns the number of indexed obstacles.
func (cs *IndexedConfigurationSpace) Size() int {
	return cs.tree.Size()
}
