// Package quadtree implements the WaypointQuadtree of spec.md §4.1: a
// recursive 2-D spatial index over (lat, lng) used for colocation
// detection during insert and for near-miss queries afterward.
package quadtree

import (
	"sort"
	"sync"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// maxUniqueLocations is the leaf refinement threshold (spec.md §4.1).
const maxUniqueLocations = 50

// node is one quadtree cell. Non-leaf nodes hold no local waypoints;
// leaves hold a bag of every waypoint inserted there, covering up to
// maxUniqueLocations unique coordinates (colocated waypoints each have
// their own bag entry as well as sharing a colocation ring).
type node struct {
	latMin, latMax, lngMin, lngMax float64
	midLat, midLng                 float64

	children [4]*node // nil when this node is a leaf

	bag             []*model.Waypoint
	uniqueLocations int
}

func newNode(latMin, latMax, lngMin, lngMax float64) *node {
	return &node{
		latMin: latMin, latMax: latMax, lngMin: lngMin, lngMax: lngMax,
		midLat: (latMin + latMax) / 2,
		midLng: (lngMin + lngMax) / 2,
	}
}

func (n *node) isLeaf() bool { return n.children[0] == nil }

// quadrant returns which of the four children (w.lat, w.lng) falls
// into: lat<mid -> low, lat>=mid -> high; same for lng. Indices are
// 0=lowLat/lowLng, 1=lowLat/highLng, 2=highLat/lowLng, 3=highLat/highLng.
func (n *node) quadrant(lat, lng float64) int {
	idx := 0
	if lat >= n.midLat {
		idx += 2
	}
	if lng >= n.midLng {
		idx += 1
	}
	return idx
}

func (n *node) childBounds(idx int) (latMin, latMax, lngMin, lngMax float64) {
	if idx&2 == 0 {
		latMin, latMax = n.latMin, n.midLat
	} else {
		latMin, latMax = n.midLat, n.latMax
	}
	if idx&1 == 0 {
		lngMin, lngMax = n.lngMin, n.midLng
	} else {
		lngMin, lngMax = n.midLng, n.lngMax
	}
	return
}

// Quadtree is the WaypointQuadtree of spec.md §4.1, covering the
// rectangle (-90,-180)-(90,180).
type Quadtree struct {
	// mu serializes all inserts (and the refinements they trigger)
	// across the whole tree. spec.md §4.1 allows either per-node
	// locks or a single global write lock; a global lock is used here
	// since refinement must already coordinate across a node and all
	// four of its new children, making per-node locking no simpler
	// and considerably more error-prone to get right.
	mu   sync.Mutex
	root *node
}

// New builds an empty quadtree over the whole globe.
func New() *Quadtree {
	return &Quadtree{root: newNode(-90, 90, -180, 180)}
}

// Insert adds w to the tree, linking it into an existing colocation
// ring if another waypoint occupies the exact same coordinates
// (spec.md §4.1, §4.2).
func (q *Quadtree) Insert(w *model.Waypoint) {
	q.mu.Lock()
	defer q.mu.Unlock()
	insert(q.root, w)
}

func insert(n *node, w *model.Waypoint) {
	for !n.isLeaf() {
		n = n.children[n.quadrant(w.Lat, w.Lng)]
	}

	if existing := findSamePoint(n.bag, w); existing != nil {
		model.Link(existing, w)
		n.bag = append(n.bag, w)
		return
	}

	n.bag = append(n.bag, w)
	n.uniqueLocations++
	if n.uniqueLocations > maxUniqueLocations {
		refine(n)
	}
}

func findSamePoint(bag []*model.Waypoint, w *model.Waypoint) *model.Waypoint {
	for _, p := range bag {
		if p.Lat == w.Lat && p.Lng == w.Lng {
			return p
		}
	}
	return nil
}

// WaypointAtSamePoint returns an existing waypoint at w's exact
// coordinates, or nil (spec.md §4.1). Callers must hold no
// expectation of freshness across concurrent inserts; it is intended
// for use inside Insert's critical section or after all inserts
// complete.
func (q *Quadtree) WaypointAtSamePoint(w *model.Waypoint) *model.Waypoint {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.root
	for !n.isLeaf() {
		n = n.children[n.quadrant(w.Lat, w.Lng)]
	}
	return findSamePoint(n.bag, w)
}

// refine splits a leaf into four children and redistributes its bag.
// Caller holds q.mu.
func refine(n *node) {
	bag := n.bag
	n.bag = nil
	n.uniqueLocations = 0
	for i := 0; i < 4; i++ {
		latMin, latMax, lngMin, lngMax := n.childBounds(i)
		n.children[i] = newNode(latMin, latMax, lngMin, lngMax)
	}
	for _, w := range bag {
		insert(n.children[n.quadrant(w.Lat, w.Lng)], w)
	}
}

// NearMiss returns all waypoints within tol degrees (box test, not
// great-circle) of w that are not colocated with it (spec.md §4.1).
func (q *Quadtree) NearMiss(w *model.Waypoint, tol float64) []*model.Waypoint {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []*model.Waypoint
	var walk func(n *node)
	walk = func(n *node) {
		if n.latMax < w.Lat-tol || n.latMin > w.Lat+tol ||
			n.lngMax < w.Lng-tol || n.lngMin > w.Lng+tol {
			return
		}
		if n.isLeaf() {
			for _, p := range n.bag {
				if p == w || w.ColocatedWith(p) {
					continue
				}
				if abs(p.Lat-w.Lat) <= tol && abs(p.Lng-w.Lng) <= tol {
					out = append(out, p)
				}
			}
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(q.root)
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Walk performs a lazy in-order traversal, calling visit for every
// waypoint the tree holds until visit returns false or the tree is
// exhausted (spec.md §4.1's point_list).
func (q *Quadtree) Walk(visit func(*model.Waypoint) bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var walk func(n *node) bool
	walk = func(n *node) bool {
		if n.isLeaf() {
			for _, w := range n.bag {
				if !visit(w) {
					return false
				}
			}
			return true
		}
		for _, c := range n.children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(q.root)
}

// PointList materializes Walk's traversal into a slice.
func (q *Quadtree) PointList() []*model.Waypoint {
	var out []*model.Waypoint
	q.Walk(func(w *model.Waypoint) bool {
		out = append(out, w)
		return true
	})
	return out
}

// Sort orders each leaf's bag by (route root, label), matching
// spec.md §4.1's sort() operation — used before any traversal whose
// output must be reproducible.
func (q *Quadtree) Sort() {
	q.mu.Lock()
	defer q.mu.Unlock()
	var walk func(n *node)
	walk = func(n *node) {
		if n.isLeaf() {
			sort.Slice(n.bag, func(i, j int) bool {
				a, b := n.bag[i], n.bag[j]
				ar, br := routeRoot(a), routeRoot(b)
				if ar != br {
					return ar < br
				}
				return a.Label < b.Label
			})
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(q.root)
}

func routeRoot(w *model.Waypoint) string {
	if w.Route == nil {
		return ""
	}
	return w.Route.Root
}

// Valid reports the structural invariants of spec.md §8: every leaf
// holds at most maxUniqueLocations unique locations, and every
// non-leaf node's local bag is empty.
func (q *Quadtree) Valid() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	var check func(n *node) bool
	check = func(n *node) bool {
		if n.isLeaf() {
			return n.uniqueLocations <= maxUniqueLocations
		}
		if len(n.bag) != 0 {
			return false
		}
		for _, c := range n.children {
			if !check(c) {
				return false
			}
		}
		return true
	}
	return check(q.root)
}
