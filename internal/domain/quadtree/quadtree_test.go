package quadtree_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/quadtree"
)

func wp(label string, lat, lng float64) *model.Waypoint {
	return &model.Waypoint{Label: label, Lat: lat, Lng: lng}
}

func TestInsert_ColocationRingSharedAndClosed(t *testing.T) {
	q := quadtree.New()
	a := wp("A", 1, 0)
	b := wp("B", 1, 0)
	c := wp("C", 2, 0)
	q.Insert(a)
	q.Insert(b)
	q.Insert(c)

	require.NotNil(t, a.Colocated)
	assert.Same(t, a.Colocated, b.Colocated)
	assert.Nil(t, c.Colocated)
	for _, m := range a.Colocated.Members {
		assert.Same(t, a.Colocated, m.Colocated)
	}
}

func TestInsert_RefinementAt51stUniqueLocation(t *testing.T) {
	q := quadtree.New()
	for i := 0; i < 51; i++ {
		q.Insert(wp(fmt.Sprintf("W%d", i), float64(i)*0.001, float64(i)*0.001))
	}
	assert.True(t, q.Valid())
	assert.Len(t, q.PointList(), 51)
}

func TestNearMiss_ExcludesColocatedAndRespectsTolerance(t *testing.T) {
	q := quadtree.New()
	a := wp("A", 10.0, 20.0)
	b := wp("B", 10.0, 20.0)    // exact duplicate, colocated
	c := wp("C", 10.0005, 20.0) // within 0.001 tolerance, not colocated
	d := wp("D", 11.0, 20.0)    // far away
	q.Insert(a)
	q.Insert(b)
	q.Insert(c)
	q.Insert(d)

	near := q.NearMiss(a, 0.001)
	require.Len(t, near, 1)
	assert.Equal(t, "C", near[0].Label)
}

func TestNearMiss_ZeroToleranceExcludesEverything(t *testing.T) {
	q := quadtree.New()
	a := wp("A", 10.0, 20.0)
	c := wp("C", 10.0005, 20.0)
	q.Insert(a)
	q.Insert(c)

	assert.Empty(t, q.NearMiss(a, 0))
}

func TestConcurrentInsert_LeavesValidTree(t *testing.T) {
	q := quadtree.New()
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Half the inserts collide pairwise to exercise colocation
			// under concurrency.
			lat := float64(i/2) * 0.01
			q.Insert(wp(fmt.Sprintf("W%d", i), lat, lat))
		}(i)
	}
	wg.Wait()
	assert.True(t, q.Valid())
	assert.Len(t, q.PointList(), 200)
}

func TestSort_OrdersByRouteRootThenLabel(t *testing.T) {
	q := quadtree.New()
	r1 := &model.Route{Root: "r1"}
	r2 := &model.Route{Root: "r2"}
	b := &model.Waypoint{Label: "B", Lat: 5, Lng: 5, Route: r2}
	a := &model.Waypoint{Label: "A", Lat: 5, Lng: 5, Route: r1}
	q.Insert(b)
	q.Insert(a)
	q.Sort()

	pts := q.PointList()
	require.Len(t, pts, 2)
	assert.Equal(t, "r1", pts[0].Route.Root)
	assert.Equal(t, "r2", pts[1].Route.Root)
}
