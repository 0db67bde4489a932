// Package listio implements the traveler list-file adapter of
// spec.md §6: UserData/list_files/<traveler>.list, whitespace-separated,
// 4 fields for a single-route clinched range, 6 fields for a range that
// spans a connected route. Comments, blanks and original line order are
// preserved on the TravelerList so they can be re-emitted verbatim
// (spec.md §3's "ordered input lines").
package listio

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// RouteIndex resolves a route root to its Route, across every system.
type RouteIndex map[string]*model.Route

// NewRouteIndex builds a RouteIndex over every route of every system.
func NewRouteIndex(systems []*model.HighwaySystem) RouteIndex {
	idx := make(RouteIndex)
	for _, sys := range systems {
		for _, r := range sys.Routes {
			idx[r.Root] = r
		}
	}
	return idx
}

// connectedRouteOf finds the ConnectedRoute (if any) that contains both
// r1 and r2 within the same system.
func connectedRouteOf(r1, r2 *model.Route) (*model.ConnectedRoute, int, int, bool) {
	if r1.System != r2.System || r1.System == nil {
		return nil, 0, 0, false
	}
	for _, cr := range r1.System.ConnectedRoutes {
		i1, i2 := -1, -1
		for i, root := range cr.Roots {
			if root == r1 {
				i1 = i
			}
			if root == r2 {
				i2 = i
			}
		}
		if i1 >= 0 && i2 >= 0 {
			return cr, i1, i2, true
		}
	}
	return nil, 0, 0, false
}

// clinchRouteRange clinches every segment of r between the waypoints
// labeled label1 and label2 (inclusive endpoints, order-independent).
func clinchRouteRange(t *model.TravelerList, r *model.Route, label1, label2 string) error {
	w1, ok1 := r.WaypointByLabel(label1)
	w2, ok2 := r.WaypointByLabel(label2)
	if !ok1 || !ok2 {
		return fmt.Errorf("route %s: label %q or %q not found", r.Root, label1, label2)
	}
	i1, i2 := indexOf(r, w1), indexOf(r, w2)
	if i1 < 0 || i2 < 0 {
		return fmt.Errorf("route %s: could not locate waypoint index for %q/%q", r.Root, label1, label2)
	}
	clinchIndexRange(t, r, i1, i2)
	t.UpdatedRoutes[r.Root] = true
	return nil
}

func indexOf(r *model.Route, w *model.Waypoint) int {
	for i, p := range r.Points {
		if p == w {
			return i
		}
	}
	return -1
}

func clinchIndexRange(t *model.TravelerList, r *model.Route, i1, i2 int) {
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	for i := i1; i < i2 && i+1 < len(r.Points); i++ {
		t.ClinchSegment(r.Segments[i])
	}
}

// clinchConnectedRange clinches from label1 on r1 through every
// intervening full route to label2 on r2, given both belong to the
// same ConnectedRoute.
func clinchConnectedRange(t *model.TravelerList, r1, r2 *model.Route, label1, label2 string) error {
	cr, i1, i2, ok := connectedRouteOf(r1, r2)
	if !ok {
		return fmt.Errorf("routes %s and %s are not in a shared connected route", r1.Root, r2.Root)
	}

	w1, ok1 := r1.WaypointByLabel(label1)
	if !ok1 {
		return fmt.Errorf("route %s: label %q not found", r1.Root, label1)
	}
	w2, ok2 := r2.WaypointByLabel(label2)
	if !ok2 {
		return fmt.Errorf("route %s: label %q not found", r2.Root, label2)
	}

	step := 1
	if i1 > i2 {
		step = -1
	}

	idx1 := indexOf(r1, w1)
	if idx1 < 0 {
		return fmt.Errorf("route %s: could not locate waypoint index for %q", r1.Root, label1)
	}
	if step > 0 {
		clinchIndexRange(t, r1, idx1, len(r1.Points)-1)
	} else {
		clinchIndexRange(t, r1, idx1, 0)
	}
	t.UpdatedRoutes[r1.Root] = true

	for i := i1 + step; i != i2; i += step {
		mid := cr.Roots[i]
		for _, s := range mid.Segments {
			t.ClinchSegment(s)
		}
		t.UpdatedRoutes[mid.Root] = true
	}

	idx2 := indexOf(r2, w2)
	if idx2 < 0 {
		return fmt.Errorf("route %s: could not locate waypoint index for %q", r2.Root, label2)
	}
	if step > 0 {
		clinchIndexRange(t, r2, 0, idx2)
	} else {
		clinchIndexRange(t, r2, idx2, len(r2.Points)-1)
	}
	t.UpdatedRoutes[r2.Root] = true

	return nil
}

// ReadTravelerList parses one traveler's .list file into t, preserving
// every raw line (comment, blank, or data) in order on t.Lines, and
// clinching segments for every well-formed data line. A malformed data
// line records an errs.List entry and is skipped; the traveler's file
// continues processing (spec.md §7: local failures do not abort the
// surrounding stage).
func ReadTravelerList(path string, t *model.TravelerList, routes RouteIndex, el *errs.List) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open list file %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		t.Lines = append(t.Lines, line)

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		switch len(fields) {
		case 4:
			// region route label1 label2
			r, ok := routes[fields[1]]
			if !ok {
				el.Addf("%s: unrecognized route root %q", path, fields[1])
				continue
			}
			if err := clinchRouteRange(t, r, fields[2], fields[3]); err != nil {
				el.Addf("%s: %v", path, err)
			}
		case 6:
			// region1 route1 label1 region2 route2 label2
			r1, ok1 := routes[fields[1]]
			r2, ok2 := routes[fields[4]]
			if !ok1 || !ok2 {
				el.Addf("%s: unrecognized route root in %q", path, trimmed)
				continue
			}
			if err := clinchConnectedRange(t, r1, r2, fields[2], fields[5]); err != nil {
				el.Addf("%s: %v", path, err)
			}
		default:
			el.Addf("%s: could not parse list line %q: expected 4 or 6 fields, found %d", path, trimmed, len(fields))
		}
	}
	return sc.Err()
}
