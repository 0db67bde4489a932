package concurrency

import (
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// VerifyConnectedRoutes runs the connected-route endpoint
// verification of spec.md §4.3 over every ConnectedRoute with at
// least two roots, recording reversals on the Route objects and
// DISCONNECTED_ROUTE datacheck entries where no rescue applies.
func VerifyConnectedRoutes(crs []*model.ConnectedRoute, dc *datacheck.List) {
	for _, cr := range crs {
		verifyOne(cr, dc)
	}
}

func verifyOne(cr *model.ConnectedRoute, dc *datacheck.List) {
	roots := cr.Roots
	if len(roots) < 2 {
		return
	}
	for i := 0; i+1 < len(roots); i++ {
		q, r := roots[i], roots[i+1]
		if len(q.Points) <= 1 || len(r.Points) <= 1 {
			continue
		}

		qEnd, qBegin := q.ConnectionEnd(), q.ConnectionBegin()
		rBegin, rEnd := r.ConnectionBegin(), r.ConnectionEnd()

		if rBegin != nil && qEnd != nil && rBegin.ColocatedWith(qEnd) {
			continue
		}

		// Rescues that turn on q's own direction only apply while q's
		// reversibility is still open: q is the connected route's
		// first root, or q was already marked disconnected by an
		// earlier pairing (spec.md §4.3). Reversing r alone carries no
		// such restriction and is always tried first.
		reversibilityOpen := i == 0 || q.Disconnected

		switch {
		case rEnd != nil && qEnd != nil && rEnd.ColocatedWith(qEnd):
			// r can be reversed. Only prefer reversing q instead while
			// q's direction is still open and reversing r would
			// conflict with r's pairing with the route after it;
			// otherwise reverse r unconditionally.
			if reversibilityOpen && rReversalLocked(r, roots, i) {
				q.Reversed = !q.Reversed
			} else {
				r.Reversed = !r.Reversed
			}
		case qBegin != nil && rEnd != nil && qBegin.ColocatedWith(rEnd):
			// q and r can both be reversed together, but only while
			// q's direction is still open.
			if reversibilityOpen {
				q.Reversed = !q.Reversed
				r.Reversed = !r.Reversed
			} else {
				q.Disconnected = true
				r.Disconnected = true
				dc.AddCode(q, "", "", "", "DISCONNECTED_ROUTE", r.Root)
				dc.AddCode(r, "", "", "", "DISCONNECTED_ROUTE", q.Root)
			}
		case reversibilityOpen && qBegin != nil && rBegin != nil && qBegin.ColocatedWith(rBegin):
			// Only q can be reversed.
			q.Reversed = !q.Reversed
		default:
			q.Disconnected = true
			r.Disconnected = true
			dc.AddCode(q, "", "", "", "DISCONNECTED_ROUTE", r.Root)
			dc.AddCode(r, "", "", "", "DISCONNECTED_ROUTE", q.Root)
		}
	}
}

// rReversalLocked implements the Open-Question lookahead from
// spec.md §9: reversing r (roots[i+1]) would also disturb its
// pairing with the next-next root, roots[i+2], if that root's begin
// already colocates with r's current (unreversed) end. In that case
// the rescue must reverse q instead of r.
func rReversalLocked(r *model.Route, roots []*model.Route, i int) bool {
	if i+2 >= len(roots) {
		return false
	}
	next := roots[i+2]
	nextBegin, rEnd := next.ConnectionBegin(), r.ConnectionEnd()
	if nextBegin == nil || rEnd == nil {
		return false
	}
	return nextBegin.ColocatedWith(rEnd)
}
