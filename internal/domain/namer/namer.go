// Package namer implements the CanonicalNamer of spec.md §4.4: it
// turns each colocation-ring lead waypoint into a unique, meaningful
// vertex label.
package namer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-memdb"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// seenName is the sole row type in the "name" table: one committed
// vertex label.
type seenName struct {
	Value string
}

// nameSchema indexes seenName by its full value; the table backs the
// Namer's uniqueness check across a run with hundreds of thousands of
// vertices, where a plain map would otherwise have done just as well
// but go-memdb's snapshot-on-write txns give Namer a cheap path to
// concurrent reads if the naming pass is ever parallelized.
var nameSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"name": {
			Name: "name",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Value"},
				},
			},
		},
	},
}

// Namer assigns globally unique labels, logging every mutation it
// applies to reach uniqueness (spec.md §4.4).
type Namer struct {
	db  *memdb.MemDB
	log []string
}

// New returns an empty Namer.
func New() *Namer {
	db, err := memdb.NewMemDB(nameSchema)
	if err != nil {
		// nameSchema is a fixed literal; construction can only fail on
		// a malformed schema, which would be a programming error.
		panic(fmt.Sprintf("namer: invalid schema: %v", err))
	}
	return &Namer{db: db}
}

// taken reports whether name has already been assigned.
func (n *Namer) taken(name string) bool {
	txn := n.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First("name", "id", name)
	return err == nil && raw != nil
}

// commit records name as taken.
func (n *Namer) commit(name string) {
	txn := n.db.Txn(true)
	if err := txn.Insert("name", &seenName{Value: name}); err != nil {
		panic(fmt.Sprintf("namer: insert %q: %v", name, err))
	}
	txn.Commit()
}

// Log returns the naming-log lines accumulated so far.
func (n *Namer) Log() []string {
	out := make([]string, len(n.log))
	copy(out, n.log)
	return out
}

// Name computes w's unique vertex label following the escalation
// ladder of spec.md §4.4: canonical name, then region-qualified, then
// a simpler unqualified fallback, then "!" suffixes.
func (n *Namer) Name(w *model.Waypoint) string {
	base := canonicalName(w)
	if !n.taken(base) {
		n.take(base, w, "canonical")
		return base
	}

	if region := regionCode(w); region != "" {
		withRegion := base + "|" + region
		if !n.taken(withRegion) {
			n.take(withRegion, w, "region-qualified")
			return withRegion
		}
	}

	simple := simpleLabel(w)
	if simple != base && !n.taken(simple) {
		n.take(simple, w, "unqualified fallback")
		return simple
	}

	candidate := base
	for n.taken(candidate) {
		candidate += "!"
	}
	n.take(candidate, w, "bang-suffixed")
	return candidate
}

func (n *Namer) take(name string, w *model.Waypoint, reason string) {
	n.commit(name)
	n.log = append(n.log, fmt.Sprintf("%s: %s (%s)", name, labelOf(w), reason))
}

func labelOf(w *model.Waypoint) string {
	if w.Route == nil {
		return w.Label
	}
	return w.Route.Root + " " + w.Label
}

func regionCode(w *model.Waypoint) string {
	if w.Route == nil || w.Route.Region == nil {
		return ""
	}
	return w.Route.Region.Code
}

// routeShortName picks the most specific short name available on a
// route for use in a canonical label: banner, then abbrev, then root.
func routeShortName(r *model.Route) string {
	return RouteShortName(r)
}

// RouteShortName is the exported form of routeShortName, reused by the
// graph package for TMG edge labels (spec.md §6).
func RouteShortName(r *model.Route) string {
	if r == nil {
		return ""
	}
	if r.Banner != "" {
		return r.Banner
	}
	if r.Abbrev != "" {
		return r.Abbrev
	}
	return r.Root
}

func simpleLabel(w *model.Waypoint) string {
	return routeShortName(w.Route) + "@" + w.Label
}

// canonicalName builds the route-qualified label for a colocation
// ring (spec.md §4.4). A single-member ring, or no ring at all,
// yields its simple label. A multi-member ring first tries the
// exit-number reduction rule; failing that, if every member shares
// the same label, the ring collapses to "rte1/rte2@label"; otherwise
// it falls back to each member's own simple label, joined by "/".
func canonicalName(w *model.Waypoint) string {
	if w.Colocated == nil || len(w.Colocated.Members) <= 1 {
		return simpleLabel(w)
	}

	if name, ok := tryExitReduction(w.Colocated); ok {
		return name
	}

	allSame := true
	for _, m := range w.Colocated.Members {
		if m.Label != w.Colocated.Members[0].Label {
			allSame = false
			break
		}
	}
	if allSame {
		names := make([]string, 0, len(w.Colocated.Members))
		for _, m := range w.Colocated.Members {
			names = append(names, routeShortName(m.Route))
		}
		return strings.Join(names, "/") + "@" + w.Colocated.Members[0].Label
	}

	parts := make([]string, 0, len(w.Colocated.Members))
	for _, m := range w.Colocated.Members {
		parts = append(parts, simpleLabel(m))
	}
	return strings.Join(parts, "/")
}
