package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/concurrency"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/geo"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/graph"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/namer"
)

// graphContext fixtures spec.md §8's end-to-end scenarios directly
// against the domain packages (HighwayGraph, ConcurrencyDetector),
// rather than through files on disk: these scenarios describe a
// handful of waypoints, not a highway-data tree, so building the model
// objects in-process is the most direct way to drive the real
// production code paths graph.Build and concurrency.VerifyConnectedRoutes.
type graphContext struct {
	systems         map[string]*model.HighwaySystem
	routes          map[string]*model.Route
	waypoints       map[string]*model.Waypoint
	connectedRoutes map[string]*model.ConnectedRoute

	graph *graph.HighwayGraph
	dc    *datacheck.List

	visible  []*graph.Vertex
	matching []*graph.CollapsedEdge
}

func (gc *graphContext) reset() {
	gc.systems = make(map[string]*model.HighwaySystem)
	gc.routes = make(map[string]*model.Route)
	gc.waypoints = make(map[string]*model.Waypoint)
	gc.connectedRoutes = make(map[string]*model.ConnectedRoute)
	gc.graph = nil
	gc.dc = nil
	gc.visible = nil
	gc.matching = nil
}

func (gc *graphContext) system(name string) *model.HighwaySystem {
	sys, ok := gc.systems[name]
	if !ok {
		sys = model.NewHighwaySystem(name, name, "", 1, model.LevelActive, nil)
		gc.systems[name] = sys
	}
	return sys
}

func (gc *graphContext) route(name, sysName string) *model.Route {
	r, ok := gc.routes[name]
	if !ok {
		sys := gc.system(sysName)
		r = model.NewRoute(sys, nil, name, "", "", "")
		sys.Routes = append(sys.Routes, r)
		gc.routes[name] = r
	}
	return r
}

func (gc *graphContext) waypointAt(label string, lat, lng float64, route, sysName string) error {
	r := gc.route(route, sysName)
	w := &model.Waypoint{Label: label, Lat: lat, Lng: lng, Route: r}
	r.Points = append(r.Points, w)
	gc.waypoints[label] = w
	return nil
}

func (gc *graphContext) areColocated(a, b string) error {
	wa, ok := gc.waypoints[a]
	if !ok {
		return fmt.Errorf("no waypoint %q", a)
	}
	wb, ok := gc.waypoints[b]
	if !ok {
		return fmt.Errorf("no waypoint %q", b)
	}
	model.Link(wa, wb)
	return nil
}

func (gc *graphContext) aConnectedRouteOver(name, r1, r2, sysName string) error {
	sys := gc.system(sysName)
	route1, ok := gc.routes[r1]
	if !ok {
		return fmt.Errorf("no route %q", r1)
	}
	route2, ok := gc.routes[r2]
	if !ok {
		return fmt.Errorf("no route %q", r2)
	}
	cr := model.NewConnectedRoute(sys, name, []*model.Route{route1, route2})
	sys.ConnectedRoutes = append(sys.ConnectedRoutes, cr)
	gc.connectedRoutes[name] = cr
	return nil
}

func (gc *graphContext) allSystems() []*model.HighwaySystem {
	out := make([]*model.HighwaySystem, 0, len(gc.systems))
	for _, sys := range gc.systems {
		out = append(out, sys)
	}
	return out
}

func (gc *graphContext) theHighwayGraphIsBuilt() error {
	systems := gc.allSystems()
	for _, sys := range systems {
		for _, r := range sys.Routes {
			r.BuildSegments(func(w1, w2 *model.Waypoint) float64 {
				return geo.Distance(w1.Lat, w1.Lng, w2.Lat, w2.Lng)
			})
		}
	}
	concurrency.DetectAll(systems)

	gc.dc = datacheck.NewList()
	gc.graph = graph.Build(systems, namer.New(), gc.dc)
	return nil
}

func (gc *graphContext) routeIntegrityIsVerified() error {
	gc.dc = datacheck.NewList()
	var all []*model.ConnectedRoute
	for _, cr := range gc.connectedRoutes {
		all = append(all, cr)
	}
	concurrency.VerifyConnectedRoutes(all, gc.dc)
	return nil
}

func (gc *graphContext) theGraphHasNVertices(n int) error {
	if got := len(gc.graph.Vertices); got != n {
		return fmt.Errorf("expected %d vertices, got %d", n, got)
	}
	return nil
}

func (gc *graphContext) theGraphHasNSimpleEdges(n int) error {
	if got := len(gc.graph.SimpleEdges); got != n {
		return fmt.Errorf("expected %d simple edges, got %d", n, got)
	}
	return nil
}

func (gc *graphContext) theGraphHasNCollapsedEdges(n int) error {
	if got := len(gc.graph.CollapsedEdges); got != n {
		return fmt.Errorf("expected %d collapsed edges, got %d", n, got)
	}
	return nil
}

func (gc *graphContext) noSegmentBelongsToAConcurrencyRing() error {
	for _, sys := range gc.systems {
		for _, r := range sys.Routes {
			for _, s := range r.Segments {
				if s.Concurrent != nil && len(s.Concurrent.Segments) > 1 {
					return fmt.Errorf("segment on route %s unexpectedly concurrent", r.Root)
				}
			}
		}
	}
	return nil
}

func (gc *graphContext) theVisibleGraphHasVerticesAndCollapsedEdge(vertices, edges int) error {
	gc.visible = graph.MatchingVertices(gc.graph, nil, nil, nil, true)
	if got := len(gc.visible); got != vertices {
		return fmt.Errorf("expected %d visible vertices, got %d", vertices, got)
	}
	gc.matching = graph.MatchingCollapsedEdges(gc.visible, gc.graph, nil, nil)
	if got := len(gc.matching); got != edges {
		return fmt.Errorf("expected %d collapsed edges, got %d", edges, got)
	}
	return nil
}

func (gc *graphContext) theSoleCollapsedEdgeCarriesShapingPoint(lat, lng float64) error {
	if len(gc.matching) != 1 {
		return fmt.Errorf("expected exactly one collapsed edge, have %d", len(gc.matching))
	}
	shaping := gc.matching[0].Shaping()
	if len(shaping) != 1 {
		return fmt.Errorf("expected exactly one shaping point, have %d", len(shaping))
	}
	if shaping[0].Lat != lat || shaping[0].Lng != lng {
		return fmt.Errorf("expected shaping point (%g, %g), got (%g, %g)", lat, lng, shaping[0].Lat, shaping[0].Lng)
	}
	return nil
}

func (gc *graphContext) routesAreBothMarkedDisconnected(r1, r2 string) error {
	route1, ok := gc.routes[r1]
	if !ok {
		return fmt.Errorf("no route %q", r1)
	}
	route2, ok := gc.routes[r2]
	if !ok {
		return fmt.Errorf("no route %q", r2)
	}
	if !route1.Disconnected {
		return fmt.Errorf("route %s not marked disconnected", r1)
	}
	if !route2.Disconnected {
		return fmt.Errorf("route %s not marked disconnected", r2)
	}
	return nil
}

func (gc *graphContext) thereAreNDatacheckEntries(n int, code string) error {
	var count int
	for _, e := range gc.dc.Entries() {
		if e.Code == code {
			count++
		}
	}
	if count != n {
		return fmt.Errorf("expected %d %s entries, got %d", n, code, count)
	}
	return nil
}

// InitializeGraphScenario registers every step definition above on sc.
func InitializeGraphScenario(sc *godog.ScenarioContext) {
	gc := &graphContext{}
	sc.Before(func(ctx context.Context, scn *godog.Scenario) (context.Context, error) {
		gc.reset()
		return ctx, nil
	})

	sc.Step(`^waypoint "([^"]+)" at \((-?[\d.]+), (-?[\d.]+)\) on route "([^"]+)" in system "([^"]+)"$`, gc.waypointAt)
	sc.Step(`^"([^"]+)" and "([^"]+)" are colocated$`, gc.areColocated)
	sc.Step(`^a connected route "([^"]+)" over "([^"]+)", "([^"]+)" in system "([^"]+)"$`, gc.aConnectedRouteOver)
	sc.Step(`^the highway graph is built$`, gc.theHighwayGraphIsBuilt)
	sc.Step(`^route integrity is verified$`, gc.routeIntegrityIsVerified)
	sc.Step(`^the graph has (\d+) vertices?$`, gc.theGraphHasNVertices)
	sc.Step(`^the graph has (\d+) simple edges?$`, gc.theGraphHasNSimpleEdges)
	sc.Step(`^the graph has (\d+) collapsed edges?$`, gc.theGraphHasNCollapsedEdges)
	sc.Step(`^no segment belongs to a concurrency ring$`, gc.noSegmentBelongsToAConcurrencyRing)
	sc.Step(`^the visible graph has (\d+) vertices? and (\d+) collapsed edges?$`, gc.theVisibleGraphHasVerticesAndCollapsedEdge)
	sc.Step(`^the sole collapsed edge carries shaping point \((-?[\d.]+), (-?[\d.]+)\)$`, gc.theSoleCollapsedEdgeCarriesShapingPoint)
	sc.Step(`^routes "([^"]+)" and "([^"]+)" are both marked disconnected$`, gc.routesAreBothMarkedDisconnected)
	sc.Step(`^there are (\d+) "([^"]+)" datacheck entries$`, gc.thereAreNDatacheckEntries)
}
