package wptio

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/quadtree"
	"golang.org/x/time/rate"
)

func fmtCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', 15, 64)
}

// Limiter throttles concurrent wpt file-descriptor churn during the
// parallel read and NMP-merge stages (spec.md §4.8 stages 1, 3),
// mirroring how the reference throttles outbound calls with
// golang.org/x/time/rate rather than an unbounded goroutine fan-out.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter builds a limiter allowing burstsPerSecond file operations
// per second, with a burst of the same size.
func NewLimiter(burstsPerSecond int) *Limiter {
	if burstsPerSecond <= 0 {
		burstsPerSecond = 1
	}
	return &Limiter{l: rate.NewLimiter(rate.Limit(burstsPerSecond), burstsPerSecond)}
}

// Wait blocks until the limiter admits one more file operation.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}

// WriteNMPMerged emits one per-route .wpt file under dir (SPEC_FULL §4
// item 1). A waypoint in a colocation ring is written at the ring
// lead's coordinates; near-miss partners reported by ScanNearMiss are
// not linked or moved, so they keep their own coordinates.
func WriteNMPMerged(dir string, r *model.Route, lim *Limiter) error {
	if lim != nil {
		if err := lim.Wait(context.Background()); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create nmp-merge dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, r.Root+".wpt")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create nmp-merged file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, pt := range r.Points {
		lat, lng := pt.Lat, pt.Lng
		if pt.Colocated != nil {
			lead := pt.Colocated.Lead()
			lat, lng = lead.Lat, lead.Lng
		}
		fmt.Fprintf(w, "%s http://example.org/?lat=%s&lon=%s\n", pt.Label, fmtCoord(lat), fmtCoord(lng))
	}
	return w.Flush()
}

// ScanNearMiss runs the near-miss query for every waypoint qt holds and
// returns one formatted nearmisspoints.log line per pair found (sorted
// by caller before emission, per spec.md §5's reproducibility rule).
func ScanNearMiss(qt *quadtree.Quadtree, tol float64) []string {
	var lines []string
	qt.Walk(func(w *model.Waypoint) bool {
		for _, p := range qt.NearMiss(w, tol) {
			lines = append(lines, fmt.Sprintf("%s@%s,%s is within tolerance of %s@%s,%s",
				routeLabel(w), fmtCoord(w.Lat), fmtCoord(w.Lng),
				routeLabel(p), fmtCoord(p.Lat), fmtCoord(p.Lng)))
		}
		return true
	})
	return lines
}

func routeLabel(w *model.Waypoint) string {
	if w.Route == nil {
		return w.Label
	}
	return w.Route.Root + " " + w.Label
}
