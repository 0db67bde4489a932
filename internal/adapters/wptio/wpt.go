// Package wptio implements the wpt-file adapter of spec.md §6: reading
// hwy_data/<region>/<system>/<root>.wpt files into a Route's Points,
// and emitting NMP-merged variants (SPEC_FULL §4 item 1).
package wptio

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/geo"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/quadtree"
)

// NearMissTolerance is the bounding-box tolerance, in degrees, used
// for near-miss-point detection (spec.md §4.1, §9).
const NearMissTolerance = 0.0005

var (
	queryStyle = regexp.MustCompile(`[?&]lat=(-?[0-9.]+)&lon=(-?[0-9.]+)`)
	pathStyle  = regexp.MustCompile(`@(-?[0-9.]+),(-?[0-9.]+)`)
)

// ParseURL extracts (lat, lng) from a waypoint URL in either the
// query-string style (`?lat=<f>&lon=<f>`) or the path style
// (`@<lat>,<lng>`), per spec.md §6.
func ParseURL(url string) (lat, lng float64, ok bool) {
	if m := queryStyle.FindStringSubmatch(url); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat == nil && errLng == nil {
			return lat, lng, true
		}
		return 0, 0, false
	}
	if m := pathStyle.FindStringSubmatch(url); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat == nil && errLng == nil {
			return lat, lng, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}

// ParseLine parses one non-comment, non-blank wpt line: whitespace
// separated label tokens followed by a URL (spec.md §6). The first
// token is the waypoint's label; any URL-parse failure is reported via
// ok=false so the caller can log a single Datacheck entry and skip the
// waypoint (spec.md §7).
func ParseLine(line string) (label string, lat, lng float64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, 0, false
	}
	label = fields[0]
	url := fields[len(fields)-1]
	lat, lng, parsed := ParseURL(url)
	if !parsed {
		return label, 0, 0, false
	}
	return label, lat, lng, true
}

// ReadRoute populates r.Points from its wpt file, inserting every
// waypoint into qt. Malformed lines log one Datacheck entry each and
// are skipped; the route continues (spec.md §7). An unreadable file is
// returned as an error, which the caller records on the ErrorList
// rather than as a Datacheck entry.
func ReadRoute(path string, r *model.Route, qt *quadtree.Quadtree, dc *datacheck.List) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open wpt file %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		label, lat, lng, ok := ParseLine(trimmed)
		if !ok {
			dc.AddCode(r, fmt.Sprintf("line %d", lineNo), "", "", "MALFORMED_URL", trimmed)
			continue
		}

		w := &model.Waypoint{Label: label, Lat: lat, Lng: lng, Route: r}
		r.Points = append(r.Points, w)
		qt.Insert(w)
	}
	return sc.Err()
}

// BuildSegments computes r's segment array using the fixed great-circle
// formula (spec.md §4.2, §9).
func BuildSegments(r *model.Route) {
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 {
		return geo.Distance(w1.Lat, w1.Lng, w2.Lat, w2.Lng)
	})
}
