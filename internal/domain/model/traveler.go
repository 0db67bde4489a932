package model

import "sync"

// TravelerList holds one user's traveled-segment declarations and the
// mileage/region aggregates derived from them (spec.md §3). Mutable
// during ingest and clinch-augment only (spec.md §5).
type TravelerList struct {
	Name  string
	Lines []string // raw input lines, comments/blanks preserved verbatim

	mu       sync.Mutex
	clinched map[*HighwaySegment]bool

	// ActivePreviewMileageByRegion sums mileage across active+preview
	// systems, keyed by region code.
	ActivePreviewMileageByRegion map[string]float64
	// ActiveOnlyMileageByRegion sums mileage across active-only
	// systems, keyed by region code.
	ActiveOnlyMileageByRegion map[string]float64
	// SystemRegionMileages is system name -> region code -> miles.
	SystemRegionMileages map[string]map[string]float64

	UpdatedRoutes map[string]bool

	// Index is assigned after the global sort by name (spec.md §4.8
	// stage 7); -1 until then.
	Index int
}

// NewTravelerList constructs an empty traveler ready for list-file
// ingest.
func NewTravelerList(name string) *TravelerList {
	return &TravelerList{
		Name:                         name,
		clinched:                     make(map[*HighwaySegment]bool),
		ActivePreviewMileageByRegion: make(map[string]float64),
		ActiveOnlyMileageByRegion:    make(map[string]float64),
		SystemRegionMileages:         make(map[string]map[string]float64),
		UpdatedRoutes:                make(map[string]bool),
		Index:                        -1,
	}
}

// ClinchSegment records that t has clinched s directly (from list-file
// ingest, not augmentation). Safe for concurrent callers on distinct
// travelers; a single TravelerList is only ever touched by the worker
// that owns it during ingest.
func (t *TravelerList) ClinchSegment(s *HighwaySegment) {
	t.clinched[s] = true
}

// Clinched reports whether t has clinched s (directly or via
// augmentation).
func (t *TravelerList) Clinched(s *HighwaySegment) bool {
	return t.clinched[s]
}

// ClinchedSegments returns the set of segments t has clinched.
func (t *TravelerList) ClinchedSegments() []*HighwaySegment {
	out := make([]*HighwaySegment, 0, len(t.clinched))
	for s := range t.clinched {
		out = append(out, s)
	}
	return out
}

// AddClinch is the thread-safe variant used by the ClinchAugmenter: it
// adds s to t's clinched set and reports whether the addition was new.
// Callers must still hold s.Route's mutex for the at-most-once
// guarantee described in spec.md §9; this method additionally
// protects t's own maps, since the same traveler can be augmented
// concurrently from different concurrency rings.
func (t *TravelerList) AddClinch(s *HighwaySegment) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.clinched[s] {
		return false
	}
	t.clinched[s] = true
	return true
}

// AddMileage records a mileage contribution for region/system
// attribution during clinch augmentation (spec.md §4.7).
func (t *TravelerList) AddMileage(systemName, region string, miles float64, active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ActivePreviewMileageByRegion[region] += miles
	if active {
		t.ActiveOnlyMileageByRegion[region] += miles
	}
	if t.SystemRegionMileages[systemName] == nil {
		t.SystemRegionMileages[systemName] = make(map[string]float64)
	}
	t.SystemRegionMileages[systemName][region] += miles
}
