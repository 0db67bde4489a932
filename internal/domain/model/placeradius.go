package model

import "github.com/andrescamacho/tm-siteupdate/internal/domain/geo"

// PlaceRadius is a circular geographic filter for subgraph extraction
// (spec.md §3): a vertex falls inside iff its great-circle distance
// from (Lat, Lng) is at most Miles.
type PlaceRadius struct {
	Descr string
	Title string
	Lat   float64
	Lng   float64
	Miles float64
}

// NewPlaceRadius constructs a place-radius filter.
func NewPlaceRadius(descr, title string, lat, lng, miles float64) *PlaceRadius {
	return &PlaceRadius{Descr: descr, Title: title, Lat: lat, Lng: lng, Miles: miles}
}

// Contains reports whether (lat, lng) is within the radius.
func (p *PlaceRadius) Contains(lat, lng float64) bool {
	if p == nil {
		return true
	}
	return geo.Distance(p.Lat, p.Lng, lat, lng) <= p.Miles
}
