// Package sqlexport is the out-of-core SQL dump adapter (spec.md §6):
// GORM models mirroring the in-memory highway model, and a writer that
// loads a fully-built run into either postgres or sqlite.
package sqlexport

// RegionModel mirrors model.Region.
type RegionModel struct {
	Code                 string  `gorm:"column:code;primaryKey"`
	Name                 string  `gorm:"column:name;not null"`
	Country              string  `gorm:"column:country;index"`
	Continent            string  `gorm:"column:continent;index"`
	ActiveOnlyMileage    float64 `gorm:"column:active_only_mileage"`
	ActivePreviewMileage float64 `gorm:"column:active_preview_mileage"`
}

// SystemModel mirrors model.HighwaySystem.
type SystemModel struct {
	Name     string `gorm:"column:name;primaryKey"`
	FullName string `gorm:"column:full_name;not null"`
	Country  string `gorm:"column:country;index"`
	Color    string `gorm:"column:color"`
	Tier     int    `gorm:"column:tier"`
	Level    string `gorm:"column:level;index"`
}

// SystemRegionMileageModel mirrors one entry of model.HighwaySystem's
// RegionMileage map.
type SystemRegionMileageModel struct {
	ID      uint    `gorm:"column:id;primaryKey;autoIncrement"`
	System  string  `gorm:"column:system;index;not null"`
	Region  string  `gorm:"column:region;index;not null"`
	Mileage float64 `gorm:"column:mileage;not null"`
}

// RouteModel mirrors model.Route.
type RouteModel struct {
	Root         string  `gorm:"column:root;primaryKey"`
	System       string  `gorm:"column:system;index"`
	Region       string  `gorm:"column:region;index"`
	Banner       string  `gorm:"column:banner"`
	Abbrev       string  `gorm:"column:abbrev"`
	City         string  `gorm:"column:city"`
	NumPoints    int     `gorm:"column:num_points"`
	NumSegments  int     `gorm:"column:num_segments"`
	Mileage      float64 `gorm:"column:mileage"`
	Reversed     bool    `gorm:"column:reversed"`
	Disconnected bool    `gorm:"column:disconnected"`
}

// WaypointModel mirrors one model.Waypoint, in route order.
type WaypointModel struct {
	ID    uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Route string  `gorm:"column:route;index;not null"`
	Seq   int     `gorm:"column:seq;not null"`
	Label string  `gorm:"column:label;not null"`
	Lat   float64 `gorm:"column:lat;not null"`
	Lng   float64 `gorm:"column:lng;not null"`
}

// TravelerModel mirrors model.TravelerList.
type TravelerModel struct {
	Name string `gorm:"column:name;primaryKey"`
	Idx  int    `gorm:"column:idx"`
}

// ClinchedSegmentModel mirrors one traveler's clinched segment.
type ClinchedSegmentModel struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Traveler  string `gorm:"column:traveler;index;not null"`
	Route     string `gorm:"column:route;index;not null"`
	Waypoint1 string `gorm:"column:waypoint1;not null"`
	Waypoint2 string `gorm:"column:waypoint2;not null"`
}

// DatacheckModel mirrors one non-false-positive datacheck.Entry.
type DatacheckModel struct {
	ID     uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Route  string `gorm:"column:route;index"`
	Label1 string `gorm:"column:label1"`
	Label2 string `gorm:"column:label2"`
	Label3 string `gorm:"column:label3"`
	Code   string `gorm:"column:code;index"`
	Info   string `gorm:"column:info"`
}
