package sqlexport

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

const batchSize = 500

// AutoMigrate creates or updates every table this package writes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&RegionModel{},
		&SystemModel{},
		&SystemRegionMileageModel{},
		&RouteModel{},
		&WaypointModel{},
		&TravelerModel{},
		&ClinchedSegmentModel{},
		&DatacheckModel{},
	)
}

// Dump loads one completed run's regions, systems, travelers and
// reconciled datacheck entries into db, in a single transaction
// (spec.md §6: "SQL dump: out of core").
func Dump(db *gorm.DB, regions []*model.Region, systems []*model.HighwaySystem, travelers []*model.TravelerList, dc *datacheck.List) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := dumpRegions(tx, regions); err != nil {
			return err
		}
		if err := dumpSystems(tx, systems); err != nil {
			return err
		}
		if err := dumpTravelers(tx, travelers); err != nil {
			return err
		}
		if err := dumpDatacheck(tx, dc); err != nil {
			return err
		}
		return nil
	})
}

func dumpRegions(tx *gorm.DB, regions []*model.Region) error {
	rows := make([]RegionModel, 0, len(regions))
	for _, r := range regions {
		row := RegionModel{
			Code:                 r.Code,
			Name:                 r.Name,
			ActiveOnlyMileage:    r.ActiveOnlyMileage,
			ActivePreviewMileage: r.ActivePreviewMileage,
		}
		if r.Country != nil {
			row.Country = r.Country.Code
		}
		if r.Continent != nil {
			row.Continent = r.Continent.Code
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("dump regions: %w", err)
	}
	return nil
}

func dumpSystems(tx *gorm.DB, systems []*model.HighwaySystem) error {
	sysRows := make([]SystemModel, 0, len(systems))
	var mileageRows []SystemRegionMileageModel
	var routeRows []RouteModel
	var wptRows []WaypointModel

	for _, sys := range systems {
		row := SystemModel{
			Name:     sys.SystemName,
			FullName: sys.FullName,
			Color:    sys.Color,
			Tier:     sys.Tier,
			Level:    sys.Level.String(),
		}
		if sys.Country != nil {
			row.Country = sys.Country.Code
		}
		sysRows = append(sysRows, row)

		for region, miles := range sys.RegionMileage {
			mileageRows = append(mileageRows, SystemRegionMileageModel{
				System: sys.SystemName, Region: region, Mileage: miles,
			})
		}

		for _, r := range sys.Routes {
			rr := RouteModel{
				Root:         r.Root,
				System:       sys.SystemName,
				Banner:       r.Banner,
				Abbrev:       r.Abbrev,
				City:         r.City,
				NumPoints:    len(r.Points),
				NumSegments:  len(r.Segments),
				Reversed:     r.Reversed,
				Disconnected: r.Disconnected,
			}
			if r.Region != nil {
				rr.Region = r.Region.Code
			}
			for _, s := range r.Segments {
				rr.Mileage += s.Length
			}
			routeRows = append(routeRows, rr)

			for i, w := range r.Points {
				wptRows = append(wptRows, WaypointModel{
					Route: r.Root, Seq: i, Label: w.Label, Lat: w.Lat, Lng: w.Lng,
				})
			}
		}
	}

	if len(sysRows) > 0 {
		if err := tx.CreateInBatches(sysRows, batchSize).Error; err != nil {
			return fmt.Errorf("dump systems: %w", err)
		}
	}
	if len(mileageRows) > 0 {
		if err := tx.CreateInBatches(mileageRows, batchSize).Error; err != nil {
			return fmt.Errorf("dump system region mileages: %w", err)
		}
	}
	if len(routeRows) > 0 {
		if err := tx.CreateInBatches(routeRows, batchSize).Error; err != nil {
			return fmt.Errorf("dump routes: %w", err)
		}
	}
	if len(wptRows) > 0 {
		if err := tx.CreateInBatches(wptRows, batchSize).Error; err != nil {
			return fmt.Errorf("dump waypoints: %w", err)
		}
	}
	return nil
}

func dumpTravelers(tx *gorm.DB, travelers []*model.TravelerList) error {
	travRows := make([]TravelerModel, 0, len(travelers))
	var clinchRows []ClinchedSegmentModel

	for _, t := range travelers {
		travRows = append(travRows, TravelerModel{Name: t.Name, Idx: t.Index})
		for _, s := range t.ClinchedSegments() {
			if s.Route == nil {
				continue
			}
			clinchRows = append(clinchRows, ClinchedSegmentModel{
				Traveler:  t.Name,
				Route:     s.Route.Root,
				Waypoint1: s.Waypoint1.Label,
				Waypoint2: s.Waypoint2.Label,
			})
		}
	}

	if len(travRows) > 0 {
		if err := tx.CreateInBatches(travRows, batchSize).Error; err != nil {
			return fmt.Errorf("dump travelers: %w", err)
		}
	}
	if len(clinchRows) > 0 {
		if err := tx.CreateInBatches(clinchRows, batchSize).Error; err != nil {
			return fmt.Errorf("dump clinched segments: %w", err)
		}
	}
	return nil
}

func dumpDatacheck(tx *gorm.DB, dc *datacheck.List) error {
	entries := dc.NonFalsePositives()
	rows := make([]DatacheckModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, DatacheckModel{
			Route:  e.RouteRoot(),
			Label1: e.Label1,
			Label2: e.Label2,
			Label3: e.Label3,
			Code:   e.Code,
			Info:   e.Info,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("dump datacheck: %w", err)
	}
	return nil
}
