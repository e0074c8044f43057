package driver

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/rideconnect/rideconnect-api/internal/database"
)

// Repository is the Postgres-backed driver catalog.
// The catalog has no mutation path beyond seeding.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns all drivers sorted by name
func (r *Repository) List(ctx context.Context) ([]Driver, error) {
	var dbDrivers []database.Driver
	err := r.db.NewSelect().
		Model(&dbDrivers).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}

	drivers := make([]Driver, 0, len(dbDrivers))
	for i := range dbDrivers {
		drivers = append(drivers, mapDBDriverToModel(&dbDrivers[i]))
	}
	return drivers, nil
}

// InsertMany bulk-inserts catalog entries, used by the demo seeder
func (r *Repository) InsertMany(ctx context.Context, drivers []Driver) error {
	if len(drivers) == 0 {
		return nil
	}

	dbDrivers := make([]database.Driver, 0, len(drivers))
	for _, d := range drivers {
		dbDrivers = append(dbDrivers, database.Driver{
			Name:          d.Name,
			Rating:        d.Rating,
			TotalRides:    d.TotalRides,
			VehicleType:   d.VehicleType,
			VehicleNumber: d.VehicleNumber,
			Experience:    d.Experience,
			Phone:         d.Phone,
			Languages:     d.Languages,
			IsVerified:    d.IsVerified,
			PricePerKm:    d.PricePerKm,
			Availability:  d.Availability,
			Routes:        d.Routes,
		})
	}

	_, err := r.db.NewInsert().
		Model(&dbDrivers).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert drivers: %w", err)
	}

	return nil
}

// Count reports the number of catalog entries
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*database.Driver)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return count, nil
}

func mapDBDriverToModel(dbd *database.Driver) Driver {
	return Driver{
		ID:            dbd.ID,
		Name:          dbd.Name,
		Rating:        dbd.Rating,
		TotalRides:    dbd.TotalRides,
		VehicleType:   dbd.VehicleType,
		VehicleNumber: dbd.VehicleNumber,
		Experience:    dbd.Experience,
		Phone:         dbd.Phone,
		Languages:     dbd.Languages,
		IsVerified:    dbd.IsVerified,
		PricePerKm:    dbd.PricePerKm,
		Availability:  dbd.Availability,
		Routes:        dbd.Routes,
		CreatedAt:     dbd.CreatedAt,
	}
}
