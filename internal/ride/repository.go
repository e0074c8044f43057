package ride

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/rideconnect/rideconnect-api/internal/database"
)

// Repository is the Postgres-backed ride store
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Insert persists a new ride
func (r *Repository) Insert(ctx context.Context, ride *Ride) error {
	dbRide := mapModelToDBRide(ride)

	_, err := r.db.NewInsert().
		Model(dbRide).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert ride: %w", err)
	}

	*ride = *mapDBRideToModel(dbRide)
	return nil
}

// List returns all rides ordered by date, time, then creation order.
// Dates and times are ISO strings, so lexicographic order is chronological.
func (r *Repository) List(ctx context.Context) ([]Ride, error) {
	var dbRides []database.Ride
	err := r.db.NewSelect().
		Model(&dbRides).
		OrderExpr("ride_date ASC, ride_time ASC, created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	rides := make([]Ride, 0, len(dbRides))
	for i := range dbRides {
		rides = append(rides, *mapDBRideToModel(&dbRides[i]))
	}
	return rides, nil
}

// Join admits a participant under the capacity invariant. The row lock taken
// by SELECT ... FOR UPDATE serializes concurrent joins per ride, so the
// precondition checks and the append commit as one unit: of two racing
// claims on the last seat, exactly one succeeds and the other sees ErrFull.
func (r *Repository) Join(ctx context.Context, rideID uuid.UUID, p Participant) (*Ride, error) {
	var joined *Ride

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		dbRide := new(database.Ride)
		err := tx.NewSelect().
			Model(dbRide).
			Where("id = ?", rideID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load ride: %w", err)
		}

		if dbRide.HostID == p.UserID {
			return ErrAlreadyHost
		}
		for _, existing := range dbRide.Participants {
			if existing.UserID == p.UserID {
				return ErrAlreadyJoined
			}
		}
		if len(dbRide.Participants) >= dbRide.Seats {
			return ErrFull
		}

		dbRide.Participants = append(dbRide.Participants, database.RideParticipant{
			UserID:   p.UserID,
			Name:     p.Name,
			JoinedAt: p.JoinedAt,
		})
		dbRide.UpdatedAt = time.Now()

		_, err = tx.NewUpdate().
			Model(dbRide).
			Column("participants", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update participants: %w", err)
		}

		joined = mapDBRideToModel(dbRide)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return joined, nil
}

// Count reports the number of stored rides
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*database.Ride)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count rides: %w", err)
	}
	return count, nil
}

func mapModelToDBRide(ride *Ride) *database.Ride {
	participants := make([]database.RideParticipant, 0, len(ride.Participants))
	for _, p := range ride.Participants {
		participants = append(participants, database.RideParticipant(p))
	}

	return &database.Ride{
		ID:           ride.ID,
		Origin:       ride.From,
		Destination:  ride.To,
		RideDate:     ride.Date,
		RideTime:     ride.Time,
		Seats:        ride.Seats,
		TotalFare:    ride.TotalFare,
		Note:         ride.Note,
		PostedBy:     ride.PostedBy,
		Verified:     ride.Verified,
		Status:       string(ride.Status),
		HostID:       ride.HostID,
		Participants: participants,
	}
}

func mapDBRideToModel(dbr *database.Ride) *Ride {
	participants := make([]Participant, 0, len(dbr.Participants))
	for _, p := range dbr.Participants {
		participants = append(participants, Participant(p))
	}

	return &Ride{
		ID:           dbr.ID,
		From:         dbr.Origin,
		To:           dbr.Destination,
		Date:         dbr.RideDate,
		Time:         dbr.RideTime,
		Seats:        dbr.Seats,
		TotalFare:    dbr.TotalFare,
		Note:         dbr.Note,
		PostedBy:     dbr.PostedBy,
		Verified:     dbr.Verified,
		Status:       Status(dbr.Status),
		HostID:       dbr.HostID,
		Participants: participants,
		CreatedAt:    dbr.CreatedAt,
		UpdatedAt:    dbr.UpdatedAt,
	}
}
