package ride

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rideconnect/rideconnect-api/internal/logging"
	"github.com/rideconnect/rideconnect-api/internal/user"
)

var ErrValidation = errors.New("invalid ride payload")

const (
	MinSeats = 1
	MaxSeats = 4
	MinFare  = 100
)

// CreateInput is the ride creation payload after JSON decoding,
// validated before it reaches the store
type CreateInput struct {
	From      string
	To        string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Seats     int
	TotalFare int
	Note      *string
}

// Service owns the ride lifecycle: creation, seat claiming, listing
type Service struct {
	store  Store
	logger *logging.Logger
}

func NewService(store Store, logger *logging.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create validates the payload and inserts a new upcoming ride hosted by
// the caller. The host gets no seat; their share is implicit in the fare
// split.
func (s *Service) Create(ctx context.Context, host *user.User, in CreateInput) (*Ride, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	newRide := &Ride{
		From:         strings.TrimSpace(in.From),
		To:           strings.TrimSpace(in.To),
		Date:         in.Date,
		Time:         in.Time,
		Seats:        in.Seats,
		TotalFare:    in.TotalFare,
		Note:         in.Note,
		PostedBy:     host.Name,
		Verified:     true,
		Status:       StatusUpcoming,
		HostID:       host.ID,
		Participants: []Participant{},
	}

	if err := s.store.Insert(ctx, newRide); err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	s.logger.Info("ride created",
		"ride_id", newRide.ID,
		"host_id", host.ID,
		"seats", newRide.Seats,
	)

	return newRide, nil
}

// Join claims a seat for the caller. The store performs the precondition
// checks and the append atomically; a losing claim on the last seat
// surfaces ErrFull rather than being retried.
func (s *Service) Join(ctx context.Context, caller *user.User, rideID uuid.UUID) (*Ride, error) {
	joined, err := s.store.Join(ctx, rideID, Participant{
		UserID:   caller.ID,
		Name:     caller.Name,
		JoinedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ride joined",
		"ride_id", rideID,
		"user_id", caller.ID,
		"participants", len(joined.Participants),
	)

	return joined, nil
}

// List returns all rides in schedule order
func (s *Service) List(ctx context.Context) ([]Ride, error) {
	return s.store.List(ctx)
}

func validateCreate(in CreateInput) error {
	if len(strings.TrimSpace(in.From)) < 2 {
		return fmt.Errorf("%w: from must be at least 2 characters", ErrValidation)
	}
	if len(strings.TrimSpace(in.To)) < 2 {
		return fmt.Errorf("%w: to must be at least 2 characters", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}
	if in.Seats < MinSeats || in.Seats > MaxSeats {
		return fmt.Errorf("%w: seats must be between %d and %d", ErrValidation, MinSeats, MaxSeats)
	}
	if in.TotalFare < MinFare {
		return fmt.Errorf("%w: total fare must be at least %d", ErrValidation, MinFare)
	}
	return nil
}
