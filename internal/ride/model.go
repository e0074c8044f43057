package ride

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a ride
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

var (
	ErrNotFound      = errors.New("ride not found")
	ErrAlreadyHost   = errors.New("you already host this ride")
	ErrAlreadyJoined = errors.New("you already joined this ride")
	ErrFull          = errors.New("ride is full")
)

// Participant is a non-host user who claimed a seat on a ride
type Participant struct {
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Ride is a host-owned offering with a bounded participant list.
// The host never appears in Participants; their share is the implicit
// "+1" in the fare split.
type Ride struct {
	ID           uuid.UUID
	From         string
	To           string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	Seats        int
	TotalFare    int
	Note         *string
	PostedBy     string
	Verified     bool
	Status       Status
	HostID       uuid.UUID
	Participants []Participant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store defines ride persistence. Join must evaluate its preconditions and
// the participant append as one atomic unit so that concurrent claims on the
// last seat cannot both succeed.
type Store interface {
	// Insert persists a new ride and fills in generated fields
	Insert(ctx context.Context, r *Ride) error

	// List returns all rides ordered by date, time, then creation order
	List(ctx context.Context) ([]Ride, error)

	// Join atomically appends the participant after checking, in order:
	// ride exists (ErrNotFound), caller is not the host (ErrAlreadyHost),
	// caller has not joined (ErrAlreadyJoined), a seat remains (ErrFull).
	// Returns the updated ride.
	Join(ctx context.Context, rideID uuid.UUID, p Participant) (*Ride, error)

	// Count reports the number of stored rides
	Count(ctx context.Context) (int, error)
}
