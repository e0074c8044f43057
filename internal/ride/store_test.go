package ride

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store with the same atomicity contract as the
// Postgres repository: precondition checks and the participant append
// happen under one lock.
type memStore struct {
	mu    sync.Mutex
	rides map[uuid.UUID]*Ride
	seq   int
}

func newMemStore() *memStore {
	return &memStore{rides: make(map[uuid.UUID]*Ride)}
}

func (s *memStore) Insert(_ context.Context, r *Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	r.ID = uuid.New()
	r.CreatedAt = time.Unix(0, 0).Add(time.Duration(s.seq) * time.Second)
	r.UpdatedAt = r.CreatedAt

	stored := *r
	stored.Participants = append([]Participant(nil), r.Participants...)
	s.rides[r.ID] = &stored
	return nil
}

func (s *memStore) List(_ context.Context) ([]Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rides := make([]Ride, 0, len(s.rides))
	for _, r := range s.rides {
		rides = append(rides, *r)
	}
	sort.Slice(rides, func(i, j int) bool {
		if rides[i].Date != rides[j].Date {
			return rides[i].Date < rides[j].Date
		}
		if rides[i].Time != rides[j].Time {
			return rides[i].Time < rides[j].Time
		}
		return rides[i].CreatedAt.Before(rides[j].CreatedAt)
	})
	return rides, nil
}

func (s *memStore) Join(_ context.Context, rideID uuid.UUID, p Participant) (*Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rides[rideID]
	if !ok {
		return nil, ErrNotFound
	}
	if r.HostID == p.UserID {
		return nil, ErrAlreadyHost
	}
	for _, existing := range r.Participants {
		if existing.UserID == p.UserID {
			return nil, ErrAlreadyJoined
		}
	}
	if len(r.Participants) >= r.Seats {
		return nil, ErrFull
	}

	r.Participants = append(r.Participants, p)
	r.UpdatedAt = time.Now()

	joined := *r
	joined.Participants = append([]Participant(nil), r.Participants...)
	return &joined, nil
}

func (s *memStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rides), nil
}
