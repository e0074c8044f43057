package ride

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideconnect/rideconnect-api/internal/logging"
	"github.com/rideconnect/rideconnect-api/internal/user"
)

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, logging.NewLogger(true)), store
}

func testUser(name string) *user.User {
	return &user.User{ID: uuid.New(), Name: name, Email: name + "@example.com"}
}

func validInput() CreateInput {
	return CreateInput{
		From:      "University Main Gate",
		To:        "Pune Railway Station",
		Date:      "2026-09-05",
		Time:      "07:30",
		Seats:     2,
		TotalFare: 600,
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Aditya")

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"from too short", func(in *CreateInput) { in.From = "A" }},
		{"to too short", func(in *CreateInput) { in.To = " B " }},
		{"bad date", func(in *CreateInput) { in.Date = "05-09-2026" }},
		{"missing date", func(in *CreateInput) { in.Date = "" }},
		{"bad time", func(in *CreateInput) { in.Time = "7.30am" }},
		{"zero seats", func(in *CreateInput) { in.Seats = 0 }},
		{"too many seats", func(in *CreateInput) { in.Seats = 5 }},
		{"fare below floor", func(in *CreateInput) { in.TotalFare = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), host, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Aditya")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, StatusUpcoming, created.Status)
	assert.True(t, created.Verified)
	assert.Equal(t, host.ID, created.HostID)
	assert.Equal(t, host.Name, created.PostedBy)
	assert.Empty(t, created.Participants, "host must not be pre-seated")
}

func TestJoinScenario(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Host")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	first, err := svc.Join(context.Background(), testUser("First"), created.ID)
	require.NoError(t, err)
	assert.Len(t, first.Participants, 1)

	second, err := svc.Join(context.Background(), testUser("Second"), created.ID)
	require.NoError(t, err)
	assert.Len(t, second.Participants, 2)

	_, err = svc.Join(context.Background(), testUser("Third"), created.ID)
	assert.ErrorIs(t, err, ErrFull)

	rides, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Len(t, rides[0].Participants, 2, "losing claim must not change the participant list")
}

func TestJoinUnknownRide(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Join(context.Background(), testUser("Someone"), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinHostRejected(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Host")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), host, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyHost)
}

func TestJoinHostRejectedEvenWhenFull(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Host")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), testUser("First"), created.ID)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), testUser("Second"), created.ID)
	require.NoError(t, err)

	// The host check comes before the capacity check
	_, err = svc.Join(context.Background(), host, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyHost)
}

func TestJoinDuplicateRejected(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Host")
	rider := testUser("Rider")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	joined, err := svc.Join(context.Background(), rider, created.ID)
	require.NoError(t, err)
	require.Len(t, joined.Participants, 1)

	_, err = svc.Join(context.Background(), rider, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	rides, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rides[0].Participants, 1, "rejected duplicate must not change the participant list")
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Host")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)
	require.Equal(t, 2, created.Seats)

	const claimants = 8

	var wg sync.WaitGroup
	errs := make([]error, claimants)

	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Join(context.Background(), testUser("Rider"), created.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrFull)
		}
	}
	assert.Equal(t, 2, succeeded, "exactly one claimant per seat may win")

	rides, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rides[0].Participants, 2)
}

func TestListOrderedBySchedule(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Host")

	december := validInput()
	december.Date = "2025-12-01"
	december.Time = "09:00"
	_, err := svc.Create(context.Background(), host, december)
	require.NoError(t, err)

	novemberLate := validInput()
	novemberLate.Date = "2025-11-20"
	novemberLate.Time = "18:00"
	_, err = svc.Create(context.Background(), host, novemberLate)
	require.NoError(t, err)

	novemberEarly := validInput()
	novemberEarly.Date = "2025-11-20"
	novemberEarly.Time = "09:00"
	_, err = svc.Create(context.Background(), host, novemberEarly)
	require.NoError(t, err)

	rides, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rides, 3)

	assert.Equal(t, "2025-11-20", rides[0].Date)
	assert.Equal(t, "09:00", rides[0].Time)
	assert.Equal(t, "2025-11-20", rides[1].Date)
	assert.Equal(t, "18:00", rides[1].Time)
	assert.Equal(t, "2025-12-01", rides[2].Date)
}

func TestListCreationOrderTieBreak(t *testing.T) {
	svc, _ := newTestService()
	host := testUser("Host")

	first := validInput()
	first.To = "Airport Terminal 1"
	_, err := svc.Create(context.Background(), host, first)
	require.NoError(t, err)

	second := validInput()
	second.To = "Airport Terminal 2"
	_, err = svc.Create(context.Background(), host, second)
	require.NoError(t, err)

	rides, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rides, 2)

	assert.Equal(t, "Airport Terminal 1", rides[0].To)
	assert.Equal(t, "Airport Terminal 2", rides[1].To)
}
