package ride

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideconnect/rideconnect-api/internal/auth"
	"github.com/rideconnect/rideconnect-api/internal/httputil"
	"github.com/rideconnect/rideconnect-api/internal/logging"
	"github.com/rideconnect/rideconnect-api/internal/user"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Service) {
	t.Helper()

	svc, _ := newTestService()
	handler := NewHandler(svc, logging.NewLogger(true))

	r := chi.NewRouter()
	r.Get("/api/rides", handler.List)
	r.Post("/api/rides", handler.Create)
	r.Post("/api/rides/{rideId}/join", handler.Join)
	return r, svc
}

// withUser simulates the auth middleware having resolved the caller
func withUser(req *http.Request, u *user.User) *http.Request {
	ctx := context.WithValue(req.Context(), auth.UserContextKey, u)
	return req.WithContext(ctx)
}

func postJSON(t *testing.T, router http.Handler, path string, body any, u *user.User) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	if u != nil {
		req = withUser(req, u)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateRideEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	host := testUser("Aditya")

	rec := postJSON(t, router, "/api/rides", CreateRideRequest{
		From:      "University Main Gate",
		To:        "Pune Railway Station",
		Date:      "2026-09-05",
		Time:      "07:30",
		Seats:     2,
		TotalFare: 600,
	}, host)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp RideResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 600, resp.TotalFare)
	assert.Equal(t, 200, resp.FarePerPerson)
	assert.Equal(t, 400, resp.Savings)
	assert.Equal(t, host.ID, resp.HostID)
	assert.Equal(t, "Aditya", resp.PostedBy)
	assert.Equal(t, StatusUpcoming, resp.Status)
	assert.Empty(t, resp.Participants)
}

func TestCreateRideEndpointRejectsInvalidPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/rides", CreateRideRequest{
		From:      "A",
		To:        "Pune Railway Station",
		Date:      "2026-09-05",
		Time:      "07:30",
		Seats:     2,
		TotalFare: 600,
	}, testUser("Aditya"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httputil.CodeValidationFailed, resp.Code)
}

func TestJoinRideEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	host := testUser("Host")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/rides/"+created.ID.String()+"/join", nil, testUser("Rider"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RideResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Participants, 1)
	assert.Equal(t, "Rider", resp.Participants[0].Name)
}

func TestJoinRideEndpointErrors(t *testing.T) {
	router, svc := newTestRouter(t)
	host := testUser("Host")
	rider := testUser("Rider")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), rider, created.ID)
	require.NoError(t, err)

	joinPath := "/api/rides/" + created.ID.String() + "/join"

	tests := []struct {
		name       string
		path       string
		caller     *user.User
		wantStatus int
		wantCode   string
	}{
		{"unknown ride", "/api/rides/00000000-0000-0000-0000-000000000000/join", testUser("Other"), http.StatusNotFound, httputil.CodeRideNotFound},
		{"malformed ride id", "/api/rides/not-a-uuid/join", testUser("Other"), http.StatusNotFound, httputil.CodeRideNotFound},
		{"host joining own ride", joinPath, host, http.StatusBadRequest, httputil.CodeAlreadyHost},
		{"duplicate join", joinPath, rider, http.StatusBadRequest, httputil.CodeAlreadyJoined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, tt.path, nil, tt.caller)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp httputil.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestJoinRideEndpointFull(t *testing.T) {
	router, svc := newTestRouter(t)
	host := testUser("Host")

	created, err := svc.Create(context.Background(), host, validInput())
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), testUser("First"), created.ID)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), testUser("Second"), created.ID)
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/rides/"+created.ID.String()+"/join", nil, testUser("Third"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httputil.CodeRideFull, resp.Code)
}

func TestListRidesEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	host := testUser("Host")

	later := validInput()
	later.Date = "2026-10-01"
	_, err := svc.Create(context.Background(), host, later)
	require.NoError(t, err)

	earlier := validInput()
	earlier.Date = "2026-09-01"
	_, err = svc.Create(context.Background(), host, earlier)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/rides", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []RideResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "2026-09-01", resp[0].Date)
	assert.Equal(t, "2026-10-01", resp[1].Date)
}
