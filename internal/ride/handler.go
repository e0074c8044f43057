package ride

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rideconnect/rideconnect-api/internal/auth"
	"github.com/rideconnect/rideconnect-api/internal/httputil"
	"github.com/rideconnect/rideconnect-api/internal/logging"
)

// Handler contains HTTP handlers for ride endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreateRideRequest represents the ride creation request body
type CreateRideRequest struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Seats     int     `json:"seats"`
	TotalFare int     `json:"totalFare"`
	Note      *string `json:"note,omitempty"`
}

// ParticipantResponse represents a ride participant in API responses
type ParticipantResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// RideResponse represents a ride in API responses, including the derived
// fare fields
type RideResponse struct {
	ID            uuid.UUID             `json:"id"`
	From          string                `json:"from"`
	To            string                `json:"to"`
	Date          string                `json:"date"`
	Time          string                `json:"time"`
	Seats         int                   `json:"seats"`
	TotalFare     int                   `json:"totalFare"`
	FarePerPerson int                   `json:"farePerPerson"`
	Savings       int                   `json:"savings"`
	PostedBy      string                `json:"postedBy"`
	Note          *string               `json:"note,omitempty"`
	Verified      bool                  `json:"verified"`
	Status        Status                `json:"status"`
	HostID        uuid.UUID             `json:"hostId"`
	Participants  []ParticipantResponse `json:"participants"`
}

func toRideResponse(r *Ride) RideResponse {
	participants := make([]ParticipantResponse, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, ParticipantResponse(p))
	}

	return RideResponse{
		ID:            r.ID,
		From:          r.From,
		To:            r.To,
		Date:          r.Date,
		Time:          r.Time,
		Seats:         r.Seats,
		TotalFare:     r.TotalFare,
		FarePerPerson: FarePerPerson(r.TotalFare, r.Seats),
		Savings:       Savings(r.TotalFare, r.Seats),
		PostedBy:      r.PostedBy,
		Note:          r.Note,
		Verified:      r.Verified,
		Status:        r.Status,
		HostID:        r.HostID,
		Participants:  participants,
	}
}

// List returns all rides
// @Summary      List rides
// @Description  All rides ordered by date, time, then creation order
// @Tags         rides
// @Produce      json
// @Success      200 {array} RideResponse
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/rides [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	rides, err := h.service.List(r.Context())
	if err != nil {
		logger.Error("failed to list rides", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list rides", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	responses := make([]RideResponse, 0, len(rides))
	for i := range rides {
		responses = append(responses, toRideResponse(&rides[i]))
	}

	httputil.RespondJSON(w, responses, http.StatusOK)
}

// Create posts a new ride hosted by the caller
// @Summary      Post a ride
// @Description  Create a new ride offering owned by the authenticated user
// @Tags         rides
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRideRequest true "Ride payload"
// @Success      201 {object} RideResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid payload"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/rides [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	host, ok := auth.CurrentUser(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid ride request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newRide, err := h.service.Create(r.Context(), host, CreateInput{
		From:      req.From,
		To:        req.To,
		Date:      req.Date,
		Time:      req.Time,
		Seats:     req.Seats,
		TotalFare: req.TotalFare,
		Note:      req.Note,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			logger.Warn("ride creation failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("ride creation failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create ride", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, toRideResponse(newRide), http.StatusCreated)
}

// Join claims a seat on a ride for the caller
// @Summary      Join a ride
// @Description  Claim one seat on an existing ride
// @Tags         rides
// @Produce      json
// @Security     BearerAuth
// @Param        rideId path string true "Ride ID"
// @Success      200 {object} RideResponse
// @Failure      400 {object} httputil.ErrorResponse "Already host, already joined, or ride full"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "Ride not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/rides/{rideId}/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	caller, ok := auth.CurrentUser(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	rideID, err := uuid.Parse(chi.URLParam(r, "rideId"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "ride not found", httputil.CodeRideNotFound, http.StatusNotFound)
		return
	}

	joined, err := h.service.Join(r.Context(), caller, rideID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "ride not found", httputil.CodeRideNotFound, http.StatusNotFound)
		case errors.Is(err, ErrAlreadyHost):
			httputil.RespondErrorWithCode(w, "you already host this ride", httputil.CodeAlreadyHost, http.StatusBadRequest)
		case errors.Is(err, ErrAlreadyJoined):
			httputil.RespondErrorWithCode(w, "you already joined this ride", httputil.CodeAlreadyJoined, http.StatusBadRequest)
		case errors.Is(err, ErrFull):
			httputil.RespondErrorWithCode(w, "ride is full", httputil.CodeRideFull, http.StatusBadRequest)
		default:
			logger.Error("ride join failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to join ride", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, toRideResponse(joined), http.StatusOK)
}
