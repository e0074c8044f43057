package driver

import (
	"net/http"

	"github.com/rideconnect/rideconnect-api/internal/httputil"
	"github.com/rideconnect/rideconnect-api/internal/logging"
)

// Handler contains HTTP handlers for the driver directory
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List returns the driver catalog
// @Summary      List drivers
// @Description  All verified drivers sorted by name; filtering happens client-side
// @Tags         drivers
// @Produce      json
// @Success      200 {array} Driver
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/drivers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	drivers, err := h.repo.List(r.Context())
	if err != nil {
		logger.Error("failed to list drivers", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list drivers", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, drivers, http.StatusOK)
}
