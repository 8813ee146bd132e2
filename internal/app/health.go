package app

import (
	"context"
	"net/http"
	"time"

	"github.com/eventboard/eventboard/pkg/apierror"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	storage Pinger
	driver  string
}

type HealthDTO struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func NewHealthHandler(storage Pinger, driver string) *HealthHandler {
	return &HealthHandler{storage: storage, driver: driver}
}

// Health godoc
// @Summary Report whether the storage backend is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} HealthDTO
// @Failure 500 {object} apierror.ErrorBody
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		apierror.Write(w, apierror.Database("").Wrap(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, HealthDTO{Status: "ok", Storage: h.driver})
}
