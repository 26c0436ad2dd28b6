package release_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
	releaseHold "github.com/m04kA/SMC-CoachingService/internal/usecase/release_hold"
)

const (
	msgInvalidHoldKey = "некорректный ключ удержания"
)

type Handler struct {
	useCase ReleaseHoldUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// ReleaseHoldResponse HTTP response model
type ReleaseHoldResponse struct {
	ReleasedSlots int64 `json:"releasedSlots"`
}

// Handle DELETE /api/v1/holds/{holdKey}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	holdKey := vars["holdKey"]

	result, err := h.useCase.Execute(r.Context(), &releaseHold.Request{HoldKey: holdKey})
	if err != nil {
		switch {
		case errors.Is(err, releaseHold.ErrInvalidInput):
			h.logger.Warn("DELETE /holds/{holdKey} - Invalid hold key")
			handlers.RespondBadRequest(w, msgInvalidHoldKey)

		default:
			h.logger.Error("DELETE /holds/{holdKey} - Failed to release hold: key=%s, error=%v", holdKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holds/{holdKey} - Hold released: key=%s, slots=%d", holdKey, result.ReleasedSlots)
	handlers.RespondJSON(w, http.StatusOK, &ReleaseHoldResponse{ReleasedSlots: result.ReleasedSlots})
}
