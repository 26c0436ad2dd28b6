package release_hold

import (
	"context"
	"fmt"
)

// Request модель запроса на снятие удержания
type Request struct {
	HoldKey string // Ключ удержания, выданный при создании hold
}

// Response модель результата снятия удержания
type Response struct {
	ReleasedSlots int64 // Количество слотов, возвращенных в free
}

// UseCase use case опциональной немедленной отмены удержания
// Истечение TTL остается единственным обязательным механизмом отмены:
// этот путь лишь возвращает слоты в оборот раньше, чем это сделал бы sweep
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute выполняет use case снятия удержания
// Идемпотентен: отсутствие слотов под ключом не является ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.HoldKey == "" {
		uc.logger.Warn("ReleaseHold: empty hold key")
		return nil, fmt.Errorf("%w: holdKey is required", ErrInvalidInput)
	}

	released, err := uc.slotRepo.ReleaseHold(ctx, req.HoldKey)
	if err != nil {
		uc.logger.Error("ReleaseHold: failed to release hold key=%s: %v", req.HoldKey, err)
		return nil, fmt.Errorf("%w: failed to release hold: %v", ErrInternal, err)
	}

	uc.logger.Info("ReleaseHold: released %d slots for key=%s", released, req.HoldKey)

	return &Response{ReleasedSlots: released}, nil
}
