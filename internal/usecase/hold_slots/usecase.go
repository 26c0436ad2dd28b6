package hold_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/slot"
	sessionRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// Config параметры бронирования для usecase
type Config struct {
	HoldTTL       time.Duration // Время жизни удержания
	BufferMinutes int           // Паддинг после живой длительности, закладываемый в блок
}

// UseCase use case удержания блока слотов на время checkout (hold-then-pay, шаг 1)
type UseCase struct {
	slotRepo     SlotRepository
	sessionRepo  SessionRepository
	txManager    TransactionManager
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case удержания блока
// Резолв блока и простановка удержания выполняются в одной сериализуемой
// транзакции: проигравший гонку checkout получает ErrSlotUnavailable целиком,
// частичное удержание невозможно. Повторный вызов с тем же holdKey идемпотентен
// и просто продлевает hold_until.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("HoldSlots: student=%d, start=%s, minutes=%d",
		req.StudentID, req.Start.Format(time.RFC3339), req.ScheduledMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("HoldSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.Start.Before(now) {
		uc.logger.Warn("HoldSlots: start %s is in the past", req.Start.Format(time.RFC3339))
		return nil, ErrStartInPast
	}

	// 3. Определяем ключ удержания: свой для нового checkout, переданный - для продления
	holdKey := uuid.NewString()
	if req.HoldKey != nil {
		holdKey = *req.HoldKey
	}

	// 4. Паддинг закладывается в окно до резолва - резолвер про него не знает
	blockMinutes := req.ScheduledMinutes + uc.cfg.BufferMinutes
	windowEnd := req.Start.Add(time.Duration(blockMinutes) * time.Minute)
	holdUntil := now.Add(uc.cfg.HoldTTL)

	var slotIDs []int64
	var session *domain.Session

	// 5. Резолв блока + удержание + сессия в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Забираем окно с блокировкой (FOR UPDATE)
		window, err := uc.slotRepo.GetByTimeRange(txCtx, req.Start, windowEnd)
		if err != nil {
			uc.logger.Error("HoldSlots: failed to fetch window: %v", err)
			return fmt.Errorf("%w: failed to fetch slot window: %v", ErrInternal, err)
		}

		// 5.2. Резолвим непрерывный блок
		ids, err := domain.ResolveBlock(window, req.Start, blockMinutes, holdKey)
		if err != nil {
			return mapResolveError(err)
		}

		// 5.3. Ставим удержание одним условным обновлением
		// Повторная проверка предусловия на записи закрывает гонку
		// между резолвом и простановкой
		if err := uc.slotRepo.AcquireOrExtendHold(txCtx, ids, holdKey, holdUntil); err != nil {
			if errors.Is(err, slotRepo.ErrHoldLost) {
				uc.logger.Warn("HoldSlots: lost race for block starting %s", req.Start.Format(time.RFC3339))
				return ErrSlotUnavailable
			}
			uc.logger.Error("HoldSlots: failed to stamp hold: %v", err)
			return fmt.Errorf("%w: failed to stamp hold: %v", ErrInternal, err)
		}

		// 5.4. Создаем неоплаченную сессию, если для этого ключа её ещё нет
		existing, err := uc.sessionRepo.GetByHoldKey(txCtx, holdKey)
		if err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Error("HoldSlots: failed to look up session: %v", err)
			return fmt.Errorf("%w: failed to look up session: %v", ErrInternal, err)
		}

		if existing != nil {
			session = existing
			slotIDs = ids
			return nil
		}

		created, err := uc.sessionRepo.Create(txCtx, &domain.Session{
			SlotID:           ids[0],
			SlotIDs:          ids,
			Status:           domain.SessionUnpaid,
			ScheduledStart:   req.Start,
			ScheduledMinutes: req.ScheduledMinutes,
			HoldKey:          ptr.Ptr(holdKey),
			PaymentRef:       ptr.Ptr(uuid.NewString()),
			StudentID:        req.StudentID,
			Notes:            req.Notes,
			ContactHandle:    req.ContactHandle,
		})
		if err != nil {
			uc.logger.Error("HoldSlots: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		session = created
		slotIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("HoldSlots: held %d slots under key=%s until %s, session=%d",
		len(slotIDs), holdKey, holdUntil.Format(time.RFC3339), session.ID)

	return &Response{
		HoldKey:    holdKey,
		HoldUntil:  holdUntil,
		SlotIDs:    slotIDs,
		SessionID:  session.ID,
		PaymentRef: derefOrEmpty(session.PaymentRef),
	}, nil
}

// mapResolveError транслирует ошибки резолвера в ошибки usecase
func mapResolveError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDurationMismatch):
		return ErrDurationMismatch
	case errors.Is(err, domain.ErrWindowMissingSlots):
		return ErrWindowMissingSlots
	case errors.Is(err, domain.ErrNotContiguous):
		return ErrNotContiguous
	case errors.Is(err, domain.ErrSlotUnavailable):
		return ErrSlotUnavailable
	default:
		return fmt.Errorf("%w: resolve block: %v", ErrInternal, err)
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
