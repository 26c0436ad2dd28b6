package book_instant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/slot"
)

// Config параметры бронирования для usecase
type Config struct {
	BufferMinutes int // Паддинг после живой длительности, закладываемый в блок
}

// UseCase use case мгновенного бронирования: блок забирается напрямую из free,
// минуя удержание, и сессия сразу создается оплаченной
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

// Execute выполняет use case мгновенного бронирования
// Резолв, claim, создание сессии и документ выполняются в одной сериализуемой
// транзакции: любой сбой откатывает всё, частичных состояний не остается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookInstant: student=%d, start=%s, minutes=%d",
		req.StudentID, req.Start.Format(time.RFC3339), req.ScheduledMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookInstant: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.Start.Before(now) {
		uc.logger.Warn("BookInstant: start %s is in the past", req.Start.Format(time.RFC3339))
		return nil, ErrStartInPast
	}

	blockMinutes := req.ScheduledMinutes + uc.cfg.BufferMinutes
	windowEnd := req.Start.Add(time.Duration(blockMinutes) * time.Minute)

	var result *domain.Session

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Забираем окно с блокировкой (FOR UPDATE)
		window, err := uc.slotRepo.GetByTimeRange(txCtx, req.Start, windowEnd)
		if err != nil {
			uc.logger.Error("BookInstant: failed to fetch window: %v", err)
			return fmt.Errorf("%w: failed to fetch slot window: %v", ErrInternal, err)
		}

		// 3.2. Резолвим блок без ключа удержания - годятся только свободные слоты
		ids, err := domain.ResolveBlock(window, req.Start, blockMinutes, "")
		if err != nil {
			return mapResolveError(err)
		}

		// 3.3. Claim из free с проверкой количества затронутых строк
		if err := uc.slotRepo.ClaimFree(txCtx, ids); err != nil {
			if errors.Is(err, slotRepo.ErrClaimConflict) {
				uc.logger.Warn("BookInstant: lost race for block starting %s", req.Start.Format(time.RFC3339))
				return ErrSlotUnavailable
			}
			uc.logger.Error("BookInstant: failed to claim block: %v", err)
			return fmt.Errorf("%w: failed to claim block: %v", ErrInternal, err)
		}

		// 3.4. Создаем оплаченную сессию в той же транзакции
		created, err := uc.sessionRepo.Create(txCtx, &domain.Session{
			SlotID:           ids[0],
			SlotIDs:          ids,
			Status:           domain.SessionPaid,
			ScheduledStart:   req.Start,
			ScheduledMinutes: req.ScheduledMinutes,
			PaymentRef:       req.PaymentRef,
			StudentID:        req.StudentID,
			Notes:            req.Notes,
			ContactHandle:    req.ContactHandle,
		})
		if err != nil {
			uc.logger.Error("BookInstant: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		// 3.5. Документ сессии с автонумерацией по студенту
		if err := uc.sessionRepo.EnsureSessionDoc(txCtx, created.ID, created.StudentID); err != nil {
			uc.logger.Error("BookInstant: failed to ensure session doc: %v", err)
			return fmt.Errorf("%w: failed to ensure session doc: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookInstant: successfully created session id=%d spanning %d slots",
		result.ID, len(result.SlotIDs))

	return &Response{
		SessionID:        result.ID,
		SlotIDs:          result.SlotIDs,
		Status:           string(result.Status),
		ScheduledStart:   result.ScheduledStart,
		ScheduledMinutes: result.ScheduledMinutes,
		CreatedAt:        result.CreatedAt,
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
