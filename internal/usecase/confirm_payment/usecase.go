package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	sessionRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/slot"
)

// UseCase use case подтверждения оплаты (hold-then-pay, шаг 2)
// Единственный путь, которым удержанный блок переходит в taken, а сессия в paid
type UseCase struct {
	slotRepo     SlotRepository
	sessionRepo  SessionRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения оплаты
// Идемпотентен по платежной ссылке: повтор callback-а для уже оплаченной
// сессии - чистое чтение без побочных эффектов. MarkPaid и ClaimHeld
// выполняются в одной транзакции; недобор строк в claim откатывает всё
// и возвращает ErrSlotUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: paymentRef=%s", req.PaymentRef)

	// 1. Валидация входных данных
	if req.PaymentRef == "" {
		uc.logger.Warn("ConfirmPayment: empty payment reference")
		return nil, fmt.Errorf("%w: paymentRef is required", ErrInvalidInput)
	}

	// 2. Находим сессию по платежной ссылке
	sess, err := uc.sessionRepo.GetByPaymentRef(ctx, req.PaymentRef)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("ConfirmPayment: no session for paymentRef=%s", req.PaymentRef)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to look up session: %v", err)
		return nil, fmt.Errorf("%w: failed to look up session: %v", ErrInternal, err)
	}

	// 3. Повтор callback-а: сессия уже оплачена, ничего не меняем
	if sess.IsPaid() {
		uc.logger.Info("ConfirmPayment: session id=%d already paid, idempotent replay", sess.ID)
		return &Response{
			SessionID:      sess.ID,
			SlotIDs:        sess.SlotIDs,
			ScheduledStart: sess.ScheduledStart,
			AlreadyPaid:    true,
		}, nil
	}

	if !sess.CanBePaid() {
		uc.logger.Warn("ConfirmPayment: session id=%d has status=%s", sess.ID, sess.Status)
		return nil, ErrSessionNotPayable
	}

	// Сессия из потока hold-then-pay обязана нести ключ удержания;
	// его отсутствие означает нарушение протокола, а не гонку
	if sess.HoldKey == nil || *sess.HoldKey == "" {
		uc.logger.Error("ConfirmPayment: session id=%d has no hold key", sess.ID)
		return nil, fmt.Errorf("%w: session %d has no hold key", ErrInternal, sess.ID)
	}

	now := uc.timeProvider.Now()

	// 4. Переводим сессию и блок атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. unpaid -> paid условным обновлением; конкурирующий callback,
		// успевший раньше, обнаружится здесь и повторная обработка прекратится
		if err := uc.sessionRepo.MarkPaid(txCtx, sess.ID); err != nil {
			if errors.Is(err, sessionRepo.ErrAlreadyPaid) {
				return errConcurrentlyPaid
			}
			uc.logger.Error("ConfirmPayment: failed to mark session paid: %v", err)
			return fmt.Errorf("%w: failed to mark session paid: %v", ErrInternal, err)
		}

		// 4.2. Claim блока по ключу удержания с повторной проверкой предусловия:
		// истекший hold, снятый sweep-ом слот или чужой claim дают недобор строк
		if err := uc.slotRepo.ClaimHeld(txCtx, sess.SlotIDs, *sess.HoldKey, now); err != nil {
			if errors.Is(err, slotRepo.ErrClaimConflict) {
				uc.logger.Warn("ConfirmPayment: block for session id=%d no longer claimable", sess.ID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("ConfirmPayment: failed to claim block: %v", err)
			return fmt.Errorf("%w: failed to claim block: %v", ErrInternal, err)
		}

		// 4.3. Документ сессии с автонумерацией по студенту
		if err := uc.sessionRepo.EnsureSessionDoc(txCtx, sess.ID, sess.StudentID); err != nil {
			uc.logger.Error("ConfirmPayment: failed to ensure session doc: %v", err)
			return fmt.Errorf("%w: failed to ensure session doc: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		// Конкурирующий callback уже оплатил сессию - для вызывающего это успех
		if errors.Is(err, errConcurrentlyPaid) {
			uc.logger.Info("ConfirmPayment: session id=%d paid by concurrent callback", sess.ID)
			return &Response{
				SessionID:      sess.ID,
				SlotIDs:        sess.SlotIDs,
				ScheduledStart: sess.ScheduledStart,
				AlreadyPaid:    true,
			}, nil
		}
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: session id=%d paid, %d slots taken", sess.ID, len(sess.SlotIDs))

	return &Response{
		SessionID:      sess.ID,
		SlotIDs:        sess.SlotIDs,
		ScheduledStart: sess.ScheduledStart,
	}, nil
}

// errConcurrentlyPaid внутренний маркер гонки двух callback-ов
var errConcurrentlyPaid = errors.New("confirm_payment: session paid concurrently")
