package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CoachingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CoachingService/internal/service/sessions/models"
)

// Service сервис чтения сессий
type Service struct {
	repo SessionRepository
	log  Logger
}

// NewService создает новый сервис сессий
func NewService(repo SessionRepository, log Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// GetByID возвращает сессию по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SessionResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: session id must be positive", ErrInvalidInput)
	}

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrSessionNotFound, id)
		}
		s.log.Error("Service.GetByID: failed to get session %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID: %v", ErrInternal, err)
	}

	return models.FromDomainSession(sess), nil
}

// GetByPaymentRef возвращает сессию по платежной ссылке.
// Используется для поллинга статуса оплаты со стороны клиента.
func (s *Service) GetByPaymentRef(ctx context.Context, paymentRef string) (*models.SessionResponse, error) {
	if strings.TrimSpace(paymentRef) == "" {
		return nil, fmt.Errorf("%w: payment_ref is required", ErrInvalidInput)
	}

	sess, err := s.repo.GetByPaymentRef(ctx, paymentRef)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: payment_ref %s", ErrSessionNotFound, paymentRef)
		}
		s.log.Error("Service.GetByPaymentRef: failed to get session by ref %s: %v", paymentRef, err)
		return nil, fmt.Errorf("%w: GetByPaymentRef: %v", ErrInternal, err)
	}

	return models.FromDomainSession(sess), nil
}

// List возвращает список сессий по фильтру
func (s *Service) List(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error) {
	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidTimeRange)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sessions, err := s.repo.ListWithFilter(ctx, filter)
	if err != nil {
		s.log.Error("Service.List: failed to list sessions: %v", err)
		return nil, fmt.Errorf("%w: List: %v", ErrInternal, err)
	}

	return models.FromDomainSessionList(sessions), nil
}
