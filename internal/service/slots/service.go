package slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CoachingService/internal/service/slots/models"
)

// Service сервис чтения календаря слотов
type Service struct {
	repo SlotRepository
	log  Logger
}

// NewService создает новый сервис слотов
func NewService(repo SlotRepository, log Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// List возвращает слоты в заданном временном окне
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if !req.To.After(req.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidTimeRange)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots, err := s.repo.ListWithFilter(ctx, filter)
	if err != nil {
		s.log.Error("Service.List: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: List: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}
