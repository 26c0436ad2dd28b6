package run_maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// Config параметры обслуживания календаря
type Config struct {
	StepMinutes          int // Шаг сетки слотов
	HorizonDays          int // Горизонт регенерации вперед
	UnpaidRetentionHours int // Срок хранения неоплаченных сессий
}

// UseCase use case периодического обслуживания календаря (expiry sweep)
//
// Вызывается внешним планировщиком; глобальная единственность прогона не
// гарантируется, поэтому каждый этап построен идемпотентным и коммутативным
// при конкурентном выполнении: delete-if-matches и insert-skip-duplicates
// вместо блокировок. Этапы изолированы друг от друга - сбой одного не
// прерывает остальные, ошибки собираются в отчет.
type UseCase struct {
	slotRepo           SlotRepository
	sessionRepo        SessionRepository
	availabilityClient AvailabilityClient
	cfg                Config
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	sessionRepo SessionRepository,
	availabilityClient AvailabilityClient,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:           slotRepo,
		sessionRepo:        sessionRepo,
		availabilityClient: availabilityClient,
		cfg:                cfg,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет полный прогон обслуживания и возвращает поэтапный отчет
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	today := domain.DayStart(now)
	horizonEnd := today.AddDate(0, 0, uc.cfg.HorizonDays)

	uc.logger.Info("RunMaintenance: starting sweep, today=%s, horizon=%d days",
		today.Format(domain.DateFormat), uc.cfg.HorizonDays)

	resp := &Response{StartedAt: now}

	// Этап 1: удаляем прошедшие слоты - их уже нельзя забронировать
	resp.Stages = append(resp.Stages, uc.deletePastSlots(ctx, today))

	// Этап 2: снимаем истекшие удержания удалением строк; занятые (taken)
	// слоты и активные hold-ы этот предикат не затрагивает
	resp.Stages = append(resp.Stages, uc.reclaimExpiredHolds(ctx, today, horizonEnd, now))

	// Этап 3: регенерируем сетку по дням горизонта из расписания провайдера
	resp.Stages = append(resp.Stages, uc.regenerateSlots(ctx, today, now))

	// Этап 4: подчищаем залежавшиеся неоплаченные сессии
	resp.Stages = append(resp.Stages, uc.cleanupStaleSessions(ctx, now))

	resp.FinishedAt = uc.timeProvider.Now()

	if resp.HasErrors() {
		uc.logger.Warn("RunMaintenance: sweep finished with stage errors")
	} else {
		uc.logger.Info("RunMaintenance: sweep finished cleanly")
	}

	return resp, nil
}

func (uc *UseCase) deletePastSlots(ctx context.Context, today time.Time) StageResult {
	result := StageResult{Stage: StageDeletePast}

	deleted, err := uc.slotRepo.DeleteBefore(ctx, today)
	if err != nil {
		uc.logger.Error("RunMaintenance: %s failed: %v", StageDeletePast, err)
		result.Error = ptr.Ptr(err.Error())
		return result
	}

	result.RowsAffected = deleted
	uc.logger.Info("RunMaintenance: %s removed %d slots", StageDeletePast, deleted)
	return result
}

func (uc *UseCase) reclaimExpiredHolds(ctx context.Context, from, to, now time.Time) StageResult {
	result := StageResult{Stage: StageReclaimExpired}

	deleted, err := uc.slotRepo.DeleteReclaimable(ctx, from, to, now)
	if err != nil {
		uc.logger.Error("RunMaintenance: %s failed: %v", StageReclaimExpired, err)
		result.Error = ptr.Ptr(err.Error())
		return result
	}

	result.RowsAffected = deleted
	uc.logger.Info("RunMaintenance: %s removed %d slots", StageReclaimExpired, deleted)
	return result
}

func (uc *UseCase) regenerateSlots(ctx context.Context, today, now time.Time) StageResult {
	result := StageResult{Stage: StageRegenerate}

	var inserted int64

	// Ошибка провайдера по одному дню деградирует генерацию только этого дня
	for d := 0; d < uc.cfg.HorizonDays; d++ {
		day := today.AddDate(0, 0, d)

		intervals, err := uc.availabilityClient.GetDayAvailability(ctx, day)
		if err != nil {
			uc.logger.Error("RunMaintenance: availability lookup failed for %s: %v",
				day.Format(domain.DateFormat), err)
			result.Details = append(result.Details,
				fmt.Sprintf("%s: %v", day.Format(domain.DateFormat), err))
			continue
		}

		if len(intervals) == 0 {
			// День полностью закрыт
			continue
		}

		seeds := domain.GenerateDaySlots(day, intervals, uc.cfg.StepMinutes)

		// Слоты, чье время уже прошло, не восстанавливаем
		if d == 0 {
			seeds = dropPastSeeds(seeds, now)
		}

		n, err := uc.slotRepo.BulkInsert(ctx, seeds)
		if err != nil {
			uc.logger.Error("RunMaintenance: bulk insert failed for %s: %v",
				day.Format(domain.DateFormat), err)
			result.Details = append(result.Details,
				fmt.Sprintf("%s: %v", day.Format(domain.DateFormat), err))
			continue
		}

		inserted += n
	}

	result.RowsAffected = inserted
	uc.logger.Info("RunMaintenance: %s inserted %d slots (%d day errors)",
		StageRegenerate, inserted, len(result.Details))
	return result
}

func (uc *UseCase) cleanupStaleSessions(ctx context.Context, now time.Time) StageResult {
	result := StageResult{Stage: StageCleanupSessions}

	cutoff := now.Add(-time.Duration(uc.cfg.UnpaidRetentionHours) * time.Hour)

	deleted, err := uc.sessionRepo.DeleteUnpaidBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Error("RunMaintenance: %s failed: %v", StageCleanupSessions, err)
		result.Error = ptr.Ptr(err.Error())
		return result
	}

	result.RowsAffected = deleted
	uc.logger.Info("RunMaintenance: %s removed %d sessions", StageCleanupSessions, deleted)
	return result
}

// dropPastSeeds отбрасывает слоты, начинающиеся раньше текущего момента
func dropPastSeeds(seeds []domain.SlotSeed, now time.Time) []domain.SlotSeed {
	kept := make([]domain.SlotSeed, 0, len(seeds))
	for _, seed := range seeds {
		if !seed.StartTime.Before(now) {
			kept = append(kept, seed)
		}
	}
	return kept
}
