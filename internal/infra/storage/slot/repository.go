package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"start_time",
	"duration_minutes",
	"status",
	"hold_key",
	"hold_until",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByTimeRange получает слоты с start_time в окне [from, to), отсортированные по времени.
// Внутри транзакции добавляет FOR UPDATE - это окно блокируется на время резолва блока.
func (r *Repository) GetByTimeRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTimeRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTimeRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListWithFilter получает слоты по окну с опциональным фильтром по статусу
// Read-only выборка для админского интерфейса
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"start_time": filter.From}).
		Where(squirrel.Lt{"start_time": filter.To}).
		OrderBy("start_time ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// BulkInsert вставляет новые свободные слоты, пропуская уже существующие start_time
// (ON CONFLICT DO NOTHING), поэтому повторная генерация на тот же день идемпотентна.
// Возвращает количество фактически вставленных строк.
func (r *Repository) BulkInsert(ctx context.Context, seeds []domain.SlotSeed) (int64, error) {
	if len(seeds) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("start_time", "duration_minutes", "status")

	for _, seed := range seeds {
		insertBuilder = insertBuilder.Values(seed.StartTime, seed.DurationMinutes, domain.SlotFree)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkInsert - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: BulkInsert - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkInsert - get rows affected: %v", ErrExecQuery, err)
	}

	return inserted, nil
}

// AcquireOrExtendHold ставит hold_key и hold_until на все слоты блока одним
// условным обновлением. Предусловие: слот свободен либо уже удержан тем же
// ключом (повторный вызов с тем же ключом просто продлевает hold_until).
//
// Если обновлено меньше строк, чем len(slotIDs), значит часть блока проиграна
// конкурирующему checkout - возвращается ErrHoldLost. Вызывать строго внутри
// транзакции, чтобы частичная простановка откатилась целиком.
func (r *Repository) AcquireOrExtendHold(ctx context.Context, slotIDs []int64, holdKey string, until time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotHeld).
		Set("hold_key", holdKey).
		Set("hold_until", until).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotIDs}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.SlotFree},
			squirrel.And{
				squirrel.Eq{"status": domain.SlotHeld},
				squirrel.Eq{"hold_key": holdKey},
			},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AcquireOrExtendHold - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AcquireOrExtendHold - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AcquireOrExtendHold - get rows affected: %v", ErrExecQuery, err)
	}

	if affected != int64(len(slotIDs)) {
		return fmt.Errorf("%w: stamped %d of %d slots", ErrHoldLost, affected, len(slotIDs))
	}

	return nil
}

// ClaimFree переводит свободные слоты блока в taken (мгновенное бронирование без hold)
// Количество обновленных строк должно совпасть с размером блока, иначе ErrClaimConflict.
// Вызывать строго внутри транзакции.
func (r *Repository) ClaimFree(ctx context.Context, slotIDs []int64) error {
	return r.claim(ctx, slotIDs, squirrel.Eq{"status": domain.SlotFree})
}

// ClaimHeld переводит удержанные слоты блока в taken по ключу удержания.
// Просроченный hold (hold_until < now) не проходит предусловие: оплата,
// пришедшая после истечения TTL, завершается конфликтом, а не тихим успехом.
// Вызывать строго внутри транзакции.
func (r *Repository) ClaimHeld(ctx context.Context, slotIDs []int64, holdKey string, now time.Time) error {
	return r.claim(ctx, slotIDs, squirrel.And{
		squirrel.Eq{"status": domain.SlotHeld},
		squirrel.Eq{"hold_key": holdKey},
		squirrel.Gt{"hold_until": now},
	})
}

func (r *Repository) claim(ctx context.Context, slotIDs []int64, precondition squirrel.Sqlizer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotTaken).
		Set("hold_key", nil).
		Set("hold_until", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotIDs}).
		Where(precondition).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: claim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: claim - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: claim - get rows affected: %v", ErrExecQuery, err)
	}

	if affected != int64(len(slotIDs)) {
		return fmt.Errorf("%w: claimed %d of %d slots", ErrClaimConflict, affected, len(slotIDs))
	}

	return nil
}

// ReleaseHold возвращает в free все слоты, удержанные указанным ключом
// Отсутствие удержанных слотов не является ошибкой (идемпотентность)
func (r *Repository) ReleaseHold(ctx context.Context, holdKey string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotFree).
		Set("hold_key", nil).
		Set("hold_until", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.SlotHeld}).
		Where(squirrel.Eq{"hold_key": holdKey}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseHold - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseHold - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseHold - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// DeleteBefore удаляет все слоты с start_time раньше cutoff (прошедшие дни)
func (r *Repository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Lt{"start_time": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// DeleteReclaimable удаляет в окне [from, to) свободные слоты и слоты с
// просроченным (или отсутствующим) hold_until. Занятые (taken) слоты этим
// путем не удаляются никогда. Активные неистекшие удержания не затрагиваются.
func (r *Repository) DeleteReclaimable(ctx context.Context, from, to, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.SlotFree},
			squirrel.And{
				squirrel.Eq{"status": domain.SlotHeld},
				squirrel.Or{
					squirrel.Eq{"hold_until": nil},
					squirrel.Lt{"hold_until": now},
				},
			},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteReclaimable - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteReclaimable - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteReclaimable - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// scanSlot сканирует одну строку результата в доменную модель
func scanSlot(row *sql.Row) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.StartTime,
		&slot.DurationMinutes,
		&slot.Status,
		&slot.HoldKey,
		&slot.HoldUntil,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.StartTime,
			&slot.DurationMinutes,
			&slot.Status,
			&slot.HoldKey,
			&slot.HoldUntil,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
