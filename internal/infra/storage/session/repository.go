package session

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

var sessionColumns = []string{
	"id",
	"slot_id",
	"slot_ids_csv",
	"status",
	"scheduled_start",
	"scheduled_minutes",
	"hold_key",
	"payment_ref",
	"student_id",
	"notes",
	"contact_handle",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями (бронированиями)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"slot_id",
			"slot_ids_csv",
			"status",
			"scheduled_start",
			"scheduled_minutes",
			"hold_key",
			"payment_ref",
			"student_id",
			"notes",
			"contact_handle",
		).
		Values(
			session.SlotID,
			domain.EncodeSlotIDs(session.SlotIDs),
			session.Status,
			session.ScheduledStart,
			session.ScheduledMinutes,
			session.HoldKey,
			session.PaymentRef,
			session.StudentID,
			session.Notes,
			session.ContactHandle,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByPaymentRef получает сессию по внешней платежной ссылке
// Используется callback-ом платежного провайдера и polling-ом подтверждения
func (r *Repository) GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Session, error) {
	return r.getOne(ctx, squirrel.Eq{"payment_ref": paymentRef})
}

// GetByHoldKey получает сессию по ключу удержания
func (r *Repository) GetByHoldKey(ctx context.Context, holdKey string) (*domain.Session, error) {
	return r.getOne(ctx, squirrel.Eq{"hold_key": holdKey})
}

func (r *Repository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	session, err := scanSessionRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan session: %v", ErrScanRow, err)
	}

	return session, nil
}

// ListWithFilter получает сессии с фильтрацией по периоду, статусу и студенту
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SessionFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		OrderBy("scheduled_start ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_start": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_start": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": *filter.StudentID})
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

	return scanSessions(rows)
}

// MarkPaid переводит сессию из unpaid в paid
// Условное обновление: уже оплаченная или отмененная сессия не затрагивается,
// в этом случае возвращается ErrAlreadyPaid
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.SessionPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.SessionUnpaid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return ErrAlreadyPaid
	}

	return nil
}

// DeleteUnpaidBefore удаляет неоплаченные сессии, созданные раньше cutoff
// Courtesy-очистка бухгалтерии: слоты таких сессий освобождаются
// независимым истечением hold TTL
func (r *Repository) DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sessions").
		Where(squirrel.Eq{"status": domain.SessionUnpaid}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnpaidBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnpaidBefore - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnpaidBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// EnsureSessionDoc создает документ сессии с автонумерацией по студенту:
// первый документ студента получает номер 1, следующий 2 и т.д.
// Повторный вызов для той же сессии ничего не меняет (ON CONFLICT DO NOTHING).
func (r *Repository) EnsureSessionDoc(ctx context.Context, sessionID, studentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Номер вычисляется подзапросом в той же команде, чтобы нумерация
	// оставалась плотной при конкурентных вставках в одной транзакции
	query := `
		INSERT INTO session_docs (session_id, student_id, doc_number)
		SELECT $1, $2, COALESCE(MAX(doc_number), 0) + 1
		FROM session_docs
		WHERE student_id = $2
		ON CONFLICT (session_id) DO NOTHING`

	if _, err := executor.ExecContext(ctx, query, sessionID, studentID); err != nil {
		return fmt.Errorf("%w: EnsureSessionDoc - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanSessionRow сканирует одну строку результата в доменную модель
func scanSessionRow(row *sql.Row) (*domain.Session, error) {
	var session domain.Session
	var slotIDsCsv string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.SlotID,
		&slotIDsCsv,
		&session.Status,
		&session.ScheduledStart,
		&session.ScheduledMinutes,
		&session.HoldKey,
		&session.PaymentRef,
		&session.StudentID,
		&session.Notes,
		&session.ContactHandle,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slotIDs, err := domain.DecodeSlotIDs(slotIDsCsv)
	if err != nil {
		return nil, err
	}

	session.SlotIDs = slotIDs
	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		var session domain.Session
		var slotIDsCsv string
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&session.ID,
			&session.SlotID,
			&slotIDsCsv,
			&session.Status,
			&session.ScheduledStart,
			&session.ScheduledMinutes,
			&session.HoldKey,
			&session.PaymentRef,
			&session.StudentID,
			&session.Notes,
			&session.ContactHandle,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}

		slotIDs, err := domain.DecodeSlotIDs(slotIDsCsv)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - decode block: %v", ErrScanRow, err)
		}

		session.SlotIDs = slotIDs
		session.CreatedAt = createdAt.Time
		session.UpdatedAt = updatedAt.Time

		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
