package run_maintenance

import "time"

// Имена этапов обслуживания
const (
	StageDeletePast      = "delete_past_slots"
	StageReclaimExpired  = "reclaim_expired_holds"
	StageRegenerate      = "regenerate_slots"
	StageCleanupSessions = "cleanup_stale_sessions"
)

// StageResult результат одного этапа обслуживания
type StageResult struct {
	Stage        string   // Имя этапа
	RowsAffected int64    // Количество удаленных/вставленных строк
	Error        *string  // Ошибка этапа, если он завершился неуспешно
	Details      []string // Ошибки по отдельным дням (для этапа регенерации)
}

// Failed сообщает, завершился ли этап с ошибкой
func (r *StageResult) Failed() bool {
	return r.Error != nil
}

// Response структурированный отчет о прогоне обслуживания
type Response struct {
	StartedAt  time.Time     // Начало прогона
	FinishedAt time.Time     // Конец прогона
	Stages     []StageResult // Результаты этапов в порядке выполнения
}

// HasErrors сообщает, были ли ошибки хотя бы в одном этапе
func (r *Response) HasErrors() bool {
	for _, stage := range r.Stages {
		if stage.Failed() || len(stage.Details) > 0 {
			return true
		}
	}
	return false
}
