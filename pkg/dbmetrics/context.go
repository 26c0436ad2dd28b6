package dbmetrics

import "context"

type ctxKey struct{}

// WithExecutor кладет активную транзакцию в контекст
// Репозитории достают её через GetExecutor и выполняют запросы в рамках транзакции
func WithExecutor(ctx context.Context, exec TxExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, exec)
}

// GetExecutor возвращает исполнителя запросов из контекста
// Если в контексте нет активной транзакции, возвращает fallback (обычное соединение)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(ctxKey{}).(TxExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(TxExecutor)
	return ok
}
