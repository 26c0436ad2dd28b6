package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CoachingService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const (
	headerUserID     = "X-User-ID"
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный ID пользователя"
)

// Auth извлекает ID пользователя из заголовка X-User-ID и кладет его в контекст.
// Доверяет значению как есть: проверка подлинности выполняется на API-гейтвее.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
