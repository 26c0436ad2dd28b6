package availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetDayAvailability(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("parses open intervals", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/internal/availability/2026-09-15", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"date": "2026-09-15",
				"intervals": [
					{"openMinute": 540, "closeMinute": 720},
					{"openMinute": 840, "closeMinute": 1080}
				]
			}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Second, nopLogger{})

		intervals, err := client.GetDayAvailability(context.Background(), day)

		require.NoError(t, err)
		assert.Equal(t, []domain.OpenInterval{
			{OpenMinute: 540, CloseMinute: 720},
			{OpenMinute: 840, CloseMinute: 1080},
		}, intervals)
	})

	t.Run("404 means the day is closed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Second, nopLogger{})

		intervals, err := client.GetDayAvailability(context.Background(), day)

		require.NoError(t, err)
		assert.Nil(t, intervals)
	})

	t.Run("malformed intervals are dropped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"date": "2026-09-15",
				"intervals": [
					{"openMinute": 720, "closeMinute": 540},
					{"openMinute": 540, "closeMinute": 720}
				]
			}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Second, nopLogger{})

		intervals, err := client.GetDayAvailability(context.Background(), day)

		require.NoError(t, err)
		assert.Equal(t, []domain.OpenInterval{{OpenMinute: 540, CloseMinute: 720}}, intervals)
	})

	t.Run("5xx from the provider", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Second, nopLogger{})

		_, err := client.GetDayAvailability(context.Background(), day)

		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("unreachable provider", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nopLogger{})

		_, err := client.GetDayAvailability(context.Background(), day)

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
