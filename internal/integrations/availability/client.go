package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент провайдера расписания (Availability Provider)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера расписания
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDayAvailability получает открытые интервалы на указанный день
// nil без ошибки означает, что день полностью закрыт
func (c *Client) GetDayAvailability(ctx context.Context, day time.Time) ([]domain.OpenInterval, error) {
	url := fmt.Sprintf("%s/internal/availability/%s", c.baseURL, day.Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// День не настроен у провайдера - считаем закрытым
		return nil, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var dayAvailability DayAvailability
	if err := json.NewDecoder(resp.Body).Decode(&dayAvailability); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	intervals := make([]domain.OpenInterval, 0, len(dayAvailability.Intervals))
	for _, in := range dayAvailability.Intervals {
		interval := domain.OpenInterval{OpenMinute: in.OpenMinute, CloseMinute: in.CloseMinute}
		if !interval.IsValid() {
			c.log.Warn("GetDayAvailability: dropping malformed interval [%d, %d) for %s",
				in.OpenMinute, in.CloseMinute, day.Format(domain.DateFormat))
			continue
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}
