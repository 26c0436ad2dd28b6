package availability

// DayAvailability ответ провайдера расписания на запрос доступности дня
// Пустой список интервалов (или 404) означает полностью закрытый день
type DayAvailability struct {
	Date      string         `json:"date"` // YYYY-MM-DD
	Intervals []IntervalJSON `json:"intervals"`
}

// IntervalJSON открытый интервал в минутах от полуночи, полуинтервал [open, close)
type IntervalJSON struct {
	OpenMinute  int `json:"openMinute"`
	CloseMinute int `json:"closeMinute"`
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
