package hold_slots

import "time"

// Request модель запроса на удержание блока слотов
type Request struct {
	StudentID        int64     // ID студента
	Start            time.Time // Начало запрошенного окна (выровнено по сетке)
	ScheduledMinutes int       // Живая длительность сессии в минутах
	HoldKey          *string   // Ключ удержания (опционально - для продления существующего hold)
	Notes            *string   // Заметки студента (опционально)
	ContactHandle    *string   // Контакт для связи (опционально)
}

// Response модель ответа с удержанным блоком
type Response struct {
	HoldKey    string    // Ключ удержания для последующего claim
	HoldUntil  time.Time // Момент истечения удержания
	SlotIDs    []int64   // Удержанный блок слотов (упорядочен по времени)
	SessionID  int64     // ID созданной (или существующей) неоплаченной сессии
	PaymentRef string    // Платежная ссылка для провайдера оплаты
}
