package confirm_payment

import "time"

// Request модель callback-а платежного провайдера об успешной оплате
type Request struct {
	PaymentRef string // Внешняя платежная ссылка, выданная при создании удержания
}

// Response модель результата подтверждения оплаты
type Response struct {
	SessionID      int64     // ID оплаченной сессии
	SlotIDs        []int64   // Блок слотов, переведенный в taken
	ScheduledStart time.Time // Начало сессии
	AlreadyPaid    bool      // true, если сессия была оплачена ранее (идемпотентный повтор)
}
