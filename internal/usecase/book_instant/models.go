package book_instant

import "time"

// Request модель запроса на мгновенное бронирование (без удержания)
// Используется потоком create-and-pay-immediately: оплата уже подтверждена
// вызывающей стороной, слоты забираются напрямую из free
type Request struct {
	StudentID        int64     // ID студента
	Start            time.Time // Начало запрошенного окна (выровнено по сетке)
	ScheduledMinutes int       // Живая длительность сессии в минутах
	PaymentRef       *string   // Платежная ссылка (опционально)
	Notes            *string   // Заметки студента (опционально)
	ContactHandle    *string   // Контакт для связи (опционально)
}

// Response модель ответа с созданной сессией
type Response struct {
	SessionID        int64     // ID созданной сессии
	SlotIDs          []int64   // Занятый блок слотов
	Status           string    // Статус сессии (paid)
	ScheduledStart   time.Time // Начало сессии
	ScheduledMinutes int       // Живая длительность
	CreatedAt        time.Time // Время создания
}
