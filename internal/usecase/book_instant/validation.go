package book_instant

import (
	"fmt"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.ScheduledMinutes < domain.MinScheduledMinutes || req.ScheduledMinutes > domain.MaxScheduledMinutes {
		return fmt.Errorf("%w: scheduledMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinScheduledMinutes, domain.MaxScheduledMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.ContactHandle != nil && len(*req.ContactHandle) > domain.MaxContactHandleLength {
		return fmt.Errorf("%w: contactHandle exceeds %d characters", ErrInvalidInput, domain.MaxContactHandleLength)
	}

	return nil
}
