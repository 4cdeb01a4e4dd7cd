package submit_training

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных формы
	ErrInvalidInput = errors.New("submit_training: invalid input data")

	// ErrDateInPast возвращается, когда выбранные дата и время уже прошли
	ErrDateInPast = errors.New("submit_training: date is in the past")

	// ErrWeekdayNotAvailable возвращается, когда в этот день недели тренинги не проводятся
	ErrWeekdayNotAvailable = errors.New("submit_training: weekday is not available")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами горизонта записи
	ErrDateTooFarInFuture = errors.New("submit_training: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не входит в слоты расписания
	ErrInvalidTimeSlot = errors.New("submit_training: invalid time slot")

	// ErrDateBlocked возвращается, когда дата заблокирована администратором
	ErrDateBlocked = errors.New("submit_training: date is blocked")

	// ErrDateOccupied возвращается, когда на дату уже есть запись
	ErrDateOccupied = errors.New("submit_training: date is already booked")

	// ErrStoreUnavailable возвращается, когда проверку даты не удалось выполнить (политика propagate)
	ErrStoreUnavailable = errors.New("submit_training: availability store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_training: internal error")
)
