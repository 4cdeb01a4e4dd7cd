package get_available_dates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrStoreUnavailable возвращается при ошибке чтения хранилища, если политика propagate
	ErrStoreUnavailable = errors.New("get_available_dates: store unavailable")
)
