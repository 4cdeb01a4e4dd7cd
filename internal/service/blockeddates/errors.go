package blockeddates

import "errors"

var (
	// ErrBlockedDateNotFound возвращается, когда дата не заблокирована
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blockeddates service: internal error")
)
