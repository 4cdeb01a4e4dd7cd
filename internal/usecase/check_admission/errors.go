package check_admission

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_admission: invalid input data")

	// ErrStoreUnavailable возвращается при ошибке чтения хранилища, если политика propagate
	ErrStoreUnavailable = errors.New("check_admission: store unavailable")
)
