package trainings

import "errors"

var (
	// ErrTrainingNotFound возвращается, когда запись на тренинг не найдена
	ErrTrainingNotFound = errors.New("training not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("trainings service: internal error")
)
