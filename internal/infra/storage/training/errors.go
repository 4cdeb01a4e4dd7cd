package training

import "errors"

var (
	// ErrTrainingNotFound возвращается, когда запись на тренинг не найдена
	ErrTrainingNotFound = errors.New("training.repository: training not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("training.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("training.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("training.repository: failed to scan row")
)
