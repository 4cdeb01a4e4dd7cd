package mirror

import "errors"

var (
	// ErrOpen возвращается при ошибке открытия файла хранилища
	ErrOpen = errors.New("mirror.repository: failed to open store")

	// ErrMigrate возвращается при ошибке создания схемы
	ErrMigrate = errors.New("mirror.repository: migration failed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("mirror.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("mirror.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("mirror.repository: failed to scan row")
)
