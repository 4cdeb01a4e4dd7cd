package domain

import "fmt"

// StoreErrorPolicy поведение расчета доступности при ошибке чтения хранилища
type StoreErrorPolicy string

const (
	// StoreErrorEmptyResult ошибка логируется, результат пустой (fail-open)
	StoreErrorEmptyResult StoreErrorPolicy = "empty_result"

	// StoreErrorPropagate ошибка возвращается вызывающему
	StoreErrorPropagate StoreErrorPolicy = "propagate"
)

// ParseStoreErrorPolicy парсит значение из конфигурации. Пустая строка означает empty_result
func ParseStoreErrorPolicy(s string) (StoreErrorPolicy, error) {
	switch StoreErrorPolicy(s) {
	case "", StoreErrorEmptyResult:
		return StoreErrorEmptyResult, nil
	case StoreErrorPropagate:
		return StoreErrorPropagate, nil
	default:
		return "", fmt.Errorf("unknown store error policy %q", s)
	}
}

// BookingSource источник записей для расчета занятости
type BookingSource string

const (
	BookingSourceMirror  BookingSource = "mirror"
	BookingSourcePrimary BookingSource = "primary"
)
