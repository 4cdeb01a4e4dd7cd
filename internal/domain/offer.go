package domain

import "github.com/m04kA/SMC-TrainingScheduler/pkg/types"

// Offer доступная для записи дата со всеми слотами.
// Вычисляется при каждом запросе и нигде не хранится.
type Offer struct {
	Date      types.Date
	TimeSlots []types.TimeString
}

// CalendarDay день административного календаря
type CalendarDay struct {
	Date     types.Date
	Blocked  bool
	Reason   *string
	Occupied bool
}
