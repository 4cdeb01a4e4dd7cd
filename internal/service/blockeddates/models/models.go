package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// BlockDateRequest запрос на блокировку даты
type BlockDateRequest struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// CalendarRequest запрос административного календаря
type CalendarRequest struct {
	HorizonDays *int `json:"horizonDays,omitempty"` // по умолчанию schedule.admin_horizon_days
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	Date      types.Date `json:"date"`
	Reason    *string    `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
	Total        int                   `json:"total"`
}

// CalendarDayResponse день административного календаря
type CalendarDayResponse struct {
	Date     types.Date `json:"date"`
	Weekday  string     `json:"weekday"`
	Blocked  bool       `json:"blocked"`
	Reason   *string    `json:"reason,omitempty"`
	Occupied bool       `json:"occupied"`
}

// CalendarResponse административный календарь на горизонт
type CalendarResponse struct {
	Today       types.Date            `json:"today"`
	HorizonDays int                   `json:"horizonDays"`
	Days        []CalendarDayResponse `json:"days"`
}

// FromDomainBlockedDate конвертирует domain.BlockedDate в ответ
func FromDomainBlockedDate(bd *domain.BlockedDate) *BlockedDateResponse {
	if bd == nil {
		return nil
	}
	return &BlockedDateResponse{
		Date:      bd.Date,
		Reason:    bd.Reason,
		CreatedAt: bd.CreatedAt,
		UpdatedAt: bd.UpdatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список заблокированных дат
func FromDomainBlockedDateList(list []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(list)),
	}
	for _, bd := range list {
		if bd == nil {
			continue
		}
		resp.BlockedDates = append(resp.BlockedDates, *FromDomainBlockedDate(bd))
	}
	resp.Total = len(resp.BlockedDates)
	return resp
}

// FromDomainCalendarDay конвертирует день календаря
func FromDomainCalendarDay(day domain.CalendarDay) CalendarDayResponse {
	return CalendarDayResponse{
		Date:     day.Date,
		Weekday:  day.Date.Weekday().String(),
		Blocked:  day.Blocked,
		Reason:   day.Reason,
		Occupied: day.Occupied,
	}
}
