package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule(time.UTC)

	assert.Equal(t, 30, s.BookingHorizonDays)
	assert.Equal(t, 60, s.AdminHorizonDays)
	assert.Equal(t, []types.TimeString{"10:00", "14:00"}, s.Slots())

	assert.True(t, s.IsEligibleWeekday(types.DateOf(2025, time.May, 12)))  // Monday
	assert.False(t, s.IsEligibleWeekday(types.DateOf(2025, time.May, 13))) // Tuesday
	assert.True(t, s.IsEligibleWeekday(types.DateOf(2025, time.May, 14)))  // Wednesday
	assert.True(t, s.IsEligibleWeekday(types.DateOf(2025, time.May, 16)))  // Friday
	assert.False(t, s.IsEligibleWeekday(types.DateOf(2025, time.May, 17))) // Saturday

	assert.True(t, s.HasSlot("14:00"))
	assert.False(t, s.HasSlot("12:00"))
}

func TestSchedule_TodayUsesLocation(t *testing.T) {
	s := DefaultSchedule(saoPaulo(t))
	// 01:00 UTC 13 мая = 22:00 12 мая в Сан-Паулу
	now := time.Date(2025, time.May, 13, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, types.DateOf(2025, time.May, 12), s.Today(now))
}

func TestSchedule_SlotsIsCopy(t *testing.T) {
	s := DefaultSchedule(time.UTC)
	slots := s.Slots()
	slots[0] = "09:00"

	assert.Equal(t, types.TimeString("10:00"), s.TimeSlots[0])
}
