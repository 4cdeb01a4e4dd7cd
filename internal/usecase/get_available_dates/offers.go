package get_available_dates

import (
	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// computeOffers перебирает дни today..today+horizon по возрастанию и оставляет
// подходящие по дню недели, не заблокированные и не занятые. Каждый день
// предлагается со всеми слотами расписания.
func computeOffers(
	schedule domain.Schedule,
	today types.Date,
	horizonDays int,
	blocked map[types.Date]*domain.BlockedDate,
	occupied map[types.Date]struct{},
) []domain.Offer {
	offers := make([]domain.Offer, 0)

	for i := 0; i <= horizonDays; i++ {
		day := today.AddDays(i)

		if !schedule.IsEligibleWeekday(day) {
			continue
		}
		if _, ok := blocked[day]; ok {
			continue
		}
		if _, ok := occupied[day]; ok {
			continue
		}

		offers = append(offers, domain.Offer{
			Date:      day,
			TimeSlots: schedule.Slots(),
		})
	}

	return offers
}
