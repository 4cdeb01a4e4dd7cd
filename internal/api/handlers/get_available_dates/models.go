package get_available_dates

import (
	getAvailableDates "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/get_available_dates"
)

// OfferResponse доступная дата со слотами
type OfferResponse struct {
	Date      string   `json:"date"`    // "2025-05-12"
	Weekday   string   `json:"weekday"` // "Monday"
	TimeSlots []string `json:"timeSlots"`
}

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	Today       string          `json:"today"`
	HorizonDays int             `json:"horizonDays"`
	Offers      []OfferResponse `json:"offers"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	offers := make([]OfferResponse, 0, len(resp.Offers))
	for _, offer := range resp.Offers {
		slots := make([]string, 0, len(offer.TimeSlots))
		for _, ts := range offer.TimeSlots {
			slots = append(slots, ts.String())
		}
		offers = append(offers, OfferResponse{
			Date:      offer.Date.String(),
			Weekday:   offer.Date.Weekday().String(),
			TimeSlots: slots,
		})
	}

	return &AvailableDatesResponse{
		Today:       resp.Today.String(),
		HorizonDays: resp.HorizonDays,
		Offers:      offers,
	}
}
