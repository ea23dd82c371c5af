package response

import (
	"time"

	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookedSlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type DayAvailabilityResponse struct {
	GarageID uuid.UUID            `json:"garage_id"`
	Date     string               `json:"date"`
	Booked   []BookedSlotResponse `json:"booked"`
}

type WindowAvailabilityResponse struct {
	Available bool     `json:"available"`
	Reasons   []string `json:"reasons,omitempty"`
}

func FromDayAvailability(d *queries.DayAvailability) *DayAvailabilityResponse {
	booked := make([]BookedSlotResponse, len(d.Booked))
	for i, s := range d.Booked {
		booked[i] = BookedSlotResponse{StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return &DayAvailabilityResponse{
		GarageID: d.GarageID,
		Date:     d.Date,
		Booked:   booked,
	}
}

func FromWindowAvailability(w *queries.WindowAvailability) *WindowAvailabilityResponse {
	return &WindowAvailabilityResponse{
		Available: w.Available,
		Reasons:   w.Reasons,
	}
}
