package response

import (
	"time"

	"parkspot/internal/domain/garage"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type GarageResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Height       float64   `json:"height"`
	Width        float64   `json:"width"`
	Length       float64   `json:"length"`
	Type         string    `json:"type"`
	Access       string    `json:"access"`
	HourlyPrice  *float64  `json:"hourly_price,omitempty"`
	DailyPrice   *float64  `json:"daily_price,omitempty"`
	MonthlyPrice *float64  `json:"monthly_price,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type ScheduleEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
}

func FromGarage(g *garage.Garage) *GarageResponse {
	dims := g.Dimensions()
	pricing := g.Pricing()
	return &GarageResponse{
		ID:           g.ID(),
		OwnerID:      g.OwnerID(),
		Name:         g.Name(),
		Address:      g.Address(),
		Height:       dims.Height,
		Width:        dims.Width,
		Length:       dims.Length,
		Type:         string(g.Type()),
		Access:       string(g.Access()),
		HourlyPrice:  pricing.Hourly,
		DailyPrice:   pricing.Daily,
		MonthlyPrice: pricing.Monthly,
		IsActive:     g.IsActive(),
		CreatedAt:    g.CreatedAt(),
	}
}

func FromGarageView(v *queries.GarageView) *GarageResponse {
	return &GarageResponse{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Name:         v.Name,
		Address:      v.Address,
		Height:       v.Height,
		Width:        v.Width,
		Length:       v.Length,
		Type:         v.Type,
		Access:       v.Access,
		HourlyPrice:  v.HourlyPrice,
		DailyPrice:   v.DailyPrice,
		MonthlyPrice: v.MonthlyPrice,
		IsActive:     v.IsActive,
		CreatedAt:    v.CreatedAt,
	}
}

func FromScheduleEntry(e garage.ScheduleEntry) *ScheduleEntryResponse {
	return &ScheduleEntryResponse{
		ID:        e.ID(),
		DayOfWeek: int(e.Day()),
		StartTime: e.StartClock(),
		EndTime:   e.EndClock(),
		IsActive:  e.IsActive(),
	}
}

func FromScheduleEntryView(v *queries.ScheduleEntryView) *ScheduleEntryResponse {
	return &ScheduleEntryResponse{
		ID:        v.ID,
		DayOfWeek: v.DayOfWeek,
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		IsActive:  v.IsActive,
	}
}
