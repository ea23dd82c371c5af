package response

import (
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/garage"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	GarageID   uuid.UUID `json:"garage_id"`
	UserID     uuid.UUID `json:"user_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateBookingResponse struct {
	BookingResponse
	Quote QuoteResponse `json:"quote"`
}

type QuoteResponse struct {
	Price     float64 `json:"price"`
	Tier      string  `json:"tier"`
	Breakdown string  `json:"breakdown"`
}

type BookingViewResponse struct {
	ID           uuid.UUID `json:"id"`
	GarageID     uuid.UUID `json:"garage_id"`
	GarageName   string    `json:"garage_name"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	VehiclePlate string    `json:"vehicle_plate"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:         b.ID(),
		GarageID:   b.GarageID(),
		UserID:     b.UserID(),
		VehicleID:  b.VehicleID(),
		StartTime:  b.Window().Start(),
		EndTime:    b.Window().End(),
		Status:     b.Status().String(),
		TotalPrice: b.TotalPrice(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}

func FromQuote(q *garage.Quote) QuoteResponse {
	return QuoteResponse{
		Price:     q.Price,
		Tier:      string(q.Tier),
		Breakdown: q.Breakdown,
	}
}

func FromBookingView(v *queries.BookingView) *BookingViewResponse {
	return &BookingViewResponse{
		ID:           v.ID,
		GarageID:     v.GarageID,
		GarageName:   v.GarageName,
		VehicleID:    v.VehicleID,
		VehiclePlate: v.VehiclePlate,
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		Status:       v.Status,
		TotalPrice:   v.TotalPrice,
		CreatedAt:    v.CreatedAt,
	}
}
