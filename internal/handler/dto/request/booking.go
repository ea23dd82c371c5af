package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	GarageID  uuid.UUID `json:"garage_id" binding:"required"`
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type QuoteRequest struct {
	GarageID  uuid.UUID `json:"garage_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
