package response

import (
	"time"

	"parkspot/internal/domain/vehicle"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Plate       string    `json:"plate"`
	Description string    `json:"description,omitempty"`
	Height      *float64  `json:"height,omitempty"`
	Width       *float64  `json:"width,omitempty"`
	Length      *float64  `json:"length,omitempty"`
	MinHeight   *float64  `json:"min_height,omitempty"`
	CoveredOnly bool      `json:"covered_only"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromVehicle(v *vehicle.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:          v.ID(),
		OwnerID:     v.OwnerID(),
		Plate:       v.Plate(),
		Description: v.Description(),
		Height:      v.Height(),
		Width:       v.Width(),
		Length:      v.Length(),
		MinHeight:   v.MinHeight(),
		CoveredOnly: v.CoveredOnly(),
		CreatedAt:   v.CreatedAt(),
	}
}

func FromVehicleView(v *queries.VehicleView) *VehicleResponse {
	return &VehicleResponse{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Plate:       v.Plate,
		Description: v.Description,
		Height:      v.Height,
		Width:       v.Width,
		Length:      v.Length,
		MinHeight:   v.MinHeight,
		CoveredOnly: v.CoveredOnly,
		CreatedAt:   v.CreatedAt,
	}
}
