package request

type CreateVehicleRequest struct {
	Plate       string   `json:"plate" binding:"required"`
	Description string   `json:"description,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Length      *float64 `json:"length,omitempty"`
	MinHeight   *float64 `json:"min_height,omitempty"`
	CoveredOnly bool     `json:"covered_only"`
}

type UpdateVehicleRequest struct {
	Description *string  `json:"description,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Length      *float64 `json:"length,omitempty"`
	MinHeight   *float64 `json:"min_height,omitempty"`
	CoveredOnly *bool    `json:"covered_only,omitempty"`
}
