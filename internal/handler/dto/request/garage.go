package request

type CreateGarageRequest struct {
	Name         string   `json:"name" binding:"required"`
	Address      string   `json:"address" binding:"required"`
	Height       float64  `json:"height" binding:"required,gt=0"`
	Width        float64  `json:"width" binding:"required,gt=0"`
	Length       float64  `json:"length" binding:"required,gt=0"`
	Type         string   `json:"type" binding:"required,oneof=COVERED UNCOVERED"`
	Access       string   `json:"access" binding:"required,oneof=REMOTE KEY CODE ATTENDANT"`
	HourlyPrice  *float64 `json:"hourly_price,omitempty"`
	DailyPrice   *float64 `json:"daily_price,omitempty"`
	MonthlyPrice *float64 `json:"monthly_price,omitempty"`
}

type UpdateGarageRequest struct {
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	HourlyPrice  *float64 `json:"hourly_price,omitempty"`
	DailyPrice   *float64 `json:"daily_price,omitempty"`
	MonthlyPrice *float64 `json:"monthly_price,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

type ScheduleEntryRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ReplaceScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" binding:"required,dive"`
}
