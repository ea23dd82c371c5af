package api

import (
	"errors"
	"net/http"
	"time"

	"parkspot/internal/domain/garage"
	reqdto "parkspot/internal/handler/dto/request"
	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GarageHandler struct {
	commands     commands.GarageCommands
	queries      queries.GarageQueries
	availability queries.AvailabilityQueries
}

func NewGarageHandler(cmds commands.GarageCommands, qrys queries.GarageQueries, avail queries.AvailabilityQueries) *GarageHandler {
	return &GarageHandler{commands: cmds, queries: qrys, availability: avail}
}

func (h *GarageHandler) CreateGarage(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateGarageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	g, err := h.commands.Create(c.Request.Context(), ownerID, commands.CreateGarageInput{
		Name:         req.Name,
		Address:      req.Address,
		Height:       req.Height,
		Width:        req.Width,
		Length:       req.Length,
		Type:         req.Type,
		Access:       req.Access,
		HourlyPrice:  req.HourlyPrice,
		DailyPrice:   req.DailyPrice,
		MonthlyPrice: req.MonthlyPrice,
	})
	if err != nil {
		h.renderGarageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromGarage(g))
}

func (h *GarageHandler) UpdateGarage(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid garage ID format",
		})
		return
	}

	var req reqdto.UpdateGarageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	g, err := h.commands.Update(c.Request.Context(), ownerID, id, commands.UpdateGarageInput{
		Name:         req.Name,
		Address:      req.Address,
		HourlyPrice:  req.HourlyPrice,
		DailyPrice:   req.DailyPrice,
		MonthlyPrice: req.MonthlyPrice,
		IsActive:     req.IsActive,
	})
	if err != nil {
		h.renderGarageError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGarage(g))
}

func (h *GarageHandler) DeactivateGarage(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid garage ID format",
		})
		return
	}

	if err := h.commands.Deactivate(c.Request.Context(), ownerID, id); err != nil {
		h.renderGarageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GarageHandler) ReplaceSchedule(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid garage ID format",
		})
		return
	}

	var req reqdto.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	entries := make([]commands.ScheduleEntryInput, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = commands.ScheduleEntryInput{
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		}
	}

	schedule, err := h.commands.ReplaceSchedule(c.Request.Context(), ownerID, id, entries)
	if err != nil {
		switch {
		case errors.Is(err, garage.ErrInvalidClock),
			errors.Is(err, garage.ErrWindowNotAscending),
			errors.Is(err, garage.ErrInvalidDayOfWeek):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid schedule entry",
			})
		default:
			h.renderGarageError(c, err)
		}
		return
	}

	response := make([]*resdto.ScheduleEntryResponse, len(schedule))
	for i, e := range schedule {
		response[i] = resdto.FromScheduleEntry(e)
	}
	c.JSON(http.StatusOK, response)
}

func (h *GarageHandler) GetGarage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid garage ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrGarageNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Garage not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromGarageView(view))
}

func (h *GarageHandler) ListGarages(c *gin.Context) {
	views, err := h.queries.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.GarageResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromGarageView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *GarageHandler) ListOwnGarages(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.queries.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.GarageResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromGarageView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *GarageHandler) GetSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid garage ID format",
		})
		return
	}

	views, err := h.queries.Schedules(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ScheduleEntryResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromScheduleEntryView(v)
	}
	c.JSON(http.StatusOK, response)
}

// GetDayAvailability serves the advisory day picture used by listing pages.
func (h *GarageHandler) GetDayAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid garage ID format",
		})
		return
	}

	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing date, expected YYYY-MM-DD",
		})
		return
	}

	day, err := h.availability.Day(c.Request.Context(), id, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailability(day))
}

func (h *GarageHandler) CheckWindowAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid garage ID format",
		})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing start, expected RFC3339",
		})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing end, expected RFC3339",
		})
		return
	}

	avail, err := h.availability.CheckWindow(c.Request.Context(), id, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromWindowAvailability(avail))
}

func (h *GarageHandler) renderGarageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrGarageNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Garage not found",
		})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not the garage owner",
		})
	case errors.Is(err, garage.ErrEmptyName),
		errors.Is(err, garage.ErrImplausibleHeight),
		errors.Is(err, garage.ErrImplausibleWidth),
		errors.Is(err, garage.ErrImplausibleLength),
		errors.Is(err, garage.ErrInvalidGarageType),
		errors.Is(err, garage.ErrInvalidAccessType),
		errors.Is(err, garage.ErrNegativePriceTier):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
