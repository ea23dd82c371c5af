package api

import (
	"errors"
	"net/http"

	"parkspot/internal/domain/vehicle"
	reqdto "parkspot/internal/handler/dto/request"
	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	commands commands.VehicleCommands
	queries  queries.VehicleQueries
}

func NewVehicleHandler(cmds commands.VehicleCommands, qrys queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{commands: cmds, queries: qrys}
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	v, err := h.commands.Create(c.Request.Context(), ownerID, commands.VehicleInput{
		Plate:       req.Plate,
		Description: req.Description,
		Height:      req.Height,
		Width:       req.Width,
		Length:      req.Length,
		MinHeight:   req.MinHeight,
		CoveredOnly: req.CoveredOnly,
	})
	if err != nil {
		h.renderVehicleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromVehicle(v))
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
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
			"error": "Invalid vehicle ID format",
		})
		return
	}

	var req reqdto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	v, err := h.commands.Update(c.Request.Context(), ownerID, id, commands.UpdateVehicleInput{
		Description: req.Description,
		Height:      req.Height,
		Width:       req.Width,
		Length:      req.Length,
		MinHeight:   req.MinHeight,
		CoveredOnly: req.CoveredOnly,
	})
	if err != nil {
		h.renderVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicle(v))
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
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
			"error": "Invalid vehicle ID format",
		})
		return
	}

	if err := h.commands.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.renderVehicleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *VehicleHandler) GetVehicle(c *gin.Context) {
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
			"error": "Invalid vehicle ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), ownerID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		case errors.Is(err, queries.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not the vehicle owner",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(view))
}

func (h *VehicleHandler) ListVehicles(c *gin.Context) {
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

	response := make([]*resdto.VehicleResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromVehicleView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *VehicleHandler) renderVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Vehicle not found",
		})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not the vehicle owner",
		})
	case errors.Is(err, vehicle.ErrEmptyPlate), errors.Is(err, vehicle.ErrInvalidDimension):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
