package api

import (
	"context"
	"errors"
	"net/http"

	"parkspot/internal/domain/booking"
	reqdto "parkspot/internal/handler/dto/request"
	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qrys queries.BookingQueries) *BookingHandler {
	return &BookingHandler{commands: cmds, queries: qrys}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.Create(c.Request.Context(), userID, commands.CreateBookingInput{
		GarageID:  req.GarageID,
		VehicleID: req.VehicleID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.renderCreateError(c, err)
		return
	}

	response := resdto.CreateBookingResponse{
		BookingResponse: *resdto.FromBooking(result.Booking),
		Quote:           resdto.FromQuote(&result.Quote),
	}
	c.JSON(http.StatusCreated, response)
}

func (h *BookingHandler) renderCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrGarageNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Garage not found",
		})
	case errors.Is(err, commands.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Vehicle not found",
		})
	case errors.Is(err, commands.ErrGarageInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Garage is not active",
		})
	case errors.Is(err, commands.ErrVehicleNotOwned):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Vehicle does not belong to requester",
		})
	case errors.Is(err, commands.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking window",
		})
	case errors.Is(err, commands.ErrIncompatibleVehicle):
		var incompat *commands.IncompatibilityError
		detail := gin.H{"error": "Vehicle incompatible with garage"}
		if errors.As(err, &incompat) {
			detail["issues"] = incompat.Issues
		}
		c.JSON(http.StatusUnprocessableEntity, detail)
	case errors.Is(err, commands.ErrScheduleUnavailable):
		var sched *commands.ScheduleUnavailableError
		detail := gin.H{"error": "Garage not available in requested window"}
		if errors.As(err, &sched) {
			detail["reasons"] = sched.Reasons
		}
		c.JSON(http.StatusUnprocessableEntity, detail)
	case errors.Is(err, commands.ErrNoPricing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No pricing available for garage",
		})
	case errors.Is(err, commands.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Time slot no longer available",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quote, err := h.commands.Quote(c.Request.Context(), commands.QuoteInput{
		GarageID:  req.GarageID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrGarageNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Garage not found",
			})
		case errors.Is(err, commands.ErrGarageInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Garage is not active",
			})
		case errors.Is(err, commands.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking window",
			})
		case errors.Is(err, commands.ErrNoPricing):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No pricing available for garage",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuote(quote))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not a party to this booking",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.queries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingViewResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromBookingView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.commands.Confirm)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.commands.Cancel)
}

func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.commands.CheckIn)
}

func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.commands.CheckOut)
}

func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error)) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	updated, err := apply(c.Request.Context(), actorID, id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not permitted for this booking",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Invalid booking status transition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(updated))
}
