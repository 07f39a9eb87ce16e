package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carrental/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListAllBookings)
	rg.GET("/bookings/my", h.ListMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.DELETE("/bookings/:id", h.CancelBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.UserID = c.GetInt64("user_id")

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidDateRange:
			response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", "End date must be after start date")
		case ErrMissingLocation:
			response.Error(c, http.StatusBadRequest, "MISSING_LOCATION", "Pickup and dropoff locations are required")
		case ErrCarNotFound:
			response.Error(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
		case ErrCarUnavailable:
			response.Error(c, http.StatusConflict, "CAR_UNAVAILABLE", "Car is not available for the selected dates")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListAllBookings(c *gin.Context) {
	bookings, err := h.service.ListAllBookings(c.Request.Context(), c.GetString("role"))
	if err != nil {
		if err == ErrNotAuthorized {
			response.Error(c, http.StatusForbidden, "NOT_AUTHORIZED", "Admin role required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case ErrNotAuthorized:
			response.Error(c, http.StatusForbidden, "NOT_AUTHORIZED", "Not authorized to view this booking")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	err = h.service.CancelBooking(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case ErrNotAuthorized:
			response.Error(c, http.StatusForbidden, "NOT_AUTHORIZED", "Not authorized to cancel this booking")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
