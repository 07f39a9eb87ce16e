package cars

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"carrental/internal/pkg/response"
	"carrental/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/cars", h.ListCars)
	rg.GET("/cars/:id", h.GetCar)
	rg.GET("/cars/:id/availability", h.GetAvailability)
}

// RegisterAdminRoutes wires the fleet-management endpoints; the caller is
// expected to guard the group with auth + admin middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/cars", h.CreateCar)
	rg.PUT("/cars/:id", h.UpdateCar)
	rg.DELETE("/cars/:id", h.DeleteCar)
}

// ListCars handles GET /api/v1/cars with filters
func (h *Handler) ListCars(c *gin.Context) {
	var f repository.CarFilters

	f.Brand = c.Query("brand")
	f.Transmission = c.Query("transmission")

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			f.MaxPrice = val
		}
	}
	if c.Query("available") == "true" {
		f.OnlyAvailable = true
	}

	f.Limit = 20 // default
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}

	f.Offset = 0
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	carsList, total, err := h.service.ListCars(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list cars")
		return
	}

	totalPages := (int(total) + f.Limit - 1) / f.Limit
	currentPage := (f.Offset / f.Limit) + 1

	response.Success(c, http.StatusOK, gin.H{
		"cars": carsList,
		"pagination": gin.H{
			"page":        currentPage,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func (h *Handler) GetCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID")
		return
	}

	car, err := h.service.GetCar(c.Request.Context(), id)
	if err != nil {
		if err == ErrCarNotFound {
			response.Error(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load car")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"car": car})
}

func (h *Handler) GetAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID")
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
	}

	slots, err := h.service.GetAvailability(c.Request.Context(), id, from, to)
	if err != nil {
		if err == ErrCarNotFound {
			response.Error(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"busy_slots": slots})
}

func (h *Handler) CreateCar(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	car, err := h.service.CreateCar(c.Request.Context(), req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.Is(err, ErrInvalidTransmission):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Transmission must be manual or automatic")
		case errors.As(err, &ve):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid car attributes", ve.Fields)
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create car")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"car": car})
}

func (h *Handler) UpdateCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	car, err := h.service.UpdateCar(c.Request.Context(), id, req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.Is(err, ErrCarNotFound):
			response.Error(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
		case errors.Is(err, ErrInvalidTransmission):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Transmission must be manual or automatic")
		case errors.As(err, &ve):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid car attributes", ve.Fields)
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update car")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"car": car})
}

func (h *Handler) DeleteCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID")
		return
	}

	err = h.service.DeleteCar(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrCarNotFound:
			response.Error(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
		case ErrCarHasActiveBookings:
			response.Error(c, http.StatusConflict, "CAR_HAS_BOOKINGS", "Car has active bookings and cannot be deleted")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete car")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Car deleted successfully"})
}
