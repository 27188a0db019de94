package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/application"
	"github.com/campus-halls/service-booking/internal/auth"
	bookingDomain "github.com/campus-halls/service-booking/internal/domain/booking"
	"github.com/campus-halls/service-booking/internal/middleware"
	"github.com/campus-halls/service-booking/internal/response"
)

// AdminHandler handles administrative listing and reporting endpoints.
type AdminHandler struct {
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// RegisterRoutes registers admin routes. All of them require the admin role.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.Auth(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/stats/bookings", h.BookingStats)
	}
}

// ListBookings handles GET /api/v1/admin/bookings with optional status and
// hall filtering.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	var status *bookingDomain.BookingStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := bookingDomain.ParseBookingStatus(raw)
		if err != nil {
			response.BadRequest(c, "invalid status filter")
			return
		}
		status = &parsed
	}

	var hallID *uuid.UUID
	if raw := c.Query("hall_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid hall_id filter")
			return
		}
		hallID = &id
	}

	bookings, total, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit, status, hallID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, bookings, total, page, limit)
}

// BookingStats handles GET /api/v1/admin/stats/bookings.
func (h *AdminHandler) BookingStats(c *gin.Context) {
	stats, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
