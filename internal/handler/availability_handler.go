package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/application"
	bookingDomain "github.com/campus-halls/service-booking/internal/domain/booking"
	"github.com/campus-halls/service-booking/internal/response"
)

// AvailabilityHandler handles HTTP requests for slot availability checks.
type AvailabilityHandler struct {
	service *application.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(service *application.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// RegisterRoutes registers availability routes. These endpoints are public
// so requesters can browse free slots before authenticating.
func (h *AvailabilityHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/availability/halls", h.AvailableHalls)

	halls := r.Group("/api/v1/halls/:id")
	{
		halls.GET("/availability", h.CheckAvailability)
		halls.GET("/conflicts", h.Conflicts)
		halls.GET("/upcoming", h.Upcoming)
	}
}

type availabilityResult struct {
	HallID    uuid.UUID `json:"hall_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Available bool      `json:"available"`
}

// CheckAvailability handles GET /api/v1/halls/:id/availability.
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hall id")
		return
	}

	date, interval, ok := parseSlotQuery(c)
	if !ok {
		return
	}

	var excludeID *uuid.UUID
	if raw := c.Query("exclude_booking_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid exclude_booking_id")
			return
		}
		excludeID = &id
	}

	available, err := h.service.IsAvailable(c.Request.Context(), hallID, date, interval, excludeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, availabilityResult{
		HallID:    hallID,
		Date:      date.Format(bookingDomain.DateLayout),
		StartTime: interval.Start.String(),
		EndTime:   interval.End.String(),
		Available: available,
	})
}

// Conflicts handles GET /api/v1/halls/:id/conflicts. It returns the
// bookings that block the requested slot.
func (h *AvailabilityHandler) Conflicts(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hall id")
		return
	}

	date, interval, ok := parseSlotQuery(c)
	if !ok {
		return
	}

	conflicts, err := h.service.FindConflicts(c.Request.Context(), hallID, date, interval)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, conflicts)
}

// Upcoming handles GET /api/v1/halls/:id/upcoming.
func (h *AvailabilityHandler) Upcoming(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hall id")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	bookings, err := h.service.UpcomingBookings(c.Request.Context(), hallID, time.Now().UTC(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bookings)
}

// AvailableHalls handles GET /api/v1/availability/halls. It lists every
// active hall in a department that is free for the requested slot.
func (h *AvailabilityHandler) AvailableHalls(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Query("department_id"))
	if err != nil {
		response.BadRequest(c, "invalid department_id")
		return
	}

	date, interval, ok := parseSlotQuery(c)
	if !ok {
		return
	}

	halls, err := h.service.AvailableHalls(c.Request.Context(), departmentID, date, interval)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, halls)
}

// parseSlotQuery reads date, start_time and end_time query parameters.
// It writes the error response itself and returns ok=false on failure.
func parseSlotQuery(c *gin.Context) (time.Time, bookingDomain.Interval, bool) {
	date, err := bookingDomain.ParseDate(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return time.Time{}, bookingDomain.Interval{}, false
	}

	interval, err := bookingDomain.ParseInterval(c.Query("start_time"), c.Query("end_time"))
	if err != nil {
		response.Error(c, err)
		return time.Time{}, bookingDomain.Interval{}, false
	}

	return date, interval, true
}
