// Package response renders API responses and maps domain errors to HTTP
// status codes.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-halls/service-booking/internal/domain"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response with pagination metadata.
func Paginated(c *gin.Context, items any, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// BadRequest writes a 400 response with a plain validation message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBody{Code: "validation_error", Message: message}})
}

// Error maps a domain error to its HTTP representation. Unknown errors
// become opaque 500s so internals never leak.
func Error(c *gin.Context, err error) {
	var (
		invalidInterval   *domain.InvalidIntervalError
		validation        *domain.ValidationError
		notFound          *domain.NotFoundError
		slotConflict      *domain.SlotConflictError
		invalidTransition *domain.InvalidTransitionError
		pastBooking       *domain.PastBookingError
		conflict          *domain.ConflictError
		forbidden         *domain.ForbiddenError
		storage           *domain.StorageError
	)

	switch {
	case errors.As(err, &invalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBody{
			Code:    "invalid_interval",
			Message: invalidInterval.Error(),
			Details: map[string]any{
				"start_time": invalidInterval.Start,
				"end_time":   invalidInterval.End,
			},
		}})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBody{
			Code:    "validation_error",
			Message: validation.Message,
		}})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrorBody{
			Code:    "not_found",
			Message: notFound.Error(),
		}})
	case errors.As(err, &slotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": ErrorBody{
			Code:    "slot_conflict",
			Message: slotConflict.Error(),
			Details: map[string]any{
				"conflicting_booking_id": slotConflict.BookingID.String(),
				"date":                   slotConflict.Date,
				"start_time":             slotConflict.StartTime,
				"end_time":               slotConflict.EndTime,
			},
		}})
	case errors.As(err, &invalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": ErrorBody{
			Code:    "invalid_transition",
			Message: invalidTransition.Error(),
			Details: map[string]any{
				"current_status": invalidTransition.From,
				"target_status":  invalidTransition.To,
			},
		}})
	case errors.As(err, &pastBooking):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBody{
			Code:    "past_booking_immutable",
			Message: pastBooking.Error(),
		}})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": ErrorBody{
			Code:      "conflict",
			Message:   conflict.Message,
			Retryable: true,
		}})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": ErrorBody{
			Code:    "forbidden",
			Message: forbidden.Message,
		}})
	case errors.As(err, &storage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorBody{
			Code:      "storage_failure",
			Message:   "temporary storage failure, please try again",
			Retryable: true,
		}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorBody{
			Code:    "internal_error",
			Message: "internal server error",
		}})
	}
}
