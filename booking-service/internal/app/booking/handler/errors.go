package handler

import (
	"errors"
	"net/http"

	"staybook/booking-service/internal/app/booking/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errorStatuses = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
	{service.ErrInvalidDateRange, http.StatusBadRequest, "Invalid date range"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrRoomNotFound, http.StatusNotFound, "Room not found"},
	{service.ErrHotelNotFound, http.StatusNotFound, "Hotel not found"},
	{service.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{service.ErrReviewNotFound, http.StatusNotFound, "Review not found"},
	{service.ErrAccessDenied, http.StatusForbidden, "Access denied"},
	{service.ErrStayNotVerified, http.StatusForbidden, "No reservation at this hotel"},
	{service.ErrReservationConflict, http.StatusConflict, "Reservation overlaps an existing booking"},
	{service.ErrCancellationNotAllowed, http.StatusConflict, "Cancellation is not allowed for this room"},
	{service.ErrAlreadyCancelled, http.StatusConflict, "Reservation is already cancelled"},
	{service.ErrReviewAlreadyExists, http.StatusConflict, "Review already exists"},
	{service.ErrUserAlreadyExists, http.StatusConflict, "User already exists"},
	{service.ErrConcurrentModification, http.StatusConflict, "Concurrent modification, retry later"},
	{service.ErrInsufficientPoints, http.StatusUnprocessableEntity, "Insufficient reward points"},
}

// respondError сопоставляет ошибку сервиса с HTTP статусом
// Неизвестные ошибки отдаются как 500 с fallback сообщением, детали остаются в логе запроса
func respondError(c *gin.Context, err error, fallback string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.message})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
