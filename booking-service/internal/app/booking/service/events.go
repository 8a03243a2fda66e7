package service

import (
	"context"
	"encoding/json"
	"errors"

	"staybook/booking-service/internal/app/booking/infrastructure"
)

// publishEvent отправляет событие после успешной записи
// Ошибку отправки логирует продюсер, на результат операции она не влияет
func publishEvent(ctx context.Context, publisher infrastructure.MessagePublisher, key string, event interface{}) {
	if publisher == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	_ = publisher.PublishMessage(ctx, key, data)
}

var rejectionReasons = []struct {
	err    error
	reason string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrInvalidDateRange, "invalid_date_range"},
	{ErrRoomNotFound, "room_not_found"},
	{ErrUserNotFound, "user_not_found"},
	{ErrReservationNotFound, "not_found"},
	{ErrAccessDenied, "access_denied"},
	{ErrReservationConflict, "conflict"},
	{ErrInsufficientPoints, "insufficient_points"},
	{ErrCancellationNotAllowed, "not_allowed"},
	{ErrAlreadyCancelled, "already_cancelled"},
	{ErrConcurrentModification, "concurrent_modification"},
}

func rejectionReason(err error) string {
	for _, r := range rejectionReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal"
}
