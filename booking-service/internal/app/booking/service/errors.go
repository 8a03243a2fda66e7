package service

import "errors"

// Ошибки бизнес-логики, handlers сопоставляют их с HTTP статусами через errors.Is
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("invalid date range")

	ErrUserNotFound        = errors.New("user not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReviewNotFound      = errors.New("review not found")

	ErrAccessDenied           = errors.New("access denied")
	ErrReservationConflict    = errors.New("reservation overlaps an existing booking")
	ErrInsufficientPoints     = errors.New("insufficient reward points")
	ErrCancellationNotAllowed = errors.New("cancellation is not allowed for this room")
	ErrAlreadyCancelled       = errors.New("reservation is already cancelled")
	ErrStayNotVerified        = errors.New("no reservation at this hotel")
	ErrReviewAlreadyExists    = errors.New("review already exists")
	ErrUserAlreadyExists      = errors.New("user already exists")

	// ErrConcurrentModification - не удалось применить изменение за отведенное число попыток
	ErrConcurrentModification = errors.New("concurrent modification, retry later")
)
