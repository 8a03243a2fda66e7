package handler

import (
	"net/http"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ReservationHandler обрабатывает HTTP запросы для бронирований
type ReservationHandler struct {
	reservationService service.ReservationServiceInterface
	validator          *validator.Validate
}

func NewReservationHandler(reservationService service.ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		validator:          validator.New(),
	}
}

// CreateReservation обрабатывает POST /auth/reservations
// Цена берется из каталога, в теле только номер, даты и оплата баллами
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetUserReservations обрабатывает GET /auth/reservations
func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reservations, err := h.reservationService.GetUserReservations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservation обрабатывает GET /auth/reservations/:reservation_id
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), userID, c.Param("reservation_id"))
	if err != nil {
		respondError(c, err, "Failed to get reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// ModifyReservation обрабатывает PATCH /auth/reservations/:reservation_id
// Меняются только даты, цена остается прежней
func (h *ReservationHandler) ModifyReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	reservation, err := h.reservationService.ModifyReservation(c.Request.Context(), userID, c.Param("reservation_id"), &req)
	if err != nil {
		respondError(c, err, "Failed to modify reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CancelReservation обрабатывает DELETE /auth/reservations/:reservation_id
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reservationID := c.Param("reservation_id")

	penalty, err := h.reservationService.CancelReservation(c.Request.Context(), userID, reservationID)
	if err != nil {
		respondError(c, err, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, entity.CancelReservationResponse{
		ReservationID: reservationID,
		PenaltyFee:    penalty,
	})
}

// GetReservationsByUser обрабатывает GET /admin/reservations/user/:user_id
func (h *ReservationHandler) GetReservationsByUser(c *gin.Context) {
	reservations, err := h.reservationService.GetReservationsByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "Failed to get reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}
