package handler

import (
	"context"
	"net/http"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ReviewHandler - отзывы об отелях
type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// CreateReview обрабатывает POST /auth/hotels/:hotel_id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	h.write(c, http.StatusCreated, h.reviewService.CreateReview, "Failed to create review")
}

// UpdateReview обрабатывает PATCH /auth/hotels/:hotel_id/reviews
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	h.write(c, http.StatusOK, h.reviewService.UpdateReview, "Failed to update review")
}

type reviewWriteFunc func(ctx context.Context, userID, hotelID string, req *entity.ReviewRequest) (*entity.Review, error)

func (h *ReviewHandler) write(c *gin.Context, status int, fn reviewWriteFunc, fallback string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := fn(c.Request.Context(), userID, c.Param("hotel_id"), &req)
	if err != nil {
		respondError(c, err, fallback)
		return
	}

	c.JSON(status, review)
}

// DeleteReview обрабатывает DELETE /auth/hotels/:hotel_id/reviews
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, c.Param("hotel_id")); err != nil {
		respondError(c, err, "Failed to delete review")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Review deleted"})
}

// GetHotelReviews обрабатывает GET /hotels/:hotel_id/reviews, без аутентификации
func (h *ReviewHandler) GetHotelReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetHotelReviews(c.Request.Context(), c.Param("hotel_id"))
	if err != nil {
		respondError(c, err, "Failed to get reviews")
		return
	}

	c.JSON(http.StatusOK, reviews)
}
