package handler

import (
	"net/http"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserHandler - профиль гостя и баланс баллов
type UserHandler struct {
	userService service.UserServiceInterface
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// SignUp обрабатывает POST /auth/signup
// Токен уже выдан провайдером, здесь создается только профиль с нулевым балансом
func (h *UserHandler) SignUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), userID, c.GetString(ctxEmail), &req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// SignIn обрабатывает POST /auth/signin и возвращает профиль с текущим балансом
func (h *UserHandler) SignIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *entity.User) entity.UserResponse {
	return entity.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		RewardPoints: user.RewardPoints,
	}
}
