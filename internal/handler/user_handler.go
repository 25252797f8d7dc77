package handler

import (
	"net/http"

	"github.com/benj-n/miguafi/internal/middleware"
	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles the current-user profile endpoints
type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateMe godoc
// @Summary Update the authenticated user's location
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.UpdateProfileRequest true "Profile update"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.authService.UpdateProfile(user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, updated.ToResponse())
}
