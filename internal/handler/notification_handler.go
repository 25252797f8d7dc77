package handler

import (
	"net/http"

	"github.com/benj-n/miguafi/internal/middleware"
	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the per-user notification inbox
type NotificationHandler struct {
	notifService *service.NotificationService
}

func NewNotificationHandler(notifService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// MyNotifications godoc
// @Summary List the caller's notifications, newest first
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Notification
// @Failure 401 {object} model.ErrorResponse
// @Router /notifications/me [get]
func (h *NotificationHandler) MyNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)
	notifications, err := h.notifService.ListMine(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}
