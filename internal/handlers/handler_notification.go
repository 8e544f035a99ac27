package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// notificationHandler handles the caller's in-app notifications.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.GET("/unread-count", h.unreadCount)
		notifications.POST("/:notification_id/read", h.markRead)
		notifications.POST("/read-all", h.markAllRead)
	}
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Description Returns newest-first pages with an opaque nextToken cursor.
// @Tags notifications
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListNotificationsResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.notificationService.ListMyNotifications(c.Request.Context(), c.Param("agency_id"), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// unreadCount godoc
// @Summary Count the caller's unread notifications
// @Tags notifications
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} dto.UnreadCountResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/notifications/unread-count [get]
func (h *notificationHandler) unreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to count unread notifications")
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Unread: count})
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Param agency_id path string true "Agency ID"
// @Param notification_id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/notifications/{notification_id}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("agency_id"), c.Param("notification_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}

// markAllRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Param agency_id path string true "Agency ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /agencies/{agency_id}/notifications/read-all [post]
func (h *notificationHandler) markAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), c.Param("agency_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to mark notifications read")
		return
	}
	c.Status(http.StatusNoContent)
}
