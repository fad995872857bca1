package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smartpemda/sitagih/internal/actorctx"
	notificationdomain "github.com/smartpemda/sitagih/internal/notification/domain"
)

type listNotificationsQuery struct {
	Limit int `form:"limit"`
}

type notificationsResponse struct {
	Notifications []notificationdomain.Notification `json:"notifications"`
}

func (s *Server) ListNotifications(c *gin.Context) {
	actor, ok := actorctx.ActorFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query listNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	notifications, err := s.notificationSvc.ListByUser(c.Request.Context(), actor.ID, query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, notificationsResponse{Notifications: notifications})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	actor, ok := actorctx.ActorFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid notification id"))
		return
	}

	if err := s.notificationSvc.MarkRead(c.Request.Context(), actor.ID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
