package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smartpemda/sitagih/internal/actorctx"
)

// Identity headers set by the upstream gateway after authentication. The
// workflow core trusts them as-is; this service is never exposed directly.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
	HeaderActorName = "X-Actor-Name"
)

func (s *Server) ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromHeaders(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := actorctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func actorFromHeaders(c *gin.Context) (actorctx.Actor, bool) {
	rawID := strings.TrimSpace(c.GetHeader(HeaderActorID))
	if rawID == "" {
		return actorctx.Actor{}, false
	}
	id, err := snowflake.ParseString(rawID)
	if err != nil || id == 0 {
		return actorctx.Actor{}, false
	}

	role := actorctx.ParseRole(c.GetHeader(HeaderActorRole))
	if role == "" {
		return actorctx.Actor{}, false
	}

	return actorctx.Actor{
		ID:          id,
		Role:        role,
		DisplayName: strings.TrimSpace(c.GetHeader(HeaderActorName)),
	}, true
}
