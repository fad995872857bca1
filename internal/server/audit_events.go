package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/smartpemda/sitagih/internal/audit/domain"
	"github.com/smartpemda/sitagih/pkg/db/pagination"
)

type listAuditEventsQuery struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
	ClaimID   string `form:"claim_id"`
	Action    string `form:"action"`
	ActorRole string `form:"actor_role"`
	From      string `form:"from"`
	To        string `form:"to"`
}

func (s *Server) ListAuditEvents(c *gin.Context) {
	var query listAuditEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var claimID snowflake.ID
	if raw := strings.TrimSpace(query.ClaimID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil || parsed == 0 {
			AbortWithError(c, newValidationError("claim_id", "invalid_claim_id", "invalid claim_id"))
			return
		}
		claimID = parsed
	}

	from, ok := timeQuery(c, "from", query.From)
	if !ok {
		return
	}
	to, ok := timeQuery(c, "to", query.To)
	if !ok {
		return
	}

	resp, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListRequest{
		Pagination: pagination.Pagination{
			PageToken: strings.TrimSpace(query.PageToken),
			PageSize:  query.PageSize,
		},
		ClaimID:   claimID,
		Action:    auditdomain.Action(strings.TrimSpace(query.Action)),
		ActorRole: strings.TrimSpace(query.ActorRole),
		StartAt:   from,
		EndAt:     to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
