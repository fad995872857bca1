package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smartpemda/sitagih/internal/actorctx"
	"github.com/smartpemda/sitagih/internal/checklist"
	claimdomain "github.com/smartpemda/sitagih/internal/claim/domain"
	"github.com/smartpemda/sitagih/pkg/db/pagination"
)

type createClaimRequest struct {
	AgencyCode    string `json:"agency_code" binding:"required"`
	AgencyName    string `json:"agency_name" binding:"required"`
	ClaimType     string `json:"claim_type" binding:"required"`
	TagihanType   string `json:"tagihan_type" binding:"required"`
	FundingSource string `json:"funding_source" binding:"required"`
	Description   string `json:"description"`
	GrossAmount   int64  `json:"gross_amount"`
}

func (s *Server) CreateClaim(c *gin.Context) {
	actor, ok := actorctx.ActorFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	claim, err := s.claimSvc.Submit(c.Request.Context(), actor, claimdomain.SubmitRequest{
		AgencyCode:    req.AgencyCode,
		AgencyName:    req.AgencyName,
		ClaimType:     req.ClaimType,
		TagihanType:   req.TagihanType,
		FundingSource: req.FundingSource,
		Description:   req.Description,
		GrossAmount:   req.GrossAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claim)
}

func (s *Server) GetClaim(c *gin.Context) {
	id, ok := claimIDParam(c)
	if !ok {
		return
	}

	claim, err := s.claimSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

type listClaimsQuery struct {
	PageToken  string `form:"page_token"`
	PageSize   int    `form:"page_size"`
	Status     string `form:"status"`
	AgencyCode string `form:"agency_code"`
	From       string `form:"from"`
	To         string `form:"to"`
}

func (s *Server) ListClaims(c *gin.Context) {
	var query listClaimsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, ok := timeQuery(c, "from", query.From)
	if !ok {
		return
	}
	to, ok := timeQuery(c, "to", query.To)
	if !ok {
		return
	}

	resp, err := s.claimSvc.List(c.Request.Context(), claimdomain.ListRequest{
		Pagination: pagination.Pagination{
			PageToken: strings.TrimSpace(query.PageToken),
			PageSize:  query.PageSize,
		},
		Status:     claimdomain.ClaimStatus(strings.TrimSpace(query.Status)),
		AgencyCode: strings.TrimSpace(query.AgencyCode),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) RegisterClaim(c *gin.Context) {
	s.simpleTransition(c, s.claimSvc.Register)
}

func (s *Server) ResubmitClaim(c *gin.Context) {
	s.simpleTransition(c, s.claimSvc.Resubmit)
}

func (s *Server) LockClaim(c *gin.Context) {
	s.simpleTransition(c, s.claimSvc.Lock)
}

func (s *Server) UnlockClaim(c *gin.Context) {
	s.simpleTransition(c, s.claimSvc.Unlock)
}

type verifyClaimRequest struct {
	Note      string           `json:"note"`
	Checklist []checklist.Item `json:"checklist" binding:"required"`
}

func (s *Server) VerifyForward(c *gin.Context) {
	s.verifyTransition(c, s.claimSvc.VerifyForward)
}

func (s *Server) VerifyReturn(c *gin.Context) {
	s.verifyTransition(c, s.claimSvc.VerifyReturn)
}

type correctClaimRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (s *Server) CorrectClaim(c *gin.Context) {
	actor, id, ok := transitionInputs(c)
	if !ok {
		return
	}

	var req correctClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	claim, err := s.claimSvc.Correct(c.Request.Context(), actor, id, claimdomain.CorrectRequest{
		Reason: claimdomain.CorrectionReason(strings.TrimSpace(req.Reason)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

type registerSP2DRequest struct {
	DisbursedAt    time.Time `json:"disbursed_at" binding:"required"`
	BankName       string    `json:"bank_name" binding:"required"`
	BankHandoverAt time.Time `json:"bank_handover_at" binding:"required"`
	Note           string    `json:"note"`
}

func (s *Server) RegisterSP2D(c *gin.Context) {
	actor, id, ok := transitionInputs(c)
	if !ok {
		return
	}

	var req registerSP2DRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	claim, err := s.claimSvc.RegisterSP2D(c.Request.Context(), actor, id, claimdomain.SP2DRequest{
		DisbursedAt:    req.DisbursedAt,
		BankName:       req.BankName,
		BankHandoverAt: req.BankHandoverAt,
		Note:           req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

func (s *Server) simpleTransition(c *gin.Context, op func(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*claimdomain.Claim, error)) {
	actor, id, ok := transitionInputs(c)
	if !ok {
		return
	}

	claim, err := op(c.Request.Context(), actor, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

func (s *Server) verifyTransition(c *gin.Context, op func(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req claimdomain.VerifyRequest) (*claimdomain.Claim, error)) {
	actor, id, ok := transitionInputs(c)
	if !ok {
		return
	}

	var req verifyClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	claim, err := op(c.Request.Context(), actor, id, claimdomain.VerifyRequest{
		Note:      req.Note,
		Checklist: req.Checklist,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

func transitionInputs(c *gin.Context) (actorctx.Actor, snowflake.ID, bool) {
	actor, ok := actorctx.ActorFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return actorctx.Actor{}, 0, false
	}

	id, ok := claimIDParam(c)
	if !ok {
		return actorctx.Actor{}, 0, false
	}
	return actor, id, true
}

func claimIDParam(c *gin.Context) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid claim id"))
		return 0, false
	}
	return id, true
}

func timeQuery(c *gin.Context, field, raw string) (*time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		AbortWithError(c, newValidationError(field, "invalid_"+field, "invalid "+field))
		return nil, false
	}
	return &parsed, true
}
