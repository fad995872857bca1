package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartpemda/sitagih/internal/actorctx"
	taxdomain "github.com/smartpemda/sitagih/internal/tax/domain"
)

type taxEntryRequest struct {
	TaxType     string `json:"tax_type" binding:"required"`
	AccountCode string `json:"account_code"`
	Amount      int64  `json:"amount" binding:"required"`
	NTPN        string `json:"ntpn"`
	NTB         string `json:"ntb"`
	BillingCode string `json:"billing_code"`
}

type replaceTaxEntriesRequest struct {
	Entries []taxEntryRequest `json:"entries" binding:"required"`
}

type taxEntriesResponse struct {
	Entries []taxdomain.TaxEntry `json:"entries"`
}

func (s *Server) ReplaceTaxEntries(c *gin.Context) {
	actor, id, ok := transitionInputs(c)
	if !ok {
		return
	}

	var req replaceTaxEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entries := make([]taxdomain.EntryInput, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, taxdomain.EntryInput{
			TaxType:     entry.TaxType,
			AccountCode: entry.AccountCode,
			Amount:      entry.Amount,
			NTPN:        entry.NTPN,
			NTB:         entry.NTB,
			BillingCode: entry.BillingCode,
		})
	}

	saved, err := s.taxSvc.Replace(c.Request.Context(), actor, id, entries)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, taxEntriesResponse{Entries: saved})
}

type taxTypeOption struct {
	TaxType     string `json:"tax_type"`
	AccountCode string `json:"account_code"`
}

// ListTaxTypes serves the selectable withholding types for the entry form.
// Lainnya carries no preset account code; the operator fills it in.
func (s *Server) ListTaxTypes(c *gin.Context) {
	if _, ok := actorctx.ActorFromContext(c.Request.Context()); !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	types := taxdomain.TaxTypes()
	options := make([]taxTypeOption, 0, len(types))
	for _, taxType := range types {
		options = append(options, taxTypeOption{
			TaxType:     taxType,
			AccountCode: taxdomain.AccountCodeFor(taxType),
		})
	}

	c.JSON(http.StatusOK, gin.H{"tax_types": options})
}

func (s *Server) ListTaxEntries(c *gin.Context) {
	if _, ok := actorctx.ActorFromContext(c.Request.Context()); !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, ok := claimIDParam(c)
	if !ok {
		return
	}

	entries, err := s.taxSvc.List(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, taxEntriesResponse{Entries: entries})
}
