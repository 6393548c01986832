// internal/handler/recommend.go
package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calistaannelise/wallzy/internal/domain"
	"github.com/calistaannelise/wallzy/internal/engine"
	"github.com/calistaannelise/wallzy/internal/mcc"
)

// recommendRequest uses pointer fields so each one is explicitly present
// or absent. The tap watcher posts an empty body; every field then falls
// back to a configured default.
type recommendRequest struct {
	MCCCode      *string `json:"mcc_code" validate:"omitempty,mcc"`
	AmountCents  *int64  `json:"amount_cents" validate:"omitempty,gt=0"`
	MerchantName *string `json:"merchant_name" validate:"omitempty,notblank"`
	Description  *string `json:"description"`
}

func (h *API) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := userID(c)
	if !ok {
		return
	}

	p := engine.Purchase{
		UserID:      uid,
		MCCCode:     h.defaultMCC,
		AmountCents: h.defaultAmountCents,
	}
	if req.MCCCode != nil {
		p.MCCCode = *req.MCCCode
	}
	if req.AmountCents != nil {
		p.AmountCents = *req.AmountCents
	}
	if req.MerchantName != nil {
		p.MerchantName = *req.MerchantName
	}
	if req.Description != nil {
		p.Description = *req.Description
	}

	rec, err := h.engine.Recommend(c.Request.Context(), p, time.Now())
	switch {
	case errors.Is(err, domain.ErrNoCards):
		c.JSON(http.StatusNotFound, gin.H{"error": "No cards found for user"})
		return
	case errors.Is(err, domain.ErrNoApplicableCard):
		c.JSON(http.StatusNotFound, gin.H{"error": "No applicable card rules found"})
		return
	case err != nil:
		slog.Error("recommend failed", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *API) Transactions(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	txs, err := h.store.TransactionsForUser(c.Request.Context(), uid, 50)
	if err != nil {
		slog.Error("list transactions failed", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	c.JSON(http.StatusOK, txs)
}

// MCCLookup is public: the classifier is a static table, no user data
// involved.
func (h *API) MCCLookup(c *gin.Context) {
	code := c.Param("code")
	c.JSON(http.StatusOK, gin.H{
		"mcc_code": code,
		"category": mcc.CategoryOf(code),
	})
}

func (h *API) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, mcc.Categories())
}
