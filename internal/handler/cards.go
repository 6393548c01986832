// internal/handler/cards.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calistaannelise/wallzy/internal/domain"
	"github.com/calistaannelise/wallzy/internal/mcc"
)

type createCardRequest struct {
	Issuer   string `json:"issuer" validate:"required,notblank"`
	CardName string `json:"card_name" validate:"required,notblank"`
	LastFour string `json:"last_four" validate:"required,len=4,numeric"`
}

type createRuleRequest struct {
	Category            string  `json:"category" validate:"required,notblank"`
	Multiplier          float64 `json:"multiplier" validate:"gte=0"`
	CapCents            *int64  `json:"cap_cents" validate:"omitempty,gt=0"`
	StartDate           *string `json:"start_date" validate:"omitempty,isodate"`
	EndDate             *string `json:"end_date" validate:"omitempty,isodate"`
	IntroDurationMonths *int    `json:"intro_duration_months" validate:"omitempty,gt=0"`
	RequiresActivation  bool    `json:"requires_activation"`
	Priority            int     `json:"priority"`
}

func (h *API) CreateCard(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	id, err := h.store.CreateCard(c.Request.Context(), domain.Card{
		UserID:   uid,
		Issuer:   req.Issuer,
		CardName: req.CardName,
		LastFour: req.LastFour,
	})
	if err != nil {
		slog.Error("create card failed", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "issuer": req.Issuer, "card_name": req.CardName})
}

func (h *API) ListCards(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	cards, err := h.store.CardsForUser(c.Request.Context(), uid)
	if err != nil {
		slog.Error("list cards failed", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	result := make([]gin.H, 0, len(cards))
	for _, card := range cards {
		rules, err := h.store.RulesForCard(c.Request.Context(), card.ID)
		if err != nil {
			slog.Error("load rules failed", "error", err, "card_id", card.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		result = append(result, gin.H{
			"id":          card.ID,
			"issuer":      card.Issuer,
			"card_name":   card.CardName,
			"last_four":   card.LastFour,
			"rules_count": len(rules),
		})
	}
	c.JSON(http.StatusOK, result)
}

// ownedCard loads a card by path id and enforces that it belongs to the
// authenticated user. A card owned by someone else reads as not found.
func (h *API) ownedCard(c *gin.Context) (*domain.Card, bool) {
	uid, ok := userID(c)
	if !ok {
		return nil, false
	}
	cardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return nil, false
	}
	card, err := h.store.CardByID(c.Request.Context(), cardID)
	if err != nil {
		slog.Error("load card failed", "error", err, "card_id", cardID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return nil, false
	}
	if card == nil || card.UserID != uid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return nil, false
	}
	return card, true
}

func (h *API) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, ok := h.ownedCard(c)
	if !ok {
		return
	}

	categoryID, err := h.store.CreateCategoryIfNotExists(c.Request.Context(), req.Category, mcc.CodesFor(req.Category))
	if err != nil {
		slog.Error("create category failed", "error", err, "category", req.Category)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		return
	}

	id, err := h.store.CreateRule(c.Request.Context(), domain.Rule{
		CardID:              card.ID,
		CategoryID:          categoryID,
		Multiplier:          req.Multiplier,
		CapCents:            req.CapCents,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		IntroDurationMonths: req.IntroDurationMonths,
		RequiresActivation:  req.RequiresActivation,
		Priority:            req.Priority,
	})
	if err != nil {
		slog.Error("create rule failed", "error", err, "card_id", card.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         id,
		"card_id":    card.ID,
		"category":   req.Category,
		"multiplier": req.Multiplier,
	})
}

func (h *API) ListRules(c *gin.Context) {
	card, ok := h.ownedCard(c)
	if !ok {
		return
	}

	rules, err := h.store.RulesForCard(c.Request.Context(), card.ID)
	if err != nil {
		slog.Error("list rules failed", "error", err, "card_id", card.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if rules == nil {
		rules = []domain.Rule{}
	}
	c.JSON(http.StatusOK, rules)
}

func (h *API) Summary(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.store.UserByID(c.Request.Context(), uid)
	if err != nil {
		slog.Error("load user failed", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	cards, err := h.store.CardsForUser(c.Request.Context(), uid)
	if err != nil {
		slog.Error("load cards failed", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	cardInfos := make([]gin.H, 0, len(cards))
	for _, card := range cards {
		rules, err := h.store.RulesForCard(c.Request.Context(), card.ID)
		if err != nil {
			slog.Error("load rules failed", "error", err, "card_id", card.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		rewards := make([]gin.H, 0, len(rules))
		for _, rule := range rules {
			rewards = append(rewards, gin.H{
				"category":   rule.Category,
				"multiplier": rule.Multiplier,
				"cap_cents":  rule.CapCents,
			})
		}
		cardInfos = append(cardInfos, gin.H{
			"card_id":   card.ID,
			"issuer":    card.Issuer,
			"card_name": card.CardName,
			"last_four": card.LastFour,
			"rewards":   rewards,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":     uid,
		"user_name":   user.Name,
		"total_cards": len(cards),
		"cards":       cardInfos,
	})
}
