// internal/handler/scraper.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calistaannelise/wallzy/internal/domain"
	"github.com/calistaannelise/wallzy/internal/scraper"
)

// RunScraper fetches issuer reward pages, parses what it can and stores
// every raw entry. Parsed fields stay advisory (processed=false) until
// someone turns them into real rules.
func (h *API) RunScraper(c *gin.Context) {
	raw := h.scraper.ScrapeRewards(c.Request.Context())

	for _, r := range raw {
		reward := domain.ScrapedReward{
			Issuer:    r.Issuer,
			CardName:  r.CardName,
			RawText:   r.RawText,
			ScrapedAt: r.ScrapedAt,
		}
		if parsed := scraper.ParseRewardText(r.RawText); parsed != nil {
			reward.ParsedMultiplier = &parsed.Multiplier
			if parsed.Category != "" {
				cat := parsed.Category
				reward.ParsedCategory = &cat
			}
			if parsed.EndDate != "" {
				end := parsed.EndDate
				reward.ParsedEndDate = &end
			}
		}
		if _, err := h.store.InsertScrapedReward(c.Request.Context(), reward); err != nil {
			slog.Error("save scraped reward failed", "error", err, "card", r.CardName)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save scraped rewards"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"scraped_count": len(raw),
		"message":       "Rewards scraped and saved to database",
	})
}

func (h *API) ScraperResults(c *gin.Context) {
	rewards, err := h.store.ListScrapedRewards(c.Request.Context(), 50)
	if err != nil {
		slog.Error("list scraped rewards failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if rewards == nil {
		rewards = []domain.ScrapedReward{}
	}
	c.JSON(http.StatusOK, rewards)
}
