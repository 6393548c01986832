// internal/scraper/parser_test.go
package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRewardText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *ParsedReward
	}{
		{
			"choice category percent",
			"3% cash back in the category of your choice: gas, online shopping, dining, travel, drug stores, or home improvement/furnishings",
			&ParsedReward{Multiplier: 3, Category: "dining"},
		},
		{
			"grocery with quarterly cap",
			"2% cash back at grocery stores and wholesale clubs (for the first $2,500 in combined choice category/grocery store/wholesale club quarterly purchases)",
			&ParsedReward{Multiplier: 2, Category: "groceries", CapCents: 250000},
		},
		{
			"base rate",
			"1% cash back on all other purchases",
			&ParsedReward{Multiplier: 1, Category: "other"},
		},
		{
			"points per dollar",
			"2 points per $1 spent on travel and dining purchases",
			&ParsedReward{Multiplier: 2, Category: "dining"},
		},
		{
			"fractional points",
			"1.5 points per $1 spent on all other purchases",
			&ParsedReward{Multiplier: 1.5, Category: "other"},
		},
		{
			"unlimited flat rate",
			"1.5% unlimited cash back on all purchases",
			&ParsedReward{Multiplier: 1.5, Category: "other"},
		},
		{
			"end date with comma",
			"5% cash back on groceries until June 30, 2026",
			&ParsedReward{Multiplier: 5, Category: "groceries", EndDate: "2026-06-30"},
		},
		{
			"end date without comma",
			"4% on dining through March 15 2026",
			&ParsedReward{Multiplier: 4, Category: "dining", EndDate: "2026-03-15"},
		},
		{
			"dollar amount without quarterly wording is not a cap",
			"2% cash back, up to $500 in bonus rewards",
			&ParsedReward{Multiplier: 2},
		},
		{
			"no multiplier",
			"Earn rewards on everyday purchases",
			nil,
		},
		{
			"empty",
			"",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRewardText(tt.text))
		})
	}
}

func TestFallbackTextsAllParse(t *testing.T) {
	for cardName, texts := range fallbackTexts {
		for _, text := range texts {
			parsed := ParseRewardText(text)
			require.NotNil(t, parsed, "%s: %q", cardName, text)
			assert.Greater(t, parsed.Multiplier, 0.0)
			assert.NotEmpty(t, parsed.Category, "%s: %q", cardName, text)
		}
	}
}

func TestFallbackRewards(t *testing.T) {
	rewards := fallbackRewards("Customized Cash Rewards")
	require.Len(t, rewards, 3)
	for _, r := range rewards {
		assert.Equal(t, issuerName, r.Issuer)
		assert.Equal(t, "Customized Cash Rewards", r.CardName)
		assert.False(t, r.ScrapedAt.IsZero())
	}

	assert.Nil(t, fallbackRewards("No Such Card"))
}
