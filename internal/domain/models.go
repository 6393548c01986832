// internal/domain/models.go
package domain

import "time"

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

type Card struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"-"`
	Issuer   string `json:"issuer"`
	CardName string `json:"card_name"`
	LastFour string `json:"last_four"`
}

type Category struct {
	ID       int64    `json:"-"`
	Name     string   `json:"name"`
	MCCCodes []string `json:"mcc_codes"`
}

// Rule is a reward rule attached to exactly one card and one category.
// Date bounds are kept as ISO strings (YYYY-MM-DD); the evaluator parses
// them at decision time and treats an unparsable bound as "rule inactive".
type Rule struct {
	ID                  int64   `json:"id"`
	CardID              int64   `json:"-"`
	CategoryID          int64   `json:"-"`
	Category            string  `json:"category"`
	Multiplier          float64 `json:"multiplier"`
	CapCents            *int64  `json:"cap_cents,omitempty"`
	StartDate           *string `json:"start_date,omitempty"`
	EndDate             *string `json:"end_date,omitempty"`
	IntroDurationMonths *int    `json:"intro_duration_months,omitempty"`
	RequiresActivation  bool    `json:"requires_activation"`
	// Priority is stored but reserved: selection orders by cashback then
	// multiplier only.
	Priority int `json:"priority"`
}

// Transaction is an immutable fact written once per recommendation.
// Repeated identical purchases create distinct rows: every physical tap is
// its own transaction.
type Transaction struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"-"`
	CardID        int64     `json:"card_id"`
	AmountCents   int64     `json:"amount_cents"`
	Category      string    `json:"category"`
	MCCCode       string    `json:"mcc_code"`
	CashbackCents int64     `json:"cashback_cents"`
	Multiplier    float64   `json:"multiplier"`
	MerchantName  string    `json:"merchant_name,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Recommendation struct {
	RecommendedCardID int64   `json:"recommended_card_id"`
	CardName          string  `json:"card_name"`
	Issuer            string  `json:"issuer"`
	Multiplier        float64 `json:"multiplier"`
	CashbackCents     int64   `json:"cashback_cents"`
	Category          string  `json:"category"`
	Reason            string  `json:"reason"`
	TransactionID     int64   `json:"transaction_id,omitempty"`
}

// ScrapedReward holds raw promotional copy pulled from an issuer page plus
// whatever the parser could extract from it. Advisory only: never consumed
// by the recommendation engine.
type ScrapedReward struct {
	ID               int64     `json:"id"`
	Issuer           string    `json:"issuer"`
	CardName         string    `json:"card_name"`
	RawText          string    `json:"raw_text"`
	ParsedCategory   *string   `json:"parsed_category"`
	ParsedMultiplier *float64  `json:"parsed_multiplier"`
	ParsedEndDate    *string   `json:"parsed_end_date"`
	ScrapedAt        time.Time `json:"scraped_at"`
	Processed        bool      `json:"processed"`
}
