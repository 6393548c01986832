// internal/engine/evaluator.go
package engine

import (
	"math"
	"time"

	"github.com/calistaannelise/wallzy/internal/domain"
	"github.com/calistaannelise/wallzy/internal/mcc"
)

const dateLayout = "2006-01-02"

// Evaluator applies a card's reward rules to a purchase.
type Evaluator struct {
	// EnforceActivation excludes rules flagged requires_activation. Off by
	// default: the flag is then carried as plain data and such rules
	// compete like any other.
	EnforceActivation bool
}

// RuleOutcome is the winning rule for one card plus its capped cashback.
type RuleOutcome struct {
	Rule          domain.Rule
	CashbackCents int64
}

// Evaluate filters the rules applicable to the purchase and returns the
// best one: greatest capped cashback, ties broken by greater multiplier.
// Rule.Priority is not consulted. Returns ok=false when no rule survives
// filtering, meaning the card offers no reward for this purchase.
func (e Evaluator) Evaluate(rules []domain.Rule, category string, amountCents int64, asOf time.Time) (RuleOutcome, bool) {
	var best RuleOutcome
	found := false
	for _, rule := range rules {
		if rule.Category != category && rule.Category != mcc.Fallback {
			continue
		}
		if !activeAt(rule, asOf) {
			continue
		}
		if e.EnforceActivation && rule.RequiresActivation {
			continue
		}
		cashback := Cashback(amountCents, rule.Multiplier, rule.CapCents)
		if !found || cashback > best.CashbackCents ||
			(cashback == best.CashbackCents && rule.Multiplier > best.Rule.Multiplier) {
			best = RuleOutcome{Rule: rule, CashbackCents: cashback}
			found = true
		}
	}
	return best, found
}

// activeAt reports whether the rule is active on the given date. Both
// bounds are inclusive. An unparsable bound deactivates the rule rather
// than failing the whole recommendation.
func activeAt(rule domain.Rule, asOf time.Time) bool {
	day := dateOnly(asOf)
	if rule.StartDate != nil {
		start, err := time.Parse(dateLayout, *rule.StartDate)
		if err != nil || day.Before(start) {
			return false
		}
	}
	if rule.EndDate != nil {
		end, err := time.Parse(dateLayout, *rule.EndDate)
		if err != nil || day.After(end) {
			return false
		}
	}
	return true
}

// Cashback computes floor(amount * multiplier / 100) in cents, bounded by
// the cap when one is set.
func Cashback(amountCents int64, multiplier float64, capCents *int64) int64 {
	raw := int64(math.Floor(float64(amountCents) * multiplier / 100))
	if capCents != nil && raw > *capCents {
		return *capCents
	}
	return raw
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
