// internal/engine/selector.go
package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/calistaannelise/wallzy/internal/domain"
)

// CardRules pairs a card with its reward rules, loaded up front by the
// caller. The engine itself never touches storage here.
type CardRules struct {
	Card  domain.Card
	Rules []domain.Rule
}

// SelectBest evaluates every card and picks the global maximum by capped
// cashback, then multiplier. Ties beyond that keep the first card in input
// order, so a fixed input ordering yields a fixed recommendation.
func (e Evaluator) SelectBest(cards []CardRules, category string, amountCents int64, asOf time.Time) (domain.Recommendation, error) {
	if len(cards) == 0 {
		return domain.Recommendation{}, domain.ErrNoCards
	}

	var (
		bestCard    domain.Card
		bestOutcome RuleOutcome
		found       bool
	)
	for _, cr := range cards {
		outcome, ok := e.Evaluate(cr.Rules, category, amountCents, asOf)
		if !ok {
			continue
		}
		if !found || outcome.CashbackCents > bestOutcome.CashbackCents ||
			(outcome.CashbackCents == bestOutcome.CashbackCents &&
				outcome.Rule.Multiplier > bestOutcome.Rule.Multiplier) {
			bestCard = cr.Card
			bestOutcome = outcome
			found = true
		}
	}
	if !found {
		return domain.Recommendation{}, domain.ErrNoApplicableCard
	}

	return domain.Recommendation{
		RecommendedCardID: bestCard.ID,
		CardName:          bestCard.CardName,
		Issuer:            bestCard.Issuer,
		Multiplier:        bestOutcome.Rule.Multiplier,
		CashbackCents:     bestOutcome.CashbackCents,
		Category:          category,
		Reason:            reason(bestOutcome.Rule),
	}, nil
}

// reason names the rule's own category, so a wildcard win on a dining
// purchase reads "1% cashback on other".
func reason(rule domain.Rule) string {
	s := fmt.Sprintf("%s%% cashback on %s", formatMultiplier(rule.Multiplier), rule.Category)
	if rule.EndDate != nil {
		s += fmt.Sprintf(" (valid until %s)", *rule.EndDate)
	}
	return s
}

func formatMultiplier(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
