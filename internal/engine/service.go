// internal/engine/service.go
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/calistaannelise/wallzy/internal/domain"
	"github.com/calistaannelise/wallzy/internal/mcc"
)

// Storage is the slice of the storage layer the engine needs: three reads
// and the single transaction write.
type Storage interface {
	CardsForUser(ctx context.Context, userID int64) ([]domain.Card, error)
	RulesForCard(ctx context.Context, cardID int64) ([]domain.Rule, error)
	InsertTransaction(ctx context.Context, tx domain.Transaction) (int64, error)
}

// Service wires the classifier, evaluator and recorder into the one
// operation the transports call.
type Service struct {
	store Storage
	eval  Evaluator
}

func NewService(store Storage, eval Evaluator) *Service {
	return &Service{store: store, eval: eval}
}

// Purchase is one inbound purchase event. Merchant name and description
// are cosmetic and land on the recorded transaction only.
type Purchase struct {
	UserID       int64
	MCCCode      string
	AmountCents  int64
	MerchantName string
	Description  string
}

// Recommend resolves the purchase category, picks the best card across the
// user's wallet and records the outcome as one immutable transaction.
// Returns domain.ErrNoCards / domain.ErrNoApplicableCard unchanged;
// storage failures are wrapped but never retried here.
func (s *Service) Recommend(ctx context.Context, p Purchase, asOf time.Time) (domain.Recommendation, error) {
	category := mcc.CategoryOf(p.MCCCode)

	cards, err := s.store.CardsForUser(ctx, p.UserID)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("load cards: %w", err)
	}
	if len(cards) == 0 {
		return domain.Recommendation{}, domain.ErrNoCards
	}

	cardRules := make([]CardRules, 0, len(cards))
	for _, card := range cards {
		rules, err := s.store.RulesForCard(ctx, card.ID)
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("load rules for card %d: %w", card.ID, err)
		}
		cardRules = append(cardRules, CardRules{Card: card, Rules: rules})
	}

	rec, err := s.eval.SelectBest(cardRules, category, p.AmountCents, asOf)
	if err != nil {
		return domain.Recommendation{}, err
	}

	txID, err := s.store.InsertTransaction(ctx, domain.Transaction{
		UserID:        p.UserID,
		CardID:        rec.RecommendedCardID,
		AmountCents:   p.AmountCents,
		Category:      category,
		MCCCode:       p.MCCCode,
		CashbackCents: rec.CashbackCents,
		Multiplier:    rec.Multiplier,
		MerchantName:  p.MerchantName,
		Description:   p.Description,
		CreatedAt:     asOf,
	})
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("record transaction: %w", err)
	}
	rec.TransactionID = txID

	slog.Debug("recommendation recorded",
		"user_id", p.UserID,
		"card_id", rec.RecommendedCardID,
		"category", category,
		"cashback_cents", rec.CashbackCents,
		"transaction_id", txID,
	)
	return rec, nil
}
