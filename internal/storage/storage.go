// internal/storage/storage.go
package storage

import (
	"context"

	"github.com/calistaannelise/wallzy/internal/domain"
)

type UserStorage interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (int64, error)
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	UserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type CardStorage interface {
	CreateCard(ctx context.Context, card domain.Card) (int64, error)
	CardByID(ctx context.Context, id int64) (*domain.Card, error)
	CardsForUser(ctx context.Context, userID int64) ([]domain.Card, error)
}

type CategoryStorage interface {
	CreateCategoryIfNotExists(ctx context.Context, name string, mccCodes []string) (int64, error)
	CategoryByName(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type RuleStorage interface {
	CreateRule(ctx context.Context, rule domain.Rule) (int64, error)
	RulesForCard(ctx context.Context, cardID int64) ([]domain.Rule, error)
}

type TransactionStorage interface {
	InsertTransaction(ctx context.Context, tx domain.Transaction) (int64, error)
	TransactionsForUser(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error)
}

type RewardStorage interface {
	InsertScrapedReward(ctx context.Context, reward domain.ScrapedReward) (int64, error)
	ListScrapedRewards(ctx context.Context, limit int) ([]domain.ScrapedReward, error)
}
