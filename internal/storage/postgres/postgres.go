// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calistaannelise/wallzy/internal/domain"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// === UserStorage ===

func (s *Storage) CreateUser(ctx context.Context, email, name, passwordHash string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, name, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrEmailTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.Query(ctx, `SELECT id, email, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// === CardStorage ===

func (s *Storage) CreateCard(ctx context.Context, card domain.Card) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO cards (user_id, issuer, card_name, last_four)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, card.UserID, card.Issuer, card.CardName, card.LastFour).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create card: %w", err)
	}
	return id, nil
}

func (s *Storage) CardByID(ctx context.Context, id int64) (*domain.Card, error) {
	var card domain.Card
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, issuer, card_name, last_four FROM cards WHERE id = $1
	`, id).Scan(&card.ID, &card.UserID, &card.Issuer, &card.CardName, &card.LastFour)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	return &card, nil
}

func (s *Storage) CardsForUser(ctx context.Context, userID int64) ([]domain.Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, issuer, card_name, last_four
		FROM cards
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("cards for user: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(&card.ID, &card.UserID, &card.Issuer, &card.CardName, &card.LastFour); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// === CategoryStorage ===

func (s *Storage) CreateCategoryIfNotExists(ctx context.Context, name string, mccCodes []string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO categories (name, mcc_codes)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, strings.Join(mccCodes, ",")).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create or get category: %w", err)
	}
	return id, nil
}

func (s *Storage) CategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var (
		cat   domain.Category
		codes string
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, name, mcc_codes FROM categories WHERE name = $1
	`, name).Scan(&cat.ID, &cat.Name, &codes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	cat.MCCCodes = splitCodes(codes)
	return &cat, nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, mcc_codes FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var (
			cat   domain.Category
			codes string
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &codes); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cat.MCCCodes = splitCodes(codes)
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// === RuleStorage ===

func (s *Storage) CreateRule(ctx context.Context, rule domain.Rule) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO card_rules
			(card_id, category_id, multiplier, cap_cents, start_date, end_date,
			 intro_duration_months, requires_activation, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, rule.CardID, rule.CategoryID, rule.Multiplier, rule.CapCents,
		rule.StartDate, rule.EndDate, rule.IntroDurationMonths,
		rule.RequiresActivation, rule.Priority).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create rule: %w", err)
	}
	return id, nil
}

// RulesForCard resolves the category name with an explicit join; rules
// reference categories by id only.
func (s *Storage) RulesForCard(ctx context.Context, cardID int64) ([]domain.Rule, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.card_id, r.category_id, c.name,
		       r.multiplier, r.cap_cents, r.start_date, r.end_date,
		       r.intro_duration_months, r.requires_activation, r.priority
		FROM card_rules r
		JOIN categories c ON c.id = r.category_id
		WHERE r.card_id = $1
		ORDER BY r.id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("rules for card: %w", err)
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		var rule domain.Rule
		if err := rows.Scan(&rule.ID, &rule.CardID, &rule.CategoryID, &rule.Category,
			&rule.Multiplier, &rule.CapCents, &rule.StartDate, &rule.EndDate,
			&rule.IntroDurationMonths, &rule.RequiresActivation, &rule.Priority); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// === TransactionStorage ===

// InsertTransaction writes exactly one row; a failed insert leaves nothing
// behind. No dedup: identical purchases are distinct transactions.
func (s *Storage) InsertTransaction(ctx context.Context, tx domain.Transaction) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO transactions
			(user_id, card_id, amount_cents, category, mcc_code,
			 cashback_cents, multiplier, merchant_name, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, tx.UserID, tx.CardID, tx.AmountCents, tx.Category, tx.MCCCode,
		tx.CashbackCents, tx.Multiplier, tx.MerchantName, tx.Description,
		tx.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

func (s *Storage) TransactionsForUser(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, card_id, amount_cents, category, mcc_code,
		       cashback_cents, multiplier, merchant_name, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("transactions for user: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.CardID, &tx.AmountCents,
			&tx.Category, &tx.MCCCode, &tx.CashbackCents, &tx.Multiplier,
			&tx.MerchantName, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// === RewardStorage ===

func (s *Storage) InsertScrapedReward(ctx context.Context, reward domain.ScrapedReward) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO scraped_rewards
			(issuer, card_name, raw_text, parsed_category, parsed_multiplier,
			 parsed_end_date, scraped_at, processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, reward.Issuer, reward.CardName, reward.RawText, reward.ParsedCategory,
		reward.ParsedMultiplier, reward.ParsedEndDate, reward.ScrapedAt,
		reward.Processed).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert scraped reward: %w", err)
	}
	return id, nil
}

func (s *Storage) ListScrapedRewards(ctx context.Context, limit int) ([]domain.ScrapedReward, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, issuer, card_name, raw_text, parsed_category,
		       parsed_multiplier, parsed_end_date, scraped_at, processed
		FROM scraped_rewards
		ORDER BY scraped_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list scraped rewards: %w", err)
	}
	defer rows.Close()

	var rewards []domain.ScrapedReward
	for rows.Next() {
		var r domain.ScrapedReward
		if err := rows.Scan(&r.ID, &r.Issuer, &r.CardName, &r.RawText,
			&r.ParsedCategory, &r.ParsedMultiplier, &r.ParsedEndDate,
			&r.ScrapedAt, &r.Processed); err != nil {
			return nil, fmt.Errorf("scan scraped reward: %w", err)
		}
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

func splitCodes(codes string) []string {
	if codes == "" {
		return nil
	}
	return strings.Split(codes, ",")
}
