// cmd/bot/main.go
//
// Telegram front-end for quick wallet questions. The Telegram user id is
// used directly as the wallzy user id, so demo deployments seed users with
// matching ids.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/text/encoding/charmap"

	"github.com/calistaannelise/wallzy/internal/config"
	"github.com/calistaannelise/wallzy/internal/engine"
	"github.com/calistaannelise/wallzy/internal/storage/postgres"
)

const helpText = "💳 *wallzy*\n\n" +
	"Commands:\n" +
	"`/recommend 5812 45.00` — best card for MCC 5812, $45.00\n" +
	"`/cards` — list your cards\n" +
	"`/summary` — cards with reward rules"

func sanitizeInput(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}
	return strings.ToValidUTF8(s, "")
}

func main() {
	_ = godotenv.Load()

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}

	cfg := config.MustLoad()
	db, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	defer db.Close()

	store := postgres.NewStorage(db)
	recommender := engine.NewService(store, engine.Evaluator{})

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Panic(err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		chatID := update.Message.Chat.ID
		userID := update.Message.From.ID
		text := sanitizeInput(fixEncoding(strings.TrimSpace(update.Message.Text)))

		var msgText string
		var errHandle error

		switch {
		case text == "/start" || text == "/help":
			msgText = helpText

		case strings.HasPrefix(text, "/recommend"):
			msgText, errHandle = handleRecommend(recommender, cfg, userID, text)

		case text == "/cards":
			msgText, errHandle = handleCards(store, userID)

		case text == "/summary":
			msgText, errHandle = handleSummary(store, userID)

		default:
			msgText = "Unknown command. Try /help"
		}

		if errHandle != nil {
			msgText = "❌ Error: " + errHandle.Error()
		}

		msg := tgbotapi.NewMessage(chatID, msgText)
		msg.ParseMode = "Markdown"
		_, _ = bot.Send(msg)
	}
}

func handleRecommend(recommender *engine.Service, cfg config.Config, userID int64, text string) (string, error) {
	fields := strings.Fields(text)

	mccCode := "5999"
	amountCents := cfg.TapAmountCents
	if len(fields) > 1 {
		mccCode = fields[1]
	}
	if len(fields) > 2 {
		dollars, err := strconv.ParseFloat(fields[2], 64)
		if err != nil || dollars <= 0 {
			return "❌ Usage: /recommend <mcc> <amount>, e.g. `/recommend 5812 45.00`", nil
		}
		amountCents = int64(math.Round(dollars * 100))
	}

	rec, err := recommender.Recommend(context.Background(), engine.Purchase{
		UserID:      userID,
		MCCCode:     mccCode,
		AmountCents: amountCents,
		Description: "telegram query",
	}, time.Now())
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("💳 *%s* (%s)\nCategory: %s\nCashback: $%.2f\n%s",
		rec.CardName, rec.Issuer, rec.Category,
		float64(rec.CashbackCents)/100, rec.Reason), nil
}

func handleCards(store *postgres.Storage, userID int64) (string, error) {
	cards, err := store.CardsForUser(context.Background(), userID)
	if err != nil {
		return "", err
	}
	if len(cards) == 0 {
		return "📭 No cards yet", nil
	}

	var lines []string
	lines = append(lines, "💳 *Your cards*")
	for _, card := range cards {
		lines = append(lines, fmt.Sprintf("- %s %s ···%s", card.Issuer, card.CardName, card.LastFour))
	}
	return strings.Join(lines, "\n"), nil
}

func handleSummary(store *postgres.Storage, userID int64) (string, error) {
	cards, err := store.CardsForUser(context.Background(), userID)
	if err != nil {
		return "", err
	}
	if len(cards) == 0 {
		return "📭 No cards yet", nil
	}

	var lines []string
	lines = append(lines, "📊 *Wallet summary*")
	for _, card := range cards {
		lines = append(lines, fmt.Sprintf("\n*%s %s*", card.Issuer, card.CardName))
		rules, err := store.RulesForCard(context.Background(), card.ID)
		if err != nil {
			return "", err
		}
		if len(rules) == 0 {
			lines = append(lines, "- no reward rules")
			continue
		}
		for _, rule := range rules {
			line := fmt.Sprintf("- %s: %.1f%%", rule.Category, rule.Multiplier)
			if rule.CapCents != nil {
				line += fmt.Sprintf(" (cap $%.0f)", float64(*rule.CapCents)/100)
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}
