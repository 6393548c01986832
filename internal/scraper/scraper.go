// internal/scraper/scraper.go
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sethvargo/go-retry"
)

const (
	defaultBaseURL = "https://www.bankofamerica.com"
	issuerName     = "Bank of America"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// cardPages is ordered so repeated runs visit pages in the same order.
var cardPages = []struct {
	CardName string
	Path     string
}{
	{"Customized Cash Rewards", "/en-us/credit-cards/products/cash-back-credit-card/"},
	{"Premium Rewards", "/en-us/credit-cards/products/premium-rewards-credit-card/"},
	{"Unlimited Cash Rewards", "/en-us/credit-cards/products/unlimited-cash-back-credit-card/"},
	{"Travel Rewards", "/en-us/credit-cards/products/travel-rewards-credit-card/"},
}

var rewardSelectors = []string{
	`div[class*="reward"]`,
	`div[class*="benefit"]`,
	`div[class*="cash-back"]`,
	`p[class*="reward"]`,
	`li[class*="benefit"]`,
	`span[class*="percent"]`,
}

var rewardKeywords = []string{"%", "cash", "points", "reward", "bonus"}

// RawReward is one piece of promotional copy lifted from an issuer page.
type RawReward struct {
	Issuer    string
	CardName  string
	RawText   string
	ScrapedAt time.Time
}

type Scraper struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Scraper{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ScrapeRewards visits every known card page. A page that cannot be
// fetched falls back to canned copy so the pipeline downstream always has
// something to parse.
func (s *Scraper) ScrapeRewards(ctx context.Context) []RawReward {
	var rewards []RawReward
	for _, page := range cardPages {
		scraped, err := s.scrapeCard(ctx, page.CardName, s.baseURL+page.Path)
		if err != nil {
			slog.Warn("scrape failed, using fallback copy", "card", page.CardName, "error", err)
			rewards = append(rewards, fallbackRewards(page.CardName)...)
			continue
		}
		rewards = append(rewards, scraped...)
	}
	return rewards
}

func (s *Scraper) scrapeCard(ctx context.Context, cardName, url string) ([]RawReward, error) {
	var doc *goquery.Document

	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	return extractRewards(doc, cardName), nil
}

func extractRewards(doc *goquery.Document, cardName string) []RawReward {
	var out []RawReward
	now := time.Now()
	seen := make(map[string]bool)

	for _, sel := range rewardSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text == "" || seen[text] || !mentionsReward(text) {
				return
			}
			seen[text] = true
			out = append(out, RawReward{
				Issuer:    issuerName,
				CardName:  cardName,
				RawText:   text,
				ScrapedAt: now,
			})
		})
	}
	return out
}

func mentionsReward(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range rewardKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
