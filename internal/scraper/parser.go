// internal/scraper/parser.go
package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedReward is what the free-text parser could extract from one piece
// of promotional copy. Category and EndDate are empty when not detected;
// CapCents is 0 when no cap was found.
type ParsedReward struct {
	Multiplier float64
	Category   string
	EndDate    string // YYYY-MM-DD
	CapCents   int64
}

var (
	percentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	pointsRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*points?\s*(?:per|for|/)\s*\$1`)
	capRe     = regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)until\s+(\w+\s+\d{1,2},?\s+\d{4})`),
		regexp.MustCompile(`(?i)through\s+(\w+\s+\d{1,2},?\s+\d{4})`),
		regexp.MustCompile(`(?i)expires?\s+(\w+\s+\d{1,2},?\s+\d{4})`),
	}

	// Ordered: first matching category wins, with the catch-all phrasing
	// last so "all other purchases" only applies when nothing specific hit.
	categoryPatterns = []struct {
		name string
		re   *regexp.Regexp
	}{
		{"dining", regexp.MustCompile(`(?i)\b(dining|restaurants?|food)\b`)},
		{"groceries", regexp.MustCompile(`(?i)\b(grocery|groceries|supermarket)\b`)},
		{"gas", regexp.MustCompile(`(?i)\b(gas|fuel|gas stations?)\b`)},
		{"online_shopping", regexp.MustCompile(`(?i)\b(online shopping|online purchases?)\b`)},
		{"drugstores", regexp.MustCompile(`(?i)\b(drug stores?|pharmacy|pharmacies)\b`)},
		{"entertainment", regexp.MustCompile(`(?i)\b(entertainment|movies?|concerts?)\b`)},
		{"streaming", regexp.MustCompile(`(?i)\b(streaming|subscription)\b`)},
		{"other", regexp.MustCompile(`(?i)(all other|everything else|other purchases|all purchases|for all|on all|unlimited)`)},
	}
)

// ParseRewardText extracts multiplier, category, quarterly cap and end
// date from reward copy. Returns nil when no multiplier is present: a
// reward we cannot quantify is not worth storing as parsed.
func ParseRewardText(text string) *ParsedReward {
	p := &ParsedReward{}

	if m := percentRe.FindStringSubmatch(text); m != nil {
		p.Multiplier, _ = strconv.ParseFloat(m[1], 64)
	}
	// Points-per-dollar phrasing wins over a stray percent elsewhere in
	// the text.
	if m := pointsRe.FindStringSubmatch(text); m != nil {
		p.Multiplier, _ = strconv.ParseFloat(m[1], 64)
	}

	for _, cp := range categoryPatterns {
		if cp.re.MatchString(text) {
			p.Category = cp.name
			break
		}
	}

	// Dollar amounts only count as caps when the copy talks quarters.
	if m := capRe.FindStringSubmatch(text); m != nil && strings.Contains(strings.ToLower(text), "quarter") {
		if amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			p.CapCents = int64(amount * 100)
		}
	}

	for _, re := range datePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if date, ok := parseLongDate(m[1]); ok {
			p.EndDate = date
			break
		}
	}

	if p.Multiplier == 0 {
		return nil
	}
	return p
}

func parseLongDate(s string) (string, bool) {
	for _, layout := range []string{"January 2, 2006", "January 2 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}
