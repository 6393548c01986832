// internal/mcc/mcc.go
package mcc

// Fallback is the catch-all category. It doubles as a wildcard: a rule
// tagged "other" applies to any purchase as the card's base rate.
const Fallback = "other"

// Simplified MCC table. Every code not listed here classifies as "other".
var categories = map[string][]string{
	"dining":    {"5811", "5812", "5813", "5814"},
	"groceries": {"5411", "5422", "5441", "5451", "5462"},
	"gas":       {"5541", "5542", "5983"},
	"travel": {"3000", "3001", "3002", "3003", "3004", "3005", "3006", "3007",
		"3008", "3009", "3010", "3011", "4511", "4722", "7011", "7512"},
	"entertainment":   {"7832", "7841", "7922", "7929", "7991", "7996", "7997", "7998", "7999"},
	"online_shopping": {"5309", "5310", "5311", "5331", "5399", "5732", "5733", "5734", "5735"},
	"drugstores":      {"5912", "5122"},
	"transit":         {"4111", "4112", "4131", "4784"},
	"streaming":       {"4899", "5815", "5816", "5817", "5818"},
	Fallback:          {},
}

var byCode = func() map[string]string {
	m := make(map[string]string)
	for name, codes := range categories {
		for _, code := range codes {
			m[code] = name
		}
	}
	return m
}()

// CategoryOf resolves an MCC code to a category name. Total function:
// unknown codes fall back to "other".
func CategoryOf(code string) string {
	if name, ok := byCode[code]; ok {
		return name
	}
	return Fallback
}

// CodesFor returns the MCC codes covered by a category, nil for unknown
// names.
func CodesFor(category string) []string {
	return categories[category]
}

// Categories returns a copy of the full category table.
func Categories() map[string][]string {
	out := make(map[string][]string, len(categories))
	for name, codes := range categories {
		out[name] = append([]string(nil), codes...)
	}
	return out
}
