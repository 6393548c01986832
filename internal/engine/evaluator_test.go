// internal/engine/evaluator_test.go
package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calistaannelise/wallzy/internal/domain"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

var testDay = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func TestCashback(t *testing.T) {
	tests := []struct {
		name        string
		amountCents int64
		multiplier  float64
		capCents    *int64
		want        int64
	}{
		{"whole percent", 1000, 3, nil, 30},
		{"fractional result floors", 999, 3, nil, 29},
		{"fractional multiplier", 1000, 1.5, nil, 15},
		{"points multiplier", 1000, 2, nil, 20},
		{"zero amount", 0, 5, nil, 0},
		{"cap binds", 100000, 5, i64Ptr(2500), 2500},
		{"cap slack", 1000, 5, i64Ptr(2500), 50},
		{"cap equals raw", 1000, 5, i64Ptr(50), 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cashback(tt.amountCents, tt.multiplier, tt.capCents))
		})
	}
}

func TestEvaluateCategoryMatch(t *testing.T) {
	rules := []domain.Rule{
		{ID: 1, Category: "groceries", Multiplier: 6},
		{ID: 2, Category: "dining", Multiplier: 3},
	}

	outcome, ok := Evaluator{}.Evaluate(rules, "dining", 1000, testDay)
	require.True(t, ok)
	assert.Equal(t, int64(2), outcome.Rule.ID)
	assert.Equal(t, int64(30), outcome.CashbackCents)
}

func TestEvaluateWildcardAlwaysEligible(t *testing.T) {
	rules := []domain.Rule{
		{ID: 1, Category: "other", Multiplier: 1},
	}

	outcome, ok := Evaluator{}.Evaluate(rules, "dining", 1000, testDay)
	require.True(t, ok)
	assert.Equal(t, int64(10), outcome.CashbackCents)
}

func TestEvaluateDateWindow(t *testing.T) {
	tests := []struct {
		name      string
		startDate *string
		endDate   *string
		wantOK    bool
	}{
		{"no bounds", nil, nil, true},
		{"inside window", strPtr("2026-01-01"), strPtr("2026-06-30"), true},
		{"start day inclusive", strPtr("2026-03-15"), nil, true},
		{"end day inclusive", nil, strPtr("2026-03-15"), true},
		{"before start", strPtr("2026-03-16"), nil, false},
		{"after end", nil, strPtr("2026-03-14"), false},
		{"malformed start", strPtr("03/15/2026"), nil, false},
		{"malformed end", nil, strPtr("not-a-date"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := []domain.Rule{
				{Category: "dining", Multiplier: 3, StartDate: tt.startDate, EndDate: tt.endDate},
			}
			_, ok := Evaluator{}.Evaluate(rules, "dining", 1000, testDay)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestEvaluateTieBrokenByMultiplier(t *testing.T) {
	// 999 cents: 3% floors to 29, and a capped 5% rule lands on 29 too.
	rules := []domain.Rule{
		{ID: 1, Category: "dining", Multiplier: 3},
		{ID: 2, Category: "dining", Multiplier: 5, CapCents: i64Ptr(29)},
	}

	outcome, ok := Evaluator{}.Evaluate(rules, "dining", 999, testDay)
	require.True(t, ok)
	assert.Equal(t, int64(2), outcome.Rule.ID)
	assert.Equal(t, int64(29), outcome.CashbackCents)
}

func TestEvaluatePriorityIgnored(t *testing.T) {
	rules := []domain.Rule{
		{ID: 1, Category: "dining", Multiplier: 2, Priority: 100},
		{ID: 2, Category: "dining", Multiplier: 3, Priority: 0},
	}

	outcome, ok := Evaluator{}.Evaluate(rules, "dining", 1000, testDay)
	require.True(t, ok)
	assert.Equal(t, int64(2), outcome.Rule.ID)
}

func TestEvaluateActivationGate(t *testing.T) {
	rules := []domain.Rule{
		{ID: 1, Category: "dining", Multiplier: 5, RequiresActivation: true},
		{ID: 2, Category: "dining", Multiplier: 2},
	}

	outcome, ok := Evaluator{}.Evaluate(rules, "dining", 1000, testDay)
	require.True(t, ok)
	assert.Equal(t, int64(1), outcome.Rule.ID, "activation not enforced by default")

	outcome, ok = Evaluator{EnforceActivation: true}.Evaluate(rules, "dining", 1000, testDay)
	require.True(t, ok)
	assert.Equal(t, int64(2), outcome.Rule.ID)
}

func TestEvaluateNoApplicableRule(t *testing.T) {
	rules := []domain.Rule{
		{Category: "travel", Multiplier: 3},
	}

	_, ok := Evaluator{}.Evaluate(rules, "dining", 1000, testDay)
	assert.False(t, ok)
}
