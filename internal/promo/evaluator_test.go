package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
)

func percentRule(id string, priority int, value int64) domain.PromoRule {
	return domain.PromoRule{
		ID:        id,
		Label:     "happy hours",
		Enabled:   true,
		Priority:  priority,
		Days:      []int{3},
		StartHour: 14,
		EndHour:   17,
		Type:      domain.DiscountPercent,
		Value:     value,
	}
}

func TestEvaluate_PercentDiscount(t *testing.T) {
	// Среда, 15:00, скидка 20% от 10000
	rules := []domain.PromoRule{percentRule("r1", 0, 20)}
	ctx := Context{Day: 3, Hour: 15, ServiceID: 42}

	eval := Evaluate(rules, ctx, 10000)

	require.True(t, eval.Applied)
	require.NotNil(t, eval.Rule)
	assert.Equal(t, "r1", eval.Rule.ID)
	assert.Equal(t, int64(10000), eval.OriginalPriceCents)
	assert.Equal(t, int64(2000), eval.DiscountCents)
	assert.Equal(t, int64(8000), eval.FinalPriceCents)
	assert.Equal(t, ReasonRuleMatched, eval.Reason)
}

func TestEvaluate_FixedDiscountClampedAtZero(t *testing.T) {
	rules := []domain.PromoRule{{
		ID:        "r1",
		Enabled:   true,
		Days:      []int{1},
		StartHour: 0,
		EndHour:   24,
		Type:      domain.DiscountFixed,
		Value:     5000,
	}}

	eval := Evaluate(rules, Context{Day: 1, Hour: 10, ServiceID: 1}, 3000)

	require.True(t, eval.Applied)
	assert.Equal(t, int64(3000), eval.DiscountCents)
	assert.Equal(t, int64(0), eval.FinalPriceCents)
}

func TestEvaluate_NonNegativeFinalPrice(t *testing.T) {
	rules := []domain.PromoRule{{
		ID:        "r1",
		Enabled:   true,
		Days:      []int{0, 1, 2, 3, 4, 5, 6},
		StartHour: 0,
		EndHour:   24,
		Type:      domain.DiscountPercent,
		Value:     250, // намеренно некорректный процент
	}}

	eval := Evaluate(rules, Context{Day: 2, Hour: 12, ServiceID: 7}, 1000)

	assert.GreaterOrEqual(t, eval.FinalPriceCents, int64(0))
	assert.Equal(t, int64(0), eval.FinalPriceCents)
}

func TestEvaluate_Matching(t *testing.T) {
	rule := percentRule("r1", 0, 10)
	rule.ServiceIDs = []int64{5, 6}

	tests := []struct {
		name    string
		ctx     Context
		applied bool
	}{
		{name: "matches day hour and service", ctx: Context{Day: 3, Hour: 14, ServiceID: 5}, applied: true},
		{name: "wrong day", ctx: Context{Day: 4, Hour: 14, ServiceID: 5}, applied: false},
		{name: "hour below window", ctx: Context{Day: 3, Hour: 13, ServiceID: 5}, applied: false},
		{name: "end hour is exclusive", ctx: Context{Day: 3, Hour: 17, ServiceID: 5}, applied: false},
		{name: "wrong service", ctx: Context{Day: 3, Hour: 15, ServiceID: 9}, applied: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate([]domain.PromoRule{rule}, tt.ctx, 10000)
			assert.Equal(t, tt.applied, eval.Applied)
			if !tt.applied {
				assert.Equal(t, ReasonNoMatchingRule, eval.Reason)
				assert.Equal(t, int64(10000), eval.FinalPriceCents)
			}
		})
	}
}

func TestEvaluate_EmptyServiceIDsAppliesToAll(t *testing.T) {
	rule := percentRule("r1", 0, 10)
	require.Empty(t, rule.ServiceIDs)

	eval := Evaluate([]domain.PromoRule{rule}, Context{Day: 3, Hour: 15, ServiceID: 12345}, 10000)
	assert.True(t, eval.Applied)
}

func TestEvaluate_DisabledRuleSkipped(t *testing.T) {
	rule := percentRule("r1", 0, 20)
	rule.Enabled = false

	eval := Evaluate([]domain.PromoRule{rule}, Context{Day: 3, Hour: 15, ServiceID: 1}, 10000)

	assert.False(t, eval.Applied)
	assert.Equal(t, ReasonNoMatchingRule, eval.Reason)
}

func TestEvaluate_NoRules(t *testing.T) {
	eval := Evaluate(nil, Context{Day: 3, Hour: 15, ServiceID: 1}, 10000)

	assert.False(t, eval.Applied)
	assert.Nil(t, eval.Rule)
	assert.Equal(t, ReasonNoRules, eval.Reason)
	assert.Equal(t, int64(10000), eval.FinalPriceCents)
}

func TestEvaluate_PriorityWins(t *testing.T) {
	rules := []domain.PromoRule{
		percentRule("b-rule", 5, 50),
		percentRule("a-rule", 1, 10),
	}

	eval := Evaluate(rules, Context{Day: 3, Hour: 15, ServiceID: 1}, 10000)

	require.True(t, eval.Applied)
	assert.Equal(t, "a-rule", eval.Rule.ID)
	assert.Equal(t, int64(9000), eval.FinalPriceCents)
}

func TestEvaluate_TieBreakByIDIsDeterministic(t *testing.T) {
	rules := []domain.PromoRule{
		percentRule("zzz", 1, 50),
		percentRule("aaa", 1, 10),
		percentRule("mmm", 1, 30),
	}

	first := Evaluate(rules, Context{Day: 3, Hour: 15, ServiceID: 1}, 10000)
	require.True(t, first.Applied)
	assert.Equal(t, "aaa", first.Rule.ID)

	// Повторные вызовы с теми же входными данными дают тот же результат
	for i := 0; i < 10; i++ {
		again := Evaluate(rules, Context{Day: 3, Hour: 15, ServiceID: 1}, 10000)
		assert.Equal(t, first.Rule.ID, again.Rule.ID)
		assert.Equal(t, first.FinalPriceCents, again.FinalPriceCents)
	}
}

func TestEvaluate_RoundingHalfUp(t *testing.T) {
	// 15% от 1990 = 298.5 -> 299
	rules := []domain.PromoRule{percentRule("r1", 0, 15)}

	eval := Evaluate(rules, Context{Day: 3, Hour: 15, ServiceID: 1}, 1990)

	assert.Equal(t, int64(299), eval.DiscountCents)
	assert.Equal(t, int64(1691), eval.FinalPriceCents)
}
