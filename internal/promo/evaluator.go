package promo

import (
	"math"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
)

// Reason причина результата оценки промо-правил
type Reason string

const (
	// ReasonRuleMatched правило подобрано, скидка применена
	ReasonRuleMatched Reason = "rule_matched"

	// ReasonNoMatchingRule активные правила есть, но ни одно не подошло под контекст
	ReasonNoMatchingRule Reason = "no_matching_rule"

	// ReasonNoRules у бизнеса нет ни одного промо-правила
	ReasonNoRules Reason = "no_rules"
)

// Context контекст бронирования для оценки промо-правил
type Context struct {
	Day       int // День недели 0 (воскресенье) .. 6 (суббота)
	Hour      int // Час начала записи (0..23)
	ServiceID int64
}

// Evaluation результат оценки промо-правил; чистое вычисление, нигде не сохраняется
type Evaluation struct {
	Applied            bool
	Rule               *domain.PromoRule
	OriginalPriceCents int64
	FinalPriceCents    int64
	DiscountCents      int64
	Reason             Reason
}

// Evaluate подбирает промо-правило под контекст бронирования и вычисляет итоговую цену.
//
// Из правил отбираются включённые, действующие в день ctx.Day, в часовом окне
// [StartHour, EndHour) и применимые к услуге. Из подошедших выбирается правило
// с минимальным Priority; при равенстве выигрывает меньший ID (лексикографически),
// поэтому повторная оценка с теми же входными данными детерминирована.
//
// Скидка: для percent - round(цена * Value / 100), для fixed - Value напрямую.
// Итоговая цена ограничена снизу нулём.
func Evaluate(rules []domain.PromoRule, ctx Context, originalPriceCents int64) Evaluation {
	if len(rules) == 0 {
		return Evaluation{
			OriginalPriceCents: originalPriceCents,
			FinalPriceCents:    originalPriceCents,
			Reason:             ReasonNoRules,
		}
	}

	var matched *domain.PromoRule
	for i := range rules {
		r := &rules[i]
		if !r.Enabled {
			continue
		}
		if !r.AppliesOnDay(ctx.Day) || !r.AppliesAtHour(ctx.Hour) || !r.AppliesToService(ctx.ServiceID) {
			continue
		}
		if matched == nil || betterThan(r, matched) {
			matched = r
		}
	}

	if matched == nil {
		return Evaluation{
			OriginalPriceCents: originalPriceCents,
			FinalPriceCents:    originalPriceCents,
			Reason:             ReasonNoMatchingRule,
		}
	}

	discount := discountCents(matched, originalPriceCents)
	if discount > originalPriceCents {
		discount = originalPriceCents
	}

	return Evaluation{
		Applied:            true,
		Rule:               matched,
		OriginalPriceCents: originalPriceCents,
		FinalPriceCents:    originalPriceCents - discount,
		DiscountCents:      discount,
		Reason:             ReasonRuleMatched,
	}
}

// betterThan проверяет, что правило a приоритетнее правила b
func betterThan(a, b *domain.PromoRule) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.ID < b.ID
}

// discountCents вычисляет размер скидки без ограничения сверху
func discountCents(rule *domain.PromoRule, originalPriceCents int64) int64 {
	switch rule.Type {
	case domain.DiscountPercent:
		return int64(math.Round(float64(originalPriceCents) * float64(rule.Value) / 100.0))
	case domain.DiscountFixed:
		return rule.Value
	default:
		return 0
	}
}
