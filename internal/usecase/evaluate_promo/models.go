package evaluate_promo

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// Request модель запроса на оценку промо-правил
type Request struct {
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата предполагаемой записи
	StartTime  types.TimeString // Время начала (например, "10:00")
}

// Response модель ответа с результатом оценки
type Response struct {
	BusinessID         int64   // ID бизнеса
	ServiceID          int64   // ID услуги
	Applied            bool    // Применено ли какое-либо правило
	RuleID             *string // ID применённого правила
	RuleLabel          *string // Название применённого правила
	OriginalPriceCents int64   // Цена услуги без скидки
	FinalPriceCents    int64   // Итоговая цена
	DiscountCents      int64   // Размер скидки
	Reason             string  // rule_matched | no_matching_rule | no_rules
}
