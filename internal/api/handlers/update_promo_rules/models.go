package update_promo_rules

import (
	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules/models"
)

// UpdatePromoRulesRequest HTTP request model
// Заменяет весь набор правил бизнеса целиком
type UpdatePromoRulesRequest struct {
	Rules []models.PromoRuleInput `json:"rules"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePromoRulesRequest) ToServiceRequest(businessID, userID int64) *models.ReplaceRulesRequest {
	return &models.ReplaceRulesRequest{
		UserID:     userID,
		BusinessID: businessID,
		Rules:      r.Rules,
	}
}
