package evaluate_promo

import (
	"strconv"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	evaluatePromo "github.com/trimly/Trimly-SchedulingService/internal/usecase/evaluate_promo"
	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// PromoEvaluationResponse HTTP ответ с результатом оценки промо-правил
type PromoEvaluationResponse struct {
	BusinessID         int64   `json:"businessId"`
	ServiceID          int64   `json:"serviceId"`
	Applied            bool    `json:"applied"`
	RuleID             *string `json:"ruleId,omitempty"`
	RuleLabel          *string `json:"ruleLabel,omitempty"`
	OriginalPriceCents int64   `json:"originalPriceCents"`
	FinalPriceCents    int64   `json:"finalPriceCents"`
	DiscountCents      int64   `json:"discountCents"`
	Reason             string  `json:"reason"`
}

// ToUseCaseRequest формирует запрос use case из URL и query параметров
func ToUseCaseRequest(businessID int64, serviceIDStr, dateStr, timeStr string) (*evaluatePromo.Request, error) {
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	return &evaluatePromo.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *evaluatePromo.Response) *PromoEvaluationResponse {
	return &PromoEvaluationResponse{
		BusinessID:         resp.BusinessID,
		ServiceID:          resp.ServiceID,
		Applied:            resp.Applied,
		RuleID:             resp.RuleID,
		RuleLabel:          resp.RuleLabel,
		OriginalPriceCents: resp.OriginalPriceCents,
		FinalPriceCents:    resp.FinalPriceCents,
		DiscountCents:      resp.DiscountCents,
		Reason:             resp.Reason,
	}
}
