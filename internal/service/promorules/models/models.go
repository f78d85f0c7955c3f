package models

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
)

// Request модели

// PromoRuleInput данные одного правила в запросе на замену набора
// ID опционален: при отсутствии сервис генерирует новый UUID
type PromoRuleInput struct {
	ID         *string `json:"id,omitempty"`
	Label      string  `json:"label"`
	Enabled    bool    `json:"enabled"`
	Priority   int     `json:"priority"`
	Days       []int   `json:"days"`
	StartHour  int     `json:"startHour"`
	EndHour    int     `json:"endHour"`
	Type       string  `json:"type"`  // "percent" | "fixed"
	Value      int64   `json:"value"` // Процент для percent, сумма в центах для fixed
	ServiceIDs []int64 `json:"serviceIds,omitempty"`
}

// ReplaceRulesRequest запрос на полную замену набора правил бизнеса
type ReplaceRulesRequest struct {
	UserID     int64            `json:"userId"`
	BusinessID int64            `json:"businessId"`
	Rules      []PromoRuleInput `json:"rules"`
}

// ListRulesRequest запрос на получение набора правил бизнеса
type ListRulesRequest struct {
	BusinessID int64 `json:"businessId"`
}

// Response модели

// PromoRuleResponse ответ с данными правила
type PromoRuleResponse struct {
	ID         string    `json:"id"`
	BusinessID int64     `json:"businessId"`
	Label      string    `json:"label"`
	Enabled    bool      `json:"enabled"`
	Priority   int       `json:"priority"`
	Days       []int     `json:"days"`
	StartHour  int       `json:"startHour"`
	EndHour    int       `json:"endHour"`
	Type       string    `json:"type"`
	Value      int64     `json:"value"`
	ServiceIDs []int64   `json:"serviceIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PromoRuleListResponse ответ со списком правил
type PromoRuleListResponse struct {
	Rules []PromoRuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.PromoRule) *PromoRuleResponse {
	if r == nil {
		return nil
	}

	days := r.Days
	if days == nil {
		days = []int{}
	}
	serviceIDs := r.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}

	return &PromoRuleResponse{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		Label:      r.Label,
		Enabled:    r.Enabled,
		Priority:   r.Priority,
		Days:       days,
		StartHour:  r.StartHour,
		EndHour:    r.EndHour,
		Type:       string(r.Type),
		Value:      r.Value,
		ServiceIDs: serviceIDs,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.PromoRule) *PromoRuleListResponse {
	resp := &PromoRuleListResponse{
		Rules: make([]PromoRuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules = append(resp.Rules, *ruleResp)
		}
	}

	return resp
}
