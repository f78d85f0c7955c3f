package models

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
)

// Request модели

// GetConfigRequest запрос на получение конфигураций бизнеса
type GetConfigRequest struct {
	BusinessID int64 `json:"businessId"`
}

// UpdateConfigRequest запрос на создание/обновление конфигурации
// BarberID = nil означает общую конфигурацию бизнеса
type UpdateConfigRequest struct {
	UserID              int64  `json:"userId"`
	BusinessID          int64  `json:"businessId"`
	BarberID            *int64 `json:"barberId,omitempty"`
	SlotIntervalMinutes int    `json:"slotIntervalMinutes"`
	BufferMinutes       int    `json:"bufferMinutes"`
	AdvanceBookingDays  int    `json:"advanceBookingDays"`
	MinNoticeMinutes    int    `json:"minNoticeMinutes"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации
type ConfigResponse struct {
	ID                  int64     `json:"id"`
	BusinessID          int64     `json:"businessId"`
	BarberID            *int64    `json:"barberId,omitempty"`
	SlotIntervalMinutes int       `json:"slotIntervalMinutes"`
	BufferMinutes       int       `json:"bufferMinutes"`
	AdvanceBookingDays  int       `json:"advanceBookingDays"`
	MinNoticeMinutes    int       `json:"minNoticeMinutes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций бизнеса
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BookingConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                  c.ID,
		BusinessID:          c.BusinessID,
		BarberID:            c.BarberID,
		SlotIntervalMinutes: c.SlotIntervalMinutes,
		BufferMinutes:       c.BufferMinutes,
		AdvanceBookingDays:  c.AdvanceBookingDays,
		MinNoticeMinutes:    c.MinNoticeMinutes,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.BookingConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}
