package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	configRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/config"
	businessClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/internal/service/config/models"
)

// Service сервис для управления конфигурацией бронирования
type Service struct {
	configRepo     ConfigRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:     configRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// Get получает все конфигурации бизнеса (общую и для мастеров)
// Публичная операция: параметры влияют на отображение календаря у клиента
func (s *Service) Get(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigListResponse, error) {
	s.logger.Info("Get: fetching booking configs for business=%d", req.BusinessID)

	// Проверяем существование бизнеса
	if _, err := s.getBusiness(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByBusiness(ctx, req.BusinessID)
	if err != nil {
		s.logger.Error("Get: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched %d configs for business=%d", len(configs), req.BusinessID)
	return models.FromDomainConfigList(configs), nil
}

// Update создает или обновляет конфигурацию бронирования
// BarberID = nil обновляет общую конфигурацию бизнеса,
// иначе конфигурацию конкретного мастера.
// Доступно только менеджерам бизнеса.
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating booking config for business=%d, barber=%v, user=%d",
		req.BusinessID, req.BarberID, req.UserID)

	business, err := s.getBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	if !business.IsManager(req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// Конфигурация мастера имеет смысл только для действующего мастера бизнеса
	if req.BarberID != nil && !business.HasBarber(*req.BarberID) {
		s.logger.Warn("Update: barber=%d not found in business=%d", *req.BarberID, req.BusinessID)
		return nil, ErrBarberNotFound
	}

	if err := validateConfigValues(req); err != nil {
		s.logger.Warn("Update: invalid config values for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	config := &domain.BookingConfig{
		BusinessID:          req.BusinessID,
		BarberID:            req.BarberID,
		SlotIntervalMinutes: req.SlotIntervalMinutes,
		BufferMinutes:       req.BufferMinutes,
		AdvanceBookingDays:  req.AdvanceBookingDays,
		MinNoticeMinutes:    req.MinNoticeMinutes,
	}

	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved booking config id=%d for business=%d", saved.ID, req.BusinessID)
	return models.FromDomainConfig(saved), nil
}

// validateConfigValues проверяет допустимость значений конфигурации
func validateConfigValues(req *models.UpdateConfigRequest) error {
	if req.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || req.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be in range %d..%d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}
	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be in range %d..%d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be in range %d..%d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if req.MinNoticeMinutes < domain.MinNoticeMinutesLow || req.MinNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minNoticeMinutes must be in range %d..%d",
			ErrInvalidInput, domain.MinNoticeMinutesLow, domain.MaxNoticeMinutes)
	}
	return nil
}

// getBusiness получает бизнес через BusinessService
func (s *Service) getBusiness(ctx context.Context, businessID int64) (*businessClient.Business, error) {
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("getBusiness: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("getBusiness: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.getBusiness(ctx, businessID)
	if err != nil {
		return err
	}

	if !business.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
