package absences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	absenceRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/absence"
	businessClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/internal/service/absences/models"
)

// Service сервис для управления периодами отсутствия мастеров
type Service struct {
	absenceRepo    AbsenceRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса отсутствий
func NewService(
	absenceRepo AbsenceRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *Service {
	return &Service{
		absenceRepo:    absenceRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// Create создает новый период отсутствия мастера
// Доступно только менеджерам бизнеса
func (s *Service) Create(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("Create: creating absence for business=%d, barber=%d, user=%d",
		req.BusinessID, req.BarberID, req.UserID)

	business, err := s.getBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	if !business.IsManager(req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	if !business.HasBarber(req.BarberID) {
		s.logger.Warn("Create: barber=%d not found in business=%d", req.BarberID, req.BusinessID)
		return nil, ErrBarberNotFound
	}

	startsAt, endsAt, err := normalizeInterval(req)
	if err != nil {
		s.logger.Warn("Create: invalid interval for barber=%d: %v", req.BarberID, err)
		return nil, err
	}

	absence := &domain.StaffAbsence{
		BusinessID: req.BusinessID,
		BarberID:   req.BarberID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		AllDay:     req.AllDay,
		Reason:     req.Reason,
	}

	created, err := s.absenceRepo.Create(ctx, absence)
	if err != nil {
		s.logger.Error("Create: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created absence id=%d for barber=%d", created.ID, req.BarberID)
	return models.FromDomainAbsence(created), nil
}

// Delete удаляет период отсутствия
// Доступно только менеджерам бизнеса
func (s *Service) Delete(ctx context.Context, req *models.DeleteAbsenceRequest) error {
	s.logger.Info("Delete: deleting absence id=%d for business=%d, user=%d",
		req.AbsenceID, req.BusinessID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return err
	}

	if err := s.absenceRepo.Delete(ctx, req.BusinessID, req.AbsenceID); err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			s.logger.Warn("Delete: absence id=%d not found for business=%d", req.AbsenceID, req.BusinessID)
			return ErrAbsenceNotFound
		}
		s.logger.Error("Delete: repository error for absence id=%d: %v", req.AbsenceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted absence id=%d", req.AbsenceID)
	return nil
}

// List получает периоды отсутствия бизнеса
// Опционально фильтрует по мастеру. Доступно только менеджерам бизнеса.
func (s *Service) List(ctx context.Context, req *models.ListAbsencesRequest) (*models.AbsenceListResponse, error) {
	s.logger.Info("List: fetching absences for business=%d, user=%d", req.BusinessID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	absences, err := s.absenceRepo.ListForBusiness(ctx, req.BusinessID, req.BarberID)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d absences for business=%d", len(absences), req.BusinessID)
	return models.FromDomainAbsenceList(absences), nil
}

// normalizeInterval валидирует интервал отсутствия и нормализует all-day границы
// All-day интервал расширяется до полных дней: [00:00 первого дня, 00:00 дня после последнего)
func normalizeInterval(req *models.CreateAbsenceRequest) (time.Time, time.Time, error) {
	startsAt := req.StartsAt
	endsAt := req.EndsAt

	if req.AllDay {
		startsAt = time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, startsAt.Location())
		endDay := time.Date(endsAt.Year(), endsAt.Month(), endsAt.Day(), 0, 0, 0, 0, endsAt.Location())
		endsAt = endDay.AddDate(0, 0, 1)
	}

	if !startsAt.Before(endsAt) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startsAt must be before endsAt", ErrInvalidInterval)
	}

	return startsAt, endsAt, nil
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
