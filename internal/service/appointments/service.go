package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	apptRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/appointment"
	businessClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	apptRepo       AppointmentRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:       apptRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент видит только свою запись,
// менеджер бизнеса видит любые записи своего бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkClientAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.apptRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetBusinessAppointments получает записи бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусу и включению неактивных записей
// Доступно только менеджерам бизнеса
func (s *Service) GetBusinessAppointments(ctx context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetBusinessAppointments: fetching appointments for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.BarberID != nil {
		logMsg += fmt.Sprintf(", barber=%d", *req.BarberID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessAppointments: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем записи с фильтрацией
	appointments, err := s.apptRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: successfully fetched %d appointments for business=%d", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись (cancelled_by_client)
// Менеджер может отменить любую запись бизнеса (cancelled_by_business)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	// Получаем запись
	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.AppointmentStatus

	// Проверяем, является ли пользователь владельцем записи
	if appt.ClientID == req.UserID {
		cancelStatus = domain.StatusCancelledByClient
	} else {
		// Проверяем, является ли пользователь менеджером бизнеса
		if err := s.checkManagerAccess(ctx, appt.BusinessID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByBusiness
	}

	// Отменяем запись
	if err := s.apptRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только менеджерам бизнеса
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	// Получаем запись
	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, appt.BusinessID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.apptRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkClientAccess проверяет, что пользователь имеет доступ к записи
// Клиент видит свою запись, менеджер бизнеса - любую запись бизнеса
func (s *Service) checkClientAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	// Если пользователь владелец записи - доступ разрешён
	if appt.ClientID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером бизнеса
	if err := s.checkManagerAccess(ctx, appt.BusinessID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	// Получаем бизнес через BusinessService
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	if !business.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	s.logger.Info("checkManagerAccess: user=%d is manager of business=%d", userID, businessID)
	return nil
}
