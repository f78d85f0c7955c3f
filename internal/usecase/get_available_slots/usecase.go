package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/availability"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	configRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/config"
	businessClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/pkg/ptr"
	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// UseCase use case для получения слотов календаря мастера
type UseCase struct {
	apptRepo       AppointmentRepository
	absenceRepo    AbsenceRepository
	configRepo     ConfigRepository
	businessClient BusinessServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	absenceRepo AbsenceRepository,
	configRepo ConfigRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:       apptRepo,
		absenceRepo:    absenceRepo,
		configRepo:     configRepo,
		businessClient: businessClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, barber=%d, service=%d, date=%s",
		req.BusinessID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в локации запрошенной даты
	now := uc.timeProvider.Now().In(req.Date.Location())

	// 3. Получаем бизнес
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Определяем мастеров, по которым считается доступность.
	// Без barberID слоты считаются по всем активным мастерам бизнеса:
	// слот доступен, если свободен хотя бы один из них.
	var barberIDs []int64
	if req.BarberID > 0 {
		if !business.HasBarber(req.BarberID) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found in business id=%d", req.BarberID, req.BusinessID)
			return nil, ErrBarberNotFound
		}
		barberIDs = []int64{req.BarberID}
	} else {
		barberIDs = business.ActiveBarberIDs()
		if len(barberIDs) == 0 {
			uc.logger.Info("GetAvailableSlots: business id=%d has no active barbers", req.BusinessID)
			return uc.emptyResponse(req), nil
		}
	}

	// 5. Получаем услугу
	service, err := uc.businessClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 6. Получаем конфигурацию бронирования с учетом иерархии.
	// Для запроса без мастера применяется конфигурация уровня бизнеса.
	var configBarberID *int64
	if req.BarberID > 0 {
		configBarberID = ptr.Ptr(req.BarberID)
	}
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.BusinessID, configBarberID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = domain.DefaultBookingConfig()
		uc.logger.Info("GetAvailableSlots: using default config for business=%d, barber=%d",
			req.BusinessID, req.BarberID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	// 7. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 8. Получаем рабочие часы на указанную дату
	schedule := business.WorkingHours.ForWeekday(req.Date.Weekday())
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		uc.logger.Info("GetAvailableSlots: business is closed on %s", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	windowStart, windowEnd, err := scheduleWindow(schedule, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid working hours for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid working hours: %v", ErrInternal, err)
	}

	// 9. Рассчитываем слоты по каждому мастеру и объединяем доступность.
	// Порог доступности - текущее время, сдвинутое на минимальный notice:
	// слот раньше now+minNotice забронировать уже нельзя.
	// Сетка слотов одинакова для всех мастеров (окно, шаг и длительность
	// общие), поэтому объединение выполняется по индексу.
	cutoff := now.Add(time.Duration(config.MinNoticeMinutes) * time.Minute)

	var merged []availability.Slot
	for i, barberID := range barberIDs {
		calculated, err := uc.barberSlots(ctx, req, barberID, windowStart, windowEnd, service, config, cutoff)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			merged = calculated
			continue
		}
		for j := range merged {
			if calculated[j].Available {
				merged[j].Available = true
			}
		}
	}

	slots := make([]Slot, 0, len(merged))
	for _, s := range merged {
		slots = append(slots, Slot{
			StartTime:       types.TimeString(s.Label),
			StartsAt:        s.StartsAt,
			DurationMinutes: service.DurationMinutes,
			Available:       s.Available,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%d, barber=%d, service=%d, date=%s",
		len(slots), req.BusinessID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}

// barberSlots рассчитывает сетку слотов одного мастера на запрошенную дату
func (uc *UseCase) barberSlots(
	ctx context.Context,
	req *Request,
	barberID int64,
	windowStart, windowEnd time.Time,
	service *businessClient.Service,
	config *domain.BookingConfig,
	cutoff time.Time,
) ([]availability.Slot, error) {
	filter := domain.BusinessAppointmentsFilter{
		BusinessID:      req.BusinessID,
		BarberID:        ptr.Ptr(barberID),
		StartDate:       ptr.Ptr(req.Date),
		EndDate:         ptr.Ptr(req.Date),
		IncludeInactive: false,
	}

	appointments, err := uc.apptRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	absences, err := uc.absenceRepo.ListForBarberOnDate(ctx, req.BusinessID, barberID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get absences for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get absences: %v", ErrInternal, err)
	}

	occupied := buildOccupied(appointments, absences, req.Date)

	return availability.CalculateSlots(
		windowStart,
		windowEnd,
		occupied,
		time.Duration(service.DurationMinutes)*time.Minute,
		time.Duration(config.BufferMinutes)*time.Minute,
		time.Duration(config.SlotIntervalMinutes)*time.Minute,
		cutoff,
	), nil
}

// emptyResponse возвращает ответ без слотов (выходной день)
func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Slots:      []Slot{},
	}
}

// scheduleWindow конвертирует рабочие часы дня в моменты начала и конца окна
func scheduleWindow(schedule businessClient.DaySchedule, date time.Time) (time.Time, time.Time, error) {
	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	windowStart, err := openTime.OnDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	windowEnd, err := closeTime.OnDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return windowStart, windowEnd, nil
}
