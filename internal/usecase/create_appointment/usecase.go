package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/availability"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	configRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/config"
	businessClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/internal/promo"
	"github.com/trimly/Trimly-SchedulingService/pkg/ptr"
	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	apptRepo       AppointmentRepository
	absenceRepo    AbsenceRepository
	configRepo     ConfigRepository
	promoRepo      PromoRuleRepository
	businessClient BusinessServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	absenceRepo AbsenceRepository,
	configRepo ConfigRepository,
	promoRepo PromoRuleRepository,
	businessClient BusinessServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:       apptRepo,
		absenceRepo:    absenceRepo,
		configRepo:     configRepo,
		promoRepo:      promoRepo,
		businessClient: businessClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения двойного бронирования:
// конкурирующие записи к одному мастеру на пересекающиеся интервалы не проходят
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, business=%d, barber=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.BusinessID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в локации запрошенной даты
	now := uc.timeProvider.Now().In(req.Date.Location())

	// 3. Получаем бизнес
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Проверяем, что мастер работает в этом бизнесе
	if !business.HasBarber(req.BarberID) {
		uc.logger.Warn("CreateAppointment: barber id=%d not found in business id=%d", req.BarberID, req.BusinessID)
		return nil, ErrBarberNotFound
	}

	// 5. Получаем услугу
	service, err := uc.businessClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию бронирования с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.BusinessID, ptr.Ptr(req.BarberID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateAppointment: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = domain.DefaultBookingConfig()
			uc.logger.Info("CreateAppointment: using default config for business=%d, barber=%d",
				req.BusinessID, req.BarberID)
		} else {
			uc.logger.Info("CreateAppointment: using config id=%d", config.ID)
		}

		// 6.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 6.3. Проверяем рабочие часы на указанную дату
		schedule := business.WorkingHours.ForWeekday(req.Date.Weekday())
		if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
			uc.logger.Warn("CreateAppointment: business is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrBusinessClosed
		}

		windowStart, windowEnd, err := scheduleWindow(schedule, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: invalid working hours for business=%d: %v", req.BusinessID, err)
			return fmt.Errorf("%w: invalid working hours: %v", ErrInternal, err)
		}

		// 6.4. Вычисляем интервал записи и проверяем границы
		startsAt, endsAt, err := slotInterval(req.Date, req.StartTime, service.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
		}

		if err := validateWithinWindow(startsAt, endsAt, windowStart, windowEnd); err != nil {
			uc.logger.Warn("CreateAppointment: slot %s-%s outside working hours", req.StartTime,
				types.NewTimeString(endsAt))
			return err
		}

		// 6.5. Валидация минимального notice
		if err := validateNotice(startsAt, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
			return err
		}

		// 6.6. Получаем активные записи мастера на дату с блокировкой (FOR UPDATE)
		filter := domain.BusinessAppointmentsFilter{
			BusinessID:      req.BusinessID,
			BarberID:        ptr.Ptr(req.BarberID),
			StartDate:       ptr.Ptr(req.Date),
			EndDate:         ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		appointments, err := uc.apptRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.7. Получаем отсутствия мастера на дату
		absences, err := uc.absenceRepo.ListForBarberOnDate(txCtx, req.BusinessID, req.BarberID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get absences: %v", err)
			return fmt.Errorf("%w: failed to get absences: %v", ErrInternal, err)
		}

		// 6.8. Проверяем конфликт с занятыми интервалами (с учетом буфера)
		occupied := buildOccupied(appointments, absences, req.Date)
		buffer := minutesToDuration(config.BufferMinutes)

		if availability.HasConflict(startsAt, endsAt, occupied, buffer) {
			uc.logger.Warn("CreateAppointment: slot %s taken for barber=%d on %s",
				req.StartTime, req.BarberID, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 6.9. Оцениваем промо-правила и вычисляем итоговую цену
		evaluation, err := uc.evaluatePromo(txCtx, req, service.PriceCents)
		if err != nil {
			return err
		}

		var appliedPromoID *string
		if evaluation.Applied {
			appliedPromoID = ptr.Ptr(evaluation.Rule.ID)
			uc.logger.Info("CreateAppointment: promo rule %s applied, price %d -> %d",
				evaluation.Rule.ID, evaluation.OriginalPriceCents, evaluation.FinalPriceCents)
		}

		// 6.10. Создаем запись с денормализацией данных услуги и цены
		appt := &domain.Appointment{
			ClientID:        req.ClientID,
			BusinessID:      req.BusinessID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация данных услуги и результата оценки промо
			ServiceName:        service.Name,
			OriginalPriceCents: evaluation.OriginalPriceCents,
			FinalPriceCents:    evaluation.FinalPriceCents,
			AppliedPromoID:     appliedPromoID,
			Notes:              req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:                 result.ID,
		ClientID:           result.ClientID,
		BusinessID:         result.BusinessID,
		BarberID:           result.BarberID,
		ServiceID:          result.ServiceID,
		AppointmentDate:    result.AppointmentDate,
		StartTime:          result.StartTime,
		DurationMinutes:    result.DurationMinutes,
		Status:             string(result.Status),
		ServiceName:        result.ServiceName,
		OriginalPriceCents: result.OriginalPriceCents,
		FinalPriceCents:    result.FinalPriceCents,
		DiscountCents:      result.DiscountCents(),
		AppliedPromoID:     result.AppliedPromoID,
		Notes:              result.Notes,
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// evaluatePromo подбирает промо-правило и вычисляет итоговую цену записи
func (uc *UseCase) evaluatePromo(ctx context.Context, req *Request, priceCents int64) (promo.Evaluation, error) {
	rules, err := uc.promoRepo.ListByBusiness(ctx, req.BusinessID, true)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get promo rules: %v", err)
		return promo.Evaluation{}, fmt.Errorf("%w: failed to get promo rules: %v", ErrInternal, err)
	}

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return promo.Evaluation{}, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	promoCtx := promo.Context{
		Day:       int(req.Date.Weekday()),
		Hour:      startMinutes / 60,
		ServiceID: req.ServiceID,
	}

	ruleValues := make([]domain.PromoRule, 0, len(rules))
	for _, rule := range rules {
		ruleValues = append(ruleValues, *rule)
	}

	return promo.Evaluate(ruleValues, promoCtx, priceCents), nil
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

// minutesToDuration конвертирует минуты конфигурации в time.Duration
func minutesToDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
