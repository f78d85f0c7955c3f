package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	configRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/config"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/pkg/ptr"
	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// Фейки для зависимостей usecase

type fakeApptRepo struct {
	appointments []*domain.Appointment
	byBarber     map[int64][]*domain.Appointment
	err          error
	lastFilter   domain.BusinessAppointmentsFilter
}

func (f *fakeApptRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	if f.byBarber != nil && filter.BarberID != nil {
		return f.byBarber[*filter.BarberID], f.err
	}
	return f.appointments, f.err
}

type fakeAbsenceRepo struct {
	absences []*domain.StaffAbsence
	byBarber map[int64][]*domain.StaffAbsence
	err      error
}

func (f *fakeAbsenceRepo) ListForBarberOnDate(_ context.Context, _, barberID int64, _ time.Time) ([]*domain.StaffAbsence, error) {
	if f.byBarber != nil {
		return f.byBarber[barberID], f.err
	}
	return f.absences, f.err
}

type fakeConfigRepo struct {
	config       *domain.BookingConfig
	err          error
	lastBarberID *int64
	called       bool
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, barberID *int64) (*domain.BookingConfig, error) {
	f.called = true
	f.lastBarberID = barberID
	if f.config == nil && f.err == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, f.err
}

type fakeBusinessClient struct {
	business    *businessservice.Business
	service     *businessservice.Service
	businessErr error
	serviceErr  error
}

func (f *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	if f.businessErr != nil {
		return nil, f.businessErr
	}
	return f.business, nil
}

func (f *fakeBusinessClient) GetService(_ context.Context, _, _ int64) (*businessservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

func openWeek() businessservice.WeeklyHours {
	day := businessservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("17:00"),
	}
	return businessservice.WeeklyHours{
		Monday: day, Tuesday: day, Wednesday: day,
		Thursday: day, Friday: day, Saturday: day, Sunday: day,
	}
}

func testBusiness() *businessservice.Business {
	return &businessservice.Business{
		ID:           1,
		Name:         "Trimly Test Barbershop",
		ManagerIDs:   []int64{100},
		Barbers:      []businessservice.Barber{{ID: 7, FullName: "Test Barber", Active: true}},
		WorkingHours: openWeek(),
	}
}

func twoBarberBusiness() *businessservice.Business {
	business := testBusiness()
	business.Barbers = append(business.Barbers, businessservice.Barber{ID: 8, FullName: "Second Barber", Active: true})
	return business
}

func testService() *businessservice.Service {
	return &businessservice.Service{
		ID:              3,
		BusinessID:      1,
		Name:            "Haircut",
		DurationMinutes: 30,
		PriceCents:      10000,
		Active:          true,
	}
}

func newUseCase(
	apptRepo *fakeApptRepo,
	absenceRepo *fakeAbsenceRepo,
	cfgRepo *fakeConfigRepo,
	client *fakeBusinessClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(apptRepo, absenceRepo, cfgRepo, client, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func testDate() time.Time {
	// Понедельник
	return time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
}

func TestExecute_EmptyDayAllSlotsAvailable(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour) // запрос за день до даты

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	// 09:00-17:00, шаг 30 мин (дефолт), услуга 30 мин: 16 слотов
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:30"), resp.Slots[15].StartTime)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s must be available on empty day", s.StartTime)
		assert.Equal(t, 30, s.DurationMinutes)
	}
}

func TestExecute_ExistingAppointmentBlocksOverlap(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	appts := []*domain.Appointment{{
		ID: 1, BusinessID: 1, BarberID: 7,
		AppointmentDate: date,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}

	uc := newUseCase(&fakeApptRepo{appointments: appts}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	byTime := make(map[types.TimeString]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		byTime[s.StartTime] = s.Available
	}

	assert.True(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.True(t, byTime["10:30"], "boundary slot must stay available without buffer")
}

func TestExecute_BufferExtendsOccupiedWindow(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	appts := []*domain.Appointment{{
		ID: 1, BusinessID: 1, BarberID: 7,
		AppointmentDate: date,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}

	cfg := &domain.BookingConfig{
		ID: 5, BusinessID: 1,
		SlotIntervalMinutes: 30,
		BufferMinutes:       15,
	}

	uc := newUseCase(&fakeApptRepo{appointments: appts}, &fakeAbsenceRepo{}, &fakeConfigRepo{config: cfg}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	byTime := make(map[types.TimeString]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		byTime[s.StartTime] = s.Available
	}

	// Запись 10:00-10:30 с буфером 15 минут блокирует [09:45, 10:45)
	assert.False(t, byTime["09:30"], "09:30-10:00 slot touches buffered window")
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"], "10:30 start is inside buffered window")
	assert.True(t, byTime["11:00"])
}

func TestExecute_AbsenceBlocksSlots(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	absStart := time.Date(2025, 11, 3, 13, 0, 0, 0, time.UTC)
	absEnd := time.Date(2025, 11, 3, 15, 0, 0, 0, time.UTC)
	absences := []*domain.StaffAbsence{{
		ID: 1, BusinessID: 1, BarberID: 7,
		StartsAt: absStart, EndsAt: absEnd,
	}}

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{absences: absences}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	byTime := make(map[types.TimeString]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		byTime[s.StartTime] = s.Available
	}

	assert.True(t, byTime["12:30"])
	assert.False(t, byTime["13:00"])
	assert.False(t, byTime["14:30"])
	assert.True(t, byTime["15:00"])
}

func TestExecute_ClosedDayReturnsNoSlots(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	business := testBusiness()
	business.WorkingHours.Monday = businessservice.DaySchedule{IsOpen: false}

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: business,
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MinNoticeMakesNearSlotsUnavailable(t *testing.T) {
	date := testDate()
	// Сейчас 10:05 того же дня, minNotice = 60 минут: порог 11:05
	now := time.Date(2025, 11, 3, 10, 5, 0, 0, time.UTC)

	cfg := &domain.BookingConfig{
		ID: 5, BusinessID: 1,
		SlotIntervalMinutes: 30,
		MinNoticeMinutes:    60,
	}

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{config: cfg}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	byTime := make(map[types.TimeString]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		byTime[s.StartTime] = s.Available
	}

	assert.False(t, byTime["10:30"])
	assert.False(t, byTime["11:00"], "11:00 is before 11:05 threshold")
	assert.True(t, byTime["11:30"])
}

func TestExecute_PastDateRejected(t *testing.T) {
	date := testDate()
	now := date.Add(48 * time.Hour)

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	date := testDate()
	now := date.Add(-10 * 24 * time.Hour)

	cfg := &domain.BookingConfig{
		ID: 5, BusinessID: 1,
		SlotIntervalMinutes: 30,
		AdvanceBookingDays:  7,
	}

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{config: cfg}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_UnknownBarberRejected(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 999, ServiceID: 3, Date: date,
	})

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		businessErr: businessservice.ErrBusinessNotFound,
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	service := testService()
	service.Active = false

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  service,
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	appts := []*domain.Appointment{{
		ID: 1, BusinessID: 1, BarberID: 7,
		AppointmentDate: date,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusCancelledByClient,
	}}

	uc := newUseCase(&fakeApptRepo{appointments: appts}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "cancelled appointment must not block slot %s", s.StartTime)
	}
}

func TestExecute_NoBarberSlotAvailableWhenAnyBarberFree(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	// Мастер 7 занят в 10:00, мастер 8 свободен весь день
	appts := map[int64][]*domain.Appointment{
		7: {{
			ID: 1, BusinessID: 1, BarberID: 7,
			AppointmentDate: date,
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		}},
	}

	uc := newUseCase(&fakeApptRepo{byBarber: appts}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: twoBarberBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 0, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.BarberID)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s must be available while second barber is free", s.StartTime)
	}
}

func TestExecute_NoBarberSlotBlockedWhenAllBarbersBusy(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	// Мастер 7 занят записью в 10:00, мастер 8 отсутствует в это же время
	appts := map[int64][]*domain.Appointment{
		7: {{
			ID: 1, BusinessID: 1, BarberID: 7,
			AppointmentDate: date,
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		}},
	}
	absences := map[int64][]*domain.StaffAbsence{
		8: {{
			ID: 1, BusinessID: 1, BarberID: 8,
			StartsAt: time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC),
		}},
	}

	uc := newUseCase(&fakeApptRepo{byBarber: appts}, &fakeAbsenceRepo{byBarber: absences}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: twoBarberBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 0, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	byTime := make(map[types.TimeString]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		byTime[s.StartTime] = s.Available
	}

	assert.False(t, byTime["10:00"], "both barbers occupied at 10:00")
	assert.True(t, byTime["09:30"])
	assert.True(t, byTime["10:30"])
}

func TestExecute_NoBarberUsesBusinessLevelConfig(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	cfgRepo := &fakeConfigRepo{}
	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, cfgRepo, &fakeBusinessClient{
		business: twoBarberBusiness(),
		service:  testService(),
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 0, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	require.True(t, cfgRepo.called)
	assert.Nil(t, cfgRepo.lastBarberID, "config lookup without barber must stay at business level")
}

func TestExecute_NoActiveBarbersReturnsNoSlots(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	business := testBusiness()
	business.Barbers = []businessservice.Barber{{ID: 7, FullName: "Retired Barber", Active: false}}

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: business,
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 0, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NegativeBarberIDRejected(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: -1, ServiceID: 3, Date: date,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SlotCarriesStartInstant(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	uc := newUseCase(&fakeApptRepo{}, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartsAt)
	assert.Equal(t, time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC), resp.Slots[1].StartsAt)
}

func TestExecute_FilterScopedToBarberAndDate(t *testing.T) {
	date := testDate()
	now := date.Add(-24 * time.Hour)

	apptRepo := &fakeApptRepo{}
	uc := newUseCase(apptRepo, &fakeAbsenceRepo{}, &fakeConfigRepo{}, &fakeBusinessClient{
		business: testBusiness(),
		service:  testService(),
	}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1, BarberID: 7, ServiceID: 3, Date: date,
	})

	require.NoError(t, err)
	require.NotNil(t, apptRepo.lastFilter.BarberID)
	assert.Equal(t, int64(7), *apptRepo.lastFilter.BarberID)
	require.NotNil(t, apptRepo.lastFilter.StartDate)
	require.NotNil(t, apptRepo.lastFilter.EndDate)
	assert.True(t, apptRepo.lastFilter.StartDate.Equal(*apptRepo.lastFilter.EndDate))
	assert.False(t, apptRepo.lastFilter.IncludeInactive)
}
