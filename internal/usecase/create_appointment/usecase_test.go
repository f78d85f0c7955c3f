package create_appointment

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
)

// Фейки для зависимостей usecase

type fakeApptRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	nextID       int64
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = appt
	return appt, nil
}

func (f *fakeApptRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeAbsenceRepo struct {
	absences []*domain.StaffAbsence
}

func (f *fakeAbsenceRepo) ListForBarberOnDate(_ context.Context, _, _ int64, _ time.Time) ([]*domain.StaffAbsence, error) {
	return f.absences, nil
}

type fakeConfigRepo struct {
	config *domain.BookingConfig
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.BookingConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakePromoRepo struct {
	rules []*domain.PromoRule
}

func (f *fakePromoRepo) ListByBusiness(_ context.Context, _ int64, _ bool) ([]*domain.PromoRule, error) {
	return f.rules, nil
}

type fakeBusinessClient struct {
	business *businessservice.Business
	service  *businessservice.Service
}

func (f *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	return f.business, nil
}

func (f *fakeBusinessClient) GetService(_ context.Context, _, _ int64) (*businessservice.Service, error) {
	return f.service, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

func testBusiness() *businessservice.Business {
	day := businessservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("17:00"),
	}
	return &businessservice.Business{
		ID:         1,
		Name:       "Trimly Test Barbershop",
		ManagerIDs: []int64{100},
		Barbers:    []businessservice.Barber{{ID: 7, FullName: "Test Barber", Active: true}},
		WorkingHours: businessservice.WeeklyHours{
			Monday: day, Tuesday: day, Wednesday: day,
			Thursday: day, Friday: day, Saturday: day, Sunday: day,
		},
	}
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

func testDate() time.Time {
	// Понедельник
	return time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
}

type deps struct {
	apptRepo    *fakeApptRepo
	absenceRepo *fakeAbsenceRepo
	configRepo  *fakeConfigRepo
	promoRepo   *fakePromoRepo
	client      *fakeBusinessClient
	txManager   *fakeTxManager
}

func newDeps() *deps {
	return &deps{
		apptRepo:    &fakeApptRepo{},
		absenceRepo: &fakeAbsenceRepo{},
		configRepo:  &fakeConfigRepo{},
		promoRepo:   &fakePromoRepo{},
		client:      &fakeBusinessClient{business: testBusiness(), service: testService()},
		txManager:   &fakeTxManager{},
	}
}

func (d *deps) useCase(now time.Time) *UseCase {
	uc := NewUseCase(d.apptRepo, d.absenceRepo, d.configRepo, d.promoRepo, d.client, d.txManager, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:   50,
		BusinessID: 1,
		BarberID:   7,
		ServiceID:  3,
		Date:       testDate(),
		StartTime:  "10:00",
	}
}

func TestExecute_CreatesConfirmedAppointment(t *testing.T) {
	d := newDeps()
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, d.txManager.calls, "write must go through serializable transaction")
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, int64(50), resp.ClientID)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, int64(10000), resp.OriginalPriceCents)
	assert.Equal(t, int64(10000), resp.FinalPriceCents)
	assert.Equal(t, int64(0), resp.DiscountCents)
	assert.Nil(t, resp.AppliedPromoID)
	assert.Equal(t, 30, resp.DurationMinutes)

	require.NotNil(t, d.apptRepo.created)
	assert.Equal(t, domain.StatusConfirmed, d.apptRepo.created.Status)
}

func TestExecute_OverlapRejectedWithErrSlotTaken(t *testing.T) {
	d := newDeps()
	d.apptRepo.appointments = []*domain.Appointment{{
		ID: 1, BusinessID: 1, BarberID: 7,
		AppointmentDate: testDate(),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	req := validRequest()
	req.StartTime = "10:15" // пересекается с 10:00-10:30

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, d.apptRepo.created)
}

func TestExecute_BackToBackAllowedWithoutBuffer(t *testing.T) {
	d := newDeps()
	d.apptRepo.appointments = []*domain.Appointment{{
		ID: 1, BusinessID: 1, BarberID: 7,
		AppointmentDate: testDate(),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	req := validRequest()
	req.StartTime = "10:30" // впритык к существующей записи

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_BufferBlocksAdjacentSlot(t *testing.T) {
	d := newDeps()
	d.apptRepo.appointments = []*domain.Appointment{{
		ID: 1, BusinessID: 1, BarberID: 7,
		AppointmentDate: testDate(),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}
	d.configRepo.config = &domain.BookingConfig{
		ID: 5, BusinessID: 1,
		SlotIntervalMinutes: 30,
		BufferMinutes:       15,
	}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	req := validRequest()
	req.StartTime = "10:30" // внутри буферного окна [09:45, 10:45)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_AbsenceBlocksSlot(t *testing.T) {
	d := newDeps()
	d.absenceRepo.absences = []*domain.StaffAbsence{{
		ID: 1, BusinessID: 1, BarberID: 7,
		StartsAt: time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
	}}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	req := validRequest()
	req.StartTime = "11:00"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_AllDayAbsenceBlocksWholeDay(t *testing.T) {
	d := newDeps()
	d.absenceRepo.absences = []*domain.StaffAbsence{{
		ID: 1, BusinessID: 1, BarberID: 7,
		StartsAt: testDate(),
		EndsAt:   testDate().AddDate(0, 0, 1),
		AllDay:   true,
	}}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_PromoRuleAppliedToPrice(t *testing.T) {
	d := newDeps()
	// 20% скидка по понедельникам с 10 до 16
	d.promoRepo.rules = []*domain.PromoRule{{
		ID:         "9f1b1c2a-0000-0000-0000-000000000001",
		BusinessID: 1,
		Label:      "Monday promo",
		Enabled:    true,
		Priority:   1,
		Days:       []int{1},
		StartHour:  10,
		EndHour:    16,
		Type:       domain.DiscountPercent,
		Value:      20,
	}}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(10000), resp.OriginalPriceCents)
	assert.Equal(t, int64(8000), resp.FinalPriceCents)
	assert.Equal(t, int64(2000), resp.DiscountCents)
	require.NotNil(t, resp.AppliedPromoID)
	assert.Equal(t, "9f1b1c2a-0000-0000-0000-000000000001", *resp.AppliedPromoID)
}

func TestExecute_PromoOutsideHourWindowNotApplied(t *testing.T) {
	d := newDeps()
	d.promoRepo.rules = []*domain.PromoRule{{
		ID:         "9f1b1c2a-0000-0000-0000-000000000001",
		BusinessID: 1,
		Label:      "Morning promo",
		Enabled:    true,
		Priority:   1,
		Days:       []int{1},
		StartHour:  9,
		EndHour:    10, // окно [9, 10), запись в 10:00 не попадает
		Type:       domain.DiscountPercent,
		Value:      20,
	}}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, resp.OriginalPriceCents, resp.FinalPriceCents)
	assert.Nil(t, resp.AppliedPromoID)
}

func TestExecute_OutsideWorkingHoursRejected(t *testing.T) {
	d := newDeps()
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	req := validRequest()
	req.StartTime = "16:45" // конец 17:15 выходит за закрытие

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	d := newDeps()
	d.client.business.WorkingHours.Monday = businessservice.DaySchedule{IsOpen: false}
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBusinessClosed)
}

func TestExecute_MinNoticeViolationRejected(t *testing.T) {
	d := newDeps()
	d.configRepo.config = &domain.BookingConfig{
		ID: 5, BusinessID: 1,
		SlotIntervalMinutes: 30,
		MinNoticeMinutes:    120,
	}
	// Сейчас 09:00 того же дня, запись на 10:00 нарушает notice в 2 часа
	uc := d.useCase(time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_PastDateRejected(t *testing.T) {
	d := newDeps()
	uc := d.useCase(testDate().Add(48 * time.Hour))

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_UnknownBarberRejected(t *testing.T) {
	d := newDeps()
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	req := validRequest()
	req.BarberID = 999

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_InvalidStartTimeRejected(t *testing.T) {
	d := newDeps()
	uc := d.useCase(testDate().Add(-24 * time.Hour))

	req := validRequest()
	req.StartTime = "25:99"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
