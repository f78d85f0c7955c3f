package evaluate_promo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
)

// Фейки для зависимостей usecase

type fakePromoRepo struct {
	rules []*domain.PromoRule
}

func (f *fakePromoRepo) ListByBusiness(_ context.Context, _ int64, _ bool) ([]*domain.PromoRule, error) {
	return f.rules, nil
}

type fakeBusinessClient struct {
	service    *businessservice.Service
	serviceErr error
}

func (f *fakeBusinessClient) GetService(_ context.Context, _, _ int64) (*businessservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

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

func mondayRule(id string, priority int, value int64) *domain.PromoRule {
	return &domain.PromoRule{
		ID:         id,
		BusinessID: 1,
		Label:      "Monday promo",
		Enabled:    true,
		Priority:   priority,
		Days:       []int{1},
		StartHour:  9,
		EndHour:    17,
		Type:       domain.DiscountPercent,
		Value:      value,
	}
}

func newUseCase(promoRepo *fakePromoRepo, client *fakeBusinessClient) *UseCase {
	return NewUseCase(promoRepo, client, noopLogger{})
}

func testRequest() *Request {
	return &Request{
		BusinessID: 1,
		ServiceID:  3,
		// Понедельник
		Date:      time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}
}

func TestExecute_RuleMatchedAppliesDiscount(t *testing.T) {
	promoRepo := &fakePromoRepo{rules: []*domain.PromoRule{
		mondayRule("9f1b1c2a-0000-0000-0000-000000000001", 1, 20),
	}}
	uc := newUseCase(promoRepo, &fakeBusinessClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, "rule_matched", resp.Reason)
	assert.Equal(t, int64(10000), resp.OriginalPriceCents)
	assert.Equal(t, int64(8000), resp.FinalPriceCents)
	assert.Equal(t, int64(2000), resp.DiscountCents)
	require.NotNil(t, resp.RuleID)
	assert.Equal(t, "9f1b1c2a-0000-0000-0000-000000000001", *resp.RuleID)
	require.NotNil(t, resp.RuleLabel)
	assert.Equal(t, "Monday promo", *resp.RuleLabel)
}

func TestExecute_LowerPriorityWinsOnConflict(t *testing.T) {
	promoRepo := &fakePromoRepo{rules: []*domain.PromoRule{
		mondayRule("9f1b1c2a-0000-0000-0000-000000000002", 5, 50),
		mondayRule("9f1b1c2a-0000-0000-0000-000000000001", 1, 10),
	}}
	uc := newUseCase(promoRepo, &fakeBusinessClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	require.NotNil(t, resp.RuleID)
	assert.Equal(t, "9f1b1c2a-0000-0000-0000-000000000001", *resp.RuleID)
	assert.Equal(t, int64(9000), resp.FinalPriceCents)
}

func TestExecute_NoMatchingRule(t *testing.T) {
	rule := mondayRule("9f1b1c2a-0000-0000-0000-000000000001", 1, 20)
	rule.Days = []int{6} // только суббота
	promoRepo := &fakePromoRepo{rules: []*domain.PromoRule{rule}}
	uc := newUseCase(promoRepo, &fakeBusinessClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Equal(t, "no_matching_rule", resp.Reason)
	assert.Equal(t, int64(10000), resp.FinalPriceCents)
	assert.Equal(t, int64(0), resp.DiscountCents)
	assert.Nil(t, resp.RuleID)
	assert.Nil(t, resp.RuleLabel)
}

func TestExecute_NoRulesConfigured(t *testing.T) {
	uc := newUseCase(&fakePromoRepo{}, &fakeBusinessClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Equal(t, "no_rules", resp.Reason)
	assert.Equal(t, resp.OriginalPriceCents, resp.FinalPriceCents)
}

func TestExecute_FixedDiscountClampedAtZero(t *testing.T) {
	rule := mondayRule("9f1b1c2a-0000-0000-0000-000000000001", 1, 0)
	rule.Type = domain.DiscountFixed
	rule.Value = 15000 // больше цены услуги
	promoRepo := &fakePromoRepo{rules: []*domain.PromoRule{rule}}
	uc := newUseCase(promoRepo, &fakeBusinessClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, int64(0), resp.FinalPriceCents)
	assert.Equal(t, int64(10000), resp.DiscountCents)
}

func TestExecute_ServiceScopedRuleSkipsOtherServices(t *testing.T) {
	rule := mondayRule("9f1b1c2a-0000-0000-0000-000000000001", 1, 20)
	rule.ServiceIDs = []int64{99}
	promoRepo := &fakePromoRepo{rules: []*domain.PromoRule{rule}}
	uc := newUseCase(promoRepo, &fakeBusinessClient{service: testService()})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Equal(t, "no_matching_rule", resp.Reason)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	client := &fakeBusinessClient{serviceErr: businessservice.ErrBusinessNotFound}
	uc := newUseCase(&fakePromoRepo{}, client)

	_, err := uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	client := &fakeBusinessClient{serviceErr: businessservice.ErrServiceNotFound}
	uc := newUseCase(&fakePromoRepo{}, client)

	_, err := uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newUseCase(&fakePromoRepo{}, &fakeBusinessClient{service: testService()})

	req := testRequest()
	req.ServiceID = 0

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
