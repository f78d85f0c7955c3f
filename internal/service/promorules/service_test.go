package promorules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules/models"
	"github.com/trimly/Trimly-SchedulingService/pkg/ptr"
)

// Фейки для зависимостей сервиса

type fakeRuleRepo struct {
	rules         []*domain.PromoRule
	replaced      []*domain.PromoRule
	replaceCalled bool
}

func (f *fakeRuleRepo) ListByBusiness(_ context.Context, _ int64, _ bool) ([]*domain.PromoRule, error) {
	if f.replaced != nil {
		return f.replaced, nil
	}
	return f.rules, nil
}

func (f *fakeRuleRepo) ReplaceForBusiness(_ context.Context, _ int64, rules []*domain.PromoRule) error {
	f.replaceCalled = true
	f.replaced = rules
	return nil
}

type fakeBusinessClient struct {
	business *businessservice.Business
}

func (f *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	if f.business == nil {
		return nil, businessservice.ErrBusinessNotFound
	}
	return f.business, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func managedBusiness() *businessservice.Business {
	return &businessservice.Business{
		ID:         1,
		Name:       "Trimly Test Barbershop",
		ManagerIDs: []int64{100},
	}
}

func ruleInput(id string) models.PromoRuleInput {
	input := models.PromoRuleInput{
		Label:     "Morning discount",
		Enabled:   true,
		Priority:  1,
		Days:      []int{1, 2},
		StartHour: 9,
		EndHour:   12,
		Type:      "percent",
		Value:     10,
	}
	if id != "" {
		input.ID = ptr.Ptr(id)
	}
	return input
}

func newService(repo *fakeRuleRepo, client *fakeBusinessClient) *Service {
	return NewService(repo, client, fakeTxManager{}, noopLogger{})
}

func TestReplaceSet_DuplicateRuleIDRejected(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := newService(repo, &fakeBusinessClient{business: managedBusiness()})

	const id = "3b241101-e2bb-4255-8caf-4136c566a962"
	_, err := svc.ReplaceSet(context.Background(), &models.ReplaceRulesRequest{
		UserID:     100,
		BusinessID: 1,
		Rules:      []models.PromoRuleInput{ruleInput(id), ruleInput(id)},
	})

	assert.ErrorIs(t, err, ErrInvalidRule)
	assert.False(t, repo.replaceCalled, "duplicate set must not reach the repository")
}

func TestReplaceSet_DistinctRuleIDsAccepted(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := newService(repo, &fakeBusinessClient{business: managedBusiness()})

	resp, err := svc.ReplaceSet(context.Background(), &models.ReplaceRulesRequest{
		UserID:     100,
		BusinessID: 1,
		Rules: []models.PromoRuleInput{
			ruleInput("3b241101-e2bb-4255-8caf-4136c566a962"),
			ruleInput("9f8b6a44-1c2d-4e3f-8a5b-7c6d5e4f3a2b"),
		},
	})

	require.NoError(t, err)
	assert.True(t, repo.replaceCalled)
	assert.Len(t, resp.Rules, 2)
}

func TestReplaceSet_GeneratedIDsNeverCollide(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := newService(repo, &fakeBusinessClient{business: managedBusiness()})

	// Без клиентских ID сервис генерирует UUID каждому правилу
	resp, err := svc.ReplaceSet(context.Background(), &models.ReplaceRulesRequest{
		UserID:     100,
		BusinessID: 1,
		Rules:      []models.PromoRuleInput{ruleInput(""), ruleInput("")},
	})

	require.NoError(t, err)
	require.Len(t, resp.Rules, 2)
	assert.NotEqual(t, resp.Rules[0].ID, resp.Rules[1].ID)
}

func TestReplaceSet_NonManagerRejected(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := newService(repo, &fakeBusinessClient{business: managedBusiness()})

	_, err := svc.ReplaceSet(context.Background(), &models.ReplaceRulesRequest{
		UserID:     200,
		BusinessID: 1,
		Rules:      []models.PromoRuleInput{ruleInput("")},
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.replaceCalled)
}
