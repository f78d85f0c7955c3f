package promorule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/pkg/dbmetrics"
	"github.com/trimly/Trimly-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с промо-правилами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промо-правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByBusiness получает промо-правила бизнеса
// Возвращает правила в детерминированном порядке оценки: priority ASC, id ASC.
// Если enabledOnly = true, отключенные правила не возвращаются.
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, enabledOnly bool) ([]*domain.PromoRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"business_id",
		"label",
		"enabled",
		"priority",
		"days",
		"start_hour",
		"end_hour",
		"discount_type",
		"discount_value",
		"service_ids",
		"created_at",
		"updated_at",
	).
		From("promo_rules").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("priority ASC, id ASC")

	if enabledOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"enabled": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// ReplaceForBusiness атомарно заменяет набор правил бизнеса
// Вызывается внутри транзакции (через txmanager): удаляет старый набор
// и вставляет новый. Частичная замена не поддерживается - набор правил
// всегда обновляется целиком.
func (r *Repository) ReplaceForBusiness(ctx context.Context, businessID int64, rules []*domain.PromoRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("promo_rules").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("promo_rules").
		Columns(
			"id",
			"business_id",
			"label",
			"enabled",
			"priority",
			"days",
			"start_hour",
			"end_hour",
			"discount_type",
			"discount_value",
			"service_ids",
		)

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(
			rule.ID,
			businessID,
			rule.Label,
			rule.Enabled,
			rule.Priority,
			pq.Array(daysToInt64(rule.Days)),
			rule.StartHour,
			rule.EndHour,
			rule.Type,
			rule.Value,
			pq.Array(rule.ServiceIDs),
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForBusiness - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanRules сканирует результаты запроса в слайс правил
func (r *Repository) scanRules(rows *sql.Rows) ([]*domain.PromoRule, error) {
	rules := make([]*domain.PromoRule, 0)

	for rows.Next() {
		var rule domain.PromoRule
		var days pq.Int64Array
		var serviceIDs pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.BusinessID,
			&rule.Label,
			&rule.Enabled,
			&rule.Priority,
			&days,
			&rule.StartHour,
			&rule.EndHour,
			&rule.Type,
			&rule.Value,
			&serviceIDs,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		rule.Days = daysFromInt64(days)
		rule.ServiceIDs = []int64(serviceIDs)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

func daysToInt64(days []int) []int64 {
	result := make([]int64, len(days))
	for i, d := range days {
		result[i] = int64(d)
	}
	return result
}

func daysFromInt64(days []int64) []int {
	result := make([]int, len(days))
	for i, d := range days {
		result[i] = int(d)
	}
	return result
}
