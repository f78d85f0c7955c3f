package absence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/pkg/dbmetrics"
	"github.com/trimly/Trimly-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с периодами отсутствия мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый период отсутствия
func (r *Repository) Create(ctx context.Context, absence *domain.StaffAbsence) (*domain.StaffAbsence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_absences").
		Columns(
			"business_id",
			"barber_id",
			"starts_at",
			"ends_at",
			"all_day",
			"reason",
		).
		Values(
			absence.BusinessID,
			absence.BarberID,
			absence.StartsAt,
			absence.EndsAt,
			absence.AllDay,
			absence.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&absence.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	absence.CreatedAt = createdAt.Time

	return absence, nil
}

// Delete удаляет период отсутствия (в рамках указанного бизнеса)
func (r *Repository) Delete(ctx context.Context, businessID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_absences").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAbsenceNotFound
	}

	return nil
}

// ListForBarberOnDate получает отсутствия мастера, пересекающие указанный день
// Интервал дня полуоткрытый: [00:00 указанного дня, 00:00 следующего дня)
func (r *Repository) ListForBarberOnDate(ctx context.Context, businessID, barberID int64, date time.Time) ([]*domain.StaffAbsence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := selectColumns().
		Where(squirrel.Eq{"business_id": businessID, "barber_id": barberID}).
		Where(squirrel.Lt{"starts_at": dayEnd}).
		Where(squirrel.Gt{"ends_at": dayStart}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForBarberOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForBarberOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAbsences(rows)
}

// ListForBusiness получает все периоды отсутствия бизнеса
// Опционально фильтрует по мастеру
func (r *Repository) ListForBusiness(ctx context.Context, businessID int64, barberID *int64) ([]*domain.StaffAbsence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectColumns().
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("starts_at DESC")

	if barberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *barberID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAbsences(rows)
}

func selectColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"barber_id",
		"starts_at",
		"ends_at",
		"all_day",
		"reason",
		"created_at",
	).From("staff_absences")
}

// scanAbsences сканирует результаты запроса в слайс отсутствий
func (r *Repository) scanAbsences(rows *sql.Rows) ([]*domain.StaffAbsence, error) {
	absences := make([]*domain.StaffAbsence, 0)

	for rows.Next() {
		var absence domain.StaffAbsence
		var createdAt sql.NullTime

		err := rows.Scan(
			&absence.ID,
			&absence.BusinessID,
			&absence.BarberID,
			&absence.StartsAt,
			&absence.EndsAt,
			&absence.AllDay,
			&absence.Reason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAbsences - scan row: %v", ErrScanRow, err)
		}

		absence.CreatedAt = createdAt.Time

		absences = append(absences, &absence)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAbsences - rows error: %v", ErrScanRow, err)
	}

	return absences, nil
}
