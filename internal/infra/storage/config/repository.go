package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/pkg/dbmetrics"
	"github.com/trimly/Trimly-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с конфигурацией бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessAndBarber получает конфигурацию для бизнеса и мастера
// barberID = nil означает общую конфигурацию бизнеса (barber_id IS NULL)
func (r *Repository) GetByBusinessAndBarber(ctx context.Context, businessID int64, barberID *int64) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectColumns().
		Where(squirrel.Eq{"business_id": businessID})

	// Фильтрация по barber_id (NULL или конкретное значение)
	if barberID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *barberID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndBarber - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.BookingConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.BusinessID,
		&config.BarberID,
		&config.SlotIntervalMinutes,
		&config.BufferMinutes,
		&config.AdvanceBookingDays,
		&config.MinNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndBarber - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация конкретного мастера (businessID, barberID)
// 2. Общая конфигурация бизнеса (businessID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound -
// вызывающая сторона подставляет дефолтные значения.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, businessID int64, barberID *int64) (*domain.BookingConfig, error) {
	// 1. Пробуем получить конфигурацию конкретного мастера (если указан)
	if barberID != nil {
		config, err := r.GetByBusinessAndBarber(ctx, businessID, barberID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (barber): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить общую конфигурацию бизнеса
	config, err := r.GetByBusinessAndBarber(ctx, businessID, nil)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (business): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByBusiness получает все конфигурации бизнеса (общую и для мастеров)
func (r *Repository) GetAllByBusiness(ctx context.Context, businessID int64) ([]*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectColumns().
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("barber_id ASC NULLS FIRST"). // Общая конфигурация первой
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.BookingConfig, 0)

	for rows.Next() {
		var config domain.BookingConfig
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&config.ID,
			&config.BusinessID,
			&config.BarberID,
			&config.SlotIntervalMinutes,
			&config.BufferMinutes,
			&config.AdvanceBookingDays,
			&config.MinNoticeMinutes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByBusiness - scan row: %v", ErrScanRow, err)
		}

		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time

		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByBusiness - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию для пары (business_id, barber_id)
// Использует частичные уникальные индексы по business_id с barber_id и без него
func (r *Repository) Upsert(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conflictTarget := "(business_id) WHERE barber_id IS NULL"
	if config.BarberID != nil {
		conflictTarget = "(business_id, barber_id) WHERE barber_id IS NOT NULL"
	}

	query, args, err := psqlbuilder.Insert("booking_config").
		Columns(
			"business_id",
			"barber_id",
			"slot_interval_minutes",
			"buffer_minutes",
			"advance_booking_days",
			"min_notice_minutes",
		).
		Values(
			config.BusinessID,
			config.BarberID,
			config.SlotIntervalMinutes,
			config.BufferMinutes,
			config.AdvanceBookingDays,
			config.MinNoticeMinutes,
		).
		Suffix(fmt.Sprintf(`ON CONFLICT %s DO UPDATE SET
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`, conflictTarget)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_config").
		Where(squirrel.Eq{"id": id}).
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
		return ErrConfigNotFound
	}

	return nil
}

func selectColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"barber_id",
		"slot_interval_minutes",
		"buffer_minutes",
		"advance_booking_days",
		"min_notice_minutes",
		"created_at",
		"updated_at",
	).From("booking_config")
}
