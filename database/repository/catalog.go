package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cleanitalia/models"

	"github.com/jmoiron/sqlx"
)

// PostgresCityRepo persists cities.
type PostgresCityRepo struct {
	db *sqlx.DB
}

func NewPostgresCityRepo(db *sqlx.DB) *PostgresCityRepo {
	return &PostgresCityRepo{db: db}
}

func (r *PostgresCityRepo) GetAll(ctx context.Context, enabledOnly bool) ([]models.City, error) {
	cities := []models.City{}
	query := `SELECT * FROM cities ORDER BY id`
	if enabledOnly {
		query = `SELECT * FROM cities WHERE enabled = TRUE ORDER BY id`
	}
	if err := r.db.SelectContext(ctx, &cities, query); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (r *PostgresCityRepo) GetByID(ctx context.Context, id int64) (*models.City, error) {
	var c models.City
	err := r.db.GetContext(ctx, &c, `SELECT * FROM cities WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load city %d: %w", id, err)
	}
	return &c, nil
}

func (r *PostgresCityRepo) Create(ctx context.Context, c *models.City) error {
	query := `INSERT INTO cities (name, name_it, name_en, enabled, working_days, start_time, end_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.NameIt, c.NameEn, c.Enabled, c.WorkingDays, c.StartTime, c.EndTime).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}

func (r *PostgresCityRepo) Update(ctx context.Context, c *models.City) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cities SET name=$1, name_it=$2, name_en=$3,
		enabled=$4, working_days=$5, start_time=$6, end_time=$7 WHERE id=$8`,
		c.Name, c.NameIt, c.NameEn, c.Enabled, c.WorkingDays, c.StartTime, c.EndTime, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update city %d: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCityRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete city %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresServiceRepo persists service types.
type PostgresServiceRepo struct {
	db *sqlx.DB
}

func NewPostgresServiceRepo(db *sqlx.DB) *PostgresServiceRepo {
	return &PostgresServiceRepo{db: db}
}

func (r *PostgresServiceRepo) GetAll(ctx context.Context, enabledOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	query := `SELECT * FROM services ORDER BY id`
	if enabledOnly {
		query = `SELECT * FROM services WHERE enabled = TRUE ORDER BY id`
	}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *PostgresServiceRepo) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	var s models.Service
	err := r.db.GetContext(ctx, &s, `SELECT * FROM services WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load service %d: %w", id, err)
	}
	return &s, nil
}

func (r *PostgresServiceRepo) Create(ctx context.Context, s *models.Service) error {
	query := `INSERT INTO services (name, name_it, name_en, description, description_it,
		description_en, price_per_hour, enabled)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		s.Name, s.NameIt, s.NameEn, s.Description, s.DescriptionIt,
		s.DescriptionEn, s.PricePerHour, s.Enabled).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *PostgresServiceRepo) Update(ctx context.Context, s *models.Service) error {
	res, err := r.db.ExecContext(ctx, `UPDATE services SET name=$1, name_it=$2, name_en=$3,
		description=$4, description_it=$5, description_en=$6, price_per_hour=$7, enabled=$8
		WHERE id=$9`,
		s.Name, s.NameIt, s.NameEn, s.Description, s.DescriptionIt,
		s.DescriptionEn, s.PricePerHour, s.Enabled, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update service %d: %w", s.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresServiceRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
