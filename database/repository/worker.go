package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cleanitalia/models"

	"github.com/jmoiron/sqlx"
)

// PostgresWorkerRepo persists staffing records.
type PostgresWorkerRepo struct {
	db *sqlx.DB
}

func NewPostgresWorkerRepo(db *sqlx.DB) *PostgresWorkerRepo {
	return &PostgresWorkerRepo{db: db}
}

func (r *PostgresWorkerRepo) GetAll(ctx context.Context) ([]models.Worker, error) {
	workers := []models.Worker{}
	if err := r.db.SelectContext(ctx, &workers, `SELECT * FROM workers ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

func (r *PostgresWorkerRepo) GetByID(ctx context.Context, id int64) (*models.Worker, error) {
	var w models.Worker
	err := r.db.GetContext(ctx, &w, `SELECT * FROM workers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load worker %d: %w", id, err)
	}
	return &w, nil
}

func (r *PostgresWorkerRepo) Create(ctx context.Context, w *models.Worker) error {
	query := `INSERT INTO workers (name, email, phone, specialties, rating, completed_jobs, active, client_ref)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		w.Name, w.Email, w.Phone, w.Specialties, w.Rating, w.CompletedJobs, w.Active, w.ClientRef).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

func (r *PostgresWorkerRepo) Update(ctx context.Context, w *models.Worker) error {
	res, err := r.db.ExecContext(ctx, `UPDATE workers SET name=$1, email=$2, phone=$3,
		specialties=$4, rating=$5, completed_jobs=$6, active=$7, client_ref=$8 WHERE id=$9`,
		w.Name, w.Email, w.Phone, w.Specialties, w.Rating, w.CompletedJobs, w.Active, w.ClientRef, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update worker %d: %w", w.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresWorkerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresBlockedSlotRepo persists availability exclusions.
type PostgresBlockedSlotRepo struct {
	db *sqlx.DB
}

func NewPostgresBlockedSlotRepo(db *sqlx.DB) *PostgresBlockedSlotRepo {
	return &PostgresBlockedSlotRepo{db: db}
}

func (r *PostgresBlockedSlotRepo) GetAll(ctx context.Context) ([]models.BlockedSlot, error) {
	slots := []models.BlockedSlot{}
	if err := r.db.SelectContext(ctx, &slots, `SELECT * FROM blocked_slots ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list blocked slots: %w", err)
	}
	return slots, nil
}

func (r *PostgresBlockedSlotRepo) GetForCityDate(ctx context.Context, cityID int64, date string) ([]models.BlockedSlot, error) {
	slots := []models.BlockedSlot{}
	err := r.db.SelectContext(ctx, &slots,
		`SELECT * FROM blocked_slots WHERE city_id = $1 AND date = $2`, cityID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked slots: %w", err)
	}
	return slots, nil
}

func (r *PostgresBlockedSlotRepo) Create(ctx context.Context, s *models.BlockedSlot) error {
	query := `INSERT INTO blocked_slots (city_id, date, time, reason) VALUES ($1,$2,$3,$4) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, s.CityID, s.Date, s.Time, s.Reason).Scan(&s.ID); err != nil {
		return fmt.Errorf("failed to create blocked slot: %w", err)
	}
	return nil
}

func (r *PostgresBlockedSlotRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blocked_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blocked slot %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
