package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cleanitalia/models"

	"github.com/jmoiron/sqlx"
)

// PostgresBookingRepo persists bookings in the bookings table.
type PostgresBookingRepo struct {
	db *sqlx.DB
}

// NewPostgresBookingRepo creates a booking repository backed by Postgres.
func NewPostgresBookingRepo(db *sqlx.DB) *PostgresBookingRepo {
	return &PostgresBookingRepo{db: db}
}

const bookingColumns = `id, service_id, city_id, name, email, phone, street,
	house_number, property_size, doorbell, date, time, hours, cleaners,
	total_amount, notes, additional_services, supplies, status,
	stripe_status, payment_intent_id, created_at, updated_at`

func (r *PostgresBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := r.db.SelectContext(ctx, &bookings, `SELECT `+bookingColumns+` FROM bookings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *PostgresBookingRepo) GetByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		`SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY id`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by status: %w", err)
	}
	return bookings, nil
}

func (r *PostgresBookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	err := r.db.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	return &b, nil
}

func (r *PostgresBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	query := `INSERT INTO bookings (service_id, city_id, name, email, phone, street,
		house_number, property_size, doorbell, date, time, hours, cleaners,
		total_amount, notes, additional_services, supplies, status,
		stripe_status, payment_intent_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		b.ServiceID, b.CityID, b.Name, b.Email, b.Phone, b.Street,
		b.HouseNumber, b.PropertySize, b.Doorbell, b.Date, b.Time, b.Hours, b.Cleaners,
		b.TotalAmount, b.Notes, b.AdditionalServices, b.Supplies, b.Status,
		b.StripeStatus, b.PaymentIntentID, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	b.UpdatedAt = time.Now().UTC()
	query := `UPDATE bookings SET service_id=$1, city_id=$2, name=$3, email=$4,
		phone=$5, street=$6, house_number=$7, property_size=$8, doorbell=$9,
		date=$10, time=$11, hours=$12, cleaners=$13, total_amount=$14, notes=$15,
		additional_services=$16, supplies=$17, status=$18, stripe_status=$19,
		payment_intent_id=$20, updated_at=$21
		WHERE id=$22`
	res, err := r.db.ExecContext(ctx, query,
		b.ServiceID, b.CityID, b.Name, b.Email,
		b.Phone, b.Street, b.HouseNumber, b.PropertySize, b.Doorbell,
		b.Date, b.Time, b.Hours, b.Cleaners, b.TotalAmount, b.Notes,
		b.AdditionalServices, b.Supplies, b.Status, b.StripeStatus,
		b.PaymentIntentID, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking %d: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresBookingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresBookingRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}
	return nil
}

// ReplaceAll rewrites the table inside a single transaction. Any row failure
// rolls everything back.
func (r *PostgresBookingRepo) ReplaceAll(ctx context.Context, bookings []models.Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}
	query := `INSERT INTO bookings (id, service_id, city_id, name, email, phone, street,
		house_number, property_size, doorbell, date, time, hours, cleaners,
		total_amount, notes, additional_services, supplies, status,
		stripe_status, payment_intent_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`
	for _, b := range bookings {
		if _, err := tx.ExecContext(ctx, query,
			b.ID, b.ServiceID, b.CityID, b.Name, b.Email, b.Phone, b.Street,
			b.HouseNumber, b.PropertySize, b.Doorbell, b.Date, b.Time, b.Hours, b.Cleaners,
			b.TotalAmount, b.Notes, b.AdditionalServices, b.Supplies, b.Status,
			b.StripeStatus, b.PaymentIntentID, b.CreatedAt, b.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert booking %d: %w", b.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('bookings','id'), COALESCE((SELECT MAX(id) FROM bookings), 1))`); err != nil {
		return fmt.Errorf("failed to advance booking id sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking rewrite: %w", err)
	}
	return nil
}
