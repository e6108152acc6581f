// Package repository defines the persistence gateway. Two implementations
// exist for every interface: Postgres (production) and in-memory (mock mode,
// selected at startup when no DATABASE_URL is configured). Callers never
// branch on which one is active.
package repository

import (
	"context"
	"errors"

	"cleanitalia/models"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// BookingRepository persists booking rows.
type BookingRepository interface {
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByStatus(ctx context.Context, status string) ([]models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	// Create assigns the id and timestamps on the passed record.
	Create(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	// ReplaceAll rewrites the whole table in one transaction; on any
	// row-level failure nothing is changed.
	ReplaceAll(ctx context.Context, bookings []models.Booking) error
}

// CityRepository persists serviced cities.
type CityRepository interface {
	GetAll(ctx context.Context, enabledOnly bool) ([]models.City, error)
	GetByID(ctx context.Context, id int64) (*models.City, error)
	Create(ctx context.Context, c *models.City) error
	Update(ctx context.Context, c *models.City) error
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository persists bookable service types.
type ServiceRepository interface {
	GetAll(ctx context.Context, enabledOnly bool) ([]models.Service, error)
	GetByID(ctx context.Context, id int64) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id int64) error
}

// WorkerRepository persists staffing records.
type WorkerRepository interface {
	GetAll(ctx context.Context) ([]models.Worker, error)
	GetByID(ctx context.Context, id int64) (*models.Worker, error)
	Create(ctx context.Context, w *models.Worker) error
	Update(ctx context.Context, w *models.Worker) error
	Delete(ctx context.Context, id int64) error
}

// BlockedSlotRepository persists availability exclusions.
type BlockedSlotRepository interface {
	GetAll(ctx context.Context) ([]models.BlockedSlot, error)
	GetForCityDate(ctx context.Context, cityID int64, date string) ([]models.BlockedSlot, error)
	Create(ctx context.Context, s *models.BlockedSlot) error
	Delete(ctx context.Context, id int64) error
}
