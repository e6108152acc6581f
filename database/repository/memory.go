package repository

import (
	"context"
	"sync"
	"time"

	"cleanitalia/models"
)

// MemoryBookingRepo is the mock-mode booking store. It mirrors the Postgres
// repository's semantics, including id assignment and not-found reporting.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings []models.Booking
	nextID   int64
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{nextID: 1}
}

func (r *MemoryBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *MemoryBookingRepo) GetByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryBookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.ID == id {
			cp := b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = now
	b.UpdatedAt = now
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *MemoryBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			b.UpdatedAt = time.Now().UTC()
			r.bookings[i] = *b
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryBookingRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryBookingRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = nil
	return nil
}

func (r *MemoryBookingRepo) ReplaceAll(ctx context.Context, bookings []models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = make([]models.Booking, len(bookings))
	copy(r.bookings, bookings)
	for _, b := range bookings {
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return nil
}

// MemoryCityRepo serves the demo city catalog in mock mode.
type MemoryCityRepo struct {
	mu     sync.RWMutex
	cities []models.City
	nextID int64
}

func NewMemoryCityRepo() *MemoryCityRepo {
	return &MemoryCityRepo{
		cities: []models.City{
			{ID: 1, Name: "Rome", NameIt: "Roma", NameEn: "Rome", Enabled: true, WorkingDays: "1,2,3,4,5,6", StartTime: "09:00", EndTime: "17:30"},
			{ID: 2, Name: "Milan", NameIt: "Milano", NameEn: "Milan", Enabled: true, WorkingDays: "1,2,3,4,5", StartTime: "08:00", EndTime: "18:00"},
			{ID: 3, Name: "Naples", NameIt: "Napoli", NameEn: "Naples", Enabled: false, WorkingDays: "1,2,3,4,5", StartTime: "09:00", EndTime: "17:00"},
		},
		nextID: 4,
	}
}

func (r *MemoryCityRepo) GetAll(ctx context.Context, enabledOnly bool) ([]models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.City{}
	for _, c := range r.cities {
		if enabledOnly && !c.Enabled {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryCityRepo) GetByID(ctx context.Context, id int64) (*models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.cities {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryCityRepo) Create(ctx context.Context, c *models.City) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	r.cities = append(r.cities, *c)
	return nil
}

func (r *MemoryCityRepo) Update(ctx context.Context, c *models.City) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cities {
		if r.cities[i].ID == c.ID {
			r.cities[i] = *c
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryCityRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cities {
		if r.cities[i].ID == id {
			r.cities = append(r.cities[:i], r.cities[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MemoryServiceRepo serves the demo service catalog in mock mode.
type MemoryServiceRepo struct {
	mu       sync.RWMutex
	services []models.Service
	nextID   int64
}

func NewMemoryServiceRepo() *MemoryServiceRepo {
	return &MemoryServiceRepo{
		services: []models.Service{
			{ID: 1, Name: "Standard Cleaning", NameIt: "Pulizia Standard", NameEn: "Standard Cleaning", Description: "Regular home cleaning", PricePerHour: 20, Enabled: true},
			{ID: 2, Name: "Deep Cleaning", NameIt: "Pulizia Profonda", NameEn: "Deep Cleaning", Description: "Thorough top-to-bottom cleaning", PricePerHour: 28, Enabled: true},
			{ID: 3, Name: "Office Cleaning", NameIt: "Pulizia Uffici", NameEn: "Office Cleaning", Description: "Workspace cleaning", PricePerHour: 25, Enabled: false},
		},
		nextID: 4,
	}
}

func (r *MemoryServiceRepo) GetAll(ctx context.Context, enabledOnly bool) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Service{}
	for _, s := range r.services {
		if enabledOnly && !s.Enabled {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *MemoryServiceRepo) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.services {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryServiceRepo) Create(ctx context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.services = append(r.services, *s)
	return nil
}

func (r *MemoryServiceRepo) Update(ctx context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.services {
		if r.services[i].ID == s.ID {
			r.services[i] = *s
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryServiceRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.services {
		if r.services[i].ID == id {
			r.services = append(r.services[:i], r.services[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MemoryWorkerRepo stores staffing records in mock mode.
type MemoryWorkerRepo struct {
	mu      sync.RWMutex
	workers []models.Worker
	nextID  int64
}

func NewMemoryWorkerRepo() *MemoryWorkerRepo {
	return &MemoryWorkerRepo{nextID: 1}
}

func (r *MemoryWorkerRepo) GetAll(ctx context.Context) ([]models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Worker, len(r.workers))
	copy(out, r.workers)
	return out, nil
}

func (r *MemoryWorkerRepo) GetByID(ctx context.Context, id int64) (*models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.workers {
		if w.ID == id {
			cp := w
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryWorkerRepo) Create(ctx context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = r.nextID
	r.nextID++
	r.workers = append(r.workers, *w)
	return nil
}

func (r *MemoryWorkerRepo) Update(ctx context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.workers {
		if r.workers[i].ID == w.ID {
			r.workers[i] = *w
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryWorkerRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.workers {
		if r.workers[i].ID == id {
			r.workers = append(r.workers[:i], r.workers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MemoryBlockedSlotRepo stores availability exclusions in mock mode.
type MemoryBlockedSlotRepo struct {
	mu     sync.RWMutex
	slots  []models.BlockedSlot
	nextID int64
}

func NewMemoryBlockedSlotRepo() *MemoryBlockedSlotRepo {
	return &MemoryBlockedSlotRepo{nextID: 1}
}

func (r *MemoryBlockedSlotRepo) GetAll(ctx context.Context) ([]models.BlockedSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.BlockedSlot, len(r.slots))
	copy(out, r.slots)
	return out, nil
}

func (r *MemoryBlockedSlotRepo) GetForCityDate(ctx context.Context, cityID int64, date string) ([]models.BlockedSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.BlockedSlot{}
	for _, s := range r.slots {
		if s.CityID == cityID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryBlockedSlotRepo) Create(ctx context.Context, s *models.BlockedSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.slots = append(r.slots, *s)
	return nil
}

func (r *MemoryBlockedSlotRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.slots {
		if r.slots[i].ID == id {
			r.slots = append(r.slots[:i], r.slots[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
