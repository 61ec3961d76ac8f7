package bookings

import (
	"context"
	"sync"
)

// Ledger persists bookings in creation order.
type Ledger interface {
	Create(ctx context.Context, b Booking) error
	Get(ctx context.Context, id string) (Booking, error)
	List(ctx context.Context) ([]Booking, error)
	Delete(ctx context.Context, id string) error
}

// MemoryLedger is a concurrency-safe in-memory Ledger.
type MemoryLedger struct {
	mu       sync.RWMutex
	bookings []Booking
}

// NewMemoryLedger builds an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Create appends a booking.
func (l *MemoryLedger) Create(_ context.Context, b Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.bookings {
		if existing.ID == b.ID {
			return ErrAlreadyExists
		}
	}
	l.bookings = append(l.bookings, b)
	return nil
}

// Get returns the booking stored under id.
func (l *MemoryLedger) Get(_ context.Context, id string) (Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return Booking{}, ErrNotFound
}

// List returns every booking oldest first.
func (l *MemoryLedger) List(context.Context) ([]Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Booking(nil), l.bookings...), nil
}

// Delete drops a booking. Unknown ids return ErrNotFound.
func (l *MemoryLedger) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, b := range l.bookings {
		if b.ID == id {
			l.bookings = append(l.bookings[:i], l.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
