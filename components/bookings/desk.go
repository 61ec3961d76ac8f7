package bookings

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Desk validates, prices and records bookings.
type Desk struct {
	ledger Ledger
	now    func() time.Time
	rnd    Random
}

// DeskOption customizes a Desk.
type DeskOption func(*Desk)

// WithClock overrides the clock used for ids and timestamps.
func WithClock(now func() time.Time) DeskOption {
	return func(d *Desk) {
		d.now = now
	}
}

// WithRandom overrides the id suffix source.
func WithRandom(rnd Random) DeskOption {
	return func(d *Desk) {
		d.rnd = rnd
	}
}

// NewDesk builds a desk over ledger; nil uses a MemoryLedger.
func NewDesk(ledger Ledger, opts ...DeskOption) *Desk {
	if ledger == nil {
		ledger = NewMemoryLedger()
	}
	d := &Desk{
		ledger: ledger,
		now:    func() time.Time { return time.Now().UTC() },
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Ledger exposes the underlying ledger.
func (d *Desk) Ledger() Ledger {
	return d.ledger
}

// Book validates b, assigns id, status and timestamp, prices room stays and
// stores the booking.
func (d *Desk) Book(ctx context.Context, b Booking) (Booking, error) {
	if err := Validate(b); err != nil {
		return Booking{}, err
	}
	now := d.now()
	id, err := NewBookingID(b.Kind, now, d.rnd)
	if err != nil {
		return Booking{}, err
	}
	b.ID = id
	b.Status = StatusConfirmed
	b.CreatedAt = now
	if b.Kind == KindRoom && b.Amount == 0 {
		b.Amount = QuoteRoom(b.RoomType, b.CheckIn, b.CheckOut, b.Quantity).Total
	}
	if err := d.ledger.Create(ctx, b); err != nil {
		return Booking{}, fmt.Errorf("bookings: record %s: %w", id, err)
	}
	return b, nil
}
