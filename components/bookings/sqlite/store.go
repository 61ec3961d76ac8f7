// Package sqlite persists booking ledgers in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/goliatone/go-dataview/components/bookings"
	"github.com/goliatone/go-dataview/components/bookings/sqlite/migrations"
)

const dsnParams = "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"

// Store is a SQLite-backed bookings.Ledger.
type Store struct {
	sqlDB *sql.DB
}

var _ bookings.Ledger = (*Store)(nil)

// Open opens the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: storage path is required")
	}
	cleanPath := filepath.Clean(path)
	sqlDB, err := sql.Open("sqlite", cleanPath+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create inserts a booking. Reused ids return bookings.ErrAlreadyExists.
func (s *Store) Create(ctx context.Context, b bookings.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("sqlite: booking id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO bookings (
    id, kind, guest, room_type, quantity, check_in, check_out,
    slot_date, slot_time, guests, package, amount, status, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, string(b.Kind), b.Guest, b.RoomType, b.Quantity, b.CheckIn, b.CheckOut,
		b.Date, b.Time, b.Guests, b.Package, b.Amount, b.Status, toMillis(b.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return bookings.ErrAlreadyExists
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, kind, guest, room_type, quantity, check_in, check_out,
    slot_date, slot_time, guests, package, amount, status, created_at FROM bookings`

// Get loads one booking.
func (s *Store) Get(ctx context.Context, id string) (bookings.Booking, error) {
	if err := ctx.Err(); err != nil {
		return bookings.Booking{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	if err != nil {
		return bookings.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// List returns every booking oldest first.
func (s *Store) List(ctx context.Context) ([]bookings.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, selectColumns+" ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var out []bookings.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// Delete removes a booking. Unknown ids return bookings.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if n == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (bookings.Booking, error) {
	var (
		b       bookings.Booking
		kind    string
		created int64
	)
	err := row.Scan(&b.ID, &kind, &b.Guest, &b.RoomType, &b.Quantity, &b.CheckIn, &b.CheckOut,
		&b.Date, &b.Time, &b.Guests, &b.Package, &b.Amount, &b.Status, &created)
	if err != nil {
		return bookings.Booking{}, err
	}
	b.Kind = bookings.Kind(kind)
	b.CreatedAt = fromMillis(created)
	return b, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
