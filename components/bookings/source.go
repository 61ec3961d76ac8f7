package bookings

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dataview/components/dataview"
)

// TableCode is the admin table fed by booking ledgers.
const TableCode = "admin.table.bookings"

// RecordSource exposes a ledger as rows of the admin bookings table.
type RecordSource struct {
	ledger Ledger
}

// NewRecordSource wraps ledger.
func NewRecordSource(ledger Ledger) *RecordSource {
	return &RecordSource{ledger: ledger}
}

var _ dataview.RecordSource = (*RecordSource)(nil)

// Records implements dataview.RecordSource.
func (s *RecordSource) Records(ctx context.Context, _ dataview.SourceQuery) ([]map[string]string, error) {
	list, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, len(list))
	for i, b := range list {
		rows[i] = Row(b)
	}
	return rows, nil
}

// Row maps a booking onto the bookings table columns.
func Row(b Booking) map[string]string {
	row := map[string]string{
		"id":     b.ID,
		"guest":  b.Guest,
		"type":   string(b.Kind),
		"amount": fmt.Sprintf("$%.2f", b.Amount),
		"status": b.Status,
	}
	switch b.Kind {
	case KindRoom:
		row["room"] = b.RoomType
		row["check_in"] = b.CheckIn
		row["check_out"] = b.CheckOut
	case KindPool:
		row["check_in"] = b.Date + " " + b.Time
	case KindKarting:
		row["room"] = b.Package
	}
	if row["status"] == "" {
		row["status"] = StatusConfirmed
	}
	return row
}
