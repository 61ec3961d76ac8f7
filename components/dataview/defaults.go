package dataview

import "context"

var defaultTableDefinitions = []TableDefinition{
	{
		Code:         "admin.table.bookings",
		Name:         "Bookings",
		Description:  "Room, pool and karting reservations",
		KeyColumn:    "id",
		StatusColumn: "status",
		StatusOptions: []string{
			"Confirmed", "Pending", "Checked In", "Cancelled",
		},
		PageSize: 10,
		Columns: []ColumnDefinition{
			{Key: "id", Label: "Booking ID"},
			{Key: "guest", Label: "Guest"},
			{Key: "type", Label: "Type"},
			{Key: "room", Label: "Room"},
			{Key: "check_in", Label: "Check-in"},
			{Key: "check_out", Label: "Check-out"},
			{Key: "amount", Label: "Amount"},
			{Key: "status", Label: "Status"},
		},
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"guest", "type"},
			"properties": map[string]any{
				"guest":  map[string]any{"type": "string", "minLength": 1},
				"type":   map[string]any{"type": "string", "enum": []string{"room", "pool", "karting"}},
				"status": map[string]any{"type": "string"},
			},
		},
	},
	{
		Code:          "admin.table.rooms",
		Name:          "Rooms",
		Description:   "Room inventory and housekeeping state",
		KeyColumn:     "id",
		StatusColumn:  "status",
		StatusOptions: []string{"Available", "Occupied", "Maintenance", "Reserved"},
		PageSize:      10,
		Columns: []ColumnDefinition{
			{Key: "id", Label: "Room"},
			{Key: "type", Label: "Type"},
			{Key: "floor", Label: "Floor"},
			{Key: "rate", Label: "Nightly Rate"},
			{Key: "status", Label: "Status"},
		},
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"id", "type"},
			"properties": map[string]any{
				"id":   map[string]any{"type": "string", "pattern": "^R?[0-9]+$"},
				"type": map[string]any{"type": "string", "enum": []string{"Standard", "Deluxe", "Executive", "Suite"}},
			},
		},
	},
	{
		Code:          "admin.table.guests",
		Name:          "Guests",
		Description:   "Registered guests and staff accounts",
		KeyColumn:     "id",
		StatusColumn:  "status",
		StatusOptions: []string{"Active", "Inactive", "Suspended"},
		PageSize:      10,
		Columns: []ColumnDefinition{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name"},
			{Key: "email", Label: "Email"},
			{Key: "role", Label: "Role"},
			{Key: "status", Label: "Status"},
		},
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"name", "email"},
			"properties": map[string]any{
				"name":  map[string]any{"type": "string", "minLength": 1},
				"email": map[string]any{"type": "string", "pattern": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"},
			},
		},
	},
}

var defaultSources = map[string]RecordSource{
	"admin.table.bookings": NewStaticSource([]map[string]string{
		{"id": "APX48213907K2Q", "guest": "Amelia Hart", "type": "room", "room": "201", "check_in": "2026-05-02", "check_out": "2026-05-05", "amount": "$540", "status": "Confirmed"},
		{"id": "APX48219311ZP0", "guest": "Jonas Weber", "type": "room", "room": "305", "check_in": "2026-05-03", "check_out": "2026-05-04", "amount": "$210", "status": "Pending"},
		{"id": "POOL48220145A9C", "guest": "Priya Nair", "type": "pool", "check_in": "2026-05-03", "amount": "$40", "status": "Confirmed"},
		{"id": "KART48227719M1X", "guest": "Diego Santos", "type": "karting", "amount": "$85", "status": "Cancelled"},
		{"id": "APX48230551QW7", "guest": "Hana Kobayashi", "type": "room", "room": "410", "check_in": "2026-05-04", "check_out": "2026-05-09", "amount": "$1,250", "status": "Checked In"},
	}),
	"admin.table.rooms": NewStaticSource([]map[string]string{
		{"id": "R101", "type": "Standard", "floor": "1", "rate": "$120", "status": "Available"},
		{"id": "R102", "type": "Standard", "floor": "1", "rate": "$120", "status": "Occupied"},
		{"id": "R201", "type": "Deluxe", "floor": "2", "rate": "$180", "status": "Maintenance"},
		{"id": "R305", "type": "Executive", "floor": "3", "rate": "$210", "status": "Reserved"},
		{"id": "R410", "type": "Suite", "floor": "4", "rate": "$250", "status": "Occupied"},
	}),
	"admin.table.guests": NewStaticSource([]map[string]string{
		{"id": "U001", "name": "Amelia Hart", "email": "amelia@example.com", "role": "Guest", "status": "Active"},
		{"id": "U002", "name": "Jonas Weber", "email": "jonas@example.com", "role": "Guest", "status": "Inactive"},
		{"id": "U003", "name": "Sara Ndlovu", "email": "sara@apexstay.com", "role": "Manager", "status": "Active"},
	}),
}

// DefaultTableDefinitions returns deep copies of the built-in admin tables.
func DefaultTableDefinitions() []TableDefinition {
	out := make([]TableDefinition, len(defaultTableDefinitions))
	for i, def := range defaultTableDefinitions {
		out[i] = def.Clone()
	}
	return out
}

// NewStaticSource returns a source that always serves copies of rows.
func NewStaticSource(rows []map[string]string) RecordSource {
	return staticSource{rows: rows}
}

type staticSource struct {
	rows []map[string]string
}

func (s staticSource) Records(context.Context, SourceQuery) ([]map[string]string, error) {
	out := make([]map[string]string, len(s.rows))
	for i, row := range s.rows {
		cp := make(map[string]string, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[i] = cp
	}
	return out, nil
}
