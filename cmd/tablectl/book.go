package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/goliatone/go-dataview/components/bookings"
	bookingsqlite "github.com/goliatone/go-dataview/components/bookings/sqlite"
)

type bookCmd struct {
	DB       string  `required:"" type:"path" help:"SQLite booking ledger to write to."`
	Kind     string  `required:"" enum:"room,pool,karting" help:"Booking kind (room, pool, karting)."`
	Guest    string  `required:"" help:"Guest name."`
	RoomType string  `help:"Room type for room bookings (normal, deluxe, luxury)."`
	Quantity int     `default:"1" help:"Number of rooms."`
	CheckIn  string  `help:"Check-in date (YYYY-MM-DD)."`
	CheckOut string  `help:"Check-out date (YYYY-MM-DD)."`
	Date     string  `help:"Pool slot date (YYYY-MM-DD)."`
	Time     string  `help:"Pool slot time (HH:MM)."`
	Guests   int     `help:"Pool guests."`
	Package  string  `help:"Karting package."`
	Amount   float64 `help:"Amount charged; room stays are quoted when zero."`
}

func (cmd *bookCmd) Run(ctx context.Context) error {
	store, err := bookingsqlite.Open(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()
	return cmd.run(ctx, bookings.NewDesk(store), os.Stdout)
}

func (cmd *bookCmd) run(ctx context.Context, desk *bookings.Desk, out io.Writer) error {
	booked, err := desk.Book(ctx, bookings.Booking{
		Kind:     bookings.Kind(cmd.Kind),
		Guest:    cmd.Guest,
		RoomType: cmd.RoomType,
		Quantity: cmd.Quantity,
		CheckIn:  cmd.CheckIn,
		CheckOut: cmd.CheckOut,
		Date:     cmd.Date,
		Time:     cmd.Time,
		Guests:   cmd.Guests,
		Package:  cmd.Package,
		Amount:   cmd.Amount,
	})
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(booked)
}
