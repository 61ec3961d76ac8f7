package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dataview/components/bookings"
)

func (a *app) handleBook(ctx router.Context) error {
	var req bookings.Booking
	if err := json.Unmarshal(ctx.Body(), &req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	booked, err := a.desk.Book(ctx.Context(), req)
	if err != nil {
		return ctx.JSON(bookingStatus(err), map[string]string{"error": err.Error()})
	}
	return ctx.JSON(http.StatusCreated, booked)
}

func (a *app) handleQuote(ctx router.Context) error {
	quantity, _ := strconv.Atoi(ctx.Query("quantity"))
	quote := bookings.QuoteRoom(ctx.Query("room_type"), ctx.Query("check_in"), ctx.Query("check_out"), quantity)
	return ctx.JSON(http.StatusOK, quote)
}

func bookingStatus(err error) int {
	switch {
	case errors.Is(err, bookings.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, bookings.ErrCheckoutBeforeCheckin),
		errors.Is(err, bookings.ErrMissingFields),
		errors.Is(err, bookings.ErrUnknownKind):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var demoBookings = []bookings.Booking{
	{Kind: bookings.KindRoom, Guest: "Amelia Hart", RoomType: "deluxe", Quantity: 1, CheckIn: "2026-05-02", CheckOut: "2026-05-05"},
	{Kind: bookings.KindRoom, Guest: "Jonas Weber", RoomType: "normal", Quantity: 1, CheckIn: "2026-05-03", CheckOut: "2026-05-04"},
	{Kind: bookings.KindPool, Guest: "Priya Nair", Date: "2026-05-03", Time: "10:00", Guests: 2, Amount: 40},
	{Kind: bookings.KindKarting, Guest: "Diego Santos", Package: "Grand Prix", Amount: 85},
	{Kind: bookings.KindRoom, Guest: "Hana Kobayashi", RoomType: "luxury", Quantity: 1, CheckIn: "2026-05-04", CheckOut: "2026-05-09"},
}

// seedBookings fills an empty ledger with demo reservations.
func seedBookings(ctx context.Context, desk *bookings.Desk) error {
	existing, err := desk.Ledger().List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, b := range demoBookings {
		if _, err := desk.Book(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
