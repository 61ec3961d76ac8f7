// Package bookings simulates the hotel booking desk: booking ids, form
// validation, price quotes and ledgers whose contents feed the admin
// bookings table.
package bookings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the booked facility.
type Kind string

// Supported booking kinds.
const (
	KindRoom    Kind = "room"
	KindPool    Kind = "pool"
	KindKarting Kind = "karting"
)

// StatusConfirmed is the status of every freshly created booking.
const StatusConfirmed = "Confirmed"

const dateLayout = "2006-01-02"

var (
	// ErrCheckoutBeforeCheckin rejects room stays with no nights.
	ErrCheckoutBeforeCheckin = errors.New("Check-out date must be after check-in date")
	// ErrMissingFields rejects bookings without their required fields.
	ErrMissingFields = errors.New("Please fill in all required fields")
	// ErrUnknownKind rejects kinds other than room, pool and karting.
	ErrUnknownKind = errors.New("bookings: unknown booking kind")
	// ErrNotFound is returned when a booking id is unknown.
	ErrNotFound = errors.New("bookings: booking not found")
	// ErrAlreadyExists is returned when a booking id is reused.
	ErrAlreadyExists = errors.New("bookings: booking already exists")
)

// Booking is one reservation made through the desk.
type Booking struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Guest     string    `json:"guest"`
	RoomType  string    `json:"room_type,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	CheckIn   string    `json:"check_in,omitempty"`
	CheckOut  string    `json:"check_out,omitempty"`
	Date      string    `json:"date,omitempty"`
	Time      string    `json:"time,omitempty"`
	Guests    int       `json:"guests,omitempty"`
	Package   string    `json:"package,omitempty"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Random yields random bits; *math/rand/v2.Rand satisfies it.
type Random interface {
	Uint64() uint64
}

var idPrefixes = map[Kind]string{
	KindRoom:    "APX",
	KindPool:    "POOL",
	KindKarting: "KART",
}

// NewBookingID builds ids such as APX48213907K2Q: the kind prefix, the last
// eight digits of the Unix millisecond clock and three uppercase base36 chars.
func NewBookingID(kind Kind, now time.Time, rnd Random) (string, error) {
	prefix, ok := idPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	suffix := strconv.FormatUint(rnd.Uint64()%(36*36*36), 36)
	suffix = strings.Repeat("0", 3-len(suffix)) + suffix
	return prefix + millis + strings.ToUpper(suffix), nil
}

// Validate checks the fields each booking form requires.
func Validate(b Booking) error {
	switch b.Kind {
	case KindRoom:
		if b.CheckIn == "" || b.CheckOut == "" {
			return nil
		}
		in, err := time.Parse(dateLayout, b.CheckIn)
		if err != nil {
			return fmt.Errorf("bookings: check-in date: %w", err)
		}
		out, err := time.Parse(dateLayout, b.CheckOut)
		if err != nil {
			return fmt.Errorf("bookings: check-out date: %w", err)
		}
		if !out.After(in) {
			return ErrCheckoutBeforeCheckin
		}
	case KindPool:
		if b.Date == "" || b.Time == "" || b.Guests <= 0 {
			return ErrMissingFields
		}
	case KindKarting:
		if strings.TrimSpace(b.Package) == "" {
			return ErrMissingFields
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, b.Kind)
	}
	return nil
}

// TaxRate is applied on top of the room subtotal.
const TaxRate = 0.12

var roomRates = map[string]float64{
	"normal": 99,
	"deluxe": 149,
	"luxury": 299,
}

// Quote is the price summary shown next to the room booking form.
type Quote struct {
	Rate     float64 `json:"rate"`
	Nights   int     `json:"nights"`
	Subtotal float64 `json:"subtotal"`
	Taxes    float64 `json:"taxes"`
	Total    float64 `json:"total"`
}

// QuoteRoom prices a stay. Unknown room types and invalid ranges quote zero.
func QuoteRoom(roomType, checkIn, checkOut string, quantity int) Quote {
	if quantity <= 0 {
		quantity = 1
	}
	rate := roomRates[strings.ToLower(roomType)]
	q := Quote{Rate: rate * float64(quantity)}
	in, errIn := time.Parse(dateLayout, checkIn)
	out, errOut := time.Parse(dateLayout, checkOut)
	if errIn == nil && errOut == nil && out.After(in) {
		q.Nights = int(math.Ceil(out.Sub(in).Hours() / 24))
	}
	q.Subtotal = rate * float64(q.Nights) * float64(quantity)
	q.Taxes = math.Round(q.Subtotal*TaxRate*100) / 100
	q.Total = q.Subtotal + q.Taxes
	return q
}
