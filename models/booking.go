package models

import "time"

// Booking statuses. A booking is created pending and moves to exactly one
// terminal status through an admin decision; no transition goes back.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusPaid      = "paid"
)

// Stripe payment statuses tracked alongside the booking status. The two are
// deliberately independent: a failed capture never blocks a confirm.
const (
	StripeAuthorized = "authorized"
	StripeCaptured   = "captured"
	StripeReleased   = "released"
	StripeNone       = "none"
)

// Booking represents one scheduled cleaning appointment.
type Booking struct {
	ID                 int64          `db:"id" json:"id"`
	ServiceID          int64          `db:"service_id" json:"serviceId"`
	CityID             int64          `db:"city_id" json:"cityId"`
	Name               string         `db:"name" json:"name"`
	Email              string         `db:"email" json:"email"`
	Phone              string         `db:"phone" json:"phone"`
	Street             string         `db:"street" json:"street"`
	HouseNumber        string         `db:"house_number" json:"houseNumber"`
	PropertySize       string         `db:"property_size" json:"propertySize,omitempty"`
	Doorbell           string         `db:"doorbell" json:"doorbell,omitempty"`
	Date               string         `db:"date" json:"date"` // "YYYY-MM-DD"
	Time               string         `db:"time" json:"time"` // "HH:MM"
	Hours              int            `db:"hours" json:"hours"`
	Cleaners           int            `db:"cleaners" json:"cleaners"`
	TotalAmount        float64        `db:"total_amount" json:"totalAmount"` // euros
	Notes              string         `db:"notes" json:"notes,omitempty"`
	AdditionalServices StringList     `db:"additional_services" json:"additionalServices"`
	Supplies           StringList     `db:"supplies" json:"supplies"`
	Status             string         `db:"status" json:"status"`
	StripeStatus       string         `db:"stripe_status" json:"stripeStatus"`
	PaymentIntentID    string         `db:"payment_intent_id" json:"paymentIntentId,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updatedAt"`
}

// BookingRequest is the public creation payload.
type BookingRequest struct {
	ServiceID          int64    `json:"serviceId"`
	CityID             int64    `json:"cityId"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Street             string   `json:"street"`
	HouseNumber        string   `json:"houseNumber"`
	PropertySize       string   `json:"propertySize"`
	Doorbell           string   `json:"doorbell"`
	Date               string   `json:"date"`
	Time               string   `json:"time"`
	Hours              int      `json:"hours"`
	Cleaners           int      `json:"cleaners"`
	TotalAmount        float64  `json:"totalAmount"`
	Notes              string   `json:"notes"`
	AdditionalServices []string `json:"additionalServices"`
	Supplies           []string `json:"supplies"`
	PaymentIntentID    string   `json:"paymentIntentId"`
}

// Stats aggregates the admin dashboard counters.
type Stats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	Cancelled int     `json:"cancelled"`
	Paid      int     `json:"paid"`
	Revenue   float64 `json:"revenue"` // sum over confirmed and paid bookings
}
