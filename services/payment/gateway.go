// Package payment isolates the Stripe side effects from booking state
// transitions. Authorizations are manual-capture: funds are reserved at
// booking time and only moved when an admin confirms.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrNotConfigured is returned by every operation when no Stripe key is set.
// No network call is attempted in that case.
var ErrNotConfigured = errors.New("payment gateway not configured")

// GatewayError wraps an upstream processor failure with the operation name.
type GatewayError struct {
	Op      string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment %s failed: %s", e.Op, e.Message)
}

// Authorization is the result of reserving funds.
type Authorization struct {
	Reference    string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
}

// CaptureResult reports the outcome of converting an authorization into a
// transfer. Amount is in major currency units.
type CaptureResult struct {
	Status string
	Amount float64
}

// Gateway wraps the three processor operations the booking lifecycle needs.
type Gateway interface {
	Authorize(ctx context.Context, amount float64, currency string) (*Authorization, error)
	Capture(ctx context.Context, reference string) (*CaptureResult, error)
	Cancel(ctx context.Context, reference string) error
}

// MinorUnits converts a major-unit decimal amount (euros) into the integer
// minor-unit representation the processor requires. Exact integer rounding,
// no floating-point drift.
func MinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

// MajorUnits converts processor minor units back to a major-unit decimal.
func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
