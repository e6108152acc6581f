package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway is the production Gateway backed by Stripe PaymentIntents.
type StripeGateway struct {
	logger     *zap.Logger
	configured bool
}

// NewStripeGateway sets the global Stripe key and returns the gateway.
// An empty key leaves the gateway unconfigured: every call fails fast with
// ErrNotConfigured instead of reaching for the network.
func NewStripeGateway(apiKey string, logger *zap.Logger) *StripeGateway {
	if apiKey != "" {
		stripe.Key = apiKey
	}
	return &StripeGateway{logger: logger, configured: apiKey != ""}
}

func (g *StripeGateway) Authorize(ctx context.Context, amount float64, currency string) (*Authorization, error) {
	if !g.configured {
		return nil, ErrNotConfigured
	}
	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(MinorUnits(amount)),
		Currency:      stripe.String(currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, &GatewayError{Op: "authorize", Message: err.Error()}
	}
	g.logger.Info("Authorized payment",
		zap.String("paymentIntent", pi.ID), zap.Int64("amountMinor", pi.Amount))
	return &Authorization{Reference: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) Capture(ctx context.Context, reference string) (*CaptureResult, error) {
	if !g.configured {
		return nil, ErrNotConfigured
	}
	pi, err := paymentintent.Capture(reference, &stripe.PaymentIntentCaptureParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, &GatewayError{Op: "capture", Message: err.Error()}
	}
	g.logger.Info("Captured payment",
		zap.String("paymentIntent", pi.ID), zap.String("status", string(pi.Status)))
	return &CaptureResult{Status: string(pi.Status), Amount: MajorUnits(pi.AmountReceived)}, nil
}

func (g *StripeGateway) Cancel(ctx context.Context, reference string) error {
	if !g.configured {
		return ErrNotConfigured
	}
	pi, err := paymentintent.Cancel(reference, &stripe.PaymentIntentCancelParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return &GatewayError{Op: "cancel", Message: err.Error()}
	}
	g.logger.Info("Released payment authorization", zap.String("paymentIntent", pi.ID))
	return nil
}
