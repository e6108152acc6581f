package booking

import (
	"context"
	"errors"
	"testing"

	"cleanitalia/database/repository"
	"cleanitalia/models"
	"cleanitalia/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	captures   []string
	cancels    []string
	captureErr error
	cancelErr  error
}

func (g *fakeGateway) Authorize(ctx context.Context, amount float64, currency string) (*payment.Authorization, error) {
	return &payment.Authorization{Reference: "pi_test", ClientSecret: "secret"}, nil
}

func (g *fakeGateway) Capture(ctx context.Context, reference string) (*payment.CaptureResult, error) {
	g.captures = append(g.captures, reference)
	if g.captureErr != nil {
		return nil, g.captureErr
	}
	return &payment.CaptureResult{Status: "succeeded", Amount: 80}, nil
}

func (g *fakeGateway) Cancel(ctx context.Context, reference string) error {
	g.cancels = append(g.cancels, reference)
	return g.cancelErr
}

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Notify(ctx context.Context, b models.Booking, event string) {
	n.events = append(n.events, event)
}

type fakeBroadcaster struct {
	pushes int
}

func (b *fakeBroadcaster) BookingsUpdated() { b.pushes++ }

func newTestService() (*DefaultService, *fakeGateway, *fakeNotifier, *fakeBroadcaster) {
	gw := &fakeGateway{}
	notif := &fakeNotifier{}
	hub := &fakeBroadcaster{}
	svc := &DefaultService{
		Repo:     repository.NewMemoryBookingRepo(),
		Gateway:  gw,
		Notifier: notif,
		Events:   hub,
		Logger:   zap.NewNop(),
	}
	return svc, gw, notif, hub
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		ServiceID:   1,
		CityID:      1,
		Name:        "Giulia Rossi",
		Email:       "giulia@example.com",
		Phone:       "+39 333 1234567",
		Street:      "Via Roma",
		HouseNumber: "12",
		Date:        "2026-09-07",
		Time:        "10:00",
		Hours:       4,
		Cleaners:    1,
		TotalAmount: 80,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _, notif, hub := newTestService()

	req := validRequest()
	req.PaymentIntentID = "pi_123"
	b, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, models.StripeAuthorized, b.StripeStatus)
	assert.NotZero(t, b.ID)
	assert.Equal(t, []string{EventPending}, notif.events)
	assert.Equal(t, 1, hub.pushes)
}

func TestCreateBookingWithoutPayment(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StripeNone, b.StripeStatus)
	assert.Empty(t, b.PaymentIntentID)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, notif, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
		field  string
	}{
		{"missing name", func(r *models.BookingRequest) { r.Name = "" }, "name"},
		{"missing email", func(r *models.BookingRequest) { r.Email = "" }, "email"},
		{"missing phone", func(r *models.BookingRequest) { r.Phone = "" }, "phone"},
		{"missing date", func(r *models.BookingRequest) { r.Date = "" }, "date"},
		{"missing time", func(r *models.BookingRequest) { r.Time = "" }, "time"},
		{"zero hours", func(r *models.BookingRequest) { r.Hours = 0 }, "hours"},
		{"zero cleaners", func(r *models.BookingRequest) { r.Cleaners = 0 }, "cleaners"},
		{"negative amount", func(r *models.BookingRequest) { r.TotalAmount = -1 }, "totalAmount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Empty(t, notif.events, "rejected requests must not notify")
}

func TestConfirmCapturesPayment(t *testing.T) {
	svc, gw, notif, _ := newTestService()

	req := validRequest()
	req.PaymentIntentID = "pi_123"
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	b, err := svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.Equal(t, models.StripeCaptured, b.StripeStatus)
	assert.Equal(t, []string{"pi_123"}, gw.captures)
	assert.Equal(t, []string{EventPending, EventConfirmed}, notif.events)
}

func TestConfirmSurvivesCaptureFailure(t *testing.T) {
	svc, gw, _, _ := newTestService()
	gw.captureErr = &payment.GatewayError{Op: "capture", Message: "card declined"}

	req := validRequest()
	req.PaymentIntentID = "pi_123"
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	b, err := svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err, "a capture failure must not block the decision")
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.Equal(t, models.StripeCaptured, b.StripeStatus)
}

func TestConfirmWithoutPaymentSkipsGateway(t *testing.T) {
	svc, gw, _, _ := newTestService()

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	b, err := svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, gw.captures)
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.Equal(t, models.StripeNone, b.StripeStatus, "no reference means nothing was captured")
}

func TestRejectWithoutPaymentSkipsGateway(t *testing.T) {
	svc, gw, _, _ := newTestService()

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	b, err := svc.Reject(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, gw.cancels)
	assert.Equal(t, models.StatusCancelled, b.Status)
	assert.Equal(t, models.StripeNone, b.StripeStatus, "no reference means nothing was released")
}

func TestRejectReleasesAuthorization(t *testing.T) {
	svc, gw, notif, _ := newTestService()

	req := validRequest()
	req.PaymentIntentID = "pi_456"
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	b, err := svc.Reject(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)
	assert.Equal(t, models.StripeReleased, b.StripeStatus)
	assert.Equal(t, []string{"pi_456"}, gw.cancels)
	assert.Equal(t, []string{EventPending, EventRejected}, notif.events)
}

func TestRejectSurvivesReleaseFailure(t *testing.T) {
	svc, gw, _, _ := newTestService()
	gw.cancelErr = errors.New("stripe is down")

	req := validRequest()
	req.PaymentIntentID = "pi_456"
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	b, err := svc.Reject(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)
}

func TestMarkPaidLeavesStripeStatus(t *testing.T) {
	svc, gw, _, _ := newTestService()

	req := validRequest()
	req.PaymentIntentID = "pi_789"
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	b, err := svc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, b.Status)
	assert.Equal(t, models.StripeAuthorized, b.StripeStatus)
	assert.Empty(t, gw.captures, "marking paid must not touch the gateway")
}

func TestLifecycleUnknownID(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	var nf *NotFoundError
	_, err := svc.Get(ctx, 99)
	assert.ErrorAs(t, err, &nf)
	_, err = svc.Confirm(ctx, 99)
	assert.ErrorAs(t, err, &nf)
	_, err = svc.Reject(ctx, 99)
	assert.ErrorAs(t, err, &nf)
	_, err = svc.MarkPaid(ctx, 99)
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, svc.Delete(ctx, 99), &nf)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, first.ID)
	require.NoError(t, err)

	pending, err := svc.List(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStatsRevenue(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	// One of each status, 80 euros apiece. Revenue counts confirmed and
	// paid only.
	ids := make([]int64, 4)
	for i := range ids {
		b, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
		ids[i] = b.ID
	}
	_, err := svc.Confirm(ctx, ids[0])
	require.NoError(t, err)
	_, err = svc.Reject(ctx, ids[1])
	require.NoError(t, err)
	_, err = svc.MarkPaid(ctx, ids[2])
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1, stats.Paid)
	assert.Equal(t, 160.0, stats.Revenue)
}

func TestClearAll(t *testing.T) {
	svc, _, _, hub := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.ClearAll(ctx))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 2, hub.pushes, "create and clear each push an update")
}
