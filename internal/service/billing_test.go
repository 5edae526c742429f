package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cipromart/directory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type declineGateway struct{ err error }

func (g declineGateway) Charge(context.Context, ChargeRequest) error { return g.err }

type recordingGateway struct{ got []ChargeRequest }

func (g *recordingGateway) Charge(_ context.Context, req ChargeRequest) error {
	g.got = append(g.got, req)
	return nil
}

func fixedNow() time.Time { return time.Date(2025, 1, 31, 9, 30, 0, 0, time.UTC) }

func TestSelectPackage(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	u := mustCreate(t, store, registration())
	svc := NewBillingService(store, SimulatedGateway{}, nil)

	got, err := svc.SelectPackage(ctx, u.ID, models.PackagePremium)
	require.NoError(t, err)
	assert.Equal(t, models.PackagePremium, got.Package)

	stored, err := store.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PackagePremium, stored.Package)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.False(t, stored.Subscription.IsActive)

	_, err = svc.SelectPackage(ctx, u.ID, "gold")
	assert.ErrorIs(t, err, ErrUnknownPackage)

	_, err = svc.SelectPackage(ctx, "ghost", models.PackageBasic)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPay_Success(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	u := mustCreate(t, store, registration())
	gw := &recordingGateway{}
	svc := NewBillingService(store, gw, nil)
	svc.now = fixedNow

	_, err := svc.SelectPackage(ctx, u.ID, models.PackageProfessional)
	require.NoError(t, err)
	require.NoError(t, store.Logout(ctx))

	got, err := svc.Pay(ctx, u.ID, "mtn-momo")
	require.NoError(t, err)

	require.Len(t, gw.got, 1)
	assert.Equal(t, "25,000", gw.got[0].Amount)
	assert.Equal(t, "FCFA", gw.got[0].Currency)

	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, models.PackageProfessional, got.Package)
	assert.Equal(t, models.Subscription{
		IsActive:  true,
		Package:   "professional",
		StartDate: "2025-01-31T09:30:00.000Z",
		EndDate:   "2025-03-03T09:30:00.000Z",
	}, got.Subscription)
	assert.Equal(t, models.PaymentMobileMoney, got.Payment.Method)
	assert.Equal(t, models.PaymentSuccess, got.Payment.Status)
	assert.NotEmpty(t, got.Payment.TransactionID)
	assert.Equal(t, 17, got.Profile.Completion)

	stored, err := store.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	cur, err := store.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

func TestPay_CardMethod(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	reg := registration()
	reg.Country = "Kenya"
	u := mustCreate(t, store, reg)
	svc := NewBillingService(store, SimulatedGateway{}, nil)

	got, err := svc.Pay(ctx, u.ID, "bank-transfer")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCard, got.Payment.Method)
	assert.Equal(t, "basic", got.Subscription.Package)
}

func TestPay_Rejections(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	reg := registration()
	reg.Country = "Nigeria"
	u := mustCreate(t, store, reg)
	svc := NewBillingService(store, SimulatedGateway{}, nil)

	_, err := svc.Pay(ctx, u.ID, "orange-money")
	assert.ErrorIs(t, err, ErrPaymentMethodUnavailable)

	_, err = svc.Pay(ctx, u.ID, "paypal")
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)

	_, err = svc.Pay(ctx, "ghost", "visa-card")
	assert.ErrorIs(t, err, ErrUserNotFound)

	stored, err := store.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentInitiated, stored.Payment.Status)
}

func TestPay_GatewayFailureRecorded(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	u := mustCreate(t, store, registration())
	svc := NewBillingService(store, declineGateway{err: errors.New("insufficient funds")}, nil)

	_, err := svc.Pay(ctx, u.ID, "visa-card")
	require.ErrorIs(t, err, ErrPaymentFailed)
	assert.Contains(t, err.Error(), "insufficient funds")

	stored, err := store.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, stored.Payment.Status)
	assert.Equal(t, models.PaymentCard, stored.Payment.Method)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.False(t, stored.Subscription.IsActive)
}

func TestPay_CancelledDuringDelay(t *testing.T) {
	store := newStore(t)
	u := mustCreate(t, store, registration())
	svc := NewBillingService(store, SimulatedGateway{Delay: time.Minute}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Pay(ctx, u.ID, "visa-card")
	require.ErrorIs(t, err, ErrPaymentFailed)

	stored, err := store.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, stored.Payment.Status)
}

func TestSimulatedGateway_Delay(t *testing.T) {
	g := SimulatedGateway{Delay: 10 * time.Millisecond}
	start := time.Now()
	require.NoError(t, g.Charge(context.Background(), ChargeRequest{}))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
