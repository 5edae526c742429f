package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/storage"
	"go.uber.org/zap"
)

// isoLayout is ISO 8601 in UTC with millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z"

// BillingStore defines the persistence operations needed by BillingService.
type BillingStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SetCurrentUser(ctx context.Context, userID string) error
	GenerateID() string
}

// ChargeRequest is what a Gateway is asked to collect.
type ChargeRequest struct {
	UserID   string
	Package  models.PackageType
	Option   models.PaymentOption
	Amount   string
	Currency string
}

// Gateway collects a payment.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) error
}

// SimulatedGateway approves every charge after Delay.
type SimulatedGateway struct {
	Delay time.Duration
}

// Charge waits for Delay and succeeds, or fails if ctx ends first.
func (g SimulatedGateway) Charge(ctx context.Context, _ ChargeRequest) error {
	if g.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// BillingService handles package selection and payment.
type BillingService struct {
	store   BillingStore
	gateway Gateway
	log     *zap.Logger
	now     func() time.Time
}

// NewBillingService constructs a BillingService. A nil logger is replaced
// with a no-op one.
func NewBillingService(store BillingStore, gateway Gateway, log *zap.Logger) *BillingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BillingService{store: store, gateway: gateway, log: log, now: time.Now}
}

// SelectPackage records the package the user intends to pay for.
func (s *BillingService) SelectPackage(ctx context.Context, userID string, pkg models.PackageID) (*models.User, error) {
	if _, ok := models.LookupPackage(pkg); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPackage, pkg)
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.Package = pkg
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Pay charges the user's selected package through the gateway using the
// payment option optionID. On success the account becomes active with a
// one month subscription and the session is pointed at the user. On
// gateway failure the attempt is recorded as failed and ErrPaymentFailed
// is returned.
func (s *BillingService) Pay(ctx context.Context, userID, optionID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	pkg, ok := models.LookupPackage(user.Package)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPackage, user.Package)
	}
	opt, ok := models.LookupPaymentOption(optionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, optionID)
	}
	if !opt.AvailableIn(user.Country) {
		return nil, fmt.Errorf("%w: %s in %s", ErrPaymentMethodUnavailable, opt.Name, user.Country)
	}

	err = s.gateway.Charge(ctx, ChargeRequest{
		UserID:   user.ID,
		Package:  pkg,
		Option:   opt,
		Amount:   pkg.Price,
		Currency: pkg.Currency,
	})
	if err != nil {
		s.log.Warn("payment declined",
			zap.String("user_id", user.ID), zap.String("option", opt.ID), zap.Error(err))
		user.Payment = models.Payment{Method: opt.Method, Status: models.PaymentFailed}
		// The attempt is recorded even when ctx was what failed the charge.
		if uerr := s.store.UpdateUser(context.WithoutCancel(ctx), user); uerr != nil {
			return nil, uerr
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	start := s.now().UTC()
	end := start.AddDate(0, 1, 0)
	user.Status = models.StatusActive
	user.Subscription = models.Subscription{
		IsActive:  true,
		Package:   string(pkg.ID),
		StartDate: start.Format(isoLayout),
		EndDate:   end.Format(isoLayout),
	}
	user.Payment = models.Payment{
		Method:        opt.Method,
		Status:        models.PaymentSuccess,
		TransactionID: s.store.GenerateID(),
	}
	user.Profile.Completion = storage.CalculateProfileCompletion(user)

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.store.SetCurrentUser(ctx, user.ID); err != nil {
		return nil, err
	}
	s.log.Info("subscription activated",
		zap.String("user_id", user.ID),
		zap.String("package", string(pkg.ID)),
		zap.String("transaction_id", user.Payment.TransactionID))
	return user, nil
}
