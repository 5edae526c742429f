// Package service implements the dashboard flows on top of the data store:
// registration and sign-in, package selection and simulated payment, the
// service catalog, and the business profile.
package service

import "errors"

var (
	// ErrUserNotFound is returned when a flow needs a user that does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned by Login for any email/password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnknownPackage is returned for a package id outside the catalog.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrUnknownPaymentMethod is returned for a payment option id outside the catalog.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	// ErrPaymentMethodUnavailable is returned when the option is not offered in the user's country.
	ErrPaymentMethodUnavailable = errors.New("payment method not available in this country")
	// ErrPaymentFailed wraps a gateway failure.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrServiceLimitReached is returned when the package allows no more services.
	ErrServiceLimitReached = errors.New("service limit reached for package")
	// ErrServiceNotFound is returned when editing a service the user does not have.
	ErrServiceNotFound = errors.New("service not found")
)
