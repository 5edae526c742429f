// Package models defines the core data structures for registered businesses,
// their services, and the persisted application document.
package models

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// AccountStatus is the lifecycle state of a registered business.
type AccountStatus string

const (
	// StatusPending is the state of every account right after registration.
	StatusPending AccountStatus = "pending"
	// StatusActive is reached only after a successful payment.
	StatusActive AccountStatus = "active"
)

// PackageID identifies a subscription tier.
type PackageID string

const (
	PackageBasic        PackageID = "basic"
	PackageProfessional PackageID = "professional"
	PackagePremium      PackageID = "premium"
)

// PaymentMethod is the family of instrument used for a payment.
type PaymentMethod string

const (
	PaymentMobileMoney PaymentMethod = "mobileMoney"
	PaymentCard        PaymentMethod = "card"
	// PaymentPlaceholder is stored until a real payment is attempted.
	PaymentPlaceholder PaymentMethod = "placeholder"
)

// PaymentStatus is the outcome of the last payment attempt.
type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "initiated"
	PaymentSuccess   PaymentStatus = "success"
	PaymentFailed    PaymentStatus = "failed"
)

// AppData is the root document persisted under a single storage key.
type AppData struct {
	// Users are kept in registration order.
	Users   []User  `json:"users"`
	Session Session `json:"session"`
}

// Session points at the current user. It does not own the user.
type Session struct {
	CurrentUserID *string `json:"currentUserId"`
}

// User is a registered business together with everything it owns.
type User struct {
	ID           string        `json:"id"`
	BusinessName string        `json:"businessName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	PasswordHash string        `json:"passwordHash"`
	Country      string        `json:"country"`
	Status       AccountStatus `json:"status"`
	Package      PackageID     `json:"package"`
	Subscription Subscription  `json:"subscription"`
	Payment      Payment       `json:"payment"`
	Profile      Profile       `json:"profile"`
	Services     []Service     `json:"services"`
}

// passwordKey digests plain to 44 bytes so passwords of any length stay
// under bcrypt's 72 byte input limit.
func passwordKey(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword returns the bcrypt hash stored for plain.
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordKey(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored password hash.
func (u *User) CheckPassword(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), passwordKey(plain)) == nil
}

// Subscription is a stored flag plus the paid period. Nothing expires it
// automatically.
type Subscription struct {
	IsActive  bool   `json:"isActive"`
	Package   string `json:"package"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Payment records the last payment attempt.
type Payment struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId"`
}

// Profile is the public face of a business on the directory.
type Profile struct {
	LogoURL      string   `json:"logoUrl"`
	Description  string   `json:"description"`
	Contact      Contact  `json:"contact"`
	ServiceAreas []string `json:"serviceAreas"`
	// Completion is a display cache. Logic always recomputes it.
	Completion int `json:"completion"`
}

// Contact holds the ways customers can reach a business.
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// Service is a single offering listed by a business.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
	// Price is free text; no arithmetic is done on it.
	Price string `json:"price"`
}

// ServiceData is a service before it has been assigned an ID.
type ServiceData struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Description string `json:"description" validate:"required"`
	PhotoURL    string `json:"photoUrl"`
	Price       string `json:"price"`
}

// ServicePatch carries the fields to overwrite on an existing service.
// Nil fields are left untouched.
type ServicePatch struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	Price       *string `json:"price,omitempty"`
}

// Apply shallow-merges the patch onto s.
func (p ServicePatch) Apply(s *Service) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.PhotoURL != nil {
		s.PhotoURL = *p.PhotoURL
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
}

// RegistrationData is what a business submits when signing up.
type RegistrationData struct {
	BusinessName string `json:"businessName" validate:"required"`
	Email        string `json:"email" validate:"required,loose_email"`
	Phone        string `json:"phone" validate:"required,phone"`
	Password     string `json:"password" validate:"required,password"`
	Country      string `json:"country" validate:"required"`
}

// BusinessProfile is the standalone profile record kept under its own key,
// outside AppData.
type BusinessProfile struct {
	Logo         string   `json:"logo"`
	Description  string   `json:"description"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	WhatsApp     *string  `json:"whatsapp"`
	ServiceAreas []string `json:"serviceAreas"`
}

// BusinessProfileRecord is the envelope stored under the sidecar key.
type BusinessProfileRecord struct {
	BusinessProfile BusinessProfile `json:"businessProfile"`
}
