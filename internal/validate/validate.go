// Package validate holds the advisory input checks applied before data is
// handed to the store. The store itself never rejects a write.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/cipromart/directory/internal/models"
	"github.com/go-playground/validator/v10"
)

// space is the whitespace class used by the form checks. RE2's \s only
// covers ASCII, so the Unicode separators and BOM are listed explicitly.
const space = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	// Deliberately loose: something@something.something with no whitespace.
	emailRe      = regexp.MustCompile(`^[^@` + space + `]+@[^@` + space + `]+\.[^@` + space + `]+$`)
	phoneRe      = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	whitespaceRe = regexp.MustCompile(`[` + space + `]`)
)

// MinPasswordLength is the only password rule.
const MinPasswordLength = 6

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone reports whether s, once whitespace is removed, is an E.164-shaped
// number: optional '+', a non-zero digit, then up to 15 more digits.
func Phone(s string) bool {
	return phoneRe.MatchString(whitespaceRe.ReplaceAllString(s, ""))
}

// Password reports whether s is long enough. Length is counted in UTF-16
// code units, so characters outside the BMP count twice.
func Password(s string) bool {
	return len(utf16.Encode([]rune(s))) >= MinPasswordLength
}

// Errors maps a form field to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// Registration of a fixed tag name with a valid func cannot fail.
	_ = val.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	})
	_ = val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String())
	})
	_ = val.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return Password(fl.Field().String())
	})
	return val
}

var registrationMessages = map[string]map[string]string{
	"businessName": {"required": "Business name is required"},
	"email": {
		"required":    "Email is required",
		"loose_email": "Please enter a valid email address",
	},
	"phone": {
		"required": "Phone number is required",
		"phone":    "Please enter a valid phone number",
	},
	"password": {
		"required": "Password is required",
		"password": "Password must be at least 6 characters",
	},
	"country": {"required": "Please select a country"},
}

var serviceMessages = map[string]map[string]string{
	"name":        {"required": "Service name is required"},
	"description": {"required": "Service description is required"},
}

// Registration checks a sign-up form. It returns Errors keyed by JSON
// field name, or nil.
func Registration(reg models.RegistrationData) error {
	reg.BusinessName = strings.TrimSpace(reg.BusinessName)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Phone = strings.TrimSpace(reg.Phone)
	return check(reg, registrationMessages)
}

// ServiceForm checks a service before it is added or saved.
func ServiceForm(in models.ServiceData) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return check(in, serviceMessages)
}

func check(s any, messages map[string]map[string]string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := lowerCamel(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = field + " is invalid"
		}
		out[field] = msg
	}
	return out
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
