package storage

import (
	"math"

	"github.com/cipromart/directory/internal/models"
)

const completionChecks = 6

// CalculateProfileCompletion scores how complete a business profile is, from
// 0 to 100, over six checks: logo, description, WhatsApp contact, at least
// one service area, at least one service, and an active subscription.
// The stored Profile.Completion value is never consulted.
func CalculateProfileCompletion(user *models.User) int {
	if user == nil {
		return 0
	}
	done := 0
	for _, ok := range []bool{
		user.Profile.LogoURL != "",
		user.Profile.Description != "",
		user.Profile.Contact.WhatsApp != "",
		len(user.Profile.ServiceAreas) > 0,
		len(user.Services) > 0,
		user.Subscription.IsActive,
	} {
		if ok {
			done++
		}
	}
	return int(math.Round(float64(done) / completionChecks * 100))
}
