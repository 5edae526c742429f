package app

import "github.com/cipromart/directory/internal/models"

func registrationFixture() models.RegistrationData {
	return models.RegistrationData{
		BusinessName: "Douala Roofing",
		Email:        "owner@roofing.cm",
		Phone:        "+237612345678",
		Password:     "secret1",
		Country:      "Cameroon",
	}
}
