package models

import "slices"

// PackageType describes a subscription tier offered on the directory.
type PackageType struct {
	ID       PackageID `json:"id"`
	Name     string    `json:"name"`
	Price    string    `json:"price"`
	Currency string    `json:"currency"`
	Period   string    `json:"period"`
	Features []string  `json:"features"`
	Popular  bool      `json:"popular,omitempty"`
	// MaxServices is the listing limit; zero means unlimited.
	MaxServices int `json:"maxServices"`
}

// Packages is the tier catalog in display order.
var Packages = []PackageType{
	{
		ID:       PackageBasic,
		Name:     "Basic",
		Price:    "15,000",
		Currency: "FCFA",
		Period:   "month",
		Features: []string{
			"Business Profile Creation",
			"Up to 5 Service Listings",
			"Basic Contact Information",
			"Mobile-Friendly Profile",
		},
		MaxServices: 5,
	},
	{
		ID:       PackageProfessional,
		Name:     "Professional",
		Price:    "25,000",
		Currency: "FCFA",
		Period:   "month",
		Popular:  true,
		Features: []string{
			"Everything in Basic",
			"Up to 20 Service Listings",
			"Photo Gallery (up to 10 photos)",
			"Priority in Search Results",
			"Customer Reviews & Ratings",
			"WhatsApp Integration",
		},
		MaxServices: 20,
	},
	{
		ID:       PackagePremium,
		Name:     "Premium",
		Price:    "50,000",
		Currency: "FCFA",
		Period:   "month",
		Features: []string{
			"Everything in Professional",
			"Unlimited Service Listings",
			"Unlimited Photo Gallery",
			"Featured Business Badge",
			"Advanced Analytics",
			"Social Media Integration",
			"Priority Customer Support",
		},
	},
}

// LookupPackage returns the catalog entry for id.
func LookupPackage(id PackageID) (PackageType, bool) {
	for _, p := range Packages {
		if p.ID == id {
			return p, true
		}
	}
	return PackageType{}, false
}

// ServiceCategories lists the categories a service can be filed under.
var ServiceCategories = []string{
	"Construction",
	"Professional",
	"Specialized",
	"Roofing",
	"Painting",
	"Carpentry",
	"Cleaning",
	"Pest Control",
	"Other",
}

// Countries lists the countries a business can register from.
var Countries = []string{
	"Cameroon",
	"Nigeria",
	"Ghana",
	"Kenya",
	"South Africa",
	"Other",
}

// PaymentOption is a concrete way to pay, e.g. a mobile money operator.
type PaymentOption struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Method PaymentMethod `json:"method"`
	// Countries restricts availability; empty means available everywhere.
	Countries []string `json:"countries,omitempty"`
}

// PaymentOptions is the full list of payment options.
var PaymentOptions = []PaymentOption{
	{ID: "mtn-momo", Name: "MTN Mobile Money", Method: PaymentMobileMoney, Countries: []string{"Cameroon", "Ghana"}},
	{ID: "orange-money", Name: "Orange Money", Method: PaymentMobileMoney, Countries: []string{"Cameroon"}},
	{ID: "visa-card", Name: "Visa/Mastercard", Method: PaymentCard},
	{ID: "bank-transfer", Name: "Bank Transfer", Method: PaymentCard},
}

// DefaultCountry is assumed when a user has no country on record.
const DefaultCountry = "Cameroon"

// AvailableIn reports whether the option can be used from country.
func (o PaymentOption) AvailableIn(country string) bool {
	if len(o.Countries) == 0 {
		return true
	}
	if country == "" {
		country = DefaultCountry
	}
	return slices.Contains(o.Countries, country)
}

// AvailablePaymentOptions returns the options usable from country.
func AvailablePaymentOptions(country string) []PaymentOption {
	out := make([]PaymentOption, 0, len(PaymentOptions))
	for _, o := range PaymentOptions {
		if o.AvailableIn(country) {
			out = append(out, o)
		}
	}
	return out
}

// LookupPaymentOption returns the option with the given id.
func LookupPaymentOption(id string) (PaymentOption, bool) {
	for _, o := range PaymentOptions {
		if o.ID == id {
			return o, true
		}
	}
	return PaymentOption{}, false
}
