package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/service"
)

// Prompter reads answers line by line from an input stream, printing each
// question to out first.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask prints label and returns the trimmed answer. ok is false once the
// input is exhausted.
func (p *Prompter) Ask(label string) (answer string, ok bool) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

// AskDefault is Ask with a value used when the answer is blank.
func (p *Prompter) AskDefault(label, def string) string {
	if def != "" {
		label = fmt.Sprintf("%s [%s]: ", label, def)
	} else {
		label += ": "
	}
	answer, _ := p.Ask(label)
	if answer == "" {
		return def
	}
	return answer
}

// askChange returns nil when the answer is blank, so the field is kept.
func (p *Prompter) askChange(label, current string) *string {
	answer, _ := p.Ask(fmt.Sprintf("%s [%s]: ", label, current))
	if answer == "" {
		return nil
	}
	return &answer
}

// PromptRegistration asks for the registration form.
func PromptRegistration(p *Prompter) models.RegistrationData {
	var reg models.RegistrationData
	reg.BusinessName = p.AskDefault("Business name", "")
	reg.Email = p.AskDefault("Email", "")
	reg.Phone = p.AskDefault("Phone", "")
	reg.Password = p.AskDefault("Password", "")
	reg.Country = p.AskDefault("Country", models.DefaultCountry)
	return reg
}

// PromptService asks for a new service listing.
func PromptService(p *Prompter) models.ServiceData {
	var in models.ServiceData
	in.Name = p.AskDefault("Service name", "")
	in.Category = p.AskDefault("Category ("+strings.Join(models.ServiceCategories, ", ")+")", "")
	in.Description = p.AskDefault("Description", "")
	in.PhotoURL = p.AskDefault("Photo URL", "")
	in.Price = p.AskDefault("Price", "")
	return in
}

// PromptServicePatch asks for changes to svc. Blank answers keep the
// current value.
func PromptServicePatch(p *Prompter, svc models.Service) models.ServicePatch {
	return models.ServicePatch{
		Name:        p.askChange("Service name", svc.Name),
		Category:    p.askChange("Category", svc.Category),
		Description: p.askChange("Description", svc.Description),
		PhotoURL:    p.askChange("Photo URL", svc.PhotoURL),
		Price:       p.askChange("Price", svc.Price),
	}
}

// PromptProfile asks for the business profile, offering the current values
// as defaults. Service areas are entered comma separated.
func PromptProfile(p *Prompter, current models.Profile) service.ProfileInput {
	return service.ProfileInput{
		LogoURL:      p.AskDefault("Logo URL", current.LogoURL),
		Description:  p.AskDefault("Description", current.Description),
		Phone:        p.AskDefault("Phone", current.Contact.Phone),
		Email:        p.AskDefault("Email", current.Contact.Email),
		WhatsApp:     p.AskDefault("WhatsApp", current.Contact.WhatsApp),
		ServiceAreas: service.ParseServiceAreas(p.AskDefault("Service areas", strings.Join(current.ServiceAreas, ", "))),
	}
}
