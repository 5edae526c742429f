// Package client implements the interactive dashboard shell used by the
// directory command line client.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/service"
	"github.com/cipromart/directory/internal/storage"
	"github.com/cipromart/directory/internal/validate"
)

// Accounts is the account flow used by the shell.
type Accounts interface {
	Register(ctx context.Context, reg models.RegistrationData) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
}

// Billing is the package and payment flow used by the shell.
type Billing interface {
	SelectPackage(ctx context.Context, userID string, pkg models.PackageID) (*models.User, error)
	Pay(ctx context.Context, userID, optionID string) (*models.User, error)
}

// Catalog is the service listing flow used by the shell.
type Catalog interface {
	List(ctx context.Context, userID string) ([]models.Service, error)
	Add(ctx context.Context, userID string, in models.ServiceData) (*models.Service, error)
	Update(ctx context.Context, userID, serviceID string, patch models.ServicePatch) (*models.Service, error)
	Delete(ctx context.Context, userID, serviceID string) error
}

// Profiles is the business profile flow used by the shell.
type Profiles interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, userID string, in service.ProfileInput) (*models.User, error)
}

// BusinessProfiles reads the standalone business profile record.
type BusinessProfiles interface {
	GetBusinessProfile(ctx context.Context) (*models.BusinessProfileRecord, error)
}

// Shell is a line-oriented dashboard over the data store.
type Shell struct {
	Accounts Accounts
	Billing  Billing
	Catalog  Catalog
	Profiles Profiles
	Business BusinessProfiles

	prompt *Prompter
	out    io.Writer
}

// NewShell creates a Shell reading commands from in and writing to out.
func NewShell(in io.Reader, out io.Writer) *Shell {
	return &Shell{prompt: NewPrompter(in, out), out: out}
}

const helpText = `Available commands:
  register                 create an account and sign in
  login                    sign in
  logout                   sign out
  whoami                   show the signed-in account
  packages                 list subscription packages
  package <id>             choose a package
  methods                  list payment methods for your country
  pay <method>             pay for the chosen package
  profile                  show your business profile
  profile edit             edit your business profile
  business                 show the saved business profile record
  services                 list your services
  services add             add a service
  services edit <id>       edit a service
  services delete <id>     delete a service
  exit`

// Run executes commands until "exit", end of input, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := s.prompt.Ask("directory> ")
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			fmt.Fprintln(s.out, "Bye")
			return nil
		}
		if err := s.dispatch(ctx, args); err != nil {
			s.printError(err)
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "register":
		return s.register(ctx)
	case "login":
		return s.login(ctx)
	case "logout":
		if err := s.Accounts.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Signed out")
	case "whoami":
		return s.whoami(ctx)
	case "packages":
		s.packages()
	case "package":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: package <basic|professional|premium>")
			return nil
		}
		return s.selectPackage(ctx, models.PackageID(args[1]))
	case "methods":
		return s.methods(ctx)
	case "pay":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: pay <method>")
			return nil
		}
		return s.pay(ctx, args[1])
	case "profile":
		if len(args) > 1 && args[1] == "edit" {
			return s.editProfile(ctx)
		}
		return s.showProfile(ctx)
	case "business":
		return s.business(ctx)
	case "services":
		return s.services(ctx, args[1:])
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func (s *Shell) printError(err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for f := range verrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(s.out, "  %s: %s\n", f, verrs[f])
		}
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// current returns the signed-in user or prints a hint and returns nil.
func (s *Shell) current(ctx context.Context) (*models.User, error) {
	user, err := s.Accounts.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		fmt.Fprintln(s.out, "Please log in first")
	}
	return user, nil
}

// subscriber is current restricted to users with an active subscription.
func (s *Shell) subscriber(ctx context.Context) (*models.User, error) {
	user, err := s.current(ctx)
	if err != nil || user == nil {
		return nil, err
	}
	if !user.Subscription.IsActive {
		fmt.Fprintln(s.out, "An active subscription is required; choose a package and pay first")
		return nil, nil
	}
	return user, nil
}

func (s *Shell) register(ctx context.Context) error {
	user, err := s.Accounts.Register(ctx, PromptRegistration(s.prompt))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Welcome, %s! Choose a package with 'packages' and 'package <id>'.\n", user.BusinessName)
	return nil
}

func (s *Shell) login(ctx context.Context) error {
	email := s.prompt.AskDefault("Email", "")
	password := s.prompt.AskDefault("Password", "")
	user, err := s.Accounts.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Signed in as %s\n", user.BusinessName)
	return nil
}

func (s *Shell) whoami(ctx context.Context) error {
	user, err := s.current(ctx)
	if err != nil || user == nil {
		return err
	}
	fmt.Fprintf(s.out, "%s <%s>\n", user.BusinessName, user.Email)
	fmt.Fprintf(s.out, "Status: %s  Package: %s  Profile: %d%% complete\n",
		user.Status, user.Package, storage.CalculateProfileCompletion(user))
	if user.Subscription.IsActive {
		fmt.Fprintf(s.out, "Subscription: %s until %s\n", user.Subscription.Package, user.Subscription.EndDate)
	}
	return nil
}

func (s *Shell) packages() {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSERVICES")
	for _, p := range models.Packages {
		limit := "unlimited"
		if p.MaxServices > 0 {
			limit = fmt.Sprint(p.MaxServices)
		}
		name := p.Name
		if p.Popular {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s/%s\t%s\n", p.ID, name, p.Price, p.Currency, p.Period, limit)
	}
	_ = tw.Flush()
}

func (s *Shell) selectPackage(ctx context.Context, pkg models.PackageID) error {
	user, err := s.current(ctx)
	if err != nil || user == nil {
		return err
	}
	if _, err := s.Billing.SelectPackage(ctx, user.ID, pkg); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Package %s selected. Pay with 'methods' and 'pay <method>'.\n", pkg)
	return nil
}

func (s *Shell) methods(ctx context.Context) error {
	user, err := s.current(ctx)
	if err != nil || user == nil {
		return err
	}
	for _, o := range models.AvailablePaymentOptions(user.Country) {
		fmt.Fprintf(s.out, "  %-14s %s\n", o.ID, o.Name)
	}
	return nil
}

func (s *Shell) pay(ctx context.Context, method string) error {
	user, err := s.current(ctx)
	if err != nil || user == nil {
		return err
	}
	fmt.Fprintln(s.out, "Processing payment...")
	user, err = s.Billing.Pay(ctx, user.ID, method)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Payment successful. Transaction %s\n", user.Payment.TransactionID)
	fmt.Fprintf(s.out, "Your %s subscription is active until %s\n", user.Subscription.Package, user.Subscription.EndDate)
	return nil
}

func (s *Shell) showProfile(ctx context.Context) error {
	user, err := s.subscriber(ctx)
	if err != nil || user == nil {
		return err
	}
	p, err := s.Profiles.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Completion:    %d%%\n", p.Completion)
	fmt.Fprintf(s.out, "Logo:          %s\n", p.LogoURL)
	fmt.Fprintf(s.out, "Description:   %s\n", p.Description)
	fmt.Fprintf(s.out, "Phone:         %s\n", p.Contact.Phone)
	fmt.Fprintf(s.out, "Email:         %s\n", p.Contact.Email)
	fmt.Fprintf(s.out, "WhatsApp:      %s\n", p.Contact.WhatsApp)
	fmt.Fprintf(s.out, "Service areas: %s\n", strings.Join(p.ServiceAreas, ", "))
	return nil
}

func (s *Shell) editProfile(ctx context.Context) error {
	user, err := s.subscriber(ctx)
	if err != nil || user == nil {
		return err
	}
	user, err = s.Profiles.Save(ctx, user.ID, PromptProfile(s.prompt, user.Profile))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Profile saved (%d%% complete)\n", user.Profile.Completion)
	return nil
}

func (s *Shell) business(ctx context.Context) error {
	rec, err := s.Business.GetBusinessProfile(ctx)
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Fprintln(s.out, "No business profile saved")
		return nil
	}
	b, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Fprintln(s.out, string(b))
	return nil
}

func (s *Shell) services(ctx context.Context, args []string) error {
	user, err := s.subscriber(ctx)
	if err != nil || user == nil {
		return err
	}
	if len(args) == 0 {
		return s.listServices(ctx, user.ID)
	}
	switch args[0] {
	case "add":
		svc, err := s.Catalog.Add(ctx, user.ID, PromptService(s.prompt))
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Service added: %s\n", svc.ID)
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: services edit <id>")
			return nil
		}
		var existing *models.Service
		for i := range user.Services {
			if user.Services[i].ID == args[1] {
				existing = &user.Services[i]
				break
			}
		}
		if existing == nil {
			return service.ErrServiceNotFound
		}
		if _, err := s.Catalog.Update(ctx, user.ID, existing.ID, PromptServicePatch(s.prompt, *existing)); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Service updated")
	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: services delete <id>")
			return nil
		}
		if err := s.Catalog.Delete(ctx, user.ID, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Service deleted")
	default:
		fmt.Fprintln(s.out, "Usage: services [add | edit <id> | delete <id>]")
	}
	return nil
}

func (s *Shell) listServices(ctx context.Context, userID string) error {
	list, err := s.Catalog.List(ctx, userID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No services yet. Add one with 'services add'.")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, svc := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", svc.ID, svc.Name, svc.Category, svc.Price)
	}
	return tw.Flush()
}
