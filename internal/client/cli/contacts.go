package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"

	"github.com/iudanet/contactdesk/internal/client/api"
	"github.com/iudanet/contactdesk/internal/client/app"
	"github.com/iudanet/contactdesk/internal/client/selectors"
	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/validation"
)

const contactsUsage = "contactdesk contacts <list|get|add|edit|delete>"

func (c *Cli) runContacts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing subcommand. Usage: %s", ErrUsage, contactsUsage)
	}

	switch args[0] {
	case "list", "ls":
		return c.runListContacts(ctx, args[1:])
	case "get", "show":
		return c.runGetContact(ctx, args[1:])
	case "add", "create":
		return c.runAddContact(ctx, args[1:])
	case "edit", "update":
		return c.runEditContact(ctx, args[1:])
	case "delete", "rm":
		return c.runDeleteContact(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown subcommand: %s. Usage: %s", ErrUsage, args[0], contactsUsage)
	}
}

func (c *Cli) runListContacts(ctx context.Context, args []string) error {
	fs := c.newFlagSet("contacts list")
	search := fs.String("search", "", "Filter contacts by name")
	companyID := fs.Int64("company", models.NoCompany, "Show only contacts of the company (0 for all)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	contacts, err := app.Await[[]models.Contact](ctx, c.app.Dispatch(ctx, app.FetchContacts{}))
	if err != nil {
		return failed("fetch contacts", err)
	}

	// Компании из кеша, если они уже загружены
	companies := c.app.State().Companies.Items
	rows := selectors.Dashboard(contacts, companies, *search, *companyID)

	if len(rows) == 0 {
		if len(contacts) == 0 {
			c.io.Println("No contacts found.")
			c.io.Println()
			c.io.Println("Use 'contactdesk contacts add' to add your first contact.")
			return nil
		}
		c.io.Println("No contacts match your search criteria.")
		return nil
	}

	return c.printContactRows(rows)
}

func (c *Cli) getContact(ctx context.Context, id int64) (models.Contact, error) {
	contact, err := app.Await[models.Contact](ctx, c.app.Dispatch(ctx, app.GetContact{ID: id}))
	if err != nil {
		if remoteErr, ok := api.AsRemoteError(err); ok && remoteErr.StatusCode == http.StatusNotFound {
			return contact, fmt.Errorf("%w: contact with ID %d", ErrNotFound, id)
		}
		return contact, failed("get contact", err)
	}
	return contact, nil
}

func (c *Cli) runGetContact(ctx context.Context, args []string) error {
	id, _, err := parseID(args, "contactdesk contacts get <id>")
	if err != nil {
		return err
	}

	contact, err := c.getContact(ctx, id)
	if err != nil {
		return err
	}

	resolution := selectors.Resolution{}
	if contact.HasCompany() {
		company, err := app.Await[models.Company](ctx, c.app.Dispatch(ctx, app.GetCompany{ID: contact.CompanyID}))
		if err == nil {
			resolution = selectors.ResolveCompany(contact, []models.Company{company})
		}
	}

	return c.render(contactView, struct {
		Company selectors.Resolution
		Contact models.Contact
	}{Contact: contact, Company: resolution})
}

// contactFlags поля контакта из флагов; set отмечает явно заданные
type contactFlags struct {
	set     map[string]bool
	name    string
	phone   string
	city    string
	company int64
}

func (c *Cli) parseContactFlags(name string, args []string) (*contactFlags, error) {
	f := &contactFlags{set: make(map[string]bool)}

	fs := c.newFlagSet(name)
	fs.StringVar(&f.name, "name", "", "Contact name")
	fs.StringVar(&f.phone, "phone", "", "Contact phone")
	fs.StringVar(&f.city, "city", "", "Contact city")
	fs.Int64Var(&f.company, "company", models.NoCompany, "Company ID (0 for none)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	return f, nil
}

func validateContact(name, phone, city string, companyID int64) error {
	return errors.Join(
		validation.ValidateName(name),
		validation.ValidatePhone(phone),
		validation.ValidateCity(city),
		validation.ValidateCompanyID(companyID),
	)
}

func (c *Cli) runAddContact(ctx context.Context, args []string) error {
	f, err := c.parseContactFlags("contacts add", args)
	if err != nil {
		return err
	}

	c.io.Println("=== Add Contact ===")
	c.io.Println()

	draft := models.ContactDraft{
		Name:      f.name,
		Phone:     f.phone,
		City:      f.city,
		CompanyID: f.company,
	}

	if draft.Name == "" {
		if draft.Name, err = c.askRequired("Name"); err != nil {
			return err
		}
	}
	if draft.Phone == "" {
		if draft.Phone, err = c.askRequired("Phone"); err != nil {
			return err
		}
	}
	// Необязательные поля спрашиваем только если ничего не передано флагами
	if len(f.set) == 0 {
		if draft.City, err = c.ask("City (optional)", ""); err != nil {
			return err
		}
		if draft.CompanyID, err = c.askCompanyID(models.NoCompany); err != nil {
			return err
		}
	}

	if err := validateContact(draft.Name, draft.Phone, draft.City, draft.CompanyID); err != nil {
		return fmt.Errorf("invalid contact: %w", err)
	}

	created, err := app.Await[models.Contact](ctx, c.app.Dispatch(ctx, app.CreateContact{Draft: draft}))
	if err != nil {
		return failed("create contact", err)
	}

	c.io.Println()
	c.io.Printf("✓ Contact created successfully! (ID: %d)\n", created.ID)
	return nil
}

func (c *Cli) runEditContact(ctx context.Context, args []string) error {
	id, rest, err := parseID(args, "contactdesk contacts edit <id> [--name N] [--phone P] [--city C] [--company ID]")
	if err != nil {
		return err
	}
	f, err := c.parseContactFlags("contacts edit", rest)
	if err != nil {
		return err
	}

	// Форма заполняется текущими данными с сервера
	contact, err := c.getContact(ctx, id)
	if err != nil {
		return err
	}

	c.io.Println("=== Edit Contact ===")
	c.io.Println()

	if len(f.set) == 0 {
		c.io.Println("Press Enter to keep the current value.")
		if contact.Name, err = c.ask("Name", contact.Name); err != nil {
			return err
		}
		if contact.Phone, err = c.ask("Phone", contact.Phone); err != nil {
			return err
		}
		if contact.City, err = c.ask("City", contact.City); err != nil {
			return err
		}
		if contact.CompanyID, err = c.askCompanyID(contact.CompanyID); err != nil {
			return err
		}
	} else {
		if f.set["name"] {
			contact.Name = f.name
		}
		if f.set["phone"] {
			contact.Phone = f.phone
		}
		if f.set["city"] {
			contact.City = f.city
		}
		if f.set["company"] {
			contact.CompanyID = f.company
		}
	}

	if err := validateContact(contact.Name, contact.Phone, contact.City, contact.CompanyID); err != nil {
		return fmt.Errorf("invalid contact: %w", err)
	}

	if _, err := c.app.Dispatch(ctx, app.UpdateContact{Contact: contact}).Wait(ctx); err != nil {
		return failed("update contact", err)
	}

	c.io.Println()
	c.io.Println("✓ Contact updated successfully!")
	return nil
}

func (c *Cli) runDeleteContact(ctx context.Context, args []string) error {
	id, rest, err := parseID(args, "contactdesk contacts delete <id> [--yes]")
	if err != nil {
		return err
	}
	fs := c.newFlagSet("contacts delete")
	yes := fs.Bool("yes", false, "Delete without confirmation")
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if !*yes {
		if !c.io.IsInteractive() {
			return ErrNeedConfirm
		}
		contact, err := c.getContact(ctx, id)
		if err != nil {
			return err
		}
		c.io.Println("About to delete:")
		c.io.Printf("  Name:  %s\n", contact.Name)
		c.io.Printf("  Phone: %s\n", contact.Phone)
		c.io.Println()
	}

	ok, err := c.confirm("Are you sure you want to delete this contact?", *yes)
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Deletion cancelled.")
		return nil
	}

	if _, err := c.app.Dispatch(ctx, app.DeleteContact{ID: id}).Wait(ctx); err != nil {
		return failed("delete contact", err)
	}

	c.io.Println("✓ Contact deleted successfully!")
	return nil
}
