package cli

import (
	"context"
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/iudanet/contactdesk/internal/client/api"
	"github.com/iudanet/contactdesk/internal/client/app"
	"github.com/iudanet/contactdesk/internal/client/selectors"
	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/validation"
)

const companiesUsage = "contactdesk companies <list|get|add|edit|delete>"

func (c *Cli) runCompanies(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing subcommand. Usage: %s", ErrUsage, companiesUsage)
	}

	switch args[0] {
	case "list", "ls":
		return c.runListCompanies(ctx, args[1:])
	case "get", "show":
		return c.runGetCompany(ctx, args[1:])
	case "add", "create":
		return c.runAddCompany(ctx, args[1:])
	case "edit", "update":
		return c.runEditCompany(ctx, args[1:])
	case "delete", "rm":
		return c.runDeleteCompany(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown subcommand: %s. Usage: %s", ErrUsage, args[0], companiesUsage)
	}
}

func (c *Cli) runListCompanies(ctx context.Context, args []string) error {
	fs := c.newFlagSet("companies list")
	search := fs.String("search", "", "Filter companies by name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	companies, err := app.Await[[]models.Company](ctx, c.app.Dispatch(ctx, app.FetchCompanies{}))
	if err != nil {
		return failed("fetch companies", err)
	}

	if len(companies) == 0 {
		c.io.Println("No companies found.")
		c.io.Println()
		c.io.Println("Use 'contactdesk companies add' to add your first company.")
		return nil
	}

	filtered := selectors.FilterByName(companies, *search)
	if len(filtered) == 0 {
		c.io.Println("No companies match your search criteria.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME")
	for _, company := range filtered {
		_, _ = fmt.Fprintf(w, "%d\t%s\n", company.ID, company.Name)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	c.io.Println()
	c.io.Printf("Total: %d company(ies)\n", len(filtered))
	return nil
}

func (c *Cli) getCompany(ctx context.Context, id int64) (models.Company, error) {
	company, err := app.Await[models.Company](ctx, c.app.Dispatch(ctx, app.GetCompany{ID: id}))
	if err != nil {
		if remoteErr, ok := api.AsRemoteError(err); ok && remoteErr.StatusCode == http.StatusNotFound {
			return company, fmt.Errorf("%w: company with ID %d", ErrNotFound, id)
		}
		return company, failed("get company", err)
	}
	return company, nil
}

func (c *Cli) runGetCompany(ctx context.Context, args []string) error {
	id, _, err := parseID(args, "contactdesk companies get <id>")
	if err != nil {
		return err
	}

	company, err := c.getCompany(ctx, id)
	if err != nil {
		return err
	}
	return c.render(companyView, company)
}

func (c *Cli) parseCompanyName(name string, args []string) (string, error) {
	fs := c.newFlagSet(name)
	companyName := fs.String("name", "", "Company name")
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return *companyName, nil
}

func (c *Cli) runAddCompany(ctx context.Context, args []string) error {
	name, err := c.parseCompanyName("companies add", args)
	if err != nil {
		return err
	}

	c.io.Println("=== Add Company ===")
	c.io.Println()

	if name == "" {
		if name, err = c.askRequired("Name"); err != nil {
			return err
		}
	}
	if err := validation.ValidateName(name); err != nil {
		return fmt.Errorf("invalid company: %w", err)
	}

	created, err := app.Await[models.Company](ctx, c.app.Dispatch(ctx, app.CreateCompany{
		Draft: models.CompanyDraft{Name: name},
	}))
	if err != nil {
		return failed("create company", err)
	}

	c.io.Println()
	c.io.Printf("✓ Company created successfully! (ID: %d)\n", created.ID)
	return nil
}

func (c *Cli) runEditCompany(ctx context.Context, args []string) error {
	id, rest, err := parseID(args, "contactdesk companies edit <id> [--name N]")
	if err != nil {
		return err
	}
	name, err := c.parseCompanyName("companies edit", rest)
	if err != nil {
		return err
	}

	company, err := c.getCompany(ctx, id)
	if err != nil {
		return err
	}

	c.io.Println("=== Edit Company ===")
	c.io.Println()

	if name == "" {
		c.io.Println("Press Enter to keep the current value.")
		if name, err = c.ask("Name", company.Name); err != nil {
			return err
		}
	}
	company.Name = name

	if err := validation.ValidateName(company.Name); err != nil {
		return fmt.Errorf("invalid company: %w", err)
	}

	if _, err := c.app.Dispatch(ctx, app.UpdateCompany{Company: company}).Wait(ctx); err != nil {
		return failed("update company", err)
	}

	c.io.Println()
	c.io.Println("✓ Company updated successfully!")
	return nil
}

func (c *Cli) runDeleteCompany(ctx context.Context, args []string) error {
	id, rest, err := parseID(args, "contactdesk companies delete <id> [--yes]")
	if err != nil {
		return err
	}
	fs := c.newFlagSet("companies delete")
	yes := fs.Bool("yes", false, "Delete without confirmation")
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if !*yes {
		if !c.io.IsInteractive() {
			return ErrNeedConfirm
		}
		company, err := c.getCompany(ctx, id)
		if err != nil {
			return err
		}
		c.io.Println("About to delete:")
		c.io.Printf("  Name: %s\n", company.Name)
		c.io.Println()
		c.io.Println("Contacts of this company are deleted by the server as well.")
	}

	ok, err := c.confirm("Are you sure you want to delete this company?", *yes)
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Deletion cancelled.")
		return nil
	}

	if _, err := c.app.Dispatch(ctx, app.DeleteCompany{ID: id}).Wait(ctx); err != nil {
		return failed("delete company", err)
	}

	c.io.Println("✓ Company deleted successfully!")
	return nil
}
