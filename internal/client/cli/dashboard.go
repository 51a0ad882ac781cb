package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/iudanet/contactdesk/internal/client/api"
	"github.com/iudanet/contactdesk/internal/client/app"
	"github.com/iudanet/contactdesk/internal/client/selectors"
	"github.com/iudanet/contactdesk/internal/models"
)

func (c *Cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	return fs
}

func (c *Cli) runDashboard(ctx context.Context, args []string) error {
	fs := c.newFlagSet("dashboard")
	search := fs.String("search", "", "Filter contacts by name")
	companyID := fs.Int64("company", models.NoCompany, "Show only contacts of the company (0 for all)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	// Обе коллекции загружаются параллельно
	contactsPending := c.app.Dispatch(ctx, app.FetchContacts{})
	companiesPending := c.app.Dispatch(ctx, app.FetchCompanies{})

	contacts, err := app.Await[[]models.Contact](ctx, contactsPending)
	if err != nil {
		return failed("fetch contacts", err)
	}

	companies, err := app.Await[[]models.Company](ctx, companiesPending)
	if err != nil {
		// Без компаний дашборд все равно полезен: колонка покажет N/A
		c.io.Printf("Warning: failed to fetch companies: %s\n", api.Reason(err))
	}

	c.io.Println("=== Contacts Dashboard ===")
	c.io.Println()

	if *companyID != models.NoCompany {
		if company, ok := selectors.FindByID(companies, *companyID); ok {
			c.io.Printf("Company: %s\n", company.Name)
		} else {
			c.io.Printf("Company: #%d\n", *companyID)
		}
	}

	rows := selectors.Dashboard(contacts, companies, *search, *companyID)
	if len(rows) == 0 {
		c.io.Println("No contacts match your search criteria.")
		return nil
	}

	return c.printContactRows(rows)
}

func (c *Cli) printContactRows(rows []selectors.Row) error {
	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPHONE\tCITY\tCOMPANY")
	for _, row := range rows {
		city := row.Contact.City
		if city == "" {
			city = "-"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			row.Contact.ID, row.Contact.Name, row.Contact.Phone, city, row.Company.Label())
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	c.io.Println()
	c.io.Printf("Total: %d contact(s)\n", len(rows))
	return nil
}
