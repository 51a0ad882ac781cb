package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/contactdesk/internal/client/app"
	"github.com/iudanet/contactdesk/internal/client/iocli"
)

type Cli struct {
	io  iocli.IO
	app *app.App
}

func New(io iocli.IO, a *app.App) *Cli {
	return &Cli{
		io:  io,
		app: a,
	}
}

// Run выполняет команду args[0] с аргументами args[1:]
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		PrintUsage(c.io)
		return ErrUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "dashboard":
		return c.runDashboard(ctx, rest)
	case "contacts", "contact":
		return c.runContacts(ctx, rest)
	case "companies", "company":
		return c.runCompanies(ctx, rest)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		PrintUsage(c.io)
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, command)
	}
}

func PrintUsage(out iocli.IO) {
	out.Println("ContactDesk Client")
	out.Println()
	out.Println("Usage:")
	out.Println("  contactdesk [OPTIONS] COMMAND")
	out.Println()
	out.Println("Options:")
	out.Println("  --version             Show version information")
	out.Println("  --config PATH         Path to YAML config (env: CONTACTDESK_CONFIG)")
	out.Println("  --server URL          API base URL (default: http://localhost:8000/api)")
	out.Println("  --log-level LEVEL     Log level: debug, info, warn, error")
	out.Println()
	out.Println("Commands:")
	out.Println("  dashboard [--search Q] [--company ID]   Show contacts with their companies")
	out.Println("  contacts list [--search Q] [--company ID]")
	out.Println("  contacts get <id>")
	out.Println("  contacts add [--name N] [--phone P] [--city C] [--company ID]")
	out.Println("  contacts edit <id> [--name N] [--phone P] [--city C] [--company ID]")
	out.Println("  contacts delete <id> [--yes]")
	out.Println("  companies list [--search Q]")
	out.Println("  companies get <id>")
	out.Println("  companies add [--name N]")
	out.Println("  companies edit <id> [--name N]")
	out.Println("  companies delete <id> [--yes]")
	out.Println("  version                                 Show version information")
	out.Println()
	out.Println("Examples:")
	out.Println("  contactdesk dashboard --search jane")
	out.Println("  contactdesk contacts add --name Jane --phone 555-0100 --company 1")
	out.Println("  contactdesk --server https://example.com/api companies list")
}
