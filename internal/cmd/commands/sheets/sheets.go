package sheets

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
	"github.com/hashicorp-forge/revizto/pkg/entityid"
	"github.com/hashicorp-forge/revizto/pkg/revizto"
)

type Command struct {
	*base.Command

	flagProject entityid.UUID
	flagSheet   entityid.UUID
	flagFilters bool
}

func (c *Command) Synopsis() string {
	return "List project sheets"
}

func (c *Command) Help() string {
	return `Usage: revizto sheets -project=<uuid> [options]

  Lists the sheets in a project. With -sheet, prints the history of one sheet.
  With -filters, prints the available sheet filter options.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("sheets", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.Var(&c.flagProject, "project", "Project UUID.")
	f.Var(&c.flagSheet, "sheet", "Sheet UUID whose history to print.")
	f.BoolVar(&c.flagFilters, "filters", false, "Print sheet filter options.")

	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagProject.IsZero() {
		c.UI.Error("-project is required")
		return 1
	}
	if c.flagFilters && !c.flagSheet.IsZero() {
		c.UI.Error("-filters and -sheet are mutually exclusive")
		return 1
	}

	return c.Call(func(ctx context.Context, client *revizto.Client) (revizto.Response, error) {
		switch {
		case c.flagFilters:
			return client.GetSheetFilterOptions(ctx, c.flagProject)
		case !c.flagSheet.IsZero():
			return client.GetSheetHistory(ctx, c.flagProject, c.flagSheet)
		default:
			return client.GetProjectSheets(ctx, c.flagProject)
		}
	})
}
