package comments

import (
	"context"
	"flag"
	"fmt"

	"github.com/araddon/dateparse"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
	"github.com/hashicorp-forge/revizto/pkg/entityid"
	"github.com/hashicorp-forge/revizto/pkg/revizto"
)

type Command struct {
	*base.Command

	flagProjectID int
	flagIssue     entityid.UUID
	flagDate      string
	flagPage      int
}

func (c *Command) Synopsis() string {
	return "List comments on an issue"
}

func (c *Command) Help() string {
	return `Usage: revizto comments -project-id=<id> -issue=<uuid> -date=<date> [options]

  Lists comments posted on an issue since the given date. The date is parsed
  leniently, so "2025-03-01", "03/01/2025" and "March 1, 2025" are all
  accepted.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("comments", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.IntVar(&c.flagProjectID, "project-id", 0, "Numeric project ID.")
	f.Var(&c.flagIssue, "issue", "Issue UUID.")
	f.StringVar(&c.flagDate, "date", "", "Earliest comment date.")
	f.IntVar(&c.flagPage, "page", 0, "Page number.")

	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	switch {
	case c.flagProjectID == 0:
		c.UI.Error("-project-id is required")
		return 1
	case c.flagIssue.IsZero():
		c.UI.Error("-issue is required")
		return 1
	case c.flagDate == "":
		c.UI.Error("-date is required")
		return 1
	}

	date, err := dateparse.ParseLocal(c.flagDate)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error parsing -date: %v", err))
		return 1
	}

	return c.Call(func(ctx context.Context, client *revizto.Client) (revizto.Response, error) {
		return client.GetIssueComments(ctx, c.flagProjectID, c.flagIssue, date, c.flagPage)
	})
}
