package issues

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
	"github.com/hashicorp-forge/revizto/pkg/entityid"
	"github.com/hashicorp-forge/revizto/pkg/revizto"
)

type Command struct {
	*base.Command

	flagProject  entityid.UUID
	flagPage     int
	flagLimit    int
	flagDeleted  bool
	flagStatuses string
	flagSince    string
}

func (c *Command) Synopsis() string {
	return "List project issues"
}

func (c *Command) Help() string {
	return `Usage: revizto issues -project=<uuid> [options]

  Lists a page of issues in a project. With -deleted, lists deleted issues.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("issues", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.Var(&c.flagProject, "project", "Project UUID.")
	f.IntVar(&c.flagPage, "page", 0, "Page number.")
	f.IntVar(&c.flagLimit, "limit", 100, "Page size.")
	f.BoolVar(&c.flagDeleted, "deleted", false, "List deleted issues.")
	f.StringVar(
		&c.flagStatuses, "statuses", "",
		"Comma-separated issue statuses. Only with -deleted.",
	)
	f.StringVar(
		&c.flagSince, "since", "",
		"Only issues synchronized after this date. Only with -deleted.",
	)

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
	if !c.flagDeleted && (c.flagStatuses != "" || c.flagSince != "") {
		c.UI.Error("-statuses and -since require -deleted")
		return 1
	}

	if !c.flagDeleted {
		return c.Call(func(ctx context.Context, client *revizto.Client) (revizto.Response, error) {
			return client.GetProjectIssues(ctx, c.flagProject, &revizto.IssueListOptions{
				Page:  c.flagPage,
				Limit: c.flagLimit,
			})
		})
	}

	opts := &revizto.DeletedIssuesOptions{
		Page:  c.flagPage,
		Limit: c.flagLimit,
	}
	for _, s := range strings.Split(c.flagStatuses, ",") {
		if s = strings.TrimSpace(s); s != "" {
			opts.Statuses = append(opts.Statuses, s)
		}
	}
	if c.flagSince != "" {
		since, err := dateparse.ParseLocal(c.flagSince)
		if err != nil {
			c.UI.Error(fmt.Sprintf("error parsing -since: %v", err))
			return 1
		}
		opts.Synchronized = since
	}

	return c.Call(func(ctx context.Context, client *revizto.Client) (revizto.Response, error) {
		return client.GetDeletedIssues(ctx, c.flagProject, opts)
	})
}
