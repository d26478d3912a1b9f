package licenses

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

	flagMembers entityid.UUID
	flagReports entityid.UUID
	flagRoles   entityid.UUID
}

func (c *Command) Synopsis() string {
	return "List licenses, license members, user reports or project roles"
}

func (c *Command) Help() string {
	return `Usage: revizto licenses [options]

  Lists the licenses available to the authenticated user. With -members,
  lists the team of the given license instead. With -reports or -roles, lists
  the license's user reports or project roles.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("licenses", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.Var(&c.flagMembers, "members", "License UUID whose members to list.")
	f.Var(&c.flagReports, "reports", "License UUID whose user reports to list.")
	f.Var(&c.flagRoles, "roles", "License UUID whose project roles to list.")

	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	set := 0
	for _, id := range []entityid.UUID{c.flagMembers, c.flagReports, c.flagRoles} {
		if !id.IsZero() {
			set++
		}
	}
	if set > 1 {
		c.UI.Error("only one of -members, -reports and -roles may be set")
		return 1
	}

	return c.Call(func(ctx context.Context, client *revizto.Client) (revizto.Response, error) {
		switch {
		case !c.flagMembers.IsZero():
			return client.GetLicenseMembers(ctx, c.flagMembers)
		case !c.flagReports.IsZero():
			return client.GetUserReports(ctx, c.flagReports, 0, 1)
		case !c.flagRoles.IsZero():
			return client.GetProjectRoles(ctx, c.flagRoles)
		default:
			return client.GetCurrentUserLicenses(ctx)
		}
	})
}
