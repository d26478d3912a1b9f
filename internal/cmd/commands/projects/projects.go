package projects

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

	flagLicense entityid.UUID
	flagMembers entityid.UUID
	flagStamps  entityid.UUID
	flagPage    int
	flagSorting string
	flagType    string
}

func (c *Command) Synopsis() string {
	return "List projects in a license"
}

func (c *Command) Help() string {
	return `Usage: revizto projects -license=<uuid> [options]
       revizto projects -members=<uuid>
       revizto projects -stamps=<uuid>

  Lists the authenticated user's projects in a license. With -members or
  -stamps, lists a project's members or stamp templates instead.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("projects", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.Var(&c.flagLicense, "license", "License UUID.")
	f.Var(&c.flagMembers, "members", "Project UUID whose members to list.")
	f.Var(&c.flagStamps, "stamps", "Project UUID whose stamp templates to list.")
	f.IntVar(&c.flagPage, "page", 0, "Page number.")
	f.StringVar(&c.flagSorting, "sorting", "", "Sort order, for example \"-created\".")
	f.StringVar(&c.flagType, "type", "", "Project type filter.")

	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagLicense.IsZero() && c.flagMembers.IsZero() && c.flagStamps.IsZero() {
		c.UI.Error("one of -license, -members or -stamps is required")
		return 1
	}

	return c.Call(func(ctx context.Context, client *revizto.Client) (revizto.Response, error) {
		switch {
		case !c.flagMembers.IsZero():
			return client.GetProjectMembers(ctx, c.flagMembers)
		case !c.flagStamps.IsZero():
			return client.GetStampTemplates(ctx, c.flagStamps, c.flagPage)
		default:
			return client.GetLicenseProjects(ctx, c.flagLicense, &revizto.ProjectListOptions{
				Page:    c.flagPage,
				Sorting: c.flagSorting,
				Type:    c.flagType,
			})
		}
	})
}
