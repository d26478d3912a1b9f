package user

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
	"github.com/hashicorp-forge/revizto/pkg/revizto"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Show the authenticated user"
}

func (c *Command) Help() string {
	return `Usage: revizto user [options]

  Prints the profile of the user the saved tokens belong to.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("user", flag.ContinueOnError))
	c.AddClientFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	return c.Call(func(ctx context.Context, client *revizto.Client) (revizto.Response, error) {
		return client.GetCurrentUser(ctx)
	})
}
