package auth

import (
	"flag"
	"fmt"
	"time"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
)

type RefreshCommand struct {
	*base.Command
}

func (c *RefreshCommand) Synopsis() string {
	return "Refresh the access token"
}

func (c *RefreshCommand) Help() string {
	return `Usage: revizto auth refresh [options]

  Exchanges the saved refresh token for a new token pair.` +
		c.Flags().Help()
}

func (c *RefreshCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("auth refresh", flag.ContinueOnError))
	c.AddClientFlags(f)
	return f
}

func (c *RefreshCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	creds, err := client.RefreshTokens(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error refreshing tokens: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Tokens refreshed. Access token expires at %s.",
		creds.Expiry.Local().Format(time.RFC1123)))
	return 0
}
