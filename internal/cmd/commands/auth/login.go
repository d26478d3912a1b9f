package auth

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/browser"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

type LoginCommand struct {
	*base.Command

	flagCode    string
	flagState   string
	flagBrowser bool
}

func (c *LoginCommand) Synopsis() string {
	return "Exchange an authorization code for tokens"
}

func (c *LoginCommand) Help() string {
	return `Usage: revizto auth login [options]

  Exchanges an authorization code for an access/refresh token pair and saves
  it to the configured token store. Without -code, the authorization page is
  opened in a browser and the code is read from the terminal.` +
		c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("auth login", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.StringVar(
		&c.flagCode, "code", "",
		"Authorization code. Prompted for when empty.",
	)
	f.StringVar(
		&c.flagState, "state", "",
		"State parameter for the authorization page. Defaults to the configured state.",
	)
	f.BoolVar(
		&c.flagBrowser, "browser", true,
		"Open the authorization page in the default browser.",
	)

	return f
}

func (c *LoginCommand) Run(args []string) int {
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

	code := c.flagCode
	if code == "" {
		authURL := client.AuthCodeURL(c.flagState)
		ui.Info("Visit the following URL to authorize access:\n\n    " + authURL + "\n")
		if c.flagBrowser {
			if err := openURL(authURL); err != nil {
				ui.Warn(fmt.Sprintf("could not open browser: %v", err))
			}
		}
		code, err = ui.Ask("Authorization code:")
		if err != nil {
			ui.Error(fmt.Sprintf("error reading authorization code: %v", err))
			return 1
		}
		code = strings.TrimSpace(code)
	}

	ctx, cancel := c.Context()
	defer cancel()

	creds, err := client.GetTokens(ctx, code)
	if err != nil {
		ui.Error(fmt.Sprintf("error exchanging authorization code: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Authenticated (region %s). Access token expires at %s.",
		client.Region(), creds.Expiry.Local().Format(time.RFC1123)))
	return 0
}
