package auth

import (
	"flag"
	"fmt"
	"time"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
)

type StatusCommand struct {
	*base.Command
}

func (c *StatusCommand) Synopsis() string {
	return "Show the state of the saved tokens"
}

func (c *StatusCommand) Help() string {
	return `Usage: revizto auth status [options]

  Prints the expiry of the saved tokens. Token values are never printed.` +
		c.Flags().Help()
}

func (c *StatusCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("auth status", flag.ContinueOnError))
	c.AddClientFlags(f)
	return f
}

type status struct {
	Region        string     `json:"region" yaml:"region"`
	Authenticated bool       `json:"authenticated" yaml:"authenticated"`
	Expired       bool       `json:"expired" yaml:"expired"`
	Expiry        *time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	CanRefresh    bool       `json:"canRefresh" yaml:"canRefresh"`
	RefreshExpiry *time.Time `json:"refreshExpiry,omitempty" yaml:"refreshExpiry,omitempty"`
}

func (c *StatusCommand) Run(args []string) int {
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

	out := status{Region: client.Region()}
	if creds := client.Credentials(); creds != nil {
		now := time.Now()
		out.Authenticated = true
		out.Expired = creds.Expired(now)
		out.CanRefresh = creds.CanRefresh(now)
		if !creds.Expiry.IsZero() {
			out.Expiry = &creds.Expiry
		}
		if !creds.RefreshExpiry.IsZero() {
			out.RefreshExpiry = &creds.RefreshExpiry
		}
	}

	if err := c.Output(out); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
