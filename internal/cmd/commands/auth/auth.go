package auth

import (
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Obtain, refresh and inspect API tokens"
}

func (c *Command) Help() string {
	return `Usage: revizto auth <subcommand> [options]

  This command groups subcommands for managing Revizto API tokens.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
