package version

import (
	"github.com/hashicorp-forge/revizto/internal/cmd/base"
	"github.com/hashicorp-forge/revizto/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return "Usage: revizto version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
