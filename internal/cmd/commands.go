package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/revizto/internal/cmd/base"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/auth"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/comments"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/issues"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/licenses"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/projects"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/sheets"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/user"
	"github.com/hashicorp-forge/revizto/internal/cmd/commands/version"
)

// Commands is the mapping of all available revizto commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	// Every command gets its own base so flag values never leak between them.
	b := func() *base.Command {
		return base.NewCommand(log, ui)
	}

	Commands = map[string]cli.CommandFactory{
		"auth": func() (cli.Command, error) {
			return &auth.Command{Command: b()}, nil
		},
		"auth login": func() (cli.Command, error) {
			return &auth.LoginCommand{Command: b()}, nil
		},
		"auth refresh": func() (cli.Command, error) {
			return &auth.RefreshCommand{Command: b()}, nil
		},
		"auth status": func() (cli.Command, error) {
			return &auth.StatusCommand{Command: b()}, nil
		},
		"comments": func() (cli.Command, error) {
			return &comments.Command{Command: b()}, nil
		},
		"issues": func() (cli.Command, error) {
			return &issues.Command{Command: b()}, nil
		},
		"licenses": func() (cli.Command, error) {
			return &licenses.Command{Command: b()}, nil
		},
		"projects": func() (cli.Command, error) {
			return &projects.Command{Command: b()}, nil
		},
		"sheets": func() (cli.Command, error) {
			return &sheets.Command{Command: b()}, nil
		},
		"user": func() (cli.Command, error) {
			return &user.Command{Command: b()}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b()}, nil
		},
	}
}
