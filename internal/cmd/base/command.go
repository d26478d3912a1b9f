package base

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/revizto/internal/config"
	"github.com/hashicorp-forge/revizto/pkg/revizto"
)

// Command holds what every subcommand shares: the logger, the UI, and the
// flags that select configuration and output.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs holds token files. Defaults to the OS filesystem.
	Fs afero.Fs

	// ClientOptions are applied to every API client the command builds.
	ClientOptions []revizto.Option

	flagConfig string
	flagFormat string

	format string
}

// NewCommand returns a Command that logs to log and talks to the user
// through ui.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
	}
}

// AddClientFlags registers -config and -format on f.
func (c *Command) AddClientFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		fmt.Sprintf("Path to an HCL config file. Defaults to ./%s when present.", config.DefaultFile),
	)
	f.StringVar(
		&c.flagFormat, "format", "",
		"Output format: json or yaml. Overrides the config file.",
	)
}

// Client loads configuration and returns an API client with the configured
// token store.
func (c *Command) Client() (*revizto.Client, error) {
	cfg, err := config.NewConfig(c.flagConfig)
	if err != nil {
		return nil, err
	}

	c.format = cfg.Format
	if c.flagFormat != "" {
		c.format = c.flagFormat
	}
	if c.format != config.FormatJSON && c.format != config.FormatYAML {
		return nil, fmt.Errorf("unknown output format %q", c.format)
	}
	if c.Log != nil {
		c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	}

	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}

	fs := c.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	store, err := cfg.TokenStore(fs)
	if err != nil {
		return nil, err
	}

	opts := []revizto.Option{revizto.WithTokenStore(store)}
	if c.Log != nil {
		opts = append(opts, revizto.WithLogger(c.Log.Named("revizto")))
	}
	opts = append(opts, c.ClientOptions...)

	return revizto.New(clientCfg, opts...)
}

// Output writes v to the UI in the selected format.
func (c *Command) Output(v any) error {
	var (
		data []byte
		err  error
	)
	switch c.format {
	case config.FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	c.UI.Output(string(data))
	return nil
}

// Context returns a context that is canceled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Call builds a client, invokes fn and writes its response. It returns the
// command's exit code.
func (c *Command) Call(fn func(context.Context, *revizto.Client) (revizto.Response, error)) int {
	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	resp, err := fn(ctx, client)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Output(resp); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
