package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/danmuck/ednsctl/internal/config"
	"github.com/danmuck/ednsctl/internal/logging"
	"github.com/danmuck/ednsctl/internal/observability"
	"github.com/danmuck/ednsctl/internal/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is the state shared by subcommands once the root pre-run finished.
type app struct {
	cfgFile      string
	outputFormat string

	cfg       config.Config
	formatter output.Formatter
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ednsctl",
		Short: "Encode, decode and inspect EDNS(0) options and Extended DNS Errors",
		Long: `ednsctl works with the option data carried in a DNS OPT record.
Extended DNS Error options (code 15) are decoded into their info code and
extra text; every other option is shown as opaque bytes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./"+config.DefaultPath+" when present)")
	root.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", "", "output format: text|json|yaml")

	root.AddCommand(
		newCodesCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newServeCmd(a),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.outputFormat != "" {
		cfg.Output = a.outputFormat
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.formatter = output.NewFormatter(cfg.Output)

	logging.ConfigureRuntime()
	if os.Getenv(logging.EnvLogLevel) == "" {
		if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
			zerolog.SetGlobalLevel(lvl)
		}
	}
	observability.InitLogger("ednsctl")
	return nil
}

func (a *app) loadConfig() (config.Config, error) {
	path := a.cfgFile
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (a *app) print(cmd *cobra.Command, data any) error {
	out, err := a.formatter.Format(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
