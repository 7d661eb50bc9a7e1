package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/danmuck/ednsctl/internal/config"
	"github.com/danmuck/ednsctl/internal/inspect"
	"github.com/danmuck/ednsctl/internal/output"
	"github.com/danmuck/ednsctl/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=x.y.z"
var version = "0.1.0"

func newCodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the known Extended DNS Error codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(cmd, output.ViewCodes())
		},
	}
}

func newEncodeCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "encode <code>",
		Short: "Encode an Extended DNS Error option as hex",
		Long: `Encode an Extended DNS Error option, header included. The code may be
a decimal id, a label ("Forged Answer") or a name ("ForgedAnswer").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := inspect.EncodeExtendedError(args[0], text)
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "EXTRA-TEXT to attach")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode hex OPT RDATA into options",
		Long: `Decode hex OPT RDATA. Without an argument, each line of stdin is decoded
as a separate RDATA blob; blank lines are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				views, err := inspect.Decode(args[0], a.cfg.MaxMessageBytes)
				if err != nil {
					return err
				}
				return a.print(cmd, views)
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			line := 0
			for scanner.Scan() {
				line++
				raw := strings.TrimSpace(scanner.Text())
				if raw == "" {
					continue
				}
				views, err := inspect.Decode(raw, a.cfg.MaxMessageBytes)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				if err := a.print(cmd, views); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP inspector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.Listen
			if listen != "" {
				addr = listen
			}
			s := server.New("ednsctl", version, addr, a.cfg.CorsOrigins, a.cfg.MaxMessageBytes)
			if err := s.Serve(); err != nil {
				log.Error().Err(err).Msg("inspector stopped")
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate an ednsctl config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the ednsctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ednsctl version %s\n", version)
			return nil
		},
	}
}
