package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dmath-truthtable/internal/client"
	"dmath-truthtable/internal/config"
	"dmath-truthtable/internal/observability"
)

// app carries what every subcommand needs once flags and config are loaded.
type app struct {
	cfg      *config.Config
	client   *client.Client
	shutdown func(context.Context) error

	startTelemetry func(context.Context, *config.Config) (func(context.Context) error, error)
}

// close flushes telemetry and the logger. It is safe to call more than once.
func (a *app) close(ctx context.Context) error {
	defer observability.SyncLogger()
	if a.shutdown == nil {
		return nil
	}
	shutdown := a.shutdown
	a.shutdown = nil
	return shutdown(ctx)
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{startTelemetry: initTelemetry}
	var cfgFile string

	root := &cobra.Command{
		Use:   "truthtable",
		Short: "Truth tables for propositional-logic formulas",
		Long: `truthtable sends a propositional-logic formula to a truth table service
and renders the table it returns, in the terminal or in a browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			if err := observability.InitLogger(cfg.LogLevel); err != nil {
				return err
			}

			shutdown, err := a.startTelemetry(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("init telemetry: %w", err)
			}
			a.shutdown = shutdown

			c, err := client.New(client.Options{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
			if err != nil {
				return err
			}

			a.cfg, a.client = cfg, c
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default truthtable.yaml)")
	pf.String("base-url", "", "truth table service URL (default "+config.DefaultBaseURL+")")
	pf.Duration("timeout", 0, "request timeout (default "+config.DefaultTimeout.String()+")")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newQueryCmd(a), newReplCmd(a), newServeCmd(a))

	return root, a
}

// execute runs the command line and flushes telemetry whether or not the
// command failed.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if cerr := a.close(context.WithoutCancel(ctx)); cerr != nil {
		root.PrintErrln("Error: shutdown telemetry:", cerr)
		err = errors.Join(err, cerr)
	}
	return err
}
