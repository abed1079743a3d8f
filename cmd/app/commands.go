package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigiitcoskun/us-economic-insights/internal/di"
	"github.com/yigiitcoskun/us-economic-insights/internal/usecase"
	"github.com/yigiitcoskun/us-economic-insights/pkg/config"
)

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "econ",
		Short:         "US economic indicator analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (defaults and env only when empty)")

	load := func() (*config.Config, error) {
		cfg, err := config.LoadWithEnv(configPath)
		if err != nil {
			return nil, fmt.Errorf("config load failed: %w", err)
		}
		return cfg, nil
	}

	root.AddCommand(runCmd(load))
	root.AddCommand(serveCmd(load))
	root.AddCommand(indicatorsCmd(func() (*config.Config, error) {
		cfg, err := config.Read(configPath)
		if err != nil {
			return nil, fmt.Errorf("config load failed: %w", err)
		}
		return cfg, nil
	}))
	return root
}

func runCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		noSave     bool
		start, end string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one analysis and print the text report",
		Long: `Fetch every tracked indicator from FRED, run the rule engine and print
the daily report. The report is handed to the configured sinks (file,
ClickHouse, Kafka) unless --no-save is given or report.save is false.

Examples:
  econ run --config config/config.yaml
  econ run --start 2024-01-01 --end 2024-12-31 --no-save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			run, err := app.RunOnce(cmd.Context(), usecase.RunParams{
				Start: start,
				End:   end,
				Save:  cfg.Report.Save && !noSave,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), run.Report)
			return err
		},
	}
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not hand the report to sinks")
	cmd.Flags().StringVar(&start, "start", "", "observation start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "observation end (YYYY-MM-DD)")
	return cmd
}

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			return app.Run(cmd.Context())
		},
	}
}

func indicatorsCmd(read func() (*config.Config, error)) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "List the tracked FRED indicators",
		Long: `List the indicators from analysis.indicators, or the built-in catalog
when the config file sets none. No FRED API key is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := read()
			if err != nil {
				return err
			}
			entries := di.ProvideCatalog(cfg).Entries()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tLABEL\tPOLARITY")
			for _, e := range entries {
				pol := string(e.Polarity)
				if pol == "" {
					pol = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Code, e.Label, pol)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
