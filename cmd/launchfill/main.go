// Package main provides the CLI entry point for launchfill.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/launchfill-go/internal/config"
	"github.com/ukaji3/launchfill-go/pkg/launchfill"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	outputPath string
	reportPath string
	pretty     bool
	configPath string
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.New()
	d := launchfill.DefaultLayout()

	rootCmd := &cobra.Command{
		Use:   "launchfill [stock.xlsx] [launch.xlsx]",
		Short: "Fill a launch sheet from a stock workbook",
		Long: `launchfill looks up every reference of a launch sheet in the stock
workbook and writes width, composition, unit weight, supplier and price
into the launch sheet. Out-of-stock references are replaced by an in-stock
item with the same color and width.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: ./launchfill.yaml if present)")
	pf.BoolP("verbose", "v", false, "Log debug details")
	pf.Bool("no-color", false, "Disable colored status lines")
	pf.String("stock-sheet", d.StockSheet, "Stock sheet name")
	pf.String("launch-sheet", d.LaunchSheet, "Launch sheet name")
	pf.Int("start-row", d.StartRow, "First row of the reference run")
	pf.String("ref-column", d.RefColumn, "Launch column holding references")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: "+d.OutputName+")")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "Write a per-row report to this file")
	rootCmd.Flags().String("report-format", "json", "Report format: json, yaml")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON report")

	rootCmd.AddCommand(newServeCommand(v))
	return rootCmd
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, err
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	return cfg, nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	stockPath, launchPath := args[0], args[1]

	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out := outputPath
	if out == "" {
		out = cfg.Layout.OutputName
	}

	stdout := cmd.OutOrStdout()
	opts := launchfill.Options{
		Layout: cfg.Layout,
		Logger: logger,
		Progress: func(r models.RowResult, processed, total int) {
			_ = output.WriteProgress(stdout, r, processed, total, !color.NoColor)
		},
	}

	report, err := launchfill.Fill(stockPath, launchPath, out, opts)
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	if err := output.WriteTotals(stdout, report); err != nil {
		return err
	}

	if reportPath != "" {
		if err := writeReport(report, cfg.ReportFormat, reportPath); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	fmt.Fprintf(stdout, "Filled launch sheet written to %s\n", out)
	return nil
}

func writeReport(report *models.Report, format, path string) error {
	var data []byte
	var err error
	switch format {
	case "yaml":
		data, err = output.ToYAML(report)
	default:
		data, err = output.ToJSON(report, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
