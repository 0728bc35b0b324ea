// Package main provides the roughLAB CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roughlab/internal/config"
	"roughlab/internal/decision"
	"roughlab/internal/logging"
	"roughlab/internal/rough"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	themeFlag    string
	maxAttrsFlag int
	workersFlag  int

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "roughlab",
	Short: "roughLAB - Rough Set Decision Support Lab",
	Long: `roughLAB is an interactive rough set theory workbench.

Enter a decision table manually, or load one from a YAML or CSV document,
then compute indiscernibility partitions, lower and upper approximations,
attribute reducts, certain decision rules, and conflict reports. An
optional Datalog audit replays every induced rule against the table.

Run without arguments to start the interactive lab.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(resolveConfigPath())
		if err != nil {
			return err
		}
		if themeFlag != "" {
			cfg.UI.Theme = themeFlag
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		// The interactive lab owns the terminal; route logs to the
		// configured file or drop them.
		if cmd.Use == "roughlab" && cmd.CalledAs() == "roughlab" {
			if cfg.Logging.File != "" {
				logger, err = logging.New(cfg.Logging)
				return err
			}
			logger = zap.NewNop()
			return nil
		}

		logger, err = logging.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLab()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .roughlab/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "UI theme: dark or light")
	rootCmd.PersistentFlags().IntVar(&maxAttrsFlag, "max-attrs", 0, "Reduct search bound (0 = config value)")
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "Reduct search workers (0 = config value)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(partitionCmd)
	rootCmd.AddCommand(approxCmd)
	rootCmd.AddCommand(reductsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(conflictsCmd)
	rootCmd.AddCommand(sampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadTable reads and validates a table document.
func loadTable(path string) (*decision.Table, error) {
	tbl, err := decision.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("table loaded",
		zap.String("path", path),
		zap.Int("objects", tbl.Len()),
		zap.Int("attributes", len(tbl.Attributes())))
	return tbl, nil
}

// conditionAttrs resolves the --attrs selection, defaulting to the full
// condition attribute set. Subset validation happens in the engine.
func conditionAttrs(tbl *decision.Table, selected []string) []string {
	if len(selected) == 0 {
		return tbl.Attributes()
	}
	return selected
}

// engineOptions builds the analyzer options from the global flags and
// config. Flag values <= 0 defer to the configuration.
func engineOptions() []rough.Option {
	maxAttrs := maxAttrsFlag
	if maxAttrs <= 0 {
		maxAttrs = cfg.Analysis.MaxAttributes
	}
	workers := workersFlag
	if workers <= 0 {
		workers = cfg.Analysis.Workers
	}

	opts := []rough.Option{
		rough.WithLogger(logger),
		rough.WithMaxAttributes(maxAttrs),
	}
	if workers > 0 {
		opts = append(opts, rough.WithWorkers(workers))
	}
	return opts
}
