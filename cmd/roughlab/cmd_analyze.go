package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roughlab/internal/articulation"
	"roughlab/internal/rough"
	"roughlab/internal/verification"
	"roughlab/internal/watch"
)

var (
	analyzeFormat string
	analyzeAudit  bool
	analyzeWatch  bool
)

// analyzeCmd runs the full analysis over a table document
var analyzeCmd = &cobra.Command{
	Use:   "analyze [table-file]",
	Short: "Run the full rough set analysis over a table document",
	Long: `Loads a decision table from a YAML or CSV document and computes
approximations, reducts, certain decision rules and conflicts.

Example:
  roughlab analyze weather.yaml
  roughlab analyze weather.yaml --format json --audit
  roughlab analyze weather.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "Report format: text, markdown or json")
	analyzeCmd.Flags().BoolVar(&analyzeAudit, "audit", false, "Replay induced rules through the Datalog audit")
	analyzeCmd.Flags().BoolVar(&analyzeWatch, "watch", false, "Re-run the analysis whenever the document changes")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := articulation.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}

	auditEnabled := cfg.Audit.Enabled
	if cmd.Flags().Changed("audit") {
		auditEnabled = analyzeAudit
	}

	path := args[0]
	ctx := context.Background()

	out, err := analyzeDocument(ctx, path, format, auditEnabled)
	if err != nil {
		return err
	}
	fmt.Println(out)

	if !analyzeWatch {
		return nil
	}
	return watchDocument(ctx, path, format, auditEnabled)
}

// analyzeDocument loads, analyzes and renders one table document.
func analyzeDocument(ctx context.Context, path string, format articulation.Format, audit bool) (string, error) {
	tbl, err := loadTable(path)
	if err != nil {
		return "", err
	}

	analyzer := rough.NewAnalyzer(engineOptions()...)
	report, err := analyzer.Run(ctx, tbl)
	if err != nil {
		return "", err
	}

	var auditResult *verification.Audit
	if audit {
		auditor := verification.NewAuditor(verification.WithLogger(logger))
		auditResult, err = auditor.AuditRules(ctx, tbl, report.Rules)
		if err != nil {
			return "", fmt.Errorf("rule audit failed: %w", err)
		}
	}

	return articulation.NewEmitter().Render(format, report, auditResult)
}

// watchDocument re-runs the analysis on every settled change until
// interrupted.
func watchDocument(ctx context.Context, path string, format articulation.Format, audit bool) error {
	w, err := watch.New(path, func(changed string) {
		out, err := analyzeDocument(context.Background(), changed, format, audit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reanalysis failed: %v\n", err)
			return
		}
		fmt.Println(out)
	}, watch.WithDebounce(cfg.GetDebounce()), watch.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	logger.Info("watching table document", zap.String("path", path))
	fmt.Fprintf(os.Stderr, "Watching %s for changes. Press Ctrl+C to stop.\n", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}
