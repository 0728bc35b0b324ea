package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"roughlab/internal/rough"
	"roughlab/internal/verification"
)

var (
	rulesAttrs []string
	rulesAudit bool
)

// rulesCmd induces certain decision rules
var rulesCmd = &cobra.Command{
	Use:   "rules [table-file]",
	Short: "Induce certain decision rules from lower approximations",
	Long: `Extracts the certain rules of the table: one IF/THEN rule per object in
a lower approximation, deduplicated and sorted. With --audit the rules
are replayed through the Datalog engine against the table.

Example:
  roughlab rules weather.yaml
  roughlab rules weather.yaml --attrs Outlook,Wind --audit`,
	Args: cobra.ExactArgs(1),
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringSliceVar(&rulesAttrs, "attrs", nil, "Condition attributes to induce over (default: all)")
	rulesCmd.Flags().BoolVar(&rulesAudit, "audit", false, "Replay induced rules through the Datalog audit")
}

func runRules(cmd *cobra.Command, args []string) error {
	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}
	attrs := conditionAttrs(tbl, rulesAttrs)

	rules, err := rough.InduceRules(tbl, attrs)
	if err != nil {
		return err
	}

	if len(rules) == 0 {
		fmt.Println("No certain rules could be generated (too much uncertainty).")
		return nil
	}
	for _, r := range rules {
		fmt.Println(r.Text())
	}

	auditEnabled := cfg.Audit.Enabled
	if cmd.Flags().Changed("audit") {
		auditEnabled = rulesAudit
	}
	if !auditEnabled {
		return nil
	}

	auditor := verification.NewAuditor(verification.WithLogger(logger))
	audit, err := auditor.AuditRules(context.Background(), tbl, rules)
	if err != nil {
		return fmt.Errorf("rule audit failed: %w", err)
	}

	fmt.Println()
	if audit.Sound {
		fmt.Println("All rules verified sound.")
	} else {
		fmt.Println("VIOLATIONS FOUND:")
		for _, v := range audit.Violations {
			fmt.Printf("  rule %d matched object %d: expected %s, table says %s\n",
				v.Rule, v.Object, v.Expected, v.Actual)
		}
	}
	fmt.Printf("Covered objects:   %v\n", audit.Covered)
	fmt.Printf("Uncovered objects: %v\n", audit.Uncovered)
	return nil
}
