package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roughlab/internal/rough"
)

var conflictsAttrs []string

// conflictsCmd reports inconsistent equivalence classes
var conflictsCmd = &cobra.Command{
	Use:   "conflicts [table-file]",
	Short: "Detect objects with identical conditions but different decisions",
	Long: `Reports every equivalence class whose members disagree on the decision.
An empty result means the knowledge base is consistent for the selected
attributes.

Example:
  roughlab conflicts weather.yaml
  roughlab conflicts weather.yaml --attrs Outlook`,
	Args: cobra.ExactArgs(1),
	RunE: runConflicts,
}

func init() {
	conflictsCmd.Flags().StringSliceVar(&conflictsAttrs, "attrs", nil, "Condition attributes to compare under (default: all)")
}

func runConflicts(cmd *cobra.Command, args []string) error {
	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}
	attrs := conditionAttrs(tbl, conflictsAttrs)

	conflicts, err := rough.FindConflicts(tbl, attrs)
	if err != nil {
		return err
	}

	if len(conflicts) == 0 {
		fmt.Println("No conflicts — knowledge base is consistent.")
		return nil
	}

	fmt.Println("Conflicts detected:")
	for _, c := range conflicts {
		fmt.Printf("  Objects %v → conflicting decisions %v\n", c.Objects, c.Decisions)
	}
	fmt.Println("This occurs when identical conditions lead to different decisions.")
	return nil
}
