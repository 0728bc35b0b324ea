package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roughlab/internal/rough"
)

var partitionAttrs []string

// partitionCmd shows the equivalence classes of a table
var partitionCmd = &cobra.Command{
	Use:   "partition [table-file]",
	Short: "Show the indiscernibility partition of a decision table",
	Long: `Groups the objects of the table into equivalence classes: two objects
share a class exactly when they agree on every selected attribute.

Example:
  roughlab partition weather.yaml
  roughlab partition weather.yaml --attrs Outlook,Wind`,
	Args: cobra.ExactArgs(1),
	RunE: runPartition,
}

func init() {
	partitionCmd.Flags().StringSliceVar(&partitionAttrs, "attrs", nil, "Condition attributes to partition by (default: all)")
}

func runPartition(cmd *cobra.Command, args []string) error {
	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}
	attrs := conditionAttrs(tbl, partitionAttrs)

	p, err := rough.NewPartition(tbl, attrs)
	if err != nil {
		return err
	}

	fmt.Printf("Indiscernibility partition under %v:\n", attrs)
	for _, block := range p.Blocks {
		fmt.Printf("  %v\n", block)
	}
	fmt.Printf("%d equivalence classes over %d objects\n", len(p.Blocks), tbl.Len())
	return nil
}
