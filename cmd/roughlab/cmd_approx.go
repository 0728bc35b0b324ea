package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roughlab/internal/rough"
)

var (
	approxAttrs    []string
	approxDecision string
)

// approxCmd bounds decision concepts from below and above
var approxCmd = &cobra.Command{
	Use:   "approx [table-file]",
	Short: "Compute lower and upper approximations of decision concepts",
	Long: `Bounds each decision concept of the table: the lower approximation holds
the objects certainly in the concept, the upper the objects possibly in
it, and the boundary between them is the uncertainty region.

Example:
  roughlab approx weather.yaml
  roughlab approx weather.yaml --decision Yes
  roughlab approx weather.yaml --attrs Outlook --decision No`,
	Args: cobra.ExactArgs(1),
	RunE: runApprox,
}

func init() {
	approxCmd.Flags().StringSliceVar(&approxAttrs, "attrs", nil, "Condition attributes to use (default: all)")
	approxCmd.Flags().StringVar(&approxDecision, "decision", "", "Single decision value to approximate (default: every value)")
}

func runApprox(cmd *cobra.Command, args []string) error {
	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}
	attrs := conditionAttrs(tbl, approxAttrs)

	var approxs []rough.Approximation
	if approxDecision != "" {
		a, err := rough.Approximate(tbl, attrs, approxDecision)
		if err != nil {
			return err
		}
		approxs = append(approxs, a)
	} else {
		approxs, err = rough.ApproximateAll(tbl, attrs)
		if err != nil {
			return err
		}
	}

	for i, a := range approxs {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Decision: %s\n", a.Decision)
		fmt.Printf("  Lower approximation (certain):  %v\n", a.Lower)
		fmt.Printf("  Upper approximation (possible): %v\n", a.Upper)
		fmt.Printf("  Boundary: %v\n", a.Boundary())
		fmt.Printf("  Accuracy: %.3f\n", a.Accuracy())
	}
	return nil
}
