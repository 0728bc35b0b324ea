package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"roughlab/internal/decision"
)

// sampleCmd emits a starter table document
var sampleCmd = &cobra.Command{
	Use:   "sample [file]",
	Short: "Write a sample decision table document",
	Long: `Emits a small weather table to play with. The last two objects share
identical conditions but different decisions, so the analysis has a
boundary region and a conflict to report.

Without a file argument the document is printed to stdout. A .csv
extension selects the CSV form, anything else gets YAML.

Example:
  roughlab sample
  roughlab sample weather.yaml
  roughlab sample weather.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSample,
}

func runSample(cmd *cobra.Command, args []string) error {
	doc := sampleDocument()

	if len(args) == 0 {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	path := args[0]
	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		data = []byte(sampleCSV(doc))
	} else {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		data = out
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sample table: %w", err)
	}
	fmt.Printf("Sample table written to %s\n", path)
	fmt.Printf("Run: roughlab analyze %s\n", path)
	return nil
}

// sampleDocument is the weather table used across the docs and tests.
func sampleDocument() *decision.Document {
	return &decision.Document{
		Name:       "weather",
		Attributes: []string{"Outlook", "Temp", "Wind"},
		Decision:   "Play",
		Objects: []map[string]string{
			{"Outlook": "Sunny", "Temp": "Hot", "Wind": "Weak", "Play": "No"},
			{"Outlook": "Sunny", "Temp": "Hot", "Wind": "Strong", "Play": "No"},
			{"Outlook": "Overcast", "Temp": "Hot", "Wind": "Weak", "Play": "Yes"},
			{"Outlook": "Rain", "Temp": "Mild", "Wind": "Weak", "Play": "Yes"},
			{"Outlook": "Rain", "Temp": "Cool", "Wind": "Weak", "Play": "Yes"},
			{"Outlook": "Rain", "Temp": "Cool", "Wind": "Weak", "Play": "No"},
		},
	}
}

// sampleCSV renders the document in the lab's CSV convention: condition
// columns first, decision column last.
func sampleCSV(doc *decision.Document) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(doc.Attributes, ","))
	sb.WriteByte(',')
	sb.WriteString(doc.Decision)
	sb.WriteByte('\n')
	for _, obj := range doc.Objects {
		for _, a := range doc.Attributes {
			sb.WriteString(obj[a])
			sb.WriteByte(',')
		}
		sb.WriteString(obj[doc.Decision])
		sb.WriteByte('\n')
	}
	return sb.String()
}
