package decision

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// TABLE DOCUMENTS - file input for the presentation shell
// =============================================================================
// The analytical core defines no file format; these codecs belong to the
// shell boundary. Two formats are accepted:
//
//   YAML  attributes: [Outlook, Temp]        CSV   Outlook,Temp,Decision
//         decision: Play        # optional         sunny,hot,no
//         objects:                                 rainy,mild,yes
//           - {Outlook: sunny, Temp: hot, Play: no}
//
// In CSV the final column is always the decision column, whatever its header
// says. That is the lab's "Final column = Decision" convention.

// Document is the YAML form of a decision table.
type Document struct {
	Name       string              `yaml:"name,omitempty"`
	Attributes []string            `yaml:"attributes"`
	Decision   string              `yaml:"decision,omitempty"`
	Objects    []map[string]string `yaml:"objects"`
}

// Table validates the document and builds the immutable table.
func (d *Document) Table() (*Table, error) {
	t, err := New(d.Attributes, d.Decision, d.Objects)
	if err != nil {
		return nil, err
	}
	return t.SetName(d.Name), nil
}

// ParseYAML decodes a YAML table document and validates it.
func ParseYAML(data []byte) (*Table, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse table document: %w", err)
	}
	return doc.Table()
}

// ParseCSV reads a CSV table: header row names the condition attributes, the
// final header cell names the decision column.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("CSV needs at least one condition column and a decision column, got %d columns", len(header))
	}

	attrs := make([]string, len(header)-1)
	for i := range attrs {
		attrs[i] = strings.TrimSpace(header[i])
	}
	decisionName := strings.TrimSpace(header[len(header)-1])
	if decisionName == "" {
		decisionName = DefaultDecisionName
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("CSV row %d has %d cells, want %d", len(rows)+2, len(record), len(header))
		}
		row := make(map[string]string, len(header))
		for i, a := range attrs {
			row[a] = record[i]
		}
		row[decisionName] = record[len(record)-1]
		rows = append(rows, row)
	}

	return New(attrs, decisionName, rows)
}

// LoadFile reads a table document, dispatching on the file extension
// (.yaml/.yml/.csv). The loaded table is fully validated; an empty cell
// anywhere fails with *IncompleteTableError before any analysis can start.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".csv":
		return ParseCSV(strings.NewReader(string(data)))
	default:
		return nil, fmt.Errorf("unsupported table format %q (want .yaml, .yml or .csv)", ext)
	}
}
