// Package articulation turns structured analysis results into surface
// output: plain text for the terminal, Markdown for rendered display, and
// a JSON envelope for machine consumers.
package articulation

import (
	"fmt"
	"strconv"
	"strings"

	"roughlab/internal/rough"
	"roughlab/internal/verification"
)

// Format names an output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatText:
		return FormatText, nil
	case FormatMarkdown, Format("md"):
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, markdown, or json)", name)
}

// Emitter renders analysis reports. The zero value is usable; NewEmitter
// applies the display defaults.
type Emitter struct {
	// ShowMeta prepends the run header (id, timing, table shape).
	ShowMeta bool
	// AccuracyDigits is the number of decimals shown for accuracy.
	AccuracyDigits int
}

// NewEmitter creates an emitter with default settings.
func NewEmitter() *Emitter {
	return &Emitter{ShowMeta: true, AccuracyDigits: 3}
}

// Render dispatches to the requested format.
func (e *Emitter) Render(format Format, report *rough.Report, audit *verification.Audit) (string, error) {
	switch format {
	case FormatText:
		return e.Text(report, audit), nil
	case FormatMarkdown:
		return e.Markdown(report, audit), nil
	case FormatJSON:
		data, err := e.JSON(report, audit)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown report format %q", format)
}

// Text renders the report as indented plain text, section by section in
// the lab's presentation order.
func (e *Emitter) Text(report *rough.Report, audit *verification.Audit) string {
	var sb strings.Builder

	if e.ShowMeta {
		name := report.Table
		if name == "" {
			name = "decision table"
		}
		fmt.Fprintf(&sb, "Rough Set Analysis: %s\n", name)
		fmt.Fprintf(&sb, "run %s | %d objects | %d attributes | %s\n\n",
			report.RunID, report.Objects, len(report.Attributes), report.Elapsed)
	}

	sb.WriteString("1. Approximations\n")
	for _, a := range report.Approximations {
		fmt.Fprintf(&sb, "\n  Decision: %s\n", a.Decision)
		fmt.Fprintf(&sb, "    Lower approximation (certain):  %v\n", a.Lower)
		fmt.Fprintf(&sb, "    Upper approximation (possible): %v\n", a.Upper)
		fmt.Fprintf(&sb, "    Boundary: %v\n", a.Boundary())
		fmt.Fprintf(&sb, "    Accuracy: %s\n", e.accuracy(a.Accuracy()))
	}
	sb.WriteString("\n  Interpretation: Lower = guaranteed. Upper = possible. Boundary = uncertainty region.\n")

	sb.WriteString("\n2. Attribute Reducts\n")
	if len(report.Reducts) > 0 {
		for _, r := range report.Reducts {
			fmt.Fprintf(&sb, "  - %v\n", []string(r))
		}
		if len(report.MinimalReducts) > 0 {
			sb.WriteString("  Minimal:\n")
			for _, r := range report.MinimalReducts {
				fmt.Fprintf(&sb, "  - %v\n", []string(r))
			}
		}
		sb.WriteString("  A reduct is the minimal attribute set preserving classification power.\n")
	} else {
		sb.WriteString("  No reducts found — table may already be minimal.\n")
	}

	sb.WriteString("\n3. Decision Rules (from Lower Approximation)\n")
	if len(report.Rules) > 0 {
		for _, r := range report.Rules {
			fmt.Fprintf(&sb, "  %s\n", r.Text())
		}
	} else {
		sb.WriteString("  No certain rules could be generated (too much uncertainty).\n")
	}

	sb.WriteString("\n4. Conflict Analysis\n")
	if len(report.Conflicts) > 0 {
		sb.WriteString("  Conflicts detected:\n")
		for _, c := range report.Conflicts {
			fmt.Fprintf(&sb, "  Objects %v → conflicting decisions %v\n", c.Objects, c.Decisions)
		}
		sb.WriteString("  This occurs when identical conditions lead to different decisions.\n")
	} else {
		sb.WriteString("  No conflicts — knowledge base is consistent.\n")
	}

	if audit != nil {
		sb.WriteString("\n5. Rule Audit (Datalog replay)\n")
		if audit.Sound {
			sb.WriteString("  All rules verified sound.\n")
		} else {
			sb.WriteString("  VIOLATIONS FOUND:\n")
			for _, v := range audit.Violations {
				fmt.Fprintf(&sb, "  %s matched object %d: expected %s, table says %s\n",
					e.ruleLabel(report, v.Rule), v.Object, v.Expected, v.Actual)
			}
		}
		fmt.Fprintf(&sb, "  Covered objects:   %v\n", audit.Covered)
		fmt.Fprintf(&sb, "  Uncovered objects: %v\n", audit.Uncovered)
	}

	return sb.String()
}

// Markdown renders the report for a Markdown surface (the TUI pipes this
// through glamour).
func (e *Emitter) Markdown(report *rough.Report, audit *verification.Audit) string {
	var sb strings.Builder

	name := report.Table
	if name == "" {
		name = "decision table"
	}
	fmt.Fprintf(&sb, "# Rough Set Analysis: %s\n\n", name)
	if e.ShowMeta {
		fmt.Fprintf(&sb, "`run %s` | %d objects | %d attributes | %s\n\n",
			report.RunID, report.Objects, len(report.Attributes), report.Elapsed)
	}

	sb.WriteString("## 1. Approximations\n\n")
	for _, a := range report.Approximations {
		fmt.Fprintf(&sb, "### Decision: %s\n\n", a.Decision)
		fmt.Fprintf(&sb, "- Lower approximation (certain): `%v`\n", a.Lower)
		fmt.Fprintf(&sb, "- Upper approximation (possible): `%v`\n", a.Upper)
		fmt.Fprintf(&sb, "- Boundary: `%v`\n", a.Boundary())
		fmt.Fprintf(&sb, "- Accuracy: **%s**\n\n", e.accuracy(a.Accuracy()))
	}
	sb.WriteString("> Interpretation: Lower = guaranteed. Upper = possible. Boundary = uncertainty region.\n\n")

	sb.WriteString("## 2. Attribute Reducts\n\n")
	if len(report.Reducts) > 0 {
		for _, r := range report.Reducts {
			fmt.Fprintf(&sb, "- `%v`\n", []string(r))
		}
		if len(report.MinimalReducts) > 0 {
			sb.WriteString("\nMinimal:\n\n")
			for _, r := range report.MinimalReducts {
				fmt.Fprintf(&sb, "- `%v`\n", []string(r))
			}
		}
		sb.WriteString("\n> A reduct is the minimal attribute set preserving classification power.\n\n")
	} else {
		sb.WriteString("No reducts found — table may already be minimal.\n\n")
	}

	sb.WriteString("## 3. Decision Rules (from Lower Approximation)\n\n")
	if len(report.Rules) > 0 {
		sb.WriteString("```\n")
		for _, r := range report.Rules {
			sb.WriteString(r.Text())
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n\n")
	} else {
		sb.WriteString("No certain rules could be generated (too much uncertainty).\n\n")
	}

	sb.WriteString("## 4. Conflict Analysis\n\n")
	if len(report.Conflicts) > 0 {
		sb.WriteString("**Conflicts detected:**\n\n")
		for _, c := range report.Conflicts {
			fmt.Fprintf(&sb, "- Objects `%v` → conflicting decisions `%v`\n", c.Objects, c.Decisions)
		}
		sb.WriteString("\nThis occurs when identical conditions lead to different decisions.\n")
	} else {
		sb.WriteString("No conflicts — knowledge base is consistent.\n")
	}

	if audit != nil {
		sb.WriteString("\n## 5. Rule Audit (Datalog replay)\n\n")
		if audit.Sound {
			sb.WriteString("All rules verified **sound**.\n\n")
		} else {
			sb.WriteString("**Violations found:**\n\n")
			for _, v := range audit.Violations {
				fmt.Fprintf(&sb, "- %s matched object %d: expected %s, table says %s\n",
					e.ruleLabel(report, v.Rule), v.Object, v.Expected, v.Actual)
			}
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "Covered: `%v` | Uncovered: `%v`\n", audit.Covered, audit.Uncovered)
	}

	return sb.String()
}

func (e *Emitter) accuracy(a float64) string {
	digits := e.AccuracyDigits
	if digits <= 0 {
		digits = 3
	}
	return strconv.FormatFloat(a, 'f', digits, 64)
}

// ruleLabel names a rule by its text when the report carries it, falling
// back to the bare index.
func (e *Emitter) ruleLabel(report *rough.Report, idx int) string {
	if idx >= 0 && idx < len(report.Rules) {
		return fmt.Sprintf("rule %d (%s)", idx, report.Rules[idx].Text())
	}
	return fmt.Sprintf("rule %d", idx)
}
