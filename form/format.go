package form

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// Instructions renders the schema for inclusion in a model prompt:
// the ordered field table followed by the logic-rule prose. Pure and
// side-effect free; callers may cache the result.
func (s Schema) Instructions() string {
	var buf strings.Builder
	title := s.Title
	if title == "" {
		title = "Form"
	}
	buf.WriteString(fmt.Sprintf("# %s schema definition:\n", title))
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Type", "Description", "Required")
	for _, field := range s.Fields {
		req := "OPTIONAL"
		if field.Required {
			req = "REQUIRED"
		}
		typ := string(field.Type)
		if field.Type == TypeEnum && len(field.Enum) > 0 {
			typ = "enum(" + strings.Join(field.Enum, "|") + ")"
		}
		_ = table.Append(field.Name, typ, field.Description, req)
	}
	_ = table.Render()

	if len(s.Rules) > 0 {
		buf.WriteString("\n# Logic rules:\n")
		for i, rule := range s.Rules {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, rule))
		}
	}
	return buf.String()
}

// FormatMissingLabels renders a missing-fields report as a prompt
// section.
func FormatMissingLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return "# Missing critical fields:\n" + strings.Join(labels, ", ")
}
