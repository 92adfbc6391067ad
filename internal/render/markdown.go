package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// External renders the public-facing summary document.
func (r *Renderer) External(unit *model.SourceUnit) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", filepath.Base(unit.Path))

	if summary, ok := unit.Summary(model.DetailHigh); ok {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(summary)
		sb.WriteString("\n\n")
	}

	if unit.DocComment != "" {
		sb.WriteString(unit.DocComment)
		sb.WriteString("\n\n")
	}

	var public []*model.Declaration
	for _, d := range unit.TopLevelFunctions() {
		if d.IsPublic() {
			public = append(public, d)
		}
	}
	for _, d := range unit.TopLevelClasses() {
		if d.IsPublic() {
			public = append(public, d)
		}
	}

	if len(public) > 0 {
		sb.WriteString("## Public Interface\n\n")
		for _, d := range public {
			fmt.Fprintf(&sb, "- `%s`", d.Name)
			if d.HasSummary() {
				sb.WriteString(": ")
				sb.WriteString(oneLine(d.Summary))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Internal renders the developer reference with every function and class.
func (r *Renderer) Internal(unit *model.SourceUnit) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Internal Documentation: %s\n\n", filepath.Base(unit.Path))

	if summary, ok := unit.Summary(model.DetailLow); ok {
		sb.WriteString("## Detailed Summary\n\n")
		sb.WriteString(summary)
		sb.WriteString("\n\n")
	}

	if len(unit.Functions) > 0 {
		sb.WriteString("## Functions\n\n")
		for _, fn := range unit.Functions {
			if fn.Parent != "" {
				fmt.Fprintf(&sb, "### `%s` (in `%s`)\n\n", fn.Name, fn.Parent)
			} else {
				fmt.Fprintf(&sb, "### `%s`\n\n", fn.Name)
			}
			writeCallable(&sb, fn, "Function", unit.Language)
		}
	}

	if len(unit.Classes) > 0 {
		sb.WriteString("## Classes\n\n")
		for _, cls := range unit.Classes {
			fmt.Fprintf(&sb, "### %s\n\n", cls.Name)
			writeDescription(&sb, cls)
			for _, m := range cls.Methods {
				fmt.Fprintf(&sb, "#### `%s`\n\n", m.Name)
				writeCallable(&sb, m, "Method", unit.Language)
			}
		}
	}

	return sb.String()
}

// writeCallable writes the function-shaped block shared by functions and methods.
func writeCallable(sb *strings.Builder, d *model.Declaration, label, language string) {
	writeDescription(sb, d)

	fmt.Fprintf(sb, "Arguments: %s\n\n", strings.Join(d.Params, ", "))

	returns := d.Returns
	if returns == "" {
		returns = UnknownReturn
	}
	fmt.Fprintf(sb, "Returns: %s\n\n", returns)

	fence := codeFence(d.Body)
	fmt.Fprintf(sb, "%s body:\n%s%s\n", label, fence, language)
	sb.WriteString(d.Body)
	fmt.Fprintf(sb, "\n%s\n\n", fence)
}

// writeDescription writes the summary and doc comment, when present.
func writeDescription(sb *strings.Builder, d *model.Declaration) {
	if d.HasSummary() {
		fmt.Fprintf(sb, "Summary: %s\n\n", d.Summary)
	}
	if d.DocComment != "" {
		sb.WriteString(d.DocComment)
		sb.WriteString("\n\n")
	}
}

// oneLine collapses whitespace so a summary fits a bullet.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
