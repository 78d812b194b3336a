// Package markdown renders schemas as human readable markdown.
package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/conform/pkg/schema"
)

// Describe produces a markdown document with one table per schema node.
// Nested templates get their own section, titled by their path
// (e.g. "stages[]"). A template that refers back to an ancestor is listed once.
func Describe(title string, node *schema.Node) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if node.Len() == 0 {
		sb.WriteString("_Empty schema: every document conforms._\n")
		return sb.String()
	}

	seen := map[*schema.Node]string{}
	writeNode(&sb, "", node, seen)
	return sb.String()
}

type section struct {
	path string
	node *schema.Node
}

func writeNode(sb *strings.Builder, path string, node *schema.Node, seen map[*schema.Node]string) {
	seen[node] = path

	if path != "" {
		sb.WriteString(fmt.Sprintf("\n## `%s`\n\n", path))
	}
	sb.WriteString("| Field | Type | Required | Constraints |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")

	var nested []section
	for _, f := range node.Fields() {
		typ := "any"
		var constraints []string
		for _, r := range f.Rules {
			switch arg := r.Arg.(type) {
			case schema.TypeArg:
				typ = arg.Name
				if arg.Kind == schema.KindUnknown {
					typ += " (unknown, never matches)"
				}
			case schema.BoundArg:
				constraints = append(constraints, fmt.Sprintf("%s %s", r.Key, formatBound(float64(arg))))
			case schema.ChoicesArg:
				constraints = append(constraints, "one of "+formatChoices(arg))
			case schema.TemplateArg:
				child := joinPath(path, f.Name)
				if prev, ok := seen[arg.Node]; ok {
					constraints = append(constraints, fmt.Sprintf("template `%s` (recursive)", displayPath(prev)))
					continue
				}
				constraints = append(constraints, fmt.Sprintf("template `%s`", child))
				nested = append(nested, section{path: child, node: arg.Node})
			case schema.UnknownArg:
				constraints = append(constraints, fmt.Sprintf("%s: %v (ignored)", r.Key, arg.Raw))
			}
		}

		required := "no"
		if f.Rules.IsRequired() {
			required = "yes"
		}
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
			escape(f.Name), escape(typ), required, escape(strings.Join(constraints, "; "))))
	}

	for _, s := range nested {
		if _, ok := seen[s.node]; ok {
			continue
		}
		writeNode(sb, s.path, s.node, seen)
	}
}

func joinPath(parent, field string) string {
	if parent == "" {
		return field + "[]"
	}
	return parent + "." + field + "[]"
}

func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatChoices(choices schema.ChoicesArg) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		switch v := c.(type) {
		case string:
			parts[i] = strconv.Quote(v)
		case nil:
			parts[i] = "null"
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// escape keeps table cells on one line and pipes out of the column grid.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
