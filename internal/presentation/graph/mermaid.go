// Package graph renders project structure as Mermaid flowcharts for
// embedding in docs and PR comments.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/graft"
)

// UnitGraph produces a Mermaid flowchart of the unit composition tree.
// Shapes carry the contract role:
//   - connected units: [[Subroutine]]
//   - plain units: [Rectangle]
//   - composed children with no unit directory: [/Parallelogram/] (dangling)
func UnitGraph(units []graft.UnitSummary, details map[string]graft.UnitDetail) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	known := make(map[string]bool, len(units))
	for _, u := range units {
		known[u.Name] = true
	}

	for _, u := range units {
		opener, closer := "[", "]"
		if u.Connected {
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeID(u.Name), opener, u.Name, closer)

		detail, ok := details[u.Name]
		if !ok {
			continue
		}
		for _, child := range detail.Children {
			if !known[child] {
				fmt.Fprintf(&sb, "    %s[/\"%s\"/]\n", sanitizeID(child), child)
			}
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeID(u.Name), sanitizeID(child))
		}
	}

	return sb.String()
}

// ModuleGraph produces a Mermaid flowchart of the domain-module tree. Edges
// follow nesting; dotted edges mark query reads into descendant sub-states.
func ModuleGraph(modules []graft.ModuleSummary) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, m := range modules {
		id := sanitizeID(m.Path)
		label := m.Name
		if len(m.Actions) > 0 {
			label = fmt.Sprintf("%s <br/> %s", m.Name, strings.Join(m.Actions, ", "))
		}
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, label)

		for _, child := range m.Children {
			childPath := child
			if m.Path != "/" {
				childPath = m.Path + "/" + child
			}
			fmt.Fprintf(&sb, "    %s --> %s\n", id, sanitizeID(childPath))
		}
	}

	return sb.String()
}

// Source is the project introspection surface the graphs are built from.
// *graft.Project satisfies it.
type Source interface {
	Units() []graft.UnitSummary
	Describe(name string) (graft.UnitDetail, error)
	Modules() ([]graft.ModuleSummary, error)
}

// Project renders both graphs for a validated project as one markdown
// document.
func Project(p Source) (string, error) {
	units := p.Units()
	details := make(map[string]graft.UnitDetail, len(units))
	for _, u := range units {
		d, err := p.Describe(u.Name)
		if err != nil {
			return "", err
		}
		details[u.Name] = d
	}

	modules, err := p.Modules()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if len(units) > 0 {
		sb.WriteString("## Units\n\n```mermaid\n")
		sb.WriteString(UnitGraph(units, details))
		sb.WriteString("```\n")
	}
	if len(modules) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## Modules\n\n```mermaid\n")
		sb.WriteString(ModuleGraph(modules))
		sb.WriteString("```\n")
	}
	return sb.String(), nil
}

var idReplacer = strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_")

func sanitizeID(id string) string {
	if id == "/" || id == "" {
		return "root"
	}
	return idReplacer.Replace(id)
}
