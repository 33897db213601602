package render

import (
	"fmt"
	"strings"

	"classdiag/internal/model"
	"classdiag/internal/shared/util"
)

// Options controls diagram serialization. NestedInheritance only changes
// which edges inference already produced; it is carried here so callers can
// keep one options value for the whole render stage.
type Options struct {
	Title            string
	GroupByNamespace bool
}

func (o Options) title() string {
	if o.Title == "" {
		return "Class Diagram"
	}
	return o.Title
}

// MermaidGenerator serializes an assembled entity list into a fenced
// Mermaid class-diagram document.
type MermaidGenerator struct {
	opts Options
}

func NewMermaidGenerator(opts Options) *MermaidGenerator {
	return &MermaidGenerator{opts: opts}
}

// Generate produces the full document. Output is byte-stable for a given
// entity list: iteration follows the input order everywhere except the
// namespace containers, which sort by normalized key.
func (m *MermaidGenerator) Generate(entities []model.DiagramEntity) (string, error) {
	var b strings.Builder

	b.WriteString("```mermaid\n")
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", escapeLabel(m.opts.title()))
	b.WriteString("config:\n")
	b.WriteString("  class:\n")
	b.WriteString("    hideEmptyMembersBox: true\n")
	b.WriteString("---\n")
	b.WriteString("classDiagram\n")

	if m.opts.GroupByNamespace {
		m.writeGrouped(&b, entities)
	} else {
		m.writeFlat(&b, entities)
	}

	b.WriteString("```\n")
	return b.String(), nil
}

// writeFlat emits each entity as a self-contained block: member body,
// stereotype, then that entity's relationship lines.
func (m *MermaidGenerator) writeFlat(b *strings.Builder, entities []model.DiagramEntity) {
	for _, entity := range entities {
		writeEntityBody(b, entity, "    ")
		fmt.Fprintf(b, "    %s %s\n", stereotype(entity), entity.Name)
		for _, rel := range entity.Relationships {
			fmt.Fprintf(b, "    %s\n", formatRelationship(rel))
		}
	}
}

// writeGrouped emits three strict passes: container-wrapped bodies first,
// then every stereotype, then every relationship. The grammar requires all
// container declarations before any statement that references their members.
func (m *MermaidGenerator) writeGrouped(b *strings.Builder, entities []model.DiagramEntity) {
	groups := make(map[string][]model.DiagramEntity)
	for _, entity := range entities {
		if entity.Namespace == "" {
			continue
		}
		key := normalizeNamespaceKey(entity.Namespace)
		groups[key] = append(groups[key], entity)
	}

	for _, key := range util.SortedStringKeys(groups) {
		fmt.Fprintf(b, "    namespace %s {\n", key)
		for _, entity := range groups[key] {
			writeEntityBody(b, entity, "        ")
		}
		b.WriteString("    }\n")
	}
	for _, entity := range entities {
		if entity.Namespace == "" {
			writeEntityBody(b, entity, "    ")
		}
	}

	for _, entity := range entities {
		fmt.Fprintf(b, "    %s %s\n", stereotype(entity), entity.Name)
	}

	for _, entity := range entities {
		for _, rel := range entity.Relationships {
			fmt.Fprintf(b, "    %s\n", formatRelationship(rel))
		}
	}
}

func writeEntityBody(b *strings.Builder, entity model.DiagramEntity, indent string) {
	fmt.Fprintf(b, "%sclass %s{\n", indent, entity.Name)
	for _, member := range entity.Properties {
		fmt.Fprintf(b, "%s    %s\n", indent, formatMember(member))
	}
	for _, method := range entity.Methods {
		fmt.Fprintf(b, "%s    %s\n", indent, formatMethod(method))
	}
	fmt.Fprintf(b, "%s}\n", indent)
}
