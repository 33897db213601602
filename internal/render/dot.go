package render

import (
	"fmt"
	"strings"

	"classdiag/internal/model"
	"classdiag/internal/shared/util"
)

// DOTGenerator serializes the assembled model into a Graphviz digraph.
// Nodes carry the entity name and stereotype; edge heads and styles follow
// the same classification the class-diagram grammars use.
type DOTGenerator struct {
	opts Options
}

func NewDOTGenerator(opts Options) *DOTGenerator {
	return &DOTGenerator{opts: opts}
}

func (d *DOTGenerator) Generate(entities []model.DiagramEntity) (string, error) {
	var b strings.Builder

	b.WriteString("digraph classes {\n")
	b.WriteString("  rankdir=BT;\n")
	b.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=8];\n\n")

	if d.opts.GroupByNamespace {
		d.writeClusteredNodes(&b, entities)
	} else {
		for _, entity := range entities {
			writeDOTNode(&b, entity, "  ")
		}
	}

	b.WriteString("\n")
	for _, entity := range entities {
		for _, rel := range entity.Relationships {
			fmt.Fprintf(&b, "  \"%s\" -> \"%s\" [%s, label=\"%s\"];\n",
				rel.From, rel.To, dotEdgeAttrs(rel), contextWord(rel.Kind))
		}
	}

	b.WriteString("}\n")
	return b.String(), nil
}

func (d *DOTGenerator) writeClusteredNodes(b *strings.Builder, entities []model.DiagramEntity) {
	groups := make(map[string][]model.DiagramEntity)
	for _, entity := range entities {
		if entity.Namespace == "" {
			continue
		}
		groups[entity.Namespace] = append(groups[entity.Namespace], entity)
	}

	for _, key := range util.SortedStringKeys(groups) {
		fmt.Fprintf(b, "  subgraph cluster_%s {\n", normalizeNamespaceKey(key))
		fmt.Fprintf(b, "    label=\"%s\";\n", escapeLabel(key))
		b.WriteString("    style=filled;\n")
		b.WriteString("    color=\"whitesmoke\";\n")
		for _, entity := range groups[key] {
			writeDOTNode(b, entity, "    ")
		}
		b.WriteString("  }\n")
	}
	for _, entity := range entities {
		if entity.Namespace == "" {
			writeDOTNode(b, entity, "  ")
		}
	}
}

func writeDOTNode(b *strings.Builder, entity model.DiagramEntity, indent string) {
	fmt.Fprintf(b, "%s\"%s\" [label=\"%s\\n%s\"];\n",
		indent, entity.Name, escapeLabel(entity.Name), stereotype(entity))
}

// dotEdgeAttrs maps the edge classification to Graphviz arrowheads: hollow
// triangles for inheritance/realization, a diamond at the container end for
// aggregation, plain arrows otherwise. Dashed edges follow the link style.
func dotEdgeAttrs(rel model.DiagramRelationship) string {
	attrs := make([]string, 0, 2)
	switch rel.Kind {
	case model.RelationInheritance, model.RelationRealization:
		attrs = append(attrs, "arrowhead=empty")
	case model.RelationAggregation:
		attrs = append(attrs, "arrowhead=odiamond")
	case model.RelationComposition:
		attrs = append(attrs, "arrowhead=diamond")
	case model.RelationAssociation, model.RelationDependency:
		attrs = append(attrs, "arrowhead=vee")
	case model.RelationLink:
		attrs = append(attrs, "arrowhead=none")
	}
	if rel.Style == model.LinkDashed {
		attrs = append(attrs, "style=dashed")
	}
	return strings.Join(attrs, ", ")
}
