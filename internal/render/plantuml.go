package render

import (
	"fmt"
	"strings"

	"classdiag/internal/model"
	"classdiag/internal/shared/util"
)

// PlantUMLGenerator serializes the assembled model into a PlantUML class
// diagram. It shares the member and edge formatting with the Mermaid path;
// only the surrounding grammar differs.
type PlantUMLGenerator struct {
	opts Options
}

func NewPlantUMLGenerator(opts Options) *PlantUMLGenerator {
	return &PlantUMLGenerator{opts: opts}
}

func (p *PlantUMLGenerator) Generate(entities []model.DiagramEntity) (string, error) {
	var b strings.Builder

	b.WriteString("@startuml\n")
	fmt.Fprintf(&b, "title %s\n", escapeLabel(p.opts.title()))
	b.WriteString("skinparam classAttributeIconSize 0\n")
	b.WriteString("skinparam shadowing false\n")
	b.WriteString("hide empty members\n\n")

	if p.opts.GroupByNamespace {
		p.writeGroupedDeclarations(&b, entities)
	} else {
		for _, entity := range entities {
			writePlantUMLEntity(&b, entity, "")
		}
	}

	b.WriteString("\n")
	for _, entity := range entities {
		for _, rel := range entity.Relationships {
			fmt.Fprintf(&b, "%s\n", formatRelationship(rel))
		}
	}

	b.WriteString("\n@enduml\n")
	return b.String(), nil
}

func (p *PlantUMLGenerator) writeGroupedDeclarations(b *strings.Builder, entities []model.DiagramEntity) {
	groups := make(map[string][]model.DiagramEntity)
	for _, entity := range entities {
		if entity.Namespace == "" {
			continue
		}
		groups[entity.Namespace] = append(groups[entity.Namespace], entity)
	}

	for _, key := range util.SortedStringKeys(groups) {
		fmt.Fprintf(b, "package \"%s\" {\n", escapeLabel(key))
		for _, entity := range groups[key] {
			writePlantUMLEntity(b, entity, "  ")
		}
		b.WriteString("}\n")
	}
	for _, entity := range entities {
		if entity.Namespace == "" {
			writePlantUMLEntity(b, entity, "")
		}
	}
}

func writePlantUMLEntity(b *strings.Builder, entity model.DiagramEntity, indent string) {
	fmt.Fprintf(b, "%s%s %s {\n", indent, plantUMLKeyword(entity), entity.Name)
	for _, member := range entity.Properties {
		fmt.Fprintf(b, "%s  %s\n", indent, formatMember(member))
	}
	for _, method := range entity.Methods {
		fmt.Fprintf(b, "%s  %s\n", indent, formatMethod(method))
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func plantUMLKeyword(entity model.DiagramEntity) string {
	switch entity.Kind {
	case model.KindInterface:
		return "interface"
	case model.KindEnum:
		return "enum"
	case model.KindClass:
		if entity.IsAbstract {
			return "abstract class"
		}
		return "class"
	}
	return "class"
}
