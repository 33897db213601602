package render

import "classdiag/internal/model"

// Pure total lookups from edge kinds to grammar tokens. Each switch is
// exhaustive so a new RelationKind fails loudly here instead of rendering
// garbage.

// linkToken selects the line style token for an edge kind.
func linkToken(kind model.RelationKind) string {
	switch kind {
	case model.RelationRealization, model.RelationDependency, model.RelationLink:
		return ".."
	case model.RelationInheritance, model.RelationAssociation,
		model.RelationAggregation, model.RelationComposition:
		return "--"
	}
	return "--"
}

// relationToken selects the arrowhead token for an edge kind.
func relationToken(kind model.RelationKind) string {
	switch kind {
	case model.RelationInheritance:
		return "|>"
	case model.RelationComposition:
		return "*"
	case model.RelationAggregation:
		return "o"
	case model.RelationAssociation:
		return ">"
	case model.RelationRealization:
		return "|>"
	case model.RelationDependency:
		return ">"
	case model.RelationLink:
		return ""
	}
	return ""
}

// contextWord is the fixed English gloss appended to every rendered edge.
func contextWord(kind model.RelationKind) string {
	switch kind {
	case model.RelationInheritance:
		return "inherits"
	case model.RelationComposition:
		return "composes"
	case model.RelationAggregation:
		return "aggregates"
	case model.RelationAssociation:
		return "associates"
	case model.RelationRealization:
		return "realizes"
	case model.RelationDependency:
		return "depends on"
	case model.RelationLink:
		return "links"
	}
	return "links"
}

// stereotype returns the annotation text for an entity: abstract classes get
// <<abstract>>, everything else its kind name.
func stereotype(entity model.DiagramEntity) string {
	if entity.Kind == model.KindClass && entity.IsAbstract {
		return "<<abstract>>"
	}
	return "<<" + entity.Kind.String() + ">>"
}
