package model

import "strings"

// DefaultSystemPrefix filters out member types living in the platform
// library namespace; no member-derived edges are produced for them.
const DefaultSystemPrefix = "System"

// rootObjectName is the universal root type every class implicitly inherits.
// It never appears as an inheritance target.
const rootObjectName = "Object"

// InferenceOptions configures relationship inference for one run.
type InferenceOptions struct {
	// NestedInheritance emits one edge per ancestor in the chain instead of
	// a single edge to the direct base type.
	NestedInheritance bool
	// SystemPrefix overrides DefaultSystemPrefix; empty keeps the default.
	SystemPrefix string
}

func (o InferenceOptions) systemPrefix() string {
	if o.SystemPrefix == "" {
		return DefaultSystemPrefix
	}
	return o.SystemPrefix
}

// relationshipBuilder accumulates edges for a single owning entity and
// enforces (from, to, kind) uniqueness at construction time.
type relationshipBuilder struct {
	edges []DiagramRelationship
	seen  map[DiagramRelationship]bool
}

func newRelationshipBuilder() *relationshipBuilder {
	return &relationshipBuilder{seen: make(map[DiagramRelationship]bool)}
}

func (b *relationshipBuilder) add(from, to string, kind RelationKind, style LinkStyle) {
	if from == "" || to == "" {
		return
	}
	key := DiagramRelationship{From: from, To: to, Kind: kind}
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.edges = append(b.edges, DiagramRelationship{From: from, To: to, Kind: kind, Style: style})
}

// freeze returns the accumulated edges; the builder must not be reused.
func (b *relationshipBuilder) freeze() []DiagramRelationship {
	edges := b.edges
	b.edges = nil
	b.seen = nil
	return edges
}

// InferRelationships derives every outbound edge for entity from the raw
// collaborator data in desc and appends the frozen set to the entity.
// Each rule applies independently; none short-circuits another.
func InferRelationships(entity *DiagramEntity, desc TypeDescription, opts InferenceOptions) {
	builder := newRelationshipBuilder()

	inferInheritance(builder, entity.Name, desc, opts)
	inferRealization(builder, entity.Name, desc)
	inferMemberEdges(builder, entity.Name, desc, opts)

	entity.Relationships = append(entity.Relationships, builder.freeze()...)
}

func inferInheritance(b *relationshipBuilder, owner string, desc TypeDescription, opts InferenceOptions) {
	if opts.NestedInheritance {
		for _, ancestor := range desc.Ancestors {
			if isRootObject(ancestor, opts.systemPrefix()) {
				continue
			}
			b.add(owner, ancestor.Name, RelationInheritance, LinkSolid)
		}
		return
	}
	if desc.BaseType == nil || isRootObject(*desc.BaseType, opts.systemPrefix()) {
		return
	}
	b.add(owner, desc.BaseType.Name, RelationInheritance, LinkSolid)
}

// inferRealization emits one dashed edge per directly implemented interface.
// An interface extending interfaces is inheritance, not realization.
func inferRealization(b *relationshipBuilder, owner string, desc TypeDescription) {
	kind := RelationRealization
	if desc.Kind == KindInterface {
		kind = RelationInheritance
	}
	for _, iface := range desc.Interfaces {
		b.add(owner, iface.Name, kind, LinkDashed)
	}
}

func inferMemberEdges(b *relationshipBuilder, owner string, desc TypeDescription, opts InferenceOptions) {
	prefix := opts.systemPrefix()
	for _, prop := range desc.Properties {
		target := resolveTargetType(prop.Type)
		if target.Name == "" {
			continue
		}
		if target.Namespace != "" && strings.HasPrefix(target.Namespace, prefix) {
			continue
		}
		switch {
		case target.Resolved && target.Kind == KindEnum:
			b.add(owner, target.Name, RelationDependency, LinkSolid)
		case prop.Type.IsCollectionShape():
			// The element aggregates into its container, so the edge points
			// from the resolved target back to the owning type.
			b.add(target.Name, owner, RelationAggregation, LinkSolid)
		default:
			b.add(owner, target.Name, RelationAssociation, LinkSolid)
		}
	}
}

// resolveTargetType collapses arrays to their element type and
// single-argument generics to that one argument.
func resolveTargetType(ref TypeRef) TypeRef {
	if ref.IsArray && ref.Element != nil {
		return *ref.Element
	}
	if len(ref.TypeArgs) == 1 {
		return ref.TypeArgs[0]
	}
	return ref
}

func isRootObject(ref TypeRef, systemPrefix string) bool {
	if !strings.EqualFold(ref.Name, rootObjectName) {
		return false
	}
	return ref.Namespace == "" || strings.HasPrefix(ref.Namespace, systemPrefix)
}
