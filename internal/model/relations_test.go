package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inferFor(desc TypeDescription, opts InferenceOptions) []DiagramRelationship {
	entity := BuildEntity(desc)
	InferRelationships(&entity, desc, opts)
	return entity.Relationships
}

func TestDirectInheritance(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name:      "Dog",
		Kind:      KindClass,
		BaseType:  &TypeRef{Name: "Animal"},
		Ancestors: []TypeRef{{Name: "Animal"}, {Name: "LivingThing"}},
	}, InferenceOptions{})

	require.Len(t, rels, 1)
	assert.Equal(t, DiagramRelationship{From: "Dog", To: "Animal", Kind: RelationInheritance, Style: LinkSolid}, rels[0])
}

func TestNestedInheritanceEmitsWholeChain(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name:      "Dog",
		Kind:      KindClass,
		BaseType:  &TypeRef{Name: "Animal"},
		Ancestors: []TypeRef{{Name: "Animal"}, {Name: "LivingThing"}},
	}, InferenceOptions{NestedInheritance: true})

	require.Len(t, rels, 2)
	assert.Equal(t, "Animal", rels[0].To)
	assert.Equal(t, "LivingThing", rels[1].To)
	for _, rel := range rels {
		assert.Equal(t, "Dog", rel.From)
		assert.Equal(t, RelationInheritance, rel.Kind)
	}
}

func TestRootObjectNeverATarget(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name:     "Orphan",
		Kind:     KindClass,
		BaseType: &TypeRef{Name: "Object", Namespace: "System"},
	}, InferenceOptions{})
	assert.Empty(t, rels)

	rels = inferFor(TypeDescription{
		Name:      "Dog",
		Kind:      KindClass,
		Ancestors: []TypeRef{{Name: "Animal"}, {Name: "Object", Namespace: "System"}},
	}, InferenceOptions{NestedInheritance: true})
	require.Len(t, rels, 1)
	assert.Equal(t, "Animal", rels[0].To)
}

func TestInterfaceEdges(t *testing.T) {
	t.Parallel()

	// A class implementing an interface realizes it.
	rels := inferFor(TypeDescription{
		Name:       "Dog",
		Kind:       KindClass,
		Interfaces: []TypeRef{{Name: "IWalkable", Kind: KindInterface, Resolved: true}},
	}, InferenceOptions{})
	require.Len(t, rels, 1)
	assert.Equal(t, DiagramRelationship{From: "Dog", To: "IWalkable", Kind: RelationRealization, Style: LinkDashed}, rels[0])

	// An interface extending an interface inherits it.
	rels = inferFor(TypeDescription{
		Name:       "IDog",
		Kind:       KindInterface,
		Interfaces: []TypeRef{{Name: "IAnimal", Kind: KindInterface, Resolved: true}},
	}, InferenceOptions{})
	require.Len(t, rels, 1)
	assert.Equal(t, RelationInheritance, rels[0].Kind)
	assert.Equal(t, LinkDashed, rels[0].Style)
}

func TestCollectionPropertyAggregatesReversed(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name: "Dog",
		Kind: KindClass,
		Properties: []PropertyDescription{
			{Name: "Toys", Type: TypeRef{
				Name:     "List",
				TypeArgs: []TypeRef{{Name: "Toy", Kind: KindClass, Resolved: true}},
			}},
		},
	}, InferenceOptions{})

	require.Len(t, rels, 1)
	// The element aggregates into the container: edge points Toy -> Dog.
	assert.Equal(t, DiagramRelationship{From: "Toy", To: "Dog", Kind: RelationAggregation, Style: LinkSolid}, rels[0])
}

func TestArrayPropertyAggregatesElement(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name: "Dog",
		Kind: KindClass,
		Properties: []PropertyDescription{
			{Name: "Toys", Type: TypeRef{
				IsArray: true,
				Element: &TypeRef{Name: "Toy", Kind: KindClass, Resolved: true},
			}},
		},
	}, InferenceOptions{})

	require.Len(t, rels, 1)
	assert.Equal(t, "Toy", rels[0].From)
	assert.Equal(t, "Dog", rels[0].To)
	assert.Equal(t, RelationAggregation, rels[0].Kind)
}

func TestEnumPropertyDependsRegardlessOfShape(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name: "Owner",
		Kind: KindClass,
		Properties: []PropertyDescription{
			{Name: "State", Type: TypeRef{Name: "Status", Kind: KindEnum, Resolved: true}},
			{Name: "History", Type: TypeRef{
				Name:     "List",
				TypeArgs: []TypeRef{{Name: "Status", Kind: KindEnum, Resolved: true}},
			}},
		},
	}, InferenceOptions{})

	require.Len(t, rels, 1)
	assert.Equal(t, DiagramRelationship{From: "Owner", To: "Status", Kind: RelationDependency, Style: LinkSolid}, rels[0])
}

func TestSystemNamespaceFiltered(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name: "Appointment",
		Kind: KindClass,
		Properties: []PropertyDescription{
			{Name: "When", Type: TypeRef{Name: "DateTime", Namespace: "System", Resolved: true}},
			{Name: "Tags", Type: TypeRef{
				Name:     "List",
				TypeArgs: []TypeRef{{Name: "String", Namespace: "System", Resolved: true}},
			}},
		},
	}, InferenceOptions{})
	assert.Empty(t, rels)
}

func TestSystemPrefixOverride(t *testing.T) {
	t.Parallel()

	desc := TypeDescription{
		Name: "Course",
		Kind: KindClass,
		Properties: []PropertyDescription{
			{Name: "Start", Type: TypeRef{Name: "LocalDate", Namespace: "java.time", Resolved: true}},
		},
	}

	assert.Empty(t, inferFor(desc, InferenceOptions{SystemPrefix: "java"}))
	// With the default prefix the java.time reference is a plain association.
	rels := inferFor(desc, InferenceOptions{})
	require.Len(t, rels, 1)
	assert.Equal(t, RelationAssociation, rels[0].Kind)
}

func TestUnresolvedTargetDefaultsToAssociation(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name: "Clinic",
		Kind: KindClass,
		Properties: []PropertyDescription{
			{Name: "Vet", Type: TypeRef{Name: "Veterinarian"}},
		},
	}, InferenceOptions{})

	require.Len(t, rels, 1)
	assert.Equal(t, DiagramRelationship{From: "Clinic", To: "Veterinarian", Kind: RelationAssociation, Style: LinkSolid}, rels[0])
}

func TestDeduplicationByTriple(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name: "Kennel",
		Kind: KindClass,
		Properties: []PropertyDescription{
			{Name: "Alpha", Type: TypeRef{Name: "Dog", Kind: KindClass, Resolved: true}},
			{Name: "Beta", Type: TypeRef{Name: "Dog", Kind: KindClass, Resolved: true}},
		},
	}, InferenceOptions{})

	require.Len(t, rels, 1)
	assert.Equal(t, "Dog", rels[0].To)
}

func TestRulesApplyIndependently(t *testing.T) {
	t.Parallel()

	rels := inferFor(TypeDescription{
		Name:       "Dog",
		Kind:       KindClass,
		BaseType:   &TypeRef{Name: "Animal"},
		Interfaces: []TypeRef{{Name: "IWalkable"}},
		Properties: []PropertyDescription{
			{Name: "Owner", Type: TypeRef{Name: "Person", Kind: KindClass, Resolved: true}},
		},
	}, InferenceOptions{})

	require.Len(t, rels, 3)
	assert.Equal(t, RelationInheritance, rels[0].Kind)
	assert.Equal(t, RelationRealization, rels[1].Kind)
	assert.Equal(t, RelationAssociation, rels[2].Kind)
}

func TestNoDuplicateTriples(t *testing.T) {
	t.Parallel()

	// Same target through inheritance and association is not a duplicate:
	// the triple differs by kind.
	rels := inferFor(TypeDescription{
		Name:     "Dog",
		Kind:     KindClass,
		BaseType: &TypeRef{Name: "Animal"},
		Properties: []PropertyDescription{
			{Name: "Parent", Type: TypeRef{Name: "Animal", Kind: KindClass, Resolved: true}},
		},
	}, InferenceOptions{})
	require.Len(t, rels, 2)

	seen := make(map[DiagramRelationship]bool)
	for _, rel := range rels {
		key := DiagramRelationship{From: rel.From, To: rel.To, Kind: rel.Kind}
		assert.False(t, seen[key], "duplicate triple %v", key)
		seen[key] = true
	}
}
