package render

import (
	"strings"
	"testing"

	"classdiag/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zooEntities() []model.DiagramEntity {
	return []model.DiagramEntity{
		{
			Name:       "Animal",
			Kind:       model.KindClass,
			IsAbstract: true,
			Visibility: "+",
			Namespace:  "Zoo.Core",
			Properties: []model.DiagramMember{
				{Name: "Name", Type: "String", Visibility: "+"},
			},
		},
		{
			Name:       "Dog",
			Kind:       model.KindClass,
			Visibility: "+",
			Namespace:  "Zoo.Pets",
			Properties: []model.DiagramMember{
				{Name: "Toys", Type: "List<Toy>", Visibility: "-", IsCollection: true},
			},
			Methods: []model.DiagramMethodSig{
				{Name: "Fetch", ReturnType: "Task<Toy>", Visibility: "+", Parameters: []string{"String name"}, IsAsync: true},
			},
			Relationships: []model.DiagramRelationship{
				{From: "Dog", To: "Animal", Kind: model.RelationInheritance, Style: model.LinkSolid},
				{From: "Dog", To: "IWalkable", Kind: model.RelationRealization, Style: model.LinkDashed},
				{From: "Toy", To: "Dog", Kind: model.RelationAggregation, Style: model.LinkSolid},
				{From: "Dog", To: "Status", Kind: model.RelationDependency, Style: model.LinkSolid},
			},
		},
		{
			Name:       "IWalkable",
			Kind:       model.KindInterface,
			Visibility: "+",
		},
		{
			Name:       "Status",
			Kind:       model.KindEnum,
			Visibility: "+",
			Namespace:  "Zoo.Core",
			Properties: []model.DiagramMember{
				{Name: "Active", Type: "enum", Visibility: "+"},
			},
		},
	}
}

func TestMermaidFlat(t *testing.T) {
	t.Parallel()

	gen := NewMermaidGenerator(Options{Title: "Zoo"})
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "```mermaid\n---\ntitle: Zoo\n"))
	assert.Contains(t, out, "hideEmptyMembersBox: true")
	assert.Contains(t, out, "classDiagram\n")
	assert.True(t, strings.HasSuffix(out, "```\n"))

	assert.Contains(t, out, "class Animal{\n        + String Name\n    }")
	assert.Contains(t, out, "<<abstract>> Animal")
	assert.Contains(t, out, "<<Class>> Dog")
	assert.Contains(t, out, "<<Interface>> IWalkable")
	assert.Contains(t, out, "<<Enum>> Status")

	assert.Contains(t, out, "- List<Toy> Toys")
	assert.Contains(t, out, "+ async Task<Toy> Fetch(String name)")

	assert.Contains(t, out, "Dog --|> Animal : inherits")
	assert.Contains(t, out, "Dog ..|> IWalkable : realizes")
	assert.Contains(t, out, "Toy --o Dog : aggregates")
	assert.Contains(t, out, "Dog ..> Status : depends on")
}

func TestMermaidFlatRelationshipsFollowOwner(t *testing.T) {
	t.Parallel()

	gen := NewMermaidGenerator(Options{})
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	// In flat mode each entity's edges come right after its stereotype.
	stereotype := strings.Index(out, "<<Class>> Dog")
	edge := strings.Index(out, "Dog --|> Animal")
	next := strings.Index(out, "class IWalkable{")
	require.True(t, stereotype >= 0 && edge >= 0 && next >= 0)
	assert.Less(t, stereotype, edge)
	assert.Less(t, edge, next)
}

func TestMermaidGroupedThreePhases(t *testing.T) {
	t.Parallel()

	gen := NewMermaidGenerator(Options{Title: "Zoo", GroupByNamespace: true})
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	// Containers are sorted by normalized key and hold only bodies.
	core := strings.Index(out, "namespace Zoo_Core {")
	pets := strings.Index(out, "namespace Zoo_Pets {")
	require.True(t, core >= 0 && pets >= 0)
	assert.Less(t, core, pets)

	// The namespace-less interface renders outside any container.
	assert.Contains(t, out, "\n    class IWalkable{\n")

	lastBody := strings.LastIndex(out, "class ")
	firstStereotype := strings.Index(out, "<<")
	lastStereotype := strings.LastIndex(out, ">> ")
	firstEdge := strings.Index(out, " : ")
	require.True(t, lastBody >= 0 && firstStereotype >= 0 && firstEdge >= 0)

	// All bodies precede all stereotypes, all stereotypes precede all edges.
	assert.Less(t, lastBody, firstStereotype)
	assert.Less(t, lastStereotype, firstEdge)

	// Stereotypes keep original entity order, not namespace order.
	assert.Less(t, strings.Index(out, "<<abstract>> Animal"), strings.Index(out, "<<Class>> Dog"))
	assert.Less(t, strings.Index(out, "<<Class>> Dog"), strings.Index(out, "<<Interface>> IWalkable"))
	assert.Less(t, strings.Index(out, "<<Interface>> IWalkable"), strings.Index(out, "<<Enum>> Status"))
}

func TestMermaidDeterministic(t *testing.T) {
	t.Parallel()

	for _, grouped := range []bool{false, true} {
		gen := NewMermaidGenerator(Options{Title: "Zoo", GroupByNamespace: grouped})
		first, err := gen.Generate(zooEntities())
		require.NoError(t, err)
		second, err := gen.Generate(zooEntities())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestMermaidDanglingEdgeTargets(t *testing.T) {
	t.Parallel()

	// Edges referencing an excluded entity stay textual; rendering must not fail.
	entities := []model.DiagramEntity{
		{
			Name:       "Owner",
			Kind:       model.KindClass,
			Visibility: "+",
			Relationships: []model.DiagramRelationship{
				{From: "Owner", To: "Status", Kind: model.RelationDependency, Style: model.LinkSolid},
			},
		},
	}
	gen := NewMermaidGenerator(Options{})
	out, err := gen.Generate(entities)
	require.NoError(t, err)
	assert.Contains(t, out, "Owner ..> Status : depends on")
}

func TestMermaidEmptyModel(t *testing.T) {
	t.Parallel()

	gen := NewMermaidGenerator(Options{})
	out, err := gen.Generate(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Class Diagram")
	assert.Contains(t, out, "classDiagram\n")
}

func TestNormalizeNamespaceKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		expected string
	}{
		{"Zoo.Pets", "Zoo_Pets"},
		{"a/b", "a_b"},
		{"pkg::sub", "pkg__sub"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, normalizeNamespaceKey(tc.input))
	}
}
