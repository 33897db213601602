package render

import (
	"strings"
	"testing"

	"classdiag/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatsDeterministic(t *testing.T) {
	t.Parallel()

	entities := zooEntities()
	generators := []func([]model.DiagramEntity) (string, error){
		NewPlantUMLGenerator(Options{GroupByNamespace: true}).Generate,
		NewDOTGenerator(Options{GroupByNamespace: true}).Generate,
		NewTSVGenerator().Generate,
	}

	for _, generate := range generators {
		first, err := generate(entities)
		require.NoError(t, err)
		second, err := generate(entities)
		require.NoError(t, err)
		assert.Equal(t, first, second, "re-rendering the same model must be byte-identical")
	}
}

func TestPlantUMLGenerate(t *testing.T) {
	t.Parallel()

	gen := NewPlantUMLGenerator(Options{Title: "Zoo"})
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "@startuml\n"))
	assert.True(t, strings.HasSuffix(out, "@enduml\n"))
	assert.Contains(t, out, "title Zoo")
	assert.Contains(t, out, "abstract class Animal {")
	assert.Contains(t, out, "class Dog {")
	assert.Contains(t, out, "interface IWalkable {")
	assert.Contains(t, out, "enum Status {")
	assert.Contains(t, out, "+ String Name")
	assert.Contains(t, out, "Dog --|> Animal : inherits")
	assert.Contains(t, out, "Toy --o Dog : aggregates")
}

func TestPlantUMLGrouped(t *testing.T) {
	t.Parallel()

	gen := NewPlantUMLGenerator(Options{GroupByNamespace: true})
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	assert.Contains(t, out, "package \"Zoo.Core\" {")
	assert.Contains(t, out, "package \"Zoo.Pets\" {")
	// Relations always come after every declaration.
	assert.Less(t, strings.LastIndex(out, "package \""), strings.Index(out, " : inherits"))
}

func TestDOTGenerate(t *testing.T) {
	t.Parallel()

	gen := NewDOTGenerator(Options{})
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "digraph classes {\n"))
	assert.Contains(t, out, "\"Animal\" [label=\"Animal\\n<<abstract>>\"];")
	assert.Contains(t, out, "\"Dog\" -> \"Animal\" [arrowhead=empty, label=\"inherits\"];")
	assert.Contains(t, out, "\"Dog\" -> \"IWalkable\" [arrowhead=empty, style=dashed, label=\"realizes\"];")
	assert.Contains(t, out, "\"Toy\" -> \"Dog\" [arrowhead=odiamond, label=\"aggregates\"];")
}

func TestDOTGroupedClusters(t *testing.T) {
	t.Parallel()

	gen := NewDOTGenerator(Options{GroupByNamespace: true})
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	assert.Contains(t, out, "subgraph cluster_Zoo_Core {")
	assert.Contains(t, out, "subgraph cluster_Zoo_Pets {")
	assert.Contains(t, out, "label=\"Zoo.Core\";")
}

func TestTSVGenerate(t *testing.T) {
	t.Parallel()

	gen := NewTSVGenerator()
	out, err := gen.Generate(zooEntities())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "From\tTo\tKind\tStyle", lines[0])
	assert.Equal(t, "Dog\tAnimal\tinherits\tsolid", lines[1])
	assert.Equal(t, "Dog\tIWalkable\trealizes\tdashed", lines[2])
	assert.Equal(t, "Toy\tDog\taggregates\tsolid", lines[3])
	assert.Equal(t, "Dog\tStatus\tdepends on\tsolid", lines[4])
}
