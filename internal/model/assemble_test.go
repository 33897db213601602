package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleFilters(t *testing.T) {
	t.Parallel()

	entities := []DiagramEntity{
		{Name: "Dog", Kind: KindClass},
		{Name: "IWalkable", Kind: KindInterface},
		{Name: "Status", Kind: KindEnum},
		{Name: "Cat", Kind: KindClass},
	}

	t.Run("NoFilters", func(t *testing.T) {
		t.Parallel()
		out := Assemble(entities, AssembleOptions{})
		assert.Len(t, out, 4)
	})

	t.Run("ExcludeEnums", func(t *testing.T) {
		t.Parallel()
		out := Assemble(entities, AssembleOptions{ExcludeEnums: true})
		require.Len(t, out, 3)
		for _, entity := range out {
			assert.NotEqual(t, KindEnum, entity.Kind)
		}
	})

	t.Run("ExcludeClassesPreservesOrder", func(t *testing.T) {
		t.Parallel()
		out := Assemble(entities, AssembleOptions{ExcludeClasses: true})
		require.Len(t, out, 2)
		assert.Equal(t, "IWalkable", out[0].Name)
		assert.Equal(t, "Status", out[1].Name)
	})

	t.Run("ExcludeEverything", func(t *testing.T) {
		t.Parallel()
		out := Assemble(entities, AssembleOptions{ExcludeClasses: true, ExcludeInterfaces: true, ExcludeEnums: true})
		assert.Empty(t, out)
	})
}
