package render

import (
	"fmt"
	"strings"

	"classdiag/internal/model"
)

// TSVGenerator emits the inferred relationships as a flat tab-separated
// listing, one edge per row, for spreadsheet or scripted inspection.
type TSVGenerator struct{}

func NewTSVGenerator() *TSVGenerator {
	return &TSVGenerator{}
}

func (t *TSVGenerator) Generate(entities []model.DiagramEntity) (string, error) {
	var b strings.Builder

	b.WriteString("From\tTo\tKind\tStyle\n")
	for _, entity := range entities {
		for _, rel := range entity.Relationships {
			b.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\n",
				rel.From, rel.To, contextWord(rel.Kind), styleName(rel.Style)))
		}
	}

	return b.String(), nil
}

func styleName(style model.LinkStyle) string {
	if style == model.LinkDashed {
		return "dashed"
	}
	return "solid"
}
