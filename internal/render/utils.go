package render

import (
	"fmt"
	"strings"
	"unicode"

	"classdiag/internal/model"
)

// formatRelationship composes one edge line. Both rendering modes and all
// serializers that speak the class-diagram arrow dialect share it so the
// two paths cannot drift apart.
func formatRelationship(rel model.DiagramRelationship) string {
	return fmt.Sprintf("%s %s%s %s : %s",
		rel.From, linkToken(rel.Kind), relationToken(rel.Kind), rel.To, contextWord(rel.Kind))
}

func formatMember(member model.DiagramMember) string {
	return fmt.Sprintf("%s %s %s", member.Visibility, member.Type, member.Name)
}

func formatMethod(method model.DiagramMethodSig) string {
	async := ""
	if method.IsAsync {
		async = "async "
	}
	return fmt.Sprintf("%s %s%s %s(%s)",
		method.Visibility, async, method.ReturnType, method.Name,
		strings.Join(method.Parameters, ", "))
}

// normalizeNamespaceKey turns a source namespace into a grouping key the
// diagram grammar accepts as a container identifier.
func normalizeNamespaceKey(namespace string) string {
	var b strings.Builder
	for _, r := range namespace {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
