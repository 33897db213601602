package model

// AssembleOptions suppresses whole entity kinds from the rendered diagram.
type AssembleOptions struct {
	ExcludeClasses    bool
	ExcludeInterfaces bool
	ExcludeEnums      bool
}

// Assemble returns the renderable sublist of entities in their original
// first-seen order. Edges referencing a dropped entity are left in place;
// the renderer tolerates dangling targets.
func Assemble(entities []DiagramEntity, opts AssembleOptions) []DiagramEntity {
	out := make([]DiagramEntity, 0, len(entities))
	for _, entity := range entities {
		if opts.excluded(entity.Kind) {
			continue
		}
		out = append(out, entity)
	}
	return out
}

func (o AssembleOptions) excluded(kind EntityKind) bool {
	switch kind {
	case KindClass:
		return o.ExcludeClasses
	case KindInterface:
		return o.ExcludeInterfaces
	case KindEnum:
		return o.ExcludeEnums
	}
	return false
}
