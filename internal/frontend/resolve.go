package frontend

import "classdiag/internal/model"

// Resolve links every type reference in the declarations against the types
// declared in the same pass and fills in ancestor chains. Identity is the
// simple name; the first declaration of a name wins.
func Resolve(decls *Declarations) {
	types := make(map[string]*model.TypeDescription, len(decls.Types))
	for i := range decls.Types {
		if _, ok := types[decls.Types[i].Name]; !ok {
			types[decls.Types[i].Name] = &decls.Types[i]
		}
	}
	enums := make(map[string]*model.EnumDescription, len(decls.Enums))
	for i := range decls.Enums {
		if _, ok := enums[decls.Enums[i].Name]; !ok {
			enums[decls.Enums[i].Name] = &decls.Enums[i]
		}
	}

	link := func(ref *model.TypeRef) {
		linkRef(ref, types, enums)
	}

	for i := range decls.Types {
		t := &decls.Types[i]
		if t.BaseType != nil {
			link(t.BaseType)
		}
		for j := range t.Interfaces {
			link(&t.Interfaces[j])
		}
		for j := range t.Properties {
			link(&t.Properties[j].Type)
		}
		for j := range t.Methods {
			m := &t.Methods[j]
			link(&m.ReturnType)
			for k := range m.Parameters {
				link(&m.Parameters[k].Type)
			}
		}
	}

	for i := range decls.Types {
		t := &decls.Types[i]
		if len(t.Ancestors) == 0 {
			t.Ancestors = ancestorChain(t, types)
		}
	}
}

func linkRef(ref *model.TypeRef, types map[string]*model.TypeDescription, enums map[string]*model.EnumDescription) {
	if ref == nil {
		return
	}
	if decl, ok := types[ref.Name]; ok {
		ref.Resolved = true
		ref.Kind = decl.Kind
		ref.Namespace = decl.Namespace
		if len(ref.Implements) == 0 {
			for _, iface := range decl.Interfaces {
				ref.Implements = append(ref.Implements, iface.Name)
			}
		}
	} else if decl, ok := enums[ref.Name]; ok {
		ref.Resolved = true
		ref.Kind = model.KindEnum
		ref.Namespace = decl.Namespace
	}
	linkRef(ref.Element, types, enums)
	for i := range ref.TypeArgs {
		linkRef(&ref.TypeArgs[i], types, enums)
	}
}

// ancestorChain walks base types transitively, direct base first.
// A cycle or an undeclared base ends the chain.
func ancestorChain(t *model.TypeDescription, types map[string]*model.TypeDescription) []model.TypeRef {
	var chain []model.TypeRef
	visited := map[string]bool{t.Name: true}
	cur := t.BaseType
	for cur != nil && !visited[cur.Name] {
		visited[cur.Name] = true
		chain = append(chain, *cur)
		decl, ok := types[cur.Name]
		if !ok {
			break
		}
		cur = decl.BaseType
	}
	return chain
}
