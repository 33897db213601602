package frontend

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"classdiag/internal/model"
)

// javaLangTypes are implicitly imported in every compilation unit.
var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "Integer": true, "Long": true,
	"Double": true, "Float": true, "Boolean": true, "Character": true,
	"Byte": true, "Short": true, "Void": true, "Number": true,
	"Exception": true, "RuntimeException": true, "Throwable": true,
	"Iterable": true, "Comparable": true, "Runnable": true, "Thread": true,
	"StringBuilder": true, "Math": true, "System": true,
}

// javaCollectionTypes enumerate their element type.
var javaCollectionTypes = map[string]bool{
	"List": true, "ArrayList": true, "LinkedList": true,
	"Set": true, "HashSet": true, "TreeSet": true, "LinkedHashSet": true,
	"Collection": true, "Queue": true, "Deque": true, "ArrayDeque": true,
	"Iterable": true, "Stack": true, "Vector": true,
}

type JavaExtractor struct {
	engine *ExtractorEngine
}

func NewJavaExtractor() *JavaExtractor {
	e := &JavaExtractor{}
	e.engine = NewExtractorEngine(map[string]NodeHandler{
		"package_declaration":   e.handlePackage,
		"import_declaration":    e.handleImport,
		"class_declaration":     e.handleClass,
		"interface_declaration": e.handleInterface,
		"enum_declaration":      e.handleEnum,
	})
	return e
}

func (e *JavaExtractor) SystemPrefix() string { return "java" }

func (e *JavaExtractor) Extract(ctx *ExtractionContext, root *sitter.Node) {
	e.engine.Walk(ctx, root)
}

func (e *JavaExtractor) handlePackage(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "scoped_identifier" || child.Kind() == "identifier" {
			ctx.Namespace = ctx.Text(child)
			break
		}
	}
	return true
}

func (e *JavaExtractor) handleImport(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "scoped_identifier" {
			full := ctx.Text(child)
			if idx := strings.LastIndex(full, "."); idx > 0 {
				ctx.Imports[full[idx+1:]] = full[:idx]
			}
		}
	}
	return true
}

func (e *JavaExtractor) handleClass(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return false
	}

	desc := model.TypeDescription{
		Name:       name,
		Kind:       model.KindClass,
		Namespace:  ctx.Namespace,
		Access:     e.accessibility(ctx, node),
		IsAbstract: e.hasModifier(ctx, node, "abstract"),
	}

	if super := ctx.FindChild(node, "superclass"); super != nil {
		for i := uint(0); i < super.ChildCount(); i++ {
			child := super.Child(i)
			if isJavaTypeNode(child.Kind()) {
				ref := e.typeRef(ctx, child)
				desc.BaseType = &ref
				break
			}
		}
	}
	if ifaces := ctx.FindChild(node, "super_interfaces"); ifaces != nil {
		desc.Interfaces = e.typeList(ctx, ifaces)
	}

	if body := node.ChildByFieldName("body"); body != nil {
		e.extractMembers(ctx, body, &desc)
	}

	ctx.Decls.Types = append(ctx.Decls.Types, desc)
	return false // nested declarations are picked up by the walk
}

func (e *JavaExtractor) handleInterface(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return false
	}

	desc := model.TypeDescription{
		Name:      name,
		Kind:      model.KindInterface,
		Namespace: ctx.Namespace,
		Access:    e.accessibility(ctx, node),
	}

	if ext := ctx.FindChild(node, "extends_interfaces"); ext != nil {
		desc.Interfaces = e.typeList(ctx, ext)
	}

	if body := node.ChildByFieldName("body"); body != nil {
		e.extractMembers(ctx, body, &desc)
	}

	ctx.Decls.Types = append(ctx.Decls.Types, desc)
	return false
}

func (e *JavaExtractor) handleEnum(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return false
	}

	desc := model.EnumDescription{
		Name:      name,
		Namespace: ctx.Namespace,
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			if child.Kind() == "enum_constant" {
				if member := ctx.Text(child.ChildByFieldName("name")); member != "" {
					desc.Members = append(desc.Members, member)
				}
			}
		}
	}

	ctx.Decls.Enums = append(ctx.Decls.Enums, desc)
	return true
}

func (e *JavaExtractor) extractMembers(ctx *ExtractionContext, body *sitter.Node, desc *model.TypeDescription) {
	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		switch member.Kind() {
		case "field_declaration":
			e.extractField(ctx, member, desc)
		case "method_declaration":
			e.extractMethod(ctx, member, desc)
		}
	}
}

func (e *JavaExtractor) extractField(ctx *ExtractionContext, node *sitter.Node, desc *model.TypeDescription) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	ref := e.typeRef(ctx, typeNode)
	vis := e.accessibility(ctx, node)

	// One declaration can introduce several fields: `int a, b;`.
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		name := ctx.Text(child.ChildByFieldName("name"))
		if name == "" {
			continue
		}
		desc.Properties = append(desc.Properties, model.PropertyDescription{
			Name:   name,
			Type:   ref,
			Access: vis,
		})
	}
}

func (e *JavaExtractor) extractMethod(ctx *ExtractionContext, node *sitter.Node, desc *model.TypeDescription) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	method := model.MethodDescription{
		Name:   name,
		Access: e.accessibility(ctx, node),
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		method.ReturnType = e.typeRef(ctx, typeNode)
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			param := params.Child(i)
			if param.Kind() != "formal_parameter" && param.Kind() != "spread_parameter" {
				continue
			}
			typeNode := param.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			method.Parameters = append(method.Parameters, model.ParameterDescription{
				Name: ctx.Text(param.ChildByFieldName("name")),
				Type: e.typeRef(ctx, typeNode),
			})
		}
	}

	desc.Methods = append(desc.Methods, method)
}

// typeRef builds a type reference from a Java type node, resolving the
// namespace from imports and the implicit java.lang set.
func (e *JavaExtractor) typeRef(ctx *ExtractionContext, node *sitter.Node) model.TypeRef {
	switch node.Kind() {
	case "array_type":
		elem := e.typeRef(ctx, node.ChildByFieldName("element"))
		return model.TypeRef{
			Name:    elem.Name,
			IsArray: true,
			Element: &elem,
		}
	case "generic_type":
		ref := model.TypeRef{}
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "type_identifier", "scoped_type_identifier":
				base := e.typeRef(ctx, child)
				ref.Name = base.Name
				ref.Namespace = base.Namespace
				ref.Collection = base.Collection
			case "type_arguments":
				for j := uint(0); j < child.ChildCount(); j++ {
					arg := child.Child(j)
					if isJavaTypeNode(arg.Kind()) {
						ref.TypeArgs = append(ref.TypeArgs, e.typeRef(ctx, arg))
					}
				}
			}
		}
		return ref
	case "scoped_type_identifier":
		full := ctx.Text(node)
		if idx := strings.LastIndex(full, "."); idx > 0 {
			return model.TypeRef{Name: full[idx+1:], Namespace: full[:idx]}
		}
		return model.TypeRef{Name: full}
	case "integral_type", "floating_point_type", "boolean_type", "void_type":
		return model.TypeRef{Name: ctx.Text(node), Namespace: "java.lang"}
	default:
		name := ctx.Text(node)
		ref := model.TypeRef{Name: name, Namespace: e.namespaceOf(ctx, name)}
		if javaCollectionTypes[name] {
			ref.Collection = true
		}
		return ref
	}
}

func (e *JavaExtractor) namespaceOf(ctx *ExtractionContext, name string) string {
	if ns, ok := ctx.Imports[name]; ok {
		return ns
	}
	if javaLangTypes[name] {
		return "java.lang"
	}
	return ""
}

func (e *JavaExtractor) typeList(ctx *ExtractionContext, node *sitter.Node) []model.TypeRef {
	var refs []model.TypeRef
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child.Kind() == "type_list" {
				collect(child)
			} else if isJavaTypeNode(child.Kind()) {
				refs = append(refs, e.typeRef(ctx, child))
			}
		}
	}
	collect(node)
	return refs
}

func isJavaTypeNode(kind string) bool {
	switch kind {
	case "type_identifier", "generic_type", "scoped_type_identifier", "array_type",
		"integral_type", "floating_point_type", "boolean_type":
		return true
	}
	return false
}

func (e *JavaExtractor) hasModifier(ctx *ExtractionContext, node *sitter.Node, want string) bool {
	mods := ctx.FindChild(node, "modifiers")
	if mods == nil {
		return false
	}
	for i := uint(0); i < mods.ChildCount(); i++ {
		if ctx.Text(mods.Child(i)) == want {
			return true
		}
	}
	return false
}

func (e *JavaExtractor) accessibility(ctx *ExtractionContext, node *sitter.Node) model.Accessibility {
	switch {
	case e.hasModifier(ctx, node, "public"):
		return model.AccessPublic
	case e.hasModifier(ctx, node, "private"):
		return model.AccessPrivate
	case e.hasModifier(ctx, node, "protected"):
		return model.AccessProtected
	default:
		// Package-private maps to internal visibility.
		return model.AccessInternal
	}
}
