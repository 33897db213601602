package frontend

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"classdiag/internal/model"
)

// tsLibTypes ship with the runtime library typings.
var tsLibTypes = map[string]bool{
	"Promise": true, "Date": true, "Map": true, "Set": true, "WeakMap": true,
	"WeakSet": true, "RegExp": true, "Error": true, "Array": true,
	"ReadonlyArray": true, "Function": true, "Symbol": true, "Iterable": true,
}

var tsCollectionTypes = map[string]bool{
	"Array": true, "ReadonlyArray": true, "Set": true, "Map": true, "Iterable": true,
}

type TypeScriptExtractor struct {
	engine *ExtractorEngine
}

func NewTypeScriptExtractor() *TypeScriptExtractor {
	e := &TypeScriptExtractor{}
	e.engine = NewExtractorEngine(map[string]NodeHandler{
		"class_declaration":          e.handleClass,
		"abstract_class_declaration": e.handleClass,
		"interface_declaration":      e.handleInterface,
		"enum_declaration":           e.handleEnum,
		"internal_module":            e.handleModule,
	})
	return e
}

func (e *TypeScriptExtractor) SystemPrefix() string { return "lib" }

func (e *TypeScriptExtractor) Extract(ctx *ExtractionContext, root *sitter.Node) {
	e.engine.Walk(ctx, root)
}

// handleModule scopes the namespace for everything inside a
// `namespace Foo { ... }` block, then restores it.
func (e *TypeScriptExtractor) handleModule(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ""
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "identifier" || child.Kind() == "nested_identifier" {
			name = ctx.Text(child)
			break
		}
	}

	prev := ctx.Namespace
	if name != "" {
		if prev != "" {
			ctx.Namespace = prev + "." + name
		} else {
			ctx.Namespace = name
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.engine.Walk(ctx, node.Child(i))
	}
	ctx.Namespace = prev
	return true
}

func (e *TypeScriptExtractor) handleClass(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return true
	}

	desc := model.TypeDescription{
		Name:       name,
		Kind:       model.KindClass,
		Namespace:  ctx.Namespace,
		Access:     model.AccessPublic,
		IsAbstract: node.Kind() == "abstract_class_declaration",
	}

	if heritage := ctx.FindChild(node, "class_heritage"); heritage != nil {
		if ext := ctx.FindChild(heritage, "extends_clause"); ext != nil {
			for i := uint(0); i < ext.ChildCount(); i++ {
				child := ext.Child(i)
				if child.Kind() == "identifier" || isTSTypeNode(child.Kind()) {
					ref := e.typeRefFromName(ctx, child)
					desc.BaseType = &ref
					break
				}
			}
		}
		if impl := ctx.FindChild(heritage, "implements_clause"); impl != nil {
			for i := uint(0); i < impl.ChildCount(); i++ {
				child := impl.Child(i)
				if isTSTypeNode(child.Kind()) {
					desc.Interfaces = append(desc.Interfaces, e.typeRef(ctx, child))
				}
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			member := body.Child(i)
			switch member.Kind() {
			case "public_field_definition":
				e.extractField(ctx, member, &desc)
			case "method_definition", "abstract_method_signature":
				e.extractMethod(ctx, member, &desc)
			}
		}
	}

	ctx.Decls.Types = append(ctx.Decls.Types, desc)
	return true
}

func (e *TypeScriptExtractor) handleInterface(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return true
	}

	desc := model.TypeDescription{
		Name:      name,
		Kind:      model.KindInterface,
		Namespace: ctx.Namespace,
		Access:    model.AccessPublic,
	}

	if ext := ctx.FindChild(node, "extends_type_clause"); ext != nil {
		for i := uint(0); i < ext.ChildCount(); i++ {
			child := ext.Child(i)
			if isTSTypeNode(child.Kind()) {
				desc.Interfaces = append(desc.Interfaces, e.typeRef(ctx, child))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		body = ctx.FindChild(node, "interface_body")
	}
	if body == nil {
		body = ctx.FindChild(node, "object_type")
	}
	if body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			member := body.Child(i)
			switch member.Kind() {
			case "property_signature":
				e.extractField(ctx, member, &desc)
			case "method_signature":
				e.extractMethod(ctx, member, &desc)
			}
		}
	}

	ctx.Decls.Types = append(ctx.Decls.Types, desc)
	return true
}

func (e *TypeScriptExtractor) handleEnum(ctx *ExtractionContext, node *sitter.Node) bool {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return true
	}

	desc := model.EnumDescription{
		Name:      name,
		Namespace: ctx.Namespace,
		Access:    model.AccessPublic,
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			switch child.Kind() {
			case "property_identifier":
				desc.Members = append(desc.Members, ctx.Text(child))
			case "enum_assignment":
				if member := ctx.Text(child.ChildByFieldName("name")); member != "" {
					desc.Members = append(desc.Members, member)
				}
			}
		}
	}

	ctx.Decls.Enums = append(ctx.Decls.Enums, desc)
	return true
}

func (e *TypeScriptExtractor) extractField(ctx *ExtractionContext, node *sitter.Node, desc *model.TypeDescription) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	prop := model.PropertyDescription{
		Name:   name,
		Access: e.accessibility(ctx, node),
	}
	if ann := node.ChildByFieldName("type"); ann != nil {
		prop.Type = e.typeFromAnnotation(ctx, ann)
	}
	desc.Properties = append(desc.Properties, prop)
}

func (e *TypeScriptExtractor) extractMethod(ctx *ExtractionContext, node *sitter.Node, desc *model.TypeDescription) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" || name == "constructor" {
		return
	}

	method := model.MethodDescription{
		Name:    name,
		Access:  e.accessibility(ctx, node),
		IsAsync: e.hasKeyword(ctx, node, "async"),
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		method.ReturnType = e.typeFromAnnotation(ctx, ret)
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			param := params.Child(i)
			if param.Kind() != "required_parameter" && param.Kind() != "optional_parameter" {
				continue
			}
			p := model.ParameterDescription{
				Name: ctx.Text(param.ChildByFieldName("pattern")),
			}
			if ann := param.ChildByFieldName("type"); ann != nil {
				p.Type = e.typeFromAnnotation(ctx, ann)
			}
			method.Parameters = append(method.Parameters, p)
		}
	}

	desc.Methods = append(desc.Methods, method)
}

// typeFromAnnotation unwraps a `: T` annotation node to its type.
func (e *TypeScriptExtractor) typeFromAnnotation(ctx *ExtractionContext, ann *sitter.Node) model.TypeRef {
	for i := uint(0); i < ann.ChildCount(); i++ {
		child := ann.Child(i)
		if isTSTypeNode(child.Kind()) {
			return e.typeRef(ctx, child)
		}
	}
	return model.TypeRef{}
}

func (e *TypeScriptExtractor) typeRef(ctx *ExtractionContext, node *sitter.Node) model.TypeRef {
	switch node.Kind() {
	case "array_type":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if isTSTypeNode(child.Kind()) {
				elem := e.typeRef(ctx, child)
				return model.TypeRef{Name: elem.Name, IsArray: true, Element: &elem}
			}
		}
		return model.TypeRef{IsArray: true}
	case "generic_type":
		ref := model.TypeRef{}
		if name := node.ChildByFieldName("name"); name != nil {
			base := e.typeRefFromName(ctx, name)
			ref.Name = base.Name
			ref.Namespace = base.Namespace
			ref.Collection = base.Collection
		}
		if args := node.ChildByFieldName("type_arguments"); args != nil {
			for i := uint(0); i < args.ChildCount(); i++ {
				arg := args.Child(i)
				if isTSTypeNode(arg.Kind()) {
					ref.TypeArgs = append(ref.TypeArgs, e.typeRef(ctx, arg))
				}
			}
		}
		return ref
	case "predefined_type":
		return model.TypeRef{Name: ctx.Text(node), Namespace: "lib"}
	default:
		return e.typeRefFromName(ctx, node)
	}
}

func (e *TypeScriptExtractor) typeRefFromName(ctx *ExtractionContext, node *sitter.Node) model.TypeRef {
	name := ctx.Text(node)
	ref := model.TypeRef{Name: name}
	if tsLibTypes[name] {
		ref.Namespace = "lib"
	}
	if tsCollectionTypes[name] {
		ref.Collection = true
	}
	return ref
}

func isTSTypeNode(kind string) bool {
	switch kind {
	case "type_identifier", "generic_type", "array_type", "predefined_type",
		"nested_type_identifier":
		return true
	}
	return false
}

func (e *TypeScriptExtractor) hasKeyword(ctx *ExtractionContext, node *sitter.Node, want string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == want || ctx.Text(child) == want {
			return true
		}
		// Keywords precede the name; stop once members start.
		if child.Kind() == "property_identifier" {
			break
		}
	}
	return false
}

func (e *TypeScriptExtractor) accessibility(ctx *ExtractionContext, node *sitter.Node) model.Accessibility {
	if mod := ctx.FindChild(node, "accessibility_modifier"); mod != nil {
		switch ctx.Text(mod) {
		case "private":
			return model.AccessPrivate
		case "protected":
			return model.AccessProtected
		}
	}
	return model.AccessPublic
}
