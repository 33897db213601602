package frontend

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"classdiag/internal/model"
)

// Declarations is everything one extraction pass found: the collaborator
// contract handed to the diagram pipeline. Order is first-seen source order.
type Declarations struct {
	Types []model.TypeDescription
	Enums []model.EnumDescription
}

func (d *Declarations) Append(other *Declarations) {
	if other == nil {
		return
	}
	d.Types = append(d.Types, other.Types...)
	d.Enums = append(d.Enums, other.Enums...)
}

// NodeHandler processes a node for a language-specific extractor.
// Returns true if the handler has processed children and the walker should stop.
type NodeHandler func(ctx *ExtractionContext, node *sitter.Node) bool

// ExtractionContext carries shared state/helpers used by all extractors.
type ExtractionContext struct {
	Source    []byte
	Path      string
	Namespace string // current namespace; extractors push/pop around scoped blocks
	Decls     *Declarations
	Imports   map[string]string // simple type name -> declaring namespace
}

// ExtractorEngine walks the syntax tree and dispatches node handlers by kind.
type ExtractorEngine struct {
	handlers map[string]NodeHandler
}

func NewExtractorEngine(handlers map[string]NodeHandler) *ExtractorEngine {
	return &ExtractorEngine{handlers: handlers}
}

func (e *ExtractorEngine) Walk(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}

	stop := false
	if handler, ok := e.handlers[node.Kind()]; ok {
		stop = handler(ctx, node)
	}

	if !stop {
		for i := uint(0); i < node.ChildCount(); i++ {
			e.Walk(ctx, node.Child(i))
		}
	}
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *ExtractionContext) ChildText(node *sitter.Node, kind string) string {
	if node == nil {
		return ""
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return c.Text(child)
		}
	}
	return ""
}

// FindChild returns the first direct child of the given kind.
func (c *ExtractionContext) FindChild(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
