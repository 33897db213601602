package frontend

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"classdiag/internal/core/errors"
)

// Extractor turns a parsed syntax tree into type declarations.
type Extractor interface {
	Extract(ctx *ExtractionContext, root *sitter.Node)
	// SystemPrefix is the namespace prefix of the language's standard library.
	SystemPrefix() string
}

// Parser detects source languages by extension and runs the matching extractor.
type Parser struct {
	languages  map[string]*sitter.Language
	extractors map[string]Extractor
	extensions map[string]string
}

func NewParser() *Parser {
	p := &Parser{
		languages:  make(map[string]*sitter.Language),
		extractors: make(map[string]Extractor),
		extensions: make(map[string]string),
	}

	p.register("java", sitter.NewLanguage(tree_sitter_java.Language()), NewJavaExtractor(), ".java")
	p.register("typescript", sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), NewTypeScriptExtractor(), ".ts")

	return p
}

func (p *Parser) register(name string, lang *sitter.Language, ex Extractor, exts ...string) {
	p.languages[name] = lang
	p.extractors[name] = ex
	for _, ext := range exts {
		p.extensions[ext] = name
	}
}

// LanguageForPath returns the language name for a file path, or "" when unsupported.
func (p *Parser) LanguageForPath(path string) string {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.LanguageForPath(path) != ""
}

// SystemPrefix returns the standard-library namespace prefix for a language.
func (p *Parser) SystemPrefix(language string) string {
	if ex, ok := p.extractors[language]; ok {
		return ex.SystemPrefix()
	}
	return ""
}

// ParseFile parses a single source file and extracts its type declarations.
func (p *Parser) ParseFile(path string, content []byte) (*Declarations, error) {
	language := p.LanguageForPath(path)
	if language == "" {
		return nil, errors.AddContext(
			errors.New(errors.CodeNotSupported, "unsupported file extension"),
			errors.CtxPath, path)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(p.languages[language]); err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "failed to set parser language"),
			errors.CtxLanguage, language)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(
			errors.New(errors.CodeInternal, "failed to parse file"),
			errors.CtxPath, path)
	}
	defer tree.Close()

	ctx := &ExtractionContext{
		Source:  content,
		Path:    path,
		Decls:   &Declarations{},
		Imports: make(map[string]string),
	}
	p.extractors[language].Extract(ctx, tree.RootNode())
	return ctx.Decls, nil
}
