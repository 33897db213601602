package frontend

import (
	"encoding/json"
	"os"
	"strings"

	"classdiag/internal/core/errors"
	"classdiag/internal/model"
)

// Snapshot is the on-disk interchange format: a pre-extracted set of type
// descriptions produced by an external analyzer run.
type Snapshot struct {
	Types []snapshotType `json:"types"`
	Enums []snapshotEnum `json:"enums"`
}

type snapshotType struct {
	Name       string             `json:"name"`
	Kind       string             `json:"kind"`
	IsAbstract bool               `json:"isAbstract"`
	Access     string             `json:"accessibility"`
	Namespace  string             `json:"namespace"`
	BaseType   *snapshotRef       `json:"baseType,omitempty"`
	Ancestors  []snapshotRef      `json:"ancestors,omitempty"`
	Interfaces []snapshotRef      `json:"interfaces,omitempty"`
	Properties []snapshotProperty `json:"properties,omitempty"`
	Methods    []snapshotMethod   `json:"methods,omitempty"`
}

type snapshotEnum struct {
	Name      string   `json:"name"`
	Access    string   `json:"accessibility"`
	Namespace string   `json:"namespace"`
	Members   []string `json:"members,omitempty"`
}

type snapshotRef struct {
	Name       string        `json:"name"`
	Namespace  string        `json:"namespace,omitempty"`
	Kind       string        `json:"kind,omitempty"`
	Resolved   bool          `json:"resolved"`
	IsArray    bool          `json:"isArray,omitempty"`
	Element    *snapshotRef  `json:"element,omitempty"`
	TypeArgs   []snapshotRef `json:"typeArgs,omitempty"`
	Implements []string      `json:"implements,omitempty"`
	Collection bool          `json:"collection,omitempty"`
}

type snapshotProperty struct {
	Name   string      `json:"name"`
	Type   snapshotRef `json:"type"`
	Access string      `json:"accessibility"`
}

type snapshotMethod struct {
	Name       string          `json:"name"`
	ReturnType snapshotRef     `json:"returnType"`
	Access     string          `json:"accessibility"`
	Parameters []snapshotParam `json:"parameters,omitempty"`
	IsAsync    bool            `json:"isAsync,omitempty"`
}

type snapshotParam struct {
	Type snapshotRef `json:"type"`
	Name string      `json:"name"`
}

// LoadSnapshot reads a snapshot file and converts it to declarations.
// Entries without a name are skipped rather than failing the whole load.
func LoadSnapshot(path string) (*Declarations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeNotFound, "failed to read snapshot"),
			errors.CtxPath, path)
	}
	return ParseSnapshot(data, path)
}

func ParseSnapshot(data []byte, path string) (*Declarations, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeValidationError, "failed to decode snapshot"),
			errors.CtxPath, path)
	}

	decls := &Declarations{}
	for _, t := range snap.Types {
		if t.Name == "" {
			continue
		}
		desc := model.TypeDescription{
			Name:       t.Name,
			Kind:       parseKind(t.Kind),
			IsAbstract: t.IsAbstract,
			Access:     parseAccess(t.Access),
			Namespace:  t.Namespace,
			BaseType:   convertRefPtr(t.BaseType),
			Ancestors:  convertRefs(t.Ancestors),
			Interfaces: convertRefs(t.Interfaces),
		}
		for _, p := range t.Properties {
			if p.Name == "" {
				continue
			}
			desc.Properties = append(desc.Properties, model.PropertyDescription{
				Name:   p.Name,
				Type:   convertRef(p.Type),
				Access: parseAccess(p.Access),
			})
		}
		for _, m := range t.Methods {
			if m.Name == "" {
				continue
			}
			method := model.MethodDescription{
				Name:       m.Name,
				ReturnType: convertRef(m.ReturnType),
				Access:     parseAccess(m.Access),
				IsAsync:    m.IsAsync,
			}
			for _, p := range m.Parameters {
				method.Parameters = append(method.Parameters, model.ParameterDescription{
					Type: convertRef(p.Type),
					Name: p.Name,
				})
			}
			desc.Methods = append(desc.Methods, method)
		}
		decls.Types = append(decls.Types, desc)
	}

	for _, en := range snap.Enums {
		if en.Name == "" {
			continue
		}
		decls.Enums = append(decls.Enums, model.EnumDescription{
			Name:      en.Name,
			Access:    parseAccess(en.Access),
			Namespace: en.Namespace,
			Members:   en.Members,
		})
	}

	return decls, nil
}

func convertRefPtr(r *snapshotRef) *model.TypeRef {
	if r == nil {
		return nil
	}
	ref := convertRef(*r)
	return &ref
}

func convertRefs(rs []snapshotRef) []model.TypeRef {
	if len(rs) == 0 {
		return nil
	}
	refs := make([]model.TypeRef, 0, len(rs))
	for _, r := range rs {
		refs = append(refs, convertRef(r))
	}
	return refs
}

func convertRef(r snapshotRef) model.TypeRef {
	return model.TypeRef{
		Name:       r.Name,
		Namespace:  r.Namespace,
		Kind:       parseKind(r.Kind),
		Resolved:   r.Resolved,
		IsArray:    r.IsArray,
		Element:    convertRefPtr(r.Element),
		TypeArgs:   convertRefs(r.TypeArgs),
		Implements: r.Implements,
		Collection: r.Collection,
	}
}

func parseKind(s string) model.EntityKind {
	switch strings.ToLower(s) {
	case "interface":
		return model.KindInterface
	case "enum":
		return model.KindEnum
	default:
		return model.KindClass
	}
}

func parseAccess(s string) model.Accessibility {
	switch strings.ToLower(s) {
	case "", "public":
		return model.AccessPublic
	case "private":
		return model.AccessPrivate
	case "protected":
		return model.AccessProtected
	case "internal":
		return model.AccessInternal
	case "protectedinternal", "protected internal":
		return model.AccessProtectedInternal
	default:
		return model.AccessUnknown
	}
}
