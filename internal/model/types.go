package model

import "strings"

// EntityKind classifies a renderable type.
type EntityKind int

const (
	KindClass EntityKind = iota
	KindInterface
	KindEnum
)

func (k EntityKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindInterface:
		return "Interface"
	case KindEnum:
		return "Enum"
	}
	return "Class"
}

// Accessibility mirrors the source-language access modifier of a type or member.
type Accessibility int

const (
	AccessPublic Accessibility = iota
	AccessPrivate
	AccessProtected
	AccessInternal
	AccessProtectedInternal
	AccessUnknown
)

// VisibilityToken maps an accessibility to its diagram-grammar token.
// The switch is exhaustive on purpose: adding a new accessibility without
// updating this table must not compile into silent fallthrough.
func VisibilityToken(a Accessibility) string {
	switch a {
	case AccessPublic:
		return "+"
	case AccessPrivate:
		return "-"
	case AccessProtected:
		return "#"
	case AccessInternal:
		return "~"
	case AccessProtectedInternal:
		return "~"
	case AccessUnknown:
		return "?"
	}
	return "?"
}

// RelationKind classifies a directed edge between two entities.
type RelationKind int

const (
	RelationInheritance RelationKind = iota
	RelationRealization
	RelationAssociation
	RelationAggregation
	RelationDependency
	RelationComposition
	RelationLink
)

// LinkStyle is the line style of a rendered edge. Redundant with the kind
// for rendering, but carried on the edge so the renderer never re-derives it.
type LinkStyle int

const (
	LinkSolid LinkStyle = iota
	LinkDashed
)

// TypeRef is a reference to a type as it appears in a member or base-type
// position. Element and TypeArgs make array and generic shapes resolvable
// without further collaborator queries.
type TypeRef struct {
	Name       string // simple identifier
	Namespace  string
	Kind       EntityKind
	Resolved   bool // the collaborator found a symbol for this reference
	IsArray    bool
	Element    *TypeRef
	TypeArgs   []TypeRef
	Implements []string // simple names of implemented interfaces
	Collection bool     // collaborator hint: declared shape is enumerable
}

// Display renders the reference the way it appears in a member box:
// arrays as Elem[], generics as Outer<Arg1, Arg2>.
func (r TypeRef) Display() string {
	if r.IsArray && r.Element != nil {
		return r.Element.Display() + "[]"
	}
	if len(r.TypeArgs) > 0 {
		args := make([]string, 0, len(r.TypeArgs))
		for _, arg := range r.TypeArgs {
			args = append(args, arg.Display())
		}
		return r.Name + "<" + strings.Join(args, ", ") + ">"
	}
	return r.Name
}

// canonical collection simple names; a type with one of these names, or
// implementing one of them, is treated as a collection shape.
var collectionNames = map[string]bool{
	"IEnumerable": true,
	"ICollection": true,
	"List":        true,
}

// IsCollectionShape reports whether the reference declares an enumerable
// shape. Strings structurally qualify in most languages but never count.
func (r TypeRef) IsCollectionShape() bool {
	if r.Name == "String" || r.Name == "string" {
		return false
	}
	if r.IsArray || r.Collection || collectionNames[r.Name] {
		return true
	}
	for _, iface := range r.Implements {
		if collectionNames[iface] {
			return true
		}
	}
	return false
}

// TypeDescription is the collaborator contract for one declared class or
// interface: everything the pipeline needs, nothing it has to look up.
type TypeDescription struct {
	Name       string
	Kind       EntityKind
	IsAbstract bool
	Access     Accessibility
	Namespace  string
	BaseType   *TypeRef  // nil when the type inherits only the root object type
	Ancestors  []TypeRef // full ancestor chain, direct base first
	Interfaces []TypeRef
	Properties []PropertyDescription
	Methods    []MethodDescription
}

type PropertyDescription struct {
	Name   string
	Type   TypeRef
	Access Accessibility
}

type ParameterDescription struct {
	Type TypeRef
	Name string
}

type MethodDescription struct {
	Name       string
	ReturnType TypeRef
	Access     Accessibility
	Parameters []ParameterDescription
	IsAsync    bool
}

// EnumDescription is the collaborator contract for one declared enum.
type EnumDescription struct {
	Name      string
	Namespace string
	Access    Accessibility
	Members   []string
}

// DiagramEntity is one renderable node. Relationships are owned exclusively
// by the entity that is the source of inference; the target never sees them.
type DiagramEntity struct {
	Name          string
	Kind          EntityKind
	IsAbstract    bool
	Visibility    string
	Namespace     string
	Properties    []DiagramMember
	Methods       []DiagramMethodSig
	Relationships []DiagramRelationship
}

type DiagramMember struct {
	Name         string
	Type         string
	Visibility   string
	IsCollection bool
}

type DiagramMethodSig struct {
	Name       string
	ReturnType string
	Visibility string
	Parameters []string // "Type Name"
	IsAsync    bool
}

// DiagramRelationship is a directed classified edge between two simple names.
type DiagramRelationship struct {
	From  string
	To    string
	Kind  RelationKind
	Style LinkStyle
}
