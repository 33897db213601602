package model

import "strings"

// BuildEntity converts one collaborator type description into a diagram
// entity with an empty relationship list. Pure construction, no inference.
func BuildEntity(desc TypeDescription) DiagramEntity {
	entity := DiagramEntity{
		Name:       desc.Name,
		Kind:       desc.Kind,
		IsAbstract: desc.Kind == KindClass && desc.IsAbstract,
		Visibility: VisibilityToken(desc.Access),
		Namespace:  desc.Namespace,
	}

	for _, prop := range desc.Properties {
		entity.Properties = append(entity.Properties, DiagramMember{
			Name:         prop.Name,
			Type:         prop.Type.Display(),
			Visibility:   VisibilityToken(prop.Access),
			IsCollection: prop.Type.IsCollectionShape(),
		})
	}

	for _, method := range desc.Methods {
		params := make([]string, 0, len(method.Parameters))
		for _, param := range method.Parameters {
			params = append(params, strings.TrimSpace(param.Type.Display()+" "+param.Name))
		}
		entity.Methods = append(entity.Methods, DiagramMethodSig{
			Name:       method.Name,
			ReturnType: method.ReturnType.Display(),
			Visibility: VisibilityToken(method.Access),
			Parameters: params,
			IsAsync:    method.IsAsync,
		})
	}

	return entity
}

// BuildEnumEntity builds an enum entity. Enum members become synthetic
// public properties of the literal type "enum"; enums never carry methods
// or inferred relationships.
func BuildEnumEntity(desc EnumDescription) DiagramEntity {
	entity := DiagramEntity{
		Name:       desc.Name,
		Kind:       KindEnum,
		Visibility: VisibilityToken(desc.Access),
		Namespace:  desc.Namespace,
	}
	for _, member := range desc.Members {
		entity.Properties = append(entity.Properties, DiagramMember{
			Name:       member,
			Type:       "enum",
			Visibility: VisibilityToken(AccessPublic),
		})
	}
	return entity
}
