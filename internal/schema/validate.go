package schema

import (
	"fmt"
	"sort"

	"github.com/hanpama/gqlcore/internal/language"
)

// Validate checks the structural integrity of a schema snapshot: root types,
// type-reference resolution, implements and union membership, and non-empty
// composite types. It returns all defects found, in deterministic order by
// the iteration of the sorted type names.
func Validate(s *Schema) language.ErrorList {
	v := &schemaValidator{schema: s}

	if s.QueryType == "" {
		v.addf("Query root type must be provided.")
	} else {
		v.requireKind(s.QueryType, TypeKindObject, "Query root")
	}
	if s.MutationType != "" {
		v.requireKind(s.MutationType, TypeKindObject, "Mutation root")
	}
	if s.SubscriptionType != "" {
		v.requireKind(s.SubscriptionType, TypeKindObject, "Subscription root")
	}

	for _, name := range sortedNames(s.Types) {
		v.validateType(s.Types[name])
	}
	for _, name := range sortedNames(s.Directives) {
		d := s.Directives[name]
		for _, arg := range d.Arguments {
			v.requireResolvable(arg.Type, fmt.Sprintf("argument %s of directive @%s", arg.Name, d.Name))
		}
	}
	return v.errs
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type schemaValidator struct {
	schema *Schema
	errs   language.ErrorList
}

func (v *schemaValidator) addf(format string, args ...any) {
	v.errs = append(v.errs, &language.Error{Message: fmt.Sprintf(format, args...)})
}

func (v *schemaValidator) requireKind(name string, kind TypeKind, role string) {
	t := v.schema.Types[name]
	if t == nil {
		v.addf("%s type %s is not defined.", role, name)
		return
	}
	if t.Kind != kind {
		v.addf("%s type must be %s type but %s is %s.", role, kind, name, t.Kind)
	}
}

func (v *schemaValidator) requireResolvable(ref *TypeRef, where string) {
	named := GetNamedType(ref)
	if named == "" {
		v.addf("Missing type reference on %s.", where)
		return
	}
	if v.schema.Types[named] == nil {
		v.addf("Unknown type %s referenced by %s.", named, where)
	}
}

func (v *schemaValidator) validateType(t *Type) {
	switch t.Kind {
	case TypeKindScalar:
		// nothing beyond the name
	case TypeKindObject, TypeKindInterface:
		if len(t.Fields) == 0 && !IsIntrospectionType(t.Name) {
			v.addf("Type %s must define one or more fields.", t.Name)
		}
		for _, f := range t.Fields {
			v.requireResolvable(f.Type, fmt.Sprintf("field %s.%s", t.Name, f.Name))
			for _, arg := range f.Arguments {
				v.requireResolvable(arg.Type, fmt.Sprintf("argument %s of %s.%s", arg.Name, t.Name, f.Name))
			}
		}
		for _, iface := range t.Interfaces {
			v.requireKind(iface, TypeKindInterface, fmt.Sprintf("Interface of %s", t.Name))
		}
	case TypeKindUnion:
		if len(t.PossibleTypes) == 0 {
			v.addf("Union type %s must define one or more member types.", t.Name)
		}
		for _, member := range t.PossibleTypes {
			v.requireKind(member, TypeKindObject, fmt.Sprintf("Member of union %s", t.Name))
		}
	case TypeKindEnum:
		if len(t.EnumValues) == 0 {
			v.addf("Enum type %s must define one or more values.", t.Name)
		}
	case TypeKindInputObject:
		if len(t.InputFields) == 0 {
			v.addf("Input Object type %s must define one or more fields.", t.Name)
		}
		for _, in := range t.InputFields {
			v.requireResolvable(in.Type, fmt.Sprintf("input field %s.%s", t.Name, in.Name))
		}
	default:
		v.addf("Type %s has unknown kind %s.", t.Name, t.Kind)
	}
}
