package schema

import (
	"strconv"

	"github.com/hanpama/gqlcore/internal/language"
)

// BuildFromSDL parses and validates SDL text and builds the schema model
// from it. Parsing and schema-document validation are delegated to the
// parser; a failure there is returned as a structured error.
func BuildFromSDL(name, sdl string) (*Schema, error) {
	astSchema, err := language.LoadSchema(name, sdl)
	if err != nil {
		return nil, err
	}
	return buildFromAST(astSchema), nil
}

func buildFromAST(astSchema *language.ASTSchema) *Schema {
	s := NewSchema(astSchema.Description)
	s.source = astSchema

	if astSchema.Query != nil {
		s.SetQueryType(astSchema.Query.Name)
	}
	if astSchema.Mutation != nil {
		s.SetMutationType(astSchema.Mutation.Name)
	}
	if astSchema.Subscription != nil {
		s.SetSubscriptionType(astSchema.Subscription.Name)
	}

	for name, def := range astSchema.Types {
		// Builtin scalars are pre-registered; introspection types are added by
		// the introspection package with their canonical definitions.
		if IsSpecifiedScalarType(name) || IsIntrospectionType(name) {
			continue
		}
		s.AddType(buildDefinition(def))
	}
	// Interface membership lives outside the definitions themselves.
	for name, t := range s.Types {
		if t.Kind != TypeKindInterface {
			continue
		}
		for _, pd := range astSchema.PossibleTypes[name] {
			t.AddPossibleType(pd.Name)
		}
	}
	for name, def := range astSchema.Directives {
		if IsSpecifiedDirective(name) || name == "specifiedBy" || name == "oneOf" {
			continue
		}
		s.AddDirective(buildDirective(def))
	}
	return s
}

func buildDefinition(def *language.Definition) *Type {
	switch def.Kind {
	case language.Scalar:
		return NewType(def.Name, TypeKindScalar, def.Description)
	case language.Object, language.Interface:
		kind := TypeKindObject
		if def.Kind == language.Interface {
			kind = TypeKindInterface
		}
		t := NewType(def.Name, kind, def.Description)
		for _, iface := range def.Interfaces {
			t.AddInterface(iface)
		}
		for _, fd := range def.Fields {
			t.AddField(buildField(fd))
		}
		return t
	case language.Union:
		t := NewType(def.Name, TypeKindUnion, def.Description)
		for _, member := range def.Types {
			t.AddPossibleType(member)
		}
		return t
	case language.Enum:
		t := NewType(def.Name, TypeKindEnum, def.Description)
		for _, vd := range def.EnumValues {
			ev := NewEnumValue(vd.Name, vd.Description)
			if reason, ok := deprecationOf(vd.Directives); ok {
				ev.Deprecate(reason)
			}
			t.AddEnumValue(ev)
		}
		return t
	case language.InputObject:
		t := NewType(def.Name, TypeKindInputObject, def.Description)
		for _, fd := range def.Fields {
			in := NewInputValue(fd.Name, fd.Description, typeRefFromAST(fd.Type))
			if fd.DefaultValue != nil {
				in.SetDefault(valueToGo(fd.DefaultValue))
			}
			t.AddInputField(in)
		}
		return t
	}
	panic("unreachable")
}

func buildField(fd *language.FieldDefinition) *Field {
	f := NewField(fd.Name, fd.Description, typeRefFromAST(fd.Type))
	if reason, ok := deprecationOf(fd.Directives); ok {
		f.Deprecate(reason)
	}
	for _, ad := range fd.Arguments {
		in := NewInputValue(ad.Name, ad.Description, typeRefFromAST(ad.Type))
		if ad.DefaultValue != nil {
			in.SetDefault(valueToGo(ad.DefaultValue))
		}
		f.AddArgument(in)
	}
	return f
}

func buildDirective(def *language.DirectiveDefinition) *Directive {
	d := NewDirective(def.Name, def.Description).SetRepeatable(def.IsRepeatable)
	for _, loc := range def.Locations {
		d.AddLocations(string(loc))
	}
	for _, ad := range def.Arguments {
		in := NewInputValue(ad.Name, ad.Description, typeRefFromAST(ad.Type))
		if ad.DefaultValue != nil {
			in.SetDefault(valueToGo(ad.DefaultValue))
		}
		d.AddArgument(in)
	}
	return d
}

func deprecationOf(directives language.DirectiveList) (reason string, ok bool) {
	dir := directives.ForName("deprecated")
	if dir == nil {
		return "", false
	}
	if arg := dir.Arguments.ForName("reason"); arg != nil {
		return arg.Value.Raw, true
	}
	return DefaultDeprecationReason, true
}

func typeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	return ListType(typeRefFromAST(t.Elem))
}

// valueToGo converts a literal AST value into its runtime Go value. Enum
// values stay symbolic strings; the declared type disambiguates them from
// String values when the literal is printed back.
func valueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = valueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, c := range value.Children {
			m[c.Name] = valueToGo(c.Value)
		}
		return m
	default:
		return nil
	}
}

// Source returns the parser-side schema this model was built from, or nil
// for hand-built schemas.
func (s *Schema) Source() *language.ASTSchema { return s.source }
