// Package render produces canonical SDL from the schema model. Output is
// deterministic: types and directives are sorted by name, and a single
// formatting style is used so that re-parsing and re-printing a rendered
// schema reproduces it character for character.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hanpama/gqlcore/internal/schema"
)

// Schema renders the user-defined portion of the schema: builtin scalars,
// introspection types, and specification-defined directives are filtered
// out.
func Schema(s *schema.Schema) string {
	return filteredSchema(s,
		func(d *schema.Directive) bool { return !schema.IsSpecifiedDirective(d.Name) },
		isDefinedType)
}

// IntrospectionSchema is the dual of Schema: it keeps only the
// specification-defined directives and introspection types.
func IntrospectionSchema(s *schema.Schema) string {
	return filteredSchema(s,
		func(d *schema.Directive) bool { return schema.IsSpecifiedDirective(d.Name) },
		func(t *schema.Type) bool { return schema.IsIntrospectionType(t.Name) })
}

func isDefinedType(t *schema.Type) bool {
	return !schema.IsSpecifiedScalarType(t.Name) && !schema.IsIntrospectionType(t.Name)
}

func filteredSchema(s *schema.Schema, directiveFilter func(*schema.Directive) bool, typeFilter func(*schema.Type) bool) string {
	var sections []string
	if def := schemaDefinition(s); def != "" {
		sections = append(sections, def)
	}
	for _, name := range sortedNames(s.Directives) {
		if d := s.Directives[name]; directiveFilter(d) {
			sections = append(sections, renderDirective(s, d))
		}
	}
	for _, name := range sortedNames(s.Types) {
		if t := s.Types[name]; typeFilter(t) {
			sections = append(sections, Type(s, t))
		}
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// schemaDefinition emits the schema block only when the root operation type
// names deviate from the Query/Mutation/Subscription convention.
func schemaDefinition(s *schema.Schema) string {
	if isSchemaOfCommonNames(s) {
		return ""
	}
	var operationTypes []string
	if s.QueryType != "" {
		operationTypes = append(operationTypes, "  query: "+s.QueryType)
	}
	if s.MutationType != "" {
		operationTypes = append(operationTypes, "  mutation: "+s.MutationType)
	}
	if s.SubscriptionType != "" {
		operationTypes = append(operationTypes, "  subscription: "+s.SubscriptionType)
	}
	return "schema {\n" + strings.Join(operationTypes, "\n") + "\n}"
}

func isSchemaOfCommonNames(s *schema.Schema) bool {
	if s.QueryType != "" && s.QueryType != "Query" {
		return false
	}
	if s.MutationType != "" && s.MutationType != "Mutation" {
		return false
	}
	if s.SubscriptionType != "" && s.SubscriptionType != "Subscription" {
		return false
	}
	return true
}

// Type renders one named type declaration. The kind set is closed; an
// unknown kind is a bug in the caller and panics.
func Type(s *schema.Schema, t *schema.Type) string {
	switch t.Kind {
	case schema.TypeKindScalar:
		return renderScalar(t)
	case schema.TypeKindObject:
		return renderObject(s, t)
	case schema.TypeKindInterface:
		return renderInterface(s, t)
	case schema.TypeKindUnion:
		return renderUnion(t)
	case schema.TypeKindEnum:
		return renderEnum(s, t)
	case schema.TypeKindInputObject:
		return renderInputObject(s, t)
	default:
		panic(fmt.Sprintf("render: unknown type kind %q", t.Kind))
	}
}

func renderScalar(t *schema.Type) string {
	return Description(t.Description, "", true) + "scalar " + t.Name
}

func renderObject(s *schema.Schema, t *schema.Type) string {
	implemented := ""
	if len(t.Interfaces) > 0 {
		implemented = " implements " + strings.Join(t.Interfaces, " & ")
	}
	return Description(t.Description, "", true) +
		"type " + t.Name + implemented + " {\n" + renderFields(s, t) + "\n}"
}

func renderInterface(s *schema.Schema, t *schema.Type) string {
	return Description(t.Description, "", true) +
		"interface " + t.Name + " {\n" + renderFields(s, t) + "\n}"
}

func renderUnion(t *schema.Type) string {
	return Description(t.Description, "", true) +
		"union " + t.Name + " = " + strings.Join(t.PossibleTypes, " | ")
}

func renderEnum(s *schema.Schema, t *schema.Type) string {
	lines := make([]string, len(t.EnumValues))
	for i, v := range t.EnumValues {
		lines[i] = Description(v.Description, "  ", i == 0) +
			"  " + v.Name + renderDeprecated(s, v.IsDeprecated, v.DeprecationReason)
	}
	return Description(t.Description, "", true) +
		"enum " + t.Name + " {\n" + strings.Join(lines, "\n") + "\n}"
}

func renderInputObject(s *schema.Schema, t *schema.Type) string {
	lines := make([]string, len(t.InputFields))
	for i, in := range t.InputFields {
		lines[i] = Description(in.Description, "  ", i == 0) + "  " + renderInputValue(s, in)
	}
	return Description(t.Description, "", true) +
		"input " + t.Name + " {\n" + strings.Join(lines, "\n") + "\n}"
}

func renderFields(s *schema.Schema, t *schema.Type) string {
	lines := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		// Meta fields appended by the introspection extension are not part
		// of the declared type and never appear in SDL.
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		lines = append(lines, Description(f.Description, "  ", len(lines) == 0)+
			"  "+f.Name+renderArgs(s, f.Arguments, "  ")+": "+f.Type.String()+
			renderDeprecated(s, f.IsDeprecated, f.DeprecationReason))
	}
	return strings.Join(lines, "\n")
}

func renderArgs(s *schema.Schema, args []*schema.InputValue, indentation string) string {
	if len(args) == 0 {
		return ""
	}

	// Without per-argument descriptions the list stays on one line.
	described := false
	for _, arg := range args {
		if arg.Description != "" {
			described = true
			break
		}
	}
	if !described {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = renderInputValue(s, arg)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}

	lines := make([]string, len(args))
	for i, arg := range args {
		lines[i] = Description(arg.Description, "  "+indentation, i == 0) +
			"  " + indentation + renderInputValue(s, arg)
	}
	return "(\n" + strings.Join(lines, "\n") + "\n" + indentation + ")"
}

func renderInputValue(s *schema.Schema, in *schema.InputValue) string {
	decl := in.Name + ": " + in.Type.String()
	if in.HasDefault() {
		decl += " = " + Value(s, in.DefaultValue, in.Type)
	}
	return decl
}

func renderDirective(s *schema.Schema, d *schema.Directive) string {
	repeatable := ""
	if d.IsRepeatable {
		repeatable = " repeatable"
	}
	return Description(d.Description, "", true) +
		"directive @" + d.Name + renderArgs(s, d.Arguments, "") +
		repeatable + " on " + strings.Join(d.Locations, " | ")
}

// renderDeprecated emits the deprecation suffix. The specification-default
// reason is treated as "no custom reason" and suppressed.
func renderDeprecated(s *schema.Schema, deprecated bool, reason string) string {
	if !deprecated {
		return ""
	}
	if reason == "" || reason == schema.DefaultDeprecationReason {
		return " @deprecated"
	}
	return " @deprecated(reason: " + Value(s, reason, schema.NamedType("String")) + ")"
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
