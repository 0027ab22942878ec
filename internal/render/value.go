package render

import (
	"fmt"
	"strconv"

	"github.com/hanpama/gqlcore/internal/invalid"
	"github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// Value renders a runtime value as a schema literal under its declared input
// type: the value is first converted into a literal AST node, then the node
// is stringified by the parser's printer.
//
// Calling Value with the Invalid sentinel is a contract violation and
// panics; callers must check for an absent default first.
func Value(s *schema.Schema, value any, t *schema.TypeRef) string {
	return literalFromValue(s, value, t).String()
}

// literalFromValue converts a Go value into the literal AST node the
// declared type calls for.
func literalFromValue(s *schema.Schema, value any, t *schema.TypeRef) *language.Value {
	if invalid.Is(value) {
		panic("render: cannot print the invalid sentinel as a literal")
	}
	if schema.IsNonNull(t) {
		return literalFromValue(s, value, schema.Unwrap(t))
	}
	if value == nil {
		return &language.Value{Kind: language.NullValue, Raw: "null"}
	}
	if schema.IsList(t) {
		itemType := schema.Unwrap(t)
		items, ok := value.([]any)
		if !ok {
			// A single value for a list type positions as a one-item list.
			return literalFromValue(s, value, itemType)
		}
		node := &language.Value{Kind: language.ListValue}
		for _, item := range items {
			node.Children = append(node.Children, &language.ChildValue{
				Value: literalFromValue(s, item, itemType),
			})
		}
		return node
	}

	named := schema.GetNamedType(t)
	def := s.Types[named]
	if def == nil {
		panic(fmt.Sprintf("render: unknown type %q in literal position", named))
	}
	switch def.Kind {
	case schema.TypeKindEnum:
		return &language.Value{Kind: language.EnumValue, Raw: fmt.Sprint(value)}
	case schema.TypeKindScalar:
		return scalarLiteral(named, value)
	case schema.TypeKindInputObject:
		fields, ok := value.(map[string]any)
		if !ok {
			panic(fmt.Sprintf("render: expected map for input object %s, got %T", named, value))
		}
		node := &language.Value{Kind: language.ObjectValue}
		// Field order follows the input type declaration, keeping output
		// deterministic regardless of map iteration.
		for _, in := range def.InputFields {
			fv, present := fields[in.Name]
			if !present {
				continue
			}
			node.Children = append(node.Children, &language.ChildValue{
				Name:  in.Name,
				Value: literalFromValue(s, fv, in.Type),
			})
		}
		return node
	default:
		panic(fmt.Sprintf("render: type %s cannot appear in literal position", named))
	}
}

func scalarLiteral(named string, value any) *language.Value {
	switch named {
	case "Int":
		return &language.Value{Kind: language.IntValue, Raw: intRaw(value)}
	case "Float":
		switch v := value.(type) {
		case float64:
			return &language.Value{Kind: language.FloatValue, Raw: strconv.FormatFloat(v, 'g', -1, 64)}
		case float32:
			return &language.Value{Kind: language.FloatValue, Raw: strconv.FormatFloat(float64(v), 'g', -1, 32)}
		default:
			return &language.Value{Kind: language.IntValue, Raw: intRaw(value)}
		}
	case "Boolean":
		b, _ := value.(bool)
		return &language.Value{Kind: language.BooleanValue, Raw: strconv.FormatBool(b)}
	case "ID":
		// Numeric IDs stay unquoted, mirroring how they were written.
		if raw, ok := tryIntRaw(value); ok {
			return &language.Value{Kind: language.IntValue, Raw: raw}
		}
		return &language.Value{Kind: language.StringValue, Raw: fmt.Sprint(value)}
	case "String":
		return &language.Value{Kind: language.StringValue, Raw: fmt.Sprint(value)}
	default:
		// Custom scalar: render by the dynamic shape of the value.
		switch v := value.(type) {
		case bool:
			return &language.Value{Kind: language.BooleanValue, Raw: strconv.FormatBool(v)}
		case string:
			return &language.Value{Kind: language.StringValue, Raw: v}
		case float64:
			return &language.Value{Kind: language.FloatValue, Raw: strconv.FormatFloat(v, 'g', -1, 64)}
		case int, int32, int64:
			return &language.Value{Kind: language.IntValue, Raw: intRaw(v)}
		default:
			return &language.Value{Kind: language.StringValue, Raw: fmt.Sprint(v)}
		}
	}
}

func intRaw(value any) string {
	raw, ok := tryIntRaw(value)
	if !ok {
		return fmt.Sprint(value)
	}
	return raw
}

func tryIntRaw(value any) (string, bool) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
	}
	return "", false
}
