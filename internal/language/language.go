// Package language is a narrow facade over gqlparser: parsing, schema
// loading, document validation, and the AST node types the rest of the
// module consumes.
package language

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// ASTSchema is the parser-side schema representation used for document
// validation. It is distinct from the schema package's model.
type ASTSchema = ast.Schema

// ParseQuery parses an executable document from source text.
func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseQuerySource parses an executable document from a pre-wrapped source.
func ParseQuerySource(src *Source) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(src)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadSchema parses and validates SDL text, returning the parser-side
// schema. The prelude (builtin scalars, directives, introspection types) is
// included by the parser.
func LoadSchema(name, sdl string) (*ASTSchema, error) {
	return gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
}

// Validate runs the full document validation rule set against the schema.
func Validate(schema *ASTSchema, doc *QueryDocument) ErrorList {
	return validator.Validate(schema, doc)
}
