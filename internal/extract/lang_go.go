package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// setupGo registers the Go grammar, grounded on the teacher's setupGo
// (internal/parser/parser_language_setup.go) for the query shapes and on
// original_source/crates/arbor-core/src/languages/go.rs for the
// receiver-qualified method name and visibility rules.
func setupGo() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_go.Language())

	symbolsQuery := `
        (function_declaration name: (identifier) @name) @function
        (method_declaration
            receiver: (parameter_list
                (parameter_declaration type: (pointer_type (type_identifier) @qualifier)))
            name: (field_identifier) @name) @method
        (method_declaration
            receiver: (parameter_list
                (parameter_declaration type: (type_identifier) @qualifier))
            name: (field_identifier) @name) @method
        (type_declaration (type_spec name: (type_identifier) @name) @type)
        (const_spec name: (identifier) @name) @constant
        (var_spec name: (identifier) @name) @variable
    `
	importsQuery := `(import_spec path: (interpreted_string_literal) @import.path)`
	callsQuery := `
        (call_expression function: (identifier) @call.name)
        (call_expression function: (selector_expression field: (field_identifier) @call.name))
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".go"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
