package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// setupJavaScript registers the JavaScript grammar, grounded on the
// teacher's setupJavaScript. Class methods are captured via
// method_definition inside a class_body; plain functions cover both
// function_declaration and const-assigned arrow functions.
func setupJavaScript() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_javascript.Language())

	symbolsQuery := `
        (function_declaration name: (identifier) @name) @function
        (class_declaration
            name: (identifier) @qualifier
            body: (class_body
                (method_definition name: (property_identifier) @name))) @method
        (class_declaration name: (identifier) @name) @class
        (variable_declarator
            name: (identifier) @name
            value: (arrow_function)) @function
        (variable_declarator
            name: (identifier) @name
            value: (function_expression)) @function
    `
	importsQuery := `(import_statement source: (string) @import.path)`
	callsQuery := `
        (call_expression function: (identifier) @call.name)
        (call_expression function: (member_expression property: (property_identifier) @call.name))
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".js", ".jsx", ".mjs", ".cjs"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
