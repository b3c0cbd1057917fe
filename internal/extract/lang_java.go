package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// setupJava registers the Java grammar, grounded on the teacher's
// setupJava. Methods are qualified by their enclosing class name, the
// same receiver-qualification convention used for Go and Rust.
func setupJava() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_java.Language())

	symbolsQuery := `
        (class_declaration
            name: (identifier) @qualifier
            body: (class_body
                (method_declaration name: (identifier) @name))) @method
        (class_declaration
            name: (identifier) @qualifier
            body: (class_body
                (constructor_declaration name: (identifier) @name))) @constructor
        (class_declaration name: (identifier) @name) @class
        (interface_declaration name: (identifier) @name) @interface
        (enum_declaration name: (identifier) @name) @enum
        (field_declaration declarator: (variable_declarator name: (identifier) @name)) @field
    `
	importsQuery := `(import_declaration (scoped_identifier) @import.path)`
	callsQuery := `
        (method_invocation name: (identifier) @call.name)
        (object_creation_expression type: (type_identifier) @call.name)
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".java"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
