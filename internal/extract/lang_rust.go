package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// setupRust registers the Rust grammar, grounded on the teacher's
// setupRust plus parser_v2.rs's compile_rust_queries, which attributes
// impl-block methods to their impl's type name as a qualifier.
func setupRust() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_rust.Language())

	symbolsQuery := `
        (function_item name: (identifier) @name) @function
        (impl_item
            type: (type_identifier) @qualifier
            body: (declaration_list
                (function_item name: (identifier) @name))) @method
        (struct_item name: (type_identifier) @name) @struct
        (enum_item name: (type_identifier) @name) @enum
        (trait_item name: (type_identifier) @name) @interface
        (type_item name: (type_identifier) @name) @type
        (const_item name: (identifier) @name) @constant
        (static_item name: (identifier) @name) @variable
        (mod_item name: (identifier) @name) @module
    `
	importsQuery := `(use_declaration argument: (_) @import.path)`
	callsQuery := `
        (call_expression function: (identifier) @call.name)
        (call_expression function: (field_expression field: (field_identifier) @call.name))
        (call_expression function: (scoped_identifier name: (identifier) @call.name))
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".rs"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
