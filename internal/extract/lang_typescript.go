package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// setupTypeScript registers the TypeScript grammar (the .ts variant; the
// teacher wires .tsx separately through the same package's LanguageTSX),
// grounded on the teacher's setupTypeScript and on parser_v2.rs's
// compile_typescript_queries, which also captures interface members and
// type-alias declarations.
func setupTypeScript() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())

	symbolsQuery := `
        (function_declaration name: (identifier) @name) @function
        (class_declaration
            name: (type_identifier) @qualifier
            body: (class_body
                (method_definition name: (property_identifier) @name))) @method
        (class_declaration name: (type_identifier) @name) @class
        (interface_declaration name: (type_identifier) @name) @interface
        (enum_declaration name: (identifier) @name) @enum
        (type_alias_declaration name: (type_identifier) @name) @type
        (variable_declarator
            name: (identifier) @name
            value: (arrow_function)) @function
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
		extensions:   []string{".ts"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
