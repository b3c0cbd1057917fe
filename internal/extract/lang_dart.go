package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_dart "github.com/UserNobody14/tree-sitter-dart/bindings/go"
)

// setupDart registers the Dart grammar. The teacher's own go.mod never
// carries this dependency, but two other pack repos' manifests do; it
// is wired the same way the teacher wires its own community grammar,
// Zig, since neither has an official first-party binding.
func setupDart() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_dart.Language())

	symbolsQuery := `
        (class_definition name: (identifier) @qualifier
            body: (class_body
                (method_signature (function_signature name: (identifier) @name)))) @method
        (class_definition name: (identifier) @name) @class
        (function_signature name: (identifier) @name) @function
        (enum_declaration name: (identifier) @name) @enum
    `
	importsQuery := `(import_or_export (uri (string_literal) @import.path))`
	callsQuery := `
        (method_invocation name: (identifier) @call.name)
        (function_expression_invocation function: (identifier) @call.name)
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".dart"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
