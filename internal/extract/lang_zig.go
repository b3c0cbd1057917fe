package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
)

// setupZig registers the Zig grammar, grounded on the teacher's own
// setupZig (internal/parser/parser_language_setup.go), a community
// binding the teacher wires the same way as its official ones.
func setupZig() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_zig.Language())

	symbolsQuery := `
        (function_declaration (identifier) @name) @function
        (variable_declaration
            (identifier) @name
            (struct_declaration)) @struct
        (variable_declaration
            (identifier) @name
            (union_declaration)) @struct
        (variable_declaration
            (identifier) @name
            (enum_declaration)) @enum
    `
	importsQuery := `
        (variable_declaration
            (identifier)
            (builtin_call (builtin_identifier) (string) @import.path))
    `
	callsQuery := `(call_expression (identifier) @call.name)`

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".zig"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
