package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// setupPython registers the Python grammar, grounded on the teacher's
// setupPython plus parser_v2.rs's compile_python_queries for the calls
// and imports shapes.
func setupPython() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_python.Language())

	symbolsQuery := `
        (class_definition
            body: (block
                (function_definition name: (identifier) @name))) @method
        (function_definition name: (identifier) @name) @function
        (class_definition name: (identifier) @name) @class
    `
	importsQuery := `
        (import_statement) @import.path
        (import_from_statement) @import.path
    `
	callsQuery := `
        (call function: (identifier) @call.name)
        (call function: (attribute attribute: (identifier) @call.name))
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".py"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
