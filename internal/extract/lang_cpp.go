package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
)

// setupCpp registers the C++ grammar and is also used for plain C files,
// grounded on the teacher's setupCpp/setupC (the teacher parses C via
// the cpp grammar rather than carrying a separate C binding, and this
// module does the same).
func setupCpp() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_cpp.Language())

	symbolsQuery := `
        (function_definition declarator: (function_declarator declarator: (identifier) @name)) @function
        (function_definition
            declarator: (function_declarator
                declarator: (qualified_identifier
                    scope: (namespace_identifier) @qualifier
                    name: (identifier) @name))) @method
        (class_specifier name: (type_identifier) @name) @class
        (struct_specifier name: (type_identifier) @name) @struct
        (enum_specifier name: (type_identifier) @name) @enum
    `
	importsQuery := `(preproc_include path: (_) @import.path)`
	callsQuery := `
        (call_expression function: (identifier) @call.name)
        (call_expression function: (field_expression field: (field_identifier) @call.name))
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".cpp", ".cc", ".cxx", ".hpp", ".h", ".c"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
