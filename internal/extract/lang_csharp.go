package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c_sharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
)

// setupCSharp registers the C# grammar, grounded on the teacher's
// setupCSharp. Methods are qualified by their enclosing class name;
// methods declared inside a struct are not captured.
func setupCSharp() *langDef {
	language := tree_sitter.NewLanguage(tree_sitter_c_sharp.Language())

	symbolsQuery := `
        (class_declaration
            name: (identifier) @qualifier
            body: (declaration_list
                (method_declaration name: (identifier) @name))) @method
        (class_declaration name: (identifier) @name) @class
        (struct_declaration name: (identifier) @name) @struct
        (interface_declaration name: (identifier) @name) @interface
        (enum_declaration name: (identifier) @name) @enum
        (property_declaration name: (identifier) @name) @field
    `
	importsQuery := `(using_directive (qualified_name) @import.path)`
	callsQuery := `
        (invocation_expression function: (identifier) @call.name)
        (invocation_expression function: (member_access_expression name: (identifier) @call.name))
    `

	symbols, _ := tree_sitter.NewQuery(language, symbolsQuery)
	imports, _ := tree_sitter.NewQuery(language, importsQuery)
	calls, _ := tree_sitter.NewQuery(language, callsQuery)

	return &langDef{
		extensions:   []string{".cs"},
		language:     language,
		symbolsQuery: symbols,
		importsQuery: imports,
		callsQuery:   calls,
	}
}
