// Package extract implements the Symbol Extractor: for one source file it
// returns the Symbols and unresolved call/import Relations found in it,
// using tree-sitter grammars registered per file extension, grounded on
// the teacher's internal/parser/parser_language_setup.go wiring table and
// on original_source/crates/arbor-core/src/parser_v2.rs's symbols/imports/
// calls three-query shape and find_enclosing_symbol call-attribution rule.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/arbor-dev/arbor/internal/graph"
)

// langDef is one language's compiled query set.
type langDef struct {
	extensions   []string
	language     *tree_sitter.Language
	symbolsQuery *tree_sitter.Query
	importsQuery *tree_sitter.Query
	callsQuery   *tree_sitter.Query
}

// Extractor holds every registered language's parser and compiled queries,
// keyed by file extension (including the leading dot).
type Extractor struct {
	byExt map[string]*langDef
}

// New builds an Extractor with every language the dependency pack
// provides a tree-sitter grammar for.
func New() *Extractor {
	e := &Extractor{byExt: make(map[string]*langDef)}
	for _, def := range []*langDef{
		setupGo(),
		setupPython(),
		setupRust(),
		setupJavaScript(),
		setupTypeScript(),
		setupJava(),
		setupCSharp(),
		setupCpp(),
		setupZig(),
		setupDart(),
	} {
		if def == nil {
			continue
		}
		for _, ext := range def.extensions {
			e.byExt[ext] = def
		}
	}
	return e
}

// Supports reports whether the extractor has a grammar registered for ext
// (including the leading dot, e.g. ".go").
func (e *Extractor) Supports(ext string) bool {
	_, ok := e.byExt[ext]
	return ok
}

// ExtractFile parses source and returns every Symbol it declares, with
// each Symbol's References field populated with the bare call-target
// names attributed to it (Calls relations), plus any Import symbols
// found at file scope.
func (e *Extractor) ExtractFile(path string, source []byte) ([]graph.Symbol, error) {
	ext := strings.ToLower(filepath.Ext(path))
	def, ok := e.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("extract: no grammar registered for extension %q", ext)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(def.language); err != nil {
		return nil, fmt.Errorf("extract: set language for %q: %w", path, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("extract: tree-sitter returned no tree for %q", path)
	}
	defer tree.Close()

	fileName := filepath.Base(path)
	symbols := extractSymbols(tree, source, path, fileName, def.symbolsQuery)
	extractCalls(tree, source, path, symbols, def.callsQuery)
	symbols = append(symbols, extractImports(tree, source, path, def.importsQuery)...)

	return symbols, nil
}

func nodeText(n tree_sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

func symbolID(file, name string) string {
	return file + ":" + name
}

func isExported(name string) graph.Visibility {
	if name == "" {
		return graph.VisibilityPrivate
	}
	r := rune(name[0])
	if r >= 'A' && r <= 'Z' {
		return graph.VisibilityPublic
	}
	if strings.HasPrefix(name, "_") {
		return graph.VisibilityPrivate
	}
	if r >= 'a' && r <= 'z' {
		return graph.VisibilityPrivate
	}
	return graph.VisibilityPublic
}

// kindCapture maps a query's "main" capture name to the symbol kind it
// denotes, mirroring parser_v2.rs's match on capture_name.
var kindCapture = map[string]graph.SymbolKind{
	"function":    graph.KindFunction,
	"method":      graph.KindMethod,
	"class":       graph.KindClass,
	"struct":      graph.KindStruct,
	"interface":   graph.KindInterface,
	"enum":        graph.KindEnum,
	"constant":    graph.KindConstant,
	"variable":    graph.KindVariable,
	"field":       graph.KindField,
	"constructor": graph.KindConstructor,
	"module":      graph.KindModule,
	"type":        graph.KindTypeAlias,
}

func extractSymbols(tree *tree_sitter.Tree, source []byte, filePath, fileName string, query *tree_sitter.Query) []graph.Symbol {
	if query == nil {
		return nil
	}

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	var symbols []graph.Symbol
	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var name string
		var kind graph.SymbolKind
		var node *tree_sitter.Node
		var qualifier string

		for _, c := range match.Captures {
			captureName := captureNames[c.Index]
			if captureName == "name" {
				name = nodeText(c.Node, source)
				continue
			}
			if captureName == "qualifier" {
				qualifier = nodeText(c.Node, source)
				continue
			}
			if captureName == "type" {
				// Go's type_declaration/type_spec pattern doesn't
				// distinguish struct/interface/alias at the query
				// level (mirroring the teacher's own setupGo query);
				// classify from the spec's own "type" child, per
				// go.rs's extract_type_spec.
				n := c.Node
				node = &n
				kind = graph.KindTypeAlias
				if typeChild := n.ChildByFieldName("type"); typeChild != nil {
					switch typeChild.Kind() {
					case "struct_type":
						kind = graph.KindStruct
					case "interface_type":
						kind = graph.KindInterface
					}
				}
				continue
			}
			if k, ok := kindCapture[captureName]; ok {
				kind = k
				n := c.Node
				node = &n
			}
		}

		if name == "" || node == nil {
			continue
		}

		qualifiedName := name
		if qualifier != "" {
			qualifiedName = qualifier + "." + name
		}

		start := node.StartPosition()
		end := node.EndPosition()

		signature := ""
		if lines := strings.Split(string(source), "\n"); int(start.Row) < len(lines) {
			signature = strings.TrimSpace(lines[start.Row])
		}

		symbols = append(symbols, graph.Symbol{
			ID:            symbolID(filePath, qualifiedName),
			Name:          name,
			QualifiedName: fileName + ":" + qualifiedName,
			Kind:          kind,
			File:          filePath,
			LineStart:     int(start.Row) + 1,
			LineEnd:       int(end.Row) + 1,
			Column:        int(start.Column),
			ByteStart:     int(node.StartByte()),
			ByteEnd:       int(node.EndByte()),
			Visibility:    isExported(name),
			Signature:     signature,
		})
	}
	return symbols
}

// extractCalls mutates symbols in place, appending each call's bare
// callee name to the References of its smallest enclosing symbol (by
// line range), per find_enclosing_symbol.
func extractCalls(tree *tree_sitter.Tree, source []byte, filePath string, symbols []graph.Symbol, query *tree_sitter.Query) {
	if query == nil || len(symbols) == 0 {
		return
	}

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var callee string
		var line int
		for _, c := range match.Captures {
			captureName := captureNames[c.Index]
			if captureName != "call.name" {
				continue
			}
			text := nodeText(c.Node, source)
			if dot := strings.LastIndex(text, "."); dot >= 0 {
				text = text[dot+1:]
			}
			callee = text
			line = int(c.Node.StartPosition().Row) + 1
		}
		if callee == "" {
			continue
		}

		idx := findEnclosingSymbol(line, symbols)
		if idx < 0 {
			continue
		}
		symbols[idx].References = append(symbols[idx].References, callee)
	}
}

// findEnclosingSymbol returns the index of the smallest symbol (by line
// span) whose range contains line, or -1 if none does.
func findEnclosingSymbol(line int, symbols []graph.Symbol) int {
	best := -1
	bestSpan := -1
	for i, s := range symbols {
		if s.LineStart > line || s.LineEnd < line {
			continue
		}
		span := s.LineEnd - s.LineStart
		if best == -1 || span < bestSpan {
			best = i
			bestSpan = span
		}
	}
	return best
}

func extractImports(tree *tree_sitter.Tree, source []byte, filePath string, query *tree_sitter.Query) []graph.Symbol {
	if query == nil {
		return nil
	}

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	var out []graph.Symbol
	seen := make(map[string]bool)
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, c := range match.Captures {
			if captureNames[c.Index] != "import.path" {
				continue
			}
			path := strings.Trim(nodeText(c.Node, source), "\"'")
			if path == "" || seen[path] {
				continue
			}
			seen[path] = true
			start := c.Node.StartPosition()
			end := c.Node.EndPosition()
			out = append(out, graph.Symbol{
				ID:         symbolID(filePath, "import:"+path),
				Name:       path,
				Kind:       graph.KindImport,
				File:       filePath,
				LineStart:  int(start.Row) + 1,
				LineEnd:    int(end.Row) + 1,
				Visibility: graph.VisibilityInternal,
			})
		}
	}
	return out
}
