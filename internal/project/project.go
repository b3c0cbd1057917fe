// Package project ties configuration, extraction, and ranking together
// into the full-scan build every CLI entry point needs before it can
// serve or answer a query, grounded on the teacher's cmd/lci directory
// walk plus internal/indexing.MasterIndex.IndexDirectory's shape,
// replacing tree-sitter's language dispatch with internal/extract and
// the teacher's own walker with filepath.WalkDir plus doublestar
// ignore matching.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/extract"
	"github.com/arbor-dev/arbor/internal/graph"
)

// Detect reports whether root already has an .arbor/config.json.
func Detect(root string) bool {
	return config.Exists(root)
}

// Init writes a fresh .arbor/config.json under root if one does not
// already exist.
func Init(root string, bridge bool) (*config.Config, error) {
	if config.Exists(root) {
		return config.Load(root)
	}
	cfg := config.Default(root, bridge)
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// BuildResult reports what a full scan produced.
type BuildResult struct {
	Graph        *graph.Graph
	FilesSeen    int
	FilesSkipped int
	Errors       []error
}

// Build walks root, extracts every supported file not excluded by
// cfg.Ignore, resolves the full two-pass graph, and computes
// centrality over the result.
func Build(root string, cfg *config.Config) (*BuildResult, error) {
	extractor := extract.New()
	builder := graph.NewBuilder()
	result := &BuildResult{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, err)
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if rel != "." && config.MatchIgnore(cfg.Ignore, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			result.FilesSkipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !extractor.Supports(filepath.Ext(path)) {
			return nil
		}

		info, statErr := d.Info()
		if statErr == nil && cfg.Indexer.MaxFileSizeBytes > 0 && info.Size() > cfg.Indexer.MaxFileSizeBytes {
			result.FilesSkipped++
			return nil
		}

		source, readErr := os.ReadFile(path)
		if readErr != nil {
			result.Errors = append(result.Errors, readErr)
			return nil
		}

		symbols, extractErr := extractor.ExtractFile(path, source)
		if extractErr != nil {
			result.Errors = append(result.Errors, extractErr)
			return nil
		}

		if _, err := builder.AddNodes(symbols); err != nil {
			result.Errors = append(result.Errors, err)
			return nil
		}
		result.FilesSeen++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	g := builder.Build()

	scores := graph.ComputeCentrality(g, graph.DefaultRankingOptions())
	g.SetCentrality(scores)

	debug.LogIndexing("full build: %d files indexed, %d skipped, %d nodes, %d edges\n",
		result.FilesSeen, result.FilesSkipped, g.NodeCount(), g.EdgeCount())

	result.Graph = g
	return result, nil
}
