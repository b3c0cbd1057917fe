package main

import (
	"fmt"

	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/internal/project"
	"github.com/arbor-dev/arbor/internal/snapshot"
)

// loadGraph returns the most recently indexed snapshot for root, or
// performs a fresh full build if none has been saved yet.
func loadGraph(root string) (*graph.Graph, error) {
	cfg, err := loadOrInitConfig(root)
	if err != nil {
		return nil, err
	}

	store, err := snapshot.Open(snapshotDir(root))
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}
	defer store.Close()

	g, ok, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if ok {
		return g, nil
	}

	result, err := project.Build(root, cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Save(result.Graph); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	return result.Graph, nil
}
