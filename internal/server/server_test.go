package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/graph"
)

func TestNewBuildsServerOverInitialGraph(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))

	cfg := config.Default(dir, false)
	cfg.Server.QueryPort = 0
	cfg.Server.BroadcastPort = 0

	srv, err := New(dir, cfg, false)
	require.NoError(t, err)
	assert.NotNil(t, srv.Shared())

	var nodeCount int
	srv.Shared().Read(func(g *graph.Graph) {
		nodeCount = g.NodeCount()
	})
	assert.Equal(t, 1, nodeCount)
}
