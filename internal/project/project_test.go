package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-dev/arbor/internal/config"
)

func writeGoFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestInitWritesConfigOnce(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Detect(dir))

	cfg, err := Init(dir, false)
	require.NoError(t, err)
	assert.Equal(t, 7432, cfg.Server.QueryPort)
	assert.True(t, Detect(dir))

	again, err := Init(dir, false)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.QueryPort, again.Server.QueryPort)
}

func TestBuildIndexesSupportedFilesAndSkipsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "main.go", "package main\n\nfunc main() {\n\thelper()\n}\n\nfunc helper() {}\n")

	vendorDir := filepath.Join(dir, "vendor")
	require.NoError(t, os.Mkdir(vendorDir, 0o755))
	writeGoFile(t, vendorDir, "skip.go", "package vendor\n\nfunc Skip() {}\n")

	cfg := config.Default(dir, false)
	result, err := Build(dir, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesSeen)
	assert.True(t, result.Graph.NodeCount() >= 2)
	for _, s := range result.Graph.Nodes() {
		assert.NotContains(t, s.File, "vendor")
	}
}

func TestBuildSkipsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "big.go", "package main\n\nfunc main() {}\n")

	cfg := config.Default(dir, false)
	cfg.Indexer.MaxFileSizeBytes = 1
	result, err := Build(dir, cfg)
	require.NoError(t, err)

	assert.Equal(t, 0, result.FilesSeen)
	assert.Equal(t, 1, result.FilesSkipped)
}
