// Package config loads and writes .arbor/config.json, the per-repository
// configuration file, adapted from the teacher's internal/config down to
// the schema the external interface names: version, languages, ignore,
// plus an ambient Indexer and Server block.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLanguages seeds a freshly initialized repository's config. It
// is not derived from the extractor: "tsx" has no registered file
// extension, and Zig, which the extractor does wire, is not listed.
var DefaultLanguages = []string{
	"typescript", "tsx", "javascript", "jsx", "rust", "python",
	"go", "java", "c", "cpp", "csharp", "dart",
}

// DefaultIgnore mirrors the teacher's own default exclusion set, trimmed
// to the patterns that matter for a language-agnostic code graph.
var DefaultIgnore = []string{
	"**/.git/**",
	"**/.arbor/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/dist/**",
	"**/build/**",
	"**/target/**",
	"**/bin/**",
	"**/obj/**",
	"**/__pycache__/**",
	"**/*.min.js",
}

// Indexer controls the incremental indexer's (C6) watcher/debouncer.
type Indexer struct {
	DebounceMs       int   `json:"debounceMs"`
	WatchMode        bool  `json:"watchMode"`
	MaxFileSizeBytes int64 `json:"maxFileSizeBytes"`
}

// Server controls the two WebSocket surfaces' ports and bind address.
type Server struct {
	QueryPort     int    `json:"queryPort"`
	BroadcastPort int    `json:"broadcastPort"`
	BindAddress   string `json:"bindAddress"`
}

// Config is the on-disk shape of .arbor/config.json.
type Config struct {
	Version   string   `json:"version"`
	Languages []string `json:"languages"`
	Ignore    []string `json:"ignore"`
	Indexer   Indexer  `json:"indexer"`
	Server    Server   `json:"server"`

	// Root is the absolute repository root this config was loaded for;
	// it is never serialized, only carried alongside the loaded value.
	Root string `json:"-"`
}

// Dir returns the .arbor directory path under root.
func Dir(root string) string {
	return filepath.Join(root, ".arbor")
}

// Path returns the config.json path under root.
func Path(root string) string {
	return filepath.Join(Dir(root), "config.json")
}

// Default returns the configuration a freshly initialized repository
// receives, matching the external interface's bridge-mode port offsets
// (7433/8081) only when bridge is true; otherwise the standalone ports
// (7432/8080).
func Default(root string, bridge bool) *Config {
	queryPort, broadcastPort := 7432, 8080
	if bridge {
		queryPort, broadcastPort = 7433, 8081
	}
	return &Config{
		Version:   "1.0",
		Languages: append([]string(nil), DefaultLanguages...),
		Ignore:    append([]string(nil), DefaultIgnore...),
		Indexer: Indexer{
			DebounceMs:       150,
			WatchMode:        true,
			MaxFileSizeBytes: 5 * 1024 * 1024,
		},
		Server: Server{
			QueryPort:     queryPort,
			BroadcastPort: broadcastPort,
			BindAddress:   "127.0.0.1",
		},
		Root: root,
	}
}

// Load reads .arbor/config.json under root. It does not create one; call
// Default and Save to initialize a new repository.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", Path(root), err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", Path(root), err)
	}
	cfg.Root = root
	return &cfg, nil
}

// Exists reports whether root already carries a .arbor/config.json.
func Exists(root string) bool {
	_, err := os.Stat(Path(root))
	return err == nil
}

// Save writes c to .arbor/config.json under its Root, creating the
// .arbor directory if necessary.
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(c.Root), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", Dir(c.Root), err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(Path(c.Root), data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", Path(c.Root), err)
	}
	return nil
}
