package main

import (
	"path/filepath"
)

func resolveAbs(path string) (string, error) {
	return filepath.Abs(path)
}
