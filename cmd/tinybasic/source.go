package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", fmt.Errorf("%s: empty source file", path)
	}
	logger.Debug("read source", "path", path, "bytes", len(b))
	return string(b), nil
}

// outputPath is <dir>/<name>.c for source file <name>.<ext>.
func outputPath(dir, src string) string {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+".c")
}
