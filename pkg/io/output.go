package io

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// WriteOutputs writes each artifact to <base>.<format> and returns the
// written paths in format order. Missing parent directories are created.
func WriteOutputs(base string, artifacts map[string][]byte) ([]string, error) {
	if err := errors.ValidatePath(base); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
