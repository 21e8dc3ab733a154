package io

import (
	"fmt"
	"os"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/errors"
)

// ImportData reads a per-residue data file.
func ImportData(path string) ([]float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return coloring.ParseData(string(b))
}
