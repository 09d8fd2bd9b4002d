package site

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/murmurkit/murmur/portfolio"
)

// loadRegistry reads the projects.toml file.
// It is not an error if the file does not exist.
func loadRegistry(fsys fs.FS) (*portfolio.Registry, error) {
	reg, err := portfolio.Load(fsys, registryPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return portfolio.New()
		}
		return nil, fmt.Errorf("cannot load project registry: %w", err)
	}
	return reg, nil
}
