package portfolio

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// Registry holds the ordered project list. It is immutable after loading;
// accessors return copies so callers cannot disturb the authored order.
type Registry struct {
	projects []Project
}

// New builds a registry from the given projects, validating each record.
func New(projects ...Project) (*Registry, error) {
	var errs []error
	for i, p := range projects {
		if err := p.validate(i); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Registry{projects: projects}, nil
}

// Load reads and validates the project registry from a TOML file holding
// an array of [[project]] tables. Table order is display order.
func Load(fsys fs.FS, name string) (*Registry, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	var raw struct {
		Project []map[string]any `toml:"project"`
	}
	if err := toml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("portfolio: cannot parse %s: %w", name, err)
	}
	projects := make([]Project, 0, len(raw.Project))
	for _, rec := range raw.Project {
		projects = append(projects, fromRecord(rec))
	}
	reg, err := New(projects...)
	if err != nil {
		return nil, fmt.Errorf("portfolio: %s: %w", name, err)
	}
	return reg, nil
}

// Len returns the number of projects.
func (r *Registry) Len() int {
	return len(r.projects)
}

// Projects returns the projects in authoring order.
func (r *Registry) Projects() []Project {
	out := make([]Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// ByTag returns the projects carrying the given tag, preserving order.
func (r *Registry) ByTag(tag string) []Project {
	var out []Project
	for _, p := range r.projects {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}
