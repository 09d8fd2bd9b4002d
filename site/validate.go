package site

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Validate checks the content tree and the project registry for problems
// that should fail a build: malformed front matter, documents missing a
// title, duplicate routes within a collection, and broken references.
// All problems are reported together via errors.Join.
func (vfs *FS) Validate() error {
	var errs []error

	docs, err := vfs.documents(true)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	seen := make(map[string]string) // collection-qualified route -> document path
	for _, d := range docs {
		if d.fmErr != nil {
			errs = append(errs, fmt.Errorf("%s: malformed front matter: %w", d.path, d.fmErr))
			continue
		}
		base := path.Base(d.route)
		if d.fm.Title == "" && base != "404.html" && base != "500.html" {
			errs = append(errs, fmt.Errorf("%s: missing required front matter field %q", d.path, "title"))
		}
		if prev, ok := seen[d.route]; ok {
			errs = append(errs, fmt.Errorf("%s: duplicate slug %q in collection %q (also used by %s)",
				d.path, strings.TrimSuffix(base, ".html"), d.collection, prev))
		} else {
			seen[d.route] = d.path
		}
		if d.fm.Image != "" {
			if err := vfs.checkRef(d.fm.Image); err != nil {
				errs = append(errs, fmt.Errorf("%s: cover image %q: %w", d.path, d.fm.Image, err))
			}
		}
	}

	for i, p := range vfs.registry.Projects() {
		if link := p.PostLink; link != "" && !strings.Contains(link, "://") {
			if err := vfs.checkRef(link); err != nil {
				errs = append(errs, fmt.Errorf("project %d (%q): post link %q: %w", i, p.Name, link, err))
			}
		}
	}

	return errors.Join(errs...)
}

// checkRef verifies that a site-relative reference resolves through the
// published view.
func (vfs *FS) checkRef(ref string) error {
	ref = strings.TrimPrefix(ref, "/")
	if ref == "" || !fs.ValidPath(ref) {
		return fs.ErrNotExist
	}
	f, err := vfs.Open(ref)
	if err != nil {
		return err
	}
	return f.Close()
}
