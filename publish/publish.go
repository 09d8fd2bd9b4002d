// Package publish writes the published view of a site to a static output
// tree, and can watch the source folder to rebuild on change.
package publish

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Build walks the published view of fsys and writes it under outDir.
// The output directory is removed and recreated, so a build never leaves
// stale pages behind. Drafts and unpublished documents never appear in the
// output because the site file system does not present them. Folders named
// in skip are left out of the walk, which keeps an output folder inside the
// source tree from copying itself.
func Build(fsys fs.FS, outDir string, skip ...string) error {
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("build: cannot clean output directory %q: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("build: cannot create output directory %q: %w", outDir, err)
	}
	var pages int
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Name() == ".git" {
			return fs.SkipDir
		}
		if d.IsDir() {
			for _, s := range skip {
				if p == s {
					return fs.SkipDir
				}
			}
		}
		target := filepath.Join(outDir, filepath.FromSlash(p))
		if d.IsDir() {
			if p == "." {
				return nil
			}
			return os.MkdirAll(target, 0o755)
		}
		if err := copyFile(fsys, p, target); err != nil {
			return fmt.Errorf("build: %w", err)
		}
		pages++
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("Wrote %d files to %q", pages, outDir)
	return nil
}

// copyFile streams one published file to disk.
func copyFile(fsys fs.FS, name, target string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}
	defer src.Close()
	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %q: %w", target, err)
	}
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %q: %w", target, err)
	}
	return nil
}
