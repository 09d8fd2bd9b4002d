package site

import (
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"
	"time"
)

// File holds data about a page endpoint for use in templates.
type File struct {
	FrontMatter FrontMatter
	Filename    string
}

// document describes one authored Markdown document and its published route.
type document struct {
	path       string // underlying document path
	route      string // published route, always ending in .html
	collection string // top-level folder, "." for root documents
	modTime    time.Time
	fm         FrontMatter
	fmErr      error // front matter decode failure, reported by Validate
}

// routeFor computes the published route of a document, honoring a
// front-matter slug except for index documents.
func routeFor(docPath string, fm FrontMatter) string {
	dir, file := path.Split(docPath)
	stem := strings.TrimSuffix(file, ".md")
	if fm.Slug != "" && stem != "index" {
		stem = fm.Slug
	}
	return path.Join(dir, stem+".html")
}

// collectionOf returns the collection (top-level folder) of a route.
func collectionOf(route string) string {
	dir := path.Dir(route)
	if dir == "." {
		return "."
	}
	parts := strings.SplitN(dir, "/", 2)
	return parts[0]
}

// documents walks the underlying content tree and returns every authored
// document. Unpublished documents (drafts and future-dated pages) are
// included only when asked for, which Validate needs.
func (vfs *FS) documents(includeUnpublished bool) ([]document, error) {
	var docs []document
	err := fs.WalkDir(vfs.fs, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && (containsSpecialFile(p) || isHiddenFile(p)) {
				return fs.SkipDir
			}
			return nil
		}
		if containsSpecialFile(p) || path.Ext(p) != ".md" {
			return nil
		}
		doc := document{path: p, modTime: entryModTime(d)}
		b, err := fs.ReadFile(vfs.fs, p)
		if err != nil {
			return err
		}
		fmb, _, unmarshal := extractFrontMatter(b)
		doc.fmErr = decodeFrontMatter(fmb, unmarshal, &doc.fm)
		doc.route = routeFor(p, doc.fm)
		doc.collection = collectionOf(doc.route)
		if includeUnpublished || (doc.fmErr == nil && doc.fm.published()) {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// dir returns the published contents of a folder and is used in templates.
func (vfs *FS) dir(folderpath string) []File {
	folderpath = "./" + strings.TrimPrefix(folderpath, "/")
	folderpath = path.Clean(folderpath)
	entries, err := fs.ReadDir(vfs.fs, folderpath)
	if err != nil {
		log.Printf("dir: %s", err)
		return nil
	}
	f := make([]File, 0, len(entries))
	for _, entry := range entries {
		nm := entry.Name()
		if strings.HasPrefix(nm, ".") || (folderpath == "." && isHiddenFile(nm)) {
			continue
		}
		if entry.IsDir() {
			f = append(f, File{Filename: nm, FrontMatter: FrontMatter{Title: nm, Date: entryModTime(entry)}})
			continue
		}
		if path.Ext(nm) == ".md" {
			stem := strings.TrimSuffix(nm, ".md")
			if stem == "index" || stem == "404" || stem == "500" {
				continue
			}
			var fm FrontMatter
			err := vfs.readFrontMatter(path.Join(folderpath, nm), &fm)
			if err != nil {
				log.Printf("dir: %s", err)
				continue
			}
			if !fm.published() {
				continue
			}
			if fm.Title == "" {
				fm.Title = stem
			}
			if fm.Date.IsZero() {
				fm.Date = entryModTime(entry).Local()
			}
			f = append(f, File{Filename: path.Base(routeFor(nm, fm)), FrontMatter: fm})
			continue
		}
		f = append(f, File{Filename: nm, FrontMatter: FrontMatter{
			Title: strings.TrimSuffix(nm, path.Ext(nm)),
			Date:  entryModTime(entry).Local(),
		}})
	}
	return f
}

// sortByTime sorts the files by publish date in reverse order.
func sortByTime(f []File) []File {
	sort.SliceStable(f, func(i, j int) bool { return f[j].FrontMatter.Date.Before(f[i].FrontMatter.Date) })
	return f
}

// sortByName sorts the files by name in reverse order.
func sortByName(f []File) []File {
	sort.SliceStable(f, func(i, j int) bool { return f[j].Filename < f[i].Filename })
	return f
}

// reverse reverses the order of the file list.
func reverse(f []File) []File {
	j := len(f) - 1
	for i := 0; i < len(f)/2; i++ {
		f[i], f[j] = f[j], f[i]
		j--
	}
	return f
}

// filter trims out non-matching files based on name.
func filter(f []File, pat ...string) []File {
	var r []File
	for i := range f {
		if match(f[i].Filename, pat...) {
			r = append(r, f[i])
		}
	}
	return r
}

// match uses path.Match to test for a match.
func match(s string, pat ...string) bool {
	for i := range pat {
		b, err := path.Match(pat[i], s)
		if err != nil {
			log.Printf("match: %s", err)
		}
		if b {
			return true
		}
	}
	return false
}

// next returns the next file in the list.
func next(f []File, current string) *File {
	for i := range f {
		if f[i].Filename == current {
			if i > 0 {
				return &f[i-1]
			}
			return nil
		}
	}
	return nil
}

// prev returns the previous file in the list.
func prev(f []File, current string) *File {
	for i := range f {
		if f[i].Filename == current {
			if i < len(f)-1 {
				return &f[i+1]
			}
			return nil
		}
	}
	return nil
}
