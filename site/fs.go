/*
site implements a virtual view over a fs.FS holding a Markdown blog and
portfolio, presenting it as the published web site. It includes a template
system, a project registry, and generated sitemap and feed endpoints, so the
same file system can back a web server or a static build.

A special file "murmur.cfg" at the root exposes site settings you can read
via the Config() function. A special file "projects.toml" at the root holds
the portfolio project registry exposed to templates. Both files are hidden
from view, as is the "template" folder holding the HTML templates.

Hidden files and folders (those starting with ".") are ignored.

Documents

Markdown files are never served raw. When an endpoint like
"/posts/coroutines.html" is opened, the file system looks for a Markdown
document "/posts/coroutines.md", renders it through the site templates, and
presents the result as a virtual HTML file. A document whose front matter
declares a slug is served at the slug route instead of the file stem, and
the stem route reports fs.ErrNotExist so each document has one canonical
address.

Documents marked "draft = true", and documents whose publish date is still
in the future, do not resolve, do not appear in directory listings, and are
excluded from the sitemap and the feed.

Each top-level folder is a collection. Within a collection the route stem
(slug or file stem) must be unique; Validate reports duplicates along with
malformed front matter and broken cover image references.

Image Folders

If a Markdown document is not found, the system will look for an image file
(PNG, JPG, GIF, or WEBP). If one is found, a virtual HTML file is rendered
using the "image" template. The underlying image file is not hidden, because
it needs to be served for the HTML. This special handling only happens when
the top-level folder is one of:

	"photos", "images", "pictures", "screenshots", "artwork", "drawings"

Front Matter

Documents may carry front matter in TOML format delimited by "+++" lines,
or in YAML format delimited by "---" lines. For example:

	+++
	title = "My glorious page"
	date = 2024-05-01T10:00:00Z
	tags = ["android", "kotlin"]
	+++
	# Heading
	This is my [Markdown](https://en.wikipedia.org/wiki/Markdown).

Front matter may include:

	Name         Type               Description
	-----------  -----------------  -----------------------------------------
	title        string             Title of the page
	metatitle    string             Title for the HTML <title> tag
	seotitle     string             Title for search engine metadata
	slug         string             Route stem override for this document
	description  string             Short description or summary
	date         time               Publish date; future dates are not served
	tags         array of strings   Tags for the article
	image        string             Cover image reference, site-relative
	draft        bool               Exclude this document from published output
	template     string             Override the template used to render
	redirect     string             Issue an HTML meta-tag redirect
	expires      duration           For pages that need an Expires header

Generated Files

The endpoints "sitemap.xml" and "feed.xml" are virtual files generated from
the published documents and the site configuration. They appear in the root
directory listing so that static builds export them.

Templates

The system uses standard Go templates from the html/template package and
includes default "default" and "image" templates. Custom templates are
stored in the "template" top-level folder with the extension ".html".

Templates are passed the front matter, page information, rendered HTML, and
the site configuration, and may call the following helper functions:

	dir(path string) []site.File
		Contents of the folder, excluding drafts and special files
	sortbyname([]site.File) []site.File
		Sort by name (reverse)
	sortbytime([]site.File) []site.File
		Sort by publish date (reverse)
	match(string, ...string) bool
		Match string against file patterns
	filter([]site.File, ...string) []site.File
		Filter list against file patterns
	join, ext, trimsuffix, trimprefix, trimspace
		The same as path.Join, path.Ext, and the strings functions
	prev([]site.File, string) *site.File
	next([]site.File, string) *site.File
	reverse([]site.File) []site.File
	markdown(string) template.HTML
		Render a Markdown document into HTML
	frontmatter(string) *site.FrontMatter
		Read front matter from a document
	projects() []portfolio.Project
		The project registry in authoring order
	projectsbytag(tag string) []portfolio.Project
		Registry entries carrying the given tag
	site() *site.Config
		The site configuration
	now() time.Time

Index Files

Create an "index.md" in a folder to render the folder's "index.html". Slug
overrides are ignored for index documents.

Errors

You can create 404.md and 500.md files in the root of the file system. The
directory listing and the sitemap will not show them, and a web layer can
request 404.html or 500.html when the file system returns an error.
*/
package site

import (
	"errors"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/murmurkit/murmur/portfolio"
)

// FS provides a virtual view of the file system that presents the authored
// content tree as the published site.
type FS struct {
	fs       fs.FS
	cfg      *Config
	registry *portfolio.Registry
	tpl      *template.Template
	tplMutex sync.RWMutex
}

// New returns a new FS that presents the published view of innerFS.
// It fails if the site configuration, the project registry, or the
// templates cannot be loaded.
func New(innerFS fs.FS) (*FS, error) {
	var vfs = FS{
		fs: innerFS,
	}
	cfg, err := loadConfig(innerFS)
	if err != nil {
		return nil, err
	}
	vfs.cfg = cfg
	reg, err := loadRegistry(innerFS)
	if err != nil {
		return nil, err
	}
	vfs.registry = reg
	_, err = vfs.loadTemplates()
	if err != nil {
		return nil, err
	}
	return &vfs, nil
}

// Config returns the site configuration from the murmur.cfg file.
// It is never nil; a missing file yields the zero configuration.
func (vfs *FS) Config() *Config {
	return vfs.cfg
}

// Projects returns the portfolio project registry in authoring order.
func (vfs *FS) Projects() []portfolio.Project {
	return vfs.registry.Projects()
}

// Open opens the named file.
//
// When Open returns an error, it should be of type *fs.PathError
// with the Op field set to "open", the Path field set to name,
// and the Err field describing the problem.
//
// Open should reject attempts to open names that do not satisfy
// fs.ValidPath(name), returning a *PathError with Err set to
// ErrInvalid or ErrNotExist.
func (vfs *FS) Open(name string) (fs.File, error) {
	// Make sure the path is valid per fs rules
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	// Don't show hidden or special files, or raw Markdown
	if isHiddenFile(name) || (name != "." && containsSpecialFile(name)) || path.Ext(name) == ".md" {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	// Generated endpoints have no underlying file.
	switch name {
	case feedPath:
		return vfs.newFeedFile()
	case sitemapPath:
		return vfs.newSitemapFile()
	}

	// open the file with the underlying file system
	f, err := vfs.fs.Open(name)
	if err != nil {
		// for files that don't exist, check for underlying matching documents
		if errors.Is(err, fs.ErrNotExist) && path.Ext(name) == ".html" {
			return vfs.openVirtual(name)
		}
		// no matching underlying file; return error from opening the underlying file
		return f, err
	}
	// check for directory
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	// Directories need to be virtual so that we don't
	// accidentally pick up the wrong ReadDir implementation.
	if fi.IsDir() {
		// don't close f because it will be used for ReadDir
		return &virtualDir{File: f, path: name, vfs: vfs}, nil
	}
	return f, nil
}

// openVirtual resolves an .html route to its underlying Markdown document
// or image, returning the rendered virtual file.
func (vfs *FS) openVirtual(name string) (fs.File, error) {
	stem := strings.TrimSuffix(name, path.Ext(name))
	base := path.Base(stem)

	// A document whose stem matches the route directly.
	f, err := vfs.fs.Open(stem + ".md")
	if err == nil {
		defer f.Close()
		doc, err := vfs.newDocumentFile(f, stem+".html")
		if err != nil {
			return nil, err
		}
		// A declared slug makes the slug route canonical; the stem
		// route no longer resolves. Index documents keep their name.
		if fm := doc.front(); base != "index" && fm.Slug != "" && fm.Slug != base {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		return doc, nil
	}

	// A document in the same folder whose slug matches the route.
	if f, err := vfs.openBySlug(path.Dir(stem), base); err == nil {
		defer f.Close()
		return vfs.newDocumentFile(f, stem+".html")
	}

	// An image with the same stem, in image folders only.
	if hasImageFolderPrefix(name) {
		for _, ext := range imageExtensions {
			f, err := vfs.fs.Open(stem + ext)
			if err == nil {
				defer f.Close()
				return vfs.newImageFile(f, stem+".html")
			}
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// openBySlug scans the Markdown documents of dir for one whose front matter
// declares the given slug.
func (vfs *FS) openBySlug(dir, slug string) (fs.File, error) {
	entries, err := fs.ReadDir(vfs.fs, dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		var fm FrontMatter
		nm := path.Join(dir, entry.Name())
		if err := vfs.readFrontMatter(nm, &fm); err != nil {
			continue
		}
		if fm.Slug == slug {
			return vfs.fs.Open(nm)
		}
	}
	return nil, fs.ErrNotExist
}
