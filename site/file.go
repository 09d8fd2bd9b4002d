package site

import (
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

// virtualFileInfo describes a rendered virtual file.
type virtualFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	dir     bool
}

// Name returns the base name of the file.
func (fi virtualFileInfo) Name() string { return fi.name }

// Size reports the length of the rendered data.
func (fi virtualFileInfo) Size() int64 { return fi.size }

// Mode returns the file mode bits.
func (fi virtualFileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0555
	}
	return 0444
}

// ModTime returns the modification time.
func (fi virtualFileInfo) ModTime() time.Time { return fi.modTime }

// IsDir reports whether the entry describes a directory.
func (fi virtualFileInfo) IsDir() bool { return fi.dir }

// Sys returns nil for virtual files.
func (fi virtualFileInfo) Sys() any { return nil }

// virtualDirEntry is a lightweight fs.DirEntry for virtual files. It isn't
// as filled out as if you called Stat on the file itself.
type virtualDirEntry struct {
	virtualFileInfo
}

// Type returns the type bits for the entry.
func (de virtualDirEntry) Type() fs.FileMode { return de.virtualFileInfo.Mode().Type() }

// Info returns the FileInfo for the file described by the entry.
// The returned info is from the time of the directory read.
func (de virtualDirEntry) Info() (fs.FileInfo, error) { return de.virtualFileInfo, nil }

// virtualDir wraps an underlying directory so that its listing shows the
// published view: Markdown documents appear under their .html routes,
// drafts and special files are hidden, and generated endpoints show up
// at the root.
type virtualDir struct {
	fs.File

	path    string
	vfs     *FS
	entries []fs.DirEntry
	loaded  bool
}

// ReadDir reads the contents of the directory and returns a slice of up to
// n DirEntry values, following the fs.ReadDirFile contract.
func (d *virtualDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if !d.loaded {
		entries, err := d.load()
		if err != nil {
			return nil, err
		}
		d.entries = entries
		d.loaded = true
	}
	if n <= 0 {
		r := d.entries
		d.entries = nil
		return r, nil
	}
	if len(d.entries) == 0 {
		return nil, io.EOF
	}
	if n > len(d.entries) {
		n = len(d.entries)
	}
	r := d.entries[:n]
	d.entries = d.entries[n:]
	return r, nil
}

// load builds the published view of the directory.
func (d *virtualDir) load() ([]fs.DirEntry, error) {
	rdf, ok := d.File.(fs.ReadDirFile)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: d.path, Err: fs.ErrInvalid}
	}
	entries, err := rdf.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	var (
		result []fs.DirEntry
		stems  = make(map[string]bool)
	)
	for _, entry := range entries {
		nm := entry.Name()
		if strings.HasPrefix(nm, ".") {
			continue
		}
		if d.path == "." && isHiddenFile(nm) {
			continue
		}
		if entry.IsDir() {
			result = append(result, entry)
			continue
		}
		if path.Ext(nm) == ".md" {
			de, ok := d.documentEntry(entry)
			if ok {
				stems[strings.TrimSuffix(nm, ".md")] = true
				result = append(result, de)
			}
			continue
		}
		result = append(result, entry)
	}
	// Image folders get a virtual page per image, unless a document
	// already claims the stem.
	if hasImageFolderPrefix(d.path) {
		for _, entry := range entries {
			nm := entry.Name()
			if entry.IsDir() || !hasImageExtension(nm) {
				continue
			}
			stem := strings.TrimSuffix(nm, path.Ext(nm))
			if stems[stem] {
				continue
			}
			result = append(result, virtualDirEntry{virtualFileInfo{
				name:    stem + ".html",
				modTime: entryModTime(entry),
			}})
		}
	}
	// Generated endpoints live in the root listing so that walks,
	// static builds, and the sitemap see them.
	if d.path == "." {
		now := time.Now()
		result = append(result,
			virtualDirEntry{virtualFileInfo{name: feedPath, modTime: now}},
			virtualDirEntry{virtualFileInfo{name: sitemapPath, modTime: now}},
		)
	}
	return result, nil
}

// documentEntry maps a Markdown directory entry to its published route,
// reporting false for drafts and unpublished documents.
func (d *virtualDir) documentEntry(entry fs.DirEntry) (fs.DirEntry, bool) {
	var fm FrontMatter
	err := d.vfs.readFrontMatter(path.Join(d.path, entry.Name()), &fm)
	if err != nil {
		// Malformed front matter is reported by Validate; the listing
		// still shows the route so the problem is visible.
		fm = FrontMatter{}
	}
	if !fm.published() {
		return nil, false
	}
	stem := strings.TrimSuffix(entry.Name(), ".md")
	if fm.Slug != "" && stem != "index" {
		stem = fm.Slug
	}
	return virtualDirEntry{virtualFileInfo{
		name:    stem + ".html",
		modTime: entryModTime(entry),
	}}, true
}

// entryModTime pulls the mod time from a directory entry, tolerating
// file systems that cannot provide it.
func entryModTime(entry fs.DirEntry) time.Time {
	fi, err := entry.Info()
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
