package site

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"
)

// renderFile is a fully rendered virtual file. The rendered bytes are held
// in memory, so Close does not release anything.
type renderFile struct {
	info   virtualFileInfo
	fm     FrontMatter
	reader *bytes.Reader
}

// newRenderFile wraps rendered bytes as a virtual file.
func newRenderFile(name string, modTime time.Time, fm FrontMatter, b []byte) *renderFile {
	return &renderFile{
		info: virtualFileInfo{
			name:    path.Base(name),
			size:    int64(len(b)),
			modTime: modTime,
		},
		fm:     fm,
		reader: bytes.NewReader(b),
	}
}

// front returns the front matter of the rendered document.
func (f *renderFile) front() FrontMatter { return f.fm }

// Stat returns a FileInfo describing the file.
func (f *renderFile) Stat() (fs.FileInfo, error) { return f.info, nil }

// Read reads up to len(b) bytes from the file. It returns the number of
// bytes read and any error encountered. At end of file, Read returns 0, io.EOF.
func (f *renderFile) Read(b []byte) (int, error) { return f.reader.Read(b) }

// Seek sets the offset for the next Read, interpreted according to whence.
func (f *renderFile) Seek(offset int64, whence int) (int64, error) {
	return f.reader.Seek(offset, whence)
}

// Close closes the file. Rendered files are in memory, so this function does nothing.
func (f *renderFile) Close() error { return nil }

// newDocumentFile reads the underlying Markdown document, extracts the
// front matter, renders the Markdown, and executes the matching template,
// returning the resulting virtual file. Documents that are drafts or not
// yet published report fs.ErrNotExist.
func (vfs *FS) newDocumentFile(f fs.File, pathname string) (*renderFile, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("newDocumentFile: %w", err)
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("newDocumentFile: %w", err)
	}

	fm, r, unmarshal := extractFrontMatter(b)

	var front FrontMatter
	if err := decodeFrontMatter(fm, unmarshal, &front); err != nil {
		return nil, fmt.Errorf("newDocumentFile: %w", err)
	}
	if !front.published() {
		return nil, &fs.PathError{Op: "open", Path: pathname, Err: fs.ErrNotExist}
	}

	md := runMarkdown(r)

	// prepare template data
	p, bn := path.Split(pathname)
	data := data{
		FrontMatter: front,
		Page: pageInfo{
			Path:     p,
			Filename: bn,
		},
		Content: md,
		Site:    vfs.cfg,
	}

	// Render the HTML template
	templateName := "default"
	if data.FrontMatter.Template != "" {
		templateName = data.FrontMatter.Template
	}
	tpl := vfs.getTemplates()
	var wtr bytes.Buffer
	err = tpl.ExecuteTemplate(&wtr, templateName, data)
	if err != nil {
		return nil, fmt.Errorf("newDocumentFile: %w", err)
	}

	return newRenderFile(bn, fi.ModTime(), front, wtr.Bytes()), nil
}

// newImageFile builds front matter for the underlying image file and
// executes the "image" template, returning the resulting virtual file.
func (vfs *FS) newImageFile(f fs.File, pathname string) (fs.File, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// prepare template data
	p, bn := path.Split(pathname)
	front := FrontMatter{
		Title: bn,
		Date:  fi.ModTime(),
	}
	data := data{
		FrontMatter: front,
		Page: pageInfo{
			Path:     p,
			Filename: fi.Name(),
		},
		Site: vfs.cfg,
	}

	tpl := vfs.getTemplates()
	var wtr bytes.Buffer
	err = tpl.ExecuteTemplate(&wtr, "image", data)
	if err != nil {
		return nil, fmt.Errorf("newImageFile: %w", err)
	}

	return newRenderFile(bn, fi.ModTime(), front, wtr.Bytes()), nil
}
