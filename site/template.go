package site

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"
)

//go:embed default.html
var defaultTemplate string

// pageInfo has information about the current page.
type pageInfo struct {
	Path     string // path from URL
	Filename string // end portion (file) from URL
}

// Pathname joins the path and filename.
func (p pageInfo) Pathname() string {
	return path.Join(p.Path, p.Filename)
}

// data is what is passed to document templates.
type data struct {
	FrontMatter FrontMatter   // front matter from the document or defaults
	Page        pageInfo      // information about the current page
	Content     template.HTML // rendered Markdown
	Site        *Config       // site configuration
}

// getTemplates returns the parsed templates.
func (vfs *FS) getTemplates() *template.Template {
	vfs.tplMutex.RLock()
	defer vfs.tplMutex.RUnlock()
	return vfs.tpl
}

// loadTemplates loads and parses the HTML templates, returning true if custom templates were found.
func (vfs *FS) loadTemplates() (bool, error) {
	funcMap := template.FuncMap{
		"dir":           vfs.dir,
		"sortbyname":    sortByName,
		"sortbytime":    sortByTime,
		"match":         match,
		"filter":        filter,
		"join":          path.Join,
		"ext":           path.Ext,
		"prev":          prev,
		"next":          next,
		"reverse":       reverse,
		"trimsuffix":    strings.TrimSuffix,
		"trimprefix":    strings.TrimPrefix,
		"trimspace":     strings.TrimSpace,
		"markdown":      vfs.md,
		"frontmatter":   vfs.fm,
		"projects":      vfs.registry.Projects,
		"projectsbytag": vfs.registry.ByTag,
		"site":          vfs.Config,
		"now":           time.Now,
	}
	vfs.tplMutex.Lock()
	defer vfs.tplMutex.Unlock()
	// Check if we are using default templates
	fi, err := fs.Stat(vfs.fs, "template")
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.IsDir()) {
		tpl, err := template.New("murmur").Funcs(funcMap).Parse(defaultTemplate)
		if err != nil {
			return false, fmt.Errorf("loadTemplates: %w", err)
		}
		vfs.tpl = tpl
		return false, nil
	}
	// use custom templates
	tpl, err := template.New("murmur").Funcs(funcMap).ParseFS(vfs.fs, "template/*.html")
	if err != nil {
		return true, fmt.Errorf("loadTemplates: %w", err)
	}
	vfs.tpl = tpl
	return true, nil
}
