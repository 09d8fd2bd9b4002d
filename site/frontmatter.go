package site

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds metadata scraped from a document.
type FrontMatter struct {
	Title       string    `toml:"title" yaml:"title"`             // Title of this page
	MetaTitle   string    `toml:"metatitle" yaml:"metatitle"`     // Title used for the HTML <title> tag
	SEOTitle    string    `toml:"seotitle" yaml:"seotitle"`       // Title used for search engine metadata
	Slug        string    `toml:"slug" yaml:"slug"`               // Route stem override for this document
	Description string    `toml:"description" yaml:"description"` // Short description or summary
	Date        time.Time `toml:"date" yaml:"date"`               // Date the article appears
	Tags        []string  `toml:"tags" yaml:"tags"`               // Tags to assign to this article
	Image       string    `toml:"image" yaml:"image"`             // Cover image reference, site-relative
	Draft       bool      `toml:"draft" yaml:"draft"`             // Excluded from published output when true
	Template    string    `toml:"template" yaml:"template"`       // The name of the template to use
	Redirect    string    `toml:"redirect" yaml:"redirect"`       // Issue a redirect to another location
	Expires     Duration  `toml:"expires" yaml:"expires"`         // Use for pages that need an Expires header
}

// published reports whether the document should appear in published output.
func (fm FrontMatter) published() bool {
	return !fm.Draft && !time.Now().Before(fm.Date)
}

// DisplayTitle returns the title to use in the HTML <title> tag.
func (fm FrontMatter) DisplayTitle() string {
	if fm.MetaTitle != "" {
		return fm.MetaTitle
	}
	return fm.Title
}

var (
	// tomlRegexp splits out "+++" delimited front matter.
	tomlRegexp = regexp.MustCompile(`(?m)^\s*\+\+\+\s*$`)
	// yamlRegexp splits out "---" delimited front matter.
	yamlRegexp = regexp.MustCompile(`(?m)^\s*---\s*$`)
)

// extractFrontMatter splits the front matter and Markdown content,
// returning the decoder matching the delimiter that was found.
func extractFrontMatter(x []byte) (fm, r []byte, unmarshal func([]byte, any) error) {
	if fm, r, ok := splitFrontMatter(x, tomlRegexp); ok {
		return fm, r, toml.Unmarshal
	}
	if fm, r, ok := splitFrontMatter(x, yamlRegexp); ok {
		return fm, r, yaml.Unmarshal
	}
	return nil, x, nil
}

// splitFrontMatter splits content on the given delimiter, requiring the
// document to start with the delimiter.
func splitFrontMatter(x []byte, delim *regexp.Regexp) (fm, r []byte, ok bool) {
	subs := delim.Split(string(x), 3)
	if len(subs) != 3 {
		return nil, nil, false
	}
	if s := strings.TrimSpace(subs[0]); len(s) > 0 {
		return nil, nil, false
	}
	return []byte(strings.TrimSpace(subs[1])), []byte(strings.TrimSpace(subs[2])), true
}

// decodeFrontMatter unmarshals extracted front matter into fm.
func decodeFrontMatter(b []byte, unmarshal func([]byte, any) error, fm *FrontMatter) error {
	if len(b) == 0 || unmarshal == nil {
		return nil
	}
	return unmarshal(b, fm)
}

// readFrontMatter extracts and unmarshals front matter from the given file.
func (vfs *FS) readFrontMatter(name string, fm *FrontMatter) error {
	b, err := fs.ReadFile(vfs.fs, name)
	if err != nil {
		return fmt.Errorf("readFrontMatter: %w", err)
	}
	fmb, _, unmarshal := extractFrontMatter(b)
	err = decodeFrontMatter(fmb, unmarshal, fm)
	if err != nil {
		return fmt.Errorf("readFrontMatter: %w", err)
	}
	return nil
}
