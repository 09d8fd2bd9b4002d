// Package portfolio holds the project registry shown on the portfolio page.
// Records are authored in a projects.toml file, loaded once at build time,
// and immutable afterwards. Authoring order is display order.
package portfolio

import (
	"fmt"
	"sort"
	"strings"
)

// Project is one portfolio entry. The schema is open: unknown string-keyed
// fields from the source file are preserved in Extra, so templates can rely
// on fields the registry itself does not interpret.
type Project struct {
	Name        string            // Display name, required
	DemoLink    string            // Demo URL, absent for source-only projects
	DemoLinkRel string            // Link relation for the demo anchor
	GithubLink  string            // Source repository URL, required
	PostLink    string            // Related article, absolute or site-relative
	Tags        []string          // Ordered category labels
	Description string            // Free text
	Extra       map[string]string // Unknown fields, preserved as authored
}

// HasTag reports whether the project carries the given tag.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// validate reports the first schema problem of the record at index i.
func (p Project) validate(i int) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project %d: missing required field %q", i, "name")
	}
	if strings.TrimSpace(p.GithubLink) == "" {
		return fmt.Errorf("project %d (%q): missing required field %q", i, p.Name, "githublink")
	}
	return nil
}

// knownKeys are the field names the registry interprets; everything else
// lands in Extra.
var knownKeys = map[string]bool{
	"name":        true,
	"demolink":    true,
	"demolinkrel": true,
	"githublink":  true,
	"postlink":    true,
	"tags":        true,
	"description": true,
}

// fromRecord maps a raw decoded table onto a Project.
func fromRecord(rec map[string]any) Project {
	var p Project
	p.Name = stringField(rec, "name")
	p.DemoLink = stringField(rec, "demolink")
	p.DemoLinkRel = stringField(rec, "demolinkrel")
	p.GithubLink = stringField(rec, "githublink")
	p.PostLink = stringField(rec, "postlink")
	p.Description = stringField(rec, "description")
	if tags, ok := rec["tags"].([]any); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok {
				p.Tags = append(p.Tags, s)
			}
		}
	}
	var extraKeys []string
	for k := range rec {
		if !knownKeys[k] {
			extraKeys = append(extraKeys, k)
		}
	}
	if len(extraKeys) > 0 {
		sort.Strings(extraKeys)
		p.Extra = make(map[string]string, len(extraKeys))
		for _, k := range extraKeys {
			p.Extra[k] = fmt.Sprint(rec[k])
		}
	}
	return p
}

// stringField pulls a string value from a raw record.
func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}
