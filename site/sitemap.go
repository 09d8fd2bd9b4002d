package site

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// newSitemapFile generates sitemap.xml from the published documents.
func (vfs *FS) newSitemapFile() (fs.File, error) {
	docs, err := vfs.documents(false)
	if err != nil {
		return nil, fmt.Errorf("newSitemapFile: %w", err)
	}
	var (
		urls    []sitemapURL
		maxTime time.Time
	)
	for _, d := range docs {
		base := path.Base(d.route)
		if base == "404.html" || base == "500.html" {
			continue
		}
		// Index documents address their folder.
		route := d.route
		if base == "index.html" {
			route = strings.TrimSuffix(route, "index.html")
			route = strings.TrimSuffix(route, "/")
		}
		u := sitemapURL{Loc: vfs.cfg.URL()}
		if route != "" {
			u.Loc = vfs.cfg.URL(route)
		}
		if !d.fm.Date.IsZero() {
			u.LastMod = d.fm.Date.Format("2006-01-02")
		} else if !d.modTime.IsZero() {
			u.LastMod = d.modTime.Format("2006-01-02")
		}
		urls = append(urls, u)
		if d.modTime.After(maxTime) {
			maxTime = d.modTime
		}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	b, err := encodeXML(sitemap)
	if err != nil {
		return nil, fmt.Errorf("newSitemapFile: %w", err)
	}
	return newRenderFile(sitemapPath, maxTime, FrontMatter{}, b), nil
}
