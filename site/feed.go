package site

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io/fs"
	"sort"
	"time"
)

// feedItemLimit caps how many articles the feed carries.
const feedItemLimit = 20

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// newFeedFile generates the RSS feed from the published, dated documents.
func (vfs *FS) newFeedFile() (fs.File, error) {
	docs, err := vfs.documents(false)
	if err != nil {
		return nil, fmt.Errorf("newFeedFile: %w", err)
	}
	var (
		dated   []document
		maxTime time.Time
	)
	for _, d := range docs {
		if d.fm.Date.IsZero() {
			continue
		}
		dated = append(dated, d)
		if d.modTime.After(maxTime) {
			maxTime = d.modTime
		}
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[j].fm.Date.Before(dated[i].fm.Date) })
	if len(dated) > feedItemLimit {
		dated = dated[:feedItemLimit]
	}
	items := make([]rssItem, 0, len(dated))
	for _, d := range dated {
		link := vfs.cfg.URL(d.route)
		items = append(items, rssItem{
			Title:       d.fm.Title,
			Link:        link,
			Description: d.fm.Description,
			PubDate:     d.fm.Date.Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       vfs.cfg.Title,
			Link:        vfs.cfg.URL(),
			Description: vfs.cfg.Description,
			Items:       items,
		},
	}
	b, err := encodeXML(feed)
	if err != nil {
		return nil, fmt.Errorf("newFeedFile: %w", err)
	}
	return newRenderFile(feedPath, maxTime, FrontMatter{}, b), nil
}

// encodeXML marshals a document with the standard XML header.
func encodeXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
