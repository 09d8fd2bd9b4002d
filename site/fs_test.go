package site

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

// testSite is the content tree used across the file system tests.
func testSite() fstest.MapFS {
	return fstest.MapFS{
		"murmur.cfg": {Data: []byte(`title = "Example Dev"
description = "Notes on Android internals"
baseurl = "https://example.dev"
author = "Example Author"
`)},
		"projects.toml": {Data: []byte(`[[project]]
name = "MVVM News Application"
githublink = "https://github.com/example/mvvm-news"
tags = ["Project"]

[[project]]
name = "Compose Recipe App"
githublink = "https://github.com/example/compose-recipes"
demolink = "https://play.example.dev/recipes"
tags = ["Project"]
`)},
		"index.md": {Data: []byte("+++\ntitle = \"Home\"\n+++\n# Welcome\n")},
		"about.md": {Data: []byte("+++\ntitle = \"About\"\n+++\nHi there.\n")},
		"404.md":   {Data: []byte("Page not found.\n")},
		"posts/coroutines.md": {Data: []byte(`+++
title = "Coroutines Under the Hood"
date = 2024-05-01T10:00:00Z
description = "How suspend functions compile."
tags = ["android", "kotlin"]
+++
# Coroutines
`)},
		"posts/threads.md": {Data: []byte(`---
title: Thread Pools
slug: thread-pools-internals
date: 2024-03-10T08:00:00Z
description: Executors from the inside.
---
# Threads
`)},
		"posts/secret.md": {Data: []byte(`---
title: Not Yet
draft: true
---
wip
`)},
		"posts/future.md": {Data: []byte(`+++
title = "Scheduled"
date = 2999-01-01T00:00:00Z
+++
later
`)},
		"images/cover.png": {Data: []byte("not really a png")},
		"static/site.css":  {Data: []byte("body{}")},
	}
}

func TestFS(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	numEntries := 0
	err = fs.WalkDir(fileSys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			t.Error(err)
			return nil
		}
		if path == "" {
			t.Error("Path is empty")
			return nil
		}
		numEntries++
		if !d.IsDir() {
			b, err := fs.ReadFile(fileSys, path)
			if err != nil {
				t.Errorf("Cannot read %q: %v", path, err)
				return nil
			}
			if len(b) == 0 {
				t.Errorf("File %q has no data", path)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if numEntries == 0 {
		t.Error("Walk saw no entries")
	}
}

func TestOpenRendersDocument(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	b, err := fs.ReadFile(fileSys, "posts/coroutines.html")
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if !strings.Contains(s, "<title>Coroutines Under the Hood</title>") {
		t.Errorf("Rendered page is missing the title: %q", s)
	}
	if !strings.Contains(s, "<h1") {
		t.Errorf("Rendered page is missing the markdown body: %q", s)
	}
}

func TestOpenHidesUnpublished(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"posts/secret.html",     // draft
		"posts/future.html",     // publish date not reached
		"posts/coroutines.md",   // raw markdown
		"posts/threads.html",    // slug override makes the stem non-canonical
		"murmur.cfg",            // site configuration
		"projects.toml",         // project registry
		"template",              // templates folder
		".git/config",           // hidden folder
	} {
		_, err := fileSys.Open(name)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Expected %q to not exist, got %v", name, err)
		}
	}
}

func TestOpenBySlug(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	b, err := fs.ReadFile(fileSys, "posts/thread-pools-internals.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<title>Thread Pools</title>") {
		t.Errorf("Slug route rendered the wrong document: %q", b)
	}
}

func TestReadDirPublishedView(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	entries, err := fs.ReadDir(fileSys, "posts")
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, entry := range entries {
		names[entry.Name()] = true
	}
	for _, want := range []string{"coroutines.html", "thread-pools-internals.html"} {
		if !names[want] {
			t.Errorf("Expected %q in listing, got %v", want, names)
		}
	}
	for _, not := range []string{"secret.html", "future.html", "threads.html", "coroutines.md"} {
		if names[not] {
			t.Errorf("Did not expect %q in listing", not)
		}
	}

	root, err := fs.ReadDir(fileSys, ".")
	if err != nil {
		t.Fatal(err)
	}
	names = make(map[string]bool)
	for _, entry := range root {
		names[entry.Name()] = true
	}
	for _, want := range []string{"feed.xml", "sitemap.xml", "index.html", "about.html", "posts", "static"} {
		if !names[want] {
			t.Errorf("Expected %q in root listing, got %v", want, names)
		}
	}
	for _, not := range []string{"murmur.cfg", "projects.toml", "template"} {
		if names[not] {
			t.Errorf("Did not expect %q in root listing", not)
		}
	}
}

func TestFeed(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	b, err := fs.ReadFile(fileSys, "feed.xml")
	if err != nil {
		t.Fatal(err)
	}
	var feed rssXML
	if err := xml.Unmarshal(b, &feed); err != nil {
		t.Fatalf("Feed is not valid XML: %s", err)
	}
	if feed.Channel.Title != "Example Dev" {
		t.Errorf("Unexpected channel title %q", feed.Channel.Title)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(feed.Channel.Items))
	}
	// newest first
	if feed.Channel.Items[0].Title != "Coroutines Under the Hood" {
		t.Errorf("Unexpected first item %q", feed.Channel.Items[0].Title)
	}
	if want := "https://example.dev/posts/thread-pools-internals.html"; feed.Channel.Items[1].Link != want {
		t.Errorf("Expected link %q, got %q", want, feed.Channel.Items[1].Link)
	}
}

func TestSitemap(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	b, err := fs.ReadFile(fileSys, "sitemap.xml")
	if err != nil {
		t.Fatal(err)
	}
	var m sitemapURLSet
	if err := xml.Unmarshal(b, &m); err != nil {
		t.Fatalf("Sitemap is not valid XML: %s", err)
	}
	locs := make(map[string]bool)
	for _, u := range m.URLs {
		locs[u.Loc] = true
	}
	for _, want := range []string{
		"https://example.dev",
		"https://example.dev/about.html",
		"https://example.dev/posts/coroutines.html",
		"https://example.dev/posts/thread-pools-internals.html",
	} {
		if !locs[want] {
			t.Errorf("Expected %q in sitemap, got %v", want, locs)
		}
	}
	for _, not := range []string{
		"https://example.dev/posts/secret.html",
		"https://example.dev/posts/future.html",
		"https://example.dev/404.html",
	} {
		if locs[not] {
			t.Errorf("Did not expect %q in sitemap", not)
		}
	}
}

func TestProjectsExposed(t *testing.T) {
	fileSys, err := New(testSite())
	if err != nil {
		t.Fatal(err)
	}
	projects := fileSys.Projects()
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "MVVM News Application" || projects[1].Name != "Compose Recipe App" {
		t.Errorf("Projects out of order: %v", projects)
	}
}
