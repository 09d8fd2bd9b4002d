package site

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanSite(t *testing.T) {
	fileSys, err := New(testSite())
	require.NoError(t, err)
	assert.NoError(t, fileSys.Validate())
}

func TestValidateDuplicateSlug(t *testing.T) {
	m := testSite()
	m["posts/threads-redux.md"] = &fstest.MapFile{Data: []byte(`---
title: Thread Pools Again
slug: thread-pools-internals
---
body
`)}
	fileSys, err := New(m)
	require.NoError(t, err)
	err = fileSys.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate slug "thread-pools-internals"`)
	assert.Contains(t, err.Error(), `collection "posts"`)
}

func TestValidateMissingTitle(t *testing.T) {
	m := testSite()
	m["posts/untitled.md"] = &fstest.MapFile{Data: []byte("+++\ndate = 2024-01-01T00:00:00Z\n+++\nbody\n")}
	fileSys, err := New(m)
	require.NoError(t, err)
	err = fileSys.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posts/untitled.md")
	assert.Contains(t, err.Error(), `missing required front matter field "title"`)
}

func TestValidateMalformedFrontMatter(t *testing.T) {
	m := testSite()
	m["posts/broken.md"] = &fstest.MapFile{Data: []byte("+++\ntitle = not quoted\n+++\nbody\n")}
	fileSys, err := New(m)
	require.NoError(t, err)
	err = fileSys.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posts/broken.md")
	assert.Contains(t, err.Error(), "malformed front matter")
}

func TestValidateBrokenImageRef(t *testing.T) {
	m := testSite()
	m["posts/pictured.md"] = &fstest.MapFile{Data: []byte(`+++
title = "Pictured"
image = "/images/missing.png"
+++
body
`)}
	fileSys, err := New(m)
	require.NoError(t, err)
	err = fileSys.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cover image "/images/missing.png"`)
}

func TestValidateDraftSlugCollision(t *testing.T) {
	// Drafts are excluded from output but still validated, so a slug
	// collision surfaces before the draft publishes.
	m := testSite()
	m["posts/draft-redux.md"] = &fstest.MapFile{Data: []byte(`---
title: Draft Redux
slug: thread-pools-internals
draft: true
---
body
`)}
	fileSys, err := New(m)
	require.NoError(t, err)
	err = fileSys.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate slug")
}

func TestValidateBrokenProjectPostLink(t *testing.T) {
	m := testSite()
	m["projects.toml"] = &fstest.MapFile{Data: []byte(`[[project]]
name = "MVVM News Application"
githublink = "https://github.com/example/mvvm-news"
postlink = "/posts/no-such-post.html"
`)}
	fileSys, err := New(m)
	require.NoError(t, err)
	err = fileSys.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `post link "/posts/no-such-post.html"`)
}
