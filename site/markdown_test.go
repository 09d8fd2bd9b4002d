package site

import (
	"strings"
	"testing"
)

func TestPathToMarkdown(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"/", "index.md"},
		{"/posts/", "posts/index.md"},
		{"/posts/coroutines", "posts/coroutines.md"},
		{"/posts/coroutines.html", "posts/coroutines.md"},
		{"posts/coroutines.md", "posts/coroutines.md"},
		{"about", "about.md"},
	}
	for _, tt := range tests {
		if got := pathToMarkdown(tt.in); got != tt.out {
			t.Errorf("pathToMarkdown(%q) = %q, expected %q", tt.in, got, tt.out)
		}
	}
}

func TestRunMarkdown(t *testing.T) {
	out := string(runMarkdown([]byte("# Title\n\nSome *emphasis* here.")))
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<em>emphasis</em>") {
		t.Errorf("Unexpected markdown output %q", out)
	}
}
