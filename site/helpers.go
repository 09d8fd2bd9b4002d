package site

import (
	"strings"
)

const (
	configPath   = "murmur.cfg"
	registryPath = "projects.toml"
	feedPath     = "feed.xml"
	sitemapPath  = "sitemap.xml"
)

var hiddenFiles = []string{
	"template",
	configPath,
	registryPath,
}

// isHiddenFile returns true if the given file is considered
// hidden from outside view.
func isHiddenFile(name string) bool {
	for _, s := range hiddenFiles {
		if name == s {
			return true
		}
	}
	return false
}

// containsSpecialFile reports whether name contains a path element starting with a period
// or is another kind of special file. The name is assumed to be a delimited by forward
// slashes, as guaranteed by the fs.FS interface.
func containsSpecialFile(name string) bool {
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

var imageFolders = []string{"photos", "images", "pictures", "screenshots", "artwork", "drawings"}

// hasImageFolderPrefix checks if the entry is in an image folder.
func hasImageFolderPrefix(s string) bool {
	for _, f := range imageFolders {
		if s == f || strings.HasPrefix(s, f+"/") {
			return true
		}
	}
	return false
}

var imageExtensions = []string{".png", ".jpg", ".gif", ".webp", ".jpeg"}

// hasImageExtension checks if the path ends in an image type.
func hasImageExtension(s string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
