// Package filestorage holds the file storage implementations used for
// document uploads.
package filestorage

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectName builds the stored name for an upload: folder/uuid.ext.
// The folder is reduced to a single safe path segment.
func ObjectName(suggestedName, folder string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(suggestedName)))
	name := uuid.NewString() + ext
	if f := SafeSegment(folder); f != "" {
		return path.Join(f, name)
	}
	return name
}

// SafeSegment strips separators and dot segments so a classification name
// can be used as a folder.
func SafeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(s)
	if s == "." {
		return ""
	}
	return s
}
