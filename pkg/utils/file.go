package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SanitizeFilename strips path components and characters that are unsafe in
// a local filename. Server-supplied attachment names are untrusted.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "attachment"
	}
	return name
}

// UniquePath returns dir/name, suffixed with a short random id when a file
// with that name already exists.
func UniquePath(dir, name string) string {
	name = SanitizeFilename(name)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	suffix := uuid.NewString()[:8]
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", base, suffix, ext))
}
