// Package assets embeds the default phrase list and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
	"strings"
)

//go:embed phrases.txt sql/*.sql
var FS embed.FS

// PhrasesText returns the raw contents of the embedded phrase list.
func PhrasesText() (string, error) {
	b, err := FS.ReadFile("phrases.txt")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Migrations returns the embedded migrations rooted at the sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// sql/ is part of the embed pattern; Sub cannot fail for it.
		panic(err)
	}
	return sub
}

// IsComment reports whether a phrase-list line carries no phrase.
func IsComment(line string) bool {
	s := strings.TrimSpace(line)
	return s == "" || strings.HasPrefix(s, "#")
}
