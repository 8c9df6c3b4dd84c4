package configdir

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer transforms one path segment (a directory or file name, minus
// extension) into a key segment.
type Normalizer func(segment string) string

// CamelCase is the default segment normalizer: "path-with_dashes" becomes
// "pathWithDashes". Words are split on dashes, underscores, dots and spaces.
func CamelCase(segment string) string {
	words := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return segment
	}

	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0][:1]) + words[0][1:])
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Identity keeps segments untouched.
func Identity(segment string) string { return segment }

// dottedPath derives the store key for a file from its slash-separated path
// relative to the load root: the extension is dropped, each segment is
// normalized, and segments are joined with dots.
func dottedPath(rel string, normalize Normalizer) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		segments[i] = normalize(seg)
	}
	return strings.Join(segments, ".")
}
