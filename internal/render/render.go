package render

import (
	"errors"
	"regexp"

	"meetnote/internal/record"
)

// frontMatterRe matches a leading front-matter block: a line of three
// hyphens, a minimal span, and a closing line of three hyphens followed by
// a newline or end of input.
var frontMatterRe = regexp.MustCompile(`(?s)^---(\r\n?|\n).*?(\r\n?|\n)---($|\r\n?|\n)`)

// Document renders a note template. A leading front-matter block, if
// present, is rendered with YAML escaping and the remainder with Markdown
// escaping; both passes share the record and the helper registry, only the
// escape differs.
func Document(template string, rec *record.Record, helpers Registry) (string, error) {
	frontMatter := frontMatterRe.FindString(template)
	body := template[len(frontMatter):]

	out := ""
	if frontMatter != "" {
		r := &Renderer{Helpers: helpers, Escape: EscapeYAML}
		rendered, err := r.Render(frontMatter, rec)
		if err != nil {
			return "", err
		}
		out += rendered
	}
	if body != "" {
		r := &Renderer{Helpers: helpers, Escape: EscapeMarkdown}
		rendered, err := r.Render(body, rec)
		if err != nil {
			return "", err
		}
		out += rendered
	}
	return out, nil
}

// Filename renders a filename pattern. Path separators are replaced during
// rendering and the result is swept once more for characters illegal in a
// file name. replacement may be empty, which deletes the character. The
// caller appends the file extension.
func Filename(pattern string, rec *record.Record, helpers Registry, replacement string) (string, error) {
	r := &Renderer{Helpers: helpers, Escape: filenameEscape(replacement)}
	rendered, err := r.Render(pattern, rec)
	if err != nil {
		return "", err
	}
	name := sanitizeFilename(rendered, replacement)
	if name == "" {
		return "", errors.New("filename pattern rendered to an empty name")
	}
	return name, nil
}
