package render

import (
	"regexp"
	"strings"
)

var (
	newlineRe = regexp.MustCompile(`\r\n?|\n`)
	// Characters that would change the structure of a YAML mapping value.
	yamlStructuralRe = regexp.MustCompile(`[:#\[\]{},]`)
)

// EscapeYAML makes an interpolated value safe enough for a front-matter
// mapping value. Multi-line values become a block literal indented two
// spaces; values carrying structural characters are double-quoted with
// internal quotes and backslashes escaped; everything else passes through.
// This is a best-effort escape for template output, not a YAML encoder.
func EscapeYAML(s string) string {
	if newlineRe.MatchString(s) {
		return "|\n  " + newlineRe.ReplaceAllString(s, "\n  ")
	}
	if yamlStructuralRe.MatchString(s) {
		quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
		return `"` + quoted + `"`
	}
	return s
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
	`<`, `\<`,
	`>`, `\>`,
	`(`, `\(`,
	`)`, `\)`,
	`#`, `\#`,
	`!`, `\!`,
	`|`, `\|`,
	`^`, `\^`,
)

var digraphEscaper = strings.NewReplacer(
	`%%`, `\%\%`,
	`~~`, `\~\~`,
	`==`, `\=\=`,
)

// EscapeMarkdown backslash-escapes Markdown-significant characters in an
// interpolated value, then the formatting digraphs %% ~~ == that single
// characters do not cover.
func EscapeMarkdown(s string) string {
	return digraphEscaper.Replace(markdownEscaper.Replace(s))
}

// filenameEscape returns the render-time escape for filename patterns:
// path separators become the replacement string.
func filenameEscape(replacement string) EscapeFunc {
	return func(s string) string {
		s = strings.ReplaceAll(s, "/", replacement)
		return strings.ReplaceAll(s, `\`, replacement)
	}
}

// illegalFilenameChars are rejected by at least one common file system.
const illegalFilenameChars = `*"\<>:|?`

// sanitizeFilename replaces characters illegal in a path segment. Path
// separators are included so helper output cannot smuggle one past the
// render-time escape.
func sanitizeFilename(s, replacement string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '/' || strings.ContainsRune(illegalFilenameChars, r) {
			sb.WriteString(replacement)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
