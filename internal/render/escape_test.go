package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain value passes through", "Team Sync", "Team Sync"},
		{"colon forces quoting", "Room 4: North", `"Room 4: North"`},
		{"hash forces quoting", "note #1", `"note #1"`},
		{"comma forces quoting", "a, b", `"a, b"`},
		{"brackets force quoting", "x[0]", `"x[0]"`},
		{"braces force quoting", "a{b}", `"a{b}"`},
		{"quotes escaped inside quoting", `say "hi": ok`, `"say \"hi\": ok"`},
		{"backslash escaped inside quoting", `c:\tmp`, `"c:\\tmp"`},
		{"newline becomes block literal", "line one\nline two", "|\n  line one\n  line two"},
		{"crlf becomes block literal", "one\r\ntwo", "|\n  one\n  two"},
		{"block literal wins over quoting", "a: b\nc", "|\n  a: b\n  c"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeYAML(tt.in))
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"asterisk", "a*b", `a\*b`},
		{"underscore", "snake_case", `snake\_case`},
		{"brackets", "[link]", `\[link\]`},
		{"parens", "(note)", `\(note\)`},
		{"angle", "<tag>", `\<tag\>`},
		{"backtick", "`code`", "\\`code\\`"},
		{"backslash", `a\b`, `a\\b`},
		{"pipe and caret", "a|b^c", `a\|b\^c`},
		{"hash bang", "#1!", `\#1\!`},
		{"percent digraph", "100%% sure", `100\%\% sure`},
		{"tilde digraph", "~~gone~~", `\~\~gone\~\~`},
		{"equals digraph", "a==b", `a\=\=b`},
		{"single percent untouched", "50% off", "50% off"},
		{"single tilde untouched", "~home", "~home"},
		{"single equals untouched", "a=b", "a=b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeMarkdown(tt.in))
		})
	}
}

func TestEscapeDeterministic(t *testing.T) {
	inputs := []string{"Room 4: North", "a*b\nc", "100%%", `say "hi"`}
	for _, in := range inputs {
		assert.Equal(t, EscapeYAML(in), EscapeYAML(in))
		assert.Equal(t, EscapeMarkdown(in), EscapeMarkdown(in))
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		replacement string
		want        string
	}{
		{"clean name", "Weekly Notes", "_", "Weekly Notes"},
		{"illegal characters", `a*b"c<d>e:f|g?h`, "_", "a_b_c_d_e_f_g_h"},
		{"slash caught by the sweep", "Q1/Q2", "_", "Q1_Q2"},
		{"backslash", `a\b`, "-", "a-b"},
		{"empty replacement deletes", "a:b?c", "", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.in, tt.replacement))
		})
	}
}
