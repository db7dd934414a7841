package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFirstRunCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFilenamePattern, cfg.FilenamePattern)
	assert.Equal(t, DefaultTemplate, cfg.Template)
	assert.Empty(t, cfg.NotesFolder)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := "notes_folder: Meetings\nfilename_pattern: '{{subject}}'\ninvalid_char_replacement: '_'\n"
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Meetings", cfg.NotesFolder)
	assert.Equal(t, "{{subject}}", cfg.FilenamePattern)
	assert.Equal(t, "_", cfg.InvalidCharReplacement)
	// Missing template normalizes to the default.
	assert.Equal(t, DefaultTemplate, cfg.Template)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notes_folder: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{
		NotesFolder:            "Meetings/Weekly",
		FilenamePattern:        "{{subject}}",
		Template:               "# {{subject}}\n",
		InvalidCharReplacement: "-",
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in.NotesFolder, out.NotesFolder)
	assert.Equal(t, in.FilenamePattern, out.FilenamePattern)
	assert.Equal(t, in.Template, out.Template)
	assert.Equal(t, in.InvalidCharReplacement, out.InvalidCharReplacement)
}

func TestResolveTemplate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(templatePath, []byte("from file"), 0o600))

	cfg := &Config{Template: "inline", TemplateFile: templatePath}
	got, err := cfg.ResolveTemplate()
	require.NoError(t, err)
	assert.Equal(t, "from file", got, "template file wins over inline template")

	cfg.TemplateFile = ""
	got, err = cfg.ResolveTemplate()
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	cfg.TemplateFile = filepath.Join(dir, "missing.md")
	_, err = cfg.ResolveTemplate()
	assert.Error(t, err)
}
