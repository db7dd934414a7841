// Package config provides the YAML-based tool configuration: first-run
// creation with defaults, normalization of partially-filled files, and
// atomic save with 0600 permissions.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFilenamePattern names new notes after the meeting start and
// subject. Dots in the time part keep colons out of file names.
const DefaultFilenamePattern = `{{#helper_dateFormat}}{{apptStartWhole}}|YYYY-MM-DD HH.mm{{/helper_dateFormat}} {{subject}}`

// DefaultTemplate is the note template used until the user supplies one.
const DefaultTemplate = `---
title: {{subject}}
subtitle: meeting notes
date: {{#helper_dateFormat}}{{apptStartWhole}}|L LT{{/helper_dateFormat}}
meeting: 'true'
meeting-location: {{apptLocation}}
meeting-recipients:
{{#recipients}}
  - {{name}}
{{/recipients}}
meeting-invite: {{body}}
---
`

// Config is the top-level tool configuration.
type Config struct {
	// NotesFolder is where notes are created, relative to the vault root.
	// Empty means the vault root itself.
	NotesFolder string `yaml:"notes_folder"`

	// FilenamePattern is the single-line template for note file names; the
	// .md extension is appended after rendering.
	FilenamePattern string `yaml:"filename_pattern"`

	// Template is the inline note template. TemplateFile, when set, wins
	// over it.
	Template     string `yaml:"template"`
	TemplateFile string `yaml:"template_file,omitempty"`

	// InvalidCharReplacement substitutes characters that cannot appear in
	// a file name. Empty deletes the character.
	InvalidCharReplacement string `yaml:"invalid_char_replacement"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		NotesFolder:            "",
		FilenamePattern:        DefaultFilenamePattern,
		Template:               DefaultTemplate,
		InvalidCharReplacement: "",
	}
}

// Normalize fills in missing values so that partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.FilenamePattern == "" {
		c.FilenamePattern = DefaultFilenamePattern
	}
	if c.Template == "" && c.TemplateFile == "" {
		c.Template = DefaultTemplate
	}
}

// ResolveTemplate returns the note template to render: the contents of
// TemplateFile when configured, the inline Template otherwise.
func (c *Config) ResolveTemplate() (string, error) {
	if c.TemplateFile == "" {
		return c.Template, nil
	}
	data, err := os.ReadFile(c.TemplateFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (creating
// the parent directory if needed) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if serr := Save(path, cfg); serr != nil {
				return cfg, serr
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".meetnote-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
