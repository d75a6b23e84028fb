// Package config parses the INI-like model text used throughout authcore:
// "[section]" headers, "key = value" assignments, "#" comments, and blank
// lines, exactly the grammar spec.md §6 describes for model files.
package config

import (
	"bufio"
	"os"
	"strings"

	coreerrors "github.com/riftlabs/authcore/errors"
)

const defaultSection = "default"
const defaultComment = "#"
const defaultCommentSem = ";"

// Config holds parsed "[section] key = value" data keyed by
// "section::key"; lines before any header are stored under the "default"
// section ("default::key").
type Config struct {
	data map[string]string
}

// NewConfigFromFile parses the file at path.
func NewConfigFromFile(path string) (*Config, error) {
	c := &Config{data: map[string]string{}}
	f, err := os.Open(path)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.ModelSyntax, err, "cannot open model file %q", path)
	}
	defer f.Close()
	if err := c.parse(f); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConfigFromText parses an in-memory model string.
func NewConfigFromText(text string) (*Config, error) {
	c := &Config{data: map[string]string{}}
	if err := c.parse(strings.NewReader(text)); err != nil {
		return nil, err
	}
	return c, nil
}

type reader interface {
	Read(p []byte) (n int, err error)
}

func (c *Config) parse(r reader) error {
	scanner := bufio.NewScanner(r)
	section := defaultSection
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, defaultComment) || strings.HasPrefix(line, defaultCommentSem) {
			continue
		}
		if strings.HasPrefix(line, "[") {
			end := strings.Index(line, "]")
			if end < 0 {
				return coreerrors.New(coreerrors.ModelSyntax, "unterminated section header: %q", line)
			}
			section = strings.TrimSpace(line[1:end])
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			return coreerrors.New(coreerrors.ModelSyntax, "expected key = value, got %q", line)
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		// The value is stored as written, including any inline "#" text.
		c.data[c.key(section, key)] = value
	}
	if err := scanner.Err(); err != nil {
		return coreerrors.Wrap(coreerrors.ModelSyntax, err, "scanning model text")
	}
	return nil
}

func (c *Config) key(section, option string) string {
	if section == "" {
		section = defaultSection
	}
	return strings.ToLower(section) + "::" + strings.ToLower(option)
}

// GetString returns the raw value for the fully qualified, case-insensitive
// "section::key" (values written before any header are "default::key"),
// or "" if no such key was parsed.
func (c *Config) GetString(key string) string {
	return c.data[strings.ToLower(key)]
}

// Section iterates every "key = value" pair registered in section.
func (c *Config) Section(section string) map[string]string {
	out := map[string]string{}
	prefix := strings.ToLower(section) + "::"
	for k, v := range c.data {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return out
}

// Sections returns every distinct "[section]" header the parsed text
// declared, excluding the implicit default section.
func (c *Config) Sections() []string {
	seen := map[string]bool{}
	var out []string
	for k := range c.data {
		section := k[:strings.Index(k, "::")]
		if section == defaultSection || seen[section] {
			continue
		}
		seen[section] = true
		out = append(out, section)
	}
	return out
}
