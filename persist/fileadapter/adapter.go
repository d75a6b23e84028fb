// Package fileadapter is the one persist.Adapter implementation the core
// bundles: the CSV-like policy file format spec.md §6 defines ("ptype,
// v0, v1, ..."; "#" comments; whitespace around commas trimmed).
package fileadapter

import (
	"bufio"
	"os"
	"strings"

	coreerrors "github.com/riftlabs/authcore/errors"
	"github.com/riftlabs/authcore/model"
)

// Adapter loads and saves policies from a local CSV-like file.
type Adapter struct {
	filePath string
}

// NewAdapter returns a file Adapter reading/writing filePath. An empty
// filePath is valid (no-op load, error on save) for callers that only
// ever load policy from an in-memory string.
func NewAdapter(filePath string) *Adapter {
	return &Adapter{filePath: filePath}
}

// LoadPolicy reads every line of the adapter's file into m.
func (a *Adapter) LoadPolicy(m model.Model) error {
	if a.filePath == "" {
		return coreerrors.New(coreerrors.AdapterIO, "invalid file path, file path cannot be empty")
	}
	f, err := os.Open(a.filePath)
	if err != nil {
		return coreerrors.Wrap(coreerrors.AdapterIO, err, "opening policy file %q", a.filePath)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := loadLine(scanner.Text(), m); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func loadLine(line string, m model.Model) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	ptype := fields[0]
	rule := fields[1:]

	sec := "p"
	if strings.HasPrefix(ptype, "g") {
		sec = "g"
	}
	if err := m.AddPolicy(sec, ptype, rule); err != nil {
		if kind, ok := coreerrors.KindOf(err); ok && kind == coreerrors.AlreadyExists {
			return nil
		}
		return err
	}
	return nil
}

// SavePolicy writes every "p*"/"g*" rule currently in m back to the
// adapter's file, replacing its previous contents.
func (a *Adapter) SavePolicy(m model.Model) error {
	if a.filePath == "" {
		return coreerrors.New(coreerrors.AdapterIO, "invalid file path, file path cannot be empty")
	}
	var b strings.Builder
	for _, sec := range []string{"p", "g"} {
		for ptype, assertion := range m[sec] {
			for _, rule := range assertion.Policy {
				b.WriteString(ptype)
				for _, v := range rule {
					b.WriteString(", ")
					b.WriteString(v)
				}
				b.WriteString("\n")
			}
		}
	}
	if err := os.WriteFile(a.filePath, []byte(b.String()), 0o644); err != nil {
		return coreerrors.Wrap(coreerrors.AdapterIO, err, "writing policy file %q", a.filePath)
	}
	return nil
}

// AddPolicy appends rule to the adapter's file, keeping it incrementally
// in sync instead of rewriting the whole file.
func (a *Adapter) AddPolicy(sec, ptype string, rule []string) error {
	return a.appendLine(ptype, rule)
}

// RemovePolicy rewrites the file without rule's first occurrence; the file
// format has no efficient in-place delete, so this reloads, filters, and
// rewrites.
func (a *Adapter) RemovePolicy(sec, ptype string, rule []string) error {
	return a.rewriteWithout(func(fields []string) bool {
		return fields[0] == ptype && sameRule(fields[1:], rule)
	})
}

// RemoveFilteredPolicy rewrites the file, dropping every line matching the
// wildcard filter rule spec.md §4.3 defines.
func (a *Adapter) RemoveFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) error {
	return a.rewriteWithout(func(fields []string) bool {
		if fields[0] != ptype {
			return false
		}
		rule := fields[1:]
		matched := false
		for i, want := range fieldValues {
			if want == "" {
				continue
			}
			idx := fieldIndex + i
			if idx >= len(rule) || rule[idx] != want {
				return false
			}
			matched = true
		}
		return matched
	})
}

func sameRule(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (a *Adapter) appendLine(ptype string, rule []string) error {
	if a.filePath == "" {
		return coreerrors.New(coreerrors.AdapterIO, "invalid file path, file path cannot be empty")
	}
	f, err := os.OpenFile(a.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return coreerrors.Wrap(coreerrors.AdapterIO, err, "opening policy file %q", a.filePath)
	}
	defer f.Close()
	line := ptype
	for _, v := range rule {
		line += ", " + v
	}
	_, err = f.WriteString(line + "\n")
	if err != nil {
		return coreerrors.Wrap(coreerrors.AdapterIO, err, "appending to policy file %q", a.filePath)
	}
	return nil
}

func (a *Adapter) rewriteWithout(drop func(fields []string) bool) error {
	if a.filePath == "" {
		return coreerrors.New(coreerrors.AdapterIO, "invalid file path, file path cannot be empty")
	}
	data, err := os.ReadFile(a.filePath)
	if err != nil {
		return coreerrors.Wrap(coreerrors.AdapterIO, err, "reading policy file %q", a.filePath)
	}
	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Split(trimmed, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if drop(fields) {
			continue
		}
		kept = append(kept, trimmed)
	}
	out := strings.Join(kept, "\n")
	if out != "" {
		out += "\n"
	}
	return os.WriteFile(a.filePath, []byte(out), 0o644)
}
