// Package model holds the parsed, immutable-once-built model (spec.md
// §3 "Model") and the policy tables attached to its "p*"/"g*" sections
// (spec.md §3 "Policy Store"), since in this architecture (inherited from
// the teacher) the two live in the same value for convenience of the
// enforcement pipeline.
package model

import (
	"strings"

	coreerrors "github.com/riftlabs/authcore/errors"
	"github.com/riftlabs/authcore/config"
	"github.com/riftlabs/authcore/log"
	"github.com/riftlabs/authcore/rbac"
)

// sectionNameMap maps a model section header to the short key used to
// index into Model ("r", "p", "g", "e", "m").
var sectionNameMap = map[string]string{
	"request_definition": "r",
	"policy_definition":  "p",
	"role_definition":    "g",
	"policy_effect":      "e",
	"matchers":           "m",
}

// Assertion is one "key = value" line of a model section, plus whatever
// runtime state hangs off it: the policy rows for a "p"/"g" assertion, or
// the role manager bound to a "g" assertion.
type Assertion struct {
	Key    string
	Value  string
	Tokens []string // only meaningful for "r"/"p"/"g" sections

	Policy [][]string // only meaningful for "p"/"g" sections

	RM rbac.RoleManager // only meaningful for "g" sections

	// PriorityIndex is the index of a "priority" field within Tokens, or
	// -1 if the assertion has none. Used by SortPoliciesByPriority.
	PriorityIndex int
}

// AssertionMap indexes the assertions of one section by their key ("p",
// "p2", ...).
type AssertionMap map[string]*Assertion

// Model is the full parsed model: section short-name -> AssertionMap.
type Model map[string]AssertionMap

// NewModel returns an empty Model, populated purely by AddDef calls (used
// by callers building a model programmatically instead of from text).
func NewModel() Model {
	return Model{}
}

// NewModelFromFile parses the INI-like model text at path.
func NewModelFromFile(path string) (Model, error) {
	cfg, err := config.NewConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	return newModelFromConfig(cfg)
}

// NewModelFromString parses the INI-like model text in text.
func NewModelFromString(text string) (Model, error) {
	cfg, err := config.NewConfigFromText(text)
	if err != nil {
		return nil, err
	}
	return newModelFromConfig(cfg)
}

func newModelFromConfig(cfg *config.Config) (Model, error) {
	for _, header := range cfg.Sections() {
		if _, ok := sectionNameMap[header]; !ok {
			return nil, coreerrors.New(coreerrors.ModelSyntax, "unknown model section %q", header)
		}
	}

	m := NewModel()
	seenAny := false
	for header, short := range sectionNameMap {
		section := cfg.Section(header)
		for key, value := range section {
			if _, err := m.AddDef(short, key, value); err != nil {
				return nil, err
			}
			seenAny = true
		}
	}
	if !seenAny {
		return nil, coreerrors.New(coreerrors.ModelSyntax, "model text declares no recognized section")
	}
	for _, required := range []string{"r", "p", "e", "m"} {
		if _, ok := m[required]; !ok {
			return nil, coreerrors.New(coreerrors.ModelSyntax, "model is missing required section for %q", required)
		}
	}
	return m, nil
}

// AddDef registers one "key = value" line under section sec ("r", "p",
// "g", "e", or "m"). It is exported so callers can build a Model purely in
// code, as the teacher's in-memory model tests do.
func (m Model) AddDef(sec, key, value string) (bool, error) {
	if sec != "r" && sec != "p" && sec != "g" && sec != "e" && sec != "m" {
		return false, coreerrors.New(coreerrors.ModelSyntax, "unknown model section %q", sec)
	}
	assertion := &Assertion{Key: key, Value: value, PriorityIndex: -1}

	switch sec {
	case "r", "p":
		raw := splitTrim(value)
		assertion.Tokens = make([]string, len(raw))
		for i, t := range raw {
			assertion.Tokens[i] = key + "_" + t
			if t == "priority" {
				assertion.PriorityIndex = i
			}
		}
	case "g":
		raw := splitTrim(value)
		if len(raw) != 2 && len(raw) != 3 {
			return false, coreerrors.New(coreerrors.ModelSyntax, "role_definition %q must have arity 2 or 3, got %d", key, len(raw))
		}
		assertion.Tokens = raw
	case "e", "m":
		// Value carries the whole expression; no tokenization needed.
	}

	if _, ok := m[sec]; !ok {
		m[sec] = AssertionMap{}
	}
	m[sec][key] = assertion
	return true, nil
}

func splitTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// TokensIndex returns the token -> index map for assertion key of section
// sec, e.g. {"r_sub":0, "r_obj":1, "r_act":2} for ("r", "r"), or nil if
// there is no such assertion.
func (m Model) TokensIndex(sec, key string) map[string]int {
	a, ok := m[sec][key]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(a.Tokens))
	for i, t := range a.Tokens {
		out[t] = i
	}
	return out
}

// Copy returns a deep copy of m, safe to mutate independently (used by
// LoadPolicy to build the replacement model before swapping it in).
func (m Model) Copy() Model {
	out := NewModel()
	for sec, am := range m {
		newAM := AssertionMap{}
		for key, a := range am {
			na := &Assertion{
				Key:           a.Key,
				Value:         a.Value,
				PriorityIndex: a.PriorityIndex,
				RM:            a.RM,
			}
			na.Tokens = append([]string(nil), a.Tokens...)
			na.Policy = make([][]string, len(a.Policy))
			for i, rule := range a.Policy {
				na.Policy[i] = append([]string(nil), rule...)
			}
			newAM[key] = na
		}
		out[sec] = newAM
	}
	return out
}

// ClearPolicy empties every "p*"/"g*" assertion's Policy rows, leaving
// the definitions themselves intact.
func (m Model) ClearPolicy() {
	for _, sec := range []string{"p", "g"} {
		for _, a := range m[sec] {
			a.Policy = nil
		}
	}
}

// SetLogger threads logger through to every role manager already attached
// to a "g" assertion (model parsing itself does not log).
func (m Model) SetLogger(logger log.Logger) {
	for _, a := range m["g"] {
		if a.RM != nil {
			a.RM.SetLogger(logger)
		}
	}
}

// PrintModel logs the parsed model sections via logger.
func (m Model) PrintModel(logger log.Logger) {
	var lines [][]string
	for _, sec := range []string{"r", "p", "g", "e", "m"} {
		for key, a := range m[sec] {
			lines = append(lines, []string{sec, key, a.Value})
		}
	}
	logger.LogModel(lines)
}

// PrintPolicy logs the current policy tables via logger.
func (m Model) PrintPolicy(logger log.Logger) {
	out := map[string][][]string{}
	for _, sec := range []string{"p", "g"} {
		for key, a := range m[sec] {
			out[key] = a.Policy
		}
	}
	logger.LogPolicy(out)
}
