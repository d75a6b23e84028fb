// Package util collects the matcher-expression helpers: comment/whitespace
// normalization, the eval() detector, and the boolean built-in function
// table the Matcher Expression Evaluator dispatches into.
package util

import (
	"regexp"
	"strings"
)

// RemoveComments strips a trailing "# ..." line comment from a matcher or
// policy-effect expression, leaving everything before the first '#'.
func RemoveComments(s string) string {
	idx := strings.Index(s, "#")
	if idx == -1 {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[:idx])
}

// evalAssertionRegex matches a leading request/policy/role definition
// reference such as "r.sub", "p2.obj", or "g.sub" so EscapeAssertion can
// flatten the dot into the underscore form govaluate's parameter lookup
// expects ("r_sub", "p2_obj", "g_sub").
var evalAssertionRegex = regexp.MustCompile(`([rpg]\d*)\.([A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*)`)

// EscapeAssertion rewrites every "r.sub"/"p.sub"-style dotted identifier
// into the "r_sub"/"p_sub" form the expression evaluator's parameter
// lookup expects. Only the first dot is flattened, so "r.obj.Owner" (JSON
// field drill-down) becomes "r_obj.Owner", leaving the JSON path intact.
func EscapeAssertion(s string) string {
	return evalAssertionRegex.ReplaceAllStringFunc(s, func(m string) string {
		idx := strings.Index(m, ".")
		return m[:idx] + "_" + m[idx+1:]
	})
}

// HasEval reports whether a matcher or policy-effect expression invokes the
// eval() pseudo-function used for rule-embedded sub-expressions (ABAC
// sub_rule fields).
func HasEval(s string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], "eval(")
		if i == -1 {
			return false
		}
		pos := idx + i
		if pos == 0 || !isIdentByte(s[pos-1]) {
			return true
		}
		idx = pos + len("eval(")
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ReplaceEval substitutes the literal rule text bound to ruleName for every
// eval(ruleName) occurrence in expr.
func ReplaceEval(expr, ruleName, rule string) string {
	return strings.ReplaceAll(expr, "eval("+ruleName+")", "("+rule+")")
}

// IsNumeric reports whether s parses fully as an integer or float literal.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	seenDot := false
	seenDigit := false
	for i, c := range s {
		if c == '-' && i == 0 {
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
		seenDigit = true
	}
	return seenDigit
}

// SetSubtract returns the elements of a not present in b.
func SetSubtract(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, v := range b {
		exclude[v] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// ArrayEquals reports whether two string slices hold the same elements in
// the same order.
func ArrayEquals(a, b []string) bool {
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

// JoinSlice renders ptype followed by the rule's fields as a single
// ", "-separated line, the policy file's line format.
func JoinSlice(ptype string, rule []string) string {
	parts := append([]string{ptype}, rule...)
	return strings.Join(parts, ", ")
}
