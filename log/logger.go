// Package log defines the pluggable logging contract the enforcer writes
// through. Hosts supply their own Logger (wrapping zap, zerolog, whatever
// they already use); the core only depends on this narrow interface.
package log

// Logger is implemented by anything the Enforcer can report activity to.
type Logger interface {
	// EnableLog toggles whether the logger actually emits anything.
	EnableLog(bool)
	// IsEnabled reports the current toggle state.
	IsEnabled() bool

	// LogModel logs the parsed model sections, once, after a (re)load.
	LogModel(model [][]string)
	// LogEnforce logs one enforcement decision: the matcher text, the
	// bound request values, the resulting decision, and the rules that
	// explain it.
	LogEnforce(matcher string, request []interface{}, result bool, explains [][]string)
	// LogPolicy logs the policy tables, once, after a (re)load.
	LogPolicy(policy map[string][][]string)
	// LogRole logs the role-inheritance rules built into the role manager.
	LogRole(roles []string)
	// LogError logs a failure surfaced by the core, with freeform context.
	LogError(err error, msg ...string)
}
