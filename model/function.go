package model

import (
	"github.com/Knetic/govaluate"

	"github.com/riftlabs/authcore/util"
)

// FunctionMap is the registered, pluggable function table spec.md §4.1a
// describes: name -> implementation, resolved at matcher-evaluation time.
type FunctionMap struct {
	fns map[string]govaluate.ExpressionFunction
}

// AddFunction registers fn under name, overwriting any previous
// registration (used both for built-ins and host-supplied functions).
func (fm *FunctionMap) AddFunction(name string, fn govaluate.ExpressionFunction) {
	fm.fns[name] = fn
}

// RemoveFunction unregisters name, if present.
func (fm *FunctionMap) RemoveFunction(name string) {
	delete(fm.fns, name)
}

// GetFunctions returns a fresh copy of the table, safe for a caller to add
// request-scoped functions (like a "g" role-manager closure) into without
// mutating the shared table.
func (fm *FunctionMap) GetFunctions() map[string]govaluate.ExpressionFunction {
	out := make(map[string]govaluate.ExpressionFunction, len(fm.fns))
	for k, v := range fm.fns {
		out[k] = v
	}
	return out
}

// LoadFunctionMap returns the built-in function table (spec.md §4.1):
// keyMatch family, regexMatch, ipMatch family, globMatch family, and
// timeMatch.
func LoadFunctionMap() FunctionMap {
	fm := FunctionMap{fns: map[string]govaluate.ExpressionFunction{}}

	fm.AddFunction("keyMatch", wrap2(util.KeyMatch))
	fm.AddFunction("keyMatch2", wrap2(util.KeyMatch2))
	fm.AddFunction("keyMatch3", wrap2(util.KeyMatch3))
	fm.AddFunction("keyMatch4", wrap2(util.KeyMatch4))
	fm.AddFunction("keyMatch5", wrap2(util.KeyMatch5))
	fm.AddFunction("regexMatch", wrap2(util.RegexMatch))
	fm.AddFunction("ipMatch", wrap2(util.IPMatch))
	fm.AddFunction("ipMatch2", wrap2(util.IPMatch2))
	fm.AddFunction("ipMatch3", wrap2(util.IPMatch3))
	fm.AddFunction("globMatch", wrap2(util.GlobMatch))
	fm.AddFunction("globMatch2", wrap2(util.GlobMatch2))
	fm.AddFunction("globMatch3", wrap2(util.GlobMatch3))
	fm.AddFunction("timeMatch", wrap3(util.TimeMatch))

	return fm
}

func wrap2(fn func(a, b string) bool) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if err := util.ValidateVariadicArgs(2, args...); err != nil {
			return false, err
		}
		return fn(args[0].(string), args[1].(string)), nil
	}
}

func wrap3(fn func(a, b, c string) bool) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if err := util.ValidateVariadicArgs(3, args...); err != nil {
			return false, err
		}
		return fn(args[0].(string), args[1].(string), args[2].(string)), nil
	}
}
