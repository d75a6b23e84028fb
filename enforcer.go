// Copyright 2017 The casbin Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package authcore is a general-purpose policy enforcement library: one
// engine realizing ACL, RBAC (with or without domains/hierarchy), ABAC,
// and priority/deny-override schemes by varying only model text and
// policy data.
package authcore

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/Knetic/govaluate"
	"github.com/tidwall/gjson"

	coreerrors "github.com/riftlabs/authcore/errors"
	"github.com/riftlabs/authcore/effector"
	"github.com/riftlabs/authcore/log"
	"github.com/riftlabs/authcore/model"
	"github.com/riftlabs/authcore/persist"
	"github.com/riftlabs/authcore/persist/fileadapter"
	"github.com/riftlabs/authcore/rbac"
	"github.com/riftlabs/authcore/rbac/defaultrolemanager"
	"github.com/riftlabs/authcore/util"
)

// defaultMaxHierarchyLevel bounds role-manager transitive search depth
// (spec.md §3 "Role Graph").
const defaultMaxHierarchyLevel = 10

// Enforcer is the stateful object holding model, policy store, role
// manager(s), and flags; it answers authorization decisions and exposes
// the management surface that mutates policy (spec.md §4.4, §4.5).
type Enforcer struct {
	modelPath string
	model     model.Model
	fm        model.FunctionMap
	eft       effector.Effector

	adapter    persist.Adapter
	watcher    persist.Watcher
	dispatcher persist.Dispatcher
	rmMap      map[string]rbac.RoleManager
	matcherMap sync.Map

	enabled              bool
	autoSave             bool
	autoBuildRoleLinks   bool
	autoNotifyWatcher    bool
	autoNotifyDispatcher bool
	acceptJSONRequest    bool

	logger log.Logger
}

// EnforceContext selects which suffixed request/policy/effect/matcher
// definitions an Enforce call binds against, letting one model declare
// several independent rule sets (e.g. "r"/"p"/"e"/"m" and "r2"/"p2"/"e2"/
// "m2"), per SPEC_FULL.md's EnforceContext supplement.
type EnforceContext struct {
	RType string
	PType string
	EType string
	MType string
}

// GetCacheKey returns a stable identity for the matcher-expression cache.
func (c EnforceContext) GetCacheKey() string {
	return "EnforceContext{" + c.RType + "-" + c.PType + "-" + c.EType + "-" + c.MType + "}"
}

// NewEnforceContext builds the suffixed EnforceContext for suffix (e.g.
// "2" selects r2/p2/e2/m2).
func NewEnforceContext(suffix string) EnforceContext {
	return EnforceContext{
		RType: "r" + suffix,
		PType: "p" + suffix,
		EType: "e" + suffix,
		MType: "m" + suffix,
	}
}

// NewEnforcer builds an Enforcer from a model/policy file pair, a
// model/adapter pair, or a bare model (no persistence). Accepted call
// shapes: NewEnforcer(modelPath, policyPath), NewEnforcer(modelPath,
// adapter), NewEnforcer(model.Model, adapter), NewEnforcer(model.Model).
func NewEnforcer(params ...interface{}) (*Enforcer, error) {
	e := &Enforcer{logger: log.NewDefaultLogger()}

	switch len(params) {
	case 0:
		return e, nil
	case 1:
		switch p0 := params[0].(type) {
		case string:
			if err := e.InitWithFile(p0, ""); err != nil {
				return nil, err
			}
		case model.Model:
			if err := e.InitWithModelAndAdapter(p0, nil); err != nil {
				return nil, err
			}
		default:
			return nil, coreerrors.New(coreerrors.ModelSyntax, "invalid parameter for NewEnforcer: %T", p0)
		}
	case 2:
		switch p0 := params[0].(type) {
		case string:
			switch p1 := params[1].(type) {
			case string:
				if err := e.InitWithFile(p0, p1); err != nil {
					return nil, err
				}
			case persist.Adapter:
				if err := e.InitWithAdapter(p0, p1); err != nil {
					return nil, err
				}
			default:
				return nil, coreerrors.New(coreerrors.ModelSyntax, "NewEnforcer(modelPath, x) needs a policy path or an adapter, got %T", p1)
			}
		case model.Model:
			adapter, _ := params[1].(persist.Adapter)
			if err := e.InitWithModelAndAdapter(p0, adapter); err != nil {
				return nil, err
			}
		default:
			return nil, coreerrors.New(coreerrors.ModelSyntax, "invalid parameters for NewEnforcer")
		}
	default:
		return nil, coreerrors.New(coreerrors.ModelSyntax, "invalid parameters for NewEnforcer")
	}

	return e, nil
}

// InitWithFile initializes an enforcer from a model file and a policy
// file (the bundled fileadapter.Adapter).
func (e *Enforcer) InitWithFile(modelPath, policyPath string) error {
	a := fileadapter.NewAdapter(policyPath)
	return e.InitWithAdapter(modelPath, a)
}

// InitWithAdapter initializes an enforcer from a model file and an
// arbitrary adapter.
func (e *Enforcer) InitWithAdapter(modelPath string, adapter persist.Adapter) error {
	m, err := model.NewModelFromFile(modelPath)
	if err != nil {
		return err
	}
	if err := e.InitWithModelAndAdapter(m, adapter); err != nil {
		return err
	}
	e.modelPath = modelPath
	return nil
}

// InitWithModelAndAdapter initializes an enforcer from an already-parsed
// model and an adapter (nil for no persistence).
func (e *Enforcer) InitWithModelAndAdapter(m model.Model, adapter persist.Adapter) error {
	e.adapter = adapter
	e.model = m
	m.SetLogger(e.logger)
	m.PrintModel(e.logger)
	e.fm = model.LoadFunctionMap()

	e.initialize()

	fa, isFiltered := e.adapter.(persist.FilteredAdapter)
	if e.adapter != nil && (!isFiltered || !fa.IsFiltered()) {
		if err := e.LoadPolicy(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Enforcer) initialize() {
	e.rmMap = map[string]rbac.RoleManager{}
	e.eft = effector.NewDefaultEffector()
	e.watcher = nil
	e.matcherMap = sync.Map{}

	e.enabled = true
	e.autoSave = true
	e.autoBuildRoleLinks = true
	e.autoNotifyWatcher = true
	e.autoNotifyDispatcher = true
	e.initRoleManagers()
}

// initRoleManagers ensures every "g*" section in the model has a role
// manager registered in rmMap, creating a defaultrolemanager.RoleManager
// the first time a gtype is seen.
func (e *Enforcer) initRoleManagers() {
	for gtype := range e.model["g"] {
		if rm, ok := e.rmMap[gtype]; ok {
			_ = rm.Clear()
			continue
		}
		rm := defaultrolemanager.NewRoleManager(defaultMaxHierarchyLevel)
		rm.SetLogger(e.logger)
		e.rmMap[gtype] = rm
	}
}

// SetLogger swaps the enforcer's logger, propagating it to the model and
// every registered role manager.
func (e *Enforcer) SetLogger(logger log.Logger) {
	e.logger = logger
	e.model.SetLogger(logger)
	for _, rm := range e.rmMap {
		rm.SetLogger(logger)
	}
}

// LoadModel reloads the model from its source file. Because policy data
// lives on the model's assertions, the policy must be reloaded afterward
// with LoadPolicy.
func (e *Enforcer) LoadModel() error {
	m, err := model.NewModelFromFile(e.modelPath)
	if err != nil {
		return err
	}
	e.model = m
	e.model.SetLogger(e.logger)
	e.model.PrintModel(e.logger)
	e.fm = model.LoadFunctionMap()
	e.initialize()
	return nil
}

// GetModel returns the current model.
func (e *Enforcer) GetModel() model.Model { return e.model }

// SetModel replaces the current model (and discards whatever policy and
// role graphs were attached to the previous one).
func (e *Enforcer) SetModel(m model.Model) {
	e.model = m
	e.fm = model.LoadFunctionMap()
	e.model.SetLogger(e.logger)
	e.initialize()
}

// GetAdapter returns the current adapter.
func (e *Enforcer) GetAdapter() persist.Adapter { return e.adapter }

// SetAdapter replaces the current adapter.
func (e *Enforcer) SetAdapter(adapter persist.Adapter) { e.adapter = adapter }

// SetWatcher registers watcher and wires its update callback to
// LoadPolicy, unless watcher implements WatcherEx (whose callback the
// host must wire itself, since WatcherEx carries structured payloads the
// generic callback shape cannot express).
func (e *Enforcer) SetWatcher(watcher persist.Watcher) error {
	e.watcher = watcher
	if _, ok := watcher.(persist.WatcherEx); ok {
		return nil
	}
	return watcher.SetUpdateCallback(func(string) { _ = e.LoadPolicy() })
}

// SetDispatcher registers dispatcher.
func (e *Enforcer) SetDispatcher(dispatcher persist.Dispatcher) { e.dispatcher = dispatcher }

// GetRoleManager returns the role manager for the default "g" gtype.
func (e *Enforcer) GetRoleManager() rbac.RoleManager { return e.rmMap["g"] }

// GetNamedRoleManager returns the role manager for the named gtype.
func (e *Enforcer) GetNamedRoleManager(gtype string) rbac.RoleManager { return e.rmMap[gtype] }

// SetRoleManager sets the role manager for the default "g" gtype.
func (e *Enforcer) SetRoleManager(rm rbac.RoleManager) {
	e.invalidateMatcherMap()
	e.rmMap["g"] = rm
}

// SetNamedRoleManager sets the role manager for the named gtype.
func (e *Enforcer) SetNamedRoleManager(gtype string, rm rbac.RoleManager) {
	e.invalidateMatcherMap()
	e.rmMap[gtype] = rm
}

// SetEffector replaces the effect aggregator.
func (e *Enforcer) SetEffector(eft effector.Effector) { e.eft = eft }

// ClearPolicy clears every policy and grouping-policy rule, leaving the
// model's definitions intact.
func (e *Enforcer) ClearPolicy() {
	e.invalidateMatcherMap()
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		_ = e.dispatcher.ClearPolicy()
		return
	}
	e.model.ClearPolicy()
}

// LoadPolicy reloads the policy from the adapter, replacing the in-memory
// store and role graphs atomically: a fresh model copy is populated and
// only swapped in once loading, sorting, and role-link building succeed.
func (e *Enforcer) LoadPolicy() error {
	e.invalidateMatcherMap()

	newModel := e.model.Copy()
	newModel.ClearPolicy()

	if e.adapter != nil {
		if err := e.adapter.LoadPolicy(newModel); err != nil {
			if kind, ok := coreerrors.KindOf(err); !ok || kind != coreerrors.AdapterIO {
				return err
			}
		}
	}

	if err := newModel.SortPoliciesByPriority(); err != nil {
		return err
	}

	if e.autoBuildRoleLinks {
		for _, rm := range e.rmMap {
			if err := rm.Clear(); err != nil {
				return err
			}
		}
		if err := newModel.BuildRoleLinks(e.rmMap); err != nil {
			return err
		}
	}
	e.model = newModel
	return nil
}

func (e *Enforcer) loadFilteredPolicy(filter interface{}) error {
	e.invalidateMatcherMap()

	filteredAdapter, ok := e.adapter.(persist.FilteredAdapter)
	if !ok {
		return coreerrors.New(coreerrors.UnsupportedByAdapter, "filtered policies are not supported by this adapter")
	}
	if err := filteredAdapter.LoadFilteredPolicy(e.model, filter); err != nil {
		return err
	}
	if err := e.model.SortPoliciesByPriority(); err != nil {
		return err
	}
	e.initRoleManagers()
	e.model.PrintPolicy(e.logger)
	if e.autoBuildRoleLinks {
		if err := e.BuildRoleLinks(); err != nil {
			return err
		}
	}
	return nil
}

// LoadFilteredPolicy clears the current policy and loads only the rules
// matching filter (spec.md §4.3 "Filtered loading"), requires a
// persist.FilteredAdapter.
func (e *Enforcer) LoadFilteredPolicy(filter interface{}) error {
	e.model.ClearPolicy()
	return e.loadFilteredPolicy(filter)
}

// LoadIncrementalFilteredPolicy appends a filtered policy load onto
// whatever is already loaded, instead of clearing first.
func (e *Enforcer) LoadIncrementalFilteredPolicy(filter interface{}) error {
	return e.loadFilteredPolicy(filter)
}

// IsFiltered reports whether the store is in filtered mode.
func (e *Enforcer) IsFiltered() bool {
	fa, ok := e.adapter.(persist.FilteredAdapter)
	return ok && fa.IsFiltered()
}

// SavePolicy writes the current policy back through the adapter,
// rejecting the call outright while the store is filtered (spec.md §4.3,
// §8 "Filtered-mode invariant").
func (e *Enforcer) SavePolicy() error {
	if e.IsFiltered() {
		return coreerrors.New(coreerrors.CannotSaveFiltered, "cannot save a filtered policy")
	}
	if e.adapter == nil {
		return coreerrors.New(coreerrors.AdapterIO, "no adapter configured")
	}
	if err := e.adapter.SavePolicy(e.model); err != nil {
		return err
	}
	if e.watcher == nil {
		return nil
	}
	if ex, ok := e.watcher.(persist.WatcherEx); ok {
		return ex.UpdateForSavePolicy(e.model)
	}
	return e.watcher.Update()
}

// EnableEnforce toggles whether Enforce actually evaluates policy; while
// disabled, every request is allowed (spec.md §4.4 step 1).
func (e *Enforcer) EnableEnforce(enable bool) { e.enabled = enable }

// EnableLog toggles whether the logger emits anything.
func (e *Enforcer) EnableLog(enable bool) { e.logger.EnableLog(enable) }

// IsLogEnabled reports the logger's current toggle state.
func (e *Enforcer) IsLogEnabled() bool { return e.logger.IsEnabled() }

// EnableAutoNotifyWatcher toggles whether mutations notify the watcher.
func (e *Enforcer) EnableAutoNotifyWatcher(enable bool) { e.autoNotifyWatcher = enable }

// EnableAutoNotifyDispatcher toggles whether mutations notify the
// dispatcher.
func (e *Enforcer) EnableAutoNotifyDispatcher(enable bool) { e.autoNotifyDispatcher = enable }

// EnableAutoSave toggles whether mutations persist through the adapter.
func (e *Enforcer) EnableAutoSave(enable bool) { e.autoSave = enable }

// EnableAutoBuildRoleLinks toggles whether grouping-policy mutations
// rebuild the affected role manager.
func (e *Enforcer) EnableAutoBuildRoleLinks(enable bool) { e.autoBuildRoleLinks = enable }

// EnableAcceptJSONRequest toggles JSON-field addressing in matchers
// (r.sub.Age-style paths into a JSON-valued request field).
func (e *Enforcer) EnableAcceptJSONRequest(enable bool) { e.acceptJSONRequest = enable }

// BuildRoleLinks rebuilds every role manager's graph from the current
// grouping-policy rules.
func (e *Enforcer) BuildRoleLinks() error {
	for _, rm := range e.rmMap {
		if err := rm.Clear(); err != nil {
			return err
		}
	}
	return e.model.BuildRoleLinks(e.rmMap)
}

// BuildIncrementalRoleLinks applies a single grouping-policy mutation to
// the affected role manager without a full rebuild.
func (e *Enforcer) BuildIncrementalRoleLinks(op model.PolicyOp, gtype string, rules [][]string) error {
	e.invalidateMatcherMap()
	return e.model.BuildIncrementalRoleLinks(e.rmMap, op, gtype, rules)
}

func (e *Enforcer) invalidateMatcherMap() { e.matcherMap = sync.Map{} }

// enforceParameters implements govaluate.Parameters, resolving "r_sub"/
// "p_sub"-style flattened identifiers (see util.EscapeAssertion) against
// the bound request and policy-rule values.
type enforceParameters struct {
	rTokens map[string]int
	rVals   []interface{}
	pTokens map[string]int
	pVals   []string
}

func (p enforceParameters) Get(name string) (interface{}, error) {
	switch {
	case strings.HasPrefix(name, "p"):
		i, ok := p.pTokens[name]
		if !ok {
			return nil, fmt.Errorf("no parameter %q found", name)
		}
		return p.pVals[i], nil
	case strings.HasPrefix(name, "r"):
		i, ok := p.rTokens[name]
		if !ok {
			return nil, fmt.Errorf("no parameter %q found", name)
		}
		return p.rVals[i], nil
	default:
		return nil, fmt.Errorf("no parameter %q found", name)
	}
}

var requestObjectRegex = regexp.MustCompile(`r[_.][A-Za-z_0-9]+\.[A-Za-z_0-9.]+[A-Za-z_0-9]`)
var requestObjectRegexPrefix = regexp.MustCompile(`r[_.][A-Za-z_0-9]+\.`)

// requestJSONReplace rewrites "r.sub.Age"-style JSON field access into the
// literal value found at that JSON path within the bound JSON-string
// request field, so a plain comparison operator can consume it.
func requestJSONReplace(str string, rTokens map[string]int, rVals []interface{}) string {
	matches := requestObjectRegex.FindStringSubmatch(str)
	for _, m := range matches {
		prefix := requestObjectRegexPrefix.FindString(m)
		jsonPath := strings.TrimPrefix(m, prefix)
		idx, ok := rTokens[prefix[:len(prefix)-1]]
		if !ok {
			continue
		}
		jsonStr, ok := rVals[idx].(string)
		if !ok {
			continue
		}
		newStr := gjson.Get(jsonStr, jsonPath).String()
		if !util.IsNumeric(newStr) {
			newStr = `"` + newStr + `"`
		}
		str = strings.ReplaceAll(str, m, newStr)
	}
	return str
}

func (e *Enforcer) getOrCompileMatcher(cacheable bool, expr string, functions map[string]govaluate.ExpressionFunction) (*govaluate.EvaluableExpression, error) {
	if cacheable {
		if cached, ok := e.matcherMap.Load(expr); ok {
			return cached.(*govaluate.EvaluableExpression), nil
		}
	}
	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(expr, functions)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.MatcherSyntax, err, "parsing matcher %q", expr)
	}
	if cacheable {
		e.matcherMap.Store(expr, compiled)
	}
	return compiled, nil
}

// enforce is the enforcement pipeline (spec.md §4.4): bind request,
// iterate candidate rules, evaluate the matcher, aggregate per-rule
// (matched, eft) pairs into a decision via the effect expression.
func (e *Enforcer) enforce(matcher string, explains *[]string, rvals ...interface{}) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during enforce: %v\n%s", r, debug.Stack())
		}
	}()

	if !e.enabled {
		return true, nil
	}

	functions := e.fm.GetFunctions()
	for gtype := range e.model["g"] {
		rm := e.rmMap[gtype]
		functions[gtype] = govaluate.ExpressionFunction(util.GenerateGFunction(func(name1, name2 string, domain ...string) (bool, error) {
			if rm == nil {
				return false, nil
			}
			return rm.HasLink(name1, name2, domain...)
		}))
	}

	rType, pType, eType, mType := "r", "p", "e", "m"
	if len(rvals) != 0 {
		if ctx, isCtx := rvals[0].(EnforceContext); isCtx {
			rType, pType, eType, mType = ctx.RType, ctx.PType, ctx.EType, ctx.MType
			rvals = rvals[1:]
		}
	}

	rAssertion, ok := e.model["r"][rType]
	if !ok {
		return false, coreerrors.New(coreerrors.ModelSyntax, "model has no request_definition %q", rType)
	}
	pAssertion, ok := e.model["p"][pType]
	if !ok {
		return false, coreerrors.New(coreerrors.ModelSyntax, "model has no policy_definition %q", pType)
	}
	eAssertion, ok := e.model["e"][eType]
	if !ok {
		return false, coreerrors.New(coreerrors.ModelSyntax, "model has no policy_effect %q", eType)
	}

	var expr string
	useCache := matcher == ""
	if useCache {
		mAssertion, ok := e.model["m"][mType]
		if !ok {
			return false, coreerrors.New(coreerrors.ModelSyntax, "model has no matchers %q", mType)
		}
		expr = util.EscapeAssertion(util.RemoveComments(mAssertion.Value))
	} else {
		expr = util.EscapeAssertion(util.RemoveComments(matcher))
	}

	rTokens := make(map[string]int, len(rAssertion.Tokens))
	for i, t := range rAssertion.Tokens {
		rTokens[t] = i
	}
	pTokens := make(map[string]int, len(pAssertion.Tokens))
	for i, t := range pAssertion.Tokens {
		pTokens[t] = i
	}

	if len(rAssertion.Tokens) != len(rvals) {
		return false, coreerrors.New(coreerrors.MatcherRuntime, "invalid request size: expected %d, got %d", len(rAssertion.Tokens), len(rvals))
	}

	if e.acceptJSONRequest {
		expr = requestJSONReplace(expr, rTokens, rvals)
	}

	params := enforceParameters{rTokens: rTokens, rVals: rvals, pTokens: pTokens}

	hasEval := util.HasEval(expr)
	if hasEval {
		functions["eval"] = e.generateEvalFunction(functions, &params)
	}

	expression, err := e.getOrCompileMatcher(useCache && !hasEval, expr, functions)
	if err != nil {
		return false, err
	}

	var policyEffects []effector.Effect
	var results []float64
	var effect effector.Effect
	explainIndex := -1

	policyLen := len(pAssertion.Policy)
	if policyLen != 0 && strings.Contains(expr, pType+"_") {
		policyEffects = make([]effector.Effect, policyLen)
		results = make([]float64, policyLen)

		for i, pvals := range pAssertion.Policy {
			if len(pAssertion.Tokens) != len(pvals) {
				return false, coreerrors.New(coreerrors.ArityMismatch, "invalid policy size: expected %d, got %d", len(pAssertion.Tokens), len(pvals))
			}
			if e.acceptJSONRequest {
				copied := make([]string, len(pvals))
				for j, pv := range pvals {
					copied[j] = requestJSONReplace(util.EscapeAssertion(pv), rTokens, rvals)
				}
				params.pVals = copied
			} else {
				params.pVals = pvals
			}

			result, evalErr := expression.Eval(params)
			if evalErr != nil {
				return false, coreerrors.Wrap(coreerrors.MatcherRuntime, evalErr, "evaluating matcher %q", expr)
			}

			results[i] = 0
			switch r := result.(type) {
			case bool:
				if r {
					results[i] = 1
				}
			case float64:
				if r != 0 {
					results[i] = 1
				}
			default:
				return false, coreerrors.New(coreerrors.MatcherRuntime, "matcher result must be bool or number, got %T", result)
			}

			if idx, ok := pTokens[pType+"_eft"]; ok {
				switch pvals[idx] {
				case "allow":
					policyEffects[i] = effector.Allow
				case "deny":
					policyEffects[i] = effector.Deny
				default:
					policyEffects[i] = effector.Indeterminate
				}
			} else {
				policyEffects[i] = effector.Allow
			}

			effect, explainIndex, err = e.eft.MergeEffects(eAssertion.Value, policyEffects, results, i, policyLen)
			if err != nil {
				return false, err
			}
			if effect != effector.Indeterminate {
				break
			}
		}
	} else {
		if hasEval && policyLen == 0 {
			return false, coreerrors.New(coreerrors.MatcherRuntime, "eval() used in matcher but policy type %q has no rules", pType)
		}
		policyEffects = []effector.Effect{0}
		results = []float64{1}
		params.pVals = make([]string, len(pTokens))

		result, evalErr := expression.Eval(params)
		if evalErr != nil {
			return false, coreerrors.Wrap(coreerrors.MatcherRuntime, evalErr, "evaluating matcher %q", expr)
		}
		resultBool, ok := result.(bool)
		if !ok {
			return false, coreerrors.New(coreerrors.MatcherRuntime, "matcher result must be bool, got %T", result)
		}
		if resultBool {
			policyEffects[0] = effector.Allow
		} else {
			policyEffects[0] = effector.Indeterminate
		}
		effect, explainIndex, err = e.eft.MergeEffects(eAssertion.Value, policyEffects, results, 0, 1)
		if err != nil {
			return false, err
		}
	}

	var logExplains [][]string
	if explains != nil {
		if len(*explains) > 0 {
			logExplains = append(logExplains, *explains)
		}
		if explainIndex != -1 && explainIndex < len(pAssertion.Policy) {
			*explains = pAssertion.Policy[explainIndex]
			logExplains = append(logExplains, *explains)
		}
	}

	result := effect == effector.Allow
	e.logger.LogEnforce(expr, rvals, result, logExplains)
	return result, nil
}

func (e *Enforcer) generateEvalFunction(functions map[string]govaluate.ExpressionFunction, params *enforceParameters) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("eval(subrule) expects 1 argument, got %d", len(args))
		}
		rule, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("argument of eval(subrule) must be a string")
		}
		rule = util.EscapeAssertion(rule)
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(rule, functions)
		if err != nil {
			return nil, coreerrors.Wrap(coreerrors.MatcherSyntax, err, "parsing eval() sub-rule %q", rule)
		}
		return expr.Eval(*params)
	}
}

// Enforce decides whether a request is allowed, using the model's default
// matcher ("m"). Input is usually (sub, obj, act).
func (e *Enforcer) Enforce(rvals ...interface{}) (bool, error) {
	return e.enforce("", nil, rvals...)
}

// EnforceWithMatcher decides using matcher instead of the model's default.
func (e *Enforcer) EnforceWithMatcher(matcher string, rvals ...interface{}) (bool, error) {
	return e.enforce(matcher, nil, rvals...)
}

// EnforceEx decides and additionally returns the rule(s) that explain the
// decision (spec.md §4.4 step 7).
func (e *Enforcer) EnforceEx(rvals ...interface{}) (bool, []string, error) {
	explain := []string{}
	result, err := e.enforce("", &explain, rvals...)
	return result, explain, err
}

// EnforceExWithMatcher is EnforceEx with a custom matcher.
func (e *Enforcer) EnforceExWithMatcher(matcher string, rvals ...interface{}) (bool, []string, error) {
	explain := []string{}
	result, err := e.enforce(matcher, &explain, rvals...)
	return result, explain, err
}

// BatchEnforce applies Enforce to each request, preserving input order
// (spec.md §4.4 "Batch enforcement").
func (e *Enforcer) BatchEnforce(requests [][]interface{}) ([]bool, error) {
	results := make([]bool, len(requests))
	for i, req := range requests {
		result, err := e.enforce("", nil, req...)
		if err != nil {
			return nil, err
		}
		results[i] = result
	}
	return results, nil
}

// BatchEnforceWithMatcher is BatchEnforce with a custom matcher.
func (e *Enforcer) BatchEnforceWithMatcher(matcher string, requests [][]interface{}) ([]bool, error) {
	results := make([]bool, len(requests))
	for i, req := range requests {
		result, err := e.enforce(matcher, nil, req...)
		if err != nil {
			return nil, err
		}
		results[i] = result
	}
	return results, nil
}

// AddFunction registers a custom function into the matcher function
// table (spec.md §4.1a).
func (e *Enforcer) AddFunction(name string, fn govaluate.ExpressionFunction) {
	e.fm.AddFunction(name, fn)
}

// AddNamedMatchingFunc registers a custom name-equality function on the
// named gtype's role manager.
func (e *Enforcer) AddNamedMatchingFunc(gtype, name string, fn rbac.MatchingFunc) bool {
	rm, ok := e.rmMap[gtype]
	if !ok {
		return false
	}
	rm.AddMatchingFunc(name, fn)
	return true
}

// AddNamedDomainMatchingFunc registers a custom domain-equality function
// on the named gtype's role manager (spec.md §4.2 "custom domain-matching
// function").
func (e *Enforcer) AddNamedDomainMatchingFunc(gtype, name string, fn rbac.MatchingFunc) bool {
	rm, ok := e.rmMap[gtype]
	if !ok {
		return false
	}
	rm.AddDomainMatchingFunc(name, fn)
	return true
}
