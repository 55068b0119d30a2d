// Package transform is the IL-to-PHP transformer (C3): the only stateful
// component in the pipeline (spec §2). It owns a fresh State for the
// duration of exactly one Transform call — two transformations always use
// two independent State values (spec §5).
package transform

import (
	"github.com/jsphpgen/transpiler/errors"
	"github.com/jsphpgen/transpiler/phptype"
)

// State is the per-file analysis state described in spec §3.2. It is
// built by the pre-pass and mutated through the main pass; nothing here
// is safe to share across concurrent Transform calls, mirroring the
// per-call scope wudi-hey/compiler/context_compiler.go keeps for a single
// compile.
type State struct {
	// declaredConstants maps an original JS identifier to its emitted
	// SCREAMING_SNAKE_CASE PHP constant name.
	declaredConstants map[string]string

	// reassignedVariables holds every identifier ever the target of an
	// assignment or update expression anywhere in the file.
	reassignedVariables map[string]bool

	// moduleVariables holds file-scope names that are not constants;
	// referencing one from inside a function/method body triggers an
	// emitted `global $x;`.
	moduleVariables map[string]bool

	// arrayProperties holds names (original and snake-cased) known to
	// hold PHP arrays rather than objects.
	arrayProperties map[string]bool

	// closureVariables holds names bound to function/arrow expressions;
	// calls to such names emit `$f(...)`.
	closureVariables map[string]bool

	// classInstances holds names bound from `new X()`.
	classInstances map[string]bool

	// classFieldTypes maps property name to inferred type.
	classFieldTypes map[string]*phptype.Type

	// variableTypes is the current scope's variable->type map.
	variableTypes map[string]*phptype.Type
	scopeStack    []map[string]*phptype.Type

	// frameworkClasses accumulates base classes needing stub generation.
	frameworkClasses map[string]bool

	// stringTypedNames tracks identifiers inferred as string-typed, used
	// by the `+`-to-`.` transitivity rule.
	stringTypedNames map[string]bool

	reporter *errors.Reporter
	opts     Options
}

// NewState builds an empty analysis state for one Transform call.
func NewState(opts Options) *State {
	return &State{
		declaredConstants:    map[string]string{},
		reassignedVariables:  map[string]bool{},
		moduleVariables:      map[string]bool{},
		arrayProperties:      map[string]bool{},
		closureVariables:     map[string]bool{},
		classInstances:       map[string]bool{},
		classFieldTypes:      map[string]*phptype.Type{},
		variableTypes:        map[string]*phptype.Type{},
		frameworkClasses:     map[string]bool{},
		stringTypedNames:     map[string]bool{},
		reporter:             errors.NewReporter(),
		opts:                 opts,
	}
}

func (s *State) pushScope() {
	s.scopeStack = append(s.scopeStack, s.variableTypes)
	s.variableTypes = map[string]*phptype.Type{}
}

func (s *State) popScope() {
	n := len(s.scopeStack)
	s.variableTypes = s.scopeStack[n-1]
	s.scopeStack = s.scopeStack[:n-1]
}

// markArray records name (and its snake-cased form) as array-typed.
// Monotonic: once true it is never unset (spec §4.3.4).
func (s *State) markArray(name string) {
	s.arrayProperties[name] = true
	s.arrayProperties[SnakeCase(name)] = true
}

func (s *State) isArray(name string) bool {
	return s.arrayProperties[name] || s.arrayProperties[SnakeCase(name)]
}

func (s *State) markString(name string) { s.stringTypedNames[name] = true }
func (s *State) isStringTyped(name string) bool {
	return s.stringTypedNames[name]
}
