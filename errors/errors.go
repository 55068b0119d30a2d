// Package errors implements the three-category diagnostic model of the
// transpiler: invalid input, translation failure, and best-effort
// lowering warnings (spec §7).
package errors

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Type classifies a diagnostic raised during a transform/emit run.
type Type int

const (
	// InvalidInput means the IL AST itself is malformed (missing root,
	// wrong shape) — the run never started.
	InvalidInput Type = iota
	// TranslationFailure means a panic escaped the transformer or emitter;
	// the partial output is discarded.
	TranslationFailure
	// UnhandledNode is a best-effort-lowering warning: an IL node kind the
	// transformer does not know produced an UNHANDLED_EXPRESSION marker.
	UnhandledNode
)

func (t Type) String() string {
	switch t {
	case InvalidInput:
		return "invalid input"
	case TranslationFailure:
		return "translation failure"
	case UnhandledNode:
		return "unhandled node"
	default:
		return "unknown"
	}
}

// Diagnostic is one accumulated warning or error. Every diagnostic carries
// a stable correlation ID so a caller can tie a PHP-lint failure back to
// the exact warning that predicted it.
type Diagnostic struct {
	ID      string
	Type    Type
	Message string
	NodeKind string
}

func newDiagnostic(t Type, nodeKind, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		ID:       uuid.New().String(),
		Type:     t,
		Message:  fmt.Sprintf(format, args...),
		NodeKind: nodeKind,
	}
}

// NewUnhandledNode builds a diagnostic for an IL node kind the transformer
// does not know how to lower.
func NewUnhandledNode(nodeKind string) *Diagnostic {
	return newDiagnostic(UnhandledNode, nodeKind, "unhandled IL node kind %q; emitted UNHANDLED_EXPRESSION_%s", nodeKind, nodeKind)
}

// NewInvalidInput builds a diagnostic for a malformed IL AST.
func NewInvalidInput(message string) *Diagnostic {
	return newDiagnostic(InvalidInput, "", "%s", message)
}

// NewTranslationFailure builds a diagnostic for a recovered panic.
func NewTranslationFailure(message string) *Diagnostic {
	return newDiagnostic(TranslationFailure, "", "%s", message)
}

// String renders the diagnostic the way a caller would print it to a log.
func (d *Diagnostic) String() string {
	if d.NodeKind != "" {
		return fmt.Sprintf("[%s] %s (%s): %s", d.ID, d.Type, d.NodeKind, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.ID, d.Type, d.Message)
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped directly.
func (d *Diagnostic) Error() string { return d.String() }

// List accumulates diagnostics across one transform/emit run. It is never
// shared between concurrent runs (spec §5: one transform invocation owns
// its analysis state exclusively).
type List []*Diagnostic

// Add appends a diagnostic.
func (l *List) Add(d *Diagnostic) { *l = append(*l, d) }

// HasErrors reports whether any non-warning diagnostic was recorded.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Type != UnhandledNode {
			return true
		}
	}
	return false
}

// Messages renders each diagnostic's bare message, the shape spec.md's
// `Result.warnings: [string]` literally describes. Callers that only want
// the original bare-string contract can use this instead of the full
// Diagnostic value.
func (l List) Messages() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.Message
	}
	return out
}

// String renders every diagnostic, one per line.
func (l List) String() string {
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.String())
	}
	return b.String()
}

// Reporter is a small accumulator handed to the transformer and emitter so
// neither needs to know about the final Result shape.
type Reporter struct {
	diagnostics List
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter { return &Reporter{} }

// ReportUnhandledNode records a best-effort-lowering warning.
func (r *Reporter) ReportUnhandledNode(nodeKind string) {
	r.diagnostics.Add(NewUnhandledNode(nodeKind))
}

// Diagnostics returns everything recorded so far.
func (r *Reporter) Diagnostics() List { return r.diagnostics }
