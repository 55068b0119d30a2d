package phpemit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphpgen/transpiler/phpast"
)

// emitExpr renders x as a direct operand of a binary/ternary-shaped
// parent with the given precedence, parenthesizing only when
// needsParens requires it (spec §4.1 "minimal but unambiguous
// parenthesization").
func (e *Emitter) emitExpr(x phpast.Expr, parentPrec int, isRightOperand bool) {
	wrap := needsParens(x, parentPrec, isRightOperand)
	if wrap {
		e.write("(")
	}
	e.emitExprBare(x)
	if wrap {
		e.write(")")
	}
}

func (e *Emitter) emitExprBare(x phpast.Expr) {
	switch v := x.(type) {
	case *phpast.Literal:
		e.emitLiteral(v)
	case *phpast.Variable:
		e.write("$" + v.Name)
	case *phpast.Identifier:
		e.write(v.Name)
	case *phpast.BinaryExpr:
		prec := binaryPrecedence[v.Operator]
		e.emitExpr(v.Left, prec, false)
		e.write(" " + v.Operator + " ")
		e.emitExpr(v.Right, prec, true)
	case *phpast.UnaryExpr:
		e.emitUnary(v)
	case *phpast.Assignment:
		// `=` is right-associative in PHP: a nested Assignment as Value
		// renders unparenthesized (`$a = $b = 1`), unlike a left-associative
		// operator at equal precedence.
		e.emitExpr(v.Target, -3, false)
		e.write(" " + v.Operator + " ")
		e.emitExpr(v.Value, -3, false)
	case *phpast.PropertyAccess:
		e.write(e.atomExpr(v.Object) + "->" + v.Property)
	case *phpast.StaticPropertyAccess:
		e.write(v.ClassName + "::$" + v.Property)
	case *phpast.ArrayAccess:
		e.write(e.atomExpr(v.Array) + "[")
		if v.Index != nil {
			e.write(e.exprString(v.Index, loosePrec, false))
		}
		e.write("]")
	case *phpast.MethodCall:
		e.write(e.atomExpr(v.Object) + "->" + v.Method + "(" + e.joinExprs(v.Args) + ")")
	case *phpast.StaticMethodCall:
		e.write(v.ClassName + "::" + v.Method + "(" + e.joinExprs(v.Args) + ")")
	case *phpast.FunctionCall:
		callee := v.Callee
		if v.Closure {
			callee = "$" + callee
		}
		e.write(callee + "(" + e.joinExprs(v.Args) + ")")
	case *phpast.ArrayLiteral:
		e.emitArrayLiteral(v)
	case *phpast.New:
		e.emitNew(v)
	case *phpast.Ternary:
		e.write("(")
		e.emitExpr(v.Cond, loosePrec, false)
		e.write(" ? ")
		e.emitExpr(v.Then, loosePrec, false)
		e.write(" : ")
		e.emitExpr(v.Else, loosePrec, false)
		e.write(")")
	case *phpast.NullCoalescing:
		// `??` is right-associative in PHP, so a nested NullCoalescing as
		// Right renders unparenthesized (`$a ?? $b ?? $c`).
		e.emitExpr(v.Left, -2, false)
		e.write(" ?? ")
		e.emitExpr(v.Right, -2, false)
	case *phpast.ShortTernary:
		// PHP 8 rejects unparenthesized nesting of `?:` on either side, so
		// (like Ternary) it always wraps itself rather than relying on
		// needsParens at its call site.
		e.write("(")
		e.emitExpr(v.Left, loosePrec, false)
		e.write(" ?: ")
		e.emitExpr(v.Right, loosePrec, false)
		e.write(")")
	case *phpast.Instanceof:
		e.write(e.atomExpr(v.Expr) + " instanceof " + v.ClassName)
	case *phpast.ArrowFunction:
		e.emitArrowFunction(v)
	case *phpast.Closure:
		e.emitClosure(v)
	case *phpast.Cast:
		e.write("(" + v.TargetType + ")" + e.atomExpr(v.Operand))
	case *phpast.SpreadElement:
		e.write("..." + e.exprString(v.Operand, loosePrec, false))
	case *phpast.StringInterpolation:
		e.emitStringInterpolation(v)
	case *phpast.ClassConstant:
		e.write(v.ClassName + "::" + v.Const)
	case *phpast.Match:
		e.emitMatch(v)
	default:
		panic(fmt.Sprintf("phpemit: unsupported expression %T", x))
	}
}

func (e *Emitter) emitLiteral(l *phpast.Literal) {
	switch l.LitKind {
	case phpast.LitInt:
		if l.Raw != "" {
			e.write(l.Raw)
		} else {
			e.write(strconv.FormatInt(l.Int, 10))
		}
	case phpast.LitFloat:
		s := strconv.FormatFloat(l.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		e.write(s)
	case phpast.LitString:
		e.write(singleQuote(l.Str))
	case phpast.LitBool:
		if l.Bool {
			e.write("true")
		} else {
			e.write("false")
		}
	case phpast.LitNull:
		e.write("null")
	}
}

func (e *Emitter) emitUnary(u *phpast.UnaryExpr) {
	const unaryPrec = 10
	operand := e.exprString(u.Operand, unaryPrec, false)
	if u.Postfix {
		e.write(operand + u.Operator)
		return
	}
	op := u.Operator
	// Every prefix operator is written directly against its operand with
	// no space; a word operator such as `void` gets no space either.
	e.write(op + operand)
}

// atomExpr renders x, parenthesizing unless x is already a postfix-chain
// atom (variable, literal, access/call chain) that reads unambiguously
// without them.
func (e *Emitter) atomExpr(x phpast.Expr) string {
	if isAtomic(x) {
		return e.exprString(x, loosePrec, false)
	}
	return "(" + e.exprString(x, loosePrec, false) + ")"
}

func isAtomic(x phpast.Expr) bool {
	switch x.(type) {
	case *phpast.Variable, *phpast.Identifier, *phpast.Literal,
		*phpast.PropertyAccess, *phpast.StaticPropertyAccess, *phpast.ArrayAccess,
		*phpast.MethodCall, *phpast.StaticMethodCall, *phpast.FunctionCall,
		*phpast.New, *phpast.ClassConstant:
		return true
	default:
		return false
	}
}

func (e *Emitter) emitArrayLiteral(a *phpast.ArrayLiteral) {
	open, close := "[", "]"
	if !e.cfg.ShortArrays {
		open, close = "array(", ")"
	}
	e.write(open)
	parts := make([]string, len(a.Items))
	for i, it := range a.Items {
		var b strings.Builder
		if it.Spread {
			b.WriteString("...")
			b.WriteString(e.exprString(it.Value, loosePrec, false))
		} else if it.Key != nil {
			b.WriteString(e.exprString(it.Key, loosePrec, false))
			b.WriteString(" => ")
			b.WriteString(e.exprString(it.Value, loosePrec, false))
		} else {
			b.WriteString(e.exprString(it.Value, loosePrec, false))
		}
		parts[i] = b.String()
	}
	e.write(strings.Join(parts, ", "))
	e.write(close)
}

func (e *Emitter) emitNew(n *phpast.New) {
	if n.ClassExpr != nil {
		if v, ok := n.ClassExpr.(*phpast.Variable); ok {
			e.write("new $" + v.Name + "(" + e.joinExprs(n.Args) + ")")
			return
		}
		e.write("new (" + e.exprString(n.ClassExpr, loosePrec, false) + ")(" + e.joinExprs(n.Args) + ")")
		return
	}
	e.write("new " + n.ClassName + "(" + e.joinExprs(n.Args) + ")")
}

func (e *Emitter) emitArrowFunction(a *phpast.ArrowFunction) {
	e.write("fn(" + e.emitParameterList(a.Parameters) + ") => " + e.exprString(a.Body, loosePrec, false))
}

func (e *Emitter) emitClosure(c *phpast.Closure) {
	e.write("function (" + e.emitParameterList(c.Parameters) + ")")
	if len(c.UseVars) > 0 {
		parts := make([]string, len(c.UseVars))
		for i, uv := range c.UseVars {
			if uv.ByReference {
				parts[i] = "&$" + uv.Name
			} else {
				parts[i] = "$" + uv.Name
			}
		}
		e.write(" use (" + strings.Join(parts, ", ") + ")")
	}
	e.write(" ")
	e.emitBlockBraced(c.Body)
}

func (e *Emitter) emitMatch(m *phpast.Match) {
	e.write("match (" + e.exprString(m.Discriminant, loosePrec, false) + ") {")
	parts := make([]string, len(m.Arms))
	for i, a := range m.Arms {
		var conds string
		if len(a.Conditions) == 0 {
			conds = "default"
		} else {
			condParts := make([]string, len(a.Conditions))
			for j, c := range a.Conditions {
				condParts[j] = e.exprString(c, loosePrec, false)
			}
			conds = strings.Join(condParts, ", ")
		}
		parts[i] = conds + " => " + e.exprString(a.Result, loosePrec, false)
	}
	e.write(strings.Join(parts, ", "))
	e.write("}")
}

func (e *Emitter) emitStringInterpolation(s *phpast.StringInterpolation) {
	if len(s.Parts) == 0 {
		e.write("''")
		return
	}
	parts := make([]string, 0, len(s.Parts))
	for _, p := range s.Parts {
		if p.Expression != nil {
			parts = append(parts, e.atomExpr(p.Expression))
		} else {
			parts = append(parts, singleQuote(p.Literal))
		}
	}
	e.write(strings.Join(parts, " . "))
}
