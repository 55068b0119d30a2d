package phpemit

import (
	"fmt"
	"strings"

	"github.com/jsphpgen/transpiler/phpast"
)

func (e *Emitter) emitStmt(s phpast.Stmt) {
	switch v := s.(type) {
	case *phpast.ExpressionStatement:
		e.writeIndent()
		e.emitExpr(v.Expression, loosePrec, false)
		e.write(";")
		e.nl()
	case *phpast.Return:
		e.writeIndent()
		e.write("return")
		if v.Value != nil {
			e.write(" ")
			e.emitExpr(v.Value, loosePrec, false)
		}
		e.write(";")
		e.nl()
	case *phpast.If:
		e.emitIf(v)
	case *phpast.For:
		e.emitFor(v)
	case *phpast.Foreach:
		e.emitForeach(v)
	case *phpast.While:
		e.writeIndent()
		e.write("while (")
		e.emitExpr(v.Cond, loosePrec, false)
		e.write(") ")
		e.emitBlockBraced(v.Body)
		e.nl()
	case *phpast.DoWhile:
		e.writeIndent()
		e.write("do ")
		e.emitBlockBraced(v.Body)
		e.write(" while (")
		e.emitExpr(v.Cond, loosePrec, false)
		e.write(");")
		e.nl()
	case *phpast.Switch:
		e.emitSwitch(v)
	case *phpast.Break:
		e.writeIndent()
		if v.Level > 1 {
			e.write(fmt.Sprintf("break %d;", v.Level))
		} else {
			e.write("break;")
		}
		e.nl()
	case *phpast.Continue:
		e.writeIndent()
		if v.Level > 1 {
			e.write(fmt.Sprintf("continue %d;", v.Level))
		} else {
			e.write("continue;")
		}
		e.nl()
	case *phpast.Try:
		e.emitTry(v)
	case *phpast.Throw:
		e.writeIndent()
		e.write("throw ")
		e.emitExpr(v.Value, loosePrec, false)
		e.write(";")
		e.nl()
	case *phpast.Global:
		e.writeIndent()
		names := make([]string, len(v.Names))
		for i, n := range v.Names {
			names[i] = "$" + n
		}
		e.write("global " + strings.Join(names, ", ") + ";")
		e.nl()
	case *phpast.StaticVar:
		e.writeIndent()
		e.write("static $" + v.Name)
		if v.Default != nil {
			e.write(" = ")
			e.emitExpr(v.Default, loosePrec, false)
		}
		e.write(";")
		e.nl()
	case *phpast.Block:
		e.writeIndent()
		e.emitBlockBraced(v)
		e.nl()
	default:
		panic(fmt.Sprintf("phpemit: unsupported statement %T", s))
	}
}

func (e *Emitter) emitIf(i *phpast.If) {
	e.writeIndent()
	e.write("if (")
	e.emitExpr(i.Cond, loosePrec, false)
	e.write(") ")
	e.emitBlockBraced(i.Then)
	switch elseNode := i.Else.(type) {
	case nil:
		e.nl()
	case *phpast.If:
		e.write(" else")
		e.writeElseIf(elseNode)
	case *phpast.Block:
		e.write(" else ")
		e.emitBlockBraced(elseNode)
		e.nl()
	default:
		e.write(" else ")
		e.emitBlockBraced(&phpast.Block{Statements: []phpast.Stmt{elseNode}})
		e.nl()
	}
}

// writeElseIf prints ` if (...) { ... }` continuing an `else` chain
// without re-indenting (keeps `elseif`-shaped chains flat in the teacher's
// style rather than nesting a brace per level).
func (e *Emitter) writeElseIf(i *phpast.If) {
	e.write(" if (")
	e.emitExpr(i.Cond, loosePrec, false)
	e.write(") ")
	e.emitBlockBraced(i.Then)
	switch elseNode := i.Else.(type) {
	case nil:
		e.nl()
	case *phpast.If:
		e.write(" else")
		e.writeElseIf(elseNode)
	case *phpast.Block:
		e.write(" else ")
		e.emitBlockBraced(elseNode)
		e.nl()
	}
}

func (e *Emitter) emitFor(f *phpast.For) {
	e.writeIndent()
	e.write("for (")
	e.write(e.joinExprs(f.Init))
	e.write("; ")
	e.write(e.joinExprs(f.Cond))
	e.write("; ")
	e.write(e.joinExprs(f.Post))
	e.write(") ")
	e.emitBlockBraced(f.Body)
	e.nl()
}

func (e *Emitter) joinExprs(exprs []phpast.Expr) string {
	parts := make([]string, len(exprs))
	for i, x := range exprs {
		parts[i] = e.exprString(x, loosePrec, false)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) emitForeach(f *phpast.Foreach) {
	e.writeIndent()
	e.write("foreach (")
	e.emitExpr(f.Iterable, loosePrec, false)
	e.write(" as ")
	if f.KeyVar != nil {
		e.write("$" + f.KeyVar.Name + " => ")
	}
	if f.ByReference {
		e.write("&")
	}
	e.write("$" + f.ValueVar.Name)
	e.write(") ")
	e.emitBlockBraced(f.Body)
	e.nl()
}

func (e *Emitter) emitSwitch(s *phpast.Switch) {
	e.writeIndent()
	e.write("switch (")
	e.emitExpr(s.Discriminant, loosePrec, false)
	e.write(") {")
	e.nl()
	e.level++
	for _, c := range s.Cases {
		e.writeIndent()
		if c.Test == nil {
			e.write("default:")
		} else {
			e.write("case ")
			e.emitExpr(c.Test, loosePrec, false)
			e.write(":")
		}
		e.nl()
		e.level++
		e.emitStatements(c.Statements)
		e.level--
	}
	e.level--
	e.line("}")
}

func (e *Emitter) emitTry(t *phpast.Try) {
	e.writeIndent()
	e.write("try ")
	e.emitBlockBraced(t.Body)
	for _, c := range t.Catches {
		e.write(" catch (" + strings.Join(c.ExceptionTypes, "|"))
		if c.Variable != "" {
			e.write(" $" + c.Variable)
		}
		e.write(") ")
		e.emitBlockBraced(c.Body)
	}
	if t.Finally != nil {
		e.write(" finally ")
		e.emitBlockBraced(t.Finally)
	}
	e.nl()
}
