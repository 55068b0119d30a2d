// Package phpemit is the PHP pretty-printer (C4): it walks a phpast tree
// and renders PHP 8.1+ source text. It owns no semantic knowledge of the
// input language; everything it prints is already a fully-formed PHP AST
// node (spec §4.1, §6).
package phpemit

import (
	"fmt"
	"strings"

	"github.com/jsphpgen/transpiler/phpast"
)

// Config controls indentation and line endings. Zero value is invalid;
// use DefaultConfig.
type Config struct {
	Indent      string
	Newline     string
	ShortArrays bool
}

// DefaultConfig matches spec §6's documented emitter defaults.
func DefaultConfig() Config {
	return Config{Indent: "    ", Newline: "\n", ShortArrays: true}
}

// Emitter renders one phpast.File to PHP source text.
type Emitter struct {
	cfg   Config
	buf   strings.Builder
	level int
}

// NewEmitter builds an Emitter with the given configuration.
func NewEmitter(cfg Config) *Emitter {
	return &Emitter{cfg: cfg}
}

// Emit renders file to a complete PHP source string beginning with
// `<?php`.
func Emit(file *phpast.File, cfg Config) (string, error) {
	e := NewEmitter(cfg)
	if err := e.emitFile(file); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

func (e *Emitter) nl()             { e.buf.WriteString(e.cfg.Newline) }
func (e *Emitter) writeIndent()    { e.buf.WriteString(strings.Repeat(e.cfg.Indent, e.level)) }
func (e *Emitter) write(s string)  { e.buf.WriteString(s) }
func (e *Emitter) line(s string) {
	e.writeIndent()
	e.buf.WriteString(s)
	e.nl()
}

func (e *Emitter) emitFile(file *phpast.File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("phpemit: %v", r)
		}
	}()

	e.write("<?php")
	e.nl()
	if file.StrictTypes {
		e.line("declare(strict_types=1);")
	}
	if file.Namespace != nil {
		e.nl()
		e.line("namespace " + file.Namespace.Name + ";")
	}
	if len(file.Uses) > 0 {
		e.nl()
		for _, u := range file.Uses {
			if u.Alias != "" {
				e.line(fmt.Sprintf("use %s as %s;", u.Path, u.Alias))
			} else {
				e.line(fmt.Sprintf("use %s;", u.Path))
			}
		}
	}
	for _, item := range file.Items {
		e.nl()
		e.emitItem(item)
	}
	return nil
}

func (e *Emitter) emitItem(n phpast.Node) {
	switch v := n.(type) {
	case *phpast.Class:
		e.emitClass(v)
	case *phpast.Interface:
		e.emitInterface(v)
	case *phpast.Trait:
		e.emitTrait(v)
	case *phpast.Enum:
		e.emitEnum(v)
	case *phpast.Function:
		e.emitFunction(v)
	case *phpast.Const:
		e.emitConst(v)
	case *phpast.RawCode:
		e.line(v.Code)
	case phpast.Stmt:
		e.emitStmt(v)
	default:
		panic(fmt.Sprintf("phpemit: unsupported top-level item %T", n))
	}
}

func (e *Emitter) docComment(d *phpast.DocComment) {
	if d == nil || len(d.Lines) == 0 {
		return
	}
	e.line("/**")
	for _, l := range d.Lines {
		e.line(" * " + l)
	}
	e.line(" */")
}

func (e *Emitter) emitClass(c *phpast.Class) {
	e.docComment(c.DocComment)
	e.writeIndent()
	if c.IsAbstract {
		e.write("abstract ")
	}
	if c.IsFinal {
		e.write("final ")
	}
	e.write("class " + c.Name)
	if c.ExtendsClass != "" {
		e.write(" extends " + c.ExtendsClass)
	}
	if len(c.ImplementsInterfaces) > 0 {
		e.write(" implements " + strings.Join(c.ImplementsInterfaces, ", "))
	}
	e.write(" {")
	e.nl()
	e.level++
	for _, cst := range c.Consts {
		e.emitConst(cst)
	}
	for i, p := range c.Properties {
		if i == 0 && len(c.Consts) > 0 {
			e.nl()
		}
		e.emitProperty(p)
	}
	for i, m := range c.Methods {
		if i == 0 && (len(c.Properties) > 0 || len(c.Consts) > 0) {
			e.nl()
		} else if i > 0 {
			e.nl()
		}
		e.emitMethod(m)
	}
	e.level--
	e.line("}")
}

func (e *Emitter) emitInterface(i *phpast.Interface) {
	e.writeIndent()
	e.write("interface " + i.Name)
	if len(i.Extends) > 0 {
		e.write(" extends " + strings.Join(i.Extends, ", "))
	}
	e.write(" {")
	e.nl()
	e.level++
	for _, cst := range i.Consts {
		e.emitConst(cst)
	}
	for _, m := range i.Methods {
		e.emitMethodSignature(m)
	}
	e.level--
	e.line("}")
}

func (e *Emitter) emitTrait(t *phpast.Trait) {
	e.writeIndent()
	e.write("trait " + t.Name + " {")
	e.nl()
	e.level++
	for _, p := range t.Properties {
		e.emitProperty(p)
	}
	for i, m := range t.Methods {
		if i == 0 && len(t.Properties) > 0 {
			e.nl()
		}
		e.emitMethod(m)
	}
	e.level--
	e.line("}")
}

func (e *Emitter) emitEnum(en *phpast.Enum) {
	e.writeIndent()
	e.write("enum " + en.Name)
	if en.BackingType != "" {
		e.write(": " + en.BackingType)
	}
	if len(en.Implements) > 0 {
		e.write(" implements " + strings.Join(en.Implements, ", "))
	}
	e.write(" {")
	e.nl()
	e.level++
	for _, c := range en.Cases {
		e.writeIndent()
		e.write("case " + c.Name)
		if c.Value != nil {
			e.write(" = ")
			e.emitExpr(c.Value, loosePrec, false)
		}
		e.write(";")
		e.nl()
	}
	for i, m := range en.Methods {
		if i == 0 {
			e.nl()
		}
		e.emitMethod(m)
	}
	e.level--
	e.line("}")
}

func (e *Emitter) emitConst(c *phpast.Const) {
	e.writeIndent()
	if c.ClassConst {
		e.write(c.Visibility.String() + " ")
	}
	e.write("const " + c.Name + " = ")
	e.emitExpr(c.Value, loosePrec, false)
	e.write(";")
	e.nl()
}

func (e *Emitter) emitProperty(p *phpast.Property) {
	e.writeIndent()
	e.write(p.Visibility.String() + " ")
	if p.IsStatic {
		e.write("static ")
	}
	if p.IsReadonly {
		e.write("readonly ")
	}
	if p.Type != nil {
		e.write(p.Type.String() + " ")
	}
	e.write("$" + p.Name)
	if p.DefaultValue != nil {
		e.write(" = ")
		e.emitExpr(p.DefaultValue, loosePrec, false)
	}
	e.write(";")
	e.nl()
}

func (e *Emitter) emitParameterList(params []*phpast.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		var b strings.Builder
		if p.Type != nil {
			b.WriteString(p.Type.String())
			b.WriteByte(' ')
		}
		if p.IsReference {
			b.WriteByte('&')
		}
		if p.IsVariadic {
			b.WriteString("...")
		}
		b.WriteByte('$')
		b.WriteString(p.Name)
		if p.DefaultValue != nil {
			b.WriteString(" = ")
			b.WriteString(e.exprString(p.DefaultValue, loosePrec, false))
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) emitMethodSignature(m *phpast.Method) {
	e.writeIndent()
	e.write(m.Visibility.String() + " ")
	if m.IsStatic {
		e.write("static ")
	}
	if m.IsAbstract {
		e.write("abstract ")
	}
	e.write("function " + m.Name + "(" + e.emitParameterList(m.Parameters) + ")")
	if m.ReturnType != nil {
		e.write(": " + m.ReturnType.String())
	}
	e.write(";")
	e.nl()
}

func (e *Emitter) emitMethod(m *phpast.Method) {
	e.docComment(m.DocComment)
	if m.Body == nil {
		e.emitMethodSignature(m)
		return
	}
	e.writeIndent()
	e.write(m.Visibility.String() + " ")
	if m.IsStatic {
		e.write("static ")
	}
	if m.IsFinal {
		e.write("final ")
	}
	e.write("function " + m.Name + "(" + e.emitParameterList(m.Parameters) + ")")
	if m.ReturnType != nil {
		e.write(": " + m.ReturnType.String())
	}
	e.write(" {")
	e.nl()
	e.level++
	e.emitStatements(m.Body.Statements)
	e.level--
	e.line("}")
}

func (e *Emitter) emitFunction(f *phpast.Function) {
	e.docComment(f.DocComment)
	e.writeIndent()
	e.write("function " + f.Name + "(" + e.emitParameterList(f.Parameters) + ")")
	if f.ReturnType != nil {
		e.write(": " + f.ReturnType.String())
	}
	e.write(" {")
	e.nl()
	e.level++
	if f.Body != nil {
		e.emitStatements(f.Body.Statements)
	}
	e.level--
	e.line("}")
}

func (e *Emitter) emitBlockBraced(b *phpast.Block) {
	e.write("{")
	e.nl()
	e.level++
	if b != nil {
		e.emitStatements(b.Statements)
	}
	e.level--
	e.writeIndent()
	e.write("}")
}

func (e *Emitter) emitStatements(stmts []phpast.Stmt) {
	for _, st := range stmts {
		e.emitStmt(st)
	}
}

// exprString renders x in isolation (used where an expression must be
// embedded inside a line already under construction, e.g. a default
// parameter value).
func (e *Emitter) exprString(x phpast.Expr, parentPrec int, isRight bool) string {
	sub := &Emitter{cfg: e.cfg, level: e.level}
	sub.emitExpr(x, parentPrec, isRight)
	return sub.buf.String()
}
