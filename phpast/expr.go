package phpast

// LiteralKind tags which scalar a Literal holds.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
	LitNull
)

// Literal is a scalar constant.
type Literal struct {
	LitKind LiteralKind
	Int     int64
	Float   float64
	Str     string
	Bool    bool

	// Raw, when non-empty, is the original hex/octal/binary source text
	// of an int literal (e.g. "0x63") and is emitted verbatim instead of
	// Int's decimal rendering. Preserving this notation matters in this
	// domain: S-boxes and round constants are conventionally written in
	// hex in the source this AST is lowered from.
	Raw string
}

func (l *Literal) Kind() Kind       { return KindLiteral }
func (l *Literal) Children() []Node { return nil }
func (l *Literal) Accept(v Visitor) { Walk(v, l) }
func (l *Literal) exprNode()        {}

func IntLiteral(v int64) *Literal { return &Literal{LitKind: LitInt, Int: v} }

// IntLiteralRaw builds an int literal that emits as raw verbatim instead
// of v's decimal form (hex/octal/binary notation preservation).
func IntLiteralRaw(v int64, raw string) *Literal { return &Literal{LitKind: LitInt, Int: v, Raw: raw} }
func FloatLiteral(v float64) *Literal  { return &Literal{LitKind: LitFloat, Float: v} }
func StringLiteral(v string) *Literal  { return &Literal{LitKind: LitString, Str: v} }
func BoolLiteral(v bool) *Literal      { return &Literal{LitKind: LitBool, Bool: v} }
func NullLiteral() *Literal            { return &Literal{LitKind: LitNull} }

// Variable is `$name` (the name excludes the sigil).
type Variable struct {
	Name string
}

func (va *Variable) Kind() Kind        { return KindVariable }
func (va *Variable) Children() []Node  { return nil }
func (va *Variable) Accept(v Visitor)  { Walk(v, va) }
func (va *Variable) exprNode()         {}

// Identifier is a non-dollar name: `parent`, `self`, a constant name, a
// bare function/class name used as a value.
type Identifier struct {
	Name string
}

func (i *Identifier) Kind() Kind       { return KindIdentifier }
func (i *Identifier) Children() []Node { return nil }
func (i *Identifier) Accept(v Visitor) { Walk(v, i) }
func (i *Identifier) exprNode()        {}

// BinaryExpr is `left OP right`.
type BinaryExpr struct {
	Operator string
	Left     Expr
	Right    Expr
}

func (b *BinaryExpr) Kind() Kind       { return KindBinaryExpr }
func (b *BinaryExpr) Children() []Node { return []Node{b.Left, b.Right} }
func (b *BinaryExpr) Accept(v Visitor) { Walk(v, b) }
func (b *BinaryExpr) exprNode()        {}

// UnaryExpr is `OP operand` (prefix) or `operand OP` (postfix, e.g. `++`).
type UnaryExpr struct {
	Operator string
	Operand  Expr
	Postfix  bool
}

func (u *UnaryExpr) Kind() Kind       { return KindUnaryExpr }
func (u *UnaryExpr) Children() []Node { return []Node{u.Operand} }
func (u *UnaryExpr) Accept(v Visitor) { Walk(v, u) }
func (u *UnaryExpr) exprNode()        {}

// Assignment is `target OP= value` (Operator is "=" for plain assignment).
type Assignment struct {
	Operator string
	Target   Expr
	Value    Expr
}

func (a *Assignment) Kind() Kind       { return KindAssignment }
func (a *Assignment) Children() []Node { return []Node{a.Target, a.Value} }
func (a *Assignment) Accept(v Visitor) { Walk(v, a) }
func (a *Assignment) exprNode()        {}

// PropertyAccess is `a->b`.
type PropertyAccess struct {
	Object   Expr
	Property string
}

func (p *PropertyAccess) Kind() Kind       { return KindPropertyAccess }
func (p *PropertyAccess) Children() []Node { return []Node{p.Object} }
func (p *PropertyAccess) Accept(v Visitor) { Walk(v, p) }
func (p *PropertyAccess) exprNode()        {}

// StaticPropertyAccess is `A::$b`.
type StaticPropertyAccess struct {
	ClassName string
	Property  string
}

func (s *StaticPropertyAccess) Kind() Kind       { return KindStaticPropertyAccess }
func (s *StaticPropertyAccess) Children() []Node { return nil }
func (s *StaticPropertyAccess) Accept(v Visitor) { Walk(v, s) }
func (s *StaticPropertyAccess) exprNode()        {}

// ArrayAccess is `a[i]`. Index may be nil for the append form `a[]`.
type ArrayAccess struct {
	Array Expr
	Index Expr
}

func (a *ArrayAccess) Kind() Kind { return KindArrayAccess }
func (a *ArrayAccess) Children() []Node {
	if a.Index == nil {
		return []Node{a.Array}
	}
	return []Node{a.Array, a.Index}
}
func (a *ArrayAccess) Accept(v Visitor) { Walk(v, a) }
func (a *ArrayAccess) exprNode()        {}

// MethodCall is `a->b(args)`.
type MethodCall struct {
	Object Expr
	Method string
	Args   []Expr
}

func (m *MethodCall) Kind() Kind { return KindMethodCall }
func (m *MethodCall) Children() []Node {
	out := make([]Node, 0, len(m.Args)+1)
	out = append(out, m.Object)
	for _, a := range m.Args {
		out = append(out, a)
	}
	return out
}
func (m *MethodCall) Accept(v Visitor) { Walk(v, m) }
func (m *MethodCall) exprNode()        {}

// StaticMethodCall is `A::b(args)`.
type StaticMethodCall struct {
	ClassName string
	Method    string
	Args      []Expr
}

func (s *StaticMethodCall) Kind() Kind { return KindStaticMethodCall }
func (s *StaticMethodCall) Children() []Node { return exprsToNodes(s.Args) }
func (s *StaticMethodCall) Accept(v Visitor) { Walk(v, s) }
func (s *StaticMethodCall) exprNode()        {}

// FunctionCall is `f(args)`, or `$f(args)` when Closure is true (the
// callee is a closureVariables-tracked name, spec §4.3.6).
type FunctionCall struct {
	Callee   string
	Closure  bool
	Args     []Expr
}

func (f *FunctionCall) Kind() Kind       { return KindFunctionCall }
func (f *FunctionCall) Children() []Node { return exprsToNodes(f.Args) }
func (f *FunctionCall) Accept(v Visitor) { Walk(v, f) }
func (f *FunctionCall) exprNode()        {}

// ArrayItem is one element of an ArrayLiteral.
type ArrayItem struct {
	Key    Expr // nil for positional elements
	Value  Expr
	Spread bool
}

// ArrayLiteral is `[key => value, ...]`.
type ArrayLiteral struct {
	Items []*ArrayItem
}

func (a *ArrayLiteral) Kind() Kind { return KindArrayLiteral }
func (a *ArrayLiteral) Children() []Node {
	out := make([]Node, 0, len(a.Items)*2)
	for _, it := range a.Items {
		if it.Key != nil {
			out = append(out, it.Key)
		}
		out = append(out, it.Value)
	}
	return out
}
func (a *ArrayLiteral) Accept(v Visitor) { Walk(v, a) }
func (a *ArrayLiteral) exprNode()        {}

// New is `new className(args)` or `new (expr)(args)` when ClassExpr is set.
type New struct {
	ClassName string
	ClassExpr Expr // nil unless the class is itself a dynamic expression
	Args      []Expr
}

func (n *New) Kind() Kind { return KindNew }
func (n *New) Children() []Node {
	out := exprsToNodes(n.Args)
	if n.ClassExpr != nil {
		out = append([]Node{n.ClassExpr}, out...)
	}
	return out
}
func (n *New) Accept(v Visitor) { Walk(v, n) }
func (n *New) exprNode()        {}

// Ternary is `cond ? then : else`. Emission always parenthesises the
// whole expression (spec §3.1 invariant).
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (t *Ternary) Kind() Kind       { return KindTernary }
func (t *Ternary) Children() []Node { return []Node{t.Cond, t.Then, t.Else} }
func (t *Ternary) Accept(v Visitor) { Walk(v, t) }
func (t *Ternary) exprNode()        {}

// NullCoalescing is `left ?? right`.
type NullCoalescing struct {
	Left  Expr
	Right Expr
}

func (n *NullCoalescing) Kind() Kind       { return KindNullCoalescing }
func (n *NullCoalescing) Children() []Node { return []Node{n.Left, n.Right} }
func (n *NullCoalescing) Accept(v Visitor) { Walk(v, n) }
func (n *NullCoalescing) exprNode()        {}

// ShortTernary is `left ?: right` (the Elvis operator).
type ShortTernary struct {
	Left  Expr
	Right Expr
}

func (s *ShortTernary) Kind() Kind       { return KindShortTernary }
func (s *ShortTernary) Children() []Node { return []Node{s.Left, s.Right} }
func (s *ShortTernary) Accept(v Visitor) { Walk(v, s) }
func (s *ShortTernary) exprNode()        {}

// Instanceof is `expr instanceof ClassName`.
type Instanceof struct {
	Expr      Expr
	ClassName string
}

func (i *Instanceof) Kind() Kind       { return KindInstanceof }
func (i *Instanceof) Children() []Node { return []Node{i.Expr} }
func (i *Instanceof) Accept(v Visitor) { Walk(v, i) }
func (i *Instanceof) exprNode()        {}

// ArrowFunction is `fn(params) => expr` (single-expression closure with
// implicit by-value capture-by-use of everything in scope).
type ArrowFunction struct {
	Parameters []*Parameter
	Body       Expr
}

func (a *ArrowFunction) Kind() Kind { return KindArrowFunction }
func (a *ArrowFunction) Children() []Node {
	out := make([]Node, 0, len(a.Parameters)+1)
	for _, p := range a.Parameters {
		out = append(out, p)
	}
	out = append(out, a.Body)
	return out
}
func (a *ArrowFunction) Accept(v Visitor) { Walk(v, a) }
func (a *ArrowFunction) exprNode()        {}

// UseVar is one entry of a Closure's `use (...)` capture list.
type UseVar struct {
	Name        string
	ByReference bool
}

// Closure is `function(params) use (useVars) { body }`.
type Closure struct {
	Parameters []*Parameter
	UseVars    []*UseVar
	Body       *Block
}

func (c *Closure) Kind() Kind { return KindClosure }
func (c *Closure) Children() []Node {
	out := make([]Node, 0, len(c.Parameters)+1)
	for _, p := range c.Parameters {
		out = append(out, p)
	}
	out = append(out, c.Body)
	return out
}
func (c *Closure) Accept(v Visitor) { Walk(v, c) }
func (c *Closure) exprNode()        {}

// Cast is `(Type) expr`.
type Cast struct {
	TargetType string // "int" | "float" | "string" | "bool" | "array" | "object"
	Operand    Expr
}

func (c *Cast) Kind() Kind       { return KindCast }
func (c *Cast) Children() []Node { return []Node{c.Operand} }
func (c *Cast) Accept(v Visitor) { Walk(v, c) }
func (c *Cast) exprNode()        {}

// SpreadElement is `...expr`.
type SpreadElement struct {
	Operand Expr
}

func (s *SpreadElement) Kind() Kind       { return KindSpreadElement }
func (s *SpreadElement) Children() []Node { return []Node{s.Operand} }
func (s *SpreadElement) Accept(v Visitor) { Walk(v, s) }
func (s *SpreadElement) exprNode()        {}

// InterpolationPart is one segment of a StringInterpolation: either a
// literal run or an embedded expression.
type InterpolationPart struct {
	Literal    string
	Expression Expr // nil when this part is a literal run
}

// StringInterpolation is `'lit' . $expr . 'lit'` once lowered (PHP cannot
// interpolate arbitrary expressions in single-quoted strings); adjacent
// literal runs are merged before this node is built (spec §4.3.6).
type StringInterpolation struct {
	Parts []*InterpolationPart
}

func (s *StringInterpolation) Kind() Kind { return KindStringInterpolation }
func (s *StringInterpolation) Children() []Node {
	var out []Node
	for _, p := range s.Parts {
		if p.Expression != nil {
			out = append(out, p.Expression)
		}
	}
	return out
}
func (s *StringInterpolation) Accept(v Visitor) { Walk(v, s) }
func (s *StringInterpolation) exprNode()        {}

// ClassConstant is `A::K`.
type ClassConstant struct {
	ClassName string
	Const     string
}

func (c *ClassConstant) Kind() Kind       { return KindClassConstant }
func (c *ClassConstant) Children() []Node { return nil }
func (c *ClassConstant) Accept(v Visitor) { Walk(v, c) }
func (c *ClassConstant) exprNode()        {}

func exprsToNodes(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}
