package phpast

// File is the root node: `{ strictTypes, namespace?, uses[], items[] }`
// (spec §3.1).
type File struct {
	StrictTypes bool
	Namespace   *Namespace
	Uses        []*UseDeclaration
	Items       []Node // TopLevelItem: DocComment | Class | Interface | Trait | Enum | Function | Const | ExpressionStatement | RawCode
}

func (f *File) Kind() Kind { return KindFile }
func (f *File) Children() []Node {
	out := make([]Node, 0, len(f.Items)+1)
	if f.Namespace != nil {
		out = append(out, f.Namespace)
	}
	out = append(out, f.Items...)
	return out
}
func (f *File) Accept(v Visitor) { Walk(v, f) }

// Namespace is `namespace X\Y;`.
type Namespace struct {
	Name string
}

func (n *Namespace) Kind() Kind       { return KindNamespace }
func (n *Namespace) Children() []Node { return nil }
func (n *Namespace) Accept(v Visitor) { Walk(v, n) }

// UseDeclaration is `use A\B;` (optionally `use A\B as C;`).
type UseDeclaration struct {
	Path  string
	Alias string // empty when there is no `as`
}

func (u *UseDeclaration) Kind() Kind       { return KindUseDeclaration }
func (u *UseDeclaration) Children() []Node { return nil }
func (u *UseDeclaration) Accept(v Visitor) { Walk(v, u) }
