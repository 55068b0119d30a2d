package phptype

// LiteralKind tags the shape of a literal initializer, decoupled from any
// concrete AST package so phptype stays a leaf (spec §2: C2 is passive).
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralString
	LiteralNull
	LiteralArray
	LiteralObject
)

// FromLiteral implements spec §4.2's default-value inference: booleans →
// bool, integers → int, floats → float, strings → string, array/object
// literals → array.
func FromLiteral(k LiteralKind) *Type {
	switch k {
	case LiteralBool:
		return NewPrimitive(Bool)
	case LiteralInt:
		return NewPrimitive(Int)
	case LiteralFloat:
		return NewPrimitive(Float)
	case LiteralString:
		return NewPrimitive(String)
	case LiteralArray, LiteralObject:
		return NewPrimitive(Array)
	case LiteralNull:
		return NewPrimitive(Null)
	default:
		return NewPrimitive(Mixed)
	}
}

// CallReturnShape classifies which PHP standard functions return a string
// vs an array, for the value-shape inference used by `+`-to-`.` and
// typed-array disambiguation (spec §4.2).
type CallReturnShape int

const (
	ShapeUnknown CallReturnShape = iota
	ShapeString
	ShapeArray
	ShapeInt
)

// StringReturningCalls / ArrayReturningCalls: the small classifier spec
// §4.2 describes ("split/explode → array, substr/chr → string").
var StringReturningCalls = map[string]bool{
	"substr": true, "chr": true, "strtolower": true, "strtoupper": true,
	"trim": true, "str_pad": true, "str_repeat": true, "implode": true,
	"sprintf": true, "number_format": true, "dechex": true, "bin2hex": true,
	"json_encode": true, "strval": true,
}

var ArrayReturningCalls = map[string]bool{
	"explode": true, "str_split": true, "array_slice": true,
	"array_values": true, "array_keys": true, "array_map": true,
	"array_filter": true, "array_merge": true, "array_fill": true,
	"array_reverse": true, "json_decode": true, "preg_split": true,
}

// CallShape classifies a call by callee name using the tables above.
func CallShape(callee string) CallReturnShape {
	if StringReturningCalls[callee] {
		return ShapeString
	}
	if ArrayReturningCalls[callee] {
		return ShapeArray
	}
	if SizeReturningCalls[callee] {
		return ShapeInt
	}
	return ShapeUnknown
}
