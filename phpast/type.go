package phpast

import "github.com/jsphpgen/transpiler/phptype"

// Type is a thin alias so phpast call sites read naturally; the actual
// type model lives in phptype (C2), which phpast depends on but never the
// reverse (spec §2: C1 and C2 are passive, C3 is the only stateful
// component sitting above both).
type Type = phptype.Type
