package phptype

import "strings"

// Heuristic data tables (spec §4.2, §9 "a port should expose the
// heuristic lists as data tables, not hard-coded strings"). Every table
// here is exported so a caller (or a future tuning pass) can extend it
// without touching NameHeuristic's control flow.

// IntNameSubstrings: identifiers containing any of these substrings guess
// as int (rule 1).
var IntNameSubstrings = []string{
	"size", "length", "count", "len", "index", "offset",
	"position", "total",
}

// IntNameExact: whole identifiers that guess as int regardless of
// substring rules (single-letter loop counters, rule 1/5).
var IntNameExact = map[string]bool{
	"i": true, "j": true, "n": true, "l": true, "m": true,
}

// IntNamePrefixes / IntNameSuffixes: rule 1's num_/_num forms.
var IntNamePrefixes = []string{"num_"}
var IntNameSuffixes = []string{"_num"}

// ArrayNameExact: whole identifiers that guess as array (rule 2: crypto
// bit arrays), plus rule 3's singular state-ish names.
var ArrayNameExact = map[string]bool{
	"bits": true, "state": true, "nonce": true, "iv": true,
	"counter": true, "tag": true,
}

// ArrayNameSubstrings: plural byte/word/block/buffer names (rule 3).
var ArrayNameSubstrings = []string{
	"bytes", "words", "blocks", "buffers", "buffer",
}

// IntByteNamePattern: `byte` or `b<digit>` (rule 4).
func isByteIntName(name string) bool {
	if name == "byte" {
		return true
	}
	if len(name) >= 2 && name[0] == 'b' {
		for _, c := range name[1:] {
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	}
	return false
}

// NameHeuristic maps an identifier to a guessed PHP type using the
// ordered rules of spec §4.2 (first match wins).
func NameHeuristic(name string) *Type {
	lower := strings.ToLower(name)

	if IntNameExact[lower] || isByteIntName(lower) {
		return NewPrimitive(Int)
	}
	for _, sub := range IntNameSubstrings {
		if strings.Contains(lower, sub) {
			return NewPrimitive(Int)
		}
	}
	for _, p := range IntNamePrefixes {
		if strings.HasPrefix(lower, p) {
			return NewPrimitive(Int)
		}
	}
	for _, s := range IntNameSuffixes {
		if strings.HasSuffix(lower, s) {
			return NewPrimitive(Int)
		}
	}
	if ArrayNameExact[lower] {
		return NewPrimitive(Array)
	}
	for _, sub := range ArrayNameSubstrings {
		if strings.Contains(lower, sub) {
			return NewPrimitive(Array)
		}
	}
	return NewPrimitive(Mixed)
}

// ArrayLikeParamNames: name fragments that make a parameter a
// pass-by-reference candidate under spec §4.3.5's rule (b) when no array
// type is otherwise known.
var ArrayLikeParamNames = []string{
	"state", "block", "key", "data", "input", "output",
	"buffer", "bytes", "arr",
}

// ArrayLikeParamExact: whole-name exceptions to the fragment list.
var ArrayLikeParamExact = map[string]bool{"ka": true, "kb": true}

// IsArrayLikeParamName reports whether a parameter name matches the
// array-like heuristic used for pass-by-reference promotion.
func IsArrayLikeParamName(name string) bool {
	lower := strings.ToLower(name)
	if len(lower) == 1 {
		return true
	}
	if ArrayLikeParamExact[lower] {
		return true
	}
	for _, frag := range ArrayLikeParamNames {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// StringNameSet: property/variable names (and suffixes) whose `.length`
// lowers to strlen() rather than count().
var StringNameSet = map[string]bool{
	"encoded": true, "decoded": true, "text": true, "string": true,
	"html": true,
}

var StringNameSuffixes = []string{"_str", "_string", "_text"}

// ArrayNameExclusionSet: names that look string-ish by suffix but are
// known array fields in this domain, excluded from the strlen() guess.
var ArrayNameExclusionSet = map[string]bool{}

// IsStringLengthName reports whether `.length` on this name should lower
// to strlen() instead of count().
func IsStringLengthName(name string) bool {
	lower := strings.ToLower(name)
	if ArrayNameExclusionSet[lower] {
		return false
	}
	if StringNameSet[lower] {
		return true
	}
	for _, suf := range StringNameSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}

// TypedArraySizeNameSubstrings: identifiers whose `new Uint8Array(arg)`
// argument is a size, by name (spec §4.3.6 typed-array disambiguation).
var TypedArraySizeNameSubstrings = []string{"size", "length", "count", "n", "len"}

// TypedArrayBufferNameSubstrings: identifiers whose argument is a buffer
// to copy.
var TypedArrayBufferNameSubstrings = []string{
	"key", "data", "buffer", "bytes", "array", "block", "state",
	"nonce", "iv", "input", "output", "plaintext", "ciphertext",
	"message", "result", "digest", "hash",
}

// SizeReturningCalls / CopyReturningCalls: call-expression callee names
// used in the same disambiguation. A call to a SizeReturningCalls name
// (ShapeInt in CallShape) is a size; every other call argument, these
// copy-returning names included, is a buffer copy.
var SizeReturningCalls = map[string]bool{"count": true, "strlen": true, "sizeof": true}
var CopyReturningCalls = map[string]bool{
	"array_slice": true, "array_values": true, "array_map": true, "array_filter": true,
}

