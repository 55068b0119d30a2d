package transform

import "strings"

// EnumObjects: names treated as enum values. Access `X.MEMBER` emits the
// string literal `'MEMBER'` and any body referencing `X` gets a `global
// $x;` declaration (spec §3.2 fixed sets).
var EnumObjects = map[string]bool{
	"CategoryType":  true,
	"SecurityLevel": true,
	"ComplexityType": true,
	"CountryCode":   true,
}

// FrameworkTypes: helper record type names. A member access on one of
// these is not lowered to a static property access; frameworkStubs does
// not emit stubs for them.
var FrameworkTypes = map[string]bool{
	"AlgorithmFramework": true,
	"KeySize":            true,
	"LinkItem":           true,
	"Vulnerability":      true,
}

// BaseClassProperties: property names inherited from framework base
// classes; never re-declared on a subclass (spec §4.3.3 step 3, avoids
// LSP conflicts).
var BaseClassProperties = map[string]bool{
	"name":        true,
	"description": true,
	"category":    true,
	"country":     true,
	"security":    true,
}

// knownFrameworkBases: `extends` targets recognized as framework base
// classes (distinct from arbitrary user-defined superclasses).
var knownFrameworkBases = map[string]bool{
	"Algorithm":         true,
	"BlockCipherAlgorithm": true,
	"StreamCipherAlgorithm": true,
	"HashAlgorithm":     true,
	"IAlgorithmInstance": true,
	"CryptoAlgorithm":   true,
}

// IsFrameworkBase reports whether name is a recognized framework base
// class eligible for stub generation.
func IsFrameworkBase(name string) bool { return knownFrameworkBases[name] }

// PhpReservedWords: identifiers colliding with one of these get a
// trailing underscore on emission (spec §3.2, §8 universal invariant).
var PhpReservedWords = map[string]bool{
	"list": true, "array": true, "class": true, "function": true,
	"echo": true, "print": true, "new": true, "clone": true,
	"global": true, "static": true, "const": true, "var": true,
	"and": true, "or": true, "xor": true, "not": true,
	"if": true, "else": true, "elseif": true, "endif": true,
	"switch": true, "case": true, "default": true, "break": true,
	"continue": true, "while": true, "do": true, "for": true, "foreach": true,
	"as": true,
	"return": true, "try": true, "catch": true, "finally": true, "throw": true,
	"interface": true, "trait": true, "enum": true, "namespace": true,
	"use": true, "public": true, "private": true, "protected": true,
	"abstract": true, "final": true, "readonly": true, "instanceof": true,
	"implements": true, "extends": true, "match": true, "fn": true,
	"yield": true, "require": true, "require_once": true, "include": true,
	"include_once": true, "isset": true, "unset": true, "empty": true,
	"exit": true, "die": true, "goto": true,
	"object": true, "parent": true, "self": true, "this": true,
}

// SanitizeReserved appends a trailing underscore when name collides with
// a PHP reserved word.
func SanitizeReserved(name string) string {
	if PhpReservedWords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// SnakeCase converts a camelCase/PascalCase JS identifier to snake_case,
// stripping a single leading underscore (the private-property marker,
// spec §3.1 "names beginning with `_` map to private visibility; the
// leading underscore is stripped"). ALL_CAPS input passes through
// unchanged (constants/enum-ish names keep their spelling).
func SnakeCase(name string) string {
	trimmed := strings.TrimPrefix(name, "_")
	if isAllCaps(trimmed) {
		return trimmed
	}
	var b strings.Builder
	for i, r := range trimmed {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return SanitizeReserved(b.String())
}

func isAllCaps(s string) bool {
	sawLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			sawLetter = true
		}
	}
	return sawLetter
}

// IsAllCaps reports whether every letter in s is uppercase and there is
// at least one letter (used by the ALL_CAPS member-access rule, spec
// §4.3.6).
func IsAllCaps(s string) bool { return isAllCaps(s) }

// ScreamingSnakeCase converts an identifier to SCREAMING_SNAKE_CASE for
// emitted `const` names (spec §3.2 declaredConstants).
func ScreamingSnakeCase(name string) string {
	snake := SnakeCase(name)
	return strings.ToUpper(strings.TrimSuffix(snake, "_"))
}

// IsPrivateName reports whether the original JS name began with `_`
// (spec §4.3.3: visibility is private iff the original name began with
// an underscore).
func IsPrivateName(name string) bool { return strings.HasPrefix(name, "_") }
