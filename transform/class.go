package transform

import (
	"sort"

	"github.com/jsphpgen/transpiler/ilast"
	"github.com/jsphpgen/transpiler/phpast"
	"github.com/jsphpgen/transpiler/phptype"
)

// lowerClass implements spec §4.3.3: resolve `extends` (including the
// `AlgorithmFramework.X` form), register framework base classes, derive
// the full property set by scanning every `this.x = ...` assignment
// across all methods (the "dynamic-property guard" — every name that
// surfaces gets a declared property even if the class body never
// declares a field for it), rename getters/setters, and snake_case
// regular methods with an `_impl` collision suffix.
func (s *State) lowerClass(n *ilast.Node) *phpast.Class {
	name := n.Child("id").Str("name")
	extendsClass := s.resolveSuperClass(n.Child("superClass"))

	body := n.Child("body")
	members := body.ChildList("body")

	usages := s.collectPropertyUsages(members)
	if IsFrameworkBase(extendsClass) {
		for name := range usages {
			if BaseClassProperties[name] {
				delete(usages, name)
			}
		}
	}
	properties := s.buildProperties(usages)

	usedNames := map[string]bool{}
	var methods []*phpast.Method
	var constructor *phpast.Method
	for _, m := range members {
		if m.Type() != "MethodDefinition" {
			continue
		}
		method := s.lowerMethod(m, usedNames)
		if method.Name == "__construct" {
			constructor = method
			continue
		}
		methods = append(methods, method)
	}
	if constructor != nil {
		methods = append([]*phpast.Method{constructor}, methods...)
	}

	return &phpast.Class{
		Name:         name,
		ExtendsClass: extendsClass,
		Properties:   properties,
		Methods:      methods,
	}
}

func (s *State) resolveSuperClass(sup *ilast.Node) string {
	if sup == nil {
		return ""
	}
	switch sup.Type() {
	case "Identifier":
		name := sup.Str("name")
		if IsFrameworkBase(name) {
			s.frameworkClasses[name] = true
		}
		return name
	case "MemberExpression":
		prop := sup.Child("property")
		if prop == nil {
			return ""
		}
		base := prop.Str("name")
		if IsFrameworkBase(base) {
			s.frameworkClasses[base] = true
		}
		return base
	default:
		return ""
	}
}

// propertyUsage tracks one property's write sites across every method so
// its shape (array vs scalar) can be inferred the same way top-level
// variable shapes are (spec §4.3.4).
type propertyUsage struct {
	isArray    bool
	isNullable bool
}

// collectPropertyUsages walks every method body for `this.x = ...`
// assignment targets and folds them into one map keyed by the original
// (not yet snake-cased) property name.
func (s *State) collectPropertyUsages(members []*ilast.Node) map[string]*propertyUsage {
	usages := map[string]*propertyUsage{}
	for _, m := range members {
		if m.Type() != "MethodDefinition" {
			continue
		}
		fn := m.Child("value")
		body := fn.Child("body")
		ilast.Walk(&thisPropertyVisitor{usages: usages}, body)
	}
	return usages
}

type thisPropertyVisitor struct {
	usages map[string]*propertyUsage
}

func (v *thisPropertyVisitor) Visit(n *ilast.Node) bool {
	if n.Type() == "AssignmentExpression" {
		left := n.Child("left")
		if left != nil && left.Type() == "MemberExpression" && !left.Bool("computed") {
			if obj := left.Child("object"); obj != nil && obj.Type() == "ThisExpression" {
				prop := left.Child("property")
				name := prop.Str("name")
				u := v.usages[name]
				if u == nil {
					u = &propertyUsage{}
					v.usages[name] = u
				}
				right := n.Child("right")
				if right != nil && (right.Type() == "ArrayExpression" || right.Type() == "ObjectExpression") {
					u.isArray = true
				}
				if right != nil && right.Type() == "Literal" && right.Str("kind") == "null" {
					u.isNullable = true
				}
			}
		}
	}
	return true
}

// buildProperties turns the collected usage map into phpast.Property
// declarations: ALL_CAPS names are preserved verbatim, everything else is
// snake_cased; a name that began with `_` in JS is private, everything
// else is public.
func (s *State) buildProperties(usages map[string]*propertyUsage) []*phpast.Property {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]*phpast.Property, 0, len(names))
	for _, jsName := range names {
		usage := usages[jsName]
		phpName := jsName
		if !IsAllCaps(jsName) {
			phpName = SnakeCase(jsName)
		}
		visibility := phpast.Public
		if IsPrivateName(jsName) {
			visibility = phpast.Private
		}

		var fieldType *phptype.Type
		var defaultVal phpast.Expr
		if usage.isArray {
			fieldType = phptype.NewPrimitive(phptype.Array)
			defaultVal = &phpast.ArrayLiteral{}
			s.markArray("this." + jsName)
		} else {
			fieldType = phptype.NameHeuristic(jsName)
			if usage.isNullable {
				fieldType = phptype.NewNullable(fieldType)
			}
			defaultVal = phpast.NullLiteral()
		}
		s.classFieldTypes[phpName] = fieldType

		emittedType := fieldType
		if !s.opts.AddTypeHints {
			emittedType = nil
		}
		props = append(props, &phpast.Property{
			Visibility:   visibility,
			Type:         emittedType,
			Name:         phpName,
			DefaultValue: defaultVal,
		})
	}
	return props
}
