package syntax

import (
	"github.com/smacker/go-tree-sitter/python"
)

var pythonDecisionKinds = []string{
	"if_statement",
	"elif_clause",
	"for_statement",
	"while_statement",
	"case_clause",
	"except_clause",
}

// NewPythonProfile creates a profile for the tree-sitter Python grammar
func NewPythonProfile() *Profile {
	return &Profile{
		Name:          "python",
		Language:      python.GetLanguage(),
		Extensions:    []string{".py"},
		DecisionKinds: pythonDecisionKinds,
		Patterns: map[QueryKind]string{
			QueryFunctions:  `(function_definition) @function`,
			QueryParameters: `(function_definition parameters: (parameters) @params)`,
			QueryClasses:    `(class_definition) @class`,
			QueryMethods: `(class_definition
				body: (block [
					(function_definition) @method
					(decorated_definition definition: (function_definition) @method)
				])) @class`,
			QueryFieldAccess: `(attribute object: (identifier) @object attribute: (identifier) @field)`,
			QueryClassProperties: `(class_definition
				body: (block (expression_statement (assignment left: (identifier) @property)))) @class`,
			QuerySelfAssignments: `(assignment left: (attribute object: (identifier) @object attribute: (identifier) @property))`,
		},
		IgnoredParameterKinds: []string{"positional_separator", "keyword_separator", "comment"},
		ConstructorNames:      []string{"__init__"},
		SelfParameter:         pythonSelfParameter,
		IsStatic:              pythonIsStatic,
	}
}

// pythonSelfParameter returns the first declared parameter of a method.
// Static methods have no instance parameter.
func pythonSelfParameter(method Node, src []byte) (string, bool) {
	if pythonHasDecorator(method, src, "staticmethod") {
		return "", false
	}

	params := method.ChildByField("parameters")
	if params.NamedChildCount() == 0 {
		return "", false
	}

	first := params.NamedChild(0)
	switch first.Kind() {
	case "identifier":
		return first.Text(src), true
	case "typed_parameter":
		if name := first.NamedChild(0); name.Kind() == "identifier" {
			return name.Text(src), true
		}
	case "default_parameter", "typed_default_parameter":
		if name := first.ChildByField("name"); name.Kind() == "identifier" {
			return name.Text(src), true
		}
	}
	// *args, **kwargs and tuple patterns
	return "", false
}

func pythonIsStatic(method Node, src []byte) bool {
	return pythonHasDecorator(method, src, "staticmethod", "classmethod")
}

func pythonHasDecorator(method Node, src []byte, names ...string) bool {
	parent := method.Parent()
	if parent.Kind() != "decorated_definition" {
		return false
	}
	for i := 0; i < parent.NamedChildCount(); i++ {
		child := parent.NamedChild(i)
		if child.Kind() != "decorator" {
			continue
		}
		name := decoratorName(child.NamedChild(0), src)
		for _, want := range names {
			if name == want {
				return true
			}
		}
	}
	return false
}

// decoratorName extracts the called name from @name, @pkg.name and @name(args)
func decoratorName(expr Node, src []byte) string {
	for !expr.IsNull() {
		switch expr.Kind() {
		case "identifier":
			return expr.Text(src)
		case "attribute":
			return expr.ChildByField("attribute").Text(src)
		case "call":
			expr = expr.ChildByField("function")
		default:
			return ""
		}
	}
	return ""
}
