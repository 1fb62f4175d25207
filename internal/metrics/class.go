package metrics

import (
	"errors"
	"fmt"

	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// ErrNoClassName is returned for class nodes without a resolvable name
var ErrNoClassName = errors.New("could not extract class name")

// Method is a method declared directly in a class body
type Method struct {
	Node        syntax.Node
	Name        string
	Self        string // empty when HasSelf is false
	HasSelf     bool
	Static      bool
	Constructor bool
}

// Class is a class definition with its direct methods
type Class struct {
	Node    syntax.Node
	Name    string
	Methods []Method
}

// NewClass resolves the name and methods of a class node.
// Methods of nested classes belong to those classes, not to this one.
func NewClass(tree *syntax.Tree, classNode syntax.Node) (*Class, error) {
	name := tree.Text(classNode.ChildByField("name"))
	if name == "" {
		return nil, ErrNoClassName
	}

	q, err := tree.Profile.Query(syntax.QueryMethods)
	if err != nil {
		return nil, fmt.Errorf("method query: %w", err)
	}

	cls := &Class{Node: classNode, Name: name}
	for _, m := range q.Matches(classNode) {
		if !m[syntax.CaptureClass].Same(classNode) {
			continue
		}
		node := m[syntax.CaptureMethod]
		method := Method{
			Node: node,
			Name: FunctionName(tree, node),
		}
		method.Self, method.HasSelf = tree.Profile.SelfParameter(node, tree.Source)
		method.Static = tree.Profile.IsStatic(node, tree.Source)
		method.Constructor = tree.Profile.IsConstructor(method.Name, name)
		cls.Methods = append(cls.Methods, method)
	}
	return cls, nil
}

// MethodCount returns the number of methods declared in the class body
func (c *Class) MethodCount() int {
	return len(c.Methods)
}

// ClassMetrics are the god-class measurements of one class
type ClassMetrics struct {
	WMC  int
	ATFD int
	TCC  float64
}

// MeasureClass computes WMC, ATFD and TCC for a class
func MeasureClass(tree *syntax.Tree, cls *Class) (ClassMetrics, error) {
	var result ClassMetrics
	var err error

	if result.WMC, err = WMC(tree, cls); err != nil {
		return result, err
	}
	if result.ATFD, err = ATFD(tree, cls); err != nil {
		return result, err
	}
	if result.TCC, err = TCC(tree, cls); err != nil {
		return result, err
	}
	return result, nil
}

// WMC is the class's decision-point count plus its method count
func WMC(tree *syntax.Tree, cls *Class) (int, error) {
	branches, err := BranchCount(tree, cls.Node)
	if err != nil {
		return 0, err
	}
	return branches + cls.MethodCount(), nil
}
