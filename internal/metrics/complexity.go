package metrics

import (
	"fmt"

	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// LOC returns the number of lines spanned by a node, at least 1
func LOC(n syntax.Node) int {
	if n.IsNull() {
		return 0
	}
	loc := n.EndLine() - n.StartLine() + 1
	if loc < 1 {
		return 1
	}
	return loc
}

// BranchCount counts the decision points in the subtree rooted at n
func BranchCount(tree *syntax.Tree, n syntax.Node) (int, error) {
	q, err := tree.Profile.Query(syntax.QueryDecisionPoints)
	if err != nil {
		return 0, fmt.Errorf("decision point query: %w", err)
	}
	return q.Count(n), nil
}

// Cyclomatic returns 1 + the number of decision points in n
func Cyclomatic(tree *syntax.Tree, n syntax.Node) (int, error) {
	branches, err := BranchCount(tree, n)
	if err != nil {
		return 0, err
	}
	return branches + 1, nil
}

// ParameterCount counts the declared parameters of a parameter list node
func ParameterCount(tree *syntax.Tree, params syntax.Node) int {
	count := 0
	for i := 0; i < params.NamedChildCount(); i++ {
		if tree.Profile.IsParameter(params.NamedChild(i)) {
			count++
		}
	}
	return count
}

// FunctionName returns the declared name of a function node
func FunctionName(tree *syntax.Tree, fn syntax.Node) string {
	return tree.Text(fn.ChildByField("name"))
}
