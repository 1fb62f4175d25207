package syntax

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, code string) *Tree {
	t.Helper()
	p := NewParser(NewPythonProfile())
	tree, err := p.Parse(context.Background(), Source{Identifier: "sample.py", Content: []byte(code)})
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestParser_Parse(t *testing.T) {
	tree := parse(t, "def f(a, b):\n    return a + b\n")

	assert.Equal(t, "sample.py", tree.File)
	assert.Equal(t, "module", tree.Root.Kind())
	assert.Equal(t, 1, tree.Root.NamedChildCount())

	fn := tree.Root.NamedChild(0)
	assert.Equal(t, "function_definition", fn.Kind())
	assert.Equal(t, 1, fn.StartLine())
	assert.Equal(t, 2, fn.EndLine())
	assert.Equal(t, "f", tree.Text(fn.ChildByField("name")))
	assert.True(t, fn.ChildByField("name").Parent().Same(fn))
}

func TestParser_SyntaxError(t *testing.T) {
	p := NewParser(NewPythonProfile())
	_, err := p.Parse(context.Background(), Source{Identifier: "bad.py", Content: []byte("def broken(:\n")})
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParser_ParseReader(t *testing.T) {
	p := NewParser(NewPythonProfile())
	tree, err := p.ParseReader(context.Background(), "r.py", strings.NewReader("x = 1\n"))
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "r.py", tree.File)
}

func TestNode_NullSafety(t *testing.T) {
	var n Node
	assert.True(t, n.IsNull())
	assert.Equal(t, "", n.Kind())
	assert.Equal(t, 0, n.StartLine())
	assert.Equal(t, 0, n.NamedChildCount())
	assert.True(t, n.NamedChild(0).IsNull())
	assert.True(t, n.ChildByField("name").IsNull())
	assert.True(t, n.Parent().IsNull())
	assert.Equal(t, "", n.Text([]byte("abc")))
	assert.True(t, n.Same(Node{}))
}

func TestProfile_Queries(t *testing.T) {
	code := `
class Point:
    origin = None

    def __init__(self, x):
        self.x = x

    @staticmethod
    def make():
        return Point(0)

    def norm(self):
        if self.x > 0:
            return self.x
        for i in range(3):
            pass
        return other.x


def helper(a, b, *, c):
    while a:
        a -= 1
`
	tree := parse(t, code)
	profile := tree.Profile

	tests := []struct {
		kind     QueryKind
		expected int
	}{
		{QueryFunctions, 4},
		{QueryParameters, 4},
		{QueryClasses, 1},
		{QueryDecisionPoints, 3},
		{QueryMethods, 3},
		{QueryClassProperties, 1},
		{QuerySelfAssignments, 1},
		{QueryFieldAccess, 4},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			q, err := profile.Query(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q.Count(tree.Root))
			assert.Len(t, q.Matches(tree.Root), tt.expected)
		})
	}
}

func TestProfile_QueryCaptures(t *testing.T) {
	tree := parse(t, "class A:\n    def m(self):\n        return self.v\n")

	q, err := tree.Profile.Query(QueryMethods)
	require.NoError(t, err)
	matches := q.Matches(tree.Root)
	require.Len(t, matches, 1)
	assert.Equal(t, "class_definition", matches[0][CaptureClass].Kind())
	assert.Equal(t, "m", tree.Text(matches[0][CaptureMethod].ChildByField("name")))

	access, err := tree.Profile.Query(QueryFieldAccess)
	require.NoError(t, err)
	matches = access.Matches(tree.Root)
	require.Len(t, matches, 1)
	assert.Equal(t, "self", tree.Text(matches[0][CaptureObject]))
	assert.Equal(t, "v", tree.Text(matches[0][CaptureField]))
}

func TestProfile_QueryIsCached(t *testing.T) {
	profile := NewPythonProfile()
	defer profile.Close()

	a, err := profile.Query(QueryClasses)
	require.NoError(t, err)
	b, err := profile.Query(QueryClasses)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestProfile_UnknownDecisionKindIsDropped(t *testing.T) {
	profile := NewPythonProfile()
	profile.DecisionKinds = []string{"if_statement", "goto_statement"}

	q, err := profile.Query(QueryDecisionPoints)
	require.NoError(t, err)

	tree := parse(t, "if a:\n    pass\nif b:\n    pass\n")
	assert.Equal(t, 2, q.Count(tree.Root))

	warnings := profile.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "goto_statement")
}

func TestProfile_NoUsableDecisionKinds(t *testing.T) {
	profile := NewPythonProfile()
	profile.DecisionKinds = []string{"goto_statement"}

	_, err := profile.Query(QueryDecisionPoints)
	assert.ErrorIs(t, err, ErrUnsupportedQuery)

	// the failure is cached
	_, err = profile.Query(QueryDecisionPoints)
	assert.ErrorIs(t, err, ErrUnsupportedQuery)
}

func TestProfile_UnsupportedAndMalformed(t *testing.T) {
	profile := NewPythonProfile()
	delete(profile.Patterns, QueryFieldAccess)
	profile.Patterns[QueryClasses] = `(class_definition @class`

	_, err := profile.Query(QueryFieldAccess)
	assert.ErrorIs(t, err, ErrUnsupportedQuery)

	_, err = profile.Query(QueryClasses)
	assert.Error(t, err)
}

func TestPython_SelfParameter(t *testing.T) {
	code := `
class A:
    def plain(self):
        pass

    def typed(me: "A"):
        pass

    def defaulted(this=None):
        pass

    def splat(*args):
        pass

    def empty():
        pass

    @staticmethod
    def static(x):
        pass

    @classmethod
    def klass(cls):
        pass
`
	tree := parse(t, code)
	q, err := tree.Profile.Query(QueryMethods)
	require.NoError(t, err)

	type result struct {
		self     string
		ok       bool
		isStatic bool
	}
	got := map[string]result{}
	for _, m := range q.Matches(tree.Root) {
		method := m[CaptureMethod]
		name := tree.Text(method.ChildByField("name"))
		self, ok := tree.Profile.SelfParameter(method, tree.Source)
		got[name] = result{self, ok, tree.Profile.IsStatic(method, tree.Source)}
	}

	assert.Equal(t, result{"self", true, false}, got["plain"])
	assert.Equal(t, result{"me", true, false}, got["typed"])
	assert.Equal(t, result{"this", true, false}, got["defaulted"])
	assert.Equal(t, result{"", false, false}, got["splat"])
	assert.Equal(t, result{"", false, false}, got["empty"])
	assert.Equal(t, result{"", false, true}, got["static"])
	assert.Equal(t, result{"cls", true, true}, got["klass"])
}

func TestProfile_Helpers(t *testing.T) {
	profile := NewPythonProfile()
	assert.True(t, profile.IsConstructor("__init__", "A"))
	assert.True(t, profile.IsConstructor("A", "A"))
	assert.False(t, profile.IsConstructor("run", "A"))

	assert.True(t, profile.HasExtension("pkg/mod.py"))
	assert.False(t, profile.HasExtension("pkg/mod.go"))
}
