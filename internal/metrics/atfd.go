package metrics

import (
	"fmt"

	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// ATFD counts accesses to foreign data: obj.field expressions inside the
// class's methods whose object is neither the method's self parameter nor
// the class name. Constructors and methods without a self parameter are
// skipped.
func ATFD(tree *syntax.Tree, cls *Class) (int, error) {
	q, err := tree.Profile.Query(syntax.QueryFieldAccess)
	if err != nil {
		return 0, fmt.Errorf("field access query: %w", err)
	}

	count := 0
	for _, method := range cls.Methods {
		if method.Constructor || !method.HasSelf {
			continue
		}
		for _, m := range q.Matches(method.Node) {
			obj := tree.Text(m[syntax.CaptureObject])
			if obj != method.Self && obj != cls.Name {
				count++
			}
		}
	}
	return count, nil
}
