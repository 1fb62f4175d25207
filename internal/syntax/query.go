package syntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Query is a compiled structural pattern. A Query may be shared between
// goroutines; every execution uses its own cursor.
type Query struct {
	pattern string
	raw     *sitter.Query
}

// Match holds the captures of one pattern match, keyed by capture name.
// When a name is captured more than once the first node wins.
type Match map[string]Node

// CompileQuery compiles a pattern for a language
func CompileQuery(pattern string, lang *sitter.Language) (*Query, error) {
	q, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", pattern, err)
	}
	return &Query{pattern: pattern, raw: q}, nil
}

// Pattern returns the source of the query
func (q *Query) Pattern() string {
	return q.pattern
}

// Matches runs the query over the subtree rooted at n
func (q *Query) Matches(n Node) []Match {
	if n.IsNull() {
		return nil
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.raw, n.raw)

	var matches []Match
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		captures := make(Match, len(m.Captures))
		for _, c := range m.Captures {
			name := q.raw.CaptureNameForId(c.Index)
			if _, seen := captures[name]; !seen {
				captures[name] = Node{raw: c.Node}
			}
		}
		matches = append(matches, captures)
	}
	return matches
}

// Count returns the number of matches in the subtree rooted at n
func (q *Query) Count(n Node) int {
	if n.IsNull() {
		return 0
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.raw, n.raw)

	count := 0
	for {
		if _, ok := cursor.NextMatch(); !ok {
			break
		}
		count++
	}
	return count
}

// Close releases the compiled query
func (q *Query) Close() {
	if q.raw != nil {
		q.raw.Close()
	}
}
