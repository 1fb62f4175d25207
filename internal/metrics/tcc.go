package metrics

import (
	"fmt"
	"slices"

	"github.com/ludo-technologies/pysmell/internal/syntax"
)

// PropertyIndex maps property names to dense indexes in first-seen order
type PropertyIndex struct {
	names []string
	index map[string]int
}

// NewPropertyIndex creates an empty index
func NewPropertyIndex() *PropertyIndex {
	return &PropertyIndex{index: make(map[string]int)}
}

// Add registers a name and returns its index
func (p *PropertyIndex) Add(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	p.index[name] = len(p.names)
	p.names = append(p.names, name)
	return len(p.names) - 1
}

// Index returns the index of a registered name
func (p *PropertyIndex) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

func (p *PropertyIndex) Len() int {
	return len(p.names)
}

func (p *PropertyIndex) Names() []string {
	return slices.Clone(p.names)
}

// AccessMatrix records which properties each method accesses.
// Rows are methods, columns are PropertyIndex entries.
type AccessMatrix struct {
	rows       [][]bool
	properties int
}

// NewAccessMatrix creates a matrix with the given number of property columns
func NewAccessMatrix(properties int) *AccessMatrix {
	return &AccessMatrix{properties: properties}
}

// AddRow appends an empty method row and returns its index
func (m *AccessMatrix) AddRow() int {
	m.rows = append(m.rows, make([]bool, m.properties))
	return len(m.rows) - 1
}

// Mark records that a method accesses a property
func (m *AccessMatrix) Mark(row, property int) {
	m.rows[row][property] = true
}

func (m *AccessMatrix) Rows() int {
	return len(m.rows)
}

// Pairs returns the number of method pairs sharing at least one property
// and the total number of method pairs
func (m *AccessMatrix) Pairs() (connected, total int) {
	for i := 0; i < len(m.rows); i++ {
		for j := i + 1; j < len(m.rows); j++ {
			total++
			for p := 0; p < m.properties; p++ {
				if m.rows[i][p] && m.rows[j][p] {
					connected++
					break
				}
			}
		}
	}
	return connected, total
}

// TCC returns connected/total pairs, or 0 with fewer than two methods or no properties
func (m *AccessMatrix) TCC() float64 {
	if len(m.rows) < 2 || m.properties == 0 {
		return 0
	}
	connected, total := m.Pairs()
	return float64(connected) / float64(total)
}

// Properties collects the declared properties of a class: class-level
// assignments and attributes assigned through a method's self parameter.
func Properties(tree *syntax.Tree, cls *Class) (*PropertyIndex, error) {
	props := NewPropertyIndex()

	classLevel, err := tree.Profile.Query(syntax.QueryClassProperties)
	if err != nil {
		return nil, fmt.Errorf("class property query: %w", err)
	}
	for _, m := range classLevel.Matches(cls.Node) {
		if m[syntax.CaptureClass].Same(cls.Node) {
			props.Add(tree.Text(m[syntax.CaptureProperty]))
		}
	}

	assignments, err := tree.Profile.Query(syntax.QuerySelfAssignments)
	if err != nil {
		return nil, fmt.Errorf("self assignment query: %w", err)
	}
	for _, method := range cls.Methods {
		if !method.HasSelf {
			continue
		}
		for _, m := range assignments.Matches(method.Node) {
			if tree.Text(m[syntax.CaptureObject]) == method.Self {
				props.Add(tree.Text(m[syntax.CaptureProperty]))
			}
		}
	}
	return props, nil
}

// AccessRows builds the method×property matrix over the non-static,
// non-constructor methods that have a self parameter
func AccessRows(tree *syntax.Tree, cls *Class, props *PropertyIndex) (*AccessMatrix, error) {
	q, err := tree.Profile.Query(syntax.QueryFieldAccess)
	if err != nil {
		return nil, fmt.Errorf("field access query: %w", err)
	}

	matrix := NewAccessMatrix(props.Len())
	for _, method := range cls.Methods {
		if method.Static || method.Constructor || !method.HasSelf {
			continue
		}
		row := matrix.AddRow()
		for _, m := range q.Matches(method.Node) {
			if tree.Text(m[syntax.CaptureObject]) != method.Self {
				continue
			}
			if p, ok := props.Index(tree.Text(m[syntax.CaptureField])); ok {
				matrix.Mark(row, p)
			}
		}
	}
	return matrix, nil
}

// TCC computes the tight class cohesion of a class
func TCC(tree *syntax.Tree, cls *Class) (float64, error) {
	props, err := Properties(tree, cls)
	if err != nil {
		return 0, err
	}
	if props.Len() == 0 {
		return 0, nil
	}

	matrix, err := AccessRows(tree, cls, props)
	if err != nil {
		return 0, err
	}
	return matrix.TCC(), nil
}
