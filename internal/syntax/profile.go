package syntax

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrUnsupportedQuery is returned when a profile has no pattern for a query kind
var ErrUnsupportedQuery = errors.New("query not supported by language profile")

// QueryKind names the structural patterns the detectors issue
type QueryKind int

const (
	// QueryFunctions captures every function definition as @function
	QueryFunctions QueryKind = iota
	// QueryParameters captures declared parameter lists as @params
	QueryParameters
	// QueryClasses captures class definitions as @class
	QueryClasses
	// QueryDecisionPoints captures branch constructs as @decision
	QueryDecisionPoints
	// QueryMethods captures the direct methods of a class as @method, with the owner as @class
	QueryMethods
	// QueryFieldAccess captures obj.field expressions as @object and @field
	QueryFieldAccess
	// QueryClassProperties captures class-level declarations as @property, with the owner as @class
	QueryClassProperties
	// QuerySelfAssignments captures assignments to obj.field as @object and @property
	QuerySelfAssignments
)

// Capture names shared by all profiles
const (
	CaptureFunction = "function"
	CaptureParams   = "params"
	CaptureClass    = "class"
	CaptureDecision = "decision"
	CaptureMethod   = "method"
	CaptureObject   = "object"
	CaptureField    = "field"
	CaptureProperty = "property"
)

func (k QueryKind) String() string {
	switch k {
	case QueryFunctions:
		return "functions"
	case QueryParameters:
		return "parameters"
	case QueryClasses:
		return "classes"
	case QueryDecisionPoints:
		return "decision_points"
	case QueryMethods:
		return "methods"
	case QueryFieldAccess:
		return "field_access"
	case QueryClassProperties:
		return "class_properties"
	case QuerySelfAssignments:
		return "self_assignments"
	default:
		return fmt.Sprintf("query(%d)", int(k))
	}
}

// Profile carries everything grammar-specific: the language, its query
// patterns and the rules for resolving self parameters, constructors and
// static methods. The detectors only talk to a Profile.
type Profile struct {
	Name       string
	Language   *sitter.Language
	Extensions []string

	// DecisionKinds are the node kinds counted as decision points.
	// Kinds the grammar does not know are dropped with a warning.
	DecisionKinds []string

	Patterns map[QueryKind]string

	// IgnoredParameterKinds are named parameter-list children that are not parameters
	IgnoredParameterKinds []string

	// ConstructorNames are method names treated as constructors in addition
	// to a method named like its class
	ConstructorNames []string

	// SelfParameter resolves the name of the instance parameter of a method
	SelfParameter func(method Node, src []byte) (string, bool)

	// IsStatic reports whether a method does not operate on an instance
	IsStatic func(method Node, src []byte) bool

	mu       sync.Mutex
	compiled map[QueryKind]compiledQuery
	warnings []string
}

type compiledQuery struct {
	query *Query
	err   error
}

// Query returns the compiled query for a kind. Compilation happens once per
// profile; failures are cached as well.
func (p *Profile) Query(kind QueryKind) (*Query, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.compiled == nil {
		p.compiled = make(map[QueryKind]compiledQuery)
	}
	if c, ok := p.compiled[kind]; ok {
		return c.query, c.err
	}

	var c compiledQuery
	if kind == QueryDecisionPoints {
		c.query, c.err = p.compileDecisionQuery()
	} else if pattern, ok := p.Patterns[kind]; ok {
		c.query, c.err = CompileQuery(pattern, p.Language)
	} else {
		c.err = fmt.Errorf("%w: %s (%s)", ErrUnsupportedQuery, kind, p.Name)
	}
	p.compiled[kind] = c
	return c.query, c.err
}

func (p *Profile) compileDecisionQuery() (*Query, error) {
	var kinds []string
	for _, kind := range p.DecisionKinds {
		probe, err := CompileQuery("("+kind+") @probe", p.Language)
		if err != nil {
			p.warnings = append(p.warnings, fmt.Sprintf("%s grammar has no node kind %q, not counted as decision point", p.Name, kind))
			continue
		}
		probe.Close()
		kinds = append(kinds, "("+kind+")")
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: no usable decision point kinds (%s)", ErrUnsupportedQuery, p.Name)
	}
	return CompileQuery("["+strings.Join(kinds, " ")+"] @"+CaptureDecision, p.Language)
}

// Warnings returns the diagnostics collected while compiling queries
func (p *Profile) Warnings() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.warnings)
}

// IsConstructor reports whether a method name denotes the class constructor
func (p *Profile) IsConstructor(methodName, className string) bool {
	return methodName == className || slices.Contains(p.ConstructorNames, methodName)
}

// IsParameter reports whether a parameter-list child counts as a parameter
func (p *Profile) IsParameter(n Node) bool {
	return !n.IsNull() && !slices.Contains(p.IgnoredParameterKinds, n.Kind())
}

// HasExtension reports whether a file path belongs to this profile's language
func (p *Profile) HasExtension(path string) bool {
	for _, ext := range p.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Close releases every compiled query
func (p *Profile) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.compiled {
		if c.query != nil {
			c.query.Close()
		}
	}
	p.compiled = nil
}
