package syntax

import (
	"context"
	"errors"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrSyntax is returned when the parsed tree contains error nodes
var ErrSyntax = errors.New("syntax errors found in source code")

// Source is a file handed in by the source loader.
// Content is treated as immutable for the whole analysis.
type Source struct {
	Identifier string
	Content    []byte
}

// Parser turns source text into syntax trees for one language profile.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser  *sitter.Parser
	profile *Profile
}

// NewParser creates a parser for the given profile
func NewParser(profile *Profile) *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(profile.Language)
	return &Parser{
		parser:  parser,
		profile: profile,
	}
}

// Profile returns the language profile the parser was built for
func (p *Parser) Profile() *Profile {
	return p.profile
}

// Parse parses a source file and returns its tree
func (p *Parser) Parse(ctx context.Context, src Source) (*Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		tree.Close()
		return nil, ErrSyntax
	}

	return &Tree{
		File:    src.Identifier,
		Source:  src.Content,
		Root:    Node{raw: rootNode},
		Profile: p.profile,
		raw:     tree,
	}, nil
}

// ParseReader parses a file from a reader
func (p *Parser) ParseReader(ctx context.Context, identifier string, reader io.Reader) (*Tree, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return p.Parse(ctx, Source{Identifier: identifier, Content: content})
}

// Tree is a parsed file
type Tree struct {
	File    string
	Source  []byte
	Root    Node
	Profile *Profile
	raw     *sitter.Tree
}

// Text returns the source text spanned by n
func (t *Tree) Text(n Node) string {
	return n.Text(t.Source)
}

// Close releases the underlying tree
func (t *Tree) Close() {
	if t.raw != nil {
		t.raw.Close()
		t.raw = nil
	}
}
