package syntax

import "github.com/nihei9/nixfmt/synkind"

// SyntaxToken is a positioned, read-only view of a GreenToken.
type SyntaxToken struct {
	green *GreenToken
	start int
}

func (t *SyntaxToken) Kind() synkind.Kind  { return t.green.Kind() }
func (t *SyntaxToken) Text() string        { return t.green.Text() }
func (t *SyntaxToken) Start() int          { return t.start }
func (t *SyntaxToken) End() int            { return t.start + len(t.green.Text()) }
func (t *SyntaxToken) Green() *GreenToken  { return t.green }

// SyntaxNode is a positioned, read-only view of a GreenNode: children are
// materialized on demand, each carrying its absolute start offset.
type SyntaxNode struct {
	green *GreenNode
	start int
}

// NewRoot builds the red root view over a finished green tree.
func NewRoot(green *GreenNode) *SyntaxNode {
	return &SyntaxNode{green: green, start: 0}
}

func (n *SyntaxNode) Kind() synkind.Kind { return n.green.Kind() }
func (n *SyntaxNode) Text() string       { return n.green.Text() }
func (n *SyntaxNode) Green() *GreenNode  { return n.green }
func (n *SyntaxNode) Start() int         { return n.start }
func (n *SyntaxNode) End() int           { return n.start + len(n.green.Text()) }

// ChildrenWithTokens returns this node's immediate children (nodes and
// tokens interleaved, in source order), each positioned relative to n.
func (n *SyntaxNode) ChildrenWithTokens() []SyntaxElement {
	children := n.green.Children()
	out := make([]SyntaxElement, len(children))
	offset := n.start
	for i, c := range children {
		switch v := c.(type) {
		case *GreenToken:
			out[i] = SyntaxElement{token: &SyntaxToken{green: v, start: offset}}
		case *GreenNode:
			out[i] = SyntaxElement{node: &SyntaxNode{green: v, start: offset}}
		}
		offset += len(c.Text())
	}
	return out
}

// Children returns only the child nodes (tokens skipped).
func (n *SyntaxNode) Children() []*SyntaxNode {
	var out []*SyntaxNode
	for _, e := range n.ChildrenWithTokens() {
		if node, ok := e.AsNode(); ok {
			out = append(out, node)
		}
	}
	return out
}

// SyntaxElement is a tagged union of *SyntaxNode and *SyntaxToken, mirroring
// rnix::SyntaxElement.
type SyntaxElement struct {
	node  *SyntaxNode
	token *SyntaxToken
}

func NodeElement(n *SyntaxNode) SyntaxElement   { return SyntaxElement{node: n} }
func TokenElement(t *SyntaxToken) SyntaxElement { return SyntaxElement{token: t} }

func (e SyntaxElement) AsNode() (*SyntaxNode, bool)   { return e.node, e.node != nil }
func (e SyntaxElement) AsToken() (*SyntaxToken, bool) { return e.token, e.token != nil }
func (e SyntaxElement) IsNode() bool                  { return e.node != nil }

func (e SyntaxElement) Kind() synkind.Kind {
	if e.node != nil {
		return e.node.Kind()
	}
	return e.token.Kind()
}

func (e SyntaxElement) Text() string {
	if e.node != nil {
		return e.node.Text()
	}
	return e.token.Text()
}

func (e SyntaxElement) Start() int {
	if e.node != nil {
		return e.node.Start()
	}
	return e.token.Start()
}
