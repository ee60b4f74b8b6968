// Package syntax implements a persistent green-tree / positioned red-tree
// concrete syntax tree, the lossless CST representation the layout engine
// consumes and re-emits. It stands in for the "existing lossless CST
// library with green/red trees and typed SyntaxKind tokens and nodes" that
// the layout engine treats as an external collaborator.
package syntax

import "github.com/nihei9/nixfmt/synkind"

// GreenElement is implemented by *GreenNode and *GreenToken.
type GreenElement interface {
	Kind() synkind.Kind
	Text() string
	isGreenElement()
}

// GreenToken is an immutable leaf: a single lexeme of source text.
type GreenToken struct {
	kind synkind.Kind
	text string
}

func NewGreenToken(kind synkind.Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

func (t *GreenToken) Kind() synkind.Kind { return t.kind }
func (t *GreenToken) Text() string       { return t.text }
func (t *GreenToken) isGreenElement()    {}

// GreenNode is an immutable, persistent interior node: a kind plus an
// ordered list of child elements (nodes and tokens interleaved).
type GreenNode struct {
	kind     synkind.Kind
	children []GreenElement
}

func NewGreenNode(kind synkind.Kind, children []GreenElement) *GreenNode {
	return &GreenNode{kind: kind, children: children}
}

func (n *GreenNode) Kind() synkind.Kind       { return n.kind }
func (n *GreenNode) Children() []GreenElement { return n.children }
func (n *GreenNode) isGreenElement()          {}

// Text concatenates the text of every descendant token, i.e. this node's
// full, lossless source text.
func (n *GreenNode) Text() string {
	var b []byte
	var walk func(GreenElement)
	walk = func(e GreenElement) {
		switch v := e.(type) {
		case *GreenToken:
			b = append(b, v.text...)
		case *GreenNode:
			for _, c := range v.children {
				walk(c)
			}
		}
	}
	walk(n)
	return string(b)
}
