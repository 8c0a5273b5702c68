package ast

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/value"
)

// AST

// Node is an expression. Nodes are never mutated after construction and
// each node has at most one parent.
type Node interface {
	fmt.Stringer
	Base() token.Token
	// Plate applies the given function to each child node and returns a node
	// built from the results. The receiver is left untouched.
	// If f returns an error, f also must return the original argument n.
	// FYI: https://hackage.haskell.org/package/lens-5.2.3/docs/Control-Lens-Plated.html
	Plate(error, func(Node, error) (Node, error)) (Node, error)
}

type Literal struct {
	token.Token
	Value value.Value
}

func (l Literal) String() string {
	return parenthesize("literal", l.Value).String()
}

func (l *Literal) Base() token.Token {
	return l.Token
}

func (l *Literal) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return l, err
}

var _ Node = &Literal{}

type Unary struct {
	Op      token.Token
	Operand Node
}

func (u Unary) String() string {
	return parenthesize("unary", op(u.Op), u.Operand).String()
}

func (u *Unary) Base() token.Token {
	return u.Op
}

func (u *Unary) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	operand, err := f(u.Operand, err)

	return &Unary{Op: u.Op, Operand: operand}, err
}

var _ Node = &Unary{}

type Binary struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (b Binary) String() string {
	return parenthesize("binary", b.Left, op(b.Op), b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Op
}

func (b *Binary) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	left, err := f(b.Left, err)
	right, err := f(b.Right, err)

	return &Binary{Left: left, Op: b.Op, Right: right}, err
}

var _ Node = &Binary{}

// op prints an operator token as its lexeme.
type op token.Token

func (o op) String() string {
	return o.Lexeme
}

func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")

	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}

	return &b
}

func Children(n Node) []Node {
	var children []Node
	_, err := n.Plate(nil, func(n Node, _ error) (Node, error) {
		children = append(children, n)

		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}

	return children
}

// Universe lists n and all of its descendants in post-order.
func Universe(n Node) []Node {
	var nodes []Node
	for _, child := range Children(n) {
		nodes = append(nodes, Universe(child)...)
	}

	return append(nodes, n)
}
