// Package ir holds the abstract syntax tree produced by parsing
// script text. Trees are built once per parse and read-only after.
package ir

import (
	"github.com/pdxkit/go-pdxscript/token"
)

type Kind int

const (
	Block Kind = iota
	Property
)

func (k Kind) String() string {
	if k == Block {
		return "Block"
	}
	return "Property"
}

// Node is one statement in a script document. A Block has Children
// and no Value; a Property carries its raw right-hand side in Value.
// Children preserve source order and are never reordered.
type Node struct {
	Kind        Kind
	Parent      *Node
	ParentIndex int

	Key      string
	Operator string
	Value    string

	Children []*Node

	Range      token.Range
	KeyRange   token.Range
	ValueRange token.Range
}

// NewBlock returns an empty Block node with the given key.
func NewBlock(key string) *Node {
	return &Node{Kind: Block, Key: key}
}

// NewProperty returns a Property node key op value.
func NewProperty(key, op, value string) *Node {
	return &Node{Kind: Property, Key: key, Operator: op, Value: value}
}

// Append adds child to y, maintaining parent links.
func (y *Node) Append(child *Node) {
	child.Parent = y
	child.ParentIndex = len(y.Children)
	y.Children = append(y.Children, child)
}

// Get returns the first direct child with the given key, or nil.
func (y *Node) Get(key string) *Node {
	for _, c := range y.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// GetAll returns all direct children with the given key, in source order.
func (y *Node) GetAll(key string) []*Node {
	var res []*Node
	for _, c := range y.Children {
		if c.Key == key {
			res = append(res, c)
		}
	}
	return res
}

// ChildMap groups y's direct children by key into a multimap, built
// once per visited block rather than re-scanned per field lookup.
func (y *Node) ChildMap() map[string][]*Node {
	res := make(map[string][]*Node, len(y.Children))
	for _, c := range y.Children {
		res[c.Key] = append(res[c.Key], c)
	}
	return res
}

// Visit walks y depth-first. f is called with isPost=false before
// descending and isPost=true after; returning false from the pre
// call skips the node's children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range y.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Root returns the topmost ancestor of y.
func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
