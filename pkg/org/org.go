// Package org provides the organizational hierarchy data model.
//
// A hierarchy is a rooted tree of nodes: exactly one root, every other
// node with exactly one parent, finite and acyclic. The package supports
// two representations:
//
//   - Tree: [Node] with nested Children, used by the layout engine
//   - Flat: []Record with parent references, used for CSV interchange
//
// [Build] converts flat records to a tree and enforces the structural
// invariants (unique ids, known parents, single root, no cycles).
// [Flatten] is the inverse and is round-trip faithful. Downstream
// consumers (the layout engine in particular) trust a tree produced by
// Build; [Validate] re-checks an arbitrary tree for callers that
// construct trees by hand.
package org

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned by [Build] and [Validate] when a node has
	// an empty identifier. All nodes must have non-empty ids.
	ErrEmptyID = errors.New("node ID must not be empty")

	// ErrDuplicateID is returned by [Build] and [Validate] when two
	// nodes share an identifier. Node ids must be unique.
	ErrDuplicateID = errors.New("duplicate node ID")

	// ErrUnknownParent is returned by [Build] when a record references
	// a parent id that does not exist in the record set.
	ErrUnknownParent = errors.New("unknown parent ID")

	// ErrNoRoot is returned by [Build] when no record has an empty
	// parent id. Every hierarchy needs exactly one root.
	ErrNoRoot = errors.New("hierarchy has no root")

	// ErrMultipleRoots is returned by [Build] when more than one record
	// has an empty parent id. Multi-root forests are not supported.
	ErrMultipleRoots = errors.New("hierarchy has multiple roots")

	// ErrCycle is returned by [Build] when parent references form a
	// cycle, leaving nodes unreachable from the root.
	ErrCycle = errors.New("hierarchy contains a cycle")
)

// Node is a vertex in the hierarchy tree. Display fields (Name, Title,
// Department, Details) are opaque to layout; only ID and Children
// participate in structure.
type Node struct {
	ID         string  `json:"id"`
	Name       string  `json:"name,omitempty"`
	Title      string  `json:"title,omitempty"`
	Department string  `json:"department,omitempty"`
	Details    string  `json:"details,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and all descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) { total++ })
	return total
}

// Depth returns the number of levels in the subtree rooted at n.
// A single leaf has depth 1.
func (n *Node) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Find returns the node with the given id in the subtree rooted at n,
// or nil if no such node exists.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Record is one row of the flat hierarchy representation. The root has
// an empty ParentID.
type Record struct {
	ID         string `json:"id" bson:"id"`
	ParentID   string `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Name       string `json:"name,omitempty" bson:"name,omitempty"`
	Title      string `json:"title,omitempty" bson:"title,omitempty"`
	Department string `json:"department,omitempty" bson:"department,omitempty"`
	Details    string `json:"details,omitempty" bson:"details,omitempty"`
}

// Build converts flat records into a hierarchy tree. Child order follows
// record order. It returns an error if any structural invariant is
// violated: empty or duplicate ids, unknown parent references, zero or
// multiple roots, or parent cycles.
func Build(records []Record) (*Node, error) {
	if len(records) == 0 {
		return nil, ErrNoRoot
	}

	nodes := make(map[string]*Node, len(records))
	for _, r := range records {
		if r.ID == "" {
			return nil, ErrEmptyID
		}
		if _, exists := nodes[r.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		nodes[r.ID] = &Node{
			ID:         r.ID,
			Name:       r.Name,
			Title:      r.Title,
			Department: r.Department,
			Details:    r.Details,
		}
	}

	var root *Node
	for _, r := range records {
		if r.ParentID == "" {
			if root != nil {
				return nil, fmt.Errorf("%w: %s and %s", ErrMultipleRoots, root.ID, r.ID)
			}
			root = nodes[r.ID]
			continue
		}
		parent, ok := nodes[r.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s (referenced by %s)", ErrUnknownParent, r.ParentID, r.ID)
		}
		if r.ParentID == r.ID {
			return nil, fmt.Errorf("%w: %s is its own parent", ErrCycle, r.ID)
		}
		parent.Children = append(parent.Children, nodes[r.ID])
	}

	if root == nil {
		return nil, ErrNoRoot
	}

	// Parent cycles leave their members unreachable from the root.
	if root.Count() != len(records) {
		return nil, ErrCycle
	}

	return root, nil
}

// Flatten converts a tree back into flat records in pre-order.
// Build(Flatten(root)) reproduces the tree exactly.
func Flatten(root *Node) []Record {
	records := make([]Record, 0, root.Count())
	var walk func(n *Node, parentID string)
	walk = func(n *Node, parentID string) {
		records = append(records, Record{
			ID:         n.ID,
			ParentID:   parentID,
			Name:       n.Name,
			Title:      n.Title,
			Department: n.Department,
			Details:    n.Details,
		})
		for _, c := range n.Children {
			walk(c, n.ID)
		}
	}
	walk(root, "")
	return records
}

// Validate re-checks the structural invariants of a hand-built tree:
// non-empty unique ids and no node reachable twice. Trees produced by
// [Build] always pass.
func Validate(root *Node) error {
	if root == nil {
		return ErrNoRoot
	}
	seen := make(map[string]bool)
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n.ID == "" {
			return ErrEmptyID
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
		}
		seen[n.ID] = true
		for _, c := range n.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}
