// Package quadtree implements a loose spatial index over axis-aligned boxes.
//
// The tree subdivides along X and Z only. Elements are stored in the deepest
// node whose box fully contains them; elements that straddle a split line stay
// in the branch that owns the line. Nodes live in an arena and refer to each
// other by index so a split never needs a pointer back to the parent.
package quadtree

import (
	"github.com/aukilabs/go-tooling/pkg/errors"

	"maze3d/internal/geom"
)

const (
	// SplitThreshold is the number of elements a leaf holds before it splits.
	SplitThreshold = 50
	// MaxDepth bounds subdivision so that many identical boxes cannot split forever.
	MaxDepth = 16
)

const (
	ErrTypeNilElement   = "quadtree_nil_element"
	ErrTypeNotContained = "quadtree_not_contained"
	ErrTypeNodeNotFound = "quadtree_node_not_found"
	ErrTypeInvalidNode  = "quadtree_invalid_node"
)

// Element is anything with a box. The box must not change while the element is
// stored in a tree.
type Element interface {
	comparable
	Bounds() geom.Box
}

type kind uint8

const (
	leafKind kind = iota
	branchKind
	rootKind
)

type node[T Element] struct {
	kind     kind
	box      geom.Box
	depth    int
	elems    []T // leaf contents, or elements spilled at a branch
	children [4]int
}

// Tree is a quadtree rooted at a fixed box.
type Tree[T Element] struct {
	nodes []node[T]
	free  []int
	root  int
	count int
}

// New returns an empty tree covering area.
func New[T Element](area geom.Box) *Tree[T] {
	t := &Tree[T]{}
	root, err := t.newLeaf(area, 0, rootKind)
	if err != nil {
		panic(err)
	}
	t.root = root
	return t
}

// Bounds returns the box covered by the tree.
func (t *Tree[T]) Bounds() geom.Box {
	return t.nodes[t.root].box
}

// Len returns the number of stored elements.
func (t *Tree[T]) Len() int {
	return t.count
}

// Add inserts e. It fails when e is the zero value or lies outside the tree.
func (t *Tree[T]) Add(e T) error {
	var zero T
	if e == zero {
		return errors.New("element is nil").WithType(ErrTypeNilElement)
	}
	box := e.Bounds()
	if !t.nodes[t.root].box.Contains(box) {
		return errors.New("element is outside the tree").
			WithType(ErrTypeNotContained).
			WithTag("box", box.String()).
			WithTag("tree", t.nodes[t.root].box.String())
	}

	repl, err := t.add(t.root, e, box)
	if err != nil {
		return err
	}
	if err := t.replaceRoot(t.root, repl); err != nil {
		return err
	}
	t.count++
	return nil
}

// add stores e below idx and returns the node that now occupies idx's slot.
func (t *Tree[T]) add(idx int, e T, box geom.Box) (int, error) {
	if t.nodes[idx].kind == branchKind {
		if c := t.childFor(idx, box); c >= 0 {
			repl, err := t.add(c, e, box)
			if err != nil {
				return idx, err
			}
			if err := t.replaceChild(idx, c, repl); err != nil {
				return idx, err
			}
			return idx, nil
		}
		n := &t.nodes[idx]
		n.elems = append(n.elems, e)
		return idx, nil
	}

	n := &t.nodes[idx]
	n.elems = append(n.elems, e)
	if len(n.elems) <= SplitThreshold || n.depth >= MaxDepth {
		return idx, nil
	}
	return t.split(idx)
}

// split turns the leaf at idx into a branch with four fresh leaves and
// redistributes its elements. The leaf slot is released.
func (t *Tree[T]) split(idx int) (int, error) {
	old := t.nodes[idx]

	children := make([]int, 0, 4)
	for _, q := range old.box.QuadrantsXZ() {
		c, err := t.newLeaf(q, old.depth+1, branchKind)
		if err != nil {
			return idx, err
		}
		children = append(children, c)
	}

	b, err := t.newBranch(old.box, old.depth, children)
	if err != nil {
		return idx, err
	}
	for _, e := range old.elems {
		if _, err := t.add(b, e, e.Bounds()); err != nil {
			return idx, err
		}
	}

	t.release(idx)
	return b, nil
}

// childFor returns the first child of branch idx that fully contains box, or -1.
func (t *Tree[T]) childFor(idx int, box geom.Box) int {
	for _, c := range t.nodes[idx].children {
		if t.nodes[c].box.Contains(box) {
			return c
		}
	}
	return -1
}

func (t *Tree[T]) replaceRoot(old, repl int) error {
	if old == repl {
		return nil
	}
	if t.root != old {
		return errors.New("root does not hold node").
			WithType(ErrTypeNodeNotFound).
			WithTag("node", old)
	}
	t.root = repl
	return nil
}

func (t *Tree[T]) replaceChild(parent, old, repl int) error {
	if old == repl {
		return nil
	}
	n := &t.nodes[parent]
	for i, c := range n.children {
		if c == old {
			n.children[i] = repl
			return nil
		}
	}
	return errors.New("branch does not hold node").
		WithType(ErrTypeNodeNotFound).
		WithTag("branch", parent).
		WithTag("node", old)
}

func (t *Tree[T]) newLeaf(box geom.Box, depth int, parent kind) (int, error) {
	if parent == leafKind {
		return -1, errors.New("leaf cannot be the parent of a leaf").
			WithType(ErrTypeInvalidNode)
	}
	return t.alloc(node[T]{kind: leafKind, box: box, depth: depth}), nil
}

func (t *Tree[T]) newBranch(box geom.Box, depth int, children []int) (int, error) {
	if len(children) != 4 {
		return -1, errors.New("branch needs exactly four children").
			WithType(ErrTypeInvalidNode).
			WithTag("children", len(children))
	}
	n := node[T]{kind: branchKind, box: box, depth: depth}
	copy(n.children[:], children)
	return t.alloc(n), nil
}

func (t *Tree[T]) alloc(n node[T]) int {
	if l := len(t.free); l > 0 {
		idx := t.free[l-1]
		t.free = t.free[:l-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree[T]) release(idx int) {
	t.nodes[idx] = node[T]{}
	t.free = append(t.free, idx)
}

// Remove deletes e and reports whether it was present. Branches are never
// merged back into leaves.
func (t *Tree[T]) Remove(e T) bool {
	var zero T
	if e == zero {
		return false
	}
	box := e.Bounds()
	idx := t.root
	if !t.nodes[idx].box.Contains(box) {
		return false
	}
	for t.nodes[idx].kind == branchKind {
		c := t.childFor(idx, box)
		if c < 0 {
			break
		}
		idx = c
	}

	n := &t.nodes[idx]
	for i, x := range n.elems {
		if x == e {
			last := len(n.elems) - 1
			n.elems[i] = n.elems[last]
			n.elems[last] = zero
			n.elems = n.elems[:last]
			t.count--
			return true
		}
	}
	return false
}
