// Package tree indexes a parsed page for navigation and offset lookup.
//
// Nodes live in a flat map keyed by id. Every element of the page,
// including list items, table cells and inline elements, becomes a node.
package tree

import (
	"slices"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/idalloc"
	"github.com/yaklabco/govimwiki/pkg/located"
)

// index holds the arena shared by Tree and Forest.
type index struct {
	pool  *idalloc.Pool
	nodes map[idalloc.ID]*Node
	roots []idalloc.ID
}

// Tree is an index with exactly one root.
type Tree struct {
	index
}

// Forest is an index with an ordered list of roots sharing one id space.
type Forest struct {
	index
}

// Build indexes l and all of its descendants, drawing ids from pool in
// depth-first pre-order.
func Build(l located.Located[elements.Element], pool *idalloc.Pool) *Tree {
	t := &Tree{index{pool: pool, nodes: make(map[idalloc.ID]*Node)}}
	root := t.add(l, 0, false)
	t.roots = []idalloc.ID{root}
	return t
}

func (ix *index) add(l located.Located[elements.Element], parent idalloc.ID, hasParent bool) idalloc.ID {
	id := ix.pool.Next()
	node := &Node{ID: id, Data: l, parent: parent, hasParent: hasParent}
	ix.nodes[id] = node

	for _, child := range l.Value.Children() {
		node.Children = append(node.Children, ix.add(child, id, true))
	}
	return id
}

// FromPage builds one tree per top-level block, each with its own pool
// on alloc, and merges them into a forest.
func FromPage(page *elements.Page, alloc *idalloc.Allocator) *Forest {
	trees := make([]*Tree, 0, page.Len())
	for _, block := range page.Elements {
		trees = append(trees, Build(located.Upcast[elements.BlockElement, elements.Element](block), idalloc.NewPool(alloc)))
	}
	return MergeUnchecked(trees...)
}

// MergeUnchecked combines trees into a forest. Ids are not checked for
// collisions; trees must have drawn ids from a shared allocator. The
// input trees must not be used afterwards.
func MergeUnchecked(trees ...*Tree) *Forest {
	f := &Forest{index{nodes: make(map[idalloc.ID]*Node)}}
	pools := make([]*idalloc.Pool, 0, len(trees))
	for _, t := range trees {
		f.roots = append(f.roots, t.roots...)
		for id, n := range t.nodes {
			f.nodes[id] = n
		}
		pools = append(pools, t.pool)
	}
	f.pool = idalloc.MergePools(pools...)
	return f
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.nodes[t.roots[0]]
}

// FindAtOffset returns the deepest node whose region contains offset.
func (t *Tree) FindAtOffset(offset int) (*Node, bool) {
	_, n, ok := t.findAtOffset(t.Root(), offset, 0)
	return n, ok
}

// Roots returns the root nodes in order.
func (f *Forest) Roots() []*Node {
	return f.lookup(f.roots)
}

// FindAtOffset searches the first root whose region contains offset and
// returns its deepest node containing offset. Later roots are not
// consulted.
func (f *Forest) FindAtOffset(offset int) (*Node, bool) {
	for _, root := range f.Roots() {
		if _, n, ok := f.findAtOffset(root, offset, 0); ok {
			return n, true
		}
	}
	return nil, false
}

func (ix *index) findAtOffset(n *Node, offset, depth int) (int, *Node, bool) {
	if !n.Contains(offset) {
		return 0, nil, false
	}

	bestDepth, best := depth, n
	found := false
	for _, child := range ix.Children(n) {
		d, c, ok := ix.findAtOffset(child, offset, depth+1)
		if ok && (!found || d >= bestDepth) {
			bestDepth, best, found = d, c, true
		}
	}
	return bestDepth, best, true
}

// Len returns the number of nodes.
func (ix *index) Len() int { return len(ix.nodes) }

// Node returns the node with id.
func (ix *index) Node(id idalloc.ID) (*Node, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// Nodes returns every node ordered by id.
func (ix *index) Nodes() []*Node {
	ids := make([]idalloc.ID, 0, len(ix.nodes))
	for id := range ix.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ix.lookup(ids)
}

// Parent returns the parent of n.
func (ix *index) Parent(n *Node) (*Node, bool) {
	id, ok := n.Parent()
	if !ok {
		return nil, false
	}
	return ix.Node(id)
}

// RootFor returns the root of the tree containing n.
func (ix *index) RootFor(n *Node) *Node {
	for {
		p, ok := ix.Parent(n)
		if !ok {
			return n
		}
		n = p
	}
}

// Ancestors returns the ancestors of n, nearest first.
func (ix *index) Ancestors(n *Node) []*Node {
	var out []*Node
	for p, ok := ix.Parent(n); ok; p, ok = ix.Parent(p) {
		out = append(out, p)
	}
	return out
}

// Descendants returns every node below n in breadth-first order.
func (ix *index) Descendants(n *Node) []*Node {
	var out []*Node
	queue := ix.Children(n)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)
		queue = append(queue, ix.Children(next)...)
	}
	return out
}

// Children returns the direct children of n in document order.
func (ix *index) Children(n *Node) []*Node {
	return ix.lookup(n.Children)
}

// Siblings returns the nodes sharing n's parent, excluding n. For a root
// these are the other roots.
func (ix *index) Siblings(n *Node) []*Node {
	return append(ix.SiblingsBefore(n), ix.SiblingsAfter(n)...)
}

// SiblingsBefore returns the siblings preceding n, first to last.
func (ix *index) SiblingsBefore(n *Node) []*Node {
	ids := ix.siblingIDs(n)
	i := slices.Index(ids, n.ID)
	if i < 0 {
		return nil
	}
	return ix.lookup(ids[:i])
}

// SiblingsAfter returns the siblings following n, nearest first.
func (ix *index) SiblingsAfter(n *Node) []*Node {
	ids := ix.siblingIDs(n)
	i := slices.Index(ids, n.ID)
	if i < 0 {
		return nil
	}
	return ix.lookup(ids[i+1:])
}

func (ix *index) siblingIDs(n *Node) []idalloc.ID {
	if p, ok := ix.Parent(n); ok {
		return p.Children
	}
	return ix.roots
}

func (ix *index) lookup(ids []idalloc.ID) []*Node {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := ix.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Close returns the ids used by the index to its allocator. The index
// must not be used afterwards.
func (ix *index) Close() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
