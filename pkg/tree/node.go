package tree

import (
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/idalloc"
	"github.com/yaklabco/govimwiki/pkg/located"
)

// Node is one element in an indexed tree. Parent and children are ids
// into the owning tree, never direct references.
type Node struct {
	ID       idalloc.ID
	Children []idalloc.ID
	Data     located.Located[elements.Element]

	parent    idalloc.ID
	hasParent bool
}

// Parent returns the id of the node's parent. Roots have none.
func (n *Node) Parent() (idalloc.ID, bool) {
	return n.parent, n.hasParent
}

// IsRoot returns true if the node has no parent.
func (n *Node) IsRoot() bool { return !n.hasParent }

// Kind returns the kind of the node's element.
func (n *Node) Kind() elements.Kind { return n.Data.Value.Kind() }

// Region returns the source region of the node's element.
func (n *Node) Region() located.Region { return n.Data.Region }

// Contains reports whether offset falls inside the node's region.
func (n *Node) Contains(offset int) bool { return n.Data.Region.Contains(offset) }
