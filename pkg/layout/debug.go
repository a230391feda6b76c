package layout

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the subtree as an indented tree with each node's computed
// border box, for debugging and golden output. Dirty nodes are flagged
// instead of showing stale numbers.
func (n *Node) Dump() string {
	tree := treeprint.NewWithRoot(n.dumpLabel())
	for _, c := range n.children {
		addDumpBranch(tree, c)
	}
	return tree.String()
}

func addDumpBranch(t treeprint.Tree, n *Node) {
	branch := t.AddBranch(n.dumpLabel())
	for _, c := range n.children {
		addDumpBranch(branch, c)
	}
}

func (n *Node) dumpLabel() string {
	name := n.key
	if name == "" {
		name = "node"
	}
	if n.dirty {
		return fmt.Sprintf("%s (not computed)", name)
	}
	return fmt.Sprintf("%s [x=%.2f y=%.2f w=%.2f h=%.2f]",
		name, n.layout.X, n.layout.Y, n.layout.Width, n.layout.Height)
}
