package browser

import (
	"sort"

	"github.com/Timtam/kk-browser/internal/natsort"
	"github.com/Timtam/kk-browser/pkg/types"
)

// TreeNode is one node of the hierarchical category tree. ID is set when a
// category ends exactly at this node; inner path components that no
// category addresses directly have none.
type TreeNode struct {
	Name     string      `json:"name"`
	ID       *types.ID   `json:"id,omitempty"`
	Children []*TreeNode `json:"children"`
}

// CategoryTree folds the flat three-level categories into a tree of path
// components. Sibling nodes are naturally sorted by name.
func (b *Browser) CategoryTree() []*TreeNode {
	root := &TreeNode{}
	for _, c := range b.cat.Categories() {
		parts := c.PathParts()
		if len(parts) == 0 {
			continue
		}
		id := c.ID
		root.append(&id, parts)
	}
	root.sortChildren()
	return root.Children
}

// append walks path down from n, creating missing children, and stamps id
// on the final node. An existing node keeps its id once set.
func (n *TreeNode) append(id *types.ID, path []string) {
	name := path[0]
	var child *TreeNode
	for _, c := range n.Children {
		if c.Name == name {
			child = c
			break
		}
	}
	if child == nil {
		child = &TreeNode{Name: name, Children: []*TreeNode{}}
		n.Children = append(n.Children, child)
	}

	if len(path) == 1 {
		if child.ID == nil {
			child.ID = id
		}
		return
	}
	child.append(id, path[1:])
}

func (n *TreeNode) sortChildren() {
	sort.Slice(n.Children, func(i, j int) bool {
		return natsort.Less(n.Children[i].Name, n.Children[j].Name)
	})
	for _, c := range n.Children {
		c.sortChildren()
	}
}
