// SPDX-License-Identifier: Unlicense OR MIT

package css

// Hierarchy gives the matcher and ConstructCascadeTree just enough of a
// DOM tree shape to walk it: a node's parent and its children, in
// document order. Implementations are expected to be O(1) lookups (e.g.
// backed by a slice-based arena), since the matcher walks to the root for
// every query.
type Hierarchy interface {
	Parent(id NodeID) (NodeID, bool)
	Children(id NodeID) []NodeID
}

// ConstructCascadeTree computes CascadeInfo for every node reachable from
// roots, in a single preorder pass. It mirrors
// construct_html_cascade_tree: each node's IndexInParent and IsLastChild
// are derived entirely from its own position in its parent's Children
// slice, so roots (which have no parent) keep the zero CascadeInfo.
func ConstructCascadeTree(h Hierarchy, roots []NodeID) map[NodeID]CascadeInfo {
	info := make(map[NodeID]CascadeInfo)
	var walk func(id NodeID)
	walk = func(id NodeID) {
		children := h.Children(id)
		last := len(children) - 1
		for i, child := range children {
			info[child] = CascadeInfo{
				IndexInParent: uint32(i),
				IsLastChild:   i == last,
			}
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return info
}
