// SPDX-License-Identifier: Unlicense OR MIT

package css

import "testing"

func TestConstructCascadeTree(t *testing.T) {
	tree, _ := buildSampleDOM()
	cascade := ConstructCascadeTree(tree, []NodeID{0})

	// Root has no parent and is never assigned a CascadeInfo entry; its
	// zero value (index 0, not last) is the documented default.
	if info, ok := cascade[0]; ok && (info.IndexInParent != 0 || info.IsLastChild) {
		t.Errorf("root cascade info unexpectedly non-default: %+v", info)
	}

	// 1, 2, 3 are each an only child of their parent: index 0, last.
	for _, id := range []NodeID{1, 2, 3} {
		info, ok := cascade[id]
		if !ok {
			t.Fatalf("missing cascade info for node %d", id)
		}
		if info.IndexInParent != 0 || !info.IsLastChild {
			t.Errorf("node %d: got %+v, want {0 true}", id, info)
		}
	}
}

func TestConstructCascadeTreeSiblingIndices(t *testing.T) {
	tree := newTestTree()
	for i := NodeID(1); i <= 4; i++ {
		tree.addChild(0, i)
	}
	cascade := ConstructCascadeTree(tree, []NodeID{0})

	for i := NodeID(1); i <= 4; i++ {
		info := cascade[i]
		if info.IndexInParent != uint32(i-1) {
			t.Errorf("node %d: IndexInParent = %d, want %d", i, info.IndexInParent, i-1)
		}
		wantLast := i == 4
		if info.IsLastChild != wantLast {
			t.Errorf("node %d: IsLastChild = %v, want %v", i, info.IsLastChild, wantLast)
		}
	}
}
