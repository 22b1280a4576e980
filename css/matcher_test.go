// SPDX-License-Identifier: Unlicense OR MIT

package css

import "testing"

// buildSampleDOM constructs:
//
//	0: div#root
//	  1: div.bar
//	    2: div.tab.active
//	      3: p.label
func buildSampleDOM() (*testTree, map[NodeID]NodeData) {
	tree := newTestTree()
	tree.addChild(0, 1)
	tree.addChild(1, 2)
	tree.addChild(2, 3)

	data := map[NodeID]NodeData{
		0: {Type: "div", IDs: []string{"root"}},
		1: {Type: "div", Classes: []string{"bar"}},
		2: {Type: "div", Classes: []string{"tab", "active"}},
		3: {Type: "p", Classes: []string{"label"}},
	}
	return tree, data
}

func cascadeOf(tree *testTree) map[NodeID]CascadeInfo {
	return ConstructCascadeTree(tree, []NodeID{0})
}

func TestDescendantVsChildCombinator(t *testing.T) {
	tree, data := buildSampleDOM()
	cascade := cascadeOf(tree)
	label := NodeID(3)

	// Path A: ".tab.active p.label" -> matches the p via a descendant
	// combinator.
	pathA := CssPath{Selectors: []PathSelector{
		ClassSelector("tab"), ClassSelector("active"),
		ChildrenCombinator(),
		TypeSelector("p"), ClassSelector("label"),
	}}
	if !Matches(pathA, label, tree, data, cascade, nil) {
		t.Error("path A (descendant combinator) should match the label")
	}

	// Path B: ".tab.active > .close" -> does not match the p at all.
	pathB := CssPath{Selectors: []PathSelector{
		ClassSelector("tab"), ClassSelector("active"),
		DirectChildrenCombinator(),
		ClassSelector("close"),
	}}
	if Matches(pathB, label, tree, data, cascade, nil) {
		t.Error("path B (.close child) should not match the label")
	}

	// Path C: "*" matches any node, including roots whose parent is
	// absent.
	pathC := CssPath{Selectors: []PathSelector{GlobalSelector()}}
	for _, id := range []NodeID{0, 1, 2, 3} {
		if !Matches(pathC, id, tree, data, cascade, nil) {
			t.Errorf("global selector should match node %d", id)
		}
	}
}

func TestNthChildPattern(t *testing.T) {
	tree := newTestTree()
	data := map[NodeID]NodeData{}
	for i := NodeID(1); i <= 5; i++ {
		tree.addChild(0, i)
		data[i] = NodeData{Type: "li"}
	}
	cascade := cascadeOf(tree)

	// "2n+1": matches 1-based indices 1, 3, 5 -> NodeIDs 1, 3, 5.
	path := CssPath{Selectors: []PathSelector{
		PseudoSelectorOf(NthChildPseudo(NthRepeatPattern(2, 1))),
	}}

	want := map[NodeID]bool{1: true, 2: false, 3: true, 4: false, 5: true}
	for id, expect := range want {
		if got := Matches(path, id, tree, data, cascade, nil); got != expect {
			t.Errorf("node %d: nth-child(2n+1) matched=%v, want %v", id, got, expect)
		}
	}
}

func TestFirstAndLastPseudo(t *testing.T) {
	tree := newTestTree()
	data := map[NodeID]NodeData{}
	for i := NodeID(1); i <= 3; i++ {
		tree.addChild(0, i)
		data[i] = NodeData{Type: "li"}
	}
	cascade := cascadeOf(tree)

	first := CssPath{Selectors: []PathSelector{PseudoSelectorOf(FirstPseudo())}}
	last := CssPath{Selectors: []PathSelector{PseudoSelectorOf(LastPseudo())}}

	if !Matches(first, 1, tree, data, cascade, nil) {
		t.Error(":first should match the first sibling")
	}
	if Matches(first, 2, tree, data, cascade, nil) {
		t.Error(":first should not match the second sibling")
	}
	if !Matches(last, 3, tree, data, cascade, nil) {
		t.Error(":last should match the last sibling")
	}
	if Matches(last, 2, tree, data, cascade, nil) {
		t.Error(":last should not match the middle sibling")
	}
}

func TestPseudoAnchoring(t *testing.T) {
	// body > #main
	tree := newTestTree()
	tree.addChild(0, 1)
	data := map[NodeID]NodeData{
		0: {Type: "body"},
		1: {Type: "div", IDs: []string{"main"}},
	}
	cascade := cascadeOf(tree)
	hover := Hover

	// "body:hover > #main" must NOT match #main: the :hover sits on a
	// non-anchor group.
	notAnchored := CssPath{Selectors: []PathSelector{
		TypeSelector("body"), PseudoSelectorOf(HoverPseudo()),
		DirectChildrenCombinator(),
		IDSelector("main"),
	}}
	if Matches(notAnchored, 1, tree, data, cascade, &hover) {
		t.Error("body:hover > #main should not match #main")
	}

	// "body > #main:hover" must match #main: :hover is on the anchor
	// group.
	anchored := CssPath{Selectors: []PathSelector{
		TypeSelector("body"),
		DirectChildrenCombinator(),
		IDSelector("main"), PseudoSelectorOf(HoverPseudo()),
	}}
	if !Matches(anchored, 1, tree, data, cascade, &hover) {
		t.Error("body > #main:hover should match #main")
	}

	// Without the matching live state, the anchored form should not
	// match either.
	if Matches(anchored, 1, tree, data, cascade, nil) {
		t.Error("body > #main:hover should not match without a live hover state")
	}
}

func TestMatchesDeterministic(t *testing.T) {
	tree, data := buildSampleDOM()
	cascade := cascadeOf(tree)
	path := CssPath{Selectors: []PathSelector{ClassSelector("tab"), ClassSelector("active")}}

	first := Matches(path, 2, tree, data, cascade, nil)
	for i := 0; i < 10; i++ {
		if Matches(path, 2, tree, data, cascade, nil) != first {
			t.Fatal("Matches is not deterministic for fixed inputs")
		}
	}
}

func TestEmptyPathNeverMatches(t *testing.T) {
	tree, data := buildSampleDOM()
	cascade := cascadeOf(tree)
	if Matches(CssPath{}, 3, tree, data, cascade, nil) {
		t.Error("an empty path should never match")
	}
}
