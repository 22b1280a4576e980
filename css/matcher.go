// SPDX-License-Identifier: Unlicense OR MIT

package css

// combinator records why a contentGroup ended: whether the group to its
// left (in source order) must be the *direct* parent of the node that
// matched this group, or may be any ancestor.
type combinator uint8

const (
	viaChildren combinator = iota
	viaDirectChildren
)

// contentGroup is a maximal run of simple selectors (Type/Class/ID/Pseudo/
// Global) between combinators, e.g. ".tab.active" in ".tab.active > p".
// Order within a group is not meaningful for matching.
type contentGroup = []PathSelector

// groupIterator splits a CssPath into contentGroups, walking from the
// rightmost group (the one anchored to the queried node) toward the root,
// mirroring CssGroupIterator.
type groupIterator struct {
	path       []PathSelector
	end        int // exclusive upper bound of the unconsumed prefix
	lastReason combinator
	calls      int
}

func newGroupIterator(path []PathSelector) *groupIterator {
	return &groupIterator{path: path, end: len(path), lastReason: viaChildren}
}

// next returns the next contentGroup (scanning right to left), the
// combinator that separated it from the group to its left, and whether
// this is the anchor group — the first one produced, i.e. the group
// anchored to the originally-queried node — or ok=false once the path is
// exhausted.
func (it *groupIterator) next() (group contentGroup, reason combinator, isAnchor bool, ok bool) {
	if it.end == 0 {
		return nil, 0, false, false
	}

	i := it.end
	var out []PathSelector
	for i != 0 {
		sel := it.path[i-1]
		if sel.Kind == DirectChildren {
			it.lastReason = viaDirectChildren
			break
		}
		if sel.Kind == Children {
			it.lastReason = viaChildren
			break
		}
		out = append(out, sel)
		i--
	}

	it.calls++
	anchor := it.calls == 1

	if i == 0 {
		if len(out) == 0 {
			return nil, 0, false, false
		}
		it.end = 0
		return out, it.lastReason, anchor, true
	}
	// Skip the combinator itself.
	it.end = i - 1
	return out, it.lastReason, anchor, true
}

// Matches decides whether node matches path, given the tree's hierarchy,
// per-node NodeData, per-node CascadeInfo, and an optional pseudo-class
// that represents the live dynamic state being queried (nil if none).
//
// Iteration walks content groups right to left, one tree level per group:
// the rightmost group must match node itself, the next group must match
// node's parent, and so on. A descendant combinator does not search
// further ancestors: the group to its left is tested against the parent
// only, just as with `>`. A `*` group matches even when the walk runs off
// the root (absent parent).
func Matches(path CssPath, node NodeID, h Hierarchy, data map[NodeID]NodeData, cascade map[NodeID]CascadeInfo, expectedEnding *PseudoKind) bool {
	if len(path.Selectors) == 0 {
		return false
	}

	current, haveCurrent := node, true
	directParentRequired := false
	lastMatched := true

	it := newGroupIterator(path.Selectors)
	for {
		group, reason, isAnchor, ok := it.next()
		if !ok {
			break
		}

		if !haveCurrent {
			return isGlobalOnly(group)
		}

		matched := selectorGroupMatches(group, cascade[current], data[current], expectedEnding, isAnchor)

		if directParentRequired && !matched {
			return false
		}
		if matched && !lastMatched {
			return false
		}

		lastMatched = matched
		directParentRequired = reason == viaDirectChildren

		parent, ok := h.Parent(current)
		haveCurrent = ok
		current = parent
	}

	return lastMatched
}

func isGlobalOnly(group contentGroup) bool {
	return len(group) == 1 && group[0].Kind == Global
}

// selectorGroupMatches tests a single contentGroup (no combinators) against
// one node's data and cascade info.
func selectorGroupMatches(group contentGroup, cascade CascadeInfo, node NodeData, expectedEnding *PseudoKind, isLastGroup bool) bool {
	for _, sel := range group {
		switch sel.Kind {
		case Global:
			// always matches
		case Type:
			if node.Type != sel.Name {
				return false
			}
		case Class:
			if !node.hasClass(sel.Name) {
				return false
			}
		case ID:
			if !node.hasID(sel.Name) {
				return false
			}
		case Pseudo:
			if !pseudoMatches(sel.Pseudo, cascade, expectedEnding, isLastGroup) {
				return false
			}
		case DirectChildren, Children:
			// A combinator should never appear inside a content group;
			// the splitter consumes them. Treat as a non-match.
			return false
		}
	}
	return true
}

func pseudoMatches(p PseudoSelector, cascade CascadeInfo, expectedEnding *PseudoKind, isLastGroup bool) bool {
	switch p.Kind {
	case First:
		return cascade.IndexInParent == 0
	case Last:
		return cascade.IsLastChild
	case NthChild:
		return nthChildMatches(p.Pattern, cascade.IndexInParent+1)
	case Hover, Active, Focus:
		if !isLastGroup {
			return false
		}
		return expectedEnding != nil && *expectedEnding == p.Kind
	default:
		return false
	}
}

func nthChildMatches(pattern NthChildPattern, k uint32) bool {
	switch pattern.Kind {
	case NthNumber:
		return k == pattern.Number
	case NthEven:
		return k%2 == 0
	case NthOdd:
		return k%2 == 1
	case NthPattern:
		return k >= pattern.Offset && (k-pattern.Offset)%pattern.Repeat == 0
	default:
		return false
	}
}
