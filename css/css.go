// SPDX-License-Identifier: Unlicense OR MIT

// Package css matches a parsed CSS selector path against a DOM node,
// honoring descendant ("space") vs. direct-child (">") combinators and a
// fixed set of pseudo-classes. It is otherwise independent of the rest of
// the layout pipeline: it operates on a caller-supplied tree of node ids
// plus whatever type/class/id data and cascade bookkeeping the caller
// attaches to each node.
package css

import "golang.org/x/exp/slices"

// NodeID identifies a node in the caller's DOM tree. Its zero value has
// no special meaning; callers are free to choose any scheme (index into a
// slice, generational handle, pointer-derived integer, ...).
type NodeID int

// SelectorKind selects which member of PathSelector is populated.
type SelectorKind uint8

const (
	// Global is the `*` selector: matches any node.
	Global SelectorKind = iota
	// Type matches the node's tag name, e.g. `div`.
	Type
	// Class matches one entry of the node's class set, e.g. `.foo`.
	Class
	// ID matches one entry of the node's id set, e.g. `#foo`.
	ID
	// Pseudo matches a pseudo-class, e.g. `:hover`.
	Pseudo
	// DirectChildren is the `>` combinator.
	DirectChildren
	// Children is the ` ` (descendant) combinator.
	Children
)

// PathSelector is one element of a CssPath. Exactly one of the fields
// named after SelectorKind values is meaningful, selected by Kind.
type PathSelector struct {
	Kind   SelectorKind
	Name   string // Type, Class, ID
	Pseudo PseudoSelector
}

func (s PathSelector) isCombinator() bool {
	return s.Kind == DirectChildren || s.Kind == Children
}

// CssPath is an ordered sequence of selectors and combinators, read in
// source order (left to right) exactly as written, e.g. `.tab.active p`.
type CssPath struct {
	Selectors []PathSelector
}

// PseudoKind selects which member of PseudoSelector is populated.
type PseudoKind uint8

const (
	// First matches the node if it is its parent's first child.
	First PseudoKind = iota
	// Last matches the node if it is its parent's last child.
	Last
	// NthChild matches the node's 1-based sibling index against Pattern.
	NthChild
	// Hover matches only when the queried pseudo-state is Hover.
	Hover
	// Active matches only when the queried pseudo-state is Active.
	Active
	// Focus matches only when the queried pseudo-state is Focus.
	Focus
)

// PseudoSelector is one `:pseudo` selector.
type PseudoSelector struct {
	Kind    PseudoKind
	Pattern NthChildPattern // meaningful only when Kind == NthChild
}

// NthChildKind selects which member of NthChildPattern is populated.
type NthChildKind uint8

const (
	// NthNumber matches an exact 1-based index.
	NthNumber NthChildKind = iota
	// NthEven matches even 1-based indices.
	NthEven
	// NthOdd matches odd 1-based indices.
	NthOdd
	// NthPattern matches indices of the form Repeat*n + Offset, n >= 0.
	NthPattern
)

// NthChildPattern is the argument of an `:nth-child(...)` pseudo-selector.
type NthChildPattern struct {
	Kind           NthChildKind
	Number         uint32 // NthNumber
	Repeat, Offset uint32 // NthPattern, e.g. "2n+1" -> {Repeat: 2, Offset: 1}
}

// Helper constructors, one per SelectorKind/PseudoKind, mirroring how a
// parser (out of scope here; see spec §1) would build a CssPath.

// GlobalSelector returns the `*` selector.
func GlobalSelector() PathSelector { return PathSelector{Kind: Global} }

// TypeSelector returns a `tag` selector.
func TypeSelector(tag string) PathSelector { return PathSelector{Kind: Type, Name: tag} }

// ClassSelector returns a `.class` selector.
func ClassSelector(class string) PathSelector { return PathSelector{Kind: Class, Name: class} }

// IDSelector returns an `#id` selector.
func IDSelector(id string) PathSelector { return PathSelector{Kind: ID, Name: id} }

// PseudoSelectorOf wraps a PseudoSelector as a PathSelector.
func PseudoSelectorOf(p PseudoSelector) PathSelector { return PathSelector{Kind: Pseudo, Pseudo: p} }

// DirectChildrenCombinator returns the `>` combinator.
func DirectChildrenCombinator() PathSelector { return PathSelector{Kind: DirectChildren} }

// ChildrenCombinator returns the ` ` (descendant) combinator.
func ChildrenCombinator() PathSelector { return PathSelector{Kind: Children} }

// FirstPseudo returns `:first`.
func FirstPseudo() PseudoSelector { return PseudoSelector{Kind: First} }

// LastPseudo returns `:last`.
func LastPseudo() PseudoSelector { return PseudoSelector{Kind: Last} }

// NthChildPseudo returns `:nth-child(pattern)`.
func NthChildPseudo(pattern NthChildPattern) PseudoSelector {
	return PseudoSelector{Kind: NthChild, Pattern: pattern}
}

// HoverPseudo returns `:hover`.
func HoverPseudo() PseudoSelector { return PseudoSelector{Kind: Hover} }

// ActivePseudo returns `:active`.
func ActivePseudo() PseudoSelector { return PseudoSelector{Kind: Active} }

// FocusPseudo returns `:focus`.
func FocusPseudo() PseudoSelector { return PseudoSelector{Kind: Focus} }

// NthNumberPattern returns the pattern matching a single 1-based index, e.g.
// `:nth-child(3)`.
func NthNumberPattern(n uint32) NthChildPattern { return NthChildPattern{Kind: NthNumber, Number: n} }

// NthEvenPattern returns the `even` pattern.
func NthEvenPattern() NthChildPattern { return NthChildPattern{Kind: NthEven} }

// NthOddPattern returns the `odd` pattern.
func NthOddPattern() NthChildPattern { return NthChildPattern{Kind: NthOdd} }

// NthRepeatPattern returns the `repeat*n + offset` pattern, e.g. `2n+1` is
// NthRepeatPattern(2, 1).
func NthRepeatPattern(repeat, offset uint32) NthChildPattern {
	return NthChildPattern{Kind: NthPattern, Repeat: repeat, Offset: offset}
}

// NodeData is the minimal per-node data the matcher needs: its tag name
// and its sets of classes and ids. A real DOM node typically carries much
// more than this; callers adapt their own node type into NodeData (or an
// equivalent) at the call site.
type NodeData struct {
	Type    string
	Classes []string
	IDs     []string
}

func (n NodeData) hasClass(c string) bool {
	return slices.Contains(n.Classes, c)
}

func (n NodeData) hasID(id string) bool {
	return slices.Contains(n.IDs, id)
}

// CascadeInfo is per-node positional data needed for sibling-relative
// pseudo-classes (:first, :last, :nth-child). Construct it for an entire
// tree with ConstructCascadeTree.
type CascadeInfo struct {
	IndexInParent uint32
	IsLastChild   bool
}
