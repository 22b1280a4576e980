// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import (
	"testing"

	"github.com/conradludgate/azul/shaping"
	"github.com/conradludgate/azul/words"
)

func simpleLayout(t *testing.T, text string, glyphsPerWord [][]shaping.GlyphInfo, widths []int32, unitsPerEm uint16, fontSizePx float32) InlineText {
	t.Helper()
	w := words.Tokenize(text)

	var items []ShapedWord
	for i, g := range glyphsPerWord {
		items = append(items, ShapedWord{GlyphInfos: g, WordWidth: widths[i]})
	}
	sw := ShapedWords{Items: items, UnitsPerEm: unitsPerEm, SpaceAdvance: int32(unitsPerEm)}

	options := ResolvedTextLayoutOptions{FontSizePx: fontSizePx, LineHeight: ptr(1.0)}
	wp := PositionWords(w, sw, options)
	layout := WordPositionsToInlineTextLayout(wp)
	return Assemble(w, sw, wp, layout)
}

func TestAssembleSimpleGlyphAdvances(t *testing.T) {
	glyphs := []shaping.GlyphInfo{
		{GlyphIndex: 1, Advance: shaping.Advance{AdvanceX: 5}},
		{GlyphIndex: 2, Advance: shaping.Advance{AdvanceX: 5}},
	}
	it := simpleLayout(t, "ab", [][]shaping.GlyphInfo{glyphs}, []int32{10}, 10, 10)

	if len(it.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(it.Lines))
	}
	word := it.Lines[0].Words[0]
	if word.Kind != InlineWord {
		t.Fatalf("first InlineWordItem.Kind = %v, want InlineWord", word.Kind)
	}
	if len(word.Contents.Glyphs) != 2 {
		t.Fatalf("len(Glyphs) = %d, want 2", len(word.Contents.Glyphs))
	}
	if g0, g1 := word.Contents.Glyphs[0], word.Contents.Glyphs[1]; g0.Bounds.Min.X != 0 || g1.Bounds.Min.X != 5 {
		t.Errorf("glyph origins = %v, %v; want 0, 5", g0.Bounds.Min.X, g1.Bounds.Min.X)
	}
}

func TestAssembleMarkAnchorInheritsBaseOrigin(t *testing.T) {
	glyphs := []shaping.GlyphInfo{
		{GlyphIndex: 1, Advance: shaping.Advance{AdvanceX: 8}},
		{GlyphIndex: 2, Placement: shaping.Placement{Kind: shaping.PlacementMarkAnchor, BaseGlyphIndex: 0}},
	}
	it := simpleLayout(t, "a", [][]shaping.GlyphInfo{glyphs}, []int32{8}, 10, 10)

	word := it.Lines[0].Words[0]
	base, mark := word.Contents.Glyphs[0], word.Contents.Glyphs[1]
	if mark.Bounds.Min != base.Bounds.Min {
		t.Errorf("mark origin = %v, want to match base origin %v", mark.Bounds.Min, base.Bounds.Min)
	}
}

func TestAssembleInvalidForwardPlacementFallsBackToNone(t *testing.T) {
	glyphs := []shaping.GlyphInfo{
		{GlyphIndex: 1, Placement: shaping.Placement{Kind: shaping.PlacementMarkAnchor, BaseGlyphIndex: 1}},
		{GlyphIndex: 2, Advance: shaping.Advance{AdvanceX: 5}},
	}
	// glyph 0 references glyph 1, which has not been appended yet: must not panic,
	// and must fall back to PlacementNone's origin (0, 0).
	it := simpleLayout(t, "a", [][]shaping.GlyphInfo{glyphs}, []int32{5}, 10, 10)
	g0 := it.Lines[0].Words[0].Contents.Glyphs[0]
	if g0.Bounds.Min.X != 0 || g0.Bounds.Min.Y != 0 {
		t.Errorf("invalid forward reference origin = %v, want (0,0)", g0.Bounds.Min)
	}
}

func TestGetLayoutedGlyphsFlattensAllLines(t *testing.T) {
	glyphs := []shaping.GlyphInfo{{GlyphIndex: 7, Advance: shaping.Advance{AdvanceX: 5}}}
	it := simpleLayout(t, "a\nb", [][]shaping.GlyphInfo{glyphs, glyphs}, []int32{5, 5}, 10, 10)

	lg := it.GetLayoutedGlyphs()
	if len(lg.Glyphs) != 2 {
		t.Fatalf("len(Glyphs) = %d, want 2", len(lg.Glyphs))
	}
	if lg.Glyphs[0].Point.Y == lg.Glyphs[1].Point.Y {
		t.Errorf("glyphs on different lines should have different Y: both %v", lg.Glyphs[0].Point.Y)
	}
}
