// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import (
	"github.com/conradludgate/azul/f32"
	"github.com/conradludgate/azul/shaping"
	"github.com/conradludgate/azul/words"
)

// InlineGlyph is one glyph within a word, positioned relative to that
// word's own origin (not the line's, not the text's).
type InlineGlyph struct {
	Bounds       f32.Rectangle
	Codepoint    rune
	HasCodepoint bool
	GlyphIndex   uint32
}

// InlineTextContents is the glyph run making up one Word token, plus that
// word's bounding box within the line.
type InlineTextContents struct {
	Glyphs []InlineGlyph
	Bounds f32.Rectangle
}

// InlineWordKind distinguishes the three token kinds an InlineWord can
// wrap; only Word carries glyph content.
type InlineWordKind uint8

const (
	InlineReturn InlineWordKind = iota
	InlineSpace
	InlineWord
)

// InlineWordItem is a words.Token resolved into either glyph content or a
// bare Return/Space marker.
type InlineWordItem struct {
	Kind     InlineWordKind
	Contents InlineTextContents
}

// HasTextContent reports whether w carries glyphs (w.Kind == InlineWord).
func (w InlineWordItem) HasTextContent() bool { return w.Kind == InlineWord }

// InlineLine is one visual line's InlineWordItems plus its bounding box,
// relative to (0, 0).
type InlineLine struct {
	Words  []InlineWordItem
	Bounds f32.Rectangle
}

// InlineText is the fully resolved, glyph-level layout of a text run: every
// line, every word's glyphs, and the metrics needed to place them on an
// absolute baseline.
type InlineText struct {
	Lines               []InlineLine
	ContentSize         f32.Point
	FontSizePx          float32
	LastWordIndex       int
	BaselineDescenderPx float32 // negative
}

// Assemble resolves every token's WordPosition into drawable glyph bounds,
// folding in letter spacing and each glyph's Placement (GPOS offset, mark
// attachment, or none).
func Assemble(w words.Words, shapedWords ShapedWords, wp WordPositions, layout InlineTextLayout) InlineText {
	fontSizePx := wp.Options.FontSizePx
	descenderPx := shapedWords.Descender(fontSizePx)
	letterSpacingPx := wp.Options.letterSpacing()
	unitsPerEm := shapedWords.unitsPerEm()

	var lines []InlineLine
	for _, line := range layout.Lines {
		wordStart, wordEnd := line.WordStart, line.WordEnd
		if wordEnd < wordStart {
			wordStart, wordEnd = wordEnd, wordStart
		}
		if wordStart < 0 || wordEnd >= len(w.Items) {
			continue
		}

		var items []InlineWordItem
		for tokenIdx := wordStart; tokenIdx <= wordEnd; tokenIdx++ {
			tok := w.Items[tokenIdx]
			switch tok.Kind {
			case words.Return:
				items = append(items, InlineWordItem{Kind: InlineReturn})
			case words.Space:
				items = append(items, InlineWordItem{Kind: InlineSpace})
			case words.Word:
				if tokenIdx >= len(wp.WordPositions) {
					continue
				}
				pos := wp.WordPositions[tokenIdx]
				if pos.ShapedWordIndex == nil {
					continue
				}
				shapedWordIdx := *pos.ShapedWordIndex
				if shapedWordIdx >= len(shapedWords.Items) {
					continue
				}
				shaped := shapedWords.Items[shapedWordIdx]

				glyphs := make([]InlineGlyph, 0, len(shaped.GlyphInfos))
				var xPosInWordPx float32

				for gi, g := range shaped.GlyphInfos {
					var (
						letterSpacingForGlyph float32
						origin                f32.Point
						attached              bool
					)

					switch {
					case g.Placement.Kind == shaping.PlacementNone || !g.Placement.Valid(gi):
						letterSpacingForGlyph = letterSpacingPx
						origin = f32.Point{X: xPosInWordPx, Y: 0}

					case g.Placement.Kind == shaping.PlacementDistance:
						divisor := unitsPerEm / fontSizePx
						dx := float32(g.Placement.DX) / divisor
						dy := float32(g.Placement.DY) / divisor
						letterSpacingForGlyph = letterSpacingPx
						origin = f32.Point{X: xPosInWordPx + dx, Y: dy}

					case g.Placement.Kind == shaping.PlacementMarkAnchor, g.Placement.Kind == shaping.PlacementMarkOverprint:
						anchor := glyphs[g.Placement.BaseGlyphIndex]
						origin = anchor.Bounds.Min
						attached = true

					case g.Placement.Kind == shaping.PlacementCursiveAnchor:
						anchor := glyphs[g.Placement.ExitGlyphIndex]
						origin = anchor.Bounds.Min
						attached = true

					default:
						letterSpacingForGlyph = letterSpacingPx
						origin = f32.Point{X: xPosInWordPx, Y: 0}
					}

					sizeX := float32(g.Advance.SizeX) / unitsPerEm * fontSizePx
					sizeY := float32(g.Advance.SizeY) / unitsPerEm * fontSizePx
					advanceX := float32(g.Advance.AdvanceX) / unitsPerEm * fontSizePx
					kerningX := float32(g.Kerning) / unitsPerEm * fontSizePx

					glyphs = append(glyphs, InlineGlyph{
						Bounds:       f32.Rect(origin, f32.Point{X: sizeX, Y: sizeY}),
						Codepoint:    g.Codepoint,
						HasCodepoint: g.HasCodepoint,
						GlyphIndex:   uint32(g.GlyphIndex),
					})

					if !attached {
						xPosInWordPx += advanceX + kerningX + letterSpacingForGlyph
					}
				}

				items = append(items, InlineWordItem{
					Kind: InlineWord,
					Contents: InlineTextContents{
						Glyphs: glyphs,
						Bounds: f32.Rect(pos.Position, pos.Size),
					},
				})
			}
		}

		lines = append(lines, InlineLine{Words: items, Bounds: line.Bounds})
	}

	return InlineText{
		Lines:               lines,
		ContentSize:         wp.ContentSize,
		FontSizePx:          fontSizePx,
		LastWordIndex:       wp.NumberOfShapedWords,
		BaselineDescenderPx: descenderPx,
	}
}

// GlyphInstance is one glyph positioned in absolute text coordinates,
// ready to hand to a renderer.
type GlyphInstance struct {
	Index uint32
	Point f32.Point
	Size  f32.Point
}

// LayoutedGlyphs is the flattened glyph list produced by GetLayoutedGlyphs.
type LayoutedGlyphs struct {
	Glyphs []GlyphInstance
}

// GetLayoutedGlyphs flattens it into absolute glyph instances. Lines are
// positioned relative to the top-left of the text; each line's own bounds
// record its bottom-left corner, so a word's origin is folded in with its Y
// zeroed before adding the baseline descender offset (itself negative).
func (it InlineText) GetLayoutedGlyphs() LayoutedGlyphs {
	baselineDescender := f32.Point{X: 0, Y: it.BaselineDescenderPx}

	var glyphs []GlyphInstance
	for _, line := range it.Lines {
		lineOrigin := line.Bounds.Min

		for _, word := range line.Words {
			var (
				wordGlyphs []InlineGlyph
				wordOrigin f32.Point
			)
			if word.Kind == InlineWord {
				wordGlyphs = word.Contents.Glyphs
				wordOrigin = word.Contents.Bounds.Min
			}
			wordOrigin.Y = 0

			for _, g := range wordGlyphs {
				glyphs = append(glyphs, GlyphInstance{
					Index: g.GlyphIndex,
					Point: lineOrigin.Add(baselineDescender).Add(wordOrigin).Add(g.Bounds.Min),
					Size:  g.Bounds.Size(),
				})
			}
		}
	}

	return LayoutedGlyphs{Glyphs: glyphs}
}
