// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import "github.com/conradludgate/azul/f32"

// InlineTextHit is one glyph under a hit-test point; a point over a Space or
// Return token produces no hit. Every index field counts forward from
// 0 at its own scope; none of them early-exit the search, since a caller
// hit-testing a point needs every line visited to report a consistent set
// of counters even when only one glyph is actually hit.
type InlineTextHit struct {
	Codepoint    rune
	HasCodepoint bool

	HitRelativeToInlineText   f32.Point
	HitRelativeToLine         f32.Point
	HitRelativeToTextContent  f32.Point
	HitRelativeToGlyph        f32.Point

	LineIndexRelativeToText        int
	WordIndexRelativeToText        int
	TextContentIndexRelativeToText int
	GlyphIndexRelativeToText       int
	CharIndexRelativeToText        int

	WordIndexRelativeToLine        int
	TextContentIndexRelativeToLine int
	GlyphIndexRelativeToLine       int
	CharIndexRelativeToLine        int

	GlyphIndexRelativeToWord int
	CharIndexRelativeToWord  int
}

// HitTest finds every glyph under position. The search descends nested
// bounding boxes: the whole text's content box, then each line (shifted up
// by its own height, since a line's bounds record its bottom-left corner),
// then each word's text-content box (y zeroed, since a word's own origin is
// relative to the line), then each glyph (y re-based to sit on the
// baseline via the descender offset). A point outside the outermost box
// returns no hits at all; a point inside it but outside every line/word/
// glyph box returns an empty slice after still running the full counter
// bookkeeping pass.
func (it InlineText) HitTest(position f32.Point) []InlineTextHit {
	contentBounds := f32.Rect(f32.Point{}, it.ContentSize)
	hitRelativeToInlineText, ok := contentBounds.HitTest(position)
	if !ok {
		return nil
	}

	var (
		globalCharHit         int
		globalWordHit         int
		globalGlyphHit        int
		globalTextContentHit  int
		hits                  []InlineTextHit
	)

	descenderPx := it.BaselineDescenderPx

	for lineIdx, line := range it.Lines {
		charAtLineStart := globalCharHit
		wordAtLineStart := globalWordHit
		glyphAtLineStart := globalGlyphHit
		textContentAtLineStart := globalTextContentHit

		lineBounds := line.Bounds
		lineBounds.Min.Y -= line.Bounds.Dy()
		lineBounds.Max.Y -= line.Bounds.Dy()

		hitRelativeToLine, lineOK := lineBounds.HitTest(hitRelativeToInlineText)

		for _, word := range line.Words {
			charAtTextContentStart := globalCharHit
			glyphAtTextContentStart := globalGlyphHit

			if word.Kind == InlineWord {
				textContentBounds := word.Contents.Bounds
				textContentHeight := textContentBounds.Dy()
				textContentBounds.Min.Y = 0
				textContentBounds.Max.Y = textContentHeight

				hitRelativeToTextContent, tcOK := textContentBounds.HitTest(hitRelativeToLine)
				tcOK = tcOK && lineOK
				for _, glyph := range word.Contents.Glyphs {
					if tcOK {
						glyphBounds := glyph.Bounds
						glyphHeight := glyphBounds.Dy()
						glyphBounds.Min.Y = textContentHeight + descenderPx - glyphHeight
						glyphBounds.Max.Y = glyphBounds.Min.Y + glyphHeight

						if hitRelativeToGlyph, gOK := glyphBounds.HitTest(hitRelativeToTextContent); gOK {
							hits = append(hits, InlineTextHit{
								Codepoint:    glyph.Codepoint,
								HasCodepoint: glyph.HasCodepoint,

								HitRelativeToInlineText:  hitRelativeToInlineText,
								HitRelativeToLine:        hitRelativeToLine,
								HitRelativeToTextContent: hitRelativeToTextContent,
								HitRelativeToGlyph:       hitRelativeToGlyph,

								LineIndexRelativeToText:        lineIdx,
								WordIndexRelativeToText:        globalWordHit,
								TextContentIndexRelativeToText: globalTextContentHit,
								GlyphIndexRelativeToText:       globalGlyphHit,
								CharIndexRelativeToText:        globalCharHit,

								WordIndexRelativeToLine:        globalWordHit - wordAtLineStart,
								TextContentIndexRelativeToLine: globalTextContentHit - textContentAtLineStart,
								GlyphIndexRelativeToLine:       globalGlyphHit - glyphAtLineStart,
								CharIndexRelativeToLine:        globalCharHit - charAtLineStart,

								GlyphIndexRelativeToWord: globalGlyphHit - glyphAtTextContentStart,
								CharIndexRelativeToWord:  globalCharHit - charAtTextContentStart,
							})
						}
					}

					if glyph.HasCodepoint {
						globalCharHit++
					}
					globalGlyphHit++
				}
			}

			if word.HasTextContent() {
				globalTextContentHit++
			}
			globalWordHit++
		}
	}

	return hits
}
