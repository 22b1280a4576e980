// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import (
	"github.com/conradludgate/azul/f32"
	"github.com/conradludgate/azul/words"
)

// WordPosition is where a single words.Token ended up. ShapedWordIndex is
// nil for Space and Return tokens, which have no shaped glyphs of their
// own.
type WordPosition struct {
	ShapedWordIndex *int
	Position        f32.Point
	Size            f32.Point
}

// InlineTextLine is one visual line: the inclusive range of token indices
// it spans, and its left-aligned bounding box.
type InlineTextLine struct {
	Bounds    f32.Rectangle
	WordStart int
	WordEnd   int
}

// WordPositions is the result of PositionWords: every token's on-screen
// position plus the line breaks and overall content size those positions
// imply. It holds no glyph-level detail; Assemble uses it together with the
// original ShapedWords to build an InlineText.
type WordPositions struct {
	Options             ResolvedTextLayoutOptions
	WordPositions       []WordPosition
	LineBreaks          []InlineTextLine
	Trailing            float32
	NumberOfShapedWords int
	NumberOfLines       int
	ContentSize         f32.Point
}

// lineCaretIntersection is the outcome of testing whether advancing the
// caret by wordWidth would cross maxWidth.
type lineCaretIntersection struct {
	breaks     bool
	newX, newY float32
}

// newLineCaretIntersection ports the four-branch decision used throughout
// position_words: no max width never breaks; a word wider than the max
// width is allowed to overflow its own (otherwise empty) line rather than
// recursing into an infinite break loop; otherwise the caret breaks exactly
// when advancing past the current line would exceed maxWidth.
func newLineCaretIntersection(currentX, wordWidth, currentY, lineHeight float32, maxWidth float32, hasMaxWidth bool) lineCaretIntersection {
	if !hasMaxWidth {
		return lineCaretIntersection{breaks: false, newX: currentX + wordWidth, newY: currentY}
	}
	if currentX == 0 && maxWidth < wordWidth {
		return lineCaretIntersection{breaks: false, newX: currentX + wordWidth, newY: currentY}
	}
	if currentX+wordWidth > maxWidth {
		return lineCaretIntersection{breaks: true, newX: 0, newY: currentY + lineHeight}
	}
	return lineCaretIntersection{breaks: false, newX: currentX + wordWidth, newY: currentY}
}

// PositionWords lays out every token in w along a caret that wraps at
// options.MaxHorizontalWidth (when set), producing the line geometry and
// per-token positions that Assemble later turns into drawable glyphs. It
// does not touch a single glyph; a word with no shaped counterpart (more
// Word tokens than shaped words, i.e. the shaper was never run) is skipped.
func PositionWords(w words.Words, shapedWords ShapedWords, options ResolvedTextLayoutOptions) WordPositions {
	fontSizePx := options.FontSizePx
	spaceAdvancePx := shapedWords.SpaceAdvancePx(fontSizePx)
	wordSpacingPx := spaceAdvancePx * options.wordSpacing()
	lineHeightPx := spaceAdvancePx * options.lineHeight()
	spacingMultiplier := options.letterSpacing()
	lineStep := fontSizePx + lineHeightPx
	maxWidth, hasMaxWidth := options.maxHorizontalWidth()

	var lineBreaks []InlineTextLine
	var positions []WordPosition

	lineCaretX := options.leading()
	lineCaretY := lineStep
	shapedWordIdx := 0
	lastShapedWordTokenIdx := 0
	lastLineStartIdx := 0

	lastTokenIdx := len(w.Items) - 1
	if lastTokenIdx < 0 {
		lastTokenIdx = 0
	}

	for tokenIdx, tok := range w.Items {
		switch tok.Kind {
		case words.Word:
			if shapedWordIdx >= len(shapedWords.Items) {
				continue
			}
			shapedWord := shapedWords.Items[shapedWordIdx]

			numGlyphs := shapedWord.NumberOfGlyphs() - 1
			if numGlyphs < 0 {
				numGlyphs = 0
			}
			letterSpacingPx := spacingMultiplier * float32(numGlyphs)
			shapedWordWidth := shapedWord.WordWidthPx(shapedWords.UnitsPerEm, fontSizePx) + letterSpacingPx

			isect := newLineCaretIntersection(lineCaretX, shapedWordWidth, lineCaretY, lineStep, maxWidth, hasMaxWidth)

			if isect.breaks {
				lineBreaks = append(lineBreaks, flushLine(lastLineStartIdx, maxInt(tokenIdx-1, lastLineStartIdx), lineCaretX, lineCaretY, lineStep))
				lastLineStartIdx = tokenIdx

				idx := shapedWordIdx
				positions = append(positions, WordPosition{
					ShapedWordIndex: &idx,
					Position:        f32.Point{X: isect.newX, Y: isect.newY},
					Size:            f32.Point{X: shapedWordWidth, Y: lineStep},
				})
				lineCaretX = isect.newX + shapedWordWidth
				lineCaretY = isect.newY
			} else {
				idx := shapedWordIdx
				positions = append(positions, WordPosition{
					ShapedWordIndex: &idx,
					Position:        f32.Point{X: lineCaretX, Y: lineCaretY},
					Size:            f32.Point{X: shapedWordWidth, Y: lineStep},
				})
				lineCaretX = isect.newX
				lineCaretY = isect.newY
			}

			shapedWordIdx++
			lastShapedWordTokenIdx = tokenIdx

		case words.Return:
			if tokenIdx != lastTokenIdx {
				lineBreaks = append(lineBreaks, flushLine(lastLineStartIdx, maxInt(tokenIdx-1, lastLineStartIdx), lineCaretX, lineCaretY, lineStep))
				lastLineStartIdx = tokenIdx + 1
			}
			positions = append(positions, WordPosition{
				Position: f32.Point{X: lineCaretX, Y: lineCaretY},
				Size:     f32.Point{X: 0, Y: lineStep},
			})
			if tokenIdx != lastTokenIdx {
				lineCaretX = 0
				lineCaretY += lineStep
			}

		case words.Space:
			xAdvance := wordSpacingPx
			isect := newLineCaretIntersection(lineCaretX, xAdvance, lineCaretY, lineStep, maxWidth, hasMaxWidth)

			if isect.breaks {
				if tokenIdx != lastTokenIdx {
					lineBreaks = append(lineBreaks, flushLine(lastLineStartIdx, maxInt(tokenIdx-1, lastLineStartIdx), lineCaretX, lineCaretY, lineStep))
					lastLineStartIdx = tokenIdx
				}
				positions = append(positions, WordPosition{
					Position: f32.Point{X: lineCaretX, Y: lineCaretY},
					Size:     f32.Point{X: xAdvance, Y: lineStep},
				})
				if tokenIdx != lastTokenIdx {
					lineCaretX = isect.newX
					lineCaretY = isect.newY
				}
			} else {
				positions = append(positions, WordPosition{
					Position: f32.Point{X: lineCaretX, Y: lineCaretY},
					Size:     f32.Point{X: xAdvance, Y: lineStep},
				})
				lineCaretX = isect.newX
				lineCaretY = isect.newY
			}
		}
	}

	lineBreaks = append(lineBreaks, flushLine(lastLineStartIdx, lastShapedWordTokenIdx, lineCaretX, lineCaretY, lineStep))

	var longestLineWidth float32
	for _, line := range lineBreaks {
		if w := line.Bounds.Dx(); w > longestLineWidth {
			longestLineWidth = w
		}
	}

	contentSizeY := float32(len(lineBreaks)) * lineStep
	// A word wider than maxWidth is allowed to overflow its own line rather
	// than being force-broken (see newLineCaretIntersection), so the content
	// box must grow to fit it: take whichever of maxWidth and the longest
	// realized line is larger, instead of clamping to maxWidth outright.
	contentSizeX := longestLineWidth
	if hasMaxWidth && maxWidth > contentSizeX {
		contentSizeX = maxWidth
	}

	return WordPositions{
		Options:             options,
		Trailing:            lineCaretX,
		NumberOfShapedWords: shapedWordIdx,
		NumberOfLines:       len(lineBreaks),
		ContentSize:         f32.Point{X: contentSizeX, Y: contentSizeY},
		WordPositions:       positions,
		LineBreaks:          lineBreaks,
	}
}

func flushLine(wordStart, wordEnd int, caretX, caretY, lineStep float32) InlineTextLine {
	return InlineTextLine{
		WordStart: wordStart,
		WordEnd:   wordEnd,
		Bounds:    f32.Rect(f32.Point{X: 0, Y: caretY}, f32.Point{X: caretX, Y: lineStep}),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// InlineTextLayout is the left-aligned bounding boxes of each text line,
// independent of the per-token detail in WordPositions.
type InlineTextLayout struct {
	Lines       []InlineTextLine
	ContentSize f32.Point
}

// WordPositionsToInlineTextLayout extracts the per-line geometry from wp.
func WordPositionsToInlineTextLayout(wp WordPositions) InlineTextLayout {
	return InlineTextLayout{Lines: wp.LineBreaks, ContentSize: wp.ContentSize}
}
