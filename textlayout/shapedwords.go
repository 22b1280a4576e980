// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import (
	azulfont "github.com/conradludgate/azul/font"
	"github.com/conradludgate/azul/shaping"
	"github.com/conradludgate/azul/words"
)

// ShapedWord is one words.Word of Kind Word after shaping: a sequence of
// glyphs plus the unscaled width their advances sum to.
type ShapedWord struct {
	GlyphInfos []shaping.GlyphInfo
	WordWidth  int32
}

// WordWidthPx converts WordWidth from font units to pixels at
// targetFontSizePx, given the font's units-per-em.
func (w ShapedWord) WordWidthPx(unitsPerEm uint16, targetFontSizePx float32) float32 {
	return float32(w.WordWidth) / float32(unitsPerEm) * targetFontSizePx
}

// NumberOfGlyphs counts glyphs that are not diacritic marks (Placement ==
// PlacementNone), the count letter-spacing is distributed across.
func (w ShapedWord) NumberOfGlyphs() int {
	n := 0
	for _, g := range w.GlyphInfos {
		if g.Placement.Kind == shaping.PlacementNone {
			n++
		}
	}
	return n
}

// ShapeWord shapes a single word token's text into a ShapedWord.
func ShapeWord(pf *azulfont.ParsedFont, text string, script, language string) ShapedWord {
	glyphs := shaping.Shape(pf, []rune(text), script, language)
	var width int32
	for _, g := range glyphs {
		width += g.XAdvanceTotalUnscaled()
	}
	return ShapedWord{GlyphInfos: glyphs, WordWidth: width}
}

// ShapedWords is every Word-kind token in a words.Words run, shaped and
// measured, plus the font metrics needed to scale those measurements to a
// target font size.
type ShapedWords struct {
	Items            []ShapedWord
	LongestWordWidth int32
	SpaceAdvance     int32
	UnitsPerEm       uint16
	MetricsAscender  int16
	MetricsDescender int16
	MetricsLineGap   int16
}

// ShapeWords shapes every Word token in w in order, using script/language
// for all of them (callers needing per-run script detection should call
// shaping.DetectScript over w.Source first and pass its tag here).
func ShapeWords(pf *azulfont.ParsedFont, w words.Words, script, language string) ShapedWords {
	m := pf.Metrics()
	spaceAdvance, ok := pf.SpaceAdvance()
	if !ok {
		spaceAdvance = uint16(m.UnitsPerEm)
	}

	sw := ShapedWords{
		UnitsPerEm:       m.UnitsPerEm,
		MetricsAscender:  m.AscenderUnscaled(),
		MetricsDescender: m.DescenderUnscaled(),
		MetricsLineGap:   m.LineGapUnscaled(),
		SpaceAdvance:     int32(spaceAdvance),
	}
	for _, t := range w.Items {
		if t.Kind != words.Word {
			continue
		}
		shaped := ShapeWord(pf, w.Substr(t), script, language)
		if shaped.WordWidth > sw.LongestWordWidth {
			sw.LongestWordWidth = shaped.WordWidth
		}
		sw.Items = append(sw.Items, shaped)
	}
	return sw
}

func (sw ShapedWords) unitsPerEm() float32 {
	if sw.UnitsPerEm == 0 {
		return 1000
	}
	return float32(sw.UnitsPerEm)
}

// LongestWordWidthPx is the widest word in sw, in pixels at targetFontSizePx.
func (sw ShapedWords) LongestWordWidthPx(targetFontSizePx float32) float32 {
	return float32(sw.LongestWordWidth) / sw.unitsPerEm() * targetFontSizePx
}

// SpaceAdvancePx is the width of a single space glyph, in pixels at
// targetFontSizePx.
func (sw ShapedWords) SpaceAdvancePx(targetFontSizePx float32) float32 {
	return float32(sw.SpaceAdvance) / sw.unitsPerEm() * targetFontSizePx
}

// Descender is negative: the distance from the baseline down to the lowest
// point the font's descenders reach, in pixels at targetFontSizePx.
func (sw ShapedWords) Descender(targetFontSizePx float32) float32 {
	return float32(sw.MetricsDescender) / sw.unitsPerEm() * targetFontSizePx
}

// Ascender is the distance from the top of the line to the baseline, in
// pixels at targetFontSizePx.
func (sw ShapedWords) Ascender(targetFontSizePx float32) float32 {
	return float32(sw.MetricsAscender) / sw.unitsPerEm() * targetFontSizePx
}

