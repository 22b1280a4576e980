// SPDX-License-Identifier: Unlicense OR MIT

// Package shaping turns a run of codepoints plus a font into a sequence of
// positioned glyphs. It detects the dominant script of the run, substitutes
// ligatures and alternates through GSUB, resolves mark attachment and
// kerning through GPOS, and folds variation selectors into the base glyph
// they modify rather than shaping them as their own glyph.
package shaping

import (
	"github.com/go-text/typesetting/di"
	gotextlang "github.com/go-text/typesetting/language"
	gotextshaping "github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	azulfont "github.com/conradludgate/azul/font"
)

// PlacementKind selects which member of Placement is populated.
type PlacementKind uint8

const (
	// PlacementNone is the zero value: the glyph sits at its natural
	// advance-driven origin.
	PlacementNone PlacementKind = iota
	// PlacementDistance offsets the glyph by a fixed (dx, dy) in font units,
	// as produced by GPOS single/pair adjustment or mark attachment once
	// resolved to absolute offsets.
	PlacementDistance
	// PlacementMarkAnchor attaches this glyph to an earlier glyph in the
	// same shaped word, identified by index.
	PlacementMarkAnchor
	// PlacementMarkOverprint stacks this glyph directly on top of an
	// earlier glyph, contributing no advance of its own.
	PlacementMarkOverprint
	// PlacementCursiveAnchor joins this glyph's entry point to an earlier
	// glyph's exit point (cursive scripts).
	PlacementCursiveAnchor
)

// Placement records how a glyph's drawn position relates to its advance
// origin. BaseGlyphIndex / ExitGlyphIndex refer to earlier glyphs within the
// same shaped word; an index that does not point strictly backwards is
// invalid and callers must treat the Placement as PlacementNone.
type Placement struct {
	Kind           PlacementKind
	DX, DY         int32
	BaseGlyphIndex int
	ExitGlyphIndex int
}

// Valid reports whether a non-None placement's glyph references point
// strictly backwards into the word, as required by the attachment model.
func (p Placement) Valid(currentIndex int) bool {
	switch p.Kind {
	case PlacementMarkAnchor, PlacementMarkOverprint:
		return p.BaseGlyphIndex >= 0 && p.BaseGlyphIndex < currentIndex
	case PlacementCursiveAnchor:
		return p.ExitGlyphIndex >= 0 && p.ExitGlyphIndex < currentIndex
	default:
		return true
	}
}

// Advance is a glyph's horizontal metrics in font units (unscaled).
type Advance struct {
	AdvanceX uint16
	SizeX    int32
	SizeY    int32
}

// GlyphInfo is one shaped glyph: its identity in the font, where it came
// from in the input text, and how GSUB/GPOS repositioned it.
type GlyphInfo struct {
	GlyphIndex azulfont.GlyphID

	// Codepoint is the originating rune, when this glyph maps 1:1 to a
	// single input codepoint. HasCodepoint is false for glyphs produced by
	// multiple-substitution or ligature formation.
	Codepoint    rune
	HasCodepoint bool

	LigaComponentPos int

	SmallCaps      bool
	MultiSubstDup  bool
	IsVertAlt      bool
	FakeBold       bool
	FakeItalic     bool

	// VariationSelector is the selector rune folded into this glyph, if
	// any immediately followed its base codepoint in the input.
	VariationSelector    rune
	HasVariationSelector bool

	Kerning   int16
	Placement Placement
	Advance   Advance
}

// XAdvanceTotalUnscaled is the glyph's advance plus any GPOS kerning
// adjustment, in font units.
func (g GlyphInfo) XAdvanceTotalUnscaled() int32 {
	return int32(g.Advance.AdvanceX) + int32(g.Kerning)
}

// DetectScript returns the dominant Unicode script of text, ignoring runes
// classified as Common or Inherited (punctuation, digits, combining marks)
// since those carry no script identity of their own.
func DetectScript(text []rune) gotextlang.Script {
	counts := map[gotextlang.Script]int{}
	for _, r := range text {
		sc := gotextlang.LookupScript(r)
		if sc == gotextlang.Common || sc == gotextlang.Inherited {
			continue
		}
		counts[sc]++
	}
	var best gotextlang.Script
	bestN := -1
	for sc, n := range counts {
		if n > bestN {
			best, bestN = sc, n
		}
	}
	return best
}

// scriptTags maps a detected script to the OpenType script tag used to
// select the right feature set in GSUB/GPOS lookups. ScriptTag reports a
// script absent from this table with a false second return value, and
// textlayout.Layout then shapes with the Latin tag "latn".
var scriptTags = map[gotextlang.Script]string{
	gotextlang.Arabic:     "arab",
	gotextlang.Bengali:    "bng2",
	gotextlang.Cyrillic:   "cyrl",
	gotextlang.Devanagari: "dev2",
	gotextlang.Ethiopic:   "ethi",
	gotextlang.Georgian:   "geor",
	gotextlang.Greek:      "grek",
	gotextlang.Gujarati:   "gjr2",
	gotextlang.Gurmukhi:   "gur2",
	gotextlang.Hangul:     "hang",
	gotextlang.Hebrew:     "hebr",
	gotextlang.Hiragana:   "kana",
	gotextlang.Kannada:    "knd2",
	gotextlang.Katakana:   "kana",
	gotextlang.Khmer:      "khmr",
	gotextlang.Latin:      "latn",
	gotextlang.Malayalam:  "mlm2",
	gotextlang.Mandaic:    "mand",
	gotextlang.Myanmar:    "mym2",
	gotextlang.Oriya:      "ory2",
	gotextlang.Sinhala:    "sinh",
	gotextlang.Tamil:      "tml2",
	gotextlang.Telugu:     "tel2",
	gotextlang.Thai:       "thai",
}

// ScriptTag returns the OpenType script tag for s, and false if s has no
// entry (textlayout.Layout then uses "latn").
func ScriptTag(s gotextlang.Script) (string, bool) {
	tag, ok := scriptTags[s]
	return tag, ok
}

// isVariationSelector reports whether r is one of the standard variation
// selectors (U+FE00-U+FE0F); the supplementary block (U+E0100-U+E01EF) is
// out of scope here since it never appears in plain-text runs this package
// is asked to shape.
func isVariationSelector(r rune) bool {
	return r >= 0xFE00 && r <= 0xFE0F
}

// dottedCircle is substituted for a combining mark that has no preceding
// base to attach to, so that malformed input still produces a visible,
// correctly-advanced glyph instead of silently vanishing.
const dottedCircle = rune(0x25CC)

// Shape runs the full substitution/positioning pipeline over codepoints and
// returns one GlyphInfo per output glyph. script and language are OpenType
// tags as produced by ScriptTag and the caller's locale; either may be
// empty, in which case the font's default GSUB/GPOS rules apply.
//
// Shape never returns an error: a face with broken or absent GSUB/GPOS
// tables degrades to an empty glyph run, matching the non-fatal shaping
// failure mode callers are expected to tolerate.
func Shape(pf *azulfont.ParsedFont, codepoints []rune, script, language string) []GlyphInfo {
	if len(codepoints) == 0 {
		return nil
	}

	text, origin := foldVariationSelectors(codepoints)

	upem := pf.Metrics().UnitsPerEm
	if upem == 0 {
		upem = 1000
	}

	input := gotextshaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Face:      pf.Face,
		Size:      fixed.I(int(upem)),
		Script:    scriptFromTag(script),
		Language:  gotextlang.NewLanguage(language),
		Direction: di.DirectionLTR,
	}

	var shaper gotextshaping.HarfbuzzShaper
	out := shaper.Shape(input)

	glyphs := make([]GlyphInfo, 0, len(out.Glyphs))
	for _, g := range out.Glyphs {
		info := GlyphInfo{
			GlyphIndex: azulfont.GlyphID(g.GlyphID),
			Advance: Advance{
				AdvanceX: saturateUint16(g.XAdvance.Round()),
			},
		}

		if w, h := pf.GlyphSize(info.GlyphIndex); w != 0 || h != 0 {
			info.Advance.SizeX, info.Advance.SizeY = w, h
		}

		if g.ClusterIndex < len(origin) {
			o := origin[g.ClusterIndex]
			info.Codepoint = o.codepoint
			info.HasCodepoint = g.GlyphCount == 1 && g.RuneCount == 1
			info.VariationSelector = o.variationSelector
			info.HasVariationSelector = o.hasVariationSelector
		}
		if g.GlyphCount > 1 {
			info.MultiSubstDup = true
		}

		if g.XOffset != 0 || g.YOffset != 0 {
			info.Placement = Placement{
				Kind: PlacementDistance,
				DX:   int32(g.XOffset.Round()),
				DY:   int32(g.YOffset.Round()),
			}
		}

		if info.GlyphIndex == 0 {
			if gid, ok := pf.LookupGlyphIndex(dottedCircle); ok {
				info.GlyphIndex = gid
			}
		}

		glyphs = append(glyphs, info)
	}

	return glyphs
}

type runeOrigin struct {
	codepoint            rune
	variationSelector    rune
	hasVariationSelector bool
}

// foldVariationSelectors removes any variation selector that immediately
// follows a base codepoint from the text handed to the shaper, and records
// it against that base's origin entry instead. Shapers operate on the base
// glyph only; the selector exists purely to choose among its glyph variants,
// which this package does not yet resolve, so the selector is preserved on
// GlyphInfo for a renderer to act on rather than being shaped as a glyph of
// its own.
func foldVariationSelectors(codepoints []rune) ([]rune, []runeOrigin) {
	text := make([]rune, 0, len(codepoints))
	origin := make([]runeOrigin, 0, len(codepoints))

	for i := 0; i < len(codepoints); i++ {
		r := codepoints[i]
		if isVariationSelector(r) {
			// A selector with no preceding base (start of text, or the
			// previous rune was itself a selector) has nothing to attach
			// to; drop it.
			continue
		}
		o := runeOrigin{codepoint: r}
		if i+1 < len(codepoints) && isVariationSelector(codepoints[i+1]) {
			o.variationSelector = codepoints[i+1]
			o.hasVariationSelector = true
		}
		text = append(text, r)
		origin = append(origin, o)
	}

	return text, origin
}

func scriptFromTag(tag string) gotextlang.Script {
	for sc, t := range scriptTags {
		if t == tag {
			return sc
		}
	}
	return 0
}

func saturateUint16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
