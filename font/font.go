// SPDX-License-Identifier: Unlicense OR MIT

// Package font loads an OpenType/TrueType font (or a single face out of
// a collection) and extracts the metrics and per-glyph data the rest of
// the layout pipeline needs: units-per-em, ascender/descender/line-gap,
// glyph bounding boxes, horizontal advances, and the cached advance of
// the space glyph.
//
// Table parsing and cmap/GSUB/GPOS access are delegated to
// github.com/go-text/typesetting/font; only the small, fixed-layout
// head/hhea/os2 metrics fields are read directly, since that library's
// Face does not expose fsSelection or the typographic metrics by name.
package font

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/conradludgate/azul/f32"
)

// GlyphID identifies a glyph within a ParsedFont.
type GlyphID = gotextfont.GID

// LoadOptions controls optional, memory-costly work done at Load time.
type LoadOptions struct {
	// ParseOutlines decodes every glyph's vector outline into a flat
	// op list. Off by default, since most callers only need advances
	// and bounding boxes.
	ParseOutlines bool
}

// FontMetrics is a scalar record of the head/hhea/os2 fields layout
// needs. Values are raw font units; use the Ascender/Descender/LineGap
// methods for the pixel-scaled equivalents.
type FontMetrics struct {
	UnitsPerEm uint16

	HheaAscender  int16
	HheaDescender int16
	HheaLineGap   int16

	HasOS2        bool
	FsSelection   uint16
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
}

// UseTypoMetrics reports whether bit 7 of OS/2.fsSelection is set. When
// true the typographic ascender/descender/line-gap override hhea.
func (m FontMetrics) UseTypoMetrics() bool {
	return m.HasOS2 && m.FsSelection&(1<<7) != 0
}

// AscenderUnscaled returns the ascender in font units.
func (m FontMetrics) AscenderUnscaled() int16 {
	if m.UseTypoMetrics() {
		return m.TypoAscender
	}
	return m.HheaAscender
}

// DescenderUnscaled returns the descender in font units. Negative per
// the OpenType convention.
func (m FontMetrics) DescenderUnscaled() int16 {
	if m.UseTypoMetrics() {
		return m.TypoDescender
	}
	return m.HheaDescender
}

// LineGapUnscaled returns the recommended line gap in font units.
func (m FontMetrics) LineGapUnscaled() int16 {
	if m.UseTypoMetrics() {
		return m.TypoLineGap
	}
	return m.HheaLineGap
}

func (m FontMetrics) unitsPerEm() float32 {
	if m.UnitsPerEm == 0 {
		return 1000
	}
	return float32(m.UnitsPerEm)
}

// Ascender returns the ascender scaled to targetFontSizePx.
func (m FontMetrics) Ascender(targetFontSizePx float32) float32 {
	return float32(m.AscenderUnscaled()) / m.unitsPerEm() * targetFontSizePx
}

// Descender returns the descender scaled to targetFontSizePx.
func (m FontMetrics) Descender(targetFontSizePx float32) float32 {
	return float32(m.DescenderUnscaled()) / m.unitsPerEm() * targetFontSizePx
}

// LineGap returns the line gap scaled to targetFontSizePx.
func (m FontMetrics) LineGap(targetFontSizePx float32) float32 {
	return float32(m.LineGapUnscaled()) / m.unitsPerEm() * targetFontSizePx
}

// LineHeight returns ascender − descender + line gap, scaled to
// targetFontSizePx.
func (m FontMetrics) LineHeight(targetFontSizePx float32) float32 {
	return m.Ascender(targetFontSizePx) - m.Descender(targetFontSizePx) + m.LineGap(targetFontSizePx)
}

// OutlineOpKind tags the variant of an OutlineOp.
type OutlineOpKind uint8

const (
	OutlineMoveTo OutlineOpKind = iota
	OutlineLineTo
	OutlineQuadTo
	OutlineCubicTo
	OutlineClosePath
)

// OutlineOp is one drawing command of a decoded glyph outline, in font
// units. Ctrl1/Ctrl2 are populated only for OutlineQuadTo/OutlineCubicTo.
type OutlineOp struct {
	Kind           OutlineOpKind
	X, Y           float32
	Ctrl1X, Ctrl1Y float32
	Ctrl2X, Ctrl2Y float32
}

// Outline is a glyph's decoded vector outline, present only when a
// ParsedFont was loaded with LoadOptions.ParseOutlines.
type Outline struct {
	Ops []OutlineOp
}

// GlyphRecord is the per-glyph data a ParsedFont caches up front.
type GlyphRecord struct {
	BoundingBox f32.Rectangle
	HorzAdvance uint16
	Outline     *Outline
}

// ParsedFont owns a decoded font: its extracted metrics, per-glyph
// bounding boxes and advances, and the shaping tables a shaping.Shape
// call needs. It is immutable after Load returns and safe to share
// across goroutines; callers compare fonts by Identity, never content.
type ParsedFont struct {
	Face  gotextfont.Face
	faceIndex int

	metrics FontMetrics

	glyphRecords map[GlyphID]GlyphRecord

	spaceAdvance    uint16
	hasSpaceAdvance bool

	hasGSUB, hasGPOS, hasGDEF bool
}

// Load parses face faceIndex out of a TrueType/OpenType font or font
// collection blob. It fails if head, maxp, hmtx, hhea, cmap, GSUB or
// GPOS is missing, per the loader's failure contract; GDEF is optional.
func Load(data []byte, faceIndex int, opts LoadOptions) (*ParsedFont, error) {
	loaders, err := opentype.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: reading sfnt directory: %w", err)
	}
	if faceIndex < 0 || faceIndex >= len(loaders) {
		return nil, fmt.Errorf("font: face index %d out of range (collection has %d faces)", faceIndex, len(loaders))
	}
	ld := loaders[faceIndex]

	ft, err := gotextfont.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("font: parsing tables: %w", err)
	}

	metrics, err := readMetrics(ld)
	if err != nil {
		return nil, fmt.Errorf("font: reading head/hhea/os2: %w", err)
	}

	pf := &ParsedFont{
		Face:         gotextfont.Face{Font: ft},
		faceIndex:    faceIndex,
		metrics:      metrics,
		glyphRecords: map[GlyphID]GlyphRecord{},
		hasGSUB:      hasTable(ld, "GSUB"),
		hasGPOS:      hasTable(ld, "GPOS"),
		hasGDEF:      hasTable(ld, "GDEF"),
	}
	if !pf.hasGSUB {
		return nil, fmt.Errorf("font: missing mandatory table GSUB")
	}
	if !pf.hasGPOS {
		return nil, fmt.Errorf("font: missing mandatory table GPOS")
	}

	pf.decodeGlyphRecords(opts.ParseOutlines)
	pf.spaceAdvance, pf.hasSpaceAdvance = pf.computeSpaceAdvance()

	return pf, nil
}

func hasTable(ld *opentype.Loader, tag string) bool {
	t := tag2uint32(tag)
	for _, candidate := range ld.Tables() {
		if uint32(candidate) == t {
			return true
		}
	}
	return false
}

func tag2uint32(tag string) uint32 {
	return uint32(tag[0])<<24 | uint32(tag[1])<<16 | uint32(tag[2])<<8 | uint32(tag[3])
}

func readMetrics(ld *opentype.Loader) (FontMetrics, error) {
	var m FontMetrics

	headData, err := ld.RawTable(opentype.NewTag('h', 'e', 'a', 'd'))
	if err != nil || len(headData) < 54 {
		return m, fmt.Errorf("missing or truncated head table")
	}
	m.UnitsPerEm = binary.BigEndian.Uint16(headData[18:20])

	hheaData, err := ld.RawTable(opentype.NewTag('h', 'h', 'e', 'a'))
	if err != nil || len(hheaData) < 10 {
		return m, fmt.Errorf("missing or truncated hhea table")
	}
	m.HheaAscender = int16(binary.BigEndian.Uint16(hheaData[4:6]))
	m.HheaDescender = int16(binary.BigEndian.Uint16(hheaData[6:8]))
	m.HheaLineGap = int16(binary.BigEndian.Uint16(hheaData[8:10]))

	if os2Data, err := ld.RawTable(opentype.NewTag('O', 'S', '/', '2')); err == nil && len(os2Data) >= 74 {
		m.HasOS2 = true
		m.FsSelection = binary.BigEndian.Uint16(os2Data[62:64])
		m.TypoAscender = int16(binary.BigEndian.Uint16(os2Data[68:70]))
		m.TypoDescender = int16(binary.BigEndian.Uint16(os2Data[70:72]))
		m.TypoLineGap = int16(binary.BigEndian.Uint16(os2Data[72:74]))
	}

	return m, nil
}

func (pf *ParsedFont) decodeGlyphRecords(parseOutlines bool) {
	numGlyphs := pf.Face.NumGlyphs()
	for gid := 0; gid < numGlyphs; gid++ {
		g := GlyphID(gid)
		extents, ok := pf.Face.GlyphExtents(g)
		var bbox f32.Rectangle
		if ok {
			bbox = f32.Rectangle{
				Min: f32.Point{X: extents.XBearing, Y: extents.YBearing - extents.Height},
				Max: f32.Point{X: extents.XBearing + extents.Width, Y: extents.YBearing},
			}
		}
		record := GlyphRecord{
			BoundingBox: bbox,
			HorzAdvance: uint16(pf.Face.HorizontalAdvance(g)),
		}
		if parseOutlines {
			if outline := pf.decodeOutline(g); outline != nil {
				record.Outline = outline
			}
		}
		pf.glyphRecords[g] = record
	}
}

// decodeOutline asks the go-text face for its glyph path segments and
// flattens them into our own Outline representation. Fonts without
// outline data (bitmap-only, or a glyph with no contours) yield nil.
func (pf *ParsedFont) decodeOutline(g GlyphID) *Outline {
	segments, ok := pf.Face.GlyphData(g).(gotextfont.GlyphOutline)
	if !ok {
		return nil
	}
	out := &Outline{}
	for _, seg := range segments.Segments {
		switch seg.Op {
		case gotextfont.SegmentOpMoveTo:
			out.Ops = append(out.Ops, OutlineOp{Kind: OutlineMoveTo, X: seg.Args[0].X, Y: seg.Args[0].Y})
		case gotextfont.SegmentOpLineTo:
			out.Ops = append(out.Ops, OutlineOp{Kind: OutlineLineTo, X: seg.Args[0].X, Y: seg.Args[0].Y})
		case gotextfont.SegmentOpQuadTo:
			out.Ops = append(out.Ops, OutlineOp{
				Kind:   OutlineQuadTo,
				Ctrl1X: seg.Args[0].X, Ctrl1Y: seg.Args[0].Y,
				X: seg.Args[1].X, Y: seg.Args[1].Y,
			})
		case gotextfont.SegmentOpCubeTo:
			out.Ops = append(out.Ops, OutlineOp{
				Kind:   OutlineCubicTo,
				Ctrl1X: seg.Args[0].X, Ctrl1Y: seg.Args[0].Y,
				Ctrl2X: seg.Args[1].X, Ctrl2Y: seg.Args[1].Y,
				X: seg.Args[2].X, Y: seg.Args[2].Y,
			})
		}
	}
	if len(out.Ops) == 0 {
		return nil
	}
	return out
}

func (pf *ParsedFont) computeSpaceAdvance() (uint16, bool) {
	gid, ok := pf.Face.NominalGlyph(' ')
	if !ok {
		return 0, false
	}
	if rec, ok := pf.glyphRecords[gid]; ok {
		return rec.HorzAdvance, true
	}
	return uint16(pf.Face.HorizontalAdvance(gid)), true
}

// Metrics returns the font's FontMetrics.
func (pf *ParsedFont) Metrics() FontMetrics { return pf.metrics }

// GlyphRecord returns the decoded bounding box, advance, and (if
// requested at Load time) outline for g.
func (pf *ParsedFont) GlyphRecord(g GlyphID) (GlyphRecord, bool) {
	r, ok := pf.glyphRecords[g]
	return r, ok
}

// HorizontalAdvance returns the horizontal advance of g, in font units.
func (pf *ParsedFont) HorizontalAdvance(g GlyphID) uint16 {
	return pf.glyphRecords[g].HorzAdvance
}

// GlyphSize returns the width and height of g's bounding box, in font
// units.
func (pf *ParsedFont) GlyphSize(g GlyphID) (w, h int32) {
	r, ok := pf.glyphRecords[g]
	if !ok {
		return 0, 0
	}
	return int32(r.BoundingBox.Dx()), int32(r.BoundingBox.Dy())
}

// SpaceAdvance returns the cached advance of the U+0020 glyph, in font
// units. ok is false when the font has no mapping for U+0020, in which
// case callers should fall back to UnitsPerEm.
func (pf *ParsedFont) SpaceAdvance() (advance uint16, ok bool) {
	return pf.spaceAdvance, pf.hasSpaceAdvance
}

// LookupGlyphIndex maps a Unicode codepoint to a glyph id via cmap. It
// returns (0, false) — glyph id 0 is .notdef — when unmapped.
func (pf *ParsedFont) LookupGlyphIndex(r rune) (GlyphID, bool) {
	return pf.Face.NominalGlyph(r)
}

// HasGDEF reports whether the font carries a GDEF table.
func (pf *ParsedFont) HasGDEF() bool { return pf.hasGDEF }

// Identity returns a value that uniquely identifies this ParsedFont
// allocation. Per the data model, font equality for caching purposes is
// pointer identity, never content.
func (pf *ParsedFont) Identity() uintptr {
	return uintptr(unsafe.Pointer(pf))
}
