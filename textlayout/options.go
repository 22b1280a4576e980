// SPDX-License-Identifier: Unlicense OR MIT

// Package textlayout turns shaped words into positioned lines, resolves
// individual glyph origins for rendering, and answers hit-testing queries
// against the result. It is the last stage of the layout pipeline, built on
// top of the tokens from package words and the glyph runs from package
// shaping.
package textlayout

// Default multipliers applied when the corresponding ResolvedTextLayoutOptions
// field is nil.
const (
	DefaultLineHeight    float32 = 1.0
	DefaultWordSpacing   float32 = 1.0
	DefaultTabWidth      float32 = 4.0
	DefaultLetterSpacing float32 = 0.0
	DefaultLeading       float32 = 0.0
)

// ResolvedTextLayoutOptions carries every parameter position_words and the
// inline assembler need. FontSizePx is the only required field; every other
// pointer field falls back to the Default* constant above when nil, except
// MaxHorizontalWidth, where nil means lines never wrap. This mirrors
// the all-but-one-optional field layout of the layout options type this
// package is modeled on.
type ResolvedTextLayoutOptions struct {
	FontSizePx float32

	LineHeight         *float32
	LetterSpacing      *float32
	WordSpacing        *float32
	TabWidth           *float32
	MaxHorizontalWidth *float32
	Leading            *float32
}

func (o ResolvedTextLayoutOptions) lineHeight() float32 {
	if o.LineHeight != nil {
		return *o.LineHeight
	}
	return DefaultLineHeight
}

func (o ResolvedTextLayoutOptions) letterSpacing() float32 {
	if o.LetterSpacing != nil {
		return *o.LetterSpacing
	}
	return DefaultLetterSpacing
}

func (o ResolvedTextLayoutOptions) wordSpacing() float32 {
	if o.WordSpacing != nil {
		return *o.WordSpacing
	}
	return DefaultWordSpacing
}

func (o ResolvedTextLayoutOptions) leading() float32 {
	if o.Leading != nil {
		return *o.Leading
	}
	return DefaultLeading
}

func (o ResolvedTextLayoutOptions) maxHorizontalWidth() (float32, bool) {
	if o.MaxHorizontalWidth != nil {
		return *o.MaxHorizontalWidth, true
	}
	return 0, false
}

// Alignment is a horizontal text alignment.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// multiplier returns the fraction of leftover width applied as an offset:
// 0 for left, 0.5 for center, 1.0 for right.
func (a Alignment) multiplier() float32 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1.0
	default:
		return 0.0
	}
}

// VerticalAlignment positions a text block's content_size within a taller
// parent box.
type VerticalAlignment uint8

const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
)

func (a VerticalAlignment) multiplier() float32 {
	switch a {
	case AlignMiddle:
		return 0.5
	case AlignBottom:
		return 1.0
	default:
		return 0.0
	}
}

// AlignHorizontal returns the x offset to add to every line so that a line
// of width lineWidth sits according to align within a parent of width
// parentWidth.
func AlignHorizontal(align Alignment, parentWidth, lineWidth float32) float32 {
	return align.multiplier() * (parentWidth - lineWidth)
}

// AlignVertical returns the y offset to add to the whole text block so that
// content of height contentHeight sits according to align within a parent
// of height parentHeight.
func AlignVertical(align VerticalAlignment, parentHeight, contentHeight float32) float32 {
	return align.multiplier() * (parentHeight - contentHeight)
}
