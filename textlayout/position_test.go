// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import (
	"testing"

	"github.com/conradludgate/azul/shaping"
	"github.com/conradludgate/azul/words"
)

func fakeShapedWord(width int32, nonMarkGlyphs int) ShapedWord {
	sw := ShapedWord{WordWidth: width}
	for i := 0; i < nonMarkGlyphs; i++ {
		sw.GlyphInfos = append(sw.GlyphInfos, shaping.GlyphInfo{})
	}
	return sw
}

func ptr(f float32) *float32 { return &f }

func TestLineWrapBoundary(t *testing.T) {
	w := words.Tokenize("aaaa bbbb cccc")
	sw := ShapedWords{
		Items: []ShapedWord{
			fakeShapedWord(40, 4),
			fakeShapedWord(40, 4),
			fakeShapedWord(40, 4),
		},
		SpaceAdvance: 10,
		UnitsPerEm:   10,
	}
	options := ResolvedTextLayoutOptions{
		FontSizePx:         10,
		LineHeight:         ptr(1.0),
		MaxHorizontalWidth: ptr(100),
	}

	wp := PositionWords(w, sw, options)

	if wp.NumberOfLines != 2 {
		t.Fatalf("NumberOfLines = %d, want 2", wp.NumberOfLines)
	}
	if wp.ContentSize.Y != 40 {
		t.Errorf("ContentSize.Y = %v, want 40", wp.ContentSize.Y)
	}
	// token layout: 0=aaaa 1=space 2=bbbb 3=space 4=cccc
	if wp.LineBreaks[0].WordEnd != 3 {
		t.Errorf("line 0 WordEnd = %d, want 3 (break happens before token 4)", wp.LineBreaks[0].WordEnd)
	}
	if wp.LineBreaks[1].WordStart != 4 {
		t.Errorf("line 1 WordStart = %d, want 4", wp.LineBreaks[1].WordStart)
	}
}

func TestOverWideWordContentSize(t *testing.T) {
	w := words.Tokenize("wwwwwwwwwww")
	sw := ShapedWords{
		Items:        []ShapedWord{fakeShapedWord(200, 11)},
		SpaceAdvance: 10,
		UnitsPerEm:   10,
	}
	options := ResolvedTextLayoutOptions{
		FontSizePx:         10,
		LineHeight:         ptr(1.0),
		MaxHorizontalWidth: ptr(100),
	}

	wp := PositionWords(w, sw, options)

	if wp.NumberOfLines != 1 {
		t.Fatalf("NumberOfLines = %d, want 1", wp.NumberOfLines)
	}
	if wp.ContentSize.X < 200 {
		t.Errorf("ContentSize.X = %v, want >= 200", wp.ContentSize.X)
	}
}

func TestMonotonicCaretOnSameLine(t *testing.T) {
	w := words.Tokenize("aaaa bbbb cccc")
	sw := ShapedWords{
		Items: []ShapedWord{
			fakeShapedWord(40, 4),
			fakeShapedWord(40, 4),
			fakeShapedWord(40, 4),
		},
		SpaceAdvance: 10,
		UnitsPerEm:   10,
	}
	options := ResolvedTextLayoutOptions{FontSizePx: 10, LineHeight: ptr(1.0)}
	wp := PositionWords(w, sw, options)

	for _, line := range wp.LineBreaks {
		lastX := float32(-1)
		for i := line.WordStart; i <= line.WordEnd && i < len(wp.WordPositions); i++ {
			x := wp.WordPositions[i].Position.X
			if x < lastX {
				t.Errorf("caret went backwards on a line: %v then %v", lastX, x)
			}
			lastX = x
		}
	}
}

func TestLineCoverageEveryTokenExactlyOnce(t *testing.T) {
	w := words.Tokenize("aaaa bbbb cccc")
	sw := ShapedWords{
		Items: []ShapedWord{
			fakeShapedWord(40, 4),
			fakeShapedWord(40, 4),
			fakeShapedWord(40, 4),
		},
		SpaceAdvance: 10,
		UnitsPerEm:   10,
	}
	options := ResolvedTextLayoutOptions{
		FontSizePx:         10,
		LineHeight:         ptr(1.0),
		MaxHorizontalWidth: ptr(100),
	}
	wp := PositionWords(w, sw, options)

	counts := make([]int, len(w.Items))
	for _, line := range wp.LineBreaks {
		for i := line.WordStart; i <= line.WordEnd; i++ {
			counts[i]++
		}
	}
	for i, c := range counts {
		if c != 1 {
			t.Errorf("token %d covered by %d lines, want exactly 1", i, c)
		}
	}
}

func TestPositionWordsEmptyInput(t *testing.T) {
	w := words.Tokenize("")
	sw := ShapedWords{UnitsPerEm: 10}
	options := ResolvedTextLayoutOptions{FontSizePx: 10}
	wp := PositionWords(w, sw, options)
	if wp.NumberOfLines != 1 {
		t.Errorf("NumberOfLines = %d, want 1 (every text has at least one line)", wp.NumberOfLines)
	}
}

func TestReturnStartsNewLine(t *testing.T) {
	w := words.Tokenize("aa\nbb")
	sw := ShapedWords{
		Items: []ShapedWord{
			fakeShapedWord(20, 2),
			fakeShapedWord(20, 2),
		},
		SpaceAdvance: 10,
		UnitsPerEm:   10,
	}
	options := ResolvedTextLayoutOptions{FontSizePx: 10, LineHeight: ptr(1.0)}
	wp := PositionWords(w, sw, options)
	if wp.NumberOfLines != 2 {
		t.Fatalf("NumberOfLines = %d, want 2", wp.NumberOfLines)
	}
}
