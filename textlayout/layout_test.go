// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	azulfont "github.com/conradludgate/azul/font"
	"github.com/conradludgate/azul/words"
)

func TestLayoutEndToEnd(t *testing.T) {
	pf, err := azulfont.Load(goregular.TTF, 0, azulfont.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	w := words.Tokenize("hello world\nsecond line")
	options := ResolvedTextLayoutOptions{FontSizePx: 16, MaxHorizontalWidth: ptr(1000)}

	it := Layout(pf, w, options, nil)
	if len(it.Lines) == 0 {
		t.Fatalf("Layout produced no lines")
	}

	glyphs := it.GetLayoutedGlyphs()
	if len(glyphs.Glyphs) == 0 {
		t.Fatalf("GetLayoutedGlyphs produced no glyphs")
	}
}

func TestLayoutCacheHitReturnsSameResult(t *testing.T) {
	pf, err := azulfont.Load(goregular.TTF, 0, azulfont.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	w := words.Tokenize("cached text")
	options := ResolvedTextLayoutOptions{FontSizePx: 16}
	cache := &LayoutCache{}

	first := Layout(pf, w, options, cache)
	second := Layout(pf, w, options, cache)

	if len(first.Lines) != len(second.Lines) {
		t.Errorf("cached layout produced a different number of lines")
	}
}
