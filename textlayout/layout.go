// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import (
	azulfont "github.com/conradludgate/azul/font"
	"github.com/conradludgate/azul/shaping"
	"github.com/conradludgate/azul/words"
)

// Layout runs the full pipeline from tokenized text to a positioned,
// glyph-resolved InlineText: shape every word, position the words along
// wrapped lines, then resolve each word's glyphs into final bounds. cache
// may be nil to skip caching entirely.
func Layout(pf *azulfont.ParsedFont, w words.Words, options ResolvedTextLayoutOptions, cache *LayoutCache) InlineText {
	var key layoutCacheKey
	if cache != nil {
		key = newLayoutCacheKey(pf.Identity(), w, options)
		if hit, ok := cache.Get(key); ok {
			return hit
		}
	}

	script := shaping.DetectScript([]rune(w.Source))
	scriptTag, ok := shaping.ScriptTag(script)
	if !ok {
		scriptTag = "latn"
	}

	shapedWords := ShapeWords(pf, w, scriptTag, "")
	wordPositions := PositionWords(w, shapedWords, options)
	layout := WordPositionsToInlineTextLayout(wordPositions)
	inlineText := Assemble(w, shapedWords, wordPositions, layout)

	if cache != nil {
		cache.Put(key, inlineText)
	}
	return inlineText
}
