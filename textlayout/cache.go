// SPDX-License-Identifier: Unlicense OR MIT

package textlayout

import "github.com/conradludgate/azul/words"

// layoutCacheKey identifies a previously computed InlineText. FontIdentity
// comes from font.ParsedFont.Identity, which is only stable for the
// lifetime of that font instance; callers that reload a font get cache
// misses rather than stale hits, since a fresh Load produces a fresh
// identity.
type layoutCacheKey struct {
	fontIdentity       uintptr
	text               string
	fontSizePx         float32
	lineHeight         float32
	letterSpacing      float32
	wordSpacing        float32
	maxHorizontalWidth float32
	hasMaxWidth        bool
	leading            float32
}

func newLayoutCacheKey(fontIdentity uintptr, w words.Words, options ResolvedTextLayoutOptions) layoutCacheKey {
	maxWidth, hasMaxWidth := options.maxHorizontalWidth()
	return layoutCacheKey{
		fontIdentity:       fontIdentity,
		text:               w.Source,
		fontSizePx:         options.FontSizePx,
		lineHeight:         options.lineHeight(),
		letterSpacing:      options.letterSpacing(),
		wordSpacing:        options.wordSpacing(),
		maxHorizontalWidth: maxWidth,
		hasMaxWidth:        hasMaxWidth,
		leading:            options.leading(),
	}
}

type layoutCacheElem struct {
	next, prev *layoutCacheElem
	key        layoutCacheKey
	value      InlineText
}

// LayoutCache is an intrusive LRU cache keyed on font identity, source
// text, and the layout options that affect geometry. It exists so that
// repeated layout calls for the same paragraph (redraw, resize-free
// re-render) don't re-run shaping and positioning.
type LayoutCache struct {
	m          map[layoutCacheKey]*layoutCacheElem
	head, tail *layoutCacheElem
}

// MaxLayoutCacheSize bounds LayoutCache's size; the oldest entry is evicted
// once a Put would exceed it.
const MaxLayoutCacheSize = 256

// Get returns the cached InlineText for key, if present, and marks it most
// recently used.
func (c *LayoutCache) Get(key layoutCacheKey) (InlineText, bool) {
	if e, ok := c.m[key]; ok {
		c.remove(e)
		c.insert(e)
		return e.value, true
	}
	return InlineText{}, false
}

// Put stores value under key, evicting the least recently used entry if the
// cache is now over MaxLayoutCacheSize.
func (c *LayoutCache) Put(key layoutCacheKey, value InlineText) {
	if c.m == nil {
		c.m = make(map[layoutCacheKey]*layoutCacheElem)
		c.head = new(layoutCacheElem)
		c.tail = new(layoutCacheElem)
		c.head.prev = c.tail
		c.tail.next = c.head
	}
	e := &layoutCacheElem{key: key, value: value}
	c.m[key] = e
	c.insert(e)
	if len(c.m) > MaxLayoutCacheSize {
		oldest := c.tail.next
		c.remove(oldest)
		delete(c.m, oldest.key)
	}
}

func (c *LayoutCache) remove(e *layoutCacheElem) {
	e.next.prev = e.prev
	e.prev.next = e.next
}

func (c *LayoutCache) insert(e *layoutCacheElem) {
	e.next = c.head
	e.prev = c.head.prev
	e.prev.next = e
	e.next.prev = e
}
