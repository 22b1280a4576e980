// SPDX-License-Identifier: Unlicense OR MIT

// Package words splits normalized text into an ordered sequence of word,
// space and return tokens. It is the first stage of the layout pipeline:
// its output indexes into the normalized string rather than copying
// substrings, so the same token list can drive both shaping and caret
// placement without re-scanning the text.
package words

import (
	"golang.org/x/text/unicode/norm"
)

// Kind is the category of a Token.
type Kind uint8

const (
	// Word marks a maximal run of non-whitespace characters.
	Word Kind = iota
	// Space marks a single U+0020.
	Space
	// Return marks a line break: "\n", "\r\n", or a "\r" not followed by "\n".
	Return
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Space:
		return "Space"
	case Return:
		return "Return"
	default:
		return "Kind(?)"
	}
}

// Token is a half-open byte range [Start, End) into a Words' Source,
// tagged with its Kind.
type Token struct {
	Start, End int
	Kind       Kind
}

// Len returns the byte length of the token's range.
func (t Token) Len() int { return t.End - t.Start }

// Words is the tokenized form of a string: an ordered, non-overlapping
// sequence of Tokens plus the NFC-normalized source they index into.
type Words struct {
	Items  []Token
	Source string
}

// Substr returns the slice of Source that t covers.
func (w Words) Substr(t Token) string {
	return w.Source[t.Start:t.End]
}

// NumWords returns the count of Word tokens, which equals the number of
// shaped words a Shaper call must produce for w.
func (w Words) NumWords() int {
	n := 0
	for _, t := range w.Items {
		if t.Kind == Word {
			n++
		}
	}
	return n
}

// Tokenize normalizes text to NFC and segments it into Word, Space and
// Return tokens.
//
// A run of non-whitespace becomes a Word. A single U+0020 becomes a
// Space. "\n" becomes a Return; if it is immediately preceded by "\r"
// the pair collapses into one Return spanning both bytes. A "\r" not
// followed by "\n" is a Return of its own. A trailing
// Return (the last token, if the text ends in a line break) is dropped.
func Tokenize(text string) Words {
	source := norm.NFC.String(text)

	var items []Token
	currentWordStart := 0
	lastCharIdx := 0
	lastChar := rune('0')
	lastCharWasWhitespace := false

	for idx, ch := range source {
		currentIsWhitespace := ch == ' ' || ch == '\r' || ch == '\n'

		var delimiter *Token
		switch ch {
		case ' ':
			delimiter = &Token{Start: idx, End: idx + 1, Kind: Space}
		case '\r':
			if idx+1 >= len(source) || source[idx+1] != '\n' {
				delimiter = &Token{Start: idx, End: idx + 1, Kind: Return}
			}
		case '\n':
			if lastChar == '\r' {
				delimiter = &Token{Start: lastCharIdx, End: idx + 1, Kind: Return}
			} else {
				delimiter = &Token{Start: idx, End: idx + 1, Kind: Return}
			}
		}

		var wordTok *Token
		if currentIsWhitespace && !lastCharWasWhitespace {
			wordTok = &Token{Start: currentWordStart, End: idx, Kind: Word}
		}

		if currentIsWhitespace {
			currentWordStart = idx + 1
		}

		if wordTok != nil {
			items = append(items, *wordTok)
		}
		if delimiter != nil {
			items = append(items, *delimiter)
		}

		lastCharWasWhitespace = currentIsWhitespace
		lastCharIdx = idx
		lastChar = ch
	}

	if currentWordStart != lastCharIdx+1 {
		items = append(items, Token{Start: currentWordStart, End: len(source), Kind: Word})
	}

	if n := len(items); n > 0 && items[n-1].Kind == Return {
		items = items[:n-1]
	}

	return Words{Items: items, Source: source}
}
