package script

import (
	"unicode"
	"unicode/utf8"
)

// Token is one script word and where it came from.
type Token struct {
	Text   string
	Index  int // position in the token list
	Offset int // byte offset in the source text
}

// End is the byte offset just past the token.
func (t Token) End() int { return t.Offset + len(t.Text) }

func isDelimiter(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}

// Parse splits text on whitespace, commas and semicolons. Empty segments are
// dropped.
func Parse(text string) []Token {
	tokens := make([]Token, 0)
	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isDelimiter(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Text: text[start:i], Index: len(tokens), Offset: start})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: text[start:], Index: len(tokens), Offset: start})
	}
	return tokens
}

// Texts returns the token strings.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
