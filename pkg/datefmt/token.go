package datefmt

// escapeMarker forces the following character to be emitted literally.
const escapeMarker = '\\'

// Token is one logical character of a format string.
type Token struct {
	// Text is the character with any escape marker stripped.
	Text string
	// Raw is the input text the token was read from, marker included.
	Raw string
	// Literal is set when the token was escaped.
	Literal bool
	// Pos is the rune offset of the token in the format string.
	Pos int
}

// Char returns the token's character.
func (t Token) Char() rune {
	for _, r := range t.Text {
		return r
	}
	return 0
}

// Tokenize splits a format string into tokens, left to right.
//
// A backslash makes the next character a literal token. A trailing
// backslash is itself a literal token. Every other rune becomes a
// single-rune token. Invalid UTF-8 bytes become U+FFFD; the compile
// entry points reject such input with ErrInvalidEncoding first.
func Tokenize(format string) []Token {
	runes := []rune(format)
	tokens := make([]Token, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != escapeMarker {
			tokens = append(tokens, Token{Text: string(r), Raw: string(r), Pos: i})
			continue
		}

		if i+1 < len(runes) {
			next := runes[i+1]
			tokens = append(tokens, Token{
				Text:    string(next),
				Raw:     string(r) + string(next),
				Literal: true,
				Pos:     i,
			})
			i++
			continue
		}

		tokens = append(tokens, Token{Text: string(r), Raw: string(r), Literal: true, Pos: i})
	}

	return tokens
}
