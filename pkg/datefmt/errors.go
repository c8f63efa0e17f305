package datefmt

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrUnsupportedCharacter is matched by UnsupportedCharacterError via errors.Is.
var ErrUnsupportedCharacter = errors.New("unsupported format character")

// ErrInvalidEncoding is returned for format strings that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("format string is not valid UTF-8")

// checkEncoding reports the byte offset of the first invalid UTF-8 sequence.
func checkEncoding(format string) error {
	if utf8.ValidString(format) {
		return nil
	}
	for i, r := range format {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(format[i:]); size == 1 {
				return fmt.Errorf("%w: invalid byte at offset %d", ErrInvalidEncoding, i)
			}
		}
	}
	return ErrInvalidEncoding
}

// UnsupportedCharacterError is returned when a format string uses a
// character with no portable rendering.
type UnsupportedCharacterError struct {
	Char rune
	Pos  int
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("unsupported format character %q at position %d\nHint: escape it with a backslash to emit it literally", e.Char, e.Pos)
}

// Is lets errors.Is match ErrUnsupportedCharacter.
func (e *UnsupportedCharacterError) Is(target error) bool {
	return target == ErrUnsupportedCharacter
}
