package tokenize

import (
	"strings"
	"unicode"
)

// permittedPunct is the punctuation kept by Restrict.
const permittedPunct = "，。！？；：\"'“”‘’（）【】"

// CollapseSpace trims text and folds every whitespace run into one space.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Restrict removes every rune that is not Han, an ASCII letter or digit,
// whitespace, or one of the permitted CJK punctuation marks.
func Restrict(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case isHan(r),
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			unicode.IsSpace(r),
			strings.ContainsRune(permittedPunct, r):
			return r
		}
		return -1
	}, text)
}
