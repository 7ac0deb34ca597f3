package expand

import (
	"strings"

	"github.com/dshills/texpand/internal/engine"
)

// keywordBrackets may end a keyword, as in "lr(".
const keywordBrackets = "([{<|"

func isKeywordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '*'
}

// Keyword returns the word before the point that may name a command.
// Dollar signs directly before the point are skipped. A word that is
// part of a macro name such as \sum is not a keyword.
func Keyword(doc *engine.Document) (engine.Range, string, bool) {
	p := doc.Point()
	text := doc.TextRange(0, p)

	end := len(strings.TrimRight(text, "$"))
	i := end
	if i > 0 && strings.IndexByte(keywordBrackets, text[i-1]) >= 0 {
		i--
	}
	wordEnd := i
	for i > 0 && isKeywordByte(text[i-1]) {
		i--
	}
	if i == wordEnd {
		return engine.Range{}, "", false
	}
	if i > 0 && text[i-1] == '\\' {
		return engine.Range{}, "", false
	}
	r := engine.Range{Start: engine.ByteOffset(i), End: engine.ByteOffset(end)}
	return r, text[i:end], true
}
