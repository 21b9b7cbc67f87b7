package markup

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes start at 1 to avoid a clash with parsly.EOF.
const (
	whitespaceCode = iota + 1
	selfCloseCode
	tagEndCode
	attributeNameCode
	equalCode
	quotedCode
	openTagCode
)

var (
	whitespaceToken    = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	selfCloseToken     = parsly.NewToken(selfCloseCode, "/>", matcher.NewFragment("/>"))
	tagEndToken        = parsly.NewToken(tagEndCode, ">", matcher.NewByte('>'))
	attributeNameToken = parsly.NewToken(attributeNameCode, "AttributeName", &attributeNameMatcher{})
	equalToken         = parsly.NewToken(equalCode, "=", matcher.NewByte('='))
	quotedToken        = parsly.NewToken(quotedCode, "QuotedValue", &quotedMatcher{})
)

// openTagToken matches "<name" followed by whitespace, '/' or '>'.
func openTagToken(name string) *parsly.Token {
	return parsly.NewToken(openTagCode, "<"+name, &openTagMatcher{name: []byte("<" + name)})
}

type openTagMatcher struct {
	name []byte
}

func (m *openTagMatcher) Match(cursor *parsly.Cursor) int {
	return matchOpenTag(cursor.Input[cursor.Pos:cursor.InputSize], m.name)
}

func matchOpenTag(input, name []byte) int {
	if len(input) <= len(name) {
		return 0
	}
	for i := range name {
		if input[i] != name[i] {
			return 0
		}
	}
	switch input[len(name)] {
	case ' ', '\t', '\n', '\r', '/', '>':
		return len(name)
	}
	return 0
}

// attributeNameMatcher matches attribute names: letters, digits, '_', '-', '.' and ':'.
type attributeNameMatcher struct{}

func (m *attributeNameMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	matched := 0
	for i := pos; i < size; i++ {
		c := input[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		if matched == 0 && !isLetter {
			return 0
		}
		if isLetter || (c >= '0' && c <= '9') || c == '-' || c == '.' || c == ':' {
			matched++
			continue
		}
		break
	}
	return matched
}

// quotedMatcher matches a single or double quoted value including quotes.
type quotedMatcher struct{}

func (m *quotedMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	quote := input[pos]
	if quote != '"' && quote != '\'' {
		return 0
	}
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case quote:
			return i - pos + 1
		case '<':
			return 0
		}
	}
	return 0
}
