package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

// Attribute is a tag attribute.
type Attribute struct {
	Name  string
	Value string
}

// Tag is a parsed markup tag.
type Tag struct {
	Name        string
	Attributes  []*Attribute
	Content     string
	SelfClosing bool
	Pos         int
	End         int
}

// Attribute returns attribute value by case-insensitive name.
func (t *Tag) Attribute(name string) (string, bool) {
	for _, attr := range t.Attributes {
		if strings.EqualFold(attr.Name, name) {
			return attr.Value, true
		}
	}
	return "", false
}

// Count returns the number of attributes with a case-insensitive name.
func (t *Tag) Count(name string) int {
	ret := 0
	for _, attr := range t.Attributes {
		if strings.EqualFold(attr.Name, name) {
			ret++
		}
	}
	return ret
}

// ParseTags scans text for tags of the given name; text outside tags is
// ignored. Any malformed tag fails the whole input.
func ParseTags(text string, name string) ([]*Tag, error) {
	input := []byte(text)
	cursor := parsly.NewCursor("", input, 0)
	open := openTagToken(name)
	openMarker := []byte("<" + name)
	closeMarker := []byte("</" + name + ">")
	var tags []*Tag
	for cursor.Pos < cursor.InputSize {
		idx := indexOpenTag(cursor.Input[cursor.Pos:cursor.InputSize], openMarker)
		if idx == -1 {
			break
		}
		if stray := bytes.Index(cursor.Input[cursor.Pos:cursor.Pos+idx], closeMarker); stray != -1 {
			return nil, newError(cursor.Pos+stray, "unexpected </%v> without opening tag", name)
		}
		cursor.Pos += idx
		tag := &Tag{Name: name, Pos: cursor.Pos}
		if cursor.MatchOne(open).Code != open.Code {
			return nil, newError(cursor.Pos, "expected <%v", name)
		}
		if err := parseAttributes(cursor, tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
		if tag.SelfClosing {
			tag.End = cursor.Pos
			continue
		}
		rest := cursor.Input[cursor.Pos:cursor.InputSize]
		end := bytes.Index(rest, closeMarker)
		if end == -1 {
			return nil, newError(tag.Pos, "missing closing </%v> tag", name)
		}
		content := rest[:end]
		if nested := indexOpenTag(content, openMarker); nested != -1 {
			return nil, newError(cursor.Pos+nested, "unexpected <%v> before closing </%v>", name, name)
		}
		tag.Content = string(content)
		cursor.Pos += end + len(closeMarker)
		tag.End = cursor.Pos
	}
	if stray := bytes.Index(cursor.Input[cursor.Pos:cursor.InputSize], closeMarker); stray != -1 {
		return nil, newError(cursor.Pos+stray, "unexpected </%v> without opening tag", name)
	}
	return tags, nil
}

func parseAttributes(cursor *parsly.Cursor, tag *Tag) error {
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, selfCloseToken, tagEndToken, attributeNameToken)
		switch matched.Code {
		case selfCloseCode:
			tag.SelfClosing = true
			return nil
		case tagEndCode:
			return nil
		case attributeNameCode:
			attr := &Attribute{Name: matched.Text(cursor)}
			if cursor.MatchAfterOptional(whitespaceToken, equalToken).Code != equalCode {
				return wrapError(cursor.Pos, fmt.Sprintf("attribute %v: expected '='", attr.Name), cursor.NewError(equalToken))
			}
			value := cursor.MatchAfterOptional(whitespaceToken, quotedToken)
			if value.Code != quotedCode {
				return wrapError(cursor.Pos, fmt.Sprintf("attribute %v: expected quoted value", attr.Name), cursor.NewError(quotedToken))
			}
			text := value.Text(cursor)
			attr.Value = text[1 : len(text)-1]
			tag.Attributes = append(tag.Attributes, attr)
		default:
			return wrapError(cursor.Pos, "malformed <"+tag.Name+"> tag", cursor.NewError(selfCloseToken, tagEndToken, attributeNameToken))
		}
	}
}

func indexOpenTag(input, marker []byte) int {
	offset := 0
	for {
		idx := bytes.Index(input[offset:], marker)
		if idx == -1 {
			return -1
		}
		if matchOpenTag(input[offset+idx:], marker) > 0 {
			return offset + idx
		}
		offset += idx + len(marker)
	}
}
