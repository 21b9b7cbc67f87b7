package markup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/bpmflow/model/item"
	"github.com/viant/toolbox"
)

const (
	itemTag      = "item"
	itemValueTag = "itemvalue"
	nameAttr     = "name"
	typeAttr     = "type"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

// Evaluate parses item markup into a new collection. The evaluation is
// atomic: on error no attribute is returned.
//
//	<item name="txtName">Anna</item>
//	<item name='approved' type='boolean'>true</item>
//	<item name="comment" ignore="true" />
func Evaluate(text string) (*item.Collection, error) {
	tags, err := ParseTags(text, itemTag)
	if err != nil {
		return nil, err
	}
	ret := item.New()
	for _, tag := range tags {
		if err = evaluateTag(tag, ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// EvaluateWith replaces <itemvalue>name</itemvalue> placeholders with values
// of source before evaluating the markup.
func EvaluateWith(text string, source *item.Collection) (*item.Collection, error) {
	expanded, err := ExpandItemValues(text, source)
	if err != nil {
		return nil, err
	}
	return Evaluate(expanded)
}

// ExpandItemValues replaces <itemvalue>name</itemvalue> placeholders; the
// first value is used unless a separator attribute joins all values.
func ExpandItemValues(text string, source *item.Collection) (string, error) {
	if source == nil || !strings.Contains(text, "<"+itemValueTag) {
		return text, nil
	}
	tags, err := ParseTags(text, itemValueTag)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	offset := 0
	for _, tag := range tags {
		b.WriteString(text[offset:tag.Pos])
		name := strings.TrimSpace(tag.Content)
		if separator, ok := tag.Attribute("separator"); ok {
			b.WriteString(strings.Join(source.Strings(name), separator))
		} else {
			b.WriteString(source.String(name))
		}
		offset = tag.End
	}
	b.WriteString(text[offset:])
	return b.String(), nil
}

func evaluateTag(tag *Tag, target *item.Collection) error {
	name, ok := tag.Attribute(nameAttr)
	if !ok || strings.TrimSpace(name) == "" {
		return newError(tag.Pos, "<%v> tag has no name attribute", tag.Name)
	}
	if tag.Count(nameAttr) > 1 {
		return newError(tag.Pos, "<%v> tag has more than one name attribute", tag.Name)
	}
	name = item.Key(strings.TrimSpace(name))
	if tag.SelfClosing {
		target.Append(name, "")
	} else {
		dataType, _ := tag.Attribute(typeAttr)
		value, err := convert(tag.Content, dataType)
		if err != nil {
			return wrapError(tag.Pos, "item "+name+": invalid "+dataType+" value", err)
		}
		target.Append(name, value)
	}
	for _, attr := range tag.Attributes {
		key := item.Key(attr.Name)
		if key == nameAttr || key == typeAttr {
			continue
		}
		target.Set(name+"."+key, attr.Value)
	}
	return nil
}

func convert(content, dataType string) (interface{}, error) {
	trimmed := strings.TrimSpace(content)
	switch strings.ToLower(strings.TrimSpace(dataType)) {
	case "", "string", "text":
		return content, nil
	case "boolean", "bool":
		return strings.EqualFold(trimmed, "true"), nil
	case "integer", "int":
		return strconv.Atoi(trimmed)
	case "long":
		return strconv.ParseInt(trimmed, 10, 64)
	case "double", "float":
		return toolbox.ToFloat(trimmed)
	case "date":
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, trimmed); err == nil {
				return ts, nil
			}
		}
		return nil, fmt.Errorf("unsupported date format %q", trimmed)
	}
	return content, nil
}
