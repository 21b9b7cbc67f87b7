package markup

import (
	"strconv"
	"strings"
)

const (
	modelVersionTag = "modelversion"
	processIDTag    = "processid"
	activityIDTag   = "activityid"
	itemsTag        = "items"
)

// Mapping copies a source attribute into a target attribute.
type Mapping struct {
	Source string
	Target string
}

// Directive describes a sub-process operation consumed by split and join
// style plugins:
//
//	<modelversion>1.0.0</modelversion>
//	<processid>1000</processid>
//	<activityid>10</activityid>
//	<items>namTeam,_orderNumber|_parentNumber</items>
type Directive struct {
	ModelVersion string
	TaskID       int
	EventID      int
	Items        []*Mapping
}

// HasTask returns true if a task id was declared.
func (d *Directive) HasTask() bool { return d.TaskID != 0 }

// HasEvent returns true if an event id was declared.
func (d *Directive) HasEvent() bool { return d.EventID != 0 }

// ParseDirective parses a directive; every tag is optional.
func ParseDirective(text string) (*Directive, error) {
	ret := &Directive{}
	var err error
	if ret.ModelVersion, err = tagContent(text, modelVersionTag); err != nil {
		return nil, err
	}
	if ret.TaskID, err = numericTag(text, processIDTag); err != nil {
		return nil, err
	}
	if ret.EventID, err = numericTag(text, activityIDTag); err != nil {
		return nil, err
	}
	items, err := tagContent(text, itemsTag)
	if err != nil {
		return nil, err
	}
	ret.Items = parseMappings(items)
	return ret, nil
}

// Directives returns directives carried by every <item name="name"> tag.
func Directives(text, name string) ([]*Directive, error) {
	tags, err := ParseTags(text, itemTag)
	if err != nil {
		return nil, err
	}
	var ret []*Directive
	for _, tag := range tags {
		tagName, ok := tag.Attribute(nameAttr)
		if !ok {
			return nil, newError(tag.Pos, "<%v> tag has no name attribute", tag.Name)
		}
		if !strings.EqualFold(strings.TrimSpace(tagName), name) {
			continue
		}
		directive, err := ParseDirective(tag.Content)
		if err != nil {
			return nil, err
		}
		ret = append(ret, directive)
	}
	return ret, nil
}

func tagContent(text, name string) (string, error) {
	tags, err := ParseTags(text, name)
	if err != nil || len(tags) == 0 {
		return "", err
	}
	return strings.TrimSpace(tags[0].Content), nil
}

func numericTag(text, name string) (int, error) {
	content, err := tagContent(text, name)
	if err != nil || content == "" {
		return 0, err
	}
	ret, err := strconv.Atoi(content)
	if err != nil {
		return 0, wrapError(0, "invalid <"+name+"> value "+strconv.Quote(content), err)
	}
	return ret, nil
}

func parseMappings(text string) []*Mapping {
	var ret []*Mapping
	for _, entry := range strings.Split(text, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		source, target, found := strings.Cut(entry, "|")
		source = strings.TrimSpace(source)
		target = strings.TrimSpace(target)
		if !found || target == "" {
			target = source
		}
		ret = append(ret, &Mapping{Source: source, Target: target})
	}
	return ret
}
