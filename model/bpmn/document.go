package bpmn

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/viant/bpmflow/model/item"
)

// element is a generic diagram node keeping document order of its children.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*element `xml:",any"`
}

func (e *element) attr(name string) string {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func (e *element) child(name string) *element {
	for _, candidate := range e.Children {
		if candidate.XMLName.Local == name {
			return candidate
		}
	}
	return nil
}

func (e *element) children(name string) []*element {
	var ret []*element
	for _, candidate := range e.Children {
		if candidate.XMLName.Local == name {
			ret = append(ret, candidate)
		}
	}
	return ret
}

// items decodes extension items into target.
func (e *element) items(target *item.Collection) {
	extension := e.child("extensionElements")
	if extension == nil {
		return
	}
	for _, anItem := range extension.children("item") {
		name := anItem.attr("name")
		if name == "" {
			continue
		}
		values := make([]interface{}, 0)
		for _, value := range anItem.children("value") {
			values = append(values, itemValue(anItem.attr("type"), value.Text))
		}
		target.Set(name, values)
	}
}

func itemValue(dataType, text string) interface{} {
	trimmed := strings.TrimSpace(text)
	switch strings.ToLower(strings.TrimPrefix(dataType, "xs:")) {
	case "int", "integer", "long", "short":
		if v, err := strconv.Atoi(trimmed); err == nil {
			return v
		}
	case "boolean":
		return strings.EqualFold(trimmed, "true")
	case "double", "float", "decimal":
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v
		}
	}
	return text
}

var taskKinds = map[string]bool{
	"task":             true,
	"userTask":         true,
	"manualTask":       true,
	"serviceTask":      true,
	"scriptTask":       true,
	"sendTask":         true,
	"receiveTask":      true,
	"businessRuleTask": true,
}

var eventKinds = map[string]bool{
	"intermediateCatchEvent": true,
	"intermediateThrowEvent": true,
}

var gatewayKinds = map[string]bool{
	"exclusiveGateway":  true,
	"inclusiveGateway":  true,
	"parallelGateway":   true,
	"eventBasedGateway": true,
	"complexGateway":    true,
}
