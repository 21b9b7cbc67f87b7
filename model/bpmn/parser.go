package bpmn

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/model/item"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Parse builds a model from a BPMN document read with the supplied text
// encoding ("" or UTF-8 uses the encoding declared by the document). Parsing
// is all-or-nothing: any structural problem yields a *model.Error and no model.
func Parse(reader io.Reader, textEncoding string) (*model.Model, error) {
	enc, err := lookupEncoding(textEncoding)
	if err != nil {
		return nil, model.NewInvalidModelError("unsupported encoding %q", textEncoding)
	}
	if enc != nil {
		reader = enc.NewDecoder().Reader(reader)
	}
	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if enc != nil {
			return input, nil
		}
		declared, err := lookupEncoding(label)
		if err != nil {
			return nil, err
		}
		if declared == nil {
			return input, nil
		}
		return declared.NewDecoder().Reader(input), nil
	}
	root := &element{}
	if err := decoder.Decode(root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, model.NewInvalidModelError("empty document")
		}
		return nil, &model.Error{Op: "parse", Message: "malformed document", Err: errors.Join(model.ErrInvalidModel, err)}
	}
	if root.XMLName.Local != "definitions" {
		return nil, model.NewInvalidModelError("unexpected root element %q", root.XMLName.Local)
	}
	return newGraph(root).build()
}

// ParseBytes parses an in-memory document.
func ParseBytes(data []byte, textEncoding string) (*model.Model, error) {
	return Parse(bytes.NewReader(data), textEncoding)
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	return htmlindex.Get(name)
}

func profileOf(root *element) (*item.Collection, string, error) {
	profile := item.New()
	root.items(profile)
	version := strings.TrimSpace(profile.String(model.ProfileVersionAttr))
	if version == "" {
		return nil, "", model.NewInvalidModelError("model version %v is not defined", model.ProfileVersionAttr)
	}
	profile.Set(model.ProfileNameAttr, model.ProfileName)
	profile.Set(model.ProfileTypeAttr, model.ProfileType)
	profile.Set(model.ModelVersionAttr, version)
	plugins := make([]interface{}, 0)
	for _, plugin := range profile.Strings(model.ProfilePluginsAttr) {
		if plugin = strings.TrimSpace(plugin); plugin != "" {
			plugins = append(plugins, plugin)
		}
	}
	profile.Set(model.ProfilePluginsAttr, plugins)
	return profile, version, nil
}
