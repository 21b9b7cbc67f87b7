package dao

import "github.com/viant/toolbox"

// Parameter narrows List results; Value holds one value or a value list.
type Parameter struct {
	Name  string
	Value interface{}
}

// Values returns parameter values as strings.
func (p *Parameter) Values() []string {
	switch actual := p.Value.(type) {
	case nil:
		return nil
	case string:
		return []string{actual}
	case []string:
		return actual
	case []interface{}:
		ret := make([]string, 0, len(actual))
		for _, v := range actual {
			ret = append(ret, toolbox.AsString(v))
		}
		return ret
	}
	return []string{toolbox.AsString(p.Value)}
}

// NewParameter creates a parameter; a single value is stored unwrapped.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
