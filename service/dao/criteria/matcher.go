// Package criteria evaluates dao list parameters against entity attributes.
package criteria

import (
	"github.com/viant/bpmflow/service/dao"
)

// Match returns false when a parameter named name is present and none of its
// values equals any of candidates. Parameters with other names are ignored.
func Match(name string, candidates []string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != name {
			continue
		}
		if !containsAny(candidates, parameter.Values()) {
			return false
		}
	}
	return true
}

func containsAny(candidates, values []string) bool {
	for _, value := range values {
		for _, candidate := range candidates {
			if candidate == value {
				return true
			}
		}
	}
	return false
}
