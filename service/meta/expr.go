package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnvExpr replaces ${env.KEY} with the value of environment variable
// KEY, empty when unset. A key with characters other than letters, digits or
// '_' leaves the prefix as literal text; an unterminated expression leaves the
// remainder untouched.
func expandEnvExpr(value string) string {
	if !strings.Contains(value, envPrefix) {
		return value
	}
	var b strings.Builder
	for {
		idx := strings.Index(value, envPrefix)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			return b.String()
		}
		key := rest[:end]
		if !isEnvKey(key) {
			b.WriteString(envPrefix)
			value = rest
			continue
		}
		b.WriteString(os.Getenv(key))
		value = rest[end+1:]
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
