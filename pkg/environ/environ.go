// Package environ models the process environment as an explicit value that
// is handed to builders instead of read ambiently. Builders decide what a
// build needs from the environment at construction time, which keeps the
// decision testable without mutating the real process state.
package environ

import (
	"os"
	"strings"
)

// Environment is a snapshot of environment variables.
type Environment map[string]string

// FromOS captures the current process environment.
func FromOS() Environment {
	env := make(Environment)
	for _, entry := range os.Environ() {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		env[parts[0]] = parts[1]
	}
	return env
}

// Lookup returns the value for key and whether it is present.
func (e Environment) Lookup(key string) (string, bool) {
	value, ok := e[key]
	return value, ok
}

// Has reports whether key is present, including present-but-empty.
func (e Environment) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Clone returns an independent copy of the environment.
func (e Environment) Clone() Environment {
	clone := make(Environment, len(e))
	for k, v := range e {
		clone[k] = v
	}
	return clone
}
